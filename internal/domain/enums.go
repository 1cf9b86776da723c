package domain

import "strings"

// Role classifies an account.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleProfessor Role = "PROFESSOR"
	RoleAdmin     Role = "ADMIN"
)

// Department is limited to the engineering school for now.
type Department string

const (
	DeptBiomedicalEngineering      Department = "BIOMEDICAL_ENGINEERING"
	DeptChemicalEngineering        Department = "CHEMICAL_ENGINEERING_AND_MATERIALS_SCIENCE"
	DeptChemistryChemicalBiology   Department = "CHEMISTRY_AND_CHEMICAL_BIOLOGY"
	DeptCivilEnvironmentalOcean    Department = "CIVIL_ENVIRONMENTAL_AND_OCEAN_ENGINEERING"
	DeptComputerScience            Department = "COMPUTER_SCIENCE"
	DeptElectricalComputer         Department = "ELECTRICAL_AND_COMPUTER_ENGINEERING"
	DeptMathematicalSciences       Department = "MATHEMATICAL_SCIENCES"
	DeptMechanicalEngineering      Department = "MECHANICAL_ENGINEERING"
	DeptPhysics                    Department = "PHYSICS"
	DeptSystemsAndEnterprises      Department = "SYSTEMS_AND_ENTERPRISES"
)

// Subject classifies a project update for newsfeed filtering.
type Subject string

const (
	SubjectCallForApplicants     Subject = "CALL_FOR_APPLICANTS"
	SubjectTeamUpdate            Subject = "TEAM_UPDATE"
	SubjectProjectLaunch         Subject = "PROJECT_LAUNCH"
	SubjectMilestoneReached      Subject = "MILESTONE_REACHED"
	SubjectProgressReport        Subject = "PROGRESS_REPORT"
	SubjectDeadlineUpdate        Subject = "DEADLINE_UPDATE"
	SubjectRequestForFeedback    Subject = "REQUEST_FOR_FEEDBACK"
	SubjectFundingUpdate         Subject = "FUNDING_UPDATE"
	SubjectEventAnnouncement     Subject = "EVENT_ANNOUNCEMENT"
	SubjectIssueReported         Subject = "ISSUE_REPORTED"
	SubjectPublishedAnnouncement Subject = "PUBLISHED_ANNOUNCEMENT"
	SubjectFinalResults          Subject = "FINAL_RESULTS"
	SubjectProjectCompletion     Subject = "PROJECT_COMPLETION"
)

// Status tracks where an application stands.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
	StatusWithdrawn  Status = "WITHDRAWN"
	StatusWaitlisted Status = "WAITLISTED"
)

var (
	validRoles = map[Role]struct{}{
		RoleStudent: {}, RoleProfessor: {}, RoleAdmin: {},
	}
	validDepartments = map[Department]struct{}{
		DeptBiomedicalEngineering: {}, DeptChemicalEngineering: {},
		DeptChemistryChemicalBiology: {}, DeptCivilEnvironmentalOcean: {},
		DeptComputerScience: {}, DeptElectricalComputer: {},
		DeptMathematicalSciences: {}, DeptMechanicalEngineering: {},
		DeptPhysics: {}, DeptSystemsAndEnterprises: {},
	}
	validSubjects = map[Subject]struct{}{
		SubjectCallForApplicants: {}, SubjectTeamUpdate: {},
		SubjectProjectLaunch: {}, SubjectMilestoneReached: {},
		SubjectProgressReport: {}, SubjectDeadlineUpdate: {},
		SubjectRequestForFeedback: {}, SubjectFundingUpdate: {},
		SubjectEventAnnouncement: {}, SubjectIssueReported: {},
		SubjectPublishedAnnouncement: {}, SubjectFinalResults: {},
		SubjectProjectCompletion: {},
	}
	validStatuses = map[Status]struct{}{
		StatusPending: {}, StatusApproved: {}, StatusRejected: {},
		StatusWithdrawn: {}, StatusWaitlisted: {},
	}
)

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseRole normalizes (trim, upper-case) and validates a role value.
func ParseRole(s string) (Role, bool) {
	r := Role(normalize(s))
	_, ok := validRoles[r]
	return r, ok
}

// ParseDepartment normalizes and validates a department value.
func ParseDepartment(s string) (Department, bool) {
	d := Department(normalize(s))
	_, ok := validDepartments[d]
	return d, ok
}

// ParseSubject normalizes and validates an update subject value.
func ParseSubject(s string) (Subject, bool) {
	sub := Subject(normalize(s))
	_, ok := validSubjects[sub]
	return sub, ok
}

// ParseStatus normalizes and validates an application status value.
func ParseStatus(s string) (Status, bool) {
	st := Status(normalize(s))
	_, ok := validStatuses[st]
	return st, ok
}
