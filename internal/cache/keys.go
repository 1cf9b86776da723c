package cache

import (
	"fmt"
	"strings"

	"scholarhub/internal/domain"
)

// Collection list keys. Invalidates drop the whole list; reads repopulate.
const (
	KeyAllAccounts     = "accounts"
	KeyAllProjects     = "projects"
	KeyAllUpdates      = "updates"
	KeyAllApplications = "applications"
)

// Per-id keys, "<entity-kind>:<id>".

func AccountKey(id string) string     { return "account:" + id }
func ProjectKey(id string) string     { return "project:" + id }
func UpdateKey(id string) string      { return "update:" + id }
func ApplicationKey(id string) string { return "application:" + id }

// Filter keys, "<operation>:<normalized-args>". Search terms are trimmed and
// lower-cased so equivalent queries share an entry.

func AccountSearchKey(term string) string {
	return "search:account:" + normalizeTerm(term)
}

func ProjectSearchKey(term string) string {
	return "search:project:" + normalizeTerm(term)
}

func DepartmentKey(d domain.Department) string {
	return "department:" + string(d)
}

func SubjectKey(s domain.Subject) string {
	return "subject:" + string(s)
}

func YearRangeKey(min, max int) string {
	if max < min {
		min, max = max, min
	}
	return fmt.Sprintf("createdYear:%d:%d", min, max)
}

func ProfessorsKey(projectID string) string { return "professors:" + projectID }
func StudentsKey(projectID string) string   { return "students:" + projectID }

func normalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
