// Package validate checks operation argument bags before any store access.
// Rules mirror a fixed order (presence, primitive type, emptiness, range,
// identifier shape, character class, enum membership) so the first failure
// reported for a field is deterministic.
package validate

import (
	"math"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"scholarhub/internal/domain"
	"scholarhub/pkg/domerrors"
)

// Rule selects the per-field check applied after presence and type checks.
type Rule string

const (
	RuleName       Rule = "name"     // letters, spaces, hyphens
	RuleTitle      Rule = "title"    // same character class as names
	RuleEmail      Rule = "email"
	RulePassword   Rule = "password"
	RuleBio        Rule = "bio"
	RuleID         Rule = "id"
	RuleIDList     Rule = "idList"
	RuleYear       Rule = "year"
	RuleDate       Rule = "date"
	RuleRole       Rule = "role"
	RuleDepartment Rule = "department"
	RuleSubject    Rule = "subject"
	RuleStatus     Rule = "status"
	RuleContent    Rule = "content" // any non-empty string
	RuleComments   Rule = "comments"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	dateRe  = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12][0-9]|3[01])/\d{4}$`)
)

func invalid(field, msg string) error {
	return domerrors.NewField(domerrors.CodeInvalidArgument, field, msg)
}

// Check runs the rule against a present value. The value has already passed
// the presence check; nil never reaches here.
func Check(field string, rule Rule, value any) error {
	switch rule {
	case RuleName, RuleTitle:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if !nameRe.MatchString(s) {
			return invalid(field, "must contain only letters, spaces, and hyphens")
		}
	case RuleEmail:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if !emailRe.MatchString(s) {
			return invalid(field, "is not a valid email address")
		}
	case RulePassword:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if err := checkPasswordComplexity(field, s); err != nil {
			return err
		}
	case RuleBio:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if len(s) > 250 {
			return invalid(field, "must be 250 characters or less")
		}
	case RuleID:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if _, err := primitive.ObjectIDFromHex(s); err != nil {
			return invalid(field, "is not a valid identifier")
		}
	case RuleIDList:
		list, ok := value.([]any)
		if !ok {
			return invalid(field, "is not a valid array")
		}
		for _, elem := range list {
			if err := Check(field, RuleID, elem); err != nil {
				return err
			}
		}
	case RuleYear:
		n, err := number(field, value)
		if err != nil {
			return err
		}
		y := int(n)
		if float64(y) != n {
			return invalid(field, "must be a whole year")
		}
		maxYear := time.Now().Year() + 5
		if y < 2000 || y > maxYear {
			return invalid(field, "must be between 2000 and five years from now")
		}
	case RuleDate:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if !dateRe.MatchString(s) {
			return invalid(field, "must be in MM/DD/YYYY format")
		}
	case RuleRole:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if _, ok := domain.ParseRole(s); !ok {
			return invalid(field, "is not a valid role")
		}
	case RuleDepartment:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if _, ok := domain.ParseDepartment(s); !ok {
			return invalid(field, "is not a valid department")
		}
	case RuleSubject:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if _, ok := domain.ParseSubject(s); !ok {
			return invalid(field, "is not a valid subject")
		}
	case RuleStatus:
		s, err := nonEmptyString(field, value)
		if err != nil {
			return err
		}
		if _, ok := domain.ParseStatus(s); !ok {
			return invalid(field, "is not a valid application status")
		}
	case RuleContent:
		if _, err := nonEmptyString(field, value); err != nil {
			return err
		}
	case RuleComments:
		list, ok := value.([]any)
		if !ok {
			return invalid(field, "is not a valid array")
		}
		for _, elem := range list {
			obj, ok := elem.(map[string]any)
			if !ok {
				return invalid(field, "elements must be comment objects")
			}
			text, _ := obj["text"].(string)
			if isBlank(text) {
				return invalid(field, "each comment must have a non-empty text body")
			}
		}
	default:
		return invalid(field, "has no validation rule")
	}
	return nil
}

// ValidateYearRange checks a year-range query: 0 < min <= max <= current year.
func ValidateYearRange(min, max int) error {
	current := time.Now().Year()
	if min <= 0 || max < min || max > current {
		return domerrors.Newf(domerrors.CodeInvalidArgument,
			"year range must satisfy 0 < min <= max <= %d", current)
	}
	return nil
}

// ParseID converts an already-validated identifier string.
func ParseID(field, s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, invalid(field, "is not a valid identifier")
	}
	return id, nil
}

func nonEmptyString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", invalid(field, "is not a string")
	}
	if isBlank(s) {
		return "", invalid(field, "is empty or only whitespace")
	}
	return s, nil
}

func number(field string, value any) (float64, error) {
	switch n := value.(type) {
	case float64:
		if math.IsNaN(n) {
			return 0, invalid(field, "must be a number")
		}
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, invalid(field, "is not a number")
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func checkPasswordComplexity(field, s string) error {
	if len(s) < 8 {
		return invalid(field, "must be at least 8 characters")
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return invalid(field, "must include an uppercase letter, a lowercase letter, a number, and a symbol")
	}
	return nil
}
