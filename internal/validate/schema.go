package validate

import (
	"strings"

	"scholarhub/pkg/domerrors"
)

// Args is the raw field bag the dispatcher hands to a service operation.
type Args map[string]any

// Field declares one allowed argument of an operation.
type Field struct {
	Name     string
	Required bool
	Rule     Rule
}

// Schema is an operation's ordered field declaration. Keeping the allow-list
// and the rules in one table means they cannot drift apart.
type Schema struct {
	fields []Field
}

// NewSchema declares an operation's argument schema. Field order fixes which
// failure is reported first when several fields are bad.
func NewSchema(fields ...Field) Schema {
	return Schema{fields: fields}
}

// Check enforces the allow-list first (any undeclared field fails with
// UNEXPECTED_FIELD before any rule runs), then presence of required fields,
// then each present field's rule in declaration order.
func (s Schema) Check(args Args) error {
	for name := range args {
		if !s.allows(name) {
			return domerrors.NewField(domerrors.CodeUnexpectedField, name, "unexpected field provided")
		}
	}
	for _, f := range s.fields {
		value, present := args[f.Name]
		if !present || value == nil {
			if f.Required {
				return domerrors.NewField(domerrors.CodeInvalidArgument, f.Name, "is required")
			}
			continue
		}
		if err := Check(f.Name, f.Rule, value); err != nil {
			return err
		}
	}
	return nil
}

func (s Schema) allows(name string) bool {
	for _, f := range s.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// String returns the trimmed string for a validated field, or "" when absent.
func (a Args) String(name string) (string, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return strings.TrimSpace(s), ok
}

// Int returns the integer for a validated numeric field.
func (a Args) Int(name string) (int, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// StringList returns the trimmed strings of a validated array field. The
// second return distinguishes "absent" from "present but empty".
func (a Args) StringList(name string) ([]string, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, elem := range list {
		s, _ := elem.(string)
		out = append(out, strings.TrimSpace(s))
	}
	return out, true
}

// Has reports whether the caller supplied the field at all.
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && v != nil
}
