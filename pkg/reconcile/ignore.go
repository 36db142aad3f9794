package reconcile

import (
	"reflect"
	"sort"
)

// IgnorePolicy maps a field name to the observed value(s) that are equivalent
// to the field not being set on the server:
//
//   - a scalar: the field is unchanged when the observed value equals it
//   - a slice of scalars: the field is unchanged when the observed value is one of them
//   - nil: the field is unchanged when the observed value is absent or nil
//
// A policy entry suppresses a field regardless of its declared value.
type IgnorePolicy map[string]any

// Validate checks that every entry has a supported shape.
func (p IgnorePolicy) Validate() error {
	fields := make([]string, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, f := range fields {
		rule := indirect(reflect.ValueOf(p[f]))
		switch rule.Kind() {
		case reflect.Invalid:
		case reflect.Slice, reflect.Array:
			for i := 0; i < rule.Len(); i++ {
				if !isScalar(indirect(rule.Index(i))) {
					return &IgnorePolicyError{Field: f, Value: p[f]}
				}
			}
		default:
			if !isScalar(rule) {
				return &IgnorePolicyError{Field: f, Value: p[f]}
			}
		}
	}
	return nil
}

// suppresses reports whether observed is a default-equivalent value of field.
// The policy must have been validated.
func (p IgnorePolicy) suppresses(c comparer, field string, observed any) (bool, error) {
	raw, ok := p[field]
	if !ok {
		return false, nil
	}

	have := reflect.ValueOf(observed)
	rule := indirect(reflect.ValueOf(raw))
	if isNil(rule) {
		return isNil(indirect(have)), nil
	}
	if rule.Kind() == reflect.Slice || rule.Kind() == reflect.Array {
		for i := 0; i < rule.Len(); i++ {
			same, err := c.equal(have, rule.Index(i), field, 0)
			if err != nil || same {
				return same, err
			}
		}
		return false, nil
	}
	return c.equal(have, rule, field, 0)
}

func isNil(v reflect.Value) bool {
	c, err := classify(v, "")
	return err == nil && c == classNil
}

func isScalar(v reflect.Value) bool {
	c, err := classify(v, "")
	if err != nil {
		return false
	}
	return c == classNil || c == classBool || c == classString || c == classNumber
}
