package reconcile

import (
	"reflect"
)

// NestedMode selects how mappings nested inside a field are compared.
type NestedMode int

const (
	// NestedExact requires nested mappings to have the same number of keys
	// before their values are compared. This is the default.
	NestedExact NestedMode = iota

	// NestedSubset compares only the keys declared on the desired side, the
	// same way top-level fields are compared.
	NestedSubset
)

func (m NestedMode) String() string {
	switch m {
	case NestedExact:
		return "exact"
	case NestedSubset:
		return "subset"
	}
	return "unknown"
}

// Option configures Diff.
type Option func(*comparer)

// WithNestedMode sets the policy for nested mappings.
func WithNestedMode(mode NestedMode) Option {
	return func(c *comparer) {
		c.nested = mode
	}
}

// Diff returns the declared fields of desired whose value differs from
// observed, in desired's field order.
//
// For every desired field the ignore policy is consulted first; an observed
// value listed as default-equivalent suppresses the field. Remaining fields
// are compared by deep structural equality. A field missing from observed is
// compared as nil. Comparison is type-sensitive: "1" never equals 1, though
// integer and floating point kinds compare by numeric value.
//
// Diff either returns the complete ChangeSet or an error wrapping
// ErrMalformedIgnorePolicy or ErrMalformedStructure, never a partial result.
func Diff(observed, desired *State, ignore IgnorePolicy, opts ...Option) (ChangeSet, error) {
	if err := ignore.Validate(); err != nil {
		return nil, err
	}

	c := comparer{nested: NestedExact}
	for _, opt := range opts {
		opt(&c)
	}

	var changes ChangeSet
	for _, field := range desired.Keys() {
		want, _ := desired.Get(field)
		have, _ := observed.Get(field)

		skip, err := ignore.suppresses(c, field, have)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}

		same, err := c.equal(reflect.ValueOf(have), reflect.ValueOf(want), field, 0)
		if err != nil {
			return nil, err
		}
		if !same {
			changes = append(changes, Change{Field: field, Observed: have, Desired: want})
		}
	}
	return changes, nil
}

// DiffRecords converts both records with FromStruct and diffs them.
func DiffRecords(observed, desired any, ignore IgnorePolicy, opts ...Option) (ChangeSet, error) {
	o, err := FromStruct(observed)
	if err != nil {
		return nil, err
	}
	d, err := FromStruct(desired)
	if err != nil {
		return nil, err
	}
	return Diff(o, d, ignore, opts...)
}

// Changed reports whether Diff finds any difference.
func Changed(observed, desired *State, ignore IgnorePolicy, opts ...Option) (bool, error) {
	cs, err := Diff(observed, desired, ignore, opts...)
	if err != nil {
		return false, err
	}
	return !cs.Empty(), nil
}
