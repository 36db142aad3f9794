package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Change is a single declared field whose observed value differs.
type Change struct {
	Field    string `json:"field"`
	Observed any    `json:"observed"`
	Desired  any    `json:"desired"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Field, render(c.Observed), render(c.Desired))
}

// ChangeSet lists the differing fields in the order they were declared.
// A non-empty ChangeSet means a write is required.
type ChangeSet []Change

// Empty reports whether no field differs.
func (cs ChangeSet) Empty() bool {
	return len(cs) == 0
}

// Fields returns the names of the differing fields.
func (cs ChangeSet) Fields() []string {
	fields := make([]string, 0, len(cs))
	for _, c := range cs {
		fields = append(fields, c.Field)
	}
	return fields
}

// Has reports whether field is part of the ChangeSet.
func (cs ChangeSet) Has(field string) bool {
	for _, c := range cs {
		if c.Field == field {
			return true
		}
	}
	return false
}

func (cs ChangeSet) String() string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n")
}

func render(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
