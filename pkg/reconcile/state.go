package reconcile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// State is an ordered record mapping field names to values. Values are
// scalars, sequences or nested mappings. The zero value and a nil *State are
// both empty records.
type State struct {
	keys   []string
	values map[string]any
}

// NewState returns an empty State.
func NewState() *State {
	return &State{values: map[string]any{}}
}

// FromMap builds a State from a plain map. Go maps carry no order, so the
// keys are sorted.
func FromMap(m map[string]any) *State {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := NewState()
	for _, k := range keys {
		s.Set(k, m[k])
	}
	return s
}

// FromStruct builds a State from a typed record using its json field names.
// Fields keep their declaration order. Nil pointer, slice, map and interface
// fields are treated as unset and omitted; pointer fields are stored
// dereferenced. A *State or map[string]any is accepted as well.
func FromStruct(record any) (*State, error) {
	switch r := record.(type) {
	case nil:
		return NewState(), nil
	case *State:
		return r.Clone(), nil
	case map[string]any:
		return FromMap(r), nil
	}

	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return NewState(), nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, &StructureError{Path: "$", Reason: fmt.Sprintf("record of kind %s is not a struct", v.Kind())}
	}

	keys, values := structFields(v)
	s := NewState()
	for _, k := range keys {
		s.Set(k, plain(values[k]))
	}
	return s, nil
}

// Set stores value under key. New keys are appended to the order; existing
// keys keep their position.
func (s *State) Set(key string, value any) *State {
	if s.values == nil {
		s.values = map[string]any{}
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return s
}

// Get returns the value stored under key and whether the key is present.
func (s *State) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (s *State) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Len returns the number of fields.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Map returns a shallow copy of the record as a plain map.
func (s *State) Map() map[string]any {
	m := make(map[string]any, s.Len())
	if s == nil {
		return m
	}
	for _, k := range s.keys {
		m[k] = s.values[k]
	}
	return m
}

// Clone returns a shallow copy of s.
func (s *State) Clone() *State {
	out := NewState()
	if s == nil {
		return out
	}
	for _, k := range s.keys {
		out.Set(k, s.values[k])
	}
	return out
}

// Without returns a copy of s without the given keys. It strips control
// parameters such as connection settings or the requested state.
func (s *State) Without(keys ...string) *State {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}

	out := NewState()
	if s == nil {
		return out
	}
	for _, k := range s.keys {
		if _, ok := drop[k]; ok {
			continue
		}
		out.Set(k, s.values[k])
	}
	return out
}

// Compact returns a copy of s without fields whose value is nil. This is the
// "drop unset parameters" step that has to run before Diff.
func (s *State) Compact() *State {
	out := NewState()
	if s == nil {
		return out
	}
	for _, k := range s.keys {
		if plain(reflect.ValueOf(s.values[k])) == nil {
			continue
		}
		out.Set(k, s.values[k])
	}
	return out
}

// MarshalJSON encodes the record as a JSON object in field order.
func (s *State) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
