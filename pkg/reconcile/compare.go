package reconcile

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// MaxDepth bounds how deep nested sequences and mappings are followed. It
// also stops self-referencing values from recursing forever.
const MaxDepth = 64

type class int

const (
	classNil class = iota
	classBool
	classString
	classNumber
	classSequence
	classMapping
)

var (
	stateType     = reflect.TypeOf(State{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

type comparer struct {
	nested NestedMode
}

// equal reports whether the observed and desired values are structurally
// equal. path is only used to describe malformed values.
func (c comparer) equal(observed, desired reflect.Value, path string, depth int) (bool, error) {
	if depth > MaxDepth {
		return false, &StructureError{Path: path, Reason: fmt.Sprintf("nesting exceeds %d levels", MaxDepth)}
	}

	observed, err := encoded(indirect(observed), path)
	if err != nil {
		return false, err
	}
	desired, err = encoded(indirect(desired), path)
	if err != nil {
		return false, err
	}
	oc, err := classify(observed, path)
	if err != nil {
		return false, err
	}
	dc, err := classify(desired, path)
	if err != nil {
		return false, err
	}
	if oc != dc {
		return false, nil
	}

	switch oc {
	case classNil:
		return true, nil
	case classBool:
		return observed.Bool() == desired.Bool(), nil
	case classString:
		return observed.String() == desired.String(), nil
	case classNumber:
		return numberEqual(observed, desired), nil
	case classSequence:
		return c.sequenceEqual(observed, desired, path, depth)
	default:
		return c.mappingEqual(observed, desired, path, depth)
	}
}

func (c comparer) sequenceEqual(observed, desired reflect.Value, path string, depth int) (bool, error) {
	if observed.Len() != desired.Len() {
		return false, nil
	}
	for i := 0; i < desired.Len(); i++ {
		same, err := c.equal(observed.Index(i), desired.Index(i), path+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil || !same {
			return false, err
		}
	}
	return true, nil
}

func (c comparer) mappingEqual(observed, desired reflect.Value, path string, depth int) (bool, error) {
	oKeys, oValues := mappingFields(observed)
	dKeys, dValues := mappingFields(desired)

	if c.nested == NestedExact && len(oKeys) != len(dKeys) {
		return false, nil
	}
	for _, k := range dKeys {
		ov, ok := oValues[k]
		if !ok && c.nested == NestedExact {
			return false, nil
		}
		same, err := c.equal(ov, dValues[k], path+"."+k, depth+1)
		if err != nil || !same {
			return false, err
		}
	}
	return true, nil
}

// mappingFields returns the keys of a map or struct. Map keys are visited in
// sorted order so errors are reported deterministically.
func mappingFields(v reflect.Value) ([]string, map[string]reflect.Value) {
	if v.Type() == stateType {
		st := stateOf(v)
		keys := st.Keys()
		values := make(map[string]reflect.Value, len(keys))
		for _, k := range keys {
			val, _ := st.Get(k)
			values[k] = reflect.ValueOf(val)
		}
		return keys, values
	}
	if v.Kind() == reflect.Struct {
		return structFields(v)
	}

	keys := make([]string, 0, v.Len())
	values := make(map[string]reflect.Value, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value()
	}
	sort.Strings(keys)
	return keys, values
}

func stateOf(v reflect.Value) *State {
	if v.CanAddr() {
		return v.Addr().Interface().(*State)
	}
	st := v.Interface().(State)
	return &st
}

// encoded replaces a json.Marshaler other than State with the decoded form
// of its encoding, so values such as time.Time compare by what they encode.
func encoded(v reflect.Value, path string) (reflect.Value, error) {
	if !v.IsValid() || v.Type() == stateType {
		return v, nil
	}

	var m json.Marshaler
	switch {
	case v.Type().Implements(marshalerType):
		if !v.CanInterface() {
			return v, &StructureError{Path: path, Reason: fmt.Sprintf("value of type %s is not accessible", v.Type())}
		}
		m = v.Interface().(json.Marshaler)
	case reflect.PointerTo(v.Type()).Implements(marshalerType):
		if !v.CanInterface() {
			return v, &StructureError{Path: path, Reason: fmt.Sprintf("value of type %s is not accessible", v.Type())}
		}
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		m = p.Interface().(json.Marshaler)
	default:
		return v, nil
	}

	raw, err := m.MarshalJSON()
	if err != nil {
		return v, &StructureError{Path: path, Reason: fmt.Sprintf("encoding %s: %v", v.Type(), err)}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v, &StructureError{Path: path, Reason: fmt.Sprintf("decoding %s: %v", v.Type(), err)}
	}
	return indirect(reflect.ValueOf(out)), nil
}

// opaque reports whether a struct keeps all of its state in fields that are
// not json-visible, which would make it compare equal to any other value of
// its type
func opaque(t reflect.Type) bool {
	hidden := false
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if _, skip := jsonName(sf); skip {
			continue
		}
		if sf.IsExported() {
			return false
		}
		hidden = true
	}
	return hidden
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func classify(v reflect.Value, path string) (class, error) {
	if !v.IsValid() {
		return classNil, nil
	}
	switch v.Kind() {
	case reflect.Bool:
		return classBool, nil
	case reflect.String:
		return classString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber, nil
	case reflect.Slice:
		if v.IsNil() {
			return classNil, nil
		}
		return classSequence, nil
	case reflect.Array:
		return classSequence, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return 0, &StructureError{Path: path, Reason: fmt.Sprintf("map key of kind %s is not a string", v.Type().Key().Kind())}
		}
		if v.IsNil() {
			return classNil, nil
		}
		return classMapping, nil
	case reflect.Struct:
		if v.Type() != stateType && opaque(v.Type()) {
			return 0, &StructureError{Path: path, Reason: fmt.Sprintf("%s has no exported fields to compare", v.Type())}
		}
		return classMapping, nil
	}
	return 0, &StructureError{Path: path, Reason: fmt.Sprintf("value of kind %s is not comparable", v.Kind())}
}

func numberEqual(a, b reflect.Value) bool {
	switch {
	case isInt(a) && isInt(b):
		return a.Int() == b.Int()
	case isUint(a) && isUint(b):
		return a.Uint() == b.Uint()
	case isInt(a) && isUint(b):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case isUint(a) && isInt(b):
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	}
	return toFloat(a) == toFloat(b)
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	}
	return v.Float()
}
