package reconcile

import (
	"reflect"
	"strings"
)

// structFields lists the json-visible fields of a struct value in declaration
// order. Nil pointers, slices, maps and interfaces are unset and left out.
// Exported embedded structs without a json name are flattened into the parent.
func structFields(v reflect.Value) ([]string, map[string]reflect.Value) {
	var keys []string
	values := map[string]reflect.Value{}
	collectFields(v, &keys, values)
	return keys, values
}

func collectFields(v reflect.Value, keys *[]string, values map[string]reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, skip := jsonName(sf)
		if skip {
			continue
		}

		if !sf.IsExported() {
			continue
		}

		fv := v.Field(i)
		if sf.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Ptr {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				collectFields(inner, keys, values)
				continue
			}
		}
		if name == "" {
			name = sf.Name
		}
		if isUnset(fv) {
			continue
		}
		if _, seen := values[name]; !seen {
			*keys = append(*keys, name)
		}
		values[name] = fv
	}
}

func jsonName(sf reflect.StructField) (string, bool) {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, false
}

func isUnset(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	case reflect.Invalid:
		return true
	}
	return false
}

// plain returns the value stored behind pointers and interfaces, or nil.
func plain(v reflect.Value) any {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}
