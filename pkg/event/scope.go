package event

import (
	"fmt"
	"reflect"
)

// scopeFields returns the placeholder name -> struct field index mapping
// declared by a scope type's `scope:"name"` tags. The Empty type (and any
// type with no such tags) has no fields.
func scopeFields(t reflect.Type) (map[string]int, error) {
	fields := map[string]int{}
	if t == nil || t.Kind() != reflect.Struct {
		return fields, nil
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("scope")
		if !ok {
			continue
		}
		if _, dup := fields[tag]; dup {
			return nil, fmt.Errorf("event: duplicate scope tag %q on %s", tag, t)
		}
		fields[tag] = i
	}
	return fields, nil
}

// scopeToMap flattens a scope value's tagged fields into placeholder name
// -> string value, for subject.Template.Render.
func scopeToMap(v any) (map[string]string, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return map[string]string{}, nil
	}
	fields, err := scopeFields(rv.Type())
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for name, idx := range fields {
		fv := rv.Field(idx)
		s, ok := fv.Interface().(string)
		if !ok {
			return nil, fmt.Errorf("event: scope field %q must be a string, got %s", name, fv.Type())
		}
		out[name] = s
	}
	return out, nil
}

// mapToScope builds a scope value of type S from extracted placeholder
// values. S must be a struct (possibly Empty) whose tagged string fields
// exactly match the supplied keys; callers have already validated that
// against the template's placeholder set at NewSpec time.
func mapToScope[S any](values map[string]string) (S, error) {
	var zero S
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct || rt.NumField() == 0 {
		return zero, nil
	}
	fields, err := scopeFields(rt)
	if err != nil {
		return zero, err
	}
	rv := reflect.New(rt).Elem()
	for name, idx := range fields {
		rv.Field(idx).SetString(values[name])
	}
	return rv.Interface().(S), nil
}
