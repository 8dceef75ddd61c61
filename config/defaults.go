package config

import "reflect"

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

// applyDefaults allocates nil struct pointers, then calls ApplyDefault on the
// structs supporting it, parents before children.
func applyDefaults(val reflect.Value) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			if !val.CanSet() || val.Type().Elem().Kind() != reflect.Struct {
				return
			}
			val.Set(reflect.New(val.Type().Elem()))
		}
		if val.Type().Implements(withDefaultType) {
			val.Interface().(WithDefault).ApplyDefault()
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return
	}
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !typ.Field(i).IsExported() {
			continue
		}
		field := val.Field(i)
		switch {
		case field.Kind() == reflect.Pointer && typ.Field(i).Type.Elem().Kind() == reflect.Struct:
			applyDefaults(field)
		case field.Kind() == reflect.Struct && field.CanAddr():
			applyDefaults(field.Addr())
		}
	}
}
