package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// bindEnvs registers one environment variable per leaf field of typ.
func bindEnvs(v *viper.Viper, prefix string, typ reflect.Type, parents ...string) error {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := fieldKey(field)

		fieldTyp := field.Type
		if fieldTyp.Kind() == reflect.Pointer && fieldTyp.Elem().Kind() == reflect.Struct {
			fieldTyp = fieldTyp.Elem()
		}
		if fieldTyp.Kind() == reflect.Struct {
			if err := bindEnvs(v, prefix, fieldTyp, append(parents, key)...); err != nil {
				return err
			}
			continue
		}

		path := append(append([]string{}, parents...), key)
		if err := v.BindEnv(strings.Join(path, "."), envName(prefix, path)); err != nil {
			return err
		}
	}
	return nil
}

func fieldKey(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("mapstructure"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return field.Name
}

func envName(prefix string, path []string) string {
	parts := make([]string, 0, len(path)+1)
	if prefix != "" {
		parts = append(parts, strings.ToUpper(prefix))
	}
	for _, p := range path {
		parts = append(parts, toScreamingSnakeCase(p))
	}
	return strings.Join(parts, "_")
}

// toScreamingSnakeCase turns "DefaultName", "default_name" or "default-name"
// into "DEFAULT_NAME". Trailing separators are dropped. Acronyms are split
// per letter: "APIKey" gives "A_P_I_KEY".
func toScreamingSnakeCase(in string) string {
	in = strings.TrimSpace(in)
	if in == "" {
		return in
	}

	var sb strings.Builder
	sb.Grow(len(in) + len(in)/3)

	lastWasSeparator := true
	for _, b := range []byte(in) {
		switch {
		case 'a' <= b && b <= 'z':
			sb.WriteByte(b - ('a' - 'A'))
			lastWasSeparator = false
		case 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
			if !lastWasSeparator {
				sb.WriteByte('_')
			}
			sb.WriteByte(b)
			lastWasSeparator = false
		case b == '_' || b == '-':
			if !lastWasSeparator {
				sb.WriteByte('_')
			}
			lastWasSeparator = true
		default:
			sb.WriteByte(b)
			lastWasSeparator = false
		}
	}

	return strings.TrimRight(sb.String(), "_")
}
