package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// envLoader applies `env` struct tags to a config value.
//
// Scalar fields read the variable named by their tag. A slice of structs
// tagged e.g. `env:"SEED_GROUPS"` is read from indexed variables
// SEED_GROUPS_0_SLUG, SEED_GROUPS_1_SLUG, ... where each element field's tag
// is the suffix; when index 0 is present the slice from the file is replaced.
type envLoader struct {
	lookup func(string) (string, bool)
}

func newEnvLoader() *envLoader {
	return &envLoader{lookup: os.LookupEnv}
}

func (l *envLoader) apply(target interface{}) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("env target must be a pointer to a struct, got %T", target)
	}
	return l.applyStruct(val.Elem(), "")
}

func (l *envLoader) applyStruct(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Tag.Get("env")
		if name != "" && prefix != "" {
			name = prefix + "_" + name
		}

		switch {
		case field.Kind() == reflect.Struct:
			if err := l.applyStruct(field, prefix); err != nil {
				return err
			}
		case name == "":
		case field.Kind() == reflect.Slice && field.Type().Elem().Kind() == reflect.Struct:
			if err := l.applySlice(field, name); err != nil {
				return err
			}
		default:
			raw, ok := l.lookup(name)
			if !ok {
				continue
			}
			if err := setScalar(field, raw); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}

// hasPrefixed reports whether any variable tagged inside elemType is set
// under prefix
func (l *envLoader) hasPrefixed(elemType reflect.Type, prefix string) bool {
	for i := 0; i < elemType.NumField(); i++ {
		tag := elemType.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		if _, ok := l.lookup(prefix + "_" + tag); ok {
			return true
		}
	}
	return false
}

func (l *envLoader) applySlice(field reflect.Value, name string) error {
	elemType := field.Type().Elem()
	if !l.hasPrefixed(elemType, name+"_0") {
		return nil
	}

	items := reflect.MakeSlice(field.Type(), 0, 4)
	for i := 0; ; i++ {
		prefix := name + "_" + strconv.Itoa(i)
		if !l.hasPrefixed(elemType, prefix) {
			break
		}
		elem := reflect.New(elemType).Elem()
		if err := l.applyStruct(elem, prefix); err != nil {
			return err
		}
		items = reflect.Append(items, elem)
	}
	field.Set(items)
	return nil
}

func setScalar(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
