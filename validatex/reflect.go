package validatex

import (
	"errors"
	"reflect"
	"strings"
)

var ErrNotStruct = errors.New("value must be a struct")

type fieldInfo struct {
	Value any
	Rules []ruleInfo
}

type ruleInfo struct {
	Name  string
	Param string
}

// collectFields walks obj and returns every tagged field keyed by its path.
// Path segments use the json name when the field has one, so API callers see
// "media.url" rather than "Media.URL".
func collectFields(obj any) (map[string]fieldInfo, error) {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	fields := make(map[string]fieldInfo)
	walk(val, "", fields)
	return fields, nil
}

func walk(val reflect.Value, prefix string, out map[string]fieldInfo) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("validatex")
		if tag == "-" {
			continue
		}

		path := prefix + fieldName(sf)
		fv := val.Field(i)

		if tag != "" {
			// pointers stay as-is so "required" can tell nil from set
			out[path] = fieldInfo{Value: fv.Interface(), Rules: parseTag(tag)}
		}

		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			walk(fv, path+".", out)
		}
	}
}

func fieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return sf.Name
	}
	return name
}

// parseTag turns "required,max=4096" into rules, in tag order.
func parseTag(tag string) []ruleInfo {
	var rules []ruleInfo
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, param, _ := strings.Cut(part, "=")
		rules = append(rules, ruleInfo{Name: name, Param: param})
	}
	return rules
}

func isZero(value any) bool {
	if value == nil {
		return true
	}
	val := reflect.ValueOf(value)
	switch val.Kind() {
	case reflect.Ptr, reflect.Interface:
		return val.IsNil()
	case reflect.Slice, reflect.Map, reflect.Array:
		return val.Len() == 0
	default:
		return val.IsZero()
	}
}

// deref unwraps a non-nil pointer so rules see the underlying value.
func deref(value any) any {
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Ptr && !val.IsNil() {
		return val.Elem().Interface()
	}
	return value
}
