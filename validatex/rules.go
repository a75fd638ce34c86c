package validatex

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ValidationFunc defines a function that validates a value
type ValidationFunc func(value any, param string) bool

var builtinValidationFuncs = map[string]ValidationFunc{
	"required": validateRequired,
	"url":      validateURL,
	"min":      validateMin,
	"max":      validateMax,
	"oneof":    validateOneOf,
	"regex":    validateRegex,
	"numeric":  validateNumeric,
}

var customValidationFuncs = map[string]ValidationFunc{}

// RegisterValidationFunc registers a custom validation function. Custom
// functions shadow built-ins of the same name. Register at init time only.
func RegisterValidationFunc(name string, fn ValidationFunc) {
	customValidationFuncs[name] = fn
}

func getValidationFunc(name string) (ValidationFunc, bool) {
	if fn, ok := customValidationFuncs[name]; ok {
		return fn, true
	}
	fn, ok := builtinValidationFuncs[name]
	return fn, ok
}

func validateRequired(value any, _ string) bool {
	return !isZero(value)
}

func validateURL(value any, _ string) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	u, err := url.ParseRequestURI(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && strings.Contains(u.Host, ".")
}

// measure returns the number a min/max rule compares: string and collection
// lengths, or the numeric value itself.
func measure(value any) (float64, bool) {
	switch v := value.(type) {
	case string:
		return float64(len([]rune(v))), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return float64(rv.Len()), true
	}
	return 0, false
}

func validateMin(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := measure(value)
	return ok && n >= limit
}

func validateMax(value any, param string) bool {
	limit, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := measure(value)
	return ok && n <= limit
}

// validateOneOf takes a space separated list: `validatex:"oneof=text image"`
func validateOneOf(value any, param string) bool {
	strValue := fmt.Sprintf("%v", value)
	for _, v := range strings.Fields(param) {
		if v == strValue {
			return true
		}
	}
	return false
}

func validateRegex(value any, param string) bool {
	str, ok := value.(string)
	if !ok {
		return false
	}
	re, err := regexp.Compile(param)
	return err == nil && re.MatchString(str)
}

func validateNumeric(value any, _ string) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}
	for _, char := range str {
		if !unicode.IsDigit(char) {
			return false
		}
	}
	return true
}
