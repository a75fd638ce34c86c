package validatex

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/Abraxas-365/pesantren-notify/errx"
)

var registry = errx.NewRegistry("VALIDATION")

// ErrInvalid is returned when one or more fields break their rules
var ErrInvalid = registry.Register("FAILED", errx.TypeValidation, http.StatusBadRequest, "validation failed")

// Validatable lets a struct add checks that tags cannot express. It runs
// after the tag rules pass.
type Validatable interface {
	Validate() error
}

// Validate checks every `validatex` tag on obj (recursing into nested
// structs) and returns an errx error whose details map field path to the
// failed rule.
func Validate(obj any) error {
	fields, err := collectFields(obj)
	if err != nil {
		return errx.Wrap(err, "cannot validate value", errx.TypeInternal)
	}

	failures := make(map[string]string)
	for path, field := range fields {
		for _, rule := range field.Rules {
			if rule.Name != "required" && isZero(field.Value) {
				// Optional and empty: only "required" applies
				continue
			}

			fn, ok := getValidationFunc(rule.Name)
			if !ok {
				failures[path] = fmt.Sprintf("unknown rule %q", rule.Name)
				break
			}

			v := field.Value
			if rule.Name != "required" {
				v = deref(v)
			}
			if !fn(v, rule.Param) {
				failures[path] = describe(rule)
				break
			}
		}
	}

	if len(failures) > 0 {
		return newValidationError(failures)
	}

	if v, ok := obj.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

func newValidationError(failures map[string]string) error {
	paths := make([]string, 0, len(failures))
	for p := range failures {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	msgs := make([]string, 0, len(paths))
	for _, p := range paths {
		msgs = append(msgs, fmt.Sprintf("%s %s", p, failures[p]))
	}

	details := make(map[string]any, len(failures))
	for k, v := range failures {
		details[k] = v
	}
	return registry.NewWithMessage(ErrInvalid, strings.Join(msgs, "; ")).WithDetails(details)
}

func describe(rule ruleInfo) string {
	switch rule.Name {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + rule.Param
	case "max":
		return "must be at most " + rule.Param
	case "oneof":
		return "must be one of [" + rule.Param + "]"
	default:
		if rule.Param != "" {
			return fmt.Sprintf("failed %s=%s", rule.Name, rule.Param)
		}
		return "failed " + rule.Name
	}
}
