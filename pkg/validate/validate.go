// Package validate checks request structs against `validate` struct tags.
//
// Supported rules (comma-separated):
//
//	required   field must not be zero/empty
//	nullable   if empty, skip the remaining rules
//	email      valid email address
//	min=N      string: min length | number: min value
//	max=N      string: max length | number: max value
//	in=a|b|c   value must be one of the listed items
//
// Example:
//
//	type RegisterInput struct {
//	    Name  string `json:"name"  validate:"required,max=100"`
//	    Email string `json:"email" validate:"required,email"`
//	    Phone string `json:"phone" validate:"nullable,max=30"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an email address.
func Email(s string) bool {
	return emailRE.MatchString(s)
}

// Struct validates the exported fields of v that carry a `validate` tag.
// Returns field name -> message; an empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}

		value := rv.Field(i)
		isPtr := value.Kind() == reflect.Ptr
		if isPtr {
			if value.IsNil() {
				if strings.Contains(tag, "required") {
					errs[jsonFieldName(field)] = fmt.Sprintf("The %s field is required.", jsonFieldName(field))
				}
				continue
			}
			value = value.Elem()
		}

		name := jsonFieldName(field)
		rules := strings.Split(tag, ",")

		if !isPtr && hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			// A non-nil pointer already satisfies required.
			if rule == "nullable" || (isPtr && rule == "required") {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs[name] = msg
				break
			}
		}
	}

	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// First returns one message from errs, preferring the alphabetically first
// field so the result is stable.
func First(errs map[string]string) string {
	var key string
	for k := range errs {
		if key == "" || k < key {
			key = k
		}
	}
	return errs[key]
}

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(strings.TrimSpace(rule), "=")
	raw := fmt.Sprintf("%v", v.Interface())

	switch key {
	case "required":
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
	case "email":
		if !Email(raw) {
			return fmt.Sprintf("The %s must be a valid email address.", field)
		}
	case "min":
		n, _ := strconv.ParseFloat(param, 64)
		if isNumericKind(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(raw))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
	case "max":
		n, _ := strconv.ParseFloat(param, 64)
		if isNumericKind(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(raw))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "in":
		for _, allowed := range strings.Split(param, "|") {
			if raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
