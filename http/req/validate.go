package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/xy-planning-network/reply"
)

type validator struct {
	valid *v10.Validate
}

// newValidator constructs a validator naming fields by their "json" or "schema" tag
// and knowing the "enum" rule.
func newValidator() validator {
	v := v10.New()
	v.RegisterValidation("enum", validateEnumerable)
	v.RegisterTagNameFunc(tagName)

	return validator{v}
}

// tagName names a field by its "json" tag, falling back to its "schema" tag.
func tagName(field reflect.StructField) string {
	for _, key := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
// On success, validate returns no error.
// On failure, validate translates each issue to a ValidationError,
// returning them all as ValidationErrors.
func (v validator) validate(structPtr any) error {
	err := v.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		// Namespaces lead with the struct's type name.
		field := ve.Namespace()
		if _, after, ok := strings.Cut(field, "."); ok {
			field = after
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}
		rule += "; " + ve.Type().String()

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule,
		})
	}

	return validateErrs
}

// validateEnumerable validates whether field is a valid reply.Enumerable or slice of valid reply.Enumerable.
func validateEnumerable(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return checkEnums(field)
	}

	vals := make([]reflect.Value, field.Len())
	for i := range vals {
		vals[i] = field.Index(i)
	}

	return checkEnums(vals...)
}

// checkEnums asserts each [reflect.Value] is a valid reply.Enumerable.
func checkEnums(items ...reflect.Value) bool {
	if len(items) == 0 {
		return false
	}

	for _, item := range items {
		enum, ok := item.Interface().(reply.Enumerable)
		if !ok || enum.Valid() != nil {
			return false
		}
	}

	return true
}
