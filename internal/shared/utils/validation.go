package utils

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fleetdesk/internal/shared/errors"
)

var (
	validate     *validator.Validate
	registerOnce sync.Once

	macPattern = regexp.MustCompile(`^[0-9A-Fa-f]{2}(:[0-9A-Fa-f]{2}){5}$`)
)

func init() {
	validate = validator.New()
	registerCustom(validate)
}

// registerCustom installs the JSON tag name func and the project specific tags.
func registerCustom(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	// "macaddr" accepts only colon separated 6-octet addresses (00:11:22:33:44:55).
	_ = v.RegisterValidation("macaddr", func(fl validator.FieldLevel) bool {
		return macPattern.MatchString(fl.Field().String())
	})
}

// RegisterBindingValidators installs the custom tags on gin's binding validator.
func RegisterBindingValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustom(v)
		}
	})
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	return BindingError(validate.Struct(s))
}

// BindingError converts a gin binding or validator failure into a validation AppError.
func BindingError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		elements := make(map[string][]string, len(validationErrors))
		var messages []string
		for _, fieldError := range validationErrors {
			msg := getFieldErrorMessage(fieldError)
			elements[fieldError.Field()] = append(elements[fieldError.Field()], msg)
			messages = append(messages, msg)
		}
		appErr := errors.NewValidationError(strings.Join(messages, "; "))
		appErr.Elements = elements
		return appErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &typeErr):
		return errors.NewValidationError(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	case stderrors.As(err, &syntaxErr):
		return errors.NewValidationError("Request body is not valid JSON")
	}
	return errors.NewValidationError(err.Error())
}

// getFieldErrorMessage returns a user-friendly error message for a field validation error
func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "macaddr":
		return fmt.Sprintf("%s must be a MAC address like 00:11:22:33:44:55", field)
	case "ipv4":
		return fmt.Sprintf("%s must be a dotted IPv4 address", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, tag)
	}
}
