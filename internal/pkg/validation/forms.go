package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// Form-level messages shown next to the fields they belong to
const (
	MsgRequired        = "This field is required."
	MsgInvalidChoice   = "Select a valid choice. That choice is not one of the available choices."
	MsgInvalidName     = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordsDiffer = "The two password fields didn't match."
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Field errors are keyed by the
// struct's `form` tag so they line up with the rendered inputs.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return IsValidUsername(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Form validates obj and returns the failures as an *apperrors.ValidationError,
// or nil when obj is valid.
func Form(obj interface{}) error {
	err := Validator().Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating form: %w", err)
	}

	fields := apperrors.FieldErrors{}
	for _, fe := range fieldErrs {
		fields.Add(fe.Field(), Message(fe))
	}
	return apperrors.NewValidationError(fields)
}

// Message renders one validator failure as user-facing text
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
	case "eqfield":
		return MsgPasswordsDiffer
	case "numeric":
		return MsgInvalidChoice
	case "username":
		return MsgInvalidName
	default:
		return fmt.Sprintf("Enter a valid value (%s).", fe.Tag())
	}
}

func runeLen(v interface{}) int {
	s, _ := v.(string)
	return utf8.RuneCountInString(s)
}
