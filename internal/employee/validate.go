package employee

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	maxNameLen     = 100
	minPasswordLen = 6
)

// phonePattern accepts an optional leading +, then digits with optional
// spaces, dashes or parentheses, ending in a digit.
var phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9 ()\-]{5,18}[0-9]$`)

// Result is the outcome of validating a form.
type Result struct {
	Valid       bool
	FieldErrors map[Field]string
}

// Err returns the result as a *ValidationError, or nil when valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Message: "invalid employee form", Fields: r.FieldErrors}
}

type createSchema struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	PhoneNo  string `json:"phoneNo" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"eq=employee"`
}

type editSchema struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	PhoneNo string `json:"phoneNo" validate:"required,phone"`
	Role    string `json:"role" validate:"eq=employee"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks s against the employee schema for mode. The password is
// required only when creating. Validate is pure and never touches the network.
func Validate(s FormState, mode Mode) Result {
	s = s.Normalize()

	var schema any
	if mode == ModeEdit {
		schema = editSchema{Name: s.Name, Email: s.Email, PhoneNo: s.PhoneNo, Role: s.Role}
	} else {
		schema = createSchema{Name: s.Name, Email: s.Email, PhoneNo: s.PhoneNo, Password: s.Password, Role: s.Role}
	}

	err := schemaValidator().Struct(schema)
	if err == nil {
		return Result{Valid: true}
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Result{FieldErrors: map[Field]string{FieldName: err.Error()}}
	}

	fields := make(map[Field]string, len(errs))
	for _, fe := range errs {
		f := Field(fe.Field())
		if _, seen := fields[f]; seen {
			continue
		}
		fields[f] = message(f, fe.Tag())
	}
	return Result{FieldErrors: fields}
}

func message(f Field, tag string) string {
	switch tag {
	case "required":
		return f.Label() + " is required"
	case "email":
		return "Enter a valid email address"
	case "phone":
		return "Enter a valid phone number"
	case "max":
		return fmt.Sprintf("%s must be at most %d characters", f.Label(), maxNameLen)
	case "min":
		return fmt.Sprintf("%s must be at least %d characters", f.Label(), minPasswordLen)
	case "eq":
		return f.Label() + " must be " + RoleEmployee
	}
	return f.Label() + " is invalid"
}
