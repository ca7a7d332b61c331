// Package contact accepts messages from the terminal contact form.
package contact

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the submitted contact form.
type Form struct {
	Name string `form:"name" validate:"required,max=120"`
	Comp string `form:"comp" validate:"max=120"`
	Msg  string `form:"msg"  validate:"required,max=4000"`
}

// FieldErrors maps a form field to a message shown under its input.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range []string{"name", "comp", "msg"} {
		if msg, ok := fe[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldNames = map[string]string{
	"Name": "name",
	"Comp": "comp",
	"Msg":  "msg",
}

// Normalize trims surrounding whitespace from every field.
func (f Form) Normalize() Form {
	return Form{
		Name: strings.TrimSpace(f.Name),
		Comp: strings.TrimSpace(f.Comp),
		Msg:  strings.TrimSpace(f.Msg),
	}
}

// Validate returns FieldErrors when a required field is empty or a field
// is too long.
func (f Form) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		name := fieldNames[fe.Field()]
		switch fe.Tag() {
		case "required":
			out[name] = "required"
		case "max":
			out[name] = "too long (max " + fe.Param() + " characters)"
		default:
			out[name] = "invalid"
		}
	}
	return out
}
