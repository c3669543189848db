// Package inputval validates request bodies and reports failures as the
// API's field-level error list ({msg, param}).
//
// Fields are addressed by their JSON names. Two custom rules cover
// drive departure dates:
//
//	datefmt    — strict zero-padded MM/DD/YYYY
//	datefuture — not before today's server-local calendar day
//
// Rules run in tag order and a field reports its first failure only, so
// `required,datefmt,datefuture` yields exactly one error per field.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/slopepool/slopepool/internal/app/system/dateval"
	"github.com/slopepool/slopepool/internal/app/system/respond"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so params match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "datefmt", func(fl validator.FieldLevel) bool {
		_, err := dateval.Parse(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "datefuture", func(fl validator.FieldLevel) bool {
		_, err := dateval.Validate(fl.Field().String(), time.Now())
		return err == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("inputval: register %q: %v", tag, err))
	}
}

// Struct validates v and returns one error per failing field, in struct
// declaration order. Returns nil when v is valid.
func Struct(v any) []respond.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []respond.FieldError{{Msg: "Invalid request", Param: "body"}}
	}
	out := make([]respond.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, respond.FieldError{Msg: message(fe), Param: fe.Field()})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return label(fe.Field()) + " is required"
	case "email":
		return "Please include a valid email"
	case "min":
		if fe.Field() == "password" {
			return "Please enter a password with 6 or more characters"
		}
		return label(fe.Field()) + " is too short"
	case "datefmt":
		return "Leaving date must be in MM/DD/YYYY format"
	case "datefuture":
		return "Leaving date cannot be in the past"
	default:
		return label(fe.Field()) + " is invalid"
	}
}

// label turns a JSON field name into a human-readable message prefix
// ("leaving_time" -> "Leaving time").
func label(param string) string {
	s := strings.ReplaceAll(param, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
