package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Form is the checkout input. Every field is matched by json tag so the
// per-field error map lines up with what the client sent.
type Form struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Street     string `json:"street" validate:"required,max=255"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=32"`
	Country    string `json:"country" validate:"required,max=100"`
	Note       string `json:"note" validate:"omitempty,max=500"`

	PaymentMethod string `json:"payment_method" validate:"required,oneof=card paypal klarna"`
	AcceptTerms   bool   `json:"accept_terms" validate:"required"`
}

// trimmed returns a copy with surrounding whitespace stripped, so a
// field of spaces does not pass "required".
func (f Form) trimmed() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Street = strings.TrimSpace(f.Street)
	f.City = strings.TrimSpace(f.City)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.Country = strings.TrimSpace(f.Country)
	f.Note = strings.TrimSpace(f.Note)
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	return f
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return fld.Name
		}
		return tag
	})
	return v
}

// fieldErrors converts a validator error into field->message, in struct
// (and therefore form) order, remembering the first invalid field so the
// caller can move focus to it.
func fieldErrors(err error) *ValidationError {
	out := &ValidationError{Fields: map[string]string{}}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out.Fields["_"] = "Invalid form data."
		return out
	}
	for _, fe := range ve {
		name := fe.Field()
		if _, dup := out.Fields[name]; dup {
			continue
		}
		if out.First == "" {
			out.First = name
		}
		out.Fields[name] = messageFor(name, fe.Tag(), fe.Param())
	}
	return out
}

func messageFor(field, tag, param string) string {
	switch {
	case field == "accept_terms":
		return "You must accept the shipping terms."
	case field == "payment_method":
		return "Please select a payment method."
	case tag == "required":
		return "This field is required."
	case tag == "email":
		return "Please enter a valid email address."
	case tag == "max":
		return "Must be at most " + param + " characters."
	default:
		return "Invalid value."
	}
}
