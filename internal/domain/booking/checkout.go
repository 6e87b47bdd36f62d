package booking

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/highwaydelite/service-booking-web/pkg/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckoutForm is what the visitor fills in on the checkout page.
type CheckoutForm struct {
	FullName string `form:"full_name" validate:"required"`
	Email    string `form:"email" validate:"required"`
	Promo    string `form:"promo"`
	Agreed   bool   `form:"agreed" validate:"required"`
}

var fieldMessages = map[string]string{
	"FullName": "full name is required",
	"Email":    "email is required",
	"Agreed":   "you must agree to the terms and safety policy",
}

// Trimmed returns the form with surrounding whitespace removed from the text fields.
func (f CheckoutForm) Trimmed() CheckoutForm {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Promo = strings.TrimSpace(f.Promo)
	return f
}

// Ready reports whether the form may be submitted: a non-empty name, a
// non-empty email and an explicit agreement.
func (f CheckoutForm) Ready() bool {
	return f.Validate() == nil
}

// Validate returns a validation error listing every missing field. Name and
// email are checked after trimming, so blank input counts as missing.
func (f CheckoutForm) Validate() error {
	err := validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if m, ok := fieldMessages[fe.Field()]; ok {
			msgs = append(msgs, m)
			continue
		}
		msgs = append(msgs, fe.Error())
	}
	return domain.NewValidationError(strings.Join(msgs, "; "))
}
