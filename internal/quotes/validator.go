package quotes

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cleanedge/cleanedge/internal/platform/httpx"
)

// phonePattern is E.164-style: optional leading +, non-zero first
// digit, up to 15 digits total.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Validator checks quote-request payloads. It has no side effects and
// collects every violation instead of stopping at the first.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
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

	return &Validator{validate: v}
}

// Validate returns the full violation list for req, or nil when the
// payload is acceptable. The payload must be normalized first.
func (v *Validator) Validate(req QuoteRequest) []httpx.FieldError {
	var errs []httpx.FieldError

	if err := v.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				errs = append(errs, httpx.FieldError{
					Param: fe.Field(),
					Msg:   violationMessage(fe),
				})
			}
		} else {
			errs = append(errs, httpx.FieldError{Msg: "invalid payload"})
		}
	}

	// The one cross-field rule: a free-text description is mandatory
	// when the catalog's "Other" entry was selected.
	if containsService(req.Services, ServiceOther) && req.OtherDescription == "" {
		errs = append(errs, httpx.FieldError{
			Param: "otherDescription",
			Msg:   `A description is required when "Other" is selected`,
		})
	}

	return errs
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "fullName":
		return "Full name must be between 2 and 100 characters"
	case "serviceAddress":
		return "Service address must be between 5 and 200 characters"
	case "email":
		return "A valid email address is required"
	case "cellPhone":
		return "Cell phone must be a valid phone number"
	case "homePhone":
		return "Home phone must be a valid phone number"
	case "workPhone":
		return "Work phone must be a valid phone number"
	case "services":
		return "At least one service must be selected"
	case "privacyPolicy":
		return "You must agree to the privacy policy"
	}
	return fe.Field() + " is invalid"
}
