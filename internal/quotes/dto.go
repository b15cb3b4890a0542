package quotes

import "strings"

// QuoteRequest is the wire payload of the public quote form. It is
// transient: validated, normalized, and folded into a customer record.
type QuoteRequest struct {
	FullName         string   `json:"fullName" validate:"required,min=2,max=100"`
	ServiceAddress   string   `json:"serviceAddress" validate:"required,min=5,max=200"`
	Email            string   `json:"email" validate:"required,email"`
	CellPhone        string   `json:"cellPhone" validate:"required,phone"`
	HomePhone        string   `json:"homePhone,omitempty" validate:"omitempty,phone"`
	WorkPhone        string   `json:"workPhone,omitempty" validate:"omitempty,phone"`
	Services         []string `json:"services" validate:"required,min=1"`
	OtherDescription string   `json:"otherDescription,omitempty"`
	PrivacyPolicy    bool     `json:"privacyPolicy" validate:"eq=true"`
	MarketingConsent bool     `json:"marketingConsent"`
}

// Normalize trims surrounding whitespace from every free-text field
// so length and emptiness rules apply to the meaningful content.
func (r *QuoteRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.ServiceAddress = strings.TrimSpace(r.ServiceAddress)
	r.Email = strings.TrimSpace(r.Email)
	r.CellPhone = strings.TrimSpace(r.CellPhone)
	r.HomePhone = strings.TrimSpace(r.HomePhone)
	r.WorkPhone = strings.TrimSpace(r.WorkPhone)
	r.OtherDescription = strings.TrimSpace(r.OtherDescription)
	for i, s := range r.Services {
		r.Services[i] = strings.TrimSpace(s)
	}
}
