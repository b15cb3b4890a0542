package customers

import "time"

// Customer is a prospective or active customer record. Rows are created by
// the public quote pipeline and read by the back office.
type Customer struct {
	ID int64 `json:"id" db:"id"`

	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`

	PrimaryAddressStreet  string `json:"primary_address_street" db:"primary_address_street"`
	PrimaryAddressCity    string `json:"primary_address_city" db:"primary_address_city"`
	PrimaryAddressState   string `json:"primary_address_state" db:"primary_address_state"`
	PrimaryAddressZip     string `json:"primary_address_zip" db:"primary_address_zip"`
	PrimaryAddressCountry string `json:"primary_address_country" db:"primary_address_country"`

	PhoneCell string  `json:"phone_cell" db:"phone_cell"`
	PhoneHome *string `json:"phone_home,omitempty" db:"phone_home"`
	PhoneWork *string `json:"phone_work,omitempty" db:"phone_work"`

	Notes *string `json:"notes,omitempty" db:"notes"`

	MarketingConsent     bool       `json:"marketing_consent" db:"marketing_consent"`
	MarketingConsentDate *time.Time `json:"marketing_consent_date,omitempty" db:"marketing_consent_date"`

	PrivacyPolicyAgreed     bool      `json:"privacy_policy_agreed" db:"privacy_policy_agreed"`
	PrivacyPolicyAgreedDate time.Time `json:"privacy_policy_agreed_date" db:"privacy_policy_agreed_date"`

	CustomerSince time.Time `json:"customer_since" db:"customer_since"`
	Active        bool      `json:"active" db:"active"`
}

// ListCustomersRequest filters the customer listing. Limit and Offset
// are bounded by the handler before reaching the repository.
type ListCustomersRequest struct {
	Consented *bool   `json:"consented,omitempty"`
	Search    *string `json:"search,omitempty"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}
