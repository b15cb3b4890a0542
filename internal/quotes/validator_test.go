package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuoteRequest() QuoteRequest {
	return QuoteRequest{
		FullName:       "Valid Name",
		ServiceAddress: "123 Main Street, Springfield",
		Email:          "valid@example.com",
		CellPhone:      "+15551234567",
		Services:       []string{"Junk Removal"},
		PrivacyPolicy:  true,
	}
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.Validate(validQuoteRequest()))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := NewValidator()

	violations := v.Validate(QuoteRequest{})
	require.NotEmpty(t, violations)

	fields := make(map[string]bool, len(violations))
	for _, fe := range violations {
		fields[fe.Param] = true
	}
	for _, want := range []string{"fullName", "serviceAddress", "email", "cellPhone", "services", "privacyPolicy"} {
		assert.True(t, fields[want], "expected violation for %s", want)
	}
}

func TestValidateOtherRequiresDescription(t *testing.T) {
	v := NewValidator()

	req := validQuoteRequest()
	req.Services = []string{"Junk Removal", "Other"}

	violations := v.Validate(req)
	require.Len(t, violations, 1)
	assert.Equal(t, "otherDescription", violations[0].Param)

	req.OtherDescription = "old hot tub"
	assert.Empty(t, v.Validate(req))
}

func TestValidatePhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"5551234567", true},
		{"+15551234567", true},
		{"15551234567", true},
		{"+441632960961", true},
		{"0123456", false},
		{"+1", false},
		{"555-123-4567", false},
		{"not a phone", false},
		{"+123456789012345678", false},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			req := validQuoteRequest()
			req.CellPhone = tt.phone
			violations := v.Validate(req)
			if tt.valid {
				assert.Empty(t, violations)
			} else {
				require.Len(t, violations, 1)
				assert.Equal(t, "cellPhone", violations[0].Param)
			}
		})
	}
}

func TestValidateOptionalPhones(t *testing.T) {
	v := NewValidator()

	req := validQuoteRequest()
	req.HomePhone = ""
	req.WorkPhone = ""
	assert.Empty(t, v.Validate(req))

	req.HomePhone = "bad"
	violations := v.Validate(req)
	require.Len(t, violations, 1)
	assert.Equal(t, "homePhone", violations[0].Param)
}
