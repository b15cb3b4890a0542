package mailer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsubscribeTokenRoundTrip(t *testing.T) {
	signer := NewUnsubscribeSigner("test-secret")

	token := signer.Token("customer@example.com")
	assert.True(t, signer.Verify("customer@example.com", token))
	assert.True(t, signer.Verify("  Customer@Example.COM ", token), "token binds the normalized address")

	assert.False(t, signer.Verify("other@example.com", token))
	assert.False(t, signer.Verify("customer@example.com", token+"ff"))
	assert.False(t, NewUnsubscribeSigner("different").Verify("customer@example.com", token))
}

func TestUnsubscribeLink(t *testing.T) {
	signer := NewUnsubscribeSigner("test-secret")

	link := signer.Link("http://localhost:8080/", "customer@example.com")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/api/email/unsubscribe", u.Path)
	assert.Equal(t, "customer@example.com", u.Query().Get("email"))
	assert.True(t, signer.Verify(u.Query().Get("email"), u.Query().Get("token")))
}
