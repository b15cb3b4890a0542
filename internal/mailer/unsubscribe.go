package mailer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// UnsubscribeSigner issues and verifies HMAC tokens embedded in
// marketing unsubscribe links. The token binds the recipient address
// so links cannot be replayed for other addresses.
type UnsubscribeSigner struct {
	secret []byte
}

func NewUnsubscribeSigner(secret string) *UnsubscribeSigner {
	return &UnsubscribeSigner{secret: []byte(secret)}
}

// Token returns the hex HMAC-SHA256 of the lowercased address.
func (s *UnsubscribeSigner) Token(email string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether token matches the address.
func (s *UnsubscribeSigner) Verify(email, token string) bool {
	expected := s.Token(email)
	return hmac.Equal([]byte(expected), []byte(token))
}

// Link builds the full unsubscribe URL for the address.
func (s *UnsubscribeSigner) Link(baseURL, email string) string {
	params := url.Values{}
	params.Set("email", email)
	params.Set("token", s.Token(email))
	return fmt.Sprintf("%s/api/email/unsubscribe?%s", strings.TrimRight(baseURL, "/"), params.Encode())
}
