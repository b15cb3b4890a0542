package mailer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Message is a fully rendered email ready for the transport.
type Message struct {
	From      string
	To        string
	Subject   string
	MessageID string
	Headers   map[string]string
	HTMLBody  string
}

// NewMessageID generates a globally unique RFC5322 Message-ID value.
func NewMessageID() string {
	return fmt.Sprintf("<%s@cleanedgeremoval.com>", uuid.NewString())
}

// sanitizeHeader strips CR and LF so values built from user input
// cannot terminate a header line or smuggle additional headers into
// the block.
func sanitizeHeader(v string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, v)
}

// Encode serializes the message into wire format for SMTP DATA.
// Custom headers are written in sorted order so output is deterministic.
// Every header name and value is sanitized; the subject in particular
// carries free-text submission fields.
func (m *Message) Encode() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sanitizeHeader(m.From))
	fmt.Fprintf(&b, "To: %s\r\n", sanitizeHeader(m.To))
	fmt.Fprintf(&b, "Subject: %s\r\n", sanitizeHeader(m.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	if m.MessageID != "" {
		fmt.Fprintf(&b, "Message-ID: %s\r\n", sanitizeHeader(m.MessageID))
	}

	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", sanitizeHeader(k), sanitizeHeader(m.Headers[k]))
	}

	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.HTMLBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
