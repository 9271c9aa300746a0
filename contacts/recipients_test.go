package contacts

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipientsParsesToAndCc(t *testing.T) {
	h := mail.Header{
		"To": []string{`"Alice Smith" <Alice@Example.com>, bob@example.com`},
		"Cc": []string{`"Carol Jones" <carol@example.com>`},
	}
	got := Recipients(h)
	require.Len(t, got, 3)
	assert.Equal(t, Recipient{DisplayName: "Alice Smith", Address: "alice@example.com"}, got[0])
	assert.Equal(t, Recipient{DisplayName: "", Address: "bob@example.com"}, got[1])
	assert.Equal(t, Recipient{DisplayName: "Carol Jones", Address: "carol@example.com"}, got[2])
}

func TestRecipientsSkipsMalformedEntriesIndividually(t *testing.T) {
	h := mail.Header{
		"To": []string{`not-an-address, "Dave" <dave@example.com>, also bad`},
	}
	got := Recipients(h)
	require.Len(t, got, 1)
	assert.Equal(t, "dave@example.com", got[0].Address)
}

func TestRecipientsEmptyHeaders(t *testing.T) {
	assert.Empty(t, Recipients(mail.Header{}))
	assert.Empty(t, Recipients(mail.Header{"To": []string{"  "}}))
}

func TestRecipientsMultipleHeaderOccurrences(t *testing.T) {
	h := mail.Header{
		"To": []string{"a@example.com", "b@example.com"},
	}
	got := Recipients(h)
	require.Len(t, got, 2)
}
