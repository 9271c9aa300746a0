package mbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc5322", "Mon, 07 Apr 2025 14:31:02 +0000", time.Date(2025, 4, 7, 14, 31, 2, 0, time.UTC)},
		{"no weekday", "7 Apr 2025 14:31:02 +0000", time.Date(2025, 4, 7, 14, 31, 2, 0, time.UTC)},
		{"tz comment", "Mon, 7 Apr 2025 14:31:02 +0000 (UTC)", time.Date(2025, 4, 7, 14, 31, 2, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseDate(tc.value)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestParseDateUnparseable(t *testing.T) {
	assert.True(t, parseDate("").IsZero())
	assert.True(t, parseDate("not a date").IsZero())
}

func TestParseMessagePlainBody(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"To: b@example.com\r\n" +
		"Date: Mon, 07 Apr 2025 14:31:02 +0000\r\n" +
		"\r\n" +
		"Line one.\nLine two.\n"
	msg, err := ParseMessage(raw, "in.mbox")
	require.NoError(t, err)
	assert.Equal(t, "Line one. Line two.", msg.Body)
	assert.False(t, msg.Date.IsZero())
}

func TestParseMessageMultipartPrefersPlainText(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"To: b@example.com\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: multipart/alternative; boundary=SEP\r\n" +
		"\r\n" +
		"--SEP\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>HTML wins?</p></body></html>\r\n" +
		"--SEP\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		"Plain text =E2=9C=93 body\r\n" +
		"--SEP--\r\n"
	msg, err := ParseMessage(raw, "in.mbox")
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Plain text")
	assert.NotContains(t, msg.Body, "HTML wins")
}

func TestParseMessageHTMLOnly(t *testing.T) {
	raw := "From: a@example.com\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Converted to text</p></body></html>\r\n"
	msg, err := ParseMessage(raw, "in.mbox")
	require.NoError(t, err)
	assert.Contains(t, msg.Body, "Converted to text")
	assert.NotContains(t, msg.Body, "<p>")
}

func TestParseMessageBase64Body(t *testing.T) {
	// "Call 555-123-4567" base64-encoded.
	raw := "From: a@example.com\r\n" +
		"Content-Type: text/plain; charset=utf-8\r\n" +
		"Content-Transfer-Encoding: base64\r\n" +
		"\r\n" +
		"Q2FsbCA1NTUtMTIzLTQ1Njc=\r\n"
	msg, err := ParseMessage(raw, "in.mbox")
	require.NoError(t, err)
	assert.Equal(t, "Call 555-123-4567", msg.Body)
}
