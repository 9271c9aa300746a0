package mbox

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/jaytaylor/html2text"
)

// Message is one parsed email from a mailbox archive.
type Message struct {
	Path   string // source mbox file
	Header mail.Header
	Date   time.Time // zero when the Date header is missing or unparseable
	Body   string    // best-effort plain text, whitespace collapsed
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ParseMessage parses one raw message (without the mbox "From " separator
// line). The Date header is parsed on a best-effort basis: a message with an
// unreadable date still parses, with a zero Date.
func ParseMessage(raw string, path string) (Message, error) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return Message{}, err
	}

	m := Message{
		Path:   path,
		Header: msg.Header,
		Date:   parseDate(msg.Header.Get("Date")),
	}

	body, err := bodyText(msg.Header, msg.Body)
	if err != nil {
		return Message{}, err
	}
	m.Body = strings.TrimSpace(whitespaceRun.ReplaceAllString(body, " "))
	return m, nil
}

// Real exports carry Date headers in more shapes than RFC 5322 allows, so
// after mail.ParseDate we fall back through the layouts we have seen.
var dateLayouts = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC822,
}

func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := mail.ParseDate(value); err == nil {
		return t
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	// Retry without a trailing "(TZ)" comment, which trips several layouts.
	if open := strings.LastIndex(value, " ("); open != -1 {
		if closing := strings.LastIndex(value, ")"); closing > open {
			stripped := strings.TrimSpace(value[:open] + value[closing+1:])
			for _, layout := range dateLayouts {
				if t, err := time.Parse(layout, stripped); err == nil {
					return t
				}
			}
		}
	}
	return time.Time{}
}

// bodyText extracts a plain-text body. text/plain parts win; text/html parts
// are converted with html2text; other parts are ignored.
func bodyText(h mail.Header, body io.Reader) (string, error) {
	mediaType, params, _ := mime.ParseMediaType(h.Get("Content-Type"))

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(body, params["boundary"])
		var plain, html string
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				break
			}
			partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
			b, err := io.ReadAll(decodeTransfer(part, part.Header.Get("Content-Transfer-Encoding")))
			if err != nil {
				continue
			}
			switch {
			case strings.HasPrefix(partType, "text/plain") && plain == "":
				plain = string(b)
			case strings.HasPrefix(partType, "text/html") && html == "":
				if t, err := html2text.FromString(string(b), html2text.Options{OmitLinks: true, TextOnly: true}); err == nil {
					html = t
				}
			}
		}
		if plain != "" {
			return plain, nil
		}
		return html, nil
	}

	b, err := io.ReadAll(decodeTransfer(body, h.Get("Content-Transfer-Encoding")))
	if err != nil {
		return "", err
	}
	if strings.Contains(strings.ToLower(mediaType), "html") {
		t, err := html2text.FromString(string(b), html2text.Options{OmitLinks: true, TextOnly: true})
		if err == nil {
			return t, nil
		}
	}
	return string(b), nil
}

func decodeTransfer(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}
