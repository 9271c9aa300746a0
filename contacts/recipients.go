package contacts

import (
	"net/mail"
	"strings"
)

// Recipient is one addressee parsed from a To or Cc header.
type Recipient struct {
	DisplayName string
	Address     string // lower-cased, the identity key
}

// Recipients parses every To and Cc header value of a message into
// individual recipients. A malformed entry is skipped on its own; it never
// aborts the rest of the header or the rest of the message.
func Recipients(h mail.Header) []Recipient {
	var out []Recipient
	for _, key := range []string{"To", "Cc"} {
		for _, value := range h[key] {
			out = append(out, parseAddressList(value)...)
		}
	}
	return out
}

func parseAddressList(value string) []Recipient {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if addrs, err := mail.ParseAddressList(value); err == nil {
		return toRecipients(addrs)
	}
	// One bad entry fails the whole list in net/mail, so fall back to
	// splitting on commas and salvaging each entry individually. This
	// mis-splits quoted display names containing commas; those entries are
	// dropped rather than aborting the message.
	var out []Recipient
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := mail.ParseAddress(part)
		if err != nil {
			continue
		}
		out = append(out, toRecipients([]*mail.Address{addr})...)
	}
	return out
}

func toRecipients(addrs []*mail.Address) []Recipient {
	out := make([]Recipient, 0, len(addrs))
	for _, a := range addrs {
		address := strings.ToLower(strings.TrimSpace(a.Address))
		if address == "" {
			continue
		}
		out = append(out, Recipient{DisplayName: a.Name, Address: address})
	}
	return out
}
