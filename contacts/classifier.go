package contacts

import (
	"strings"

	"mktops/mbox"
)

// labelsHeader is the Gmail Takeout header carrying the message's label set.
const labelsHeader = "X-Gmail-Labels"

// IsSent reports whether a message was sent by the mailbox owner.
//
// When a labels header is present the decision rests on it alone: sent iff
// one of its comma-separated tokens matches a sent-label token. When the
// header is absent, assumeIfNoLabels decides — the caller derives it from
// the mailbox file path. Missing evidence means not sent; under-extraction
// beats importing received mail into the CRM.
func IsSent(msg mbox.Message, sentTokens []string, assumeIfNoLabels bool) bool {
	labels := msg.Header.Get(labelsHeader)
	if labels == "" {
		return assumeIfNoLabels
	}
	for _, raw := range strings.Split(labels, ",") {
		token := strings.ToLower(strings.TrimSpace(raw))
		for _, want := range sentTokens {
			if token == strings.ToLower(want) {
				return true
			}
		}
	}
	return false
}

// PathSuggestsSent reports whether a mailbox file path looks like a
// Sent-mail export (Takeout names these e.g. "Sent Mail.mbox").
func PathSuggestsSent(path string, hints []string) bool {
	lower := strings.ToLower(path)
	for _, hint := range hints {
		if strings.Contains(lower, strings.ToLower(hint)) {
			return true
		}
	}
	return false
}
