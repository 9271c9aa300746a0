package contacts

import (
	"regexp"
	"strings"
)

// phonePattern matches NANP-style numbers with common separators and an
// optional country code, or a bare international "+" number of 7-15 digits.
// Inherently best effort: free text produces both false positives and
// misses, which is a documented limitation of phone extraction.
var phonePattern = regexp.MustCompile(
	`(?:\+?\d{1,3}[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}|\+\d{7,15}`)

// Phone returns the first phone-shaped substring of the body, or "".
func Phone(body string) string {
	return strings.TrimSpace(phonePattern.FindString(body))
}

// SplitName splits a display name on the first whitespace run: first token
// becomes the first name, the remainder (joined by single spaces) the last
// name. "Jane Q. Public" -> ("Jane", "Q. Public").
func SplitName(display string) (first, last string) {
	display = strings.TrimSpace(display)
	display = strings.Trim(display, `"'`)
	fields := strings.Fields(display)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
