package contacts

import (
	"regexp"
	"strings"

	"mktops/config"
)

// trackingShapes match machine-generated addresses regardless of domain:
// long hex local parts, purely numeric local parts, and the plus/dash
// "=" -encoded addressing ESPs use for bounce tracking.
var trackingShapes = []*regexp.Regexp{
	regexp.MustCompile(`^[a-f0-9]{20,}@`),
	regexp.MustCompile(`^\d+@`),
	regexp.MustCompile(`^[^@]*\+[^@]*=[^@]*@`),
	regexp.MustCompile(`^[^@]*-[^@]*=[^@]*@`),
}

// AutomatedFilter decides whether an address belongs to a system or service
// rather than a human correspondent. It is pure; the pattern sets are
// configuration loaded once and passed in.
type AutomatedFilter struct {
	domainSuffixes []string
	markers        []string
}

// NewAutomatedFilter builds a filter from the configured pattern sets.
func NewAutomatedFilter(p config.Patterns) *AutomatedFilter {
	f := &AutomatedFilter{
		domainSuffixes: make([]string, 0, len(p.AutomatedDomainSuffixes)),
		markers:        make([]string, 0, len(p.AutomatedAddressMarkers)),
	}
	for _, d := range p.AutomatedDomainSuffixes {
		f.domainSuffixes = append(f.domainSuffixes, strings.ToLower(d))
	}
	for _, m := range p.AutomatedAddressMarkers {
		f.markers = append(f.markers, strings.ToLower(m))
	}
	return f
}

// IsAutomated reports whether the address matches any configured pattern.
// Matching is case-insensitive.
func (f *AutomatedFilter) IsAutomated(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return true
	}
	at := strings.LastIndexByte(email, '@')
	if at >= 0 {
		domain := email[at+1:]
		for _, suffix := range f.domainSuffixes {
			if domain == suffix || strings.HasSuffix(domain, "."+suffix) {
				return true
			}
		}
	}
	for _, marker := range f.markers {
		if strings.Contains(email, marker) {
			return true
		}
	}
	for _, shape := range trackingShapes {
		if shape.MatchString(email) {
			return true
		}
	}
	return false
}
