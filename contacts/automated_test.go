package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mktops/config"
)

func TestIsAutomated(t *testing.T) {
	f := NewAutomatedFilter(config.Defaults())

	automated := []string{
		"updates@mailchimp.com",
		"x@bcc.hubspot.com",
		"tracking@e1.hubspotemail.net",
		"noreply@shop.example.com",
		"no-reply@example.com",
		"donotreply@example.com",
		"unsubscribe@lists.example.com",
		"notifications@github.example.com",
		"mailer-daemon@example.com",
		"bounce-123@example.com",
		"NOREPLY@EXAMPLE.COM",
		"deadbeefdeadbeefdeadbeef@example.com", // long hex tracking id
		"123456@example.com",                   // numeric local part
		"user+tag=dest@example.com",            // plus addressing with equals
		"list-abc=def@example.com",             // dash with equals
		"announce@events.linuxfoundation.org",
	}
	for _, addr := range automated {
		assert.True(t, f.IsAutomated(addr), "expected automated: %s", addr)
	}

	human := []string{
		"alice@example.com",
		"jane.q.public@gmail.com",
		"bob-smith@company.co",
		"a1b2c3@example.com", // short mixed local part, not a tracking id
	}
	for _, addr := range human {
		assert.False(t, f.IsAutomated(addr), "expected human: %s", addr)
	}
}

func TestIsAutomatedEmptyAddress(t *testing.T) {
	f := NewAutomatedFilter(config.Defaults())
	assert.True(t, f.IsAutomated(""))
	assert.True(t, f.IsAutomated("   "))
}
