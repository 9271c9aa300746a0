package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Patterns defines the rule sets used to classify and filter messages.
type Patterns struct {
	// SentLabelTokens are mailbox label values that mark a message as sent
	// (Gmail Takeout writes these into X-Gmail-Labels).
	SentLabelTokens []string `json:"sentLabelTokens"`
	// SentPathHints are substrings of a mailbox file path that indicate a
	// Sent-mail export, used when messages carry no labels header.
	SentPathHints []string `json:"sentPathHints"`
	// AutomatedDomainSuffixes are domain endings of known ESP/tracking
	// senders, e.g. "hubspotemail.net".
	AutomatedDomainSuffixes []string `json:"automatedDomainSuffixes"`
	// AutomatedAddressMarkers are substrings anywhere in an address that
	// mark it as a system mailbox, e.g. "noreply".
	AutomatedAddressMarkers []string `json:"automatedAddressMarkers"`
}

// Defaults returns the built-in pattern sets. They cover the Gmail Takeout
// label names and the automated-sender patterns we have seen in real exports.
func Defaults() Patterns {
	return Patterns{
		SentLabelTokens: []string{"sent", "sent mail", "sent items"},
		SentPathHints:   []string{"sent"},
		AutomatedDomainSuffixes: []string{
			"hubspotemail.net",
			"hubspot.com",
			"mailchimp.com",
			"linuxfoundation.org",
		},
		AutomatedAddressMarkers: []string{
			"no-reply",
			"noreply",
			"donotreply",
			"unsubscribe",
			"notifications",
			"mailer",
			"mailer-daemon",
			"bounce",
		},
	}
}

// Manager handles loading, saving, and accessing filter patterns.
type Manager struct {
	filePath string
	patterns *Patterns
	mu       sync.RWMutex
}

// NewManager creates a pattern manager backed by the given JSON file. If the
// file does not exist it is created with the default patterns.
func NewManager(filePath string) (*Manager, error) {
	m := &Manager{filePath: filePath}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads the pattern file, seeding it with defaults when missing.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			p := Defaults()
			m.patterns = &p
			return m.save()
		}
		return err
	}

	var p Patterns
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	m.patterns = &p
	return nil
}

// save writes the current patterns to the JSON file. Callers must hold mu.
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.patterns, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}

// Get returns a copy of the current patterns.
func (m *Manager) Get() Patterns {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := *m.patterns
	return p
}
