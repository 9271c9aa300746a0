package contacts

import (
	"time"
)

// NotesLimit caps the notes field at the first 200 characters of the body of
// the latest message for a contact.
const NotesLimit = 200

// MergePolicy controls how derived fields behave when a later-dated message
// arrives for an existing contact.
type MergePolicy int

const (
	// MergeLatestWithFallback takes the latest message's extraction, but an
	// empty extraction keeps the previously stored value. Matches what a
	// human would want: a newer message without a phone number should not
	// erase a known number.
	MergeLatestWithFallback MergePolicy = iota
	// MergeLatestStrict mirrors the latest message unconditionally, empty
	// extractions included.
	MergeLatestStrict
)

// Record is one aggregated contact, keyed by lower-cased email address.
type Record struct {
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	LastContacted time.Time // zero when no message had a parseable date
	Notes         string
}

type entry struct {
	rec Record
	// Timestamps of the messages that supplied phone and name, so fallback
	// merging stays independent of message arrival order.
	phoneAt time.Time
	nameAt  time.Time
}

// Aggregator deduplicates contact events by address, retaining the most
// recent event per address. It is single-threaded by design; the mailbox is
// consumed by one logical thread of control.
type Aggregator struct {
	policy  MergePolicy
	entries map[string]*entry
	order   []string // first-seen order, for deterministic output
}

// NewAggregator returns an empty aggregator with the given merge policy.
func NewAggregator(policy MergePolicy) *Aggregator {
	return &Aggregator{policy: policy, entries: make(map[string]*entry)}
}

// Ingest records one contact event. email must already be lower-cased and
// non-automated. A zero date means the message had no parseable date: it can
// seed a record but never overrides existing data.
func (a *Aggregator) Ingest(email, displayName string, date time.Time, body string) {
	first, last := SplitName(displayName)
	phone := Phone(body)
	notes := truncateRunes(body, NotesLimit)

	e, ok := a.entries[email]
	if !ok {
		e = &entry{rec: Record{
			Email:         email,
			FirstName:     first,
			LastName:      last,
			Phone:         phone,
			LastContacted: date,
			Notes:         notes,
		}}
		if first != "" || last != "" {
			e.nameAt = date
		}
		if phone != "" {
			e.phoneAt = date
		}
		a.entries[email] = e
		a.order = append(a.order, email)
		return
	}

	newer := date.After(e.rec.LastContacted)
	if newer {
		e.rec.LastContacted = date
		e.rec.Notes = notes
	}

	switch a.policy {
	case MergeLatestStrict:
		if newer {
			e.rec.FirstName, e.rec.LastName = first, last
			e.rec.Phone = phone
		}
	case MergeLatestWithFallback:
		// Per field, the latest message that yielded a value wins. An
		// older message can still fill a field no other message supplied,
		// which keeps the result invariant under message reordering.
		if phone != "" && (e.rec.Phone == "" || date.After(e.phoneAt)) {
			e.rec.Phone = phone
			e.phoneAt = date
		}
		if (first != "" || last != "") &&
			(e.rec.FirstName == "" && e.rec.LastName == "" || date.After(e.nameAt)) {
			e.rec.FirstName, e.rec.LastName = first, last
			e.nameAt = date
		}
	}
}

// Len returns the number of unique contacts seen so far.
func (a *Aggregator) Len() int { return len(a.entries) }

// Records flattens the aggregation in first-seen order of each address.
func (a *Aggregator) Records() []Record {
	out := make([]Record, 0, len(a.order))
	for _, email := range a.order {
		out = append(out, a.entries[email].rec)
	}
	return out
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
