package contacts

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mktops/config"
)

const pipelineMbox = `From 1@xxx Mon Jan 01 10:00:00 +0000 2024
X-Gmail-Labels: Sent
From: "Jane Owner" <owner@gmail.com>
To: "Alice Smith" <alice@example.com>, updates@mailchimp.com
Date: Mon, 01 Jan 2024 10:00:00 +0000

Call 555-123-4567 when you can.

From 2@xxx Thu Feb 01 10:00:00 +0000 2024
X-Gmail-Labels: Sent
From: "Jane Owner" <owner@gmail.com>
To: "Alice Smith" <alice@example.com>
Date: Thu, 01 Feb 2024 10:00:00 +0000

no phone here

From 3@xxx Thu Feb 01 11:00:00 +0000 2024
X-Gmail-Labels: Inbox
From: stranger@example.com
To: bystander@example.com
Date: Thu, 01 Feb 2024 11:00:00 +0000

received mail must contribute nothing

From 4@xxx Thu Feb 01 12:00:00 +0000 2024
X-Gmail-Labels: Sent
From: "Jane Owner" <owner@gmail.com>
To: noreply@service.example.com
Date: Thu, 01 Feb 2024 12:00:00 +0000

only an automated recipient
`

func newTestExtractor(policy MergePolicy) *Extractor {
	logger := log.New(io.Discard)
	return NewExtractor(logger, config.Defaults(), policy)
}

func writeMbox(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtractorEndToEnd(t *testing.T) {
	e := newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "export.mbox", pipelineMbox)))

	records, stats := e.Results()
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "alice@example.com", r.Email)
	assert.Equal(t, "Alice", r.FirstName)
	assert.Equal(t, "Smith", r.LastName)
	assert.Equal(t, "555-123-4567", r.Phone)
	assert.Equal(t, "no phone here", r.Notes)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), r.LastContacted.UTC())

	assert.Equal(t, 4, stats.TotalMessages)
	assert.Equal(t, 3, stats.SentMessages)
	assert.Equal(t, 3, stats.MessagesWithRecipients)
	assert.Equal(t, 1, stats.UniqueContacts)
	assert.Equal(t, 2, stats.AutomatedFiltered)
	assert.Equal(t, 0, stats.ParseErrors)
}

func TestExtractorSentOnlyAndFilterSoundness(t *testing.T) {
	e := newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "export.mbox", pipelineMbox)))

	records, _ := e.Results()
	for _, r := range records {
		assert.NotEqual(t, "bystander@example.com", r.Email, "received mail leaked a contact")
		assert.NotEqual(t, "updates@mailchimp.com", r.Email, "automated address leaked")
		assert.NotEqual(t, "noreply@service.example.com", r.Email, "automated address leaked")
	}
}

func TestExtractorPathFallbackForUnlabeledMessages(t *testing.T) {
	unlabeled := `From 1@xxx Mon Jan 01 10:00:00 +0000 2024
From: "Jane Owner" <owner@gmail.com>
To: alice@example.com
Date: Mon, 01 Jan 2024 10:00:00 +0000

body
`
	// In a file named like a Sent export, unlabeled messages count as sent.
	e := newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "Sent Mail.mbox", unlabeled)))
	records, _ := e.Results()
	assert.Len(t, records, 1)

	// In any other file they do not.
	e = newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "Inbox.mbox", unlabeled)))
	records, _ = e.Results()
	assert.Empty(t, records)
}

func TestExtractorCountsParseErrors(t *testing.T) {
	broken := `From 1@xxx Mon Jan 01 10:00:00 +0000 2024
not a header at all
From 2@xxx Mon Jan 01 10:00:00 +0000 2024
X-Gmail-Labels: Sent
From: "Jane Owner" <owner@gmail.com>
To: alice@example.com
Date: Mon, 01 Jan 2024 10:00:00 +0000

fine
`
	e := newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "export.mbox", broken)))

	records, stats := e.Results()
	assert.Len(t, records, 1)
	assert.Equal(t, 2, stats.TotalMessages)
	assert.Equal(t, 1, stats.ParseErrors)
}

func TestExtractorMergesAcrossFiles(t *testing.T) {
	first := `From 1@xxx Mon Jan 01 10:00:00 +0000 2024
X-Gmail-Labels: Sent
From: owner@gmail.com
To: "Alice Smith" <alice@example.com>
Date: Mon, 01 Jan 2024 10:00:00 +0000

Call 555-123-4567
`
	second := `From 1@xxx Thu Feb 01 10:00:00 +0000 2024
X-Gmail-Labels: Sent
From: owner@gmail.com
To: alice@example.com
Date: Thu, 01 Feb 2024 10:00:00 +0000

newer note from the second archive
`
	e := newTestExtractor(MergeLatestWithFallback)
	require.NoError(t, e.ProcessFile(writeMbox(t, "one.mbox", first)))
	require.NoError(t, e.ProcessFile(writeMbox(t, "two.mbox", second)))

	records, stats := e.Results()
	require.Len(t, records, 1)
	assert.Equal(t, "newer note from the second archive", records[0].Notes)
	assert.Equal(t, "555-123-4567", records[0].Phone)
	assert.Equal(t, 2, stats.TotalMessages)
	assert.Equal(t, 1, stats.UniqueContacts)
}

func TestExtractorMissingFileIsFatal(t *testing.T) {
	e := newTestExtractor(MergeLatestWithFallback)
	assert.Error(t, e.ProcessFile(filepath.Join(t.TempDir(), "nope.mbox")))
}
