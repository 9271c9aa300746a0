package contacts

import (
	"github.com/charmbracelet/log"

	"mktops/config"
	"mktops/mbox"
)

// Stats are the counters surfaced by the --stats report. Recoverable errors
// aggregate here instead of being raised individually.
type Stats struct {
	TotalMessages          int
	SentMessages           int
	MessagesWithRecipients int
	UniqueContacts         int
	AutomatedFiltered      int
	ParseErrors            int
}

// Extractor runs the contact pipeline: stream messages, keep the sent ones,
// parse their recipients, drop automated addresses, and aggregate the rest.
// One Extractor can consume several mbox files; contacts merge across them.
type Extractor struct {
	logger   *log.Logger
	patterns config.Patterns
	filter   *AutomatedFilter
	agg      *Aggregator
	stats    Stats
}

// NewExtractor builds an extractor with the given filter patterns and merge
// policy.
func NewExtractor(logger *log.Logger, patterns config.Patterns, policy MergePolicy) *Extractor {
	return &Extractor{
		logger:   logger,
		patterns: patterns,
		filter:   NewAutomatedFilter(patterns),
		agg:      NewAggregator(policy),
	}
}

// ProcessFile streams one mbox file through the pipeline. Only failure to
// open the file is an error; every per-message problem is counted and
// skipped.
func (e *Extractor) ProcessFile(path string) error {
	r, err := mbox.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	// Takeout Sent exports often lack the labels header entirely; when the
	// file path itself says "sent", unlabeled messages count as sent.
	assumeSent := PathSuggestsSent(path, e.patterns.SentPathHints)
	e.logger.Debug("processing mailbox", "path", path, "assumeSent", assumeSent)

	for {
		env, ok := r.Next()
		if !ok {
			break
		}
		e.stats.TotalMessages++
		if env.Err != nil {
			e.stats.ParseErrors++
			e.logger.Debug("skipping unparseable message", "path", path, "error", env.Err)
			continue
		}
		e.ingest(env.Message, assumeSent)
	}
	return nil
}

func (e *Extractor) ingest(msg mbox.Message, assumeSent bool) {
	if !IsSent(msg, e.patterns.SentLabelTokens, assumeSent) {
		return
	}
	e.stats.SentMessages++

	recipients := Recipients(msg.Header)
	if len(recipients) == 0 {
		return
	}
	e.stats.MessagesWithRecipients++

	for _, rcpt := range recipients {
		if e.filter.IsAutomated(rcpt.Address) {
			e.stats.AutomatedFiltered++
			continue
		}
		e.agg.Ingest(rcpt.Address, rcpt.DisplayName, msg.Date, msg.Body)
	}
}

// Results returns the aggregated records in first-seen order together with
// the final counters.
func (e *Extractor) Results() ([]Record, Stats) {
	stats := e.stats
	stats.UniqueContacts = e.agg.Len()
	return e.agg.Records(), stats
}
