package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mktops/contacts"
)

var (
	reportTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginTop(1)
	reportLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})
	reportValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})
	reportErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func renderStats(s contacts.Stats) string {
	lines := []struct {
		label string
		value int
		warn  bool
	}{
		{"Total messages scanned", s.TotalMessages, false},
		{"Messages considered Sent", s.SentMessages, false},
		{"Messages with recipients", s.MessagesWithRecipients, false},
		{"Unique email addresses", s.UniqueContacts, false},
		{"Automated emails filtered", s.AutomatedFiltered, false},
		{"Message parse errors", s.ParseErrors, true},
	}

	var b strings.Builder
	b.WriteString(reportTitleStyle.Render("Processing stats"))
	b.WriteByte('\n')
	for _, line := range lines {
		style := reportValueStyle
		if line.warn && line.value > 0 {
			style = reportErrorStyle
		}
		b.WriteString(fmt.Sprintf("  %s %s\n",
			reportLabelStyle.Render(fmt.Sprintf("%-28s", line.label+":")),
			style.Render(fmt.Sprintf("%d", line.value))))
	}
	return strings.TrimRight(b.String(), "\n")
}
