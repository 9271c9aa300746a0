package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mktops/config"
	"mktops/contacts"
)

const defaultOutputPath = "hubspot_contacts.csv"

func newContactsCmd() *cobra.Command {
	var (
		outputPath   string
		showStats    bool
		filtersPath  string
		strictLatest bool
	)

	cmd := &cobra.Command{
		Use:   "contacts <mbox> [<mbox>...]",
		Short: "Extract deduplicated contacts from Gmail Takeout mbox files",
		Long: "Streams Sent-mail messages out of one or more mbox exports, parses their " +
			"recipients, drops automated addresses, and writes one CSV row per unique " +
			"contact with the latest contact date, a phone number when one appears in a " +
			"message body, and a notes snippet from the most recent message.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := config.Defaults()
			if filtersPath != "" {
				mgr, err := config.NewManager(filtersPath)
				if err != nil {
					return fmt.Errorf("load filter patterns: %w", err)
				}
				patterns = mgr.Get()
			}

			policy := contacts.MergeLatestWithFallback
			if strictLatest {
				policy = contacts.MergeLatestStrict
			}

			extractor := contacts.NewExtractor(logger, patterns, policy)
			for _, path := range args {
				if err := extractor.ProcessFile(path); err != nil {
					return fmt.Errorf("open mailbox %s: %w", path, err)
				}
			}

			records, stats := extractor.Results()
			if err := contacts.WriteCSVFile(outputPath, records); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}

			fmt.Printf("Wrote %d contacts to %s\n", len(records), outputPath)
			if showStats {
				fmt.Println(renderStats(stats))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", defaultOutputPath, "output CSV path")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print processing statistics")
	cmd.Flags().StringVar(&filtersPath, "filters", "", "path to filter pattern JSON (created with defaults if missing)")
	cmd.Flags().BoolVar(&strictLatest, "strict-latest", false, "latest message wins for every field, even when its extraction is empty")
	return cmd
}
