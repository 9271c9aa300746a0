package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	logger  *log.Logger
	verbose bool
)

func main() {
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	root := &cobra.Command{
		Use:     "mktops",
		Short:   "Marketing operations toolkit",
		Long:    "mktops bundles two marketing automation pipelines: mbox contact extraction for CRM import, and YouTube analytics export to Google Sheets.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newContactsCmd())
	root.AddCommand(newYouTubeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
