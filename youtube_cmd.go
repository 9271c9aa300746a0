package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/googleapi"

	"mktops/youtube"
)

func newYouTubeCmd() *cobra.Command {
	var (
		spreadsheetID      string
		dateArg            string
		clientSecretPath   string
		tokenPath          string
		dailyRange         string
		videoRange         string
		trafficRange       string
		maxVideoBatches    int
		skipVideoMetrics   bool
		skipTrafficSources bool
	)

	cmd := &cobra.Command{
		Use:   "youtube",
		Short: "Export daily YouTube analytics to Google Sheets",
		Long: "Fetches channel-, video-, and traffic-source-level metrics from the YouTube " +
			"Data and Analytics APIs for one day and appends them to the configured " +
			"worksheets. Meant to run on a daily cadence after a one-time OAuth consent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveTargetDate(dateArg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pulledAt := time.Now().UTC().Truncate(time.Second)
			logger.Info("running YouTube export", "day", day)

			httpClient, err := youtube.NewHTTPClient(ctx, clientSecretPath, tokenPath)
			if err != nil {
				return err
			}
			svcs, err := youtube.NewServices(ctx, httpClient, logger)
			if err != nil {
				return err
			}

			err = runExport(ctx, svcs, exportParams{
				spreadsheetID:      spreadsheetID,
				day:                day,
				pulledAt:           pulledAt,
				dailyRange:         dailyRange,
				videoRange:         videoRange,
				trafficRange:       trafficRange,
				maxVideoBatches:    maxVideoBatches,
				skipVideoMetrics:   skipVideoMetrics,
				skipTrafficSources: skipTrafficSources,
			})
			var apiErr *googleapi.Error
			if errors.As(err, &apiErr) {
				logger.Error("Google API error", "status", apiErr.Code, "message", apiErr.Message)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "target Google Spreadsheet ID (found in the sheet URL)")
	cmd.Flags().StringVar(&dateArg, "date", "", "ISO date (YYYY-MM-DD) to export; defaults to yesterday")
	cmd.Flags().StringVar(&clientSecretPath, "client-secret", "client_secret.json", "path to OAuth client secret JSON file")
	cmd.Flags().StringVar(&tokenPath, "token", "token.json", "path to store the OAuth refresh token")
	cmd.Flags().StringVar(&dailyRange, "daily-range", "Daily!A:Z", "sheet range for daily channel metrics")
	cmd.Flags().StringVar(&videoRange, "video-range", "VideoDaily!A:Z", "sheet range for per-video metrics")
	cmd.Flags().StringVar(&trafficRange, "traffic-range", "TrafficSources!A:Z", "sheet range for traffic source metrics")
	cmd.Flags().IntVar(&maxVideoBatches, "max-video-batches", 10, "safety cap on analytics paging batches for video metrics")
	cmd.Flags().BoolVar(&skipVideoMetrics, "skip-video-metrics", false, "skip per-video analytics")
	cmd.Flags().BoolVar(&skipTrafficSources, "skip-traffic-sources", false, "skip the traffic source breakdown")
	_ = cmd.MarkFlagRequired("spreadsheet-id")
	return cmd
}

type exportParams struct {
	spreadsheetID      string
	day                string
	pulledAt           time.Time
	dailyRange         string
	videoRange         string
	trafficRange       string
	maxVideoBatches    int
	skipVideoMetrics   bool
	skipTrafficSources bool
}

func runExport(ctx context.Context, svcs *youtube.Services, p exportParams) error {
	stats, err := svcs.ChannelStatistics(ctx)
	if err != nil {
		return err
	}
	metrics, err := svcs.DailyChannelMetrics(ctx, p.day)
	if err != nil {
		return err
	}
	dailyRow := youtube.DailyRow(p.day, p.pulledAt, stats, metrics)
	if err := svcs.AppendRows(ctx, p.spreadsheetID, p.dailyRange, [][]interface{}{dailyRow}); err != nil {
		return err
	}

	if !p.skipVideoMetrics {
		videos, err := svcs.DailyVideoMetrics(ctx, p.day, p.maxVideoBatches)
		if err != nil {
			return err
		}
		rows := youtube.VideoRows(p.day, p.pulledAt, videos)
		if err := svcs.AppendRows(ctx, p.spreadsheetID, p.videoRange, rows); err != nil {
			return err
		}
	}

	if !p.skipTrafficSources {
		sources, err := svcs.DailyTrafficSources(ctx, p.day)
		if err != nil {
			return err
		}
		rows := youtube.TrafficRows(p.day, p.pulledAt, sources)
		if err := svcs.AppendRows(ctx, p.spreadsheetID, p.trafficRange, rows); err != nil {
			return err
		}
	}
	return nil
}

// resolveTargetDate defaults to yesterday: today's analytics are still
// incomplete while the day is in progress.
func resolveTargetDate(arg string) (string, error) {
	if arg == "" {
		return time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"), nil
	}
	t, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q, want YYYY-MM-DD: %w", arg, err)
	}
	return t.Format("2006-01-02"), nil
}
