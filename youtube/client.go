package youtube

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"google.golang.org/api/youtube/v3"
	youtubeanalytics "google.golang.org/api/youtubeanalytics/v2"
)

// Services bundles the three Google APIs the exporter talks to, built over a
// single authorized HTTP client.
type Services struct {
	YouTube   *youtube.Service
	Analytics *youtubeanalytics.Service
	Sheets    *sheets.Service
	logger    *log.Logger
}

// NewServices constructs the service bundle.
func NewServices(ctx context.Context, httpClient *http.Client, logger *log.Logger) (*Services, error) {
	yt, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	analytics, err := youtubeanalytics.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube Analytics service: %w", err)
	}
	sh, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return &Services{YouTube: yt, Analytics: analytics, Sheets: sh, logger: logger}, nil
}

// AppendRows appends rows to the given sheet range. No-op on empty input.
func (s *Services) AppendRows(ctx context.Context, spreadsheetID, rangeName string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := s.Sheets.Spreadsheets.Values.
		Append(spreadsheetID, rangeName, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rangeName, err)
	}
	s.logger.Info("appended rows", "count", len(rows), "range", rangeName)
	return nil
}
