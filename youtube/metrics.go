package youtube

import (
	"context"
	"fmt"
	"strconv"
)

const (
	// analyticsPageSize is the row count requested per Analytics query; a
	// short page signals the last one.
	analyticsPageSize = 200
	// metadataChunkSize is the Data API's cap on ids per Videos.List call.
	metadataChunkSize = 50
)

// channelMetricsList is the per-day metric set, in the column order the
// Daily worksheet expects.
const channelMetricsList = "views,estimatedMinutesWatched,averageViewDuration,averageViewPercentage," +
	"likes,comments,shares,subscribersGained,subscribersLost,estimatedRevenue," +
	"impressions,impressionsClickThroughRate"

// videoMetricsList drops estimatedRevenue, which the Analytics API does not
// report per video.
const videoMetricsList = "views,estimatedMinutesWatched,averageViewDuration,averageViewPercentage," +
	"likes,comments,shares,subscribersGained,subscribersLost,impressions," +
	"impressionsClickThroughRate"

// ChannelStats are the lifetime totals from the Data API.
type ChannelStats struct {
	ChannelID       string
	Title           string
	Subscribers     uint64
	TotalViews      uint64
	TotalVideos     uint64
	UploadsPlaylist string
}

// ChannelMetrics are one day's channel-level analytics. Found is false when
// the API returned no row for the day (recent dates often lag).
type ChannelMetrics struct {
	Views             float64
	MinutesWatched    float64
	AvgViewDuration   float64
	AvgViewPercentage float64
	Likes             float64
	Comments          float64
	Shares            float64
	SubsGained        float64
	SubsLost          float64
	EstimatedRevenue  float64
	Impressions       float64
	CTR               float64
	Found             bool
}

// VideoMetrics are one day's analytics for a single video, joined with its
// Data API metadata.
type VideoMetrics struct {
	VideoID           string
	Title             string
	PublishedAt       string
	Views             float64
	MinutesWatched    float64
	AvgViewDuration   float64
	AvgViewPercentage float64
	Likes             float64
	Comments          float64
	Shares            float64
	SubsGained        float64
	SubsLost          float64
	Impressions       float64
	CTR               float64
}

// TrafficSource is one day's views from a single traffic source type.
type TrafficSource struct {
	Source         string
	Views          float64
	MinutesWatched float64
}

// ChannelStatistics fetches the authenticated user's channel totals.
func (s *Services) ChannelStatistics(ctx context.Context) (ChannelStats, error) {
	resp, err := s.YouTube.Channels.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Mine(true).
		Context(ctx).
		Do()
	if err != nil {
		return ChannelStats{}, fmt.Errorf("list channels: %w", err)
	}
	if len(resp.Items) == 0 {
		return ChannelStats{}, fmt.Errorf("no channels found for the authenticated account")
	}
	ch := resp.Items[0]
	stats := ChannelStats{ChannelID: ch.Id}
	if ch.Snippet != nil {
		stats.Title = ch.Snippet.Title
	}
	if ch.Statistics != nil {
		stats.Subscribers = ch.Statistics.SubscriberCount
		stats.TotalViews = ch.Statistics.ViewCount
		stats.TotalVideos = ch.Statistics.VideoCount
	}
	if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
		stats.UploadsPlaylist = ch.ContentDetails.RelatedPlaylists.Uploads
	}
	return stats, nil
}

// DailyChannelMetrics fetches channel-level analytics for one day
// (YYYY-MM-DD).
func (s *Services) DailyChannelMetrics(ctx context.Context, day string) (ChannelMetrics, error) {
	resp, err := s.Analytics.Reports.Query().
		Ids("channel==MINE").
		StartDate(day).
		EndDate(day).
		Metrics(channelMetricsList).
		Dimensions("day").
		Context(ctx).
		Do()
	if err != nil {
		return ChannelMetrics{}, fmt.Errorf("query channel metrics: %w", err)
	}
	if len(resp.Rows) == 0 {
		s.logger.Warn("no channel metrics returned", "day", day)
		return ChannelMetrics{}, nil
	}
	row := resp.Rows[0]
	// row[0] is the day dimension; metrics start at 1.
	return ChannelMetrics{
		Views:             num(row, 1),
		MinutesWatched:    num(row, 2),
		AvgViewDuration:   num(row, 3),
		AvgViewPercentage: num(row, 4),
		Likes:             num(row, 5),
		Comments:          num(row, 6),
		Shares:            num(row, 7),
		SubsGained:        num(row, 8),
		SubsLost:          num(row, 9),
		EstimatedRevenue:  num(row, 10),
		Impressions:       num(row, 11),
		CTR:               num(row, 12),
		Found:             true,
	}, nil
}

// DailyVideoMetrics fetches per-video analytics for one day, sorted by views
// descending, then joins video titles and publish dates from the Data API.
// maxBatches caps the number of paging requests.
func (s *Services) DailyVideoMetrics(ctx context.Context, day string, maxBatches int) ([]VideoMetrics, error) {
	var results []VideoMetrics
	startIndex := int64(1)

	for batch := 0; ; batch++ {
		if batch >= maxBatches {
			s.logger.Warn("reached max batches for video analytics, truncating results",
				"maxBatches", maxBatches)
			break
		}
		resp, err := s.Analytics.Reports.Query().
			Ids("channel==MINE").
			StartDate(day).
			EndDate(day).
			Metrics(videoMetricsList).
			Dimensions("video").
			Sort("-views").
			MaxResults(analyticsPageSize).
			StartIndex(startIndex).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("query video metrics: %w", err)
		}
		if len(resp.Rows) == 0 {
			break
		}
		for _, row := range resp.Rows {
			id, _ := row[0].(string)
			results = append(results, VideoMetrics{
				VideoID:           id,
				Views:             num(row, 1),
				MinutesWatched:    num(row, 2),
				AvgViewDuration:   num(row, 3),
				AvgViewPercentage: num(row, 4),
				Likes:             num(row, 5),
				Comments:          num(row, 6),
				Shares:            num(row, 7),
				SubsGained:        num(row, 8),
				SubsLost:          num(row, 9),
				Impressions:       num(row, 10),
				CTR:               num(row, 11),
			})
		}
		if len(resp.Rows) < analyticsPageSize {
			break
		}
		startIndex += int64(len(resp.Rows))
	}

	if len(results) == 0 {
		return nil, nil
	}
	if err := s.attachVideoMetadata(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// attachVideoMetadata fills Title and PublishedAt via Videos.List, batching
// ids to the API's limit.
func (s *Services) attachVideoMetadata(ctx context.Context, videos []VideoMetrics) error {
	meta := make(map[string]*struct{ title, publishedAt string }, len(videos))
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}

	for i := 0; i < len(ids); i += metadataChunkSize {
		end := i + metadataChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		resp, err := s.YouTube.Videos.
			List([]string{"snippet"}).
			Id(ids[i:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("list video metadata: %w", err)
		}
		for _, item := range resp.Items {
			if item.Snippet == nil {
				continue
			}
			meta[item.Id] = &struct{ title, publishedAt string }{
				item.Snippet.Title, item.Snippet.PublishedAt,
			}
		}
	}

	for i := range videos {
		if m, ok := meta[videos[i].VideoID]; ok {
			videos[i].Title = m.title
			videos[i].PublishedAt = m.publishedAt
		}
	}
	return nil
}

// DailyTrafficSources fetches the day's views broken down by traffic source
// type, sorted by views descending.
func (s *Services) DailyTrafficSources(ctx context.Context, day string) ([]TrafficSource, error) {
	resp, err := s.Analytics.Reports.Query().
		Ids("channel==MINE").
		StartDate(day).
		EndDate(day).
		Metrics("views,estimatedMinutesWatched").
		Dimensions("insightTrafficSourceType").
		Sort("-views").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("query traffic sources: %w", err)
	}
	out := make([]TrafficSource, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		source, _ := row[0].(string)
		out = append(out, TrafficSource{
			Source:         source,
			Views:          num(row, 1),
			MinutesWatched: num(row, 2),
		})
	}
	return out, nil
}

// num reads a numeric cell from an analytics row, tolerating the JSON
// decoder's float64 and the occasional stringified number.
func num(row []interface{}, i int) float64 {
	if i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}
