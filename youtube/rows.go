package youtube

import "time"

// Row builders for the three worksheets. Column order matches the sheet
// layouts documented in the README; these are pure so the layouts stay
// testable without API access.

// dailyMetricCells is the number of per-day metric columns in the Daily
// worksheet, between the timestamps and the lifetime totals.
const dailyMetricCells = 12

// DailyRow builds the Daily worksheet row: per-day channel metrics followed
// by lifetime totals. When the Analytics API returned no row for the day
// (m.Found false, common while recent analytics lag) the metric cells stay
// blank; a zero there would be indistinguishable from a real zero-traffic
// day. The lifetime totals come from the Data API and are filled either way.
func DailyRow(day string, pulledAt time.Time, stats ChannelStats, m ChannelMetrics) []interface{} {
	row := make([]interface{}, 0, 5+dailyMetricCells)
	row = append(row, day, pulledAt.Format(time.RFC3339))
	if m.Found {
		row = append(row,
			m.Views,
			m.MinutesWatched,
			m.AvgViewDuration,
			m.AvgViewPercentage,
			m.Likes,
			m.Comments,
			m.Shares,
			m.SubsGained,
			m.SubsLost,
			m.EstimatedRevenue,
			m.Impressions,
			m.CTR,
		)
	} else {
		for i := 0; i < dailyMetricCells; i++ {
			row = append(row, "")
		}
	}
	return append(row, stats.Subscribers, stats.TotalViews, stats.TotalVideos)
}

// VideoRows builds VideoDaily worksheet rows, one per video.
func VideoRows(day string, pulledAt time.Time, videos []VideoMetrics) [][]interface{} {
	rows := make([][]interface{}, 0, len(videos))
	for _, v := range videos {
		rows = append(rows, []interface{}{
			day,
			pulledAt.Format(time.RFC3339),
			v.VideoID,
			v.Title,
			v.PublishedAt,
			v.Views,
			v.MinutesWatched,
			v.AvgViewDuration,
			v.AvgViewPercentage,
			v.Likes,
			v.Comments,
			v.Shares,
			v.SubsGained,
			v.SubsLost,
			v.Impressions,
			v.CTR,
		})
	}
	return rows
}

// TrafficRows builds TrafficSources worksheet rows, one per source type.
func TrafficRows(day string, pulledAt time.Time, sources []TrafficSource) [][]interface{} {
	rows := make([][]interface{}, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []interface{}{
			day,
			pulledAt.Format(time.RFC3339),
			s.Source,
			s.Views,
			s.MinutesWatched,
		})
	}
	return rows
}
