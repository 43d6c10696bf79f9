package pipeline

import (
	"github.com/couchcryptid/quake-report/internal/domain"
)

// transform normalizes raw rows and computes the summary, recording row
// accounting on the summary and in metrics.
func (p *Pipeline) transform(rows []domain.RawRecord) domain.Summary {
	events, dropped := domain.Normalize(rows)

	p.metrics.RowsRead.Add(float64(len(rows)))
	p.metrics.RowsDropped.Add(float64(dropped))
	if dropped > 0 {
		p.logger.Warn("dropped rows with unparseable timestamps",
			"rows_dropped", dropped,
			"rows_read", len(rows),
		)
	}

	summary := domain.Summarize(events, domain.SummaryOptions{
		LocationFilter:  p.opts.LocationFilter,
		LeaderboardSize: p.opts.LeaderboardSize,
		HistogramBins:   p.opts.HistogramBins,
	})
	summary.RunID = p.newRunID()
	summary.RowsRead = len(rows)
	summary.RowsDropped = dropped

	p.metrics.EventsKept.Add(float64(summary.EventCount))
	p.metrics.MonthlyGroups.Set(float64(len(summary.MonthlyExtremes)))

	p.logger.Info("summary computed",
		"run_id", summary.RunID,
		"rows_read", summary.RowsRead,
		"rows_dropped", summary.RowsDropped,
		"events", summary.EventCount,
		"location_filter", summary.LocationFilter,
		"monthly_groups", len(summary.MonthlyExtremes),
	)
	return summary
}
