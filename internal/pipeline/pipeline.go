package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/observability"
	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/google/uuid"
)

// Extractor reads every raw record from the source.
type Extractor interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// Loader hands a finished summary to one destination.
type Loader interface {
	Name() string
	Load(ctx context.Context, s domain.Summary) error
}

// messageCounter is implemented by loaders that publish discrete messages.
type messageCounter interface {
	Published(s domain.Summary) int
}

// Options shapes the summary and the load retry policy.
type Options struct {
	LocationFilter  string
	LeaderboardSize int
	HistogramBins   int

	// MaxLoadAttempts bounds tries per loader; values < 1 mean one attempt.
	MaxLoadAttempts int
}

// Pipeline orchestrates one extract-summarize-load run.
type Pipeline struct {
	extractor Extractor
	loaders   []Loader
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      Options
	latest    atomic.Pointer[domain.Summary]
	newRunID  func() string
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, loaders []Loader, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		extractor: e,
		loaders:   loaders,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
		newRunID:  uuid.NewString,
	}
}

// CheckReadiness returns nil once a summary has been computed, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.latest.Load() == nil {
		return errors.New("no report has been generated yet")
	}
	return nil
}

// Latest returns the most recent summary, if any.
func (p *Pipeline) Latest() (domain.Summary, bool) {
	s := p.latest.Load()
	if s == nil {
		return domain.Summary{}, false
	}
	return *s, true
}

// Run extracts the catalogue, computes the summary and hands it to every
// loader. The summary is returned, and served by Latest, even when a loader
// fails; the error then joins every loader failure.
func (p *Pipeline) Run(ctx context.Context) (domain.Summary, error) {
	start := time.Now()
	defer func() { p.metrics.RunDuration.Observe(time.Since(start).Seconds()) }()

	rows, err := p.extractor.Extract(ctx)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("extract: %w", err)
	}

	summary := p.transform(rows)
	p.latest.Store(&summary)

	var loadErrs []error
	for _, l := range p.loaders {
		if err := p.load(ctx, l, summary); err != nil {
			loadErrs = append(loadErrs, fmt.Errorf("load %s: %w", l.Name(), err))
		}
	}
	if err := errors.Join(loadErrs...); err != nil {
		return summary, err
	}

	p.metrics.LastSuccessTime.Set(float64(summary.GeneratedAt.Unix()))
	p.logger.Info("run complete",
		"run_id", summary.RunID,
		"duration", time.Since(start),
	)
	return summary, nil
}

// load retries a loader with exponential backoff: start at 200ms, double each
// retry, cap at 5s.
func (p *Pipeline) load(ctx context.Context, l Loader, s domain.Summary) error {
	attempts := max(p.opts.MaxLoadAttempts, 1)
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = l.Load(ctx, s); err == nil {
			if c, ok := l.(messageCounter); ok {
				p.metrics.MessagesProduced.Add(float64(c.Published(s)))
			}
			return nil
		}

		p.metrics.LoadErrors.WithLabelValues(l.Name()).Inc()
		p.logger.Error("load failed",
			"sink", l.Name(),
			"attempt", attempt,
			"run_id", s.RunID,
			"error", err,
		)
		if attempt == attempts || !retry.SleepWithContext(ctx, backoff) {
			break
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
	return err
}
