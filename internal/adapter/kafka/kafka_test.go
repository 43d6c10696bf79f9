package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/quake-report/internal/domain"
	"github.com/couchcryptid/quake-report/internal/report"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafkago.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testSummary() domain.Summary {
	mag := 5.0
	return domain.Summary{
		RunID:       "run-42",
		GeneratedAt: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
		MonthlyExtremes: []domain.MonthlyExtreme{
			{Year: 2022, Month: 3, MaxMagnitude: mag, Event: domain.Event{
				Timestamp: time.Date(2022, 3, 1, 10, 0, 0, 0, time.UTC),
				Magnitude: &mag,
				Location:  "Pagudpud (Ilocos Norte)",
			}},
			{Year: 2022, Month: 4, MaxMagnitude: mag, Event: domain.Event{
				Timestamp: time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC),
				Magnitude: &mag,
				Location:  "Burgos (Ilocos Norte)",
			}},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSerializeExtreme(t *testing.T) {
	s := testSummary()

	msg, err := serializeExtreme(s, s.MonthlyExtremes[0])
	require.NoError(t, err)

	assert.Equal(t, []byte("2022-03"), msg.Key)

	var view report.ExtremeView
	require.NoError(t, json.Unmarshal(msg.Value, &view))
	assert.Equal(t, 5.0, view.MaxMagnitude)
	assert.Equal(t, "2022-03-01 10:00", view.Event.Timestamp)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "kind", msg.Headers[0].Key)
	assert.Equal(t, []byte(KindMonthlyExtreme), msg.Headers[0].Value)
	assert.Equal(t, "run_id", msg.Headers[1].Key)
	assert.Equal(t, []byte("run-42"), msg.Headers[1].Value)
	assert.Equal(t, "generated_at", msg.Headers[2].Key)
	assert.Equal(t, []byte("2024-04-26T15:10:00Z"), msg.Headers[2].Value)
}

func TestWriter_Load(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}
	s := testSummary()

	require.NoError(t, w.Load(context.Background(), s))

	require.Len(t, fw.written, w.Published(s))
	assert.Equal(t, []byte("2022-03"), fw.written[0].Key)
	assert.Equal(t, []byte("2022-04"), fw.written[1].Key)

	last := fw.written[2]
	assert.Equal(t, []byte("run-42"), last.Key)
	assert.Equal(t, []byte(KindSummary), last.Headers[0].Value)
	assert.Contains(t, string(last.Value), `"run_id":"run-42"`)
}

func TestWriter_Load_EmptySummaryStillPublishesSummary(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}

	require.NoError(t, w.Load(context.Background(), domain.Summary{RunID: "empty"}))
	require.Len(t, fw.written, 1)
	assert.Equal(t, []byte("empty"), fw.written[0].Key)
}

func TestWriter_Load_Error(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker down")}
	w := &Writer{writer: fw, logger: discardLogger()}

	err := w.Load(context.Background(), testSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish summary")
	assert.Contains(t, err.Error(), "broker down")
}

func TestWriter_Close(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
	assert.Equal(t, "kafka", w.Name())
}
