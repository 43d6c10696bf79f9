package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/quake-report/internal/domain"
)

// Output file names inside the report directory.
const (
	LeaderboardFile = "leaderboard.html"
	SummaryFile     = "summary.json"
)

// FileWriter writes the static report files into a directory.
// It implements pipeline.Loader.
type FileWriter struct {
	dir    string
	logger *slog.Logger
}

// NewFileWriter creates a FileWriter for dir. The directory is created on
// first write.
func NewFileWriter(dir string, logger *slog.Logger) *FileWriter {
	return &FileWriter{dir: dir, logger: logger}
}

func (w *FileWriter) Name() string { return "files" }

// Load renders the summary and writes both report files.
func (w *FileWriter) Load(_ context.Context, s domain.Summary) error {
	if err := WriteFiles(w.dir, s); err != nil {
		return err
	}
	w.logger.Info("report written", "dir", w.dir, "run_id", s.RunID)
	return nil
}

// WriteFiles renders the leaderboard table and the JSON summary into dir.
// Nothing is written if either rendering fails.
func WriteFiles(dir string, s domain.Summary) error {
	var html, summary bytes.Buffer
	if err := WriteLeaderboardHTML(&html, s.Leaderboard); err != nil {
		return err
	}
	if err := WriteSummaryJSON(&summary, s); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, LeaderboardFile), html.Bytes(), 0o644); err != nil { //nolint:gosec // report is public output
		return fmt.Errorf("write %s: %w", LeaderboardFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryFile), summary.Bytes(), 0o644); err != nil { //nolint:gosec // report is public output
		return fmt.Errorf("write %s: %w", SummaryFile, err)
	}
	return nil
}
