package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	m "mutest.dev/pkg/mutest/internal/model"
)

// ErrNoReports is returned when a report directory holds no runs.
var ErrNoReports = errors.New("no reports found")

// ReportStore persists method reports, one JSON document per method,
// grouped in one directory per run.
type ReportStore interface {
	SaveReport(ctx context.Context, report m.MethodReport) (m.Path, error)
	LoadReports(ctx context.Context, dir m.Path) ([]m.MethodReport, error)
	// LatestRun returns the directory of the most recent run.
	LatestRun(ctx context.Context) (m.Path, error)
	Close() error
}

// ReportSink mirrors saved reports to another destination. Sink failures
// never fail a save.
type ReportSink interface {
	Name() string
	Publish(ctx context.Context, key string, report m.MethodReport, data []byte) error
	Close() error
}

// LocalReportStore writes reports below a root directory.
type LocalReportStore struct {
	root  m.Path
	sinks []ReportSink
}

// NewLocalReportStore constructs a LocalReportStore mirroring to sinks.
func NewLocalReportStore(root m.Path, sinks ...ReportSink) *LocalReportStore {
	return &LocalReportStore{root: root, sinks: sinks}
}

// ReportKey returns the run-relative key of a report, e.g.
// "<run id>/example.com_calc_calc.go__Calculator.Add.json".
func ReportKey(report m.MethodReport) string {
	replacer := strings.NewReplacer("/", "_", `\`, "_", ":", "_")
	name := replacer.Replace(report.Class) + "__" + replacer.Replace(report.Method) + ".json"

	return report.RunID + "/" + name
}

// SaveReport implements ReportStore.
func (s *LocalReportStore) SaveReport(ctx context.Context, report m.MethodReport) (m.Path, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report for %s: %w", report.Method, err)
	}

	key := ReportKey(report)
	path := filepath.Join(string(s.root), filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, key, report, data); err != nil {
			slog.Warn("Failed to mirror report", "sink", sink.Name(), "key", key, "error", err)
		}
	}

	return m.Path(path), nil
}

// LoadReports implements ReportStore. Reports are sorted by class then method.
func (s *LocalReportStore) LoadReports(ctx context.Context, dir m.Path) ([]m.MethodReport, error) {
	var reports []m.MethodReport

	err := filepath.Walk(string(dir), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		// #nosec G304 - report paths come from the mutest report directory
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var report m.MethodReport
		if err := json.Unmarshal(data, &report); err != nil {
			return fmt.Errorf("failed to decode report %s: %w", path, err)
		}

		reports = append(reports, report)

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].Class != reports[j].Class {
			return reports[i].Class < reports[j].Class
		}

		return reports[i].Method < reports[j].Method
	})

	return reports, nil
}

// LatestRun implements ReportStore.
func (s *LocalReportStore) LatestRun(ctx context.Context) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entries, err := os.ReadDir(string(s.root))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoReports
	}

	if err != nil {
		return "", err
	}

	var (
		latest     string
		latestInfo os.FileInfo
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if latestInfo == nil || info.ModTime().After(latestInfo.ModTime()) {
			latest, latestInfo = entry.Name(), info
		}
	}

	if latestInfo == nil {
		return "", ErrNoReports
	}

	return m.Path(filepath.Join(string(s.root), latest)), nil
}

// Close releases the sinks.
func (s *LocalReportStore) Close() error {
	var errs []error

	for _, sink := range s.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}

	return errors.Join(errs...)
}
