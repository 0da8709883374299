package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	m "mutest.dev/pkg/mutest/internal/model"
)

const historySchema = `CREATE TABLE IF NOT EXISTS mutest_scores (
	run_id        TEXT        NOT NULL,
	class         TEXT        NOT NULL,
	method        TEXT        NOT NULL,
	started_at    TIMESTAMPTZ NOT NULL,
	execution_ms  BIGINT      NOT NULL,
	total         INTEGER     NOT NULL,
	killed        INTEGER     NOT NULL,
	survived      INTEGER     NOT NULL,
	not_covered   INTEGER     NOT NULL,
	timeout       INTEGER     NOT NULL,
	build_errors  INTEGER     NOT NULL,
	skipped       INTEGER     NOT NULL,
	coverage      DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, class, method)
)`

const insertScore = `INSERT INTO mutest_scores
	(run_id, class, method, started_at, execution_ms, total, killed, survived, not_covered, timeout, build_errors, skipped, coverage)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (run_id, class, method) DO UPDATE SET
		execution_ms = EXCLUDED.execution_ms,
		total = EXCLUDED.total,
		killed = EXCLUDED.killed,
		survived = EXCLUDED.survived,
		not_covered = EXCLUDED.not_covered,
		timeout = EXCLUDED.timeout,
		build_errors = EXCLUDED.build_errors,
		skipped = EXCLUDED.skipped,
		coverage = EXCLUDED.coverage`

// HistoryConfig locates the Postgres database holding score history.
type HistoryConfig struct {
	URL         string
	PingTimeout time.Duration
}

// Validate checks the history configuration.
func (c HistoryConfig) Validate() error {
	if c.URL == "" {
		return errors.New("history database url is required")
	}

	if c.PingTimeout <= 0 {
		return errors.New("history ping timeout must be positive")
	}

	return nil
}

type historySink struct {
	db *sql.DB
}

// NewHistorySink opens the database and creates the score table.
func NewHistorySink(ctx context.Context, cfg HistoryConfig) (ReportSink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &historySink{db: db}, nil
}

func (s *historySink) Name() string {
	return "history"
}

func (s *historySink) Publish(ctx context.Context, _ string, report m.MethodReport, _ []byte) error {
	score := report.Score

	_, err := s.db.ExecContext(ctx, insertScore,
		report.RunID,
		report.Class,
		report.Method,
		report.StartedAt,
		report.ExecutionTime.Milliseconds(),
		score.Total,
		score.Killed,
		score.Survived,
		score.NotCovered,
		score.Timeout,
		score.BuildErrors,
		score.Skipped,
		score.Coverage,
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}

	return nil
}

func (s *historySink) Close() error {
	return s.db.Close()
}
