package recorder

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/Analyst/models"
)

// Recorder persists one row per completed analysis so stance history can be
// reviewed later. Price-like values go through decimal to avoid float noise
// in the numeric columns.
type Recorder struct {
	db     *sql.DB
	logger zerolog.Logger
}

// New opens the database connection and creates tables if needed.
func New(connStr string) (*Recorder, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &Recorder{
		db:     db,
		logger: log.With().Str("component", "recorder").Logger(),
	}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id           BIGSERIAL PRIMARY KEY,
			symbol       TEXT NOT NULL,
			generated_at TIMESTAMP NOT NULL,
			close        NUMERIC,
			trend        TEXT,
			momentum     TEXT,
			short_term   TEXT,
			long_term    TEXT,
			confidence   NUMERIC,
			max_drawdown NUMERIC,
			degraded     BOOLEAN NOT NULL DEFAULT FALSE
		)
	`)
	return err
}

// Record inserts one analysis run.
func (r *Recorder) Record(ctx context.Context, result *models.AnalysisResult) error {
	ind := result.Technical.Indicators
	rec := result.Recommendation

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			symbol, generated_at, close, trend, momentum,
			short_term, long_term, confidence, max_drawdown, degraded
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		result.Symbol,
		result.GeneratedAt,
		decimal.NewFromFloat(ind.Close).String(),
		result.Technical.Trend,
		result.Technical.Momentum,
		rec.ShortTerm,
		rec.LongTerm,
		decimal.NewFromFloat(rec.Confidence).Round(4).String(),
		decimal.NewFromFloat(ind.MaxDrawdown).Round(6).String(),
		rec.Degraded,
	)
	if err != nil {
		return err
	}

	r.logger.Debug().Str("symbol", result.Symbol).Msg("Recorded analysis run")
	return nil
}

// History returns the most recent runs for a symbol, newest first.
func (r *Recorder) History(ctx context.Context, symbol string, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT symbol, generated_at, trend, short_term, long_term, confidence, degraded
		FROM analysis_runs
		WHERE symbol = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.Symbol, &run.GeneratedAt, &run.Trend,
			&run.ShortTerm, &run.LongTerm, &run.Confidence, &run.Degraded,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database connection.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Run is one persisted analysis row.
type Run struct {
	Symbol      string    `json:"symbol"`
	GeneratedAt time.Time `json:"generated_at"`
	Trend       string    `json:"trend"`
	ShortTerm   string    `json:"short_term"`
	LongTerm    string    `json:"long_term"`
	Confidence  float64   `json:"confidence"`
	Degraded    bool      `json:"degraded"`
}
