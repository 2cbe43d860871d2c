package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobscout/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// transaction-mode poolers (PgBouncer, Supabase) reject prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS search_runs (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_title   TEXT NOT NULL,
	location    TEXT NOT NULL,
	mode        TEXT NOT NULL,
	min_score   INT NOT NULL,
	status      TEXT NOT NULL,
	analyzed    INT NOT NULL DEFAULT 0,
	matched     INT NOT NULL DEFAULT 0,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS job_matches (
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	run_id         UUID NOT NULL REFERENCES search_runs(id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	company        TEXT NOT NULL,
	location       TEXT NOT NULL,
	score          INT NOT NULL,
	reason         TEXT NOT NULL,
	url            TEXT NOT NULL,
	url_source     TEXT NOT NULL,
	apply_link     TEXT NOT NULL,
	content_source TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (run_id, url)
);

CREATE INDEX IF NOT EXISTS job_matches_created_at_idx ON job_matches (created_at DESC);`

// EnsureSchema creates the tables when they do not exist yet
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// ---------------- RUN OPERATIONS ----------------

// SaveRun inserts a run and fills in its ID
func (r *Repository) SaveRun(ctx context.Context, run *models.SearchRun) (*models.SearchRun, error) {
	query := `
		INSERT INTO search_runs (job_title, location, mode, min_score, status, analyzed, matched, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, run.JobTitle, run.Location, run.Mode, run.MinScore, run.Status,
		run.Analyzed, run.Matched, run.StartedAt, run.FinishedAt).Scan(&run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

func (r *Repository) GetRun(ctx context.Context, runID string) (*models.SearchRun, error) {
	var run models.SearchRun
	query := `SELECT id, job_title, location, mode, min_score, status, analyzed, matched, started_at, finished_at FROM search_runs WHERE id = $1`
	err := r.db.QueryRow(ctx, query, runID).
		Scan(&run.ID, &run.JobTitle, &run.Location, &run.Mode, &run.MinScore, &run.Status, &run.Analyzed, &run.Matched, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ---------------- MATCH OPERATIONS ----------------

// SaveMatch stores a match of a run. Saving the same URL twice for a run
// updates the score and reason.
func (r *Repository) SaveMatch(ctx context.Context, runID string, m models.Match) (*models.StoredMatch, error) {
	query := `
		INSERT INTO job_matches (run_id, title, company, location, score, reason, url, url_source, apply_link, content_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (run_id, url)
		DO UPDATE SET score = EXCLUDED.score, reason = EXCLUDED.reason, apply_link = EXCLUDED.apply_link
		RETURNING id, created_at`

	stored := &models.StoredMatch{RunID: runID, Match: m}
	err := r.db.QueryRow(ctx, query, runID, m.Title, m.Company, m.Location, m.Score, m.Reason,
		m.URL, m.URLSource, m.ApplyLink, m.ContentSource).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}
	return stored, nil
}

// ListRecentMatches returns the newest matches across runs, best score first
// within the same moment
func (r *Repository) ListRecentMatches(ctx context.Context, limit int) ([]models.StoredMatch, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, run_id, title, company, location, score, reason, url, url_source, apply_link, content_source, created_at
		FROM job_matches
		ORDER BY created_at DESC, score DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []models.StoredMatch
	for rows.Next() {
		var s models.StoredMatch
		if err := rows.Scan(&s.ID, &s.RunID, &s.Match.Title, &s.Match.Company, &s.Match.Location, &s.Match.Score,
			&s.Match.Reason, &s.Match.URL, &s.Match.URLSource, &s.Match.ApplyLink, &s.Match.ContentSource, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
