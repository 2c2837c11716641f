package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"signalscout-engine/internal/domain"
)

var ErrNotFound = errors.New("not found")

// SaveRun persists a finished research run: the full result as JSON plus
// queryable rows for its signals and candidates.
func (d *DB) SaveRun(ctx context.Context, result *domain.ResearchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}

	tx, err := d.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO research_runs(id, query, started_at, finished_at, result_json)
VALUES(?,?,?,?,?);`,
		result.ID,
		result.Query,
		result.StartedAt.Format(time.RFC3339),
		result.FinishedAt.Format(time.RFC3339),
		string(payload),
	)
	if err != nil {
		return err
	}

	for _, s := range result.Signals {
		_, err = tx.ExecContext(ctx, `
INSERT OR IGNORE INTO signals(id, run_id, company, signal_type, headline, confidence, freshness_hours, source_count, discovered_at)
VALUES(?,?,?,?,?,?,?,?,?);`,
			s.ID, result.ID, s.CompanyName, string(s.Type), s.Headline,
			s.Confidence, s.FreshnessHrs, s.SourceCount,
			s.DiscoveredAt.Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	for _, c := range result.Candidates {
		_, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO candidates(run_id, company, domain, score, bucket, why_now)
VALUES(?,?,?,?,?,?);`,
			result.ID, c.Company.Name, c.Company.Domain, c.Score, string(c.Bucket), c.WhyNow,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun loads a persisted run by id.
func (d *DB) GetRun(ctx context.Context, id string) (*domain.ResearchResult, error) {
	var payload string
	err := d.Pool.QueryRowContext(ctx,
		`SELECT result_json FROM research_runs WHERE id = ?;`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var result domain.ResearchResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ListRuns returns recent runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, query, started_at, finished_at
FROM research_runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var rs RunSummary
		var started, finished string
		if err := rows.Scan(&rs.ID, &rs.Query, &started, &finished); err != nil {
			return nil, err
		}
		rs.StartedAt, _ = time.Parse(time.RFC3339, started)
		rs.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		out = append(out, rs)
	}
	return out, rows.Err()
}

// TopCandidates returns the highest scoring candidates across all runs.
func (d *DB) TopCandidates(ctx context.Context, limit int) ([]domain.CandidateReasoning, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT company, domain, score, bucket, why_now
FROM candidates
ORDER BY score DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateReasoning
	for rows.Next() {
		var c domain.CandidateReasoning
		var bucket string
		if err := rows.Scan(&c.Company.Name, &c.Company.Domain, &c.Score, &bucket, &c.WhyNow); err != nil {
			return nil, err
		}
		c.Bucket = domain.ConfidenceBucket(bucket)
		out = append(out, c)
	}
	return out, rows.Err()
}
