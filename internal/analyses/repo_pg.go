package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The report is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (id, document_id, user_id, status, job_description, result, completed_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var payload any
	if analysis.Result != nil {
		data, err := json.Marshal(analysis.Result)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		payload = data
	}

	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.DocumentID,
		analysis.UserID,
		analysis.Status,
		analysis.JobDescription,
		payload,
		analysis.CompletedAt,
		analysis.CreatedAt,
	)
	return err
}

// GetByID returns an analysis owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	const query = `
SELECT id, document_id, user_id, status, job_description, result, completed_at, created_at
FROM analyses
WHERE id = $1 AND user_id = $2
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, analysisID, userID)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser lists analyses for a user ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, document_id, user_id, status, job_description, result, completed_at, created_at
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var a Analysis
	var result sql.NullString
	var completedAt sql.NullTime
	if err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.UserID,
		&a.Status,
		&a.JobDescription,
		&result,
		&completedAt,
		&a.CreatedAt,
	); err != nil {
		return Analysis{}, err
	}
	if result.Valid {
		var report Report
		if err := json.Unmarshal([]byte(result.String), &report); err == nil {
			a.Result = &report
		}
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}
