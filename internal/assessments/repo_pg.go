package assessments

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, child_id, assessment_type, bank_version, questions, score, support_level, recommendations, completed_at, created_at`

func (r *PGRepo) Save(ctx context.Context, a Assessment) error {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	recommendations, err := json.Marshal(a.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	const query = `
INSERT INTO assessments (id, child_id, assessment_type, bank_version, questions, score, support_level, recommendations, completed_at, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8::jsonb, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		a.ChildID,
		a.AssessmentType,
		a.BankVersion,
		questions,
		a.Score,
		string(a.SupportLevel),
		recommendations,
		a.CompletedAt,
		a.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	query := `SELECT ` + selectColumns + ` FROM assessments WHERE id = $1 LIMIT 1`
	a, err := scanAssessment(r.DB.QueryRowContext(ctx, query, assessmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assessment{}, ErrNotFound
		}
		return Assessment{}, err
	}
	return a, nil
}

func (r *PGRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Assessment, error) {
	query := `SELECT ` + selectColumns + `
FROM assessments
WHERE child_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, childID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (Assessment, error) {
	var (
		a               Assessment
		supportLevel    string
		questions       []byte
		recommendations []byte
	)
	if err := row.Scan(
		&a.ID,
		&a.ChildID,
		&a.AssessmentType,
		&a.BankVersion,
		&questions,
		&a.Score,
		&supportLevel,
		&recommendations,
		&a.CompletedAt,
		&a.CreatedAt,
	); err != nil {
		return Assessment{}, err
	}
	a.SupportLevel = SupportLevel(supportLevel)
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &a.Questions); err != nil {
			return Assessment{}, fmt.Errorf("decode questions: %w", err)
		}
	}
	if len(recommendations) > 0 {
		if err := json.Unmarshal(recommendations, &a.Recommendations); err != nil {
			return Assessment{}, fmt.Errorf("decode recommendations: %w", err)
		}
	}
	return a, nil
}
