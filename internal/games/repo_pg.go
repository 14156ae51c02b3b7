package games

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, s Session) error {
	perf, err := json.Marshal(s.Performance)
	if err != nil {
		return fmt.Errorf("marshal performance: %w", err)
	}
	const query = `
INSERT INTO game_sessions (id, child_id, game_type, difficulty_level, score, time_spent_seconds, completed, performance_data, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9)`
	_, err = r.DB.ExecContext(ctx, query,
		s.ID,
		s.ChildID,
		string(s.GameType),
		s.Difficulty,
		s.Score,
		s.TimeSpentSeconds,
		s.Completed,
		perf,
		s.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Session, error) {
	const query = `
SELECT id, child_id, game_type, difficulty_level, score, time_spent_seconds, completed, performance_data, created_at
FROM game_sessions
WHERE child_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, childID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		var (
			s        Session
			gameType string
			perf     []byte
		)
		if err := rows.Scan(&s.ID, &s.ChildID, &gameType, &s.Difficulty, &s.Score, &s.TimeSpentSeconds, &s.Completed, &perf, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.GameType = GameType(gameType)
		if len(perf) > 0 {
			if err := json.Unmarshal(perf, &s.Performance); err != nil {
				return nil, fmt.Errorf("decode performance: %w", err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGRepo) DailyAverages(ctx context.Context, from, to time.Time) ([]DailyAverage, error) {
	const query = `
SELECT child_id, game_type, AVG(score)::float8, COUNT(*)
FROM game_sessions
WHERE created_at >= $1 AND created_at < $2
GROUP BY child_id, game_type
ORDER BY child_id, game_type`
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DailyAverage, 0)
	for rows.Next() {
		var (
			avg      DailyAverage
			gameType string
		)
		if err := rows.Scan(&avg.ChildID, &gameType, &avg.Average, &avg.Sessions); err != nil {
			return nil, err
		}
		avg.GameType = GameType(gameType)
		out = append(out, avg)
	}
	return out, rows.Err()
}
