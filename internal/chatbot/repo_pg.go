package chatbot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, conv Conversation) error {
	sources, err := json.Marshal(conv.Sources)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}
	const query = `
INSERT INTO chatbot_conversations (id, user_id, question, topic, answer, sources, created_at)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)`
	_, err = r.DB.ExecContext(ctx, query,
		conv.ID,
		conv.UserID,
		conv.Question,
		conv.Topic,
		conv.Answer,
		sources,
		conv.CreatedAt,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	const query = `
SELECT id, user_id, question, topic, answer, sources, created_at
FROM chatbot_conversations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Conversation, 0)
	for rows.Next() {
		var conv Conversation
		var sources []byte
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Question, &conv.Topic, &conv.Answer, &sources, &conv.CreatedAt); err != nil {
			return nil, err
		}
		if len(sources) > 0 {
			if err := json.Unmarshal(sources, &conv.Sources); err != nil {
				return nil, fmt.Errorf("decode sources: %w", err)
			}
		}
		out = append(out, conv)
	}
	return out, rows.Err()
}
