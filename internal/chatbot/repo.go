package chatbot

import "context"

// Repo stores conversation history.
type Repo interface {
	Save(ctx context.Context, conv Conversation) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Conversation, error)
}
