package chatbot

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nurture-backend/internal/shared/metrics"
	"nurture-backend/internal/shared/telemetry"
)

var ErrEmptyQuestion = errors.New("question is required")

// Reply is the answer plus whether the exchange was logged.
type Reply struct {
	Response
	ConversationID string `json:"conversationId,omitempty"`
	Saved          bool   `json:"saved"`
}

type Service struct {
	Repo     Repo
	Selector *Selector
	KB       KnowledgeBase
	Now      func() time.Time
}

func NewService(repo Repo, kb KnowledgeBase) *Service {
	return &Service{Repo: repo, Selector: NewSelector(kb), KB: kb, Now: time.Now}
}

// Ask selects an answer and logs the exchange for userID. A logging failure
// never changes the answer; it is reported through Saved.
func (s *Service) Ask(ctx context.Context, userID, question string) (Reply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Reply{}, ErrEmptyQuestion
	}

	resp := s.Selector.Select(question)
	metrics.IncChatbotQuestions()
	if resp.Topic == TopicGeneral {
		metrics.IncChatbotFallback()
	}

	reply := Reply{Response: resp}
	if s.Repo == nil || strings.TrimSpace(userID) == "" {
		return reply, nil
	}

	conv := Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Question:  question,
		Topic:     resp.Topic,
		Answer:    resp.Answer,
		Sources:   resp.Sources,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Save(ctx, conv); err != nil {
		telemetry.Warn("chatbot.save_failed", map[string]any{
			"user_id": userID,
			"topic":   resp.Topic,
			"error":   err,
		})
		return reply, nil
	}
	reply.ConversationID = conv.ID
	reply.Saved = true
	return reply, nil
}

// History returns the newest exchanges for userID.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	if s.Repo == nil {
		return []Conversation{}, nil
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}

// Suggestions returns the starter questions shown to new users.
func (s *Service) Suggestions() []string {
	out := make([]string, len(s.KB.Suggestions))
	copy(out, s.KB.Suggestions)
	return out
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
