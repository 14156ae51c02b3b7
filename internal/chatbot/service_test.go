package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nurture-backend/internal/shared/testutil"
)

type failingRepo struct {
	*MemoryRepo
}

func (failingRepo) Save(ctx context.Context, conv Conversation) error {
	return errors.New("insert failed")
}

func TestAskLogsExchange(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, testKB(t))

	reply, err := svc.Ask(context.Background(), "parent-1", "  What is early intervention?  ")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !reply.Saved || reply.ConversationID == "" || reply.Topic != "early intervention" {
		t.Fatalf("unexpected reply %+v", reply)
	}

	history, err := svc.History(context.Background(), "parent-1", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Question != "What is early intervention?" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestAskSaveFailureKeepsAnswer(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	kb := testKB(t)
	svc := NewService(failingRepo{NewMemoryRepo()}, kb)

	reply, err := svc.Ask(context.Background(), "parent-1", "Does autism mean low intelligence?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if reply.Saved {
		t.Fatalf("expected saved=false")
	}
	if reply.Answer != kb.Entries[0].Answer {
		t.Fatalf("answer changed on save failure")
	}
	if !strings.Contains(logs.String(), "chatbot.save_failed") {
		t.Fatalf("expected warn log, got %q", logs.String())
	}
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	svc := NewService(NewMemoryRepo(), testKB(t))
	if _, err := svc.Ask(context.Background(), "parent-1", "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}
