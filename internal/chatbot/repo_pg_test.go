package chatbot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveAndList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO chatbot_conversations").
		WithArgs("c-1", "parent-1", "q", "general", "a", []byte(`["WHO"]`), now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	err = repo.Save(context.Background(), Conversation{
		ID: "c-1", UserID: "parent-1", Question: "q", Topic: "general", Answer: "a", Sources: []string{"WHO"}, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "user_id", "question", "topic", "answer", "sources", "created_at"}).
		AddRow("c-1", "parent-1", "q", "general", "a", []byte(`["WHO","CDC"]`), now)
	mock.ExpectQuery("FROM chatbot_conversations").WithArgs("parent-1", 10).WillReturnRows(rows)

	items, err := repo.ListByUser(context.Background(), "parent-1", 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || len(items[0].Sources) != 2 {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
