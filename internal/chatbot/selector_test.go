package chatbot

import (
	"reflect"
	"sync"
	"testing"
)

func testKB(t *testing.T) KnowledgeBase {
	t.Helper()
	kb, err := DefaultKnowledgeBase()
	if err != nil {
		t.Fatalf("DefaultKnowledgeBase: %v", err)
	}
	return kb
}

func TestSelectTopics(t *testing.T) {
	sel := NewSelector(testKB(t))
	tests := []struct {
		question string
		topic    string
	}{
		{question: "Does autism mean low intelligence?", topic: "autism intelligence"},
		{question: "What autism therapy works?", topic: "autism intelligence"},
		{question: "How can I help my child with dyslexia?", topic: "dyslexia reading"},
		{question: "What are the best therapies for ADHD?", topic: "adhd attention"},
		{question: "Tips for ADHD focus", topic: "adhd attention"},
		{question: "What is early intervention?", topic: "early intervention"},
		{question: "Is there parent training nearby?", topic: "parent support"},
		{question: "I need help", topic: "parent support"},
		{question: "Where do we start?", topic: "early intervention"},
		{question: "xyz unrelated", topic: TopicGeneral},
		{question: "", topic: TopicGeneral},
	}
	for _, tt := range tests {
		if got := sel.Select(tt.question); got.Topic != tt.topic {
			t.Fatalf("Select(%q) topic = %q, want %q", tt.question, got.Topic, tt.topic)
		}
	}
}

func TestSelectGenericSources(t *testing.T) {
	got := NewSelector(testKB(t)).Select("xyz unrelated")
	want := []string{"WHO", "CDC", "National Institutes of Health"}
	if !reflect.DeepEqual(got.Sources, want) {
		t.Fatalf("unexpected generic sources %v", got.Sources)
	}
	if got.Answer == "" {
		t.Fatalf("expected generic answer")
	}
}

func TestSelectEntryAnswersAreVerbatim(t *testing.T) {
	got := NewSelector(testKB(t)).Select("Does autism mean low intelligence?")
	if got.Answer[:41] != "Autism is a spectrum condition that affec" {
		t.Fatalf("unexpected answer %q", got.Answer)
	}
	want := []string{"WHO Guidelines on Autism", "CDC Autism Spectrum Disorder Data"}
	if !reflect.DeepEqual(got.Sources, want) {
		t.Fatalf("unexpected sources %v", got.Sources)
	}
}

func TestSelectReturnsIndependentCopies(t *testing.T) {
	sel := NewSelector(testKB(t))
	first := sel.Select("autism")
	first.Sources[0] = "changed"
	if sel.Select("autism").Sources[0] == "changed" {
		t.Fatalf("selector state leaked through response")
	}
}

func TestSelectConcurrentCallers(t *testing.T) {
	sel := NewSelector(testKB(t))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if sel.Select("dyslexia").Topic != "dyslexia reading" {
					t.Errorf("unexpected topic")
					return
				}
			}
		}()
	}
	wg.Wait()
}
