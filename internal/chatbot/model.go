package chatbot

import "time"

// Conversation is one logged question and answer exchange.
type Conversation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Topic     string    `json:"topic"`
	Answer    string    `json:"answer"`
	Sources   []string  `json:"sources"`
	CreatedAt time.Time `json:"createdAt"`
}
