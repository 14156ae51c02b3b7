package progress

import "time"

const (
	MinScore = 0
	MaxScore = 100
)

// DateLayout is the wire format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one child's progress snapshot for a calendar day.
type Entry struct {
	ID                 string    `json:"id"`
	ChildID            string    `json:"childId"`
	Date               time.Time `json:"date"`
	FocusScore         int       `json:"focusScore"`
	MemoryScore        int       `json:"memoryScore"`
	ReadingScore       int       `json:"readingScore"`
	EmotionalStability int       `json:"emotionalStability"`
	Notes              *string   `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// SkillScores carries game-derived scores; nil leaves the stored value alone.
type SkillScores struct {
	Focus   *int
	Memory  *int
	Reading *int
}

func (s SkillScores) empty() bool {
	return s.Focus == nil && s.Memory == nil && s.Reading == nil
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
