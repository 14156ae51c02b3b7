package games

import "time"

// Performance holds the raw round inputs.
type Performance struct {
	Clicks   int `json:"clicks"`
	TimeLeft int `json:"timeLeft"`
}

// Session is a finished game round.
type Session struct {
	ID               string      `json:"id"`
	ChildID          string      `json:"childId"`
	GameType         GameType    `json:"gameType"`
	Difficulty       int         `json:"difficulty"`
	Score            int         `json:"score"`
	TimeSpentSeconds int         `json:"timeSpentSeconds"`
	Completed        bool        `json:"completed"`
	Performance      Performance `json:"performance"`
	CreatedAt        time.Time   `json:"createdAt"`
}

// DailyAverage is the mean score of one child's sessions of one game type
// within a day.
type DailyAverage struct {
	ChildID  string
	GameType GameType
	Average  float64
	Sessions int
}
