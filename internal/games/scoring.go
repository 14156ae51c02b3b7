package games

import (
	"fmt"
	"math"
)

// RoundSeconds is the length of one timed round.
const RoundSeconds = 60

// ComputeScore converts a round's click count and remaining seconds into a
// 0..100 score and the seconds spent.
func ComputeScore(clicks, timeLeft int) (score int, timeSpent int, err error) {
	if clicks < 0 {
		return 0, 0, fmt.Errorf("%w: clicks must not be negative", ErrInvalidSession)
	}
	if timeLeft < 0 || timeLeft > RoundSeconds {
		return 0, 0, fmt.Errorf("%w: timeLeft must be within 0..%d", ErrInvalidSession, RoundSeconds)
	}
	timeSpent = RoundSeconds - timeLeft
	raw := math.Round(float64(clicks) / float64(timeSpent+1) * 100)
	if raw > 100 {
		raw = 100
	}
	return int(raw), timeSpent, nil
}
