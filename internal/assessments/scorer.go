package assessments

import (
	"fmt"
	"math"
)

// SupportLevel is the band a score falls into.
type SupportLevel string

const (
	SupportHigh     SupportLevel = "high"
	SupportModerate SupportLevel = "moderate"
	SupportMild     SupportLevel = "mild"
)

const (
	highBelow     = 40
	moderateBelow = 65
)

var (
	highRecommendations = []string{
		"One-on-one tutoring sessions recommended",
		"Consider structured learning environment",
		"Break tasks into smaller, manageable steps",
		"Use visual aids and hands-on learning",
	}
	moderateRecommendations = []string{
		"Regular practice with interactive games",
		"Establish consistent daily routine",
		"Use multisensory learning techniques",
		"Encourage breaks during learning sessions",
	}
	mildRecommendations = []string{
		"Continue with engaging activities",
		"Gradually increase task complexity",
		"Explore advanced learning materials",
		"Foster independence in learning",
	}
)

// Result is the scored outcome of a complete answer sequence.
type Result struct {
	Score           int          `json:"score"`
	SupportLevel    SupportLevel `json:"supportLevel"`
	Recommendations []string     `json:"recommendations"`
}

// Score computes the percentage score and support band for answers. Each
// slot is an option index; nil marks an unanswered question. Score never
// treats a missing answer as zero.
func Score(bank Bank, answers []*int) (Result, error) {
	n := bank.Len()
	if n == 0 {
		return Result{}, fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	if len(answers) > n {
		return Result{}, fmt.Errorf("%w: %d answers for %d questions", ErrInvalidAnswer, len(answers), n)
	}

	total := 0
	for i, q := range bank.Questions {
		if i >= len(answers) || answers[i] == nil {
			return Result{}, fmt.Errorf("%w: question %d unanswered", ErrIncompleteAssessment, q.ID)
		}
		v := *answers[i]
		if v < 0 || v >= OptionsPerQuestion {
			return Result{}, fmt.Errorf("%w: question %d answer %d out of range", ErrInvalidAnswer, q.ID, v)
		}
		total += v
	}

	score := int(math.Round(100 * float64(total) / float64(bank.MaxRaw())))
	level := Band(score)
	return Result{
		Score:           score,
		SupportLevel:    level,
		Recommendations: Recommendations(level),
	}, nil
}

// Band maps a 0..100 score to its support level.
func Band(score int) SupportLevel {
	switch {
	case score < highBelow:
		return SupportHigh
	case score < moderateBelow:
		return SupportModerate
	default:
		return SupportMild
	}
}

// Recommendations returns a fresh copy of the fixed list for level.
func Recommendations(level SupportLevel) []string {
	var src []string
	switch level {
	case SupportHigh:
		src = highRecommendations
	case SupportModerate:
		src = moderateRecommendations
	default:
		src = mildRecommendations
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Unanswered lists the ids of questions with no answer in answers.
func Unanswered(bank Bank, answers []*int) []int {
	var missing []int
	for i, q := range bank.Questions {
		if i >= len(answers) || answers[i] == nil {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

// Answers converts plain option indexes into scorer input.
func Answers(values ...int) []*int {
	out := make([]*int, len(values))
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}
