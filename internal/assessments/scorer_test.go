package assessments

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func testBank(t *testing.T) Bank {
	t.Helper()
	bank, err := DefaultBank()
	if err != nil {
		t.Fatalf("DefaultBank: %v", err)
	}
	return bank
}

func TestScoreReferenceExamples(t *testing.T) {
	bank := testBank(t)
	tests := []struct {
		name    string
		answers []int
		score   int
		level   SupportLevel
		recs    []string
	}{
		{name: "all max", answers: []int{4, 4, 4, 4, 4, 4}, score: 100, level: SupportMild, recs: mildRecommendations},
		{name: "all zero", answers: []int{0, 0, 0, 0, 0, 0}, score: 0, level: SupportHigh, recs: highRecommendations},
		{name: "all middle", answers: []int{2, 2, 2, 2, 2, 2}, score: 50, level: SupportModerate, recs: moderateRecommendations},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(bank, Answers(tt.answers...))
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if got.Score != tt.score || got.SupportLevel != tt.level {
				t.Fatalf("got %d/%s, want %d/%s", got.Score, got.SupportLevel, tt.score, tt.level)
			}
			if !reflect.DeepEqual(got.Recommendations, tt.recs) {
				t.Fatalf("unexpected recommendations %v", got.Recommendations)
			}
		})
	}
}

func TestBandBoundaries(t *testing.T) {
	cases := map[int]SupportLevel{
		0:   SupportHigh,
		39:  SupportHigh,
		40:  SupportModerate,
		64:  SupportModerate,
		65:  SupportMild,
		100: SupportMild,
	}
	for score, want := range cases {
		if got := Band(score); got != want {
			t.Fatalf("Band(%d) = %s, want %s", score, got, want)
		}
	}
}

func TestScoreMatchesFormulaForEveryTotal(t *testing.T) {
	bank := testBank(t)
	max := bank.MaxRaw()
	for total := 0; total <= max; total++ {
		answers := make([]int, bank.Len())
		rem := total
		for i := range answers {
			v := rem
			if v > 4 {
				v = 4
			}
			answers[i] = v
			rem -= v
		}
		got, err := Score(bank, Answers(answers...))
		if err != nil {
			t.Fatalf("total %d: %v", total, err)
		}
		want := int(math.Round(100 * float64(total) / float64(max)))
		if got.Score != want {
			t.Fatalf("total %d: score %d, want %d", total, got.Score, want)
		}
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("score out of range: %d", got.Score)
		}
		if got.SupportLevel != Band(got.Score) {
			t.Fatalf("total %d: level %s does not match band of %d", total, got.SupportLevel, got.Score)
		}
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	bank := testBank(t)
	// 3/24 = 12.5%, 9/24 = 37.5%
	got, err := Score(bank, Answers(3, 0, 0, 0, 0, 0))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Score != 13 {
		t.Fatalf("expected 13, got %d", got.Score)
	}
	got, err = Score(bank, Answers(4, 4, 1, 0, 0, 0))
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Score != 38 || got.SupportLevel != SupportHigh {
		t.Fatalf("expected 38/high, got %d/%s", got.Score, got.SupportLevel)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	bank := testBank(t)
	answers := Answers(1, 3, 2, 4, 0, 2)
	first, err := Score(bank, answers)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	second, err := Score(bank, answers)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
	first.Recommendations[0] = "mutated"
	if second.Recommendations[0] == "mutated" {
		t.Fatalf("results share recommendation storage")
	}
}

func TestScoreRejectsMissingAnswers(t *testing.T) {
	bank := testBank(t)

	withGap := Answers(4, 4, 0, 4, 4, 4)
	withGap[2] = nil
	if _, err := Score(bank, withGap); !errors.Is(err, ErrIncompleteAssessment) {
		t.Fatalf("expected ErrIncompleteAssessment for nil slot, got %v", err)
	}
	if _, err := Score(bank, Answers(4, 4, 4)); !errors.Is(err, ErrIncompleteAssessment) {
		t.Fatalf("expected ErrIncompleteAssessment for short input, got %v", err)
	}
	if _, err := Score(bank, nil); !errors.Is(err, ErrIncompleteAssessment) {
		t.Fatalf("expected ErrIncompleteAssessment for empty input, got %v", err)
	}
	if got := Unanswered(bank, withGap); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("unexpected unanswered ids %v", got)
	}
}

func TestScoreRejectsInvalidAnswers(t *testing.T) {
	bank := testBank(t)
	if _, err := Score(bank, Answers(4, 4, 5, 4, 4, 4)); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for 5, got %v", err)
	}
	if _, err := Score(bank, Answers(4, -1, 4, 4, 4, 4)); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for -1, got %v", err)
	}
	if _, err := Score(bank, Answers(4, 4, 4, 4, 4, 4, 4)); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer for extra answer, got %v", err)
	}
}
