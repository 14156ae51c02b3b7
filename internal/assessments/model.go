package assessments

import "time"

const TypeComprehensive = "comprehensive"

// QuestionAnswer records the prompt and chosen label for one question.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Assessment is a persisted, scored questionnaire.
type Assessment struct {
	ID              string           `json:"id"`
	ChildID         string           `json:"childId"`
	AssessmentType  string           `json:"assessmentType"`
	BankVersion     string           `json:"bankVersion"`
	Questions       []QuestionAnswer `json:"questions"`
	Score           int              `json:"score"`
	SupportLevel    SupportLevel     `json:"supportLevel"`
	Recommendations []string         `json:"recommendations"`
	CompletedAt     time.Time        `json:"completedAt"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Result returns the scored portion of the record.
func (a Assessment) Result() Result {
	return Result{Score: a.Score, SupportLevel: a.SupportLevel, Recommendations: a.Recommendations}
}
