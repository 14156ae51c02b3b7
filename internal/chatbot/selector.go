package chatbot

import "strings"

// TopicGeneral marks the catch-all answer.
const TopicGeneral = "general"

// Response is the selected answer for a question.
type Response struct {
	Topic   string   `json:"topic"`
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

type rule struct {
	match    func(question string) bool
	response Response
}

// Selector picks canned answers with ordered first-match-wins rules. It is
// immutable after construction and safe for concurrent use.
type Selector struct {
	rules   []rule
	generic Response
}

// NewSelector compiles kb into rules: one per entry in document order, then
// the keyword fallbacks.
func NewSelector(kb KnowledgeBase) *Selector {
	byKey := make(map[string]Response, len(kb.Entries))
	rules := make([]rule, 0, len(kb.Entries)+len(kb.Fallbacks))

	for _, e := range kb.Entries {
		resp := Response{Topic: e.Key, Answer: e.Answer, Sources: e.Sources}
		byKey[e.Key] = resp
		key := e.Key
		first := strings.Fields(key)[0]
		rules = append(rules, rule{
			match: func(q string) bool {
				return strings.Contains(q, first) || strings.Contains(q, key)
			},
			response: resp,
		})
	}

	for _, f := range kb.Fallbacks {
		keywords := make([]string, len(f.Keywords))
		for i, kw := range f.Keywords {
			keywords[i] = strings.ToLower(kw)
		}
		rules = append(rules, rule{
			match: func(q string) bool {
				for _, kw := range keywords {
					if strings.Contains(q, kw) {
						return true
					}
				}
				return false
			},
			response: byKey[f.Entry],
		})
	}

	return &Selector{
		rules:   rules,
		generic: Response{Topic: TopicGeneral, Answer: kb.Generic.Answer, Sources: kb.Generic.Sources},
	}
}

// Select returns the answer for question. It never fails; unmatched input
// gets the generic answer.
func (s *Selector) Select(question string) Response {
	q := strings.ToLower(question)
	for _, r := range s.rules {
		if r.match(q) {
			return r.response.clone()
		}
	}
	return s.generic.clone()
}

func (r Response) clone() Response {
	sources := make([]string, len(r.Sources))
	copy(sources, r.Sources)
	r.Sources = sources
	return r
}
