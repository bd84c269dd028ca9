package quizbot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawQuestion mirrors the JSON shape the model is instructed to return.
// Explanation is a pointer so a missing field can be told apart from an
// empty one.
type rawQuestion struct {
	Question    string   `json:"question"`
	Choices     []Choice `json:"choices"`
	Answer      string   `json:"answer"`
	Explanation *string  `json:"explanation"`
}

// ParseQuestion decodes a raw model response into a validated Question.
// The response is untrusted: it may be wrapped in markdown fences, be
// truncated, or not be JSON at all. All failures are reported as
// ErrMalformedQuestion so the builder can retry the slot.
func ParseQuestion(raw, topic string) (*Question, error) {
	cleaned := stripFences(raw)

	var rq rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &rq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuestion, err)
	}

	if rq.Explanation == nil {
		return nil, fmt.Errorf("%w: missing explanation field", ErrMalformedQuestion)
	}

	q := &Question{
		ID:          generateQuestionID(),
		Text:        strings.TrimSpace(rq.Question),
		Choices:     rq.Choices,
		Answer:      strings.TrimSpace(rq.Answer),
		Explanation: *rq.Explanation,
		Topic:       topic,
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the structural invariant: non-empty question text, at
// least one choice with unique labels, and an answer key that matches one
// of the labels.
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: empty question text", ErrMalformedQuestion)
	}
	if len(q.Choices) == 0 {
		return fmt.Errorf("%w: no choices", ErrMalformedQuestion)
	}

	seen := make(map[string]bool, len(q.Choices))
	answerFound := false
	for _, c := range q.Choices {
		if seen[c.Key] {
			return fmt.Errorf("%w: duplicate choice key %q", ErrMalformedQuestion, c.Key)
		}
		seen[c.Key] = true
		if c.Key == q.Answer {
			answerFound = true
		}
	}
	if !answerFound {
		return fmt.Errorf("%w: answer %q does not match any choice", ErrMalformedQuestion, q.Answer)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, which models
// frequently add around JSON output despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
