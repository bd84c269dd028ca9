package quizbot

import "time"

// Choice is one labeled answer option within a question.
type Choice struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Question represents a single multiple choice quiz question. It is
// treated as immutable once it has passed validation.
type Question struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Choices     []Choice  `json:"choices"`
	Answer      string    `json:"answer"` // key of the correct choice
	Explanation string    `json:"explanation"`
	Topic       string    `json:"topic"`
	CreatedAt   time.Time `json:"created_at"`
}

// Choice returns the choice matching the given key, if any.
func (q Question) Choice(key string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Key == key {
			return c, true
		}
	}
	return Choice{}, false
}

// Quiz represents a complete quiz with metadata
type Quiz struct {
	ID             string     `json:"id"`
	Topic          string     `json:"topic"`
	Questions      []Question `json:"questions"`
	CreatedAt      time.Time  `json:"created_at"`
	TotalQuestions int        `json:"total_questions"`
}

// NewQuiz wraps a finished question bank in a quiz record for output and
// persistence.
func NewQuiz(topic string, bank *QuestionBank) *Quiz {
	return &Quiz{
		ID:             generateQuizID(),
		Topic:          topic,
		Questions:      bank.Questions(),
		CreatedAt:      time.Now(),
		TotalQuestions: bank.Size(),
	}
}

// GenerationRequest represents a request to generate a quiz
type GenerationRequest struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}
