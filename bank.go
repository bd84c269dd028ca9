package quizbot

// QuestionBank holds an ordered sequence of questions, unique by question
// text. It is append-only while a build is in progress and frozen once it
// is handed to a navigator.
type QuestionBank struct {
	questions []Question
	frozen    bool
}

// NewQuestionBank creates an empty question bank
func NewQuestionBank() *QuestionBank {
	return &QuestionBank{questions: make([]Question, 0)}
}

// Add appends a question to the bank. It returns false without modifying
// the bank if the bank is frozen or already contains a question with the
// same text.
func (qb *QuestionBank) Add(q Question) bool {
	if qb.frozen || qb.Contains(q.Text) {
		return false
	}
	qb.questions = append(qb.questions, q)
	return true
}

// Contains reports whether the bank already holds a question with exactly
// the given text. Linear scan; banks are capped at MaxQuestions entries.
func (qb *QuestionBank) Contains(text string) bool {
	for _, q := range qb.questions {
		if q.Text == text {
			return true
		}
	}
	return false
}

// Size returns the number of questions in the bank
func (qb *QuestionBank) Size() int {
	return len(qb.questions)
}

// Question returns the question at the given position. The caller is
// responsible for the index being in range; the navigator wraps indices
// before calling.
func (qb *QuestionBank) Question(i int) Question {
	return qb.questions[i]
}

// Questions returns a copy of all questions in order.
func (qb *QuestionBank) Questions() []Question {
	out := make([]Question, len(qb.questions))
	copy(out, qb.questions)
	return out
}

// Freeze marks the bank read-only. Further Add calls are rejected.
func (qb *QuestionBank) Freeze() {
	qb.frozen = true
}
