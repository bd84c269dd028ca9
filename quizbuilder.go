package quizbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
)

// MaxQuestions bounds the size of a single quiz.
const MaxQuestions = 10

// retryLimit is the number of extra generation attempts allowed per
// question slot after the first attempt fails. Parse failures, validation
// failures, and duplicates all draw from the same budget.
const retryLimit = 3

// QuestionSource produces one raw question candidate per call.
type QuestionSource interface {
	GenerateQuestion(ctx context.Context, topic string) (string, error)
}

// configChecker lets a source report a missing collaborator before any
// generation call is attempted.
type configChecker interface {
	checkConfig() error
}

// QuizBuilder drives a QuestionSource to assemble a bank of unique,
// well-formed questions.
type QuizBuilder struct {
	source QuestionSource
	logger *LLMLogger
}

// NewQuizBuilder creates a quiz builder over the given question source.
func NewQuizBuilder(source QuestionSource) *QuizBuilder {
	return &QuizBuilder{source: source}
}

// SetLogger attaches a per-quiz logger for build events.
func (qb *QuizBuilder) SetLogger(logger *LLMLogger) {
	qb.logger = logger
}

// BuildQuiz generates req.NumQuestions unique questions for the topic and
// returns them as a question bank.
//
// Each slot gets one initial attempt plus retryLimit retries; every retry
// generates a fresh candidate. When a slot's budget is spent the slot is
// skipped and the build continues, so the returned bank may hold fewer
// questions than requested. ErrExhaustedRetries is returned only when
// every slot was skipped.
func (qb *QuizBuilder) BuildQuiz(ctx context.Context, req GenerationRequest) (*QuestionBank, error) {
	if req.NumQuestions < 1 || req.NumQuestions > MaxQuestions {
		return nil, fmt.Errorf("%w: got %d, want 1..%d", ErrInvalidCount, req.NumQuestions, MaxQuestions)
	}
	if cc, ok := qb.source.(configChecker); ok {
		if err := cc.checkConfig(); err != nil {
			return nil, err
		}
	}

	topic := req.Topic
	if topic == "" {
		topic = DefaultTopic
	}

	log.Printf("Starting quiz build for topic: %s, target questions: %d", topic, req.NumQuestions)

	bank := NewQuestionBank()
	for slot := 1; slot <= req.NumQuestions; slot++ {
		question, err := qb.fillSlot(ctx, topic, bank)
		if err != nil {
			if errors.Is(err, ErrNoContentSource) {
				return nil, err
			}
			log.Printf("Slot %d/%d abandoned: %v", slot, req.NumQuestions, err)
			if qb.logger != nil {
				qb.logger.LogSlotResult(slot, "skipped", err.Error())
			}
			continue
		}

		bank.Add(*question)
		VerboseLog("Slot %d/%d filled: %s", slot, req.NumQuestions, question.Text)
		if qb.logger != nil {
			qb.logger.LogSlotResult(slot, "filled", question.Text)
		}
	}

	if bank.Size() == 0 {
		return nil, ErrExhaustedRetries
	}

	log.Printf("Quiz build complete: %d/%d questions for topic '%s'", bank.Size(), req.NumQuestions, topic)
	return bank, nil
}

// fillSlot runs the generate/parse/validate cycle for one question slot,
// spending up to 1+retryLimit attempts. A candidate is accepted when it
// parses, passes validation, and its text is not already in the bank.
func (qb *QuizBuilder) fillSlot(ctx context.Context, topic string, bank *QuestionBank) (*Question, error) {
	var lastErr error

	for attempt := 1; attempt <= 1+retryLimit; attempt++ {
		raw, err := qb.source.GenerateQuestion(ctx, topic)
		if err != nil {
			if errors.Is(err, ErrNoContentSource) {
				return nil, err
			}
			lastErr = err
			VerboseLog("Attempt %d: generation failed: %v", attempt, err)
			continue
		}

		question, err := ParseQuestion(raw, topic)
		if err != nil {
			lastErr = err
			VerboseLog("Attempt %d: %v", attempt, err)
			continue
		}

		if bank.Contains(question.Text) {
			lastErr = fmt.Errorf("duplicate question: %q", question.Text)
			VerboseLog("Attempt %d: duplicate question detected", attempt)
			continue
		}

		return question, nil
	}

	return nil, fmt.Errorf("%w: last failure: %v", ErrExhaustedRetries, lastErr)
}

// NewQuizID returns a fresh random quiz identifier.
func NewQuizID() string {
	return generateQuizID()
}

func generateQuizID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 12)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

func generateQuestionID() string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
