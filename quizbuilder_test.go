package quizbot

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// scriptedSource returns canned responses in order, failing once the
// script runs out.
type scriptedSource struct {
	responses []string
	calls     int
	configErr error
}

func (s *scriptedSource) checkConfig() error {
	return s.configErr
}

func (s *scriptedSource) GenerateQuestion(ctx context.Context, topic string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", fmt.Errorf("no scripted response for call %d", s.calls)
	}
	raw := s.responses[s.calls]
	s.calls++
	return raw, nil
}

func questionJSON(text string) string {
	return fmt.Sprintf(`{
		"question": %q,
		"choices": [
			{"key": "A", "value": "first option"},
			{"key": "B", "value": "second option"},
			{"key": "C", "value": "third option"},
			{"key": "D", "value": "fourth option"}
		],
		"answer": "B",
		"explanation": "because the second option is right"
	}`, text)
}

func TestBuildQuizCountBounds(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"zero", 0},
		{"negative", -1},
		{"over_max", MaxQuestions + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &scriptedSource{}
			builder := NewQuizBuilder(source)

			_, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: tt.count})
			if !errors.Is(err, ErrInvalidCount) {
				t.Errorf("got %v, want ErrInvalidCount", err)
			}
			if source.calls != 0 {
				t.Errorf("source was called %d times before validation", source.calls)
			}
		})
	}
}

func TestBuildQuizCollectsRequestedQuestions(t *testing.T) {
	source := &scriptedSource{responses: []string{
		questionJSON("What is a goroutine?"),
		questionJSON("What does defer do?"),
		questionJSON("What is a channel?"),
	}}
	builder := NewQuizBuilder(source)

	bank, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 3})
	if err != nil {
		t.Fatalf("BuildQuiz: %v", err)
	}
	if bank.Size() != 3 {
		t.Fatalf("bank size = %d, want 3", bank.Size())
	}
	if source.calls != 3 {
		t.Errorf("source calls = %d, want 3", source.calls)
	}
	for i, q := range bank.Questions() {
		if q.Topic != "Go" {
			t.Errorf("question %d topic = %q, want Go", i, q.Topic)
		}
	}
}

func TestBuildQuizRetriesMalformedResponse(t *testing.T) {
	source := &scriptedSource{responses: []string{
		`this is not JSON at all`,
		questionJSON("What is an interface?"),
	}}
	builder := NewQuizBuilder(source)

	bank, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 1})
	if err != nil {
		t.Fatalf("BuildQuiz: %v", err)
	}
	if bank.Size() != 1 {
		t.Fatalf("bank size = %d, want 1", bank.Size())
	}
	if got := bank.Question(0).Text; got != "What is an interface?" {
		t.Errorf("question text = %q", got)
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2", source.calls)
	}
}

func TestBuildQuizRetriesDuplicates(t *testing.T) {
	source := &scriptedSource{responses: []string{
		questionJSON("What is a slice?"),
		questionJSON("What is a slice?"),
		questionJSON("What is a map?"),
	}}
	builder := NewQuizBuilder(source)

	bank, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 2})
	if err != nil {
		t.Fatalf("BuildQuiz: %v", err)
	}
	if bank.Size() != 2 {
		t.Fatalf("bank size = %d, want 2", bank.Size())
	}
	if bank.Question(0).Text == bank.Question(1).Text {
		t.Error("bank holds duplicate questions")
	}
	if source.calls != 3 {
		t.Errorf("source calls = %d, want 3", source.calls)
	}
}

func TestBuildQuizSkipsExhaustedSlot(t *testing.T) {
	// Slot 1 fills on the first call; slot 2 then burns its full budget
	// of four attempts on duplicates and is skipped.
	dup := questionJSON("What is a pointer?")
	source := &scriptedSource{responses: []string{dup, dup, dup, dup, dup}}
	builder := NewQuizBuilder(source)

	bank, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 2})
	if err != nil {
		t.Fatalf("BuildQuiz: %v", err)
	}
	if bank.Size() != 1 {
		t.Errorf("bank size = %d, want 1", bank.Size())
	}
	if source.calls != 5 {
		t.Errorf("source calls = %d, want 5 (1 fill + 4 failed attempts)", source.calls)
	}
}

func TestBuildQuizAllSlotsExhausted(t *testing.T) {
	source := &scriptedSource{responses: []string{
		`garbage`, `garbage`, `garbage`, `garbage`,
	}}
	builder := NewQuizBuilder(source)

	_, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 1})
	if !errors.Is(err, ErrExhaustedRetries) {
		t.Errorf("got %v, want ErrExhaustedRetries", err)
	}
	if source.calls != 4 {
		t.Errorf("source calls = %d, want 4", source.calls)
	}
}

func TestBuildQuizMissingContentSource(t *testing.T) {
	source := &scriptedSource{configErr: ErrNoContentSource}
	builder := NewQuizBuilder(source)

	_, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 3})
	if !errors.Is(err, ErrNoContentSource) {
		t.Errorf("got %v, want ErrNoContentSource", err)
	}
	if source.calls != 0 {
		t.Errorf("source calls = %d, want 0", source.calls)
	}
}

func TestQuestionMakerWithoutRetriever(t *testing.T) {
	maker := NewQuestionMaker("test-key", "", nil)
	builder := NewQuizBuilder(maker)

	_, err := builder.BuildQuiz(context.Background(), GenerationRequest{Topic: "Go", NumQuestions: 1})
	if !errors.Is(err, ErrNoContentSource) {
		t.Errorf("got %v, want ErrNoContentSource", err)
	}
}
