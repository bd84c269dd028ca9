package quizbot

import "testing"

func TestBankRejectsDuplicateText(t *testing.T) {
	bank := NewQuestionBank()

	q := Question{Text: "What is Go?", Choices: []Choice{{Key: "A", Value: "a language"}}, Answer: "A"}
	if !bank.Add(q) {
		t.Fatal("first Add failed")
	}
	if bank.Add(q) {
		t.Error("duplicate Add succeeded")
	}
	if bank.Size() != 1 {
		t.Errorf("size = %d, want 1", bank.Size())
	}
}

func TestBankContains(t *testing.T) {
	bank := NewQuestionBank()
	bank.Add(Question{Text: "exact text", Choices: []Choice{{Key: "A", Value: "x"}}, Answer: "A"})

	if !bank.Contains("exact text") {
		t.Error("Contains(existing) = false")
	}
	if bank.Contains("Exact Text") {
		t.Error("Contains should match exact strings only")
	}
	if bank.Contains("other") {
		t.Error("Contains(missing) = true")
	}
}

func TestBankQuestionsReturnsCopy(t *testing.T) {
	bank := NewQuestionBank()
	bank.Add(Question{Text: "original", Choices: []Choice{{Key: "A", Value: "x"}}, Answer: "A"})

	questions := bank.Questions()
	questions[0].Text = "mutated"

	if bank.Question(0).Text != "original" {
		t.Error("mutating the returned slice changed the bank")
	}
}
