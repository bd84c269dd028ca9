package quizbot

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LLMLogger records all model interactions for one quiz build in a file
// under log/, one file per quiz.
type LLMLogger struct {
	file   *os.File
	mu     sync.Mutex
	quizID string
}

var (
	globalLoggerMu sync.Mutex
	globalLogger   *LLMLogger
)

// SetGlobalLogger installs the logger used by components that have no
// direct reference to the current build, such as the question maker.
func SetGlobalLogger(logger *LLMLogger) {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the current global logger, or nil.
func GetGlobalLogger() *LLMLogger {
	globalLoggerMu.Lock()
	defer globalLoggerMu.Unlock()
	return globalLogger
}

// NewLLMLogger creates a new LLM logger for a specific quiz build.
func NewLLMLogger(quizID string, req GenerationRequest) (*LLMLogger, error) {
	if err := os.MkdirAll("log", 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := filepath.Join("log", fmt.Sprintf("%s.log", quizID))
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &LLMLogger{
		file:   file,
		quizID: quizID,
	}

	logger.Logf("=== Quiz Build Log ===\n")
	logger.Logf("Quiz ID: %s\n", quizID)
	logger.Logf("Topic: %s\n", req.Topic)
	logger.Logf("Number of Questions: %d\n", req.NumQuestions)
	logger.Logf("Started: %s\n", time.Now().Format(time.RFC3339))
	logger.Logf("======================\n\n")

	return logger, nil
}

// Logf writes a formatted log entry with timestamp
func (ll *LLMLogger) Logf(format string, args ...interface{}) {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(ll.file, "[%s] %s", timestamp, message)
	ll.file.Sync()
}

// LogLLMRequest logs an LLM request
func (ll *LLMLogger) LogLLMRequest(module, prompt string) {
	ll.Logf("=== LLM REQUEST (%s) ===\n", module)
	ll.Logf("Prompt:\n%s\n", prompt)
	ll.Logf("=====================\n\n")
}

// LogLLMResponse logs an LLM response
func (ll *LLMLogger) LogLLMResponse(module, response string) {
	ll.Logf("=== LLM RESPONSE (%s) ===\n", module)
	ll.Logf("Response:\n%s\n", response)
	ll.Logf("======================\n\n")
}

// LogSlotResult logs the outcome of one question slot.
func (ll *LLMLogger) LogSlotResult(slot int, outcome, detail string) {
	ll.Logf("Slot %d: %s - %s\n", slot, outcome, detail)
}

// Close closes the log file
func (ll *LLMLogger) Close() error {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if ll.file != nil {
		timestamp := time.Now().Format("15:04:05.000")
		fmt.Fprintf(ll.file, "[%s] === Quiz Build Complete ===\n", timestamp)
		return ll.file.Close()
	}
	return nil
}
