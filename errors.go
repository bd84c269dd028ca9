package quizbot

import "errors"

// Error taxonomy for quiz building. Configuration and argument errors are
// surfaced to the caller immediately and never retried; parse and
// validation failures are recovered locally by the per-slot retry loop.
var (
	// ErrNoContentSource is returned when quiz generation is attempted
	// without a content retriever configured.
	ErrNoContentSource = errors.New("no content source configured")

	// ErrInvalidCount is returned when the requested number of questions
	// is outside [1, MaxQuestions].
	ErrInvalidCount = errors.New("invalid question count")

	// ErrEmptyBank is returned when a navigator is constructed over an
	// empty question bank.
	ErrEmptyBank = errors.New("question bank is empty")

	// ErrMalformedQuestion wraps parse and validation failures of model
	// output. The output is untrusted and may not be JSON at all.
	ErrMalformedQuestion = errors.New("malformed question")

	// ErrExhaustedRetries is returned when the retry budget was spent on
	// every slot without producing a single valid question.
	ErrExhaustedRetries = errors.New("exhausted retries without a valid question")
)
