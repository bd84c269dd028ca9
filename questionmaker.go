package quizbot

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultTopic is used when a generation request carries no topic.
const DefaultTopic = "General Knowledge"

// Retriever returns content chunks relevant to a topic. It is backed by a
// vector similarity search over ingested documents.
type Retriever interface {
	Retrieve(ctx context.Context, topic string) ([]string, error)
}

// QuestionMaker generates question candidates grounded in retrieved
// content using a hosted chat model.
type QuestionMaker struct {
	client    *openai.Client
	model     string
	retriever Retriever
}

// NewQuestionMaker creates a new question maker with an OpenAI client and
// a content retriever.
func NewQuestionMaker(apiKey, model string, retriever Retriever) *QuestionMaker {
	if model == "" {
		model = openai.GPT4o
	}
	return &QuestionMaker{
		client:    openai.NewClient(apiKey),
		model:     model,
		retriever: retriever,
	}
}

func (qm *QuestionMaker) checkConfig() error {
	if qm.retriever == nil {
		return ErrNoContentSource
	}
	return nil
}

// GenerateQuestion produces one raw question candidate for the given
// topic. The model response is returned as-is; parsing and validation are
// the builder's job, which keeps this a single call out and makes retries
// simple to reason about.
func (qm *QuestionMaker) GenerateQuestion(ctx context.Context, topic string) (string, error) {
	if err := qm.checkConfig(); err != nil {
		return "", err
	}
	if topic == "" {
		topic = DefaultTopic
	}

	chunks, err := qm.retriever.Retrieve(ctx, topic)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve context: %w", err)
	}

	prompt := qm.buildPrompt(topic, chunks)

	if logger := GetGlobalLogger(); logger != nil {
		logger.LogLLMRequest("QuestionMaker", prompt)
	}

	resp, err := qm.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       qm.model,
			Temperature: 0.8,
			MaxTokens:   500,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: fmt.Sprintf("You are a subject matter expert on the topic: %s", topic),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate question: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	raw := resp.Choices[0].Message.Content

	if logger := GetGlobalLogger(); logger != nil {
		logger.LogLLMResponse("QuestionMaker", raw)
	}

	return raw, nil
}

func (qm *QuestionMaker) buildPrompt(topic string, chunks []string) string {
	var sb strings.Builder

	sb.WriteString("Follow the instructions to create a quiz question:\n")
	sb.WriteString("1. Generate a question based on the topic provided and context as key \"question\"\n")
	sb.WriteString("2. Provide 4 multiple choice answers to the question as a list of key-value pairs \"choices\"\n")
	sb.WriteString("3. Provide the correct answer for the question from the list of answers as key \"answer\"\n")
	sb.WriteString("4. Provide an explanation as to why the answer is correct as key \"explanation\"\n\n")

	sb.WriteString("You must respond as a JSON object with the following structure:\n")
	sb.WriteString(`{
    "question": "<question>",
    "choices": [
        {"key": "A", "value": "<choice>"},
        {"key": "B", "value": "<choice>"},
        {"key": "C", "value": "<choice>"},
        {"key": "D", "value": "<choice>"}
    ],
    "answer": "<answer key from choices list>",
    "explanation": "<explanation as to why the answer is correct>"
}`)
	sb.WriteString("\n\nRespond with the JSON object only, no surrounding text.\n\n")

	sb.WriteString(fmt.Sprintf("Topic: %s\n\n", topic))
	sb.WriteString("Context:\n")
	for _, chunk := range chunks {
		sb.WriteString(chunk)
		sb.WriteString("\n\n")
	}

	return sb.String()
}
