package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/healthlink-platform/healthlink/internal/config"
)

// Generator produces answers and pre-visit briefings. The orchestrator
// depends on this interface; tests swap in stubs.
type Generator interface {
	Answer(ctx context.Context, question string) (*AnswerResult, error)
	Briefing(ctx context.Context, input string, qa []QA) (*BriefingResult, error)
}

// OpenAIClient implements Generator against the OpenAI chat completions API
// in JSON-object mode.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a generation client with a bounded request timeout.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	slog.Info("initializing OpenAI client", "model", cfg.Model, "timeout", cfg.Timeout)
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Answer asks for a cited health answer and parses the strict claim shape.
func (c *OpenAIClient) Answer(ctx context.Context, question string) (*AnswerResult, error) {
	content, err := c.complete(ctx, answerSystemPrompt, question, 0)
	if err != nil {
		return nil, err
	}
	return parseAnswer(content)
}

// Briefing asks for a structured pre-visit briefing. API failures are
// errors; a malformed payload clamps down to an empty briefing.
func (c *OpenAIClient) Briefing(ctx context.Context, input string, qa []QA) (*BriefingResult, error) {
	content, err := c.complete(ctx, intakeFinalSystemPrompt, briefingUserMessage(input, qa), 1024)
	if err != nil {
		return nil, err
	}
	return parseBriefing(content), nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}
	return resp.Choices[0].Message.Content, nil
}

// briefingUserMessage lays out the chief complaint and checklist answers for
// the intake prompt, fencing the model to the facts the user actually gave.
func briefingUserMessage(input string, qa []QA) string {
	var qaText strings.Builder
	for i, pair := range qa {
		if i > 0 {
			qaText.WriteString("\n\n")
		}
		answer := pair.A
		if answer == "" {
			answer = "(미응답)"
		}
		fmt.Fprintf(&qaText, "Q%d: %s\nA%d: %s", i+1, pair.Q, i+1, answer)
	}

	return fmt.Sprintf(
		"[사용자 입력 원문 — 아래 내용에 명시된 사실만 사용할 것]\n\n주호소: %s\n\n체크리스트 응답:\n%s\n\n[지시] 위 입력에 없는 증상·상황·시간대는 절대 추가하지 마세요. 빈값/(미응답) 항목은 빈 문자열/빈 배열로 두세요.",
		input, qaText.String(),
	)
}
