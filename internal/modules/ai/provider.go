package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"

	"github.com/mindlog/core/internal/config"
)

const chatTimeout = 30 * time.Second

// chatRequest describes one completion call to the DeepSeek endpoint.
type chatRequest struct {
	SystemPrompt string
	Prompt       string
	Temperature  float64
	MaxTokens    int64
}

func newChatClient(apiKey, baseURL string) (*openaiclient.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("AI provider api key is empty")
	}
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(apiKey)),
		openaioption.WithBaseURL(config.NormalizeBaseURL(baseURL)),
		openaioption.WithMaxRetries(0),
	}
	client := openaiclient.NewClient(opts...)
	return &client, nil
}

// callChat performs a single chat completion and returns the raw
// assistant message text.
func callChat(ctx context.Context, client *openaiclient.Client, model string, req chatRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(req.SystemPrompt) != "" {
		messages = append(messages, openaiclient.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openaiclient.UserMessage(req.Prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openaiclient.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaiclient.Int(req.MaxTokens)
	}

	completion, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty response from AI")
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", errors.New("empty response from AI")
	}
	return content, nil
}

// unmarshalAIJSON tolerates markdown fences and surrounding prose
// around the JSON payload the model was asked for.
func unmarshalAIJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(cleaned, pair[0])
		end := strings.LastIndex(cleaned, pair[1])
		if start >= 0 && end > start {
			if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("invalid JSON response from AI")
}
