package ai

import (
	"context"
	"errors"
	neturl "net/url"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/inkwell-notes/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

const (
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

// summaryRequest carries one upstream call's prompt and fixed parameters.
type summaryRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// upstream is one chat-completion backend capable of incremental output.
// Implementations forward every text fragment to onToken in arrival order
// and stop pulling as soon as onToken returns an error.
type upstream interface {
	Stream(ctx context.Context, req summaryRequest, onToken func(string) error) (string, error)
}

// newUpstream builds the upstream client for a configured provider.
func newUpstream(p appcfg.AIProvider) (upstream, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, errors.New("ai provider api key is empty")
	}
	switch normalizeProviderType(p.Type) {
	case "anthropic":
		return &anthropicUpstream{provider: p}, nil
	default:
		// "openai" and any openai-compatible endpoint.
		return &openaiUpstream{provider: p}, nil
	}
}

// selectProvider returns the first enabled provider.
func selectProvider(cfg appcfg.AIConfig) *appcfg.AIProvider {
	for _, p := range cfg.Providers {
		if p.Enabled {
			selected := p
			return &selected
		}
	}
	return nil
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	return strings.ReplaceAll(t, " ", "")
}

type openaiUpstream struct {
	provider appcfg.AIProvider
}

func (u *openaiUpstream) Stream(ctx context.Context, req summaryRequest, onToken func(string) error) (string, error) {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(u.provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if base := normalizeOpenAIBaseURL(u.provider.Endpoint); base != "" {
		opts = append(opts, openaioption.WithBaseURL(base))
	}
	client := openaiclient.NewClient(opts...)

	model := strings.TrimSpace(u.provider.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	stream := client.Chat.Completions.NewStreaming(ctx, openaiclient.ChatCompletionNewParams{
		Model: openaiclient.ChatModel(model),
		Messages: []openaiclient.ChatCompletionMessageParamUnion{
			openaiclient.SystemMessage(req.System),
			openaiclient.UserMessage(req.Prompt),
		},
		MaxTokens:   openaiclient.Int(int64(req.MaxTokens)),
		Temperature: openaiclient.Float(req.Temperature),
	})
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			// malformed chunk, treated as an empty fragment
			continue
		}
		token := chunk.Choices[0].Delta.Content
		if token == "" {
			continue
		}
		full.WriteString(token)
		if err := onToken(token); err != nil {
			return full.String(), err
		}
	}
	if err := stream.Err(); err != nil {
		return full.String(), err
	}
	return full.String(), nil
}

type anthropicUpstream struct {
	provider appcfg.AIProvider
}

func (u *anthropicUpstream) Stream(ctx context.Context, req summaryRequest, onToken func(string) error) (string, error) {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(u.provider.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(u.provider.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}
	client := anthropicclient.NewClient(opts...)

	model := strings.TrimSpace(u.provider.Model)
	if model == "" {
		model = defaultAnthropicModel
	}

	stream := client.Messages.NewStreaming(ctx, anthropicclient.MessageNewParams{
		Model:       anthropicclient.Model(model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropicclient.Float(req.Temperature),
		System: []anthropicclient.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(req.Prompt)),
		},
	})
	defer stream.Close()

	var full strings.Builder
	for stream.Next() {
		event := stream.Current()
		delta, ok := event.AsAny().(anthropicclient.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(anthropicclient.TextDelta)
		if !ok || text.Text == "" {
			continue
		}
		full.WriteString(text.Text)
		if err := onToken(text.Text); err != nil {
			return full.String(), err
		}
	}
	if err := stream.Err(); err != nil {
		return full.String(), err
	}
	return full.String(), nil
}

// normalizeOpenAIBaseURL ensures custom endpoints end in /v1 the way the
// OpenAI client expects.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
