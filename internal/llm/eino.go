package llm

import (
	"context"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rotisserie/eris"
)

// EinoProvider drives any OpenAI-compatible endpoint through an eino ChatModel
type EinoProvider struct {
	chatModel einomodel.ChatModel
	config    Config
}

// NewEinoProvider creates a provider backed by the eino OpenAI chat model
func NewEinoProvider(config Config) (*EinoProvider, error) {
	if config.APIKey == "" {
		return nil, eris.New("eino provider requires an API key")
	}
	modelName := config.Model
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	cm, err := einoopenai.NewChatModel(context.Background(), &einoopenai.ChatModelConfig{
		BaseURL: config.BaseURL,
		APIKey:  config.APIKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, eris.Wrap(err, "init eino chat model")
	}

	return newEinoProviderWithModel(cm, config), nil
}

func newEinoProviderWithModel(cm einomodel.ChatModel, config Config) *EinoProvider {
	return &EinoProvider{chatModel: cm, config: config}
}

// Name returns the provider name
func (p *EinoProvider) Name() string {
	return "eino"
}

// IsAvailable reports whether a chat model was constructed
func (p *EinoProvider) IsAvailable(ctx context.Context) bool {
	return p.chatModel != nil
}

// Complete runs one Generate call on the chat model
func (p *EinoProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	_, maxTokens := p.config.resolve(req, "")

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := make([]*schema.Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, &schema.Message{Role: schema.System, Content: req.System})
	}
	for _, m := range req.Messages {
		role := schema.User
		if m.Role == RoleAssistant {
			role = schema.Assistant
		}
		messages = append(messages, &schema.Message{Role: role, Content: m.Content})
	}

	opts := []einomodel.Option{einomodel.WithMaxTokens(maxTokens)}
	if req.Model != "" {
		opts = append(opts, einomodel.WithModel(req.Model))
	}
	if req.Temperature != nil {
		opts = append(opts, einomodel.WithTemperature(*req.Temperature))
	}

	resp, err := p.chatModel.Generate(ctxWithTimeout, messages, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "eino generate")
	}
	if resp == nil {
		return nil, eris.New("no response from eino chat model")
	}

	out := &CompletionResponse{
		Text:  strings.TrimSpace(resp.Content),
		Model: p.config.Model,
	}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		out.TokensUsed = resp.ResponseMeta.Usage.TotalTokens
	}
	return out, nil
}
