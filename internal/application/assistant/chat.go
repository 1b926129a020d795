package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/starterbox/backend/internal/infrastructure/config"
)

const systemInstruction = `You are the AI Operations Manager for Starter Box Studios. You have access to the CRM database covering golf course customers, products, orders, invoices, mockups, and sample requests.
Always be concise.`

// ChatMessage is one turn of the conversation as the caller sees it
type ChatMessage struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required"`
}

// ChatResult is the assistant's reply. RefreshNeeded is set when a tool
// call changed sheet data and the caller should reload its view.
type ChatResult struct {
	Text          string   `json:"text"`
	ToolsUsed     []string `json:"tools_used,omitempty"`
	RefreshNeeded bool     `json:"refresh_needed"`
}

// Service drives the conversational assistant: one model call to pick
// tools, local execution, then a second call to narrate the results.
type Service struct {
	client   *genai.Client
	model    string
	executor *Executor
	logger   *zap.Logger
}

// NewService creates the assistant against the Gemini API
func NewService(ctx context.Context, cfg config.AssistantConfig, executor *Executor, logger *zap.Logger) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Service{
		client:   client,
		model:    cfg.Model,
		executor: executor,
		logger:   logger,
	}, nil
}

// Chat runs one conversation turn. The full history is passed on every
// call; the assistant itself holds no session state.
func (s *Service) Chat(ctx context.Context, messages []ChatMessage) (*ChatResult, error) {
	contents := make([]*genai.Content, 0, len(messages)+2)
	for _, m := range messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	genConfig := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: toolDeclarations()},
		},
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 {
		text := resp.Text()
		if text == "" {
			text = "I couldn't process that request."
		}
		return &ChatResult{Text: text}, nil
	}

	result := &ChatResult{}
	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		s.logger.Info("assistant tool call", zap.String("tool", call.Name))
		result.ToolsUsed = append(result.ToolsUsed, call.Name)
		if refreshAfter[call.Name] {
			result.RefreshNeeded = true
		}

		toolResult := s.executor.Execute(ctx, call.Name, call.Args)
		parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, map[string]any{
			"result": toolResult,
		}))
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		contents = append(contents, resp.Candidates[0].Content)
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	followUp, err := s.client.Models.GenerateContent(ctx, s.model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("narrate tool results: %w", err)
	}

	result.Text = followUp.Text()
	if result.Text == "" {
		result.Text = "I've completed that request."
	}
	return result, nil
}
