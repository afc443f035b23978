package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"go.uber.org/zap"
)

// MockClient is a deterministic stand-in for the completion model.
type MockClient struct {
	logger *zap.Logger
}

func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		logger: logger,
	}
}

// Invoke inspects the prompt: when it carries a component-selection format
// instruction it answers with index 0 for every requested category, using
// single-quoted JSON so the caller's normalization path is exercised; any
// other prompt gets a canned chat reply.
func (m *MockClient) Invoke(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] invoking completion model", zap.Int("prompt_length", len(prompt)))

	var parts []string
	for _, cat := range entity.AllCategories {
		marker := fmt.Sprintf("'%s'", cat.CatalogLabel())
		if strings.Contains(prompt, marker) && strings.Contains(prompt, "'index'") {
			parts = append(parts, fmt.Sprintf("'%s': { 'lien': '', 'index': 0 }", cat.CatalogLabel()))
		}
	}

	if len(parts) > 0 {
		return "{ " + strings.Join(parts, ", ") + " }", nil
	}

	return "Happy to help with your build! Tell me your budget and what you plan to use the machine for.", nil
}
