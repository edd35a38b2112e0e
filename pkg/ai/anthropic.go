package ai

import (
	"context"
	"fmt"
)

// AnthropicConfig placeholder for anthropic integration configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// AnthropicAnalyst is a stub implementation that can be expanded once the SDK is available.
type AnthropicAnalyst struct{}

// NewAnthropicAnalyst constructs a new stub analyst.
func NewAnthropicAnalyst(cfg AnthropicConfig) (*AnthropicAnalyst, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	return &AnthropicAnalyst{}, nil
}

// Answer is not yet implemented for Anthropic models.
func (a *AnthropicAnalyst) Answer(ctx context.Context, input AnalysisInput) (AnalysisResult, error) {
	return AnalysisResult{}, fmt.Errorf("anthropic analyst not implemented")
}
