package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fmzb",
		Subsystem: "ai",
		Name:      "analysis_duration_seconds",
		Help:      "Duration of AI analysis requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fmzb",
		Subsystem: "ai",
		Name:      "analysis_failures_total",
		Help:      "Number of AI analysis failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI analyst.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIAnalyst implements Analyst against the OpenAI chat completion API.
type OpenAIAnalyst struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIAnalyst builds a new analyst using the provided configuration.
func NewOpenAIAnalyst(cfg OpenAIConfig) (*OpenAIAnalyst, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 500
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}

	tracer := otel.Tracer("github.com/fmzb/hub-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(config)

	return &OpenAIAnalyst{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Answer sends the analysis request to OpenAI and returns the model's reply.
func (a *OpenAIAnalyst) Answer(parent context.Context, input AnalysisInput) (AnalysisResult, error) {
	ctx, span := a.tracer.Start(parent, "openai.answer", trace.WithAttributes(
		attribute.String("model", a.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       a.cfg.Model,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: analystSystemPrompt(input.DataContext),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: input.Question,
			},
		},
	}

	resp, err := a.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(a.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(a.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return AnalysisResult{}, fmt.Errorf("openai answer: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(a.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return AnalysisResult{}, err
	}

	return AnalysisResult{
		Answer: strings.TrimSpace(resp.Choices[0].Message.Content),
		Raw: map[string]interface{}{
			"usage": resp.Usage,
		},
	}, nil
}

func analystSystemPrompt(dataContext string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an analytics assistant for a user administration dashboard. ")
	builder.WriteString("Answer questions about registered users, their roles, and account statuses ")
	builder.WriteString("using only the aggregated figures provided below. Keep answers short and factual.\n\n")
	if dataContext != "" {
		builder.WriteString("## Current data\n")
		builder.WriteString(dataContext)
	}
	return builder.String()
}
