package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fmzb/hub-api/internal/dto"
	"github.com/fmzb/hub-api/internal/models"
	"github.com/fmzb/hub-api/internal/repository"
	"github.com/fmzb/hub-api/pkg/ai"
)

// NoAnswerMarker is returned when the analysis capability produces no
// content, so clients can distinguish "no data" from "not yet answered".
const NoAnswerMarker = "No answer available for this question."

// AnalysisService forwards a free-text question about the user data to the
// configured analysis capability and returns its answer.
type AnalysisService interface {
	Analyze(ctx context.Context, req dto.AnalysisRequest) (dto.AnalysisResponse, error)
}

type analysisService struct {
	analyst   ai.Analyst
	users     repository.UserRepository
	activity  repository.ActivityLogRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewAnalysisService constructs the chat-analysis gateway service.
func NewAnalysisService(analyst ai.Analyst, users repository.UserRepository, activity repository.ActivityLogRepository, validate *validator.Validate, timeout time.Duration, logger zerolog.Logger) AnalysisService {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &analysisService{
		analyst:   analyst,
		users:     users,
		activity:  activity,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		timeout:   timeout,
		logger:    logger.With().Str("component", "analysis_service").Logger(),
	}
}

func (s *analysisService) Analyze(ctx context.Context, req dto.AnalysisRequest) (dto.AnalysisResponse, error) {
	question := strings.TrimSpace(s.sanitizer.Sanitize(req.Question))
	if question == "" {
		return dto.AnalysisResponse{}, ErrEmptyQuestion
	}

	if err := s.validator.Struct(req); err != nil {
		return dto.AnalysisResponse{}, err
	}

	tracer := otel.Tracer("github.com/fmzb/hub-api/internal/service/analysis")
	ctx, span := tracer.Start(ctx, "analysis.answer")
	span.SetAttributes(attribute.Int("analysis.question_length", len(question)))
	defer span.End()

	input := ai.AnalysisInput{
		Question:    question,
		DataContext: s.buildDataContext(ctx),
	}

	// The audit entry covers the attempt, so it is written before the
	// analyst call and survives a failed or timed-out answer.
	s.recordAnalysis(ctx, req.Email, question)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.analyst.Answer(callCtx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analyst_failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", ErrAnalysisTimeout, err)
		}
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	answer := strings.TrimSpace(result.Answer)
	if answer == "" {
		answer = NoAnswerMarker
	}

	return dto.AnalysisResponse{Answer: answer}, nil
}

// buildDataContext summarises the current aggregates for the model's system
// prompt. A store failure here degrades the context, not the call.
func (s *analysisService) buildDataContext(ctx context.Context) string {
	builder := strings.Builder{}

	counts, err := s.users.CountByStatus(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load status counts for analysis context")
		return "User data is currently unavailable."
	}

	builder.WriteString(fmt.Sprintf("Total users: %d\nActive users: %d\nDisabled users: %d\n", counts.Total, counts.Active, counts.Disabled))

	roles, err := s.users.CountByRole(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load role counts for analysis context")
		return builder.String()
	}

	for _, role := range roles {
		builder.WriteString(fmt.Sprintf("%s accounts: %d\n", dto.CapitalizeRole(role.Role), role.Count))
	}

	return builder.String()
}

func (s *analysisService) recordAnalysis(ctx context.Context, email, question string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		s.logger.Debug().Str("email", email).Msg("skipping analysis activity for unknown user")
		return
	}

	entry := models.UserActivityLog{
		Email:               email,
		ActivityType:        models.ActivityTypeAnalysis,
		ActivityDescription: question,
	}
	if err := s.activity.Append(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record analysis activity")
	}
}
