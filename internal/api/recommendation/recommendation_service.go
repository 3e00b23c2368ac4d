package recommendation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

const (
	ServiceName        = "gemini"
	defaultTemperature = 0.5
)

var ErrEmptyResponse = errors.New("no recommendation content from AI")

var _ Generator = (*GeneratorImpl)(nil)

// Generator produces free-text travel recommendations for a place.
type Generator interface {
	Generate(ctx context.Context, place, preferences string) (string, error)
}

// TextGenerator is the slice of the Gemini client the generator needs.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	Model() string
}

// InteractionRecorder stores successful LLM calls for later analysis.
type InteractionRecorder interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
}

type GeneratorImpl struct {
	logger      *slog.Logger
	aiClient    TextGenerator
	recorder    InteractionRecorder
	temperature float32
}

// NewGenerator wires the generator. recorder may be nil.
func NewGenerator(aiClient TextGenerator, recorder InteractionRecorder, temperature float32, logger *slog.Logger) *GeneratorImpl {
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &GeneratorImpl{
		logger:      logger,
		aiClient:    aiClient,
		recorder:    recorder,
		temperature: temperature,
	}
}

func (g *GeneratorImpl) Generate(ctx context.Context, place, preferences string) (string, error) {
	ctx, span := otel.Tracer("RecommendationGenerator").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("app.place", place),
	))
	defer span.End()

	l := g.logger.With(slog.String("method", "Generate"), slog.String("place", place))

	prompt := generateTravelPrompt(place, preferences)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](g.temperature)}

	startTime := time.Now()
	txt, err := g.aiClient.GenerateContent(ctx, prompt, config)
	latencyMs := int(time.Since(startTime).Milliseconds())
	if err != nil {
		l.ErrorContext(ctx, "Error generating travel recommendations", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI generation failed")
		return "", types.NewExternalServiceError(ServiceName, err)
	}
	txt = strings.TrimSpace(txt)
	if txt == "" {
		l.WarnContext(ctx, "AI returned an empty response")
		span.SetStatus(codes.Error, "Empty AI response")
		return "", types.NewExternalServiceError(ServiceName, ErrEmptyResponse)
	}

	if g.recorder != nil {
		interaction := types.LlmInteraction{
			Place:        place,
			Prompt:       prompt,
			ResponseText: txt,
			ModelUsed:    g.aiClient.Model(),
			LatencyMs:    latencyMs,
		}
		if id, err := g.recorder.SaveInteraction(ctx, interaction); err != nil {
			l.WarnContext(ctx, "Failed to save LLM interaction", slog.Any("error", err))
		} else {
			span.SetAttributes(attribute.String("app.llm_interaction.id", id.String()))
		}
	}

	l.InfoContext(ctx, "Travel recommendations generated successfully", slog.Int("latency_ms", latencyMs))
	span.SetStatus(codes.Ok, "Recommendations generated")
	return txt, nil
}
