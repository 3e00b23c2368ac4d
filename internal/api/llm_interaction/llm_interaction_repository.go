package llmInteraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

var _ LlmInteractionRepository = (*PostgresLlmInteractionRepo)(nil)

type LlmInteractionRepository interface {
	SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error)
}

// Querier is satisfied by *pgxpool.Pool and by pgxmock pools.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresLlmInteractionRepo struct {
	logger *slog.Logger
	pgpool Querier
}

func NewPostgresLlmInteractionRepo(pgpool Querier, logger *slog.Logger) *PostgresLlmInteractionRepo {
	return &PostgresLlmInteractionRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *PostgresLlmInteractionRepo) SaveInteraction(ctx context.Context, interaction types.LlmInteraction) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LlmInteractionRepo").Start(ctx, "SaveInteraction", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "llm_interactions"),
		attribute.String("app.place", interaction.Place),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SaveInteraction"))

	query := `
        INSERT INTO llm_interactions (
            place, prompt, response_text, model_used, latency_ms
        ) VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	var id uuid.UUID
	err := r.pgpool.QueryRow(ctx, query,
		interaction.Place, interaction.Prompt, interaction.ResponseText,
		interaction.ModelUsed, interaction.LatencyMs,
	).Scan(&id)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert llm interaction", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return uuid.Nil, fmt.Errorf("failed to save llm interaction: %w", err)
	}

	l.DebugContext(ctx, "LLM interaction saved", slog.String("interaction_id", id.String()))
	span.SetAttributes(attribute.String("app.interaction_id", id.String()))
	span.SetStatus(codes.Ok, "Interaction saved")
	return id, nil
}
