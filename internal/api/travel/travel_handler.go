package travel

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-recommendations/internal/api"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

type HandlerImpl struct {
	travelService TravelService
	logger        *slog.Logger
}

func NewHandlerImpl(travelService TravelService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		travelService: travelService,
		logger:        logger,
	}
}

// CreateRecommendation godoc
// @Summary      Generate travel recommendations for a place
// @Description  Resolves the place, asks the LLM for recommendations, looks up an image, builds the map view and appends the result to the travel log. Step failures are listed in errors.
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        request body types.RecommendationRequest true "Place and optional preferences"
// @Success      200 {object} types.RecommendationResult
// @Failure      400 {object} map[string]interface{} "Invalid body or missing place"
// @Router       /api/v1/recommendations [post]
func (h *HandlerImpl) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "CreateRecommendation", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/recommendations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateRecommendation"))
	l.DebugContext(ctx, "Create recommendation handler invoked")

	var req types.RecommendationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	span.SetAttributes(attribute.String("app.place", req.Place))

	result, err := h.travelService.Recommend(ctx, req)
	if err != nil {
		if errors.Is(err, ErrPlaceRequired) {
			span.SetStatus(codes.Error, "Place missing")
			api.ErrorResponse(w, r, http.StatusBadRequest, "Please enter the name of a place.")
			return
		}
		l.ErrorContext(ctx, "Recommendation flow failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Recommendation flow failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	l.InfoContext(ctx, "Recommendation served",
		slog.String("place", result.Record.Location),
		slog.Bool("saved", result.Saved))
	span.SetStatus(codes.Ok, "Recommendation served")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// GetSavedRecords godoc
// @Summary      List saved travel records
// @Description  Returns every record in the travel log in write order.
// @Tags         Records
// @Produce      json
// @Success      200 {array} types.TravelRecord
// @Failure      404 {object} map[string]interface{} "Nothing saved yet"
// @Failure      500 {object} map[string]interface{} "Travel log unreadable"
// @Router       /api/v1/records [get]
func (h *HandlerImpl) GetSavedRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GetSavedRecords", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/records"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetSavedRecords"))
	l.DebugContext(ctx, "Get saved records handler invoked")

	saved, err := h.travelService.LoadSaved(ctx)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, records.ErrStoreNotFound) {
			span.SetStatus(codes.Error, "No saved records")
			api.ErrorResponse(w, r, http.StatusNotFound, msgNoSavedData)
			return
		}
		l.ErrorContext(ctx, "Failed to load saved records", slog.Any("error", err))
		span.SetStatus(codes.Error, "Failed to load saved records")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load saved travel data")
		return
	}

	span.SetStatus(codes.Ok, "Saved records served")
	api.WriteJSONResponse(w, r, http.StatusOK, saved)
}
