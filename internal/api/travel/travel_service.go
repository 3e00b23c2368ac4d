package travel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/geocoding"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/image"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

var ErrPlaceRequired = errors.New("please enter the name of a place")

const (
	msgLocationNotFound = "Unable to find location coordinates. Please try again."
	msgSaveFailed       = "Error saving travel data. Please try again."
)

var _ TravelService = (*TravelServiceImpl)(nil)

// TravelService runs the recommendation flow and recalls saved results.
type TravelService interface {
	// Recommend resolves, generates, looks up an image, builds the map and
	// persists one record. Step failures are reported in the result's Errors;
	// the only returned error is ErrPlaceRequired.
	Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendationResult, error)
	// LoadSaved returns every stored record. Wraps records.ErrStoreNotFound
	// when nothing has been saved yet.
	LoadSaved(ctx context.Context) ([]types.TravelRecord, error)
}

// MapRenderer builds the interactive map for resolved coordinates.
type MapRenderer interface {
	Render(place string, at types.Coordinates) types.MapView
}

type TravelServiceImpl struct {
	logger    *slog.Logger
	resolver  geocoding.Resolver
	generator recommendation.Generator
	images    image.Lookup
	maps      MapRenderer
	store     records.RecordRepository
	metrics   *metrics.AppMetrics
}

func NewTravelService(resolver geocoding.Resolver,
	generator recommendation.Generator,
	images image.Lookup,
	maps MapRenderer,
	store records.RecordRepository,
	appMetrics *metrics.AppMetrics,
	logger *slog.Logger) *TravelServiceImpl {
	return &TravelServiceImpl{
		logger:    logger,
		resolver:  resolver,
		generator: generator,
		images:    images,
		maps:      maps,
		store:     store,
		metrics:   appMetrics,
	}
}

func (s *TravelServiceImpl) Recommend(ctx context.Context, req types.RecommendationRequest) (*types.RecommendationResult, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("app.place", req.Place),
	))
	defer span.End()

	start := time.Now()
	place := strings.TrimSpace(req.Place)
	preferences := strings.TrimSpace(req.Preferences)

	l := s.logger.With(slog.String("method", "Recommend"), slog.String("place", place))

	if place == "" {
		l.WarnContext(ctx, "Recommendation requested without a place")
		span.SetStatus(codes.Error, "Place missing")
		return nil, ErrPlaceRequired
	}
	l.DebugContext(ctx, "Starting recommendation flow")

	result := &types.RecommendationResult{}

	coords, err := s.resolver.Resolve(ctx, place)
	switch {
	case err != nil:
		s.externalFailure(ctx, span, err)
		l.WarnContext(ctx, "Failed to resolve location", slog.Any("error", err))
		result.Errors = append(result.Errors, fmt.Sprintf("Error resolving location: %s", userDetail(err)))
	case coords == nil:
		l.InfoContext(ctx, "No coordinates found for place")
		result.Errors = append(result.Errors, msgLocationNotFound)
	default:
		result.Coordinates = coords
	}

	details, err := s.generator.Generate(ctx, place, preferences)
	if err != nil {
		s.externalFailure(ctx, span, err)
		l.WarnContext(ctx, "Failed to generate recommendations", slog.Any("error", err))
		result.Errors = append(result.Errors, fmt.Sprintf("Error generating travel recommendations: %s", userDetail(err)))
		details = ""
	}

	imageURL, err := s.images.FindImage(ctx, place)
	if err != nil {
		s.externalFailure(ctx, span, err)
		l.WarnContext(ctx, "Failed to fetch image", slog.Any("error", err))
		result.Errors = append(result.Errors, fmt.Sprintf("Error fetching image: %s", userDetail(err)))
		imageURL = nil
	}

	if result.Coordinates != nil {
		view := s.maps.Render(place, *result.Coordinates)
		result.Map = &view
	}

	result.Record = types.NewTravelRecord(place, details, imageURL)

	storeStart := time.Now()
	err = s.store.Append(ctx, []types.TravelRecord{result.Record})
	s.recordStore(ctx, records.OpAppend, storeStart, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save travel record", slog.Any("error", err))
		span.RecordError(err)
		result.Errors = append(result.Errors, msgSaveFailed)
	} else {
		result.Saved = true
	}

	if s.metrics != nil {
		s.metrics.RecommendationRequestsTotal.Add(ctx, 1)
		s.metrics.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}

	l.InfoContext(ctx, "Recommendation flow finished",
		slog.Bool("saved", result.Saved),
		slog.Int("error_count", len(result.Errors)),
		slog.Duration("latency", time.Since(start)))
	span.SetAttributes(attribute.Int("app.error_count", len(result.Errors)))
	span.SetStatus(codes.Ok, "Recommendation flow finished")
	return result, nil
}

// userDetail renders a step failure for the user without request URLs.
func userDetail(err error) string {
	var extErr *types.ExternalServiceError
	if errors.As(err, &extErr) {
		return extErr.Service + ": " + api.StripRequestURL(extErr.Err).Error()
	}
	return api.StripRequestURL(err).Error()
}

func (s *TravelServiceImpl) LoadSaved(ctx context.Context) ([]types.TravelRecord, error) {
	ctx, span := otel.Tracer("TravelService").Start(ctx, "LoadSaved")
	defer span.End()

	l := s.logger.With(slog.String("method", "LoadSaved"))
	l.DebugContext(ctx, "Loading saved travel data", slog.String("path", s.store.Path()))

	start := time.Now()
	saved, err := s.store.LoadAll(ctx)
	s.recordStore(ctx, records.OpLoad, start, err)
	if err != nil {
		l.ErrorContext(ctx, "Error loading travel data", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load travel data")
		return nil, fmt.Errorf("error loading travel data: %w", err)
	}

	span.SetAttributes(attribute.Int("app.record_count", len(saved)))
	span.SetStatus(codes.Ok, "Travel data loaded")
	return saved, nil
}

func (s *TravelServiceImpl) externalFailure(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)
	if s.metrics == nil {
		return
	}
	service := "unknown"
	var extErr *types.ExternalServiceError
	if errors.As(err, &extErr) {
		service = extErr.Service
	}
	s.metrics.RecordExternalError(ctx, service)
}

func (s *TravelServiceImpl) recordStore(ctx context.Context, op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.RecordStoreOperation(ctx, op, start, err)
	}
}
