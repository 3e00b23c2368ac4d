package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-travel-recommendations/internal/api"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

// OpenCage docs: https://opencagedata.com/api
// Endpoint used: /geocode/v1/json?q=<place>&key=<KEY>&limit=1

const (
	ServiceName    = "opencage"
	DefaultBaseURL = "https://api.opencagedata.com"
)

var ErrMissingAPIKey = errors.New("OPENCAGE_API_KEY environment variable is not set")

var _ Resolver = (*OpenCageClient)(nil)

// Resolver turns a free-text place name into coordinates.
// A nil result with a nil error means the place was not found.
type Resolver interface {
	Resolve(ctx context.Context, place string) (*types.Coordinates, error)
}

type OpenCageClient struct {
	logger  *slog.Logger
	baseURL string
	apiKey  string
	client  *http.Client
}

type geocodeResponse struct {
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
	TotalResults int `json:"total_results"`
	Results      []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
}

func NewOpenCageClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *OpenCageClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenCageClient{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		client:  api.NewHTTPClient(timeout),
	}
}

// NewOpenCageClientFromEnv reads the API key from OPENCAGE_API_KEY.
func NewOpenCageClientFromEnv(baseURL string, timeout time.Duration, logger *slog.Logger) *OpenCageClient {
	return NewOpenCageClient(baseURL, os.Getenv("OPENCAGE_API_KEY"), timeout, logger)
}

func (c *OpenCageClient) Resolve(ctx context.Context, place string) (*types.Coordinates, error) {
	ctx, span := otel.Tracer("LocationResolver").Start(ctx, "Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("app.place", place))

	l := c.logger.With(slog.String("method", "Resolve"), slog.String("place", place))

	if c.apiKey == "" {
		span.SetStatus(codes.Error, "Missing API key")
		return nil, types.NewExternalServiceError(ServiceName, ErrMissingAPIKey)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("key", c.apiKey)
	q.Set("limit", "1")
	q.Set("no_annotations", "1")
	u := fmt.Sprintf("%s/geocode/v1/json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, types.NewExternalServiceError(ServiceName, api.StripRequestURL(err))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		err = api.StripRequestURL(err)
		l.ErrorContext(ctx, "Geocoding request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		return nil, types.NewExternalServiceError(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusPaymentRequired {
		err := fmt.Errorf("quota exceeded (%d)", resp.StatusCode)
		l.ErrorContext(ctx, "Geocoding quota exceeded", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, err.Error())
		return nil, types.NewExternalServiceError(ServiceName, err)
	}
	if resp.StatusCode/100 != 2 {
		err := fmt.Errorf("http %d", resp.StatusCode)
		l.ErrorContext(ctx, "Unexpected status from geocoder", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, err.Error())
		return nil, types.NewExternalServiceError(ServiceName, err)
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		l.ErrorContext(ctx, "Failed to decode geocoding response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Decode failed")
		return nil, types.NewExternalServiceError(ServiceName, err)
	}
	if data.Status.Code != 0 && data.Status.Code != http.StatusOK {
		err := fmt.Errorf("status %d: %s", data.Status.Code, data.Status.Message)
		span.SetStatus(codes.Error, err.Error())
		return nil, types.NewExternalServiceError(ServiceName, err)
	}

	if len(data.Results) == 0 {
		l.InfoContext(ctx, "Failed to fetch latitude and longitude")
		span.SetStatus(codes.Ok, "No result")
		return nil, nil
	}

	coords := &types.Coordinates{
		Latitude:  data.Results[0].Geometry.Lat,
		Longitude: data.Results[0].Geometry.Lng,
	}
	l.DebugContext(ctx, "Latitude and longitude fetched successfully",
		slog.Float64("lat", coords.Latitude), slog.Float64("lon", coords.Longitude))
	span.SetStatus(codes.Ok, "Place resolved")
	return coords, nil
}
