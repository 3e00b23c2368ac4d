package image

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

// Unsplash docs: https://unsplash.com/documentation#search-photos
// Auth header: "Authorization: Client-ID <ACCESS_KEY>"

const (
	ServiceName    = "unsplash"
	DefaultBaseURL = "https://api.unsplash.com"
)

var ErrMissingAccessKey = errors.New("UNSPLASH_ACCESS_KEY environment variable is not set")

var _ Lookup = (*UnsplashClient)(nil)

// Lookup finds a single representative image for a text query.
// A nil URL with a nil error means nothing matched.
type Lookup interface {
	FindImage(ctx context.Context, query string) (*string, error)
}

type UnsplashClient struct {
	logger    *slog.Logger
	baseURL   string
	accessKey string
	client    *http.Client
}

type searchPhotosResponse struct {
	Total   int `json:"total"`
	Results []struct {
		ID   string `json:"id"`
		URLs struct {
			Raw     string `json:"raw"`
			Regular string `json:"regular"`
			Small   string `json:"small"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
	} `json:"results"`
}

func NewUnsplashClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *UnsplashClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &UnsplashClient{
		logger:    logger,
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: strings.TrimSpace(accessKey),
		client:    api.NewHTTPClient(timeout),
	}
}

// NewUnsplashClientFromEnv reads the access key from UNSPLASH_ACCESS_KEY.
func NewUnsplashClientFromEnv(baseURL string, timeout time.Duration, logger *slog.Logger) *UnsplashClient {
	return NewUnsplashClient(baseURL, os.Getenv("UNSPLASH_ACCESS_KEY"), timeout, logger)
}

func (c *UnsplashClient) FindImage(ctx context.Context, query string) (*string, error) {
	ctx, span := otel.Tracer("ImageLookup").Start(ctx, "FindImage")
	defer span.End()
	span.SetAttributes(attribute.String("app.image.query", query))

	l := c.logger.With(slog.String("method", "FindImage"), slog.String("query", query))

	if c.accessKey == "" {
		span.SetStatus(codes.Error, "Missing access key")
		return nil, types.NewExternalServiceError(ServiceName, ErrMissingAccessKey)
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", "1")
	u := fmt.Sprintf("%s/search/photos?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, types.NewExternalServiceError(ServiceName, err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := c.client.Do(req)
	if err != nil {
		err = api.StripRequestURL(err)
		l.ErrorContext(ctx, "Error fetching image", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Request failed")
		return nil, types.NewExternalServiceError(ServiceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		err := fmt.Errorf("http %d", resp.StatusCode)
		l.ErrorContext(ctx, "Unexpected status from image search", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, err.Error())
		return nil, types.NewExternalServiceError(ServiceName, err)
	}

	var data searchPhotosResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		l.ErrorContext(ctx, "Failed to decode image search response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Decode failed")
		return nil, types.NewExternalServiceError(ServiceName, err)
	}

	if len(data.Results) == 0 || data.Results[0].URLs.Small == "" {
		l.InfoContext(ctx, "No image found")
		span.SetStatus(codes.Ok, "No result")
		return nil, nil
	}

	imageURL := data.Results[0].URLs.Small
	l.DebugContext(ctx, "Image found", slog.String("image_url", imageURL))
	span.SetStatus(codes.Ok, "Image found")
	return &imageURL, nil
}
