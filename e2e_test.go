package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-recommendations/internal/api/geocoding"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/image"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/mapview"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/travel"
	"github.com/FACorreiaa/go-travel-recommendations/internal/router"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

type cannedGenerator struct{}

func (cannedGenerator) Model() string { return "gemini-e2e" }

func (cannedGenerator) GenerateContent(_ context.Context, prompt string, _ *genai.GenerateContentConfig) (string, error) {
	for _, line := range strings.Split(prompt, "\n") {
		if place, ok := strings.CutPrefix(line, "Place: "); ok {
			return fmt.Sprintf("1. Old town of %s\n2. Riverside walk", place), nil
		}
	}
	return "", nil
}

// E2ETestSuite drives the full HTTP stack against fake upstream providers.
type E2ETestSuite struct {
	suite.Suite
	server       *httptest.Server
	opencage     *httptest.Server
	unsplash     *httptest.Server
	client       *http.Client
	storePath    string
	geocodeCalls atomic.Int32
}

func (s *E2ETestSuite) SetupSuite() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.opencage = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.geocodeCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		coords := map[string][2]float64{
			"paris, france": {48.8566, 2.3522},
			"tokyo":         {35.6762, 139.6503},
		}
		c, ok := coords[strings.ToLower(r.URL.Query().Get("q"))]
		if !ok {
			_, _ = w.Write([]byte(`{"status":{"code":200,"message":"OK"},"total_results":0,"results":[]}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"status":{"code":200,"message":"OK"},"total_results":1,"results":[{"geometry":{"lat":%v,"lng":%v}}]}`, c[0], c[1])
	}))

	s.unsplash = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query().Get("query")
		if q == "Tokyo" {
			_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
			return
		}
		_, _ = fmt.Fprintf(w, `{"total":1,"results":[{"id":"x","urls":{"small":"https://images.example/%s.jpg"}}]}`, url.PathEscape(q))
	}))

	dir, err := os.MkdirTemp("", "travel-e2e-*")
	s.Require().NoError(err)
	s.storePath = filepath.Join(dir, "data", records.DefaultFileName)

	store := records.NewJSONLRecordRepository(s.storePath, logger)
	resolver := geocoding.NewCachedResolver(
		geocoding.NewOpenCageClient(s.opencage.URL, "test-key", 5*time.Second, logger), time.Hour, logger)
	images := image.NewUnsplashClient(s.unsplash.URL, "test-access-key", 5*time.Second, logger)
	generator := recommendation.NewGenerator(cannedGenerator{}, nil, 0.5, logger)
	svc := travel.NewTravelService(resolver, generator, images, mapview.NewRenderer(mapview.Options{}), store, nil, logger)

	web, err := travel.NewWebHandlerImpl(svc, logger)
	s.Require().NoError(err)
	routes := router.SetupRouter(&router.Config{
		TravelHandler: travel.NewHandlerImpl(svc, logger),
		WebHandler:    web,
	})

	s.server = httptest.NewServer(newHTTPHandler(routes, logger, 30*time.Second))
	s.client = s.server.Client()
}

func (s *E2ETestSuite) TearDownSuite() {
	s.server.Close()
	s.opencage.Close()
	s.unsplash.Close()
	_ = os.RemoveAll(filepath.Dir(filepath.Dir(s.storePath)))
}

func (s *E2ETestSuite) postJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := s.client.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *E2ETestSuite) Test01_NothingSavedYet() {
	resp, err := s.client.Get(s.server.URL + "/api/v1/records")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	_, err = os.Stat(s.storePath)
	s.True(os.IsNotExist(err))
}

func (s *E2ETestSuite) Test02_ParisRecommendation() {
	resp := s.postJSON("/api/v1/recommendations", types.RecommendationRequest{Place: "Paris, France", Preferences: "museums"})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var res types.RecommendationResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&res))
	s.Empty(res.Errors)
	s.True(res.Saved)
	s.Equal("Paris, France", res.Record.Location)
	s.Contains(res.Record.OtherDetails, "Old town of Paris, France")
	s.Require().NotNil(res.Record.Image)
	s.Contains(*res.Record.Image, "images.example")
	s.Require().NotNil(res.Map)
	s.InDelta(48.8566, res.Map.Center.Latitude, 1e-9)
	s.Equal("Location: Paris, France", res.Map.Tooltip)
}

func (s *E2ETestSuite) Test03_TokyoWithoutImage() {
	resp := s.postJSON("/api/v1/recommendations", types.RecommendationRequest{Place: "Tokyo"})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var res types.RecommendationResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&res))
	s.True(res.Saved)
	s.Nil(res.Record.Image)
	s.NotNil(res.Map)
}

func (s *E2ETestSuite) Test04_UnknownPlaceStillSaved() {
	resp := s.postJSON("/api/v1/recommendations", types.RecommendationRequest{Place: "Atlantis"})
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var res types.RecommendationResult
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&res))
	s.Equal([]string{"Unable to find location coordinates. Please try again."}, res.Errors)
	s.Nil(res.Map)
	s.True(res.Saved)
}

func (s *E2ETestSuite) Test05_SavedRecordsInWriteOrder() {
	resp, err := s.client.Get(s.server.URL + "/api/v1/records")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var saved []types.TravelRecord
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&saved))
	s.Require().Len(saved, 3)
	s.Equal("Paris, France", saved[0].Location)
	s.Equal("Tokyo", saved[1].Location)
	s.Equal("Atlantis", saved[2].Location)
	s.Nil(saved[1].Image)
}

func (s *E2ETestSuite) Test06_RepeatedPlaceHitsGeocoderOnce() {
	before := s.geocodeCalls.Load()
	resp := s.postJSON("/api/v1/recommendations", types.RecommendationRequest{Place: "paris, france"})
	resp.Body.Close()
	s.Equal(before, s.geocodeCalls.Load())
}

func (s *E2ETestSuite) Test07_WebSavedList() {
	resp, err := s.client.PostForm(s.server.URL+"/saved", url.Values{})
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "Saved Travel Data")
	s.Contains(string(body), "Atlantis")
}

func (s *E2ETestSuite) Test08_MissingPlaceRejected() {
	resp := s.postJSON("/api/v1/recommendations", map[string]string{"place": "  "})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("Content-Type"))
}

func TestE2ETestSuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
