package container

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-recommendations/config"
	"github.com/FACorreiaa/go-travel-recommendations/internal/api/records"
	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

func TestNewContainer_WithoutInteractionLog(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	t.Setenv("OPENCAGE_API_KEY", "test-key")
	t.Setenv("UNSPLASH_ACCESS_KEY", "")
	metrics.InitAppMetrics()

	dataDir := t.TempDir()
	cfg := &config.Config{}
	cfg.Storage.DataDir = dataDir
	cfg.Storage.FileName = "trips.jsonl"
	// Unreachable endpoints: the flow must still persist a record.
	cfg.Providers.OpenCage.BaseURL = "http://127.0.0.1:1"
	cfg.Providers.Unsplash.BaseURL = "http://127.0.0.1:1"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Equal(t, filepath.Join(dataDir, "trips.jsonl"), c.Store.Path())
	require.NotNil(t, c.TravelHandler)
	require.NotNil(t, c.WebHandler)

	ctx := context.Background()
	_, err = c.TravelService.LoadSaved(ctx)
	assert.True(t, errors.Is(err, records.ErrStoreNotFound))

	res, err := c.TravelService.Recommend(ctx, types.RecommendationRequest{Place: "Paris"})
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Len(t, res.Errors, 3)
	assert.Empty(t, res.Record.OtherDetails)
	assert.Nil(t, res.Record.Image)

	saved, err := c.TravelService.LoadSaved(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Paris", saved[0].Location)
}
