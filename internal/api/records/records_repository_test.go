package records

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

func ptr(s string) *string { return &s }

func setupRepoTest(t *testing.T) *JSONLRecordRepository {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "data", DefaultFileName)
	return NewJSONLRecordRepository(path, logger)
}

func parisRecord() types.TravelRecord {
	return types.TravelRecord{
		Location:          "Paris, France",
		Suitability:       "General",
		AgeConsiderations: "All ages",
		Weather:           "Varies",
		Terrain:           "Varies",
		OtherDetails:      "...",
		Image:             ptr("https://example.com/img.jpg"),
	}
}

func TestJSONLRecordRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("single record on an absent store", func(t *testing.T) {
		repo := setupRepoTest(t)
		want := parisRecord()

		require.NoError(t, repo.Append(ctx, []types.TravelRecord{want}))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff([]types.TravelRecord{want}, got); diff != "" {
			t.Errorf("LoadAll() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("records keep write order", func(t *testing.T) {
		repo := setupRepoTest(t)
		paris := types.NewTravelRecord("Paris", "croissants", nil)
		tokyo := types.NewTravelRecord("Tokyo", "ramen", ptr("https://example.com/tokyo.jpg"))

		require.NoError(t, repo.Append(ctx, []types.TravelRecord{paris}))
		require.NoError(t, repo.Append(ctx, []types.TravelRecord{tokyo}))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Paris", got[0].Location)
		assert.Equal(t, "Tokyo", got[1].Location)
	})

	t.Run("absent image stays absent", func(t *testing.T) {
		repo := setupRepoTest(t)
		rec := types.NewTravelRecord("Reykjavik", "", nil)

		require.NoError(t, repo.Append(ctx, []types.TravelRecord{rec}))

		raw, err := os.ReadFile(repo.Path())
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"Image":null`)

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Image)
		assert.False(t, got[0].HasImage())
	})

	t.Run("duplicate locations are kept", func(t *testing.T) {
		repo := setupRepoTest(t)
		rec := types.NewTravelRecord("Lisbon", "first", nil)

		require.NoError(t, repo.Append(ctx, []types.TravelRecord{rec}))
		rec.OtherDetails = "second"
		require.NoError(t, repo.Append(ctx, []types.TravelRecord{rec}))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].OtherDetails)
		assert.Equal(t, "second", got[1].OtherDetails)
	})
}

func TestJSONLRecordRepository_BatchEqualsSingleAppends(t *testing.T) {
	ctx := context.Background()
	batch := []types.TravelRecord{
		types.NewTravelRecord("Paris", "a", nil),
		types.NewTravelRecord("Tokyo", "b", ptr("https://example.com/b.jpg")),
		types.NewTravelRecord("Cusco", "c\nmulti-line \"quoted\" <text>", nil),
	}

	single := setupRepoTest(t)
	for _, rec := range batch {
		require.NoError(t, single.Append(ctx, []types.TravelRecord{rec}))
	}
	batched := setupRepoTest(t)
	require.NoError(t, batched.Append(ctx, batch))

	fromSingle, err := single.LoadAll(ctx)
	require.NoError(t, err)
	fromBatch, err := batched.LoadAll(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(fromSingle, fromBatch); diff != "" {
		t.Errorf("single vs batch mismatch (-single +batch):\n%s", diff)
	}
	if diff := cmp.Diff(batch, fromBatch); diff != "" {
		t.Errorf("batch round trip mismatch (-want +got):\n%s", diff)
	}

	rawSingle, err := os.ReadFile(single.Path())
	require.NoError(t, err)
	rawBatch, err := os.ReadFile(batched.Path())
	require.NoError(t, err)
	assert.Equal(t, string(rawSingle), string(rawBatch))
	assert.Equal(t, len(batch), strings.Count(string(rawBatch), "\n"))
}

func TestJSONLRecordRepository_LoadAllErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("absent store is not an empty result", func(t *testing.T) {
		repo := setupRepoTest(t)

		got, err := repo.LoadAll(ctx)
		require.Error(t, err)
		assert.Nil(t, got)
		assert.True(t, errors.Is(err, ErrStoreNotFound))

		var storeErr *StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, OpLoad, storeErr.Op)
		assert.Equal(t, repo.Path(), storeErr.Path)
	})

	t.Run("empty file yields an empty sequence", func(t *testing.T) {
		repo := setupRepoTest(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path()), 0o755))
		require.NoError(t, os.WriteFile(repo.Path(), nil, 0o644))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("blank lines are ignored", func(t *testing.T) {
		repo := setupRepoTest(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path()), 0o755))
		content := `{"Location":"Paris","Image":null}` + "\n\n   \n" + `{"Location":"Tokyo","Image":null}` + "\n"
		require.NoError(t, os.WriteFile(repo.Path(), []byte(content), 0o644))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Tokyo", got[1].Location)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		repo := setupRepoTest(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path()), 0o755))
		content := `{"Location":"Paris","Image":null,"time":1727000000,"diff":1}` + "\n"
		require.NoError(t, os.WriteFile(repo.Path(), []byte(content), 0o644))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Paris", got[0].Location)
	})
}

func TestJSONLRecordRepository_MalformedLineFailsWholeLoad(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		corrupt string
	}{
		{name: "truncated json", corrupt: `{"Location":"Ber`},
		{name: "not an object", corrupt: `["Berlin"]`},
		{name: "wrong field type", corrupt: `{"Location":42}`},
		{name: "missing location", corrupt: `{"OtherDetails":"orphan"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := setupRepoTest(t)
			require.NoError(t, repo.Append(ctx, []types.TravelRecord{types.NewTravelRecord("Paris", "", nil)}))

			f, err := os.OpenFile(repo.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
			require.NoError(t, err)
			_, err = f.WriteString(tc.corrupt + "\n")
			require.NoError(t, err)
			require.NoError(t, f.Close())

			require.NoError(t, repo.Append(ctx, []types.TravelRecord{types.NewTravelRecord("Tokyo", "", nil)}))

			// Same file, same answer on every load.
			for i := 0; i < 2; i++ {
				got, err := repo.LoadAll(ctx)
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, errors.Is(err, ErrMalformedRecord))

				var storeErr *StoreError
				require.True(t, errors.As(err, &storeErr))
				assert.Equal(t, 2, storeErr.Line)
			}
		})
	}
}

func TestJSONLRecordRepository_AppendErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty location rejects the whole batch", func(t *testing.T) {
		repo := setupRepoTest(t)
		require.NoError(t, repo.Append(ctx, []types.TravelRecord{types.NewTravelRecord("Paris", "", nil)}))
		before, err := os.ReadFile(repo.Path())
		require.NoError(t, err)

		err = repo.Append(ctx, []types.TravelRecord{
			types.NewTravelRecord("Tokyo", "", nil),
			types.NewTravelRecord("  ", "", nil),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRecord))

		after, err := os.ReadFile(repo.Path())
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "data")
		require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
		repo := NewJSONLRecordRepository(filepath.Join(blocker, DefaultFileName), slog.New(slog.NewTextHandler(io.Discard, nil)))

		err := repo.Append(ctx, []types.TravelRecord{parisRecord()})
		require.Error(t, err)

		var storeErr *StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, OpAppend, storeErr.Op)
	})

	t.Run("lines longer than the read limit are rejected", func(t *testing.T) {
		repo := setupRepoTest(t)
		huge := types.NewTravelRecord("Paris", strings.Repeat("a", 5*1024*1024), nil)

		err := repo.Append(ctx, []types.TravelRecord{huge})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRecord))
		_, statErr := os.Stat(repo.Path())
		assert.True(t, errors.Is(statErr, os.ErrNotExist))

		large := types.NewTravelRecord("Paris", strings.Repeat("a", maxLineSize-1024), nil)
		require.NoError(t, repo.Append(ctx, []types.TravelRecord{large, parisRecord()}))

		got, err := repo.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Len(t, got[0].OtherDetails, maxLineSize-1024)
		assert.Equal(t, "Paris, France", got[1].Location)
	})

	t.Run("empty batch does not create the store", func(t *testing.T) {
		repo := setupRepoTest(t)

		require.NoError(t, repo.Append(ctx, nil))

		_, err := os.Stat(repo.Path())
		assert.True(t, errors.Is(err, os.ErrNotExist))
		_, err = repo.LoadAll(ctx)
		assert.True(t, errors.Is(err, ErrStoreNotFound))
	})
}

func TestDefaultPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := DefaultPath("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "data", "travel_data.jsonl"), got)

	abs := t.TempDir()
	got, err = DefaultPath(abs, "trips.jsonl")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(abs, "trips.jsonl"), got)
}
