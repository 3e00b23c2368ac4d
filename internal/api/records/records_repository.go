package records

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/FACorreiaa/go-travel-recommendations/internal/types"
)

const (
	DefaultDataDir  = "data"
	DefaultFileName = "travel_data.jsonl"

	// maxLineSize bounds a single record line; recommendation texts are a few KB.
	maxLineSize = 4 * 1024 * 1024
)

var _ RecordRepository = (*JSONLRecordRepository)(nil)

// RecordRepository persists travel records in write order.
type RecordRepository interface {
	// Append writes records to the end of the store, creating it on first use.
	Append(ctx context.Context, records []types.TravelRecord) error
	// LoadAll returns every stored record in file order.
	// Returns ErrStoreNotFound if nothing has been written yet.
	LoadAll(ctx context.Context) ([]types.TravelRecord, error)
	Path() string
}

// JSONLRecordRepository stores one JSON object per line in a single file.
// It keeps no state between calls: every Append re-opens the file and every
// LoadAll re-reads it from disk.
type JSONLRecordRepository struct {
	logger *slog.Logger
	path   string
}

func NewJSONLRecordRepository(path string, logger *slog.Logger) *JSONLRecordRepository {
	return &JSONLRecordRepository{
		logger: logger,
		path:   path,
	}
}

// DefaultPath returns <dir>/<file> resolved against the working directory,
// substituting the defaults for empty arguments.
func DefaultPath(dataDir, fileName string) (string, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	if fileName == "" {
		fileName = DefaultFileName
	}
	if filepath.IsAbs(dataDir) {
		return filepath.Join(dataDir, fileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return filepath.Join(cwd, dataDir, fileName), nil
}

func (r *JSONLRecordRepository) Path() string {
	return r.path
}

func (r *JSONLRecordRepository) Append(ctx context.Context, records []types.TravelRecord) error {
	l := r.logger.With(slog.String("method", "Append"), slog.String("path", r.path))

	if len(records) == 0 {
		l.DebugContext(ctx, "Nothing to append")
		return nil
	}

	// Encode the whole batch up front so a bad record never leaves a partial write.
	payload, err := encodeRecords(records)
	if err != nil {
		return &StoreError{Op: OpAppend, Path: r.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		l.ErrorContext(ctx, "Failed to create data directory", slog.Any("error", err))
		return &StoreError{Op: OpAppend, Path: r.path, Err: err}
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.ErrorContext(ctx, "Failed to open data file", slog.Any("error", err))
		return &StoreError{Op: OpAppend, Path: r.path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &StoreError{Op: OpAppend, Path: r.path, Err: err}
	}
	sizeBefore := info.Size()

	n, err := f.Write(payload)
	if err == nil && n < len(payload) {
		err = fmt.Errorf("short write: %d of %d bytes", n, len(payload))
	}
	if err == nil {
		err = f.Sync()
	}
	if err != nil {
		l.ErrorContext(ctx, "Failed to write records, restoring previous file size",
			slog.Int64("size_before", sizeBefore), slog.Any("error", err))
		if truncErr := f.Truncate(sizeBefore); truncErr != nil {
			l.ErrorContext(ctx, "Failed to restore data file", slog.Any("error", truncErr))
			err = errors.Join(err, truncErr)
		}
		return &StoreError{Op: OpAppend, Path: r.path, Err: err}
	}

	l.InfoContext(ctx, "Travel records saved", slog.Int("count", len(records)))
	return nil
}

func (r *JSONLRecordRepository) LoadAll(ctx context.Context) ([]types.TravelRecord, error) {
	l := r.logger.With(slog.String("method", "LoadAll"), slog.String("path", r.path))
	l.DebugContext(ctx, "Loading travel records")

	f, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.WarnContext(ctx, "Data file does not exist yet")
			return nil, &StoreError{Op: OpLoad, Path: r.path, Err: ErrStoreNotFound}
		}
		l.ErrorContext(ctx, "Failed to open data file", slog.Any("error", err))
		return nil, &StoreError{Op: OpLoad, Path: r.path, Err: err}
	}
	defer f.Close()

	records := make([]types.TravelRecord, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := decodeRecord(line)
		if err != nil {
			l.ErrorContext(ctx, "Malformed record in data file", slog.Int("line", lineNo), slog.Any("error", err))
			return nil, &StoreError{Op: OpLoad, Path: r.path, Line: lineNo, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, err)}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		l.ErrorContext(ctx, "Failed to read data file", slog.Any("error", err))
		return nil, &StoreError{Op: OpLoad, Path: r.path, Err: err}
	}

	l.InfoContext(ctx, "Travel records loaded", slog.Int("count", len(records)))
	return records, nil
}

func encodeRecords(records []types.TravelRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, rec := range records {
		if strings.TrimSpace(rec.Location) == "" {
			return nil, fmt.Errorf("%w: record %d has an empty Location", ErrInvalidRecord, i)
		}
		// Encode terminates every value with '\n'.
		start := buf.Len()
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		// LoadAll cannot read back a line longer than maxLineSize.
		if n := buf.Len() - start; n > maxLineSize {
			return nil, fmt.Errorf("%w: record %d encodes to %d bytes, limit is %d", ErrInvalidRecord, i, n, maxLineSize)
		}
	}
	return buf.Bytes(), nil
}

func decodeRecord(line []byte) (types.TravelRecord, error) {
	var rec types.TravelRecord
	if line[0] != '{' {
		return rec, errors.New("line is not a JSON object")
	}
	if err := json.Unmarshal(line, &rec); err != nil {
		return rec, err
	}
	if strings.TrimSpace(rec.Location) == "" {
		return rec, errors.New("missing Location")
	}
	return rec, nil
}
