// Package handler turns S3 object-created notifications into metadata rows.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/Thiru152003/s3-lamda/internal/config"
	"github.com/Thiru152003/s3-lamda/internal/model"
)

var (
	// ErrMissingRecords marks a payload without a Records container.
	ErrMissingRecords = errors.New("event has no Records")
	// ErrInvalidRecord marks a record that cannot be mapped to metadata.
	ErrInvalidRecord = errors.New("invalid record")
)

// MetadataWriter upserts one metadata row keyed by FileID into the named table.
type MetadataWriter interface {
	Put(ctx context.Context, rec model.FileMetadata) error
	Table() string
}

// eventTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var eventTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// notification is the subset of an S3 event record the handler reads.
// EventTime stays a string so non-RFC3339 timestamps do not reject the record.
type notification struct {
	EventSource string          `json:"eventSource"`
	EventTime   string          `json:"eventTime"`
	AWSRegion   string          `json:"awsRegion"`
	S3          events.S3Entity `json:"s3"`
}

// Handler processes notification batches. It holds no per-invocation state
// and may serve concurrent invocations.
type Handler struct {
	store  MetadataWriter
	source string
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Handler writing to w. cfg supplies the expected event source.
func New(w MetadataWriter, cfg config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:  w,
		source: cfg.EventSource,
		logger: logger,
		now:    time.Now,
	}
}

// itemResult is the outcome of one record. At most one of stored, skipped
// and err is set.
type itemResult struct {
	stored  bool
	skipped bool
	err     *model.ItemError
}

func failedAt(idx int, err error) itemResult {
	return itemResult{err: &model.ItemError{RecordIndex: &idx, Error: err.Error()}}
}

func failedFile(key string, err error) itemResult {
	return itemResult{err: &model.ItemError{File: key, Error: err.Error()}}
}

// Handle processes every record of payload in order. Per-record failures are
// reported in the response body and never returned as an error, so a partial
// failure does not cause the whole batch to be redelivered.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (model.Response, error) {
	var batch model.Batch
	err := json.Unmarshal(payload, &batch)
	if err == nil && batch.Records == nil {
		err = ErrMissingRecords
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "invalid event", "error", err)
		return model.Response{
			StatusCode: http.StatusBadRequest,
			Body: model.ResponseBody{
				Status:  model.StatusInvalidEvent,
				Message: err.Error(),
				Errors:  []model.ItemError{},
			},
		}, nil
	}

	var requestID string
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		requestID = lc.AwsRequestID
	}

	body := model.ResponseBody{
		TotalRecords: len(batch.Records),
		Errors:       []model.ItemError{},
	}
	for i, raw := range batch.Records {
		res := h.processRecord(ctx, i, raw, requestID)
		switch {
		case res.err != nil:
			body.Errors = append(body.Errors, *res.err)
		case res.stored:
			body.ProcessedFiles++
		}
	}

	body.Message = fmt.Sprintf("processed %d of %d records", body.ProcessedFiles, body.TotalRecords)
	resp := model.Response{StatusCode: http.StatusOK, Body: body}
	resp.Body.Status = model.StatusOK
	if len(body.Errors) > 0 {
		resp.StatusCode = http.StatusInternalServerError
		resp.Body.Status = model.StatusPartialFailure
		h.logger.WarnContext(ctx, "batch completed with errors",
			"processed_files", body.ProcessedFiles,
			"total_records", body.TotalRecords,
			"errors", len(body.Errors),
		)
	}
	return resp, nil
}

func (h *Handler) processRecord(ctx context.Context, idx int, raw json.RawMessage, requestID string) (res itemResult) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.ErrorContext(ctx, "unexpected failure processing record",
				"record_index", idx,
				"panic", r,
				"record", string(raw),
				"stack", string(debug.Stack()),
			)
			res = failedAt(idx, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	var head struct {
		EventSource string `json:"eventSource"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		h.logger.ErrorContext(ctx, "decode record failed", "record_index", idx, "error", err)
		return failedAt(idx, fmt.Errorf("decode record: %w", err))
	}
	if head.EventSource != h.source {
		h.logger.DebugContext(ctx, "skipping record from other source",
			"record_index", idx, "event_source", head.EventSource)
		return itemResult{skipped: true}
	}

	var rec notification
	if err := json.Unmarshal(raw, &rec); err != nil {
		h.logger.ErrorContext(ctx, "decode record failed", "record_index", idx, "error", err)
		return failedAt(idx, fmt.Errorf("decode record: %w", err))
	}

	meta, err := h.toMetadata(rec, requestID)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid record", "record_index", idx, "error", err)
		return failedAt(idx, err)
	}

	if err := h.store.Put(ctx, meta); err != nil {
		h.logger.ErrorContext(ctx, "store metadata failed",
			"record_index", idx,
			"file", meta.FileID,
			"bucket", meta.BucketName,
			"table", h.store.Table(),
			"error", err,
		)
		return failedFile(meta.FileID, err)
	}

	h.logger.InfoContext(ctx, "stored metadata",
		"file", meta.FileID,
		"bucket", meta.BucketName,
		"size", meta.FileSizeBytes,
		"table", h.store.Table(),
	)
	return itemResult{stored: true}
}

func (h *Handler) toMetadata(rec notification, requestID string) (model.FileMetadata, error) {
	bucket := rec.S3.Bucket.Name
	key := rec.S3.Object.Key
	switch {
	case bucket == "":
		return model.FileMetadata{}, fmt.Errorf("%w: missing s3.bucket.name", ErrInvalidRecord)
	case key == "":
		return model.FileMetadata{}, fmt.Errorf("%w: missing s3.object.key", ErrInvalidRecord)
	case rec.S3.Object.Size < 0:
		return model.FileMetadata{}, fmt.Errorf("%w: negative s3.object.size %d", ErrInvalidRecord, rec.S3.Object.Size)
	}

	now := h.now().UTC()
	region := rec.AWSRegion
	if region == "" {
		region = model.UnknownRegion
	}

	return model.FileMetadata{
		FileID:        key,
		BucketName:    bucket,
		FileSizeBytes: rec.S3.Object.Size,
		UploadTime:    UploadTime(rec.EventTime, now),
		ProcessedAt:   now.Format(model.TimestampLayout),
		FileType:      FileType(key),
		RequestID:     requestID,
		Region:        region,
	}, nil
}

// UploadTime normalises an event timestamp to TimestampLayout in UTC.
// An empty value means now; a value no layout accepts is kept verbatim.
func UploadTime(eventTime string, now time.Time) string {
	eventTime = strings.TrimSpace(eventTime)
	if eventTime == "" {
		return now.UTC().Format(model.TimestampLayout)
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, eventTime); err == nil {
			return t.UTC().Format(model.TimestampLayout)
		}
	}
	return eventTime
}

// FileType returns the lowercase extension of the key's last path segment,
// or "unknown" when it has none.
func FileType(key string) string {
	base := path.Base(key)
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return model.UnknownFileType
	}
	return strings.ToLower(base[i+1:])
}
