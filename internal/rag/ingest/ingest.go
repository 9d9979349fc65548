package ingest

import (
	"context"
	"os"
	"time"

	"github.com/zacharyjolliff15/ScholarAI/internal/adapter/utils"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/internal/metrics"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

var logger *logger_i.Logger

// ProcessUpload turns one temporary upload into a persisted document:
// extract under the character ceiling, chunk, append to the store. The
// temporary file is removed in every case, including failure, so the original
// binary is never retained.
func ProcessUpload(ctx context.Context, docStore *store.DocumentStore, docName string, docPath string, mime string) (docmodel.Document, error) {
	logger = logger_i.NewLogger("Document Ingestion")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger = logger.With("traceId", traceId)
	}

	defer func() {
		if err := os.Remove(docPath); err != nil && !os.IsNotExist(err) {
			logger.Error("Error removing temp upload", "error", err, "path", docPath)
		}
	}()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	docType := getDocType(docName, mime)
	logger.Debug("Processing upload", "filename", docName, "type", docType)
	if docType == TypeUnsupported {
		metrics.CountExtractionFailure("unsupported_type")
		return docmodel.Document{}, &apperrors.UnsupportedFileTypeError{Mime: mime, Filename: docName}
	}

	chunks, err := extractChunks(ctx, docPath, docType)
	if err != nil {
		metrics.CountExtractionFailure("extract_error")
		logger.Error("Error extracting document content", "error", err, "filename", docName)
		return docmodel.Document{}, err
	}

	doc := docmodel.Document{
		Id:         utils.GetNewUUID(),
		Name:       docName,
		CreatedAt:  time.Now().UTC(),
		ChunkCount: len(chunks),
		Chunks:     chunks,
	}

	if err := docStore.Append(doc); err != nil {
		logger.Error("Error persisting document", "error", err, "filename", docName)
		return docmodel.Document{}, err
	}

	metrics.CountIngestedDocument(doc.ChunkCount)
	logger.Info("Document ingested", "filename", docName, "chunks", doc.ChunkCount)
	return doc, nil
}
