package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/zacharyjolliff15/ScholarAI/internal/api"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateContext(ctx context.Context) bool {
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logRH.With("traceId:", traceId)
	}
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Error: message})
}

// writeDomainError maps service errors onto HTTP statuses. Tool absence gets
// a machine-readable code alongside the remediation text so clients can
// distinguish it from an ordinary outage.
func writeDomainError(w http.ResponseWriter, err error) {
	var unsupported *apperrors.UnsupportedFileTypeError

	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNoDocumentsInScope):
		WriteErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &unsupported), errors.Is(err, apperrors.ErrUnsupportedFileType):
		WriteErrorResponse(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, apperrors.ErrPdfToolMissing):
		writeJsonResponse(w, http.StatusServiceUnavailable, api.ErrorResponse{
			Error: err.Error(),
			Code:  "PDFTOTEXT_MISSING",
		})
	case errors.Is(err, apperrors.ErrMissingCredential):
		WriteErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, apperrors.ErrEmptyDocument):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrServiceFailure),
		errors.Is(err, apperrors.ErrMalformedModelOutput):
		WriteErrorResponse(w, http.StatusBadGateway, err.Error())
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
	}
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, config.TempUploadDir)
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
