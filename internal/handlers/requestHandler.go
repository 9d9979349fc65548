package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/zacharyjolliff15/ScholarAI/internal/adapter"
	"github.com/zacharyjolliff15/ScholarAI/internal/adapter/utils"
	"github.com/zacharyjolliff15/ScholarAI/internal/api"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag"
	"github.com/zacharyjolliff15/ScholarAI/internal/rag/ingest"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

var logRH *logger_i.Logger
var ragService rag.Service
var docStore *store.DocumentStore

func InitHandlers(svc rag.Service, docs *store.DocumentStore) {
	logRH = logger_i.NewLogger("Request Handler")
	ragService = svc
	docStore = docs
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// UploadHandler godoc
// @Summary      Upload documents for ingestion
// @Description  Accepts up to 10 files via multipart/form-data, extracts and chunks each one, and persists the results. Files that fail extraction are skipped; a missing pdftotext binary aborts the whole request.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        documents  formData  file  true  "Files to ingest (repeat the field for multiple files)"
// @Success      200  {object}  api.UploadResponse   "Successfully ingested documents"
// @Failure      400  {object}  api.ErrorResponse    "No files or request too large"
// @Failure      503  {object}  api.ErrorResponse    "pdftotext missing or no provider credential"
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	// Embedding happens at query time, but refusing here beats persisting
	// documents the ask path can never use.
	if err := ragService.Ready(); err != nil {
		writeDomainError(w, err)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, errString)
		return
	}

	maxRequestBytes := int64(config.MaxUploadFiles) * config.MaxUploadFileBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(config.MaxUploadFileBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	files := r.MultipartForm.File["documents"]
	if len(files) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "no files in 'documents' field")
		return
	}
	if len(files) > config.MaxUploadFiles {
		WriteErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d files per upload", config.MaxUploadFiles))
		return
	}

	ingested := make([]api.DocumentInfo, 0, len(files))
	for _, header := range files {
		if header.Size > config.MaxUploadFileBytes {
			logRH.Warn("Skipping oversized file", "name", header.Filename, "size", header.Size)
			continue
		}

		tempPath, err := saveUploadedFile(header, targetDir)
		if err != nil {
			logRH.Error("Couldn't stage uploaded file", "name", header.Filename, "err", err)
			continue
		}

		doc, err := ingest.ProcessUpload(r.Context(), docStore, header.Filename, tempPath,
			header.Header.Get("Content-Type"))
		if err != nil {
			// A missing extraction tool is an operator problem, not a bad
			// file. Every other failure skips just this file.
			if errors.Is(err, apperrors.ErrPdfToolMissing) {
				writeDomainError(w, err)
				return
			}
			logRH.Warn("Skipping file that failed ingestion", "name", header.Filename, "err", err)
			continue
		}
		ingested = append(ingested, adapter.ToDocumentInfo(doc))
	}

	writeJsonResponse(w, http.StatusOK, api.UploadResponse{Documents: ingested})
}

func saveUploadedFile(header *multipart.FileHeader, targetDir string) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	tempPath := filepath.Join(targetDir, filename)
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempPath)
		return "", err
	}
	return tempPath, nil
}

// ListDocumentsHandler godoc
// @Summary      List ingested documents
// @Description  Returns document metadata only, never chunk text.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.ListDocumentsResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	st := docStore.Load()
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentList(st.Docs))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document and its chunks
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  api.ErrorResponse  "Unknown document ID"
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	id := utils.GetChiURLParam(r, "id")
	removed, err := docStore.Remove(id)
	if err != nil {
		logRH.Error("Delete failed", "id", id, "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "could not update document store")
		return
	}
	if !removed {
		WriteErrorResponse(w, http.StatusNotFound, "document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]string{"deleted": id})
}

// AskHandler godoc
// @Summary      Ask a question over stored documents
// @Description  Retrieves the most relevant chunks (optionally scoped to docIds), then answers strictly from them with labeled citations.
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Question, optional document scope and top-k"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing question"
// @Failure      404      {object}  api.ErrorResponse  "No documents in scope"
// @Failure      502      {object}  api.ErrorResponse  "Embedding or completion call failed"
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.AskRequest
	if err := decodeBody(r, &requestData); err != nil || requestData.Question == "" {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, items, err := ragService.Ask(r.Context(), requestData.Question, requestData.DocIds, requestData.K)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, api.AskResponse{
		Answer:    answer,
		Citations: adapter.ToCitations(items),
	})
}

// SummarizeHandler godoc
// @Summary      Summarize one document
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummarizeRequest  true  "Document ID and optional character limit"
// @Success      200      {object}  api.SummarizeResponse
// @Failure      404      {object}  api.ErrorResponse  "Unknown document ID"
// @Failure      422      {object}  api.ErrorResponse  "Document has no text"
// @Router       /summarize [post]
func SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.SummarizeRequest
	if err := decodeBody(r, &requestData); err != nil || requestData.DocId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "docId is required")
		return
	}

	summary, err := ragService.Summarize(r.Context(), requestData.DocId, requestData.MaxChars)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, api.SummarizeResponse{Summary: summary})
}

// FlashcardsHandler godoc
// @Summary      Generate flashcards from one document
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        request  body      api.FlashcardsRequest  true  "Document ID and optional card count (3-10)"
// @Success      200      {object}  api.FlashcardsResponse
// @Failure      404      {object}  api.ErrorResponse  "Unknown document ID"
// @Failure      502      {object}  api.ErrorResponse  "Model returned unparseable output"
// @Router       /flashcards [post]
func FlashcardsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.FlashcardsRequest
	if err := decodeBody(r, &requestData); err != nil || requestData.DocId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "docId is required")
		return
	}

	cards, err := ragService.Flashcards(r.Context(), requestData.DocId, requestData.Count)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToFlashcardsResponse(cards))
}

// QuizHandler godoc
// @Summary      Generate a multiple-choice quiz from one document
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuizRequest  true  "Document ID"
// @Success      200      {object}  api.QuizResponse
// @Failure      404      {object}  api.ErrorResponse  "Unknown document ID"
// @Failure      502      {object}  api.ErrorResponse  "Model returned unparseable output"
// @Router       /quiz [post]
func QuizHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	var requestData api.QuizRequest
	if err := decodeBody(r, &requestData); err != nil || requestData.DocId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "docId is required")
		return
	}

	questions, err := ragService.Quiz(r.Context(), requestData.DocId)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToQuizResponse(questions))
}

func decodeBody(r *http.Request, target interface{}) error {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the request body reader :", err)
		}
	}(r.Body)
	return json.NewDecoder(r.Body).Decode(target)
}
