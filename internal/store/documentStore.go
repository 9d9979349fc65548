package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/internal/metrics"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

// DocumentStore persists the whole corpus as one JSON file. Only chunk text
// is durable; embeddings are recomputed on demand and never written back.
//
// There is no cross-writer locking: access is read-modify-write per request
// under a single-writer assumption, and two racing saves resolve as
// last-rename-wins.
type DocumentStore struct {
	path     string
	maxBytes int64
	logger   *logger_i.Logger
}

func New(path string) *DocumentStore {
	return &DocumentStore{
		path:     path,
		maxBytes: config.Pipeline.MaxStoreBytes,
		logger:   logger_i.NewLogger("DocumentStore"),
	}
}

// Load reads the store file and self-heals instead of erroring: a missing,
// empty, oversized or unparseable file becomes a fresh empty store which is
// written back immediately. Ingestion and querying never block on a corrupt
// store.
//
// Legacy fields on persisted chunks (cached vectors from older layouts) are
// dropped here simply because the chunk struct no longer carries them.
func (s *DocumentStore) Load() *docmodel.Store {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("store_load", time.Since(start)) }()

	info, err := os.Stat(s.path)
	if err != nil {
		return s.reset("store file missing")
	}
	if info.Size() == 0 {
		return s.reset("store file empty")
	}
	if info.Size() > s.maxBytes {
		return s.reset("store file exceeds byte ceiling")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.reset("store file unreadable")
	}

	var st docmodel.Store
	if err := json.Unmarshal(data, &st); err != nil {
		return s.reset("store file corrupt")
	}
	if st.Docs == nil {
		st.Docs = []docmodel.Document{}
	}
	return &st
}

// Save writes atomically: marshal to a temp file in the same directory, then
// rename over the store file so a concurrent reader never sees a partial
// write.
func (s *DocumentStore) Save(st *docmodel.Store) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("store_save", time.Since(start)) }()

	data, err := json.Marshal(st)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scholarai-store-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path)
}

// Append persists one newly ingested document.
func (s *DocumentStore) Append(doc docmodel.Document) error {
	st := s.Load()
	st.Docs = append(st.Docs, doc)
	return s.Save(st)
}

// Remove deletes a document and its chunks. Returns false when the id is
// unknown; a repeat delete is not an error.
func (s *DocumentStore) Remove(docId string) (bool, error) {
	st := s.Load()
	for i, doc := range st.Docs {
		if doc.Id == docId {
			st.Docs = append(st.Docs[:i], st.Docs[i+1:]...)
			return true, s.Save(st)
		}
	}
	return false, nil
}

func (s *DocumentStore) reset(reason string) *docmodel.Store {
	s.logger.Warn("Resetting document store", "reason", reason, "path", s.path)
	st := &docmodel.Store{Docs: []docmodel.Document{}}
	if err := s.Save(st); err != nil {
		s.logger.Error("Could not write fresh store file", "error", err)
	}
	return st
}
