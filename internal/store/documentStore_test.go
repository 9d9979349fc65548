package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

func TestMain(m *testing.M) {
	logger_i.Init()
	os.Exit(m.Run())
}

func tempStore(t *testing.T) (*DocumentStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return New(path), path
}

func sampleDoc(id string, chunkTexts ...string) docmodel.Document {
	chunks := make([]docmodel.Chunk, len(chunkTexts))
	for i, text := range chunkTexts {
		chunks[i] = docmodel.Chunk{Id: i, Text: text}
	}
	return docmodel.Document{
		Id:         id,
		Name:       id + ".txt",
		CreatedAt:  time.Now().UTC(),
		ChunkCount: len(chunks),
		Chunks:     chunks,
	}
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, path := tempStore(t)

	st := s.Load()
	require.NotNil(t, st)
	assert.Empty(t, st.Docs)

	// the fresh store was written back immediately
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var reread docmodel.Store
	require.NoError(t, json.Unmarshal(data, &reread))
}

func TestAppendAndRemove(t *testing.T) {
	s, _ := tempStore(t)

	require.NoError(t, s.Append(sampleDoc("a", "alpha")))
	require.NoError(t, s.Append(sampleDoc("b", "beta", "gamma")))

	st := s.Load()
	require.Len(t, st.Docs, 2)
	assert.Equal(t, 2, st.Docs[1].ChunkCount)

	removed, err := s.Remove("a")
	require.NoError(t, err)
	assert.True(t, removed)

	st = s.Load()
	require.Len(t, st.Docs, 1)
	assert.Equal(t, "b", st.Docs[0].Id)

	// repeat delete reports not-found, not an error
	removed, err = s.Remove("a")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLoadSelfHealsCorruptFile(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, s.Append(sampleDoc("a", "alpha")))

	require.NoError(t, os.WriteFile(path, []byte(`{"docs": [{"id": "tru`), 0o600))

	st := s.Load()
	assert.Empty(t, st.Docs)

	// the corrupt bytes were replaced by a valid empty structure
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var healed docmodel.Store
	require.NoError(t, json.Unmarshal(data, &healed))
	assert.Empty(t, healed.Docs)
}

func TestLoadSelfHealsZeroByteFile(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	st := s.Load()
	assert.Empty(t, st.Docs)
}

func TestLoadSelfHealsOversizedFile(t *testing.T) {
	s, path := tempStore(t)
	s.maxBytes = 64

	require.NoError(t, os.WriteFile(path, make([]byte, 200), 0o600))

	st := s.Load()
	assert.Empty(t, st.Docs)
}

func TestLegacyVectorFieldsAreStrippedOnLoad(t *testing.T) {
	s, path := tempStore(t)

	legacy := `{"docs":[{"id":"a","name":"a.txt","chunk_count":1,` +
		`"chunks":[{"id":0,"text":"hello","embedding":[0.1,0.2,0.3]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o600))

	st := s.Load()
	require.Len(t, st.Docs, 1)
	require.NoError(t, s.Save(st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "embedding")
	assert.Contains(t, string(data), "hello")
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, s.Save(&docmodel.Store{Docs: []docmodel.Document{sampleDoc("a", "x")}}))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
