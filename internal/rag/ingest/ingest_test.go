package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zacharyjolliff15/ScholarAI/internal/chunker"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
	"github.com/zacharyjolliff15/ScholarAI/internal/store"
	"github.com/zacharyjolliff15/ScholarAI/pkg/logger_i"
)

func TestMain(m *testing.M) {
	logger_i.Init()
	os.Exit(m.Run())
}

func testStore(t *testing.T) *store.DocumentStore {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "store.json"))
}

func writeTempFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		filename string
		mime     string
		expected DocType
	}{
		{"notes.txt", "", TypePlainText},
		{"README.MD", "", TypePlainText},
		{"thesis.pdf", "", TypePDF},
		{"paper.DOCX", "", TypeRichDoc},
		{"old.rtf", "", TypeRichDoc},
		{"noext", "text/plain", TypePlainText},
		{"noext", "application/pdf", TypePDF},
		{"noext", "application/rtf", TypeRichDoc},
		{"image.png", "image/png", TypeUnsupported},
		{"noext", "", TypeUnsupported},
	}

	for _, tt := range tests {
		if got := getDocType(tt.filename, tt.mime); got != tt.expected {
			t.Errorf("getDocType(%s, %s) = %v; want %v", tt.filename, tt.mime, got, tt.expected)
		}
	}
}

func TestProcessUpload_PlainText(t *testing.T) {
	content := strings.Repeat("abcdefghij", 5000) // 50,000 chars
	path := writeTempFile(t, "big.txt", content)
	s := testStore(t)

	doc, err := ProcessUpload(context.Background(), s, "big.txt", path, "text/plain")
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}

	// ceil((50000-200)/2800) windows of 3000 chars with 200 overlap
	if doc.ChunkCount != 18 {
		t.Errorf("ChunkCount = %d; want 18", doc.ChunkCount)
	}
	if len(doc.Chunks) != doc.ChunkCount {
		t.Errorf("chunks length %d does not match ChunkCount %d", len(doc.Chunks), doc.ChunkCount)
	}
	for i, ch := range doc.Chunks {
		if ch.Id != i {
			t.Fatalf("chunk id at position %d is %d", i, ch.Id)
		}
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("temp upload was not removed after success")
	}

	persisted := s.Load()
	if len(persisted.Docs) != 1 || persisted.Docs[0].Id != doc.Id {
		t.Error("document was not persisted")
	}
}

func TestProcessUpload_EmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.txt", "")

	doc, err := ProcessUpload(context.Background(), testStore(t), "empty.txt", path, "text/plain")
	if err != nil {
		t.Fatalf("empty input must not fail extraction: %v", err)
	}
	if doc.ChunkCount != 0 {
		t.Errorf("ChunkCount = %d; want 0", doc.ChunkCount)
	}
}

func TestProcessUpload_UnsupportedType(t *testing.T) {
	path := writeTempFile(t, "image.png", "not really a png")

	_, err := ProcessUpload(context.Background(), testStore(t), "image.png", path, "image/png")
	if !errors.Is(err, apperrors.ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type error, got %v", err)
	}

	var typed *apperrors.UnsupportedFileTypeError
	if !errors.As(err, &typed) || typed.Filename != "image.png" {
		t.Errorf("error should carry the filename, got %#v", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("temp upload was not removed after failure")
	}
}

func TestProcessUpload_PdfToolMissing(t *testing.T) {
	original := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	defer func() { lookPath = original }()

	path := writeTempFile(t, "doc.pdf", "%PDF-1.4 fake")

	_, err := ProcessUpload(context.Background(), testStore(t), "doc.pdf", path, "application/pdf")
	if !errors.Is(err, apperrors.ErrPdfToolMissing) {
		t.Fatalf("expected ErrPdfToolMissing, got %v", err)
	}

	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("temp upload was not removed")
	}
}

func TestStreamIntoStopsAtChunkCap(t *testing.T) {
	// a reader that never ends: extraction must stop consuming on its own
	infinite := &repeatingReader{pattern: []byte("lorem ipsum dolor sit amet ")}

	ck := chunker.NewDefault()
	streamInto(infinite, ck)

	if !ck.Full() {
		t.Fatal("chunker should have filled up")
	}
	if infinite.read > 5<<20 {
		t.Errorf("extraction kept reading after the cap: %d bytes consumed", infinite.read)
	}
}

type repeatingReader struct {
	pattern []byte
	read    int
}

func (r *repeatingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[r.read%len(r.pattern)]
		r.read++
	}
	return len(p), nil
}
