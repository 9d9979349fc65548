package ingest

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zacharyjolliff15/ScholarAI/internal/chunker"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
)

// DocType tags the extraction backend chosen for an upload.
type DocType string

const (
	TypePlainText   DocType = "PLAINTEXT"
	TypeRichDoc     DocType = "RICHDOC"
	TypePDF         DocType = "PDF"
	TypeUnsupported DocType = "UNSUPPORTED"
)

// getDocType sniffs by extension first and falls back to the declared MIME
// type for extensionless uploads.
func getDocType(filename string, mime string) DocType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".markdown":
		return TypePlainText
	case ".docx", ".odt", ".rtf":
		return TypeRichDoc
	case ".pdf":
		return TypePDF
	}

	switch {
	case strings.HasPrefix(mime, "text/"):
		return TypePlainText
	case mime == "application/pdf":
		return TypePDF
	case mime == "application/rtf",
		mime == "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		mime == "application/vnd.oasis.opendocument.text":
		return TypeRichDoc
	}
	return TypeUnsupported
}

// extractChunks runs the extractor for the sniffed type. Every backend obeys
// the same contract: a finite chunk sequence, at most MaxDocumentChars read
// from the source, and an empty (not failed) result for zero-length input.
func extractChunks(ctx context.Context, path string, docType DocType) ([]docmodel.Chunk, error) {
	ck := chunker.NewDefault()

	switch docType {
	case TypePlainText:
		if err := extractPlainText(path, ck); err != nil {
			return nil, err
		}
	case TypeRichDoc:
		if err := extractRichDoc(path, ck); err != nil {
			return nil, err
		}
	case TypePDF:
		if err := extractPDF(ctx, path, ck); err != nil {
			return nil, err
		}
	}

	ck.Flush()
	return ck.Chunks(), nil
}

func extractPlainText(path string, ck *chunker.Chunker) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	streamInto(f, ck)
	return nil
}

// streamInto feeds the reader to the chunker in small rune batches and stops
// consuming source bytes as soon as the chunker is full or the character
// ceiling is hit. This is the back-pressure point for plain text and for the
// pdftotext stdout stream.
func streamInto(r io.Reader, ck *chunker.Chunker) {
	const batchRunes = 4096

	reader := bufio.NewReader(r)
	read := 0
	var batch strings.Builder

	for read < config.Pipeline.MaxDocumentChars && !ck.Full() {
		ch, _, err := reader.ReadRune()
		if err != nil {
			break
		}
		batch.WriteRune(ch)
		read++
		if batch.Len() >= batchRunes {
			ck.Feed(batch.String())
			batch.Reset()
		}
	}
	if batch.Len() > 0 {
		ck.Feed(batch.String())
	}
}
