package ingest

import (
	"fmt"

	"github.com/lu4p/cat"

	"github.com/zacharyjolliff15/ScholarAI/internal/chunker"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
)

// extractRichDoc reads a .docx, .odt or .rtf file. The converter yields one
// large string with no streaming interface, so this is the only extractor
// that holds the full (bounded) text in memory: it truncates to the
// character ceiling before chunking.
func extractRichDoc(path string, ck *chunker.Chunker) error {
	text, err := cat.File(path)
	if err != nil {
		return fmt.Errorf("failed to extract rich document: %w", err)
	}

	runes := []rune(text)
	if len(runes) > config.Pipeline.MaxDocumentChars {
		runes = runes[:config.Pipeline.MaxDocumentChars]
	}
	ck.Feed(string(runes))
	return nil
}
