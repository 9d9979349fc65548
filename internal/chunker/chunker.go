package chunker

import (
	"strings"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/docmodel"
)

// Chunker slices a growing text buffer into overlapping fixed-size windows.
// Extractors feed it incrementally and must stop reading source bytes once
// Full reports true; the window cap is a hard ceiling per document.
//
// The accumulator holds runes, not bytes, so a window never splits a
// multi-byte character.
type Chunker struct {
	window    int
	overlap   int
	maxChunks int

	acc    []rune
	chunks []docmodel.Chunk
}

// New builds a chunker. Non-positive arguments fall back to the configured
// defaults; an overlap that is not strictly smaller than the window would
// degenerate into backward-seeking windows, so it falls back too.
func New(window, overlap, maxChunks int) *Chunker {
	if window <= 0 {
		window = config.Pipeline.ChunkWindow
	}
	if overlap < 0 {
		overlap = config.Pipeline.ChunkOverlap
	}
	if overlap >= window {
		overlap = config.Pipeline.ChunkOverlap
		if overlap >= window {
			overlap = 0
		}
	}
	if maxChunks <= 0 {
		maxChunks = config.Pipeline.MaxChunksPerDocument
	}
	return &Chunker{window: window, overlap: overlap, maxChunks: maxChunks}
}

// NewDefault is the chunker every upload goes through.
func NewDefault() *Chunker {
	return New(config.Pipeline.ChunkWindow, config.Pipeline.ChunkOverlap, config.Pipeline.MaxChunksPerDocument)
}

// Feed appends text and emits every complete window it enables. Input
// arriving after the cap is reached is discarded.
func (c *Chunker) Feed(text string) {
	if c.Full() || text == "" {
		return
	}
	c.acc = append(c.acc, []rune(text)...)
	for len(c.acc) >= c.window && !c.Full() {
		c.emit(string(c.acc[:c.window]))
		// retain the overlap tail as shared context for the next window
		rest := c.acc[c.window-c.overlap:]
		c.acc = append(make([]rune, 0, len(rest)), rest...)
	}
	if c.Full() {
		c.acc = nil
	}
}

// Flush emits any non-empty remainder as the final chunk.
func (c *Chunker) Flush() {
	if c.Full() || len(c.acc) == 0 {
		return
	}
	c.emit(string(c.acc))
	c.acc = nil
}

// Full reports whether the per-document chunk cap has been reached.
func (c *Chunker) Full() bool {
	return len(c.chunks) >= c.maxChunks
}

// Chunks returns everything emitted so far, ids assigned in emission order.
func (c *Chunker) Chunks() []docmodel.Chunk {
	return c.chunks
}

func (c *Chunker) emit(window string) {
	trimmed := strings.TrimSpace(window)
	if trimmed == "" {
		return
	}
	c.chunks = append(c.chunks, docmodel.Chunk{Id: len(c.chunks), Text: trimmed})
}
