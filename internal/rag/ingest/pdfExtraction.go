package ingest

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/zacharyjolliff15/ScholarAI/internal/chunker"
	"github.com/zacharyjolliff15/ScholarAI/internal/config"
	"github.com/zacharyjolliff15/ScholarAI/internal/domain/apperrors"
)

// overridable in tests
var lookPath = exec.LookPath

// extractPDF delegates to a pdftotext subprocess and treats its stdout
// exactly like the plain-text path. The subprocess runs under a hard
// wall-clock timeout; a killed or erroring run still yields whatever chunks
// were produced before termination, and only a zero-chunk failure is
// reported as an extraction error.
func extractPDF(ctx context.Context, path string, ck *chunker.Chunker) error {
	if _, err := lookPath("pdftotext"); err != nil {
		return apperrors.ErrPdfToolMissing
	}

	runCtx, cancel := context.WithTimeout(ctx, config.PdfExtractTimeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pdftotext pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("pdftotext start: %w", err)
	}

	streamInto(stdout, ck)

	// if we stopped reading early (chunk cap or char ceiling) the process may
	// block on a full pipe; kill it so Wait returns
	if ck.Full() {
		_ = cmd.Process.Kill()
	}

	waitErr := cmd.Wait()
	// count partially streamed text that never filled a window
	ck.Flush()

	if err := waitErr; err != nil && len(ck.Chunks()) == 0 {
		logger.Error("pdftotext produced no output", "error", err, "path", path)
		return fmt.Errorf("%w: pdftotext: %v", apperrors.ErrExtractionFailed, err)
	} else if err != nil {
		logger.Warn("pdftotext terminated early, keeping partial chunks", "error", err, "chunks", len(ck.Chunks()))
	}
	return nil
}
