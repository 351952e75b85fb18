package pipeline

import (
	"context"

	"pdf2text/internal/logger"
	"pdf2text/internal/pdf"
)

// renderPages rasterizes pages 1..total in order. The document is only
// touched from this goroutine.
func renderPages(ctx context.Context, total int, results chan<- pdf.Page) error {
	proc, err := clientsFrom(ctx)
	if err != nil {
		logger.DebugLog("[renderPages]: %v", err)
		return err
	}

	for n := 1; n <= total; n++ {
		if ctx.Err() != nil {
			logger.DebugLog("[renderPages]: context cancelled")
			return ctx.Err()
		}

		page, err := proc.doc.Render(n)
		if err != nil {
			logger.DebugLog("[renderPages]: failed to render page %d: %v", n, err)
			return err
		}

		logger.DebugLog("[renderPages]: sending page %d/%d", n, total)
		select {
		case results <- page:
		case <-ctx.Done():
			logger.DebugLog("[renderPages]: context done while sending page %d", n)
			return ctx.Err()
		}
	}
	return nil
}
