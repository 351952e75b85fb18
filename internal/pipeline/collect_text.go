package pipeline

import (
	"context"
	"fmt"

	"pdf2text/internal/data"
	"pdf2text/internal/logger"
	"pdf2text/internal/ocr"
)

// collectText places results by page number so out-of-order completion
// still yields page order. The first OCR error aborts the run.
func collectText(ctx context.Context, ocrChan <-chan ocr.OCRResult, total int, onPage func(done, total int)) ([]data.PageText, error) {
	pages := make([]data.PageText, total)
	seen := make([]bool, total)
	done := 0

	for res := range ocrChan {
		if res.Error != nil {
			logger.DebugLog("[collectText]: OCR error for page %d: %v", res.Page, res.Error)
			return nil, res.Error
		}
		if res.Page < 1 || res.Page > total || seen[res.Page-1] {
			return nil, fmt.Errorf("unexpected result for page %d of %d", res.Page, total)
		}

		pages[res.Page-1] = data.PageText{Number: res.Page, Text: res.Text}
		seen[res.Page-1] = true
		done++
		logger.DebugLog("[collectText]: page %d recognized (%d/%d)", res.Page, done, total)
		if onPage != nil {
			onPage(done, total)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if done != total {
		return nil, fmt.Errorf("recognized %d of %d pages", done, total)
	}
	return pages, nil
}
