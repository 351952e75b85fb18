package pipeline

import (
	"context"
	"fmt"

	"pdf2text/internal/logger"
	"pdf2text/internal/ocr"
)

func performOcr(ctx context.Context, images <-chan pageImage, ocrChan chan<- ocr.OCRResult) error {
	proc, err := clientsFrom(ctx)
	if err != nil {
		logger.DebugLog("[performOcr]: %v", err)
		return err
	}
	ocrEngine := proc.engine

	for img := range images {
		if ctx.Err() != nil {
			logger.DebugLog("[performOcr]: context cancelled")
			return ctx.Err()
		}

		logger.DebugLog("[performOcr]: processing page %d (%s)", img.Number, img.Path)
		text, err := ocrEngine.ProcessImage(ctx, img.Path)
		if err != nil {
			err = fmt.Errorf("page %d: %w", img.Number, err)
		}

		logger.DebugLog("[performOcr]: sending OCR result for page %d (err=%v)", img.Number, err)
		select {
		case ocrChan <- ocr.OCRResult{Page: img.Number, Text: text, Filename: img.Path, Error: err}:
		case <-ctx.Done():
			logger.DebugLog("[performOcr]: context done while sending OCR result for page %d", img.Number)
			return ctx.Err()
		}
	}
	return nil
}
