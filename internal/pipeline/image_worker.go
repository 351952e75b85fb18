package pipeline

import (
	"context"
	"fmt"

	"pdf2text/internal/logger"
	"pdf2text/internal/ocr"
	"pdf2text/internal/pdf"
)

type pageImage struct {
	Number int
	Path   string
}

// prepareImages optionally pre-processes each page and stores it as a PNG for the engine.
func prepareImages(ctx context.Context, pages <-chan pdf.Page, results chan<- pageImage, preProcess bool) error {
	proc, err := clientsFrom(ctx)
	if err != nil {
		logger.DebugLog("[prepareImages]: %v", err)
		return err
	}
	imageProcessor := proc.image

	for page := range pages {
		if ctx.Err() != nil {
			logger.DebugLog("[prepareImages]: context cancelled")
			return ctx.Err()
		}

		img := page.Image
		if preProcess {
			logger.DebugLog("[prepareImages]: pre-processing page %d", page.Number)
			img = imageProcessor.Preprocess(img)
		}

		path, err := imageProcessor.SavePage(img, page.Number)
		if err != nil {
			logger.DebugLog("[prepareImages]: error saving page %d: %v", page.Number, err)
			return fmt.Errorf("preparing page %d: %w", page.Number, err)
		}

		logger.DebugLog("[prepareImages]: sending page file %s", path)
		select {
		case results <- pageImage{Number: page.Number, Path: path}:
		case <-ctx.Done():
			logger.DebugLog("[prepareImages]: context done while sending %s", path)
			imageProcessor.Cleanup(path)
			return ctx.Err()
		}
	}
	return nil
}

// cleanupImage deletes page files once recognized. It drains its input
// even after cancellation so the forwarder never blocks on it.
func cleanupImage(ctx context.Context, ocrChan <-chan ocr.OCRResult) error {
	proc, err := clientsFrom(ctx)
	if err != nil {
		logger.DebugLog("[cleanupImage]: %v", err)
		return err
	}
	imageProcessor := proc.image

	for ocrOutput := range ocrChan {
		logger.DebugLog("[cleanupImage]: cleaning up %s", ocrOutput.Filename)
		if err := imageProcessor.Cleanup(ocrOutput.Filename); err != nil {
			logger.DebugLog("[cleanupImage]: error cleaning up %s: %v", ocrOutput.Filename, err)
		}
	}
	return nil
}
