package ocr

import "context"

// OCRResult is the outcome of recognizing one page image.
type OCRResult struct {
	Page     int
	Text     string
	Filename string
	Error    error
}

// OCREngine recognizes the text in an image file.
type OCREngine interface {
	ProcessImage(ctx context.Context, imagePath string) (string, error)
	Close() error
}
