//go:build gosseract

package engine

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"pdf2text/internal/data"
)

// GosseractEngine recognizes images in-process through libtesseract.
type GosseractEngine struct {
	opts Options
}

func NewGosseractEngine(opts ...Option) (*GosseractEngine, error) {
	return &GosseractEngine{opts: buildOptions(opts)}, nil
}

func (g *GosseractEngine) ProcessImage(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client := gosseract.NewClient()
	defer client.Close()

	if g.opts.Language != "" {
		if err := client.SetLanguage(g.opts.Language); err != nil {
			return "", data.NewError(data.OCRInvocationFailure, "setting language", err)
		}
	}
	if g.opts.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(g.opts.PageSegMode)); err != nil {
			return "", data.NewError(data.OCRInvocationFailure, "setting page segmentation mode", err)
		}
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", data.NewError(data.OCRInvocationFailure, fmt.Sprintf("loading image %s", imagePath), err)
	}
	text, err := client.Text()
	if err != nil {
		return "", data.NewError(data.OCRInvocationFailure, fmt.Sprintf("failed to extract text from image %s", imagePath), err)
	}
	return text, nil
}

func (g *GosseractEngine) Close() error {
	return nil
}
