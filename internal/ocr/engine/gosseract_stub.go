//go:build !gosseract

package engine

import (
	"context"
	"errors"
)

// ErrGosseractNotEnabled is returned when the binary was built without -tags gosseract.
var ErrGosseractNotEnabled = errors.New("gosseract engine not enabled; rebuild with -tags gosseract")

type GosseractEngine struct{}

func NewGosseractEngine(...Option) (*GosseractEngine, error) {
	return nil, ErrGosseractNotEnabled
}

func (g *GosseractEngine) ProcessImage(context.Context, string) (string, error) {
	return "", ErrGosseractNotEnabled
}

func (g *GosseractEngine) Close() error {
	return nil
}
