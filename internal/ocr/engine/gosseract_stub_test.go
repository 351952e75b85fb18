//go:build !gosseract

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGosseractStub(t *testing.T) {
	_, err := NewGosseractEngine(WithLanguage("eng"))

	assert.ErrorIs(t, err, ErrGosseractNotEnabled)
}
