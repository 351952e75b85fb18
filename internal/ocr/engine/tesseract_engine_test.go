package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf2text/internal/data"
)

// fakeTesseract writes an executable shell script named tesseract into a temp dir.
func fakeTesseract(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestTesseractEngine_ReturnsStdoutVerbatim(t *testing.T) {
	// Arrange
	exe := fakeTesseract(t, `[ "$2" = "stdout" ] || exit 3
printf 'text of %s\n\f' "$(basename "$1")"
`)
	e := NewTesseractEngine(exe)

	// Act
	text, err := e.ProcessImage(context.Background(), "/tmp/page_001.png")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "text of page_001.png\n\f", text)
}

func TestTesseractEngine_PassesOptions(t *testing.T) {
	exe := fakeTesseract(t, `echo "$@"`)
	e := NewTesseractEngine(exe, WithLanguage("deu"), WithPageSegMode(6))

	text, err := e.ProcessImage(context.Background(), "img.png")

	require.NoError(t, err)
	assert.Equal(t, "img.png stdout -l deu --psm 6\n", text)
}

func TestTesseractEngine_FailureIncludesStderr(t *testing.T) {
	// Arrange
	exe := fakeTesseract(t, `echo "Error opening data file" >&2
exit 1
`)
	e := NewTesseractEngine(exe)

	// Act
	_, err := e.ProcessImage(context.Background(), "img.png")

	// Assert
	require.Error(t, err)
	assert.Equal(t, data.OCRInvocationFailure, data.KindOf(err))
	assert.Contains(t, err.Error(), "Error opening data file")
}

func TestTesseractEngine_MissingExecutable(t *testing.T) {
	e := NewTesseractEngine(filepath.Join(t.TempDir(), "tesseract"))

	_, err := e.ProcessImage(context.Background(), "img.png")

	assert.Equal(t, data.OCRInvocationFailure, data.KindOf(err))
}

func TestTesseractEngine_Version(t *testing.T) {
	exe := fakeTesseract(t, `echo "tesseract 5.3.0"
echo " leptonica-1.82.0"
`)

	v, err := NewTesseractEngine(exe).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "tesseract 5.3.0", v)
}
