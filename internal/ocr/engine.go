package ocr

import (
	"fmt"
	"path/filepath"
	"strings"

	"pdf2text/internal/data"
	"pdf2text/internal/ocr/engine"
)

const (
	EngineTesseract = "tesseract"
	EngineGosseract = "gosseract"
)

// executableNames are the file names accepted for the engine binary.
var executableNames = []string{"tesseract", "tesseract.exe"}

// ValidateExecutable checks that enginePath names a tesseract binary.
// Only the file name is inspected; the binary is not run.
func ValidateExecutable(enginePath string) error {
	base := strings.ToLower(filepath.Base(strings.TrimSpace(enginePath)))
	for _, name := range executableNames {
		if base == name {
			return nil
		}
	}
	return data.NewError(data.InvalidEngineSelection,
		fmt.Sprintf("please select a valid tesseract executable, got %q", enginePath), nil)
}

// NewEngine builds the engine of the given kind. enginePath is the
// tesseract binary used by the exec engine.
func NewEngine(engineType string, enginePath string, opts ...engine.Option) (OCREngine, error) {
	var e OCREngine
	var err error

	switch engineType {
	case EngineTesseract, "":
		if err := ValidateExecutable(enginePath); err != nil {
			return nil, err
		}
		e = engine.NewTesseractEngine(enginePath, opts...)
	case EngineGosseract:
		e, err = engine.NewGosseractEngine(opts...)
		if err != nil {
			return nil, data.NewError(data.OCRInvocationFailure, "creating gosseract engine", err)
		}
	default:
		return nil, fmt.Errorf("unknown engine type: %s", engineType)
	}

	return e, nil
}
