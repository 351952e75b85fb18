package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"pdf2text/internal/data"
)

// TesseractEngine runs an external tesseract executable once per image.
type TesseractEngine struct {
	command string
	opts    Options
}

func NewTesseractEngine(command string, opts ...Option) *TesseractEngine {
	return &TesseractEngine{command: command, opts: buildOptions(opts)}
}

func (t *TesseractEngine) args(imagePath string) []string {
	args := []string{imagePath, "stdout"}
	if t.opts.Language != "" {
		args = append(args, "-l", t.opts.Language)
	}
	if t.opts.PageSegMode > 0 {
		args = append(args, "--psm", strconv.Itoa(t.opts.PageSegMode))
	}
	return args
}

// ProcessImage returns the engine's stdout verbatim.
func (t *TesseractEngine) ProcessImage(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, t.command, t.args(imagePath)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := fmt.Sprintf("running %s on %s", t.command, imagePath)
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			msg += ": " + detail
		}
		return "", data.NewError(data.OCRInvocationFailure, msg, err)
	}
	return stdout.String(), nil
}

// Version runs the executable with --version and returns the first output line.
func (t *TesseractEngine) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, t.command, "--version").CombinedOutput()
	if err != nil {
		return "", data.NewError(data.OCRInvocationFailure, fmt.Sprintf("testing %s installation", t.command), err)
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

func (t *TesseractEngine) Close() error {
	return nil
}
