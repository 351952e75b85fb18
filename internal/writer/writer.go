package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type WriteRequest struct {
	Text       string
	OutputPath string
	ResponseCh chan error
}

// TextWriter serializes plain-text writes through a single worker goroutine,
// so two writes to the same file never interleave.
type TextWriter struct {
	queue    chan WriteRequest
	shutdown chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

func NewTextWriter() *TextWriter {
	tw := &TextWriter{
		queue:    make(chan WriteRequest),
		shutdown: make(chan struct{}),
	}
	tw.startWorker()
	return tw
}

func (tw *TextWriter) startWorker() {
	tw.wg.Add(1)
	go func() {
		defer tw.wg.Done()
		for {
			select {
			case req := <-tw.queue:
				err := tw.writeToFileSync(req.Text, req.OutputPath)
				req.ResponseCh <- err
			case <-tw.shutdown:
				return
			}
		}
	}()
}

func (tw *TextWriter) Close() {
	tw.once.Do(func() {
		close(tw.shutdown)
		tw.wg.Wait()
	})
}

// WriteToFile replaces outputPath with text, creating parent directories.
func (tw *TextWriter) WriteToFile(text string, outputPath string) error {
	responseCh := make(chan error, 1)
	req := WriteRequest{
		Text:       text,
		OutputPath: outputPath,
		ResponseCh: responseCh,
	}

	select {
	case tw.queue <- req:
		return <-responseCh
	case <-tw.shutdown:
		return fmt.Errorf("writer is shutting down")
	}
}

func (tw *TextWriter) writeToFileSync(text string, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return fmt.Errorf("writing output file: %w", err)
	}
	return file.Close()
}
