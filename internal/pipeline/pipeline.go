package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"pdf2text/internal/data"
	"pdf2text/internal/image"
	"pdf2text/internal/logger"
	"pdf2text/internal/ocr"
	"pdf2text/internal/pdf"
	"pdf2text/internal/writer"
)

type Clients struct {
	engine ocr.OCREngine
	image  *image.ImageProcessor
	doc    *pdf.Document
}

type contextKey string

const clientsKey contextKey = "all_my_clients"

// newEngine is swapped in tests.
var newEngine = func(enginePath string, opts Options) (ocr.OCREngine, error) {
	return ocr.NewEngine(opts.engineType(), enginePath, opts.engineOptions()...)
}

// Convert recognizes every page of sourcePath and returns the texts in page order.
func Convert(ctx context.Context, enginePath, sourcePath string, preProcess bool, opts Options) ([]string, error) {
	pages, err := convertPages(ctx, enginePath, sourcePath, preProcess, opts)
	if err != nil {
		return nil, err
	}
	return data.Texts(pages), nil
}

// Persist writes the concatenated texts to destinationPath, replacing any existing file.
func Persist(texts []string, destinationPath string) error {
	if strings.TrimSpace(destinationPath) == "" {
		return data.NewError(data.MissingRequiredPath, "output file path is empty", nil)
	}
	w := writer.NewTextWriter()
	defer w.Close()

	if err := w.WriteToFile(data.Concatenate(texts), destinationPath); err != nil {
		return data.NewError(data.FileWriteFailure, fmt.Sprintf("saving %s", destinationPath), err)
	}
	return nil
}

// Run converts req.SourcePath and persists the result. It returns the page count.
func Run(ctx context.Context, req data.Request, opts Options) (int, error) {
	texts, err := Convert(ctx, req.EnginePath, req.SourcePath, req.PreProcess, opts)
	if err != nil {
		return 0, err
	}
	if err := Persist(texts, req.DestinationPath); err != nil {
		return 0, err
	}
	return len(texts), nil
}

func convertPages(ctx context.Context, enginePath, sourcePath string, preProcess bool, opts Options) ([]data.PageText, error) {
	logger.DebugLog("Pipeline started with engine=%s, source=%s, preprocess=%t", enginePath, sourcePath, preProcess)

	ocrEngine, err := newEngine(enginePath, opts)
	if err != nil {
		logger.DebugLog("Failed to create OCR engine: %v", err)
		return nil, err
	}
	defer func() {
		logger.DebugLog("Closing OCR engine")
		ocrEngine.Close()
	}()

	doc, err := pdf.NewRasterizer(opts.dpi()).Open(sourcePath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	total := doc.NumPage()

	workDir, err := os.MkdirTemp(opts.TempDir, "pdf2text-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	clients := &Clients{
		engine: ocrEngine,
		image:  image.NewImageProcessor(workDir),
		doc:    doc,
	}

	g, ctx := errgroup.WithContext(ctx)
	ctx = context.WithValue(ctx, clientsKey, clients)

	pagesChan := make(chan pdf.Page)             // rendered pages, in order
	imagesChan := make(chan pageImage, 1)        // page files ready for OCR
	ocrChan := make(chan ocr.OCRResult)          // OCR results in completion order
	collectInput := make(chan ocr.OCRResult)     // results for the collector
	cleanupInput := make(chan ocr.OCRResult, 10) // page files to delete

	goStage(g, "renderPages", func() error {
		defer close(pagesChan)
		logger.DebugLog("Starting [renderPages] goroutine")
		defer logger.DebugLog("[renderPages] goroutine finished")
		return renderPages(ctx, total, pagesChan)
	})

	goStage(g, "prepareImages", func() error {
		defer close(imagesChan)
		logger.DebugLog("Starting [prepareImages] goroutine")
		defer logger.DebugLog("[prepareImages] goroutine finished")
		return prepareImages(ctx, pagesChan, imagesChan, preProcess)
	})

	var ocrWg sync.WaitGroup
	for i := 0; i < opts.workers(); i++ {
		ocrWg.Add(1)
		worker := i
		goStage(g, "performOcr", func() error {
			defer ocrWg.Done()
			logger.DebugLog("Starting [performOcr] worker #%d", worker+1)
			defer logger.DebugLog("[performOcr] worker #%d finished", worker+1)
			return performOcr(ctx, imagesChan, ocrChan)
		})
	}
	g.Go(func() error {
		ocrWg.Wait()
		logger.DebugLog("All [performOcr] workers finished, closing ocrChan")
		close(ocrChan)
		return nil
	})

	// fan-out - forward ocr results to collection + cleanup
	goStage(g, "forwardChan", func() error {
		logger.DebugLog("Starting [forwardChan] for ocrChan -> collectInput, cleanupInput")
		defer logger.DebugLog("[forwardChan] for ocrChan finished")
		return forwardChan(ctx, ocrChan, collectInput, cleanupInput)
	})

	goStage(g, "cleanupImage", func() error {
		logger.DebugLog("Starting [cleanupImage] goroutine")
		defer logger.DebugLog("[cleanupImage] goroutine finished")
		return cleanupImage(ctx, cleanupInput)
	})

	var pages []data.PageText
	goStage(g, "collectText", func() error {
		logger.DebugLog("Starting [collectText] goroutine")
		defer logger.DebugLog("[collectText] goroutine finished")
		var err error
		pages, err = collectText(ctx, collectInput, total, opts.OnPage)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.DebugLog("Pipeline failed: %v", err)
		return nil, err
	}

	logger.DebugLog("Pipeline finished with %d pages", len(pages))
	return pages, nil
}

// goStage runs fn in the group and turns a panic into the stage's error.
// fn's own defers still run, so its output channel is closed.
func goStage(g *errgroup.Group, name string, fn func() error) {
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.DebugLog("[%s] panicked: %v", name, r)
				err = fmt.Errorf("%s panicked: %v\n%s", name, r, debug.Stack())
			}
		}()
		return fn()
	})
}

func clientsFrom(ctx context.Context) (*Clients, error) {
	proc, ok := ctx.Value(clientsKey).(*Clients)
	if !ok {
		return nil, fmt.Errorf("missing clients in context")
	}
	return proc, nil
}

func forwardChan[T any](ctx context.Context, in <-chan T, outs ...chan<- T) error {
	defer func() {
		for _, out := range outs {
			close(out)
		}
	}()

	for res := range in {
		if ctx.Err() != nil {
			logger.DebugLog("forwardChan: context cancelled")
			return ctx.Err()
		}

		for _, out := range outs {
			select {
			case out <- res:
			case <-ctx.Done():
				logger.DebugLog("forwardChan: context done while forwarding")
				return ctx.Err()
			}
		}
	}
	return nil
}
