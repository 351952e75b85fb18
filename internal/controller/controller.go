// Package controller holds the front-end state of a conversion and runs it
// on a single background worker.
package controller

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pdf2text/internal/data"
	"pdf2text/internal/logger"
	"pdf2text/internal/ocr"
	"pdf2text/internal/pipeline"
	"pdf2text/internal/settings"
)

// ErrRunInProgress is returned by Start while a previous run is active.
var ErrRunInProgress = errors.New("a conversion is already running")

// Runner performs one conversion and returns the number of pages written.
type Runner func(ctx context.Context, req data.Request, opts pipeline.Options) (int, error)

type Option func(*Controller)

// StatusListener is called on every status change, from the goroutine
// that made the change.
type StatusListener func(Status)

// WithRunner replaces pipeline.Run.
func WithRunner(r Runner) Option {
	return func(c *Controller) { c.run = r }
}

func WithPipelineOptions(opts pipeline.Options) Option {
	return func(c *Controller) { c.opts = opts }
}

type Controller struct {
	mu         sync.Mutex
	enginePath string
	sourcePath string
	destPath   string
	preProcess bool
	status     Status
	busy       bool
	listeners  []StatusListener

	store *settings.Store
	opts  pipeline.Options
	run   Runner
}

// New creates an idle controller. When store is non-nil the remembered
// engine path is loaded from it and later changes are written back.
func New(store *settings.Store, options ...Option) *Controller {
	c := &Controller{store: store, run: pipeline.Run}
	for _, o := range options {
		o(c)
	}
	if store != nil {
		if p, ok := store.Get(settings.SectionPaths, settings.KeyExePath); ok {
			c.enginePath = p
		}
	}
	return c
}

func (c *Controller) EnginePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enginePath
}

func (c *Controller) SetEnginePath(path string) {
	c.mu.Lock()
	changed := c.enginePath != path
	c.enginePath = path
	c.mu.Unlock()

	if changed && c.store != nil {
		c.store.Set(settings.SectionPaths, settings.KeyExePath, path)
	}
}

func (c *Controller) SourcePath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sourcePath
}

func (c *Controller) SetSourcePath(path string) {
	c.mu.Lock()
	c.sourcePath = path
	c.mu.Unlock()
}

func (c *Controller) DestinationPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destPath
}

func (c *Controller) SetDestinationPath(path string) {
	c.mu.Lock()
	c.destPath = path
	c.mu.Unlock()
}

func (c *Controller) PreProcess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preProcess
}

func (c *Controller) SetPreProcess(v bool) {
	c.mu.Lock()
	c.preProcess = v
	c.mu.Unlock()
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) OnStatus(l StatusListener) {
	c.mu.Lock()
	c.listeners = append(c.listeners, l)
	c.mu.Unlock()
}

// Validate checks the current request without starting anything.
func (c *Controller) Validate() error {
	c.mu.Lock()
	req := c.request()
	c.mu.Unlock()
	return validate(req)
}

// Start validates the current inputs and launches a run in the background.
// The returned channel receives exactly one Result and is then closed.
// Nothing is started when an error is returned.
func (c *Controller) Start(ctx context.Context) (<-chan Result, error) {
	c.mu.Lock()
	req := c.request()
	if err := validate(req); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.busy {
		c.mu.Unlock()
		return nil, ErrRunInProgress
	}
	c.busy = true
	c.mu.Unlock()

	runID := uuid.New()
	results := make(chan Result, 1)
	go c.execute(ctx, runID, req, results)
	return results, nil
}

func (c *Controller) request() data.Request {
	return data.Request{
		EnginePath:      c.enginePath,
		SourcePath:      c.sourcePath,
		PreProcess:      c.preProcess,
		DestinationPath: c.destPath,
	}
}

// validate checks the engine name before the required paths. An empty
// engine path counts as missing rather than as a wrong selection.
func validate(req data.Request) error {
	if strings.TrimSpace(req.EnginePath) != "" {
		if err := ocr.ValidateExecutable(req.EnginePath); err != nil {
			return err
		}
	}

	var missing []string
	if strings.TrimSpace(req.EnginePath) == "" {
		missing = append(missing, "engine")
	}
	if strings.TrimSpace(req.SourcePath) == "" {
		missing = append(missing, "source")
	}
	if strings.TrimSpace(req.DestinationPath) == "" {
		missing = append(missing, "destination")
	}
	if len(missing) > 0 {
		return data.NewError(data.MissingRequiredPath,
			fmt.Sprintf("please select the %s path", strings.Join(missing, ", ")), nil)
	}
	return nil
}

func (c *Controller) execute(ctx context.Context, runID uuid.UUID, req data.Request, results chan<- Result) {
	log := logger.With("controller").With().Str("run_id", runID.String()).Logger()
	res := Result{RunID: runID}

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("conversion panicked: %v\n%s", r, debug.Stack())
			log.Error().Interface("panic", r).Msg("recovered from panic")
			res.Err = err
			res.Pages = 0
			res.Status = failed(err)
		}

		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()

		c.setStatus(res.Status)
		results <- res
		close(results)
	}()

	c.setStatus(Status{State: Converting})
	log.Info().Str("source", req.SourcePath).Str("destination", req.DestinationPath).
		Bool("preprocess", req.PreProcess).Msg("conversion started")

	pages, err := c.run(ctx, req, c.opts)
	if err != nil {
		log.Error().Err(err).Str("kind", string(data.KindOf(err))).Msg("conversion failed")
		res.Err = err
		res.Status = failed(err)
		return
	}

	log.Info().Int("pages", pages).Msg("conversion finished")
	res.Pages = pages
	res.Status = Status{State: Done}
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	listeners := append([]StatusListener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}
