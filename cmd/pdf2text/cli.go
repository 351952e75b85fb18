package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pdf2text/internal/config"
	"pdf2text/internal/controller"
	"pdf2text/internal/data"
	"pdf2text/internal/logger"
	"pdf2text/internal/ocr/engine"
	"pdf2text/internal/pipeline"
	"pdf2text/internal/settings"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type cli struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer

	settingsFile string
	verbose      bool
	noColor      bool
}

func newRootCmd(cfg config.Config, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{cfg: cfg, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "pdf2text",
		Short:         "Recognize the text of a scanned PDF with tesseract",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose || c.cfg.Debug {
				logger.SetLevel(zerolog.DebugLevel)
			}
			if c.noColor {
				color.NoColor = true
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.settingsFile, "settings", cfg.SettingsFile, "settings file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(c.convertCmd(), c.settingsCmd(), c.versionCmd())
	return root
}

func (c *cli) openSettings() (*settings.Store, error) {
	store, err := settings.Open(c.settingsFile)
	if err != nil {
		return nil, err
	}
	log := logger.With("settings")
	store.WriteThrough(func(err error) {
		log.Warn().Err(err).Str("file", store.Path()).Msg("could not save settings")
	})
	return store, nil
}

func (c *cli) convertCmd() *cobra.Command {
	var (
		enginePath string
		output     string
		preProcess bool
		opts       = pipeline.Options{
			Engine:   c.cfg.Engine,
			DPI:      c.cfg.DPI,
			Workers:  c.cfg.Workers,
			Language: c.cfg.Language,
		}
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] SOURCE.pdf",
		Short: "Convert a PDF to a text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openSettings()
			if err != nil {
				return c.reject(err)
			}

			ui := newUI(c.stdout, c.noColor)
			opts.OnPage = ui.page

			ctrl := controller.New(store, controller.WithPipelineOptions(opts))
			if cmd.Flags().Changed("engine") {
				ctrl.SetEnginePath(enginePath)
			}
			ctrl.SetSourcePath(args[0])
			if output == "" {
				output = defaultOutput(args[0])
			}
			ctrl.SetDestinationPath(output)
			ctrl.SetPreProcess(preProcess)
			ctrl.OnStatus(ui.status)

			log := logger.With("cli")
			log.Debug().Str("engine", ctrl.EnginePath()).Str("source", ctrl.SourcePath()).
				Str("destination", ctrl.DestinationPath()).Bool("preprocess", ctrl.PreProcess()).
				Int("workers", opts.Workers).Int("dpi", opts.DPI).Msg("convert")

			results, err := ctrl.Start(cmd.Context())
			if err != nil {
				return c.reject(err)
			}
			res := <-results
			if res.Err != nil {
				// already shown by ui.status
				return reportedError{res.Err}
			}
			fmt.Fprintf(c.stdout, "%d pages written to %s\n", res.Pages, ctrl.DestinationPath())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&enginePath, "engine", "e", "", "path to the tesseract executable (remembered)")
	f.StringVarP(&output, "output", "o", "", "output text file (default SOURCE with .txt)")
	f.BoolVarP(&preProcess, "preprocess", "p", false, "greyscale, upscale and binarize pages before OCR")
	f.IntVarP(&opts.Workers, "workers", "w", opts.Workers, "pages recognized in parallel")
	f.IntVar(&opts.DPI, "dpi", opts.DPI, "render resolution")
	f.StringVarP(&opts.Language, "lang", "l", opts.Language, "tesseract language, e.g. eng or deu+eng")
	f.IntVar(&opts.PageSegMode, "psm", 0, "tesseract page segmentation mode")
	return cmd
}

// Exit codes: rejected input is told apart from a run that started and failed.
const (
	exitFailure  = 1
	exitRejected = 2
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case data.IsValidation(err), errors.Is(err, controller.ErrRunInProgress):
		return exitRejected
	default:
		return exitFailure
	}
}

// reportedError marks errors the user has already been shown.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func (c *cli) reject(err error) error {
	newUI(c.stdout, c.noColor).fail(err)
	return reportedError{err}
}

// defaultOutput replaces the extension of source with .txt.
func defaultOutput(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".txt"
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change remembered settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get SECTION KEY",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Open(c.settingsFile)
			if err != nil {
				return c.reject(err)
			}
			v, ok := store.Get(args[0], args[1])
			if !ok {
				return c.reject(fmt.Errorf("%s.%s is not set", args[0], args[1]))
			}
			fmt.Fprintln(c.stdout, v)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set SECTION KEY VALUE",
		Short: "Change a setting",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Open(c.settingsFile)
			if err != nil {
				return c.reject(err)
			}
			store.Set(args[0], args[1], args[2])
			if err := store.Save(); err != nil {
				return c.reject(err)
			}
			return nil
		},
	})
	return cmd
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and the remembered engine's version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(c.stdout, "pdf2text %s\n", version)

			store, err := settings.Open(c.settingsFile)
			if err != nil {
				return c.reject(err)
			}
			path, ok := store.Get(settings.SectionPaths, settings.KeyExePath)
			if !ok || path == "" {
				return nil
			}
			v, err := engine.NewTesseractEngine(path).Version(cmd.Context())
			if err != nil {
				log := logger.With("cli")
				log.Debug().Err(err).Msg("engine version")
				return c.reject(errors.New("remembered engine " + path + " did not answer --version"))
			}
			fmt.Fprintf(c.stdout, "%s (%s)\n", v, path)
			return nil
		},
	}
}
