package pipeline

import (
	"pdf2text/internal/ocr"
	"pdf2text/internal/ocr/engine"
	"pdf2text/internal/pdf"
)

// Options tune a conversion run. The zero value renders at pdf.DefaultDPI
// and recognizes pages one at a time with the exec tesseract engine.
type Options struct {
	Engine      string
	DPI         int
	Workers     int
	Language    string
	PageSegMode int
	TempDir     string
	// OnPage is called from the collector after each page is recognized.
	OnPage func(done, total int)
}

func (o Options) engineType() string {
	if o.Engine == "" {
		return ocr.EngineTesseract
	}
	return o.Engine
}

func (o Options) dpi() int {
	if o.DPI <= 0 {
		return pdf.DefaultDPI
	}
	return o.DPI
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return 1
	}
	return o.Workers
}

func (o Options) engineOptions() []engine.Option {
	var opts []engine.Option
	if o.Language != "" {
		opts = append(opts, engine.WithLanguage(o.Language))
	}
	if o.PageSegMode > 0 {
		opts = append(opts, engine.WithPageSegMode(o.PageSegMode))
	}
	return opts
}
