package engine

// Options tune how an engine recognizes a page.
type Options struct {
	Language    string
	PageSegMode int
}

type Option func(*Options)

// WithLanguage sets the tesseract language, e.g. "eng" or "eng+deu".
func WithLanguage(lang string) Option {
	return func(o *Options) { o.Language = lang }
}

// WithPageSegMode sets the page segmentation mode. Zero keeps the engine default.
func WithPageSegMode(mode int) Option {
	return func(o *Options) { o.PageSegMode = mode }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
