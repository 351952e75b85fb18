package main

import (
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"pdf2text/internal/controller"
)

// ui prints controller status changes and page progress. Status and
// progress arrive from different goroutines.
type ui struct {
	mu      sync.Mutex
	out     io.Writer
	bar     *progressbar.ProgressBar
	info    *color.Color
	success *color.Color
	failure *color.Color
}

func newUI(out io.Writer, noColor bool) *ui {
	u := &ui{
		out:     out,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed),
	}
	if noColor {
		u.info.DisableColor()
		u.success.DisableColor()
		u.failure.DisableColor()
	}
	return u
}

func (u *ui) status(s controller.Status) {
	u.mu.Lock()
	defer u.mu.Unlock()

	switch s.State {
	case controller.Converting:
		u.info.Fprintln(u.out, s.String())
	case controller.Done:
		u.finishBar()
		u.success.Fprintln(u.out, s.String())
	case controller.Failed:
		u.finishBar()
		u.failure.Fprintln(u.out, s.String())
	}
}

func (u *ui) page(done, total int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.bar == nil {
		u.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(u.out),
			progressbar.OptionSetDescription("Recognizing pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionEnableColorCodes(!color.NoColor),
		)
	}
	_ = u.bar.Set(done)
}

func (u *ui) fail(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failure.Fprintln(u.out, controller.Status{State: controller.Failed, Reason: err.Error()}.String())
}

func (u *ui) finishBar() {
	if u.bar != nil {
		_ = u.bar.Finish()
		io.WriteString(u.out, "\n")
		u.bar = nil
	}
}
