package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"pdf2text/internal/config"
	"pdf2text/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Configure(os.Stderr, logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(cfg, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(exitCode(err))
	}
}
