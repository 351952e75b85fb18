// Package config loads runtime configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"pdf2text/internal/ocr"
	"pdf2text/internal/pdf"
)

const DefaultSettingsFile = "settings.ini"

type Config struct {
	SettingsFile string
	Engine       string
	DPI          int
	Workers      int
	Language     string
	LogLevel     string
	Debug        bool
}

func Default() Config {
	return Config{
		SettingsFile: DefaultSettingsFile,
		Engine:       ocr.EngineTesseract,
		DPI:          pdf.DefaultDPI,
		Workers:      1,
		LogLevel:     "info",
	}
}

// Load reads .env (if present) and applies environment overrides on top of Default.
func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()
	cfg.SettingsFile = getenv("PDF2TEXT_SETTINGS", cfg.SettingsFile)
	cfg.Engine = getenv("PDF2TEXT_ENGINE", cfg.Engine)
	cfg.Language = getenv("PDF2TEXT_LANG", cfg.Language)
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.Debug = os.Getenv("DEBUG") == "1"

	var err error
	if cfg.DPI, err = getenvInt("PDF2TEXT_DPI", cfg.DPI); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getenvInt("PDF2TEXT_WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Engine {
	case ocr.EngineTesseract, ocr.EngineGosseract:
	default:
		return fmt.Errorf("unknown engine type: %s", c.Engine)
	}
	if c.DPI < 36 || c.DPI > 1200 {
		return fmt.Errorf("dpi must be between 36 and 1200, got %d", c.DPI)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if strings.TrimSpace(c.SettingsFile) == "" {
		return fmt.Errorf("settings file path is empty")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", k, err)
	}
	return n, nil
}
