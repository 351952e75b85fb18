package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PDF2TEXT_SETTINGS", "PDF2TEXT_ENGINE", "PDF2TEXT_DPI", "PDF2TEXT_WORKERS", "PDF2TEXT_LANG", "LOG_LEVEL", "DEBUG"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PDF2TEXT_SETTINGS", "/etc/pdf2text.ini")
	t.Setenv("PDF2TEXT_DPI", "300")
	t.Setenv("PDF2TEXT_WORKERS", "4")
	t.Setenv("PDF2TEXT_LANG", "eng+deu")
	t.Setenv("DEBUG", "1")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/etc/pdf2text.ini", cfg.SettingsFile)
	assert.Equal(t, 300, cfg.DPI)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "eng+deu", cfg.Language)
	assert.True(t, cfg.Debug)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("PDF2TEXT_WORKERS", "") // restores the original value after the test
	os.Unsetenv("PDF2TEXT_WORKERS")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PDF2TEXT_WORKERS=2\n"), 0o644))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		key, value string
	}{
		{"PDF2TEXT_DPI", "high"},
		{"PDF2TEXT_DPI", "5"},
		{"PDF2TEXT_WORKERS", "0"},
		{"PDF2TEXT_ENGINE", "easyocr"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tc.key, tc.value)

			_, err := Load()

			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
