package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestTextWriter_ReplaceMode(t *testing.T) {
	// Arrange
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "replace_test.txt")
	writer := NewTextWriter()
	defer writer.Close()

	// Act
	err1 := writer.WriteToFile("original text", outputPath)
	err2 := writer.WriteToFile("replaced", outputPath)

	// Assert
	if err1 != nil {
		t.Fatalf("First write failed: %v", err1)
	}
	if err2 != nil {
		t.Fatalf("Replace write failed: %v", err2)
	}

	if got := readFile(t, outputPath); got != "replaced" {
		t.Errorf("expected replaced content, got %q", got)
	}
}

func TestTextWriter_OverwritesExistingFile(t *testing.T) {
	// Arrange
	outputPath := filepath.Join(t.TempDir(), "existing.txt")
	if err := os.WriteFile(outputPath, []byte("a much longer previous content"), 0644); err != nil {
		t.Fatal(err)
	}
	writer := NewTextWriter()
	defer writer.Close()

	// Act
	err := writer.WriteToFile("short", outputPath)

	// Assert
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if got := readFile(t, outputPath); got != "short" {
		t.Errorf("expected truncated content, got %q", got)
	}
}

func TestTextWriter_ConcurrentWritesDoNotInterleave(t *testing.T) {
	// Arrange
	outputPath := filepath.Join(t.TempDir(), "nested", "concurrent_test.txt")
	writer := NewTextWriter()
	defer writer.Close()

	numGoroutines := 5
	texts := make([]string, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		texts[i] = strings.Repeat(fmt.Sprintf("[%d]", i), 2000)
	}
	var wg sync.WaitGroup

	// Act
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := writer.WriteToFile(texts[id], outputPath); err != nil {
				t.Errorf("Goroutine %d failed: %v", id, err)
			}
		}(i)
	}

	wg.Wait()

	// Assert: the file holds exactly one complete write
	got := readFile(t, outputPath)
	found := false
	for _, text := range texts {
		if got == text {
			found = true
		}
	}
	if !found {
		t.Errorf("file content is not one of the written texts (len %d)", len(got))
	}
}

func TestTextWriter_InvalidPath(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	writer := NewTextWriter()
	defer writer.Close()

	// Act
	err := writer.WriteToFile("text", filepath.Join(blocker, "out.txt"))

	// Assert
	if err == nil {
		t.Errorf("expected error for invalid path, got none")
	}
}

func TestTextWriter_ClosedWriter(t *testing.T) {
	writer := NewTextWriter()
	writer.Close()
	writer.Close()

	err := writer.WriteToFile("text", filepath.Join(t.TempDir(), "out.txt"))

	if err == nil {
		t.Errorf("expected error from closed writer")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	return string(b)
}
