package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jaeyoung0509/Meld/internal/models"
)

// Encode serializes a bundle as pretty-printed JSON followed by a newline.
// Key order is determined by the struct tags in internal/models, which are
// declared alphabetically, so identical inputs always produce identical
// bytes.
func Encode(w io.Writer, b models.Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Write persists the bundle to path, creating parent directories as needed.
// Callers only invoke this once the run's error list is empty; a failed
// validation must leave the output path untouched.
func Write(path string, b models.Bundle) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, b); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}
