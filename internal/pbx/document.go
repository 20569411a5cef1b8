package pbx

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the descriptor file as UTF-8 text.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading descriptor: %w", err)
	}
	return string(b), nil
}

// Store atomically replaces the descriptor with content. The full text is
// written to a temporary file in the descriptor's directory, synced, and
// renamed over the original, so readers never observe a partial write.
func Store(path, content string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing descriptor: %w", err)
	}
	tmp := f.Name()
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing descriptor: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing descriptor: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing descriptor: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing descriptor: %w", err)
	}
	return nil
}
