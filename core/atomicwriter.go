package core

import (
	"fmt"
	"os"
)

// AtomicWriteConfig controls how patched files are written back.
type AtomicWriteConfig struct {
	// UseFsync forces an fsync of the temp file before the rename.
	UseFsync bool
	// TempSuffix is appended to the target path for the temp file.
	TempSuffix string
}

// DefaultAtomicConfig returns the defaults used by the engine.
func DefaultAtomicConfig() AtomicWriteConfig {
	return AtomicWriteConfig{
		UseFsync:   false,
		TempSuffix: ".sixer.tmp",
	}
}

// AtomicWriter writes patched content back via a temp file and rename, so
// a crash mid-write never leaves a half-patched source file. The original
// file's mode is preserved.
type AtomicWriter struct {
	config AtomicWriteConfig
}

// NewAtomicWriter returns a writer with the given configuration.
func NewAtomicWriter(config AtomicWriteConfig) *AtomicWriter {
	if config.TempSuffix == "" {
		config.TempSuffix = DefaultAtomicConfig().TempSuffix
	}
	return &AtomicWriter{config: config}
}

// WriteFile replaces the file at path with content.
func (aw *AtomicWriter) WriteFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}

	tempPath := path + aw.config.TempSuffix
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write content: %w", err)
	}
	if aw.config.UseFsync {
		if err := tempFile.Sync(); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return fmt.Errorf("failed to sync: %w", err)
		}
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to atomic rename: %w", err)
	}
	return nil
}
