// =============================================================================
// H2K to HPXML Translator - File Utilities
// =============================================================================
//
// Small file helpers shared by the commands: directory preparation, input
// archival after successful runs, and the per-run warnings log.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDirs creates every listed directory.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether path names an existing file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ArchiveFile moves path into archiveDir, keeping its base name. Falls back
// to copy-and-delete when rename crosses filesystems.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", err
	}
	target := filepath.Join(archiveDir, filepath.Base(path))
	if err := os.Rename(path, target); err == nil {
		return target, nil
	}
	if err := copyFile(path, target); err != nil {
		return "", err
	}
	return target, os.Remove(path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// WarningEntry is one line of a run's warnings log.
type WarningEntry struct {
	Input   string
	Message string
}

// WriteWarningsLog writes the run's warnings to <dir>/<runID>_warnings.log
// and returns the path. No file is written when there are no warnings.
func WriteWarningsLog(dir, runID string, entries []WarningEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, runID+"_warnings.log")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		fmt.Fprintf(w, "%s: %s\n", e.Input, e.Message)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return path, nil
}
