package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"assetpipe/logger"
)

// Progress receives one tick per handled file.
type Progress interface {
	Increment(amount int64)
}

// Copier copies verbatim assets byte for byte.
type Copier struct {
	Console  *logger.Console
	Progress Progress
}

// Copy copies every file into task.OutputDir at the same relative path.
// A failed file is logged and counted; the rest of the batch still runs.
func (c *Copier) Copy(ctx context.Context, files []FileEntry, task Task) Stats {
	var stats Stats

	for _, file := range files {
		if ctx.Err() != nil {
			return stats
		}

		if err := c.copyFile(file, task); err != nil {
			stats.Errors++
			c.Console.Error("Error copying %s: %v", file.RelPath, err)
		} else {
			stats.Copied++
			c.Console.Success("Copied: %s", file.RelPath)
		}

		if c.Progress != nil {
			c.Progress.Increment(1)
		}
	}

	return stats
}

func (c *Copier) copyFile(file FileEntry, task Task) error {
	dst, err := ResolveOutputPath(file.Path, task.InputDir, task.OutputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	src, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("error opening file: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}

	_, err = writeFile(dst, info.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, src)
		return err
	})
	return err
}
