package pipeline

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"assetpipe/codec"
	"assetpipe/logger"
)

// Encoder is the image codec the optimizer delegates pixel work to.
type Encoder interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image, f codec.Format) error
}

// Optimizer re-encodes raster images into their original format and adds
// WebP and AVIF siblings.
type Optimizer struct {
	Encoder  Encoder
	Console  *logger.Console
	Progress Progress
}

type output struct {
	path   string
	format codec.Format
}

// Optimize processes files in order. Any failure for a file stops the
// remaining encodes of that file and counts as a single error; outputs
// already written for it are left in place.
func (o *Optimizer) Optimize(ctx context.Context, files []FileEntry, task Task) Stats {
	var stats Stats

	for _, file := range files {
		if ctx.Err() != nil {
			return stats
		}

		origSize, optSize, err := o.optimizeFile(file, task)
		if err != nil {
			stats.Errors++
			o.Console.Error("Error processing %s: %v", file.RelPath, err)
		} else {
			stats.Processed++
			stats.OriginalBytes += origSize
			stats.OptimizedBytes += optSize
			o.Console.Success("Processed: %s (%d KB → %d KB, +webp, +avif)",
				file.RelPath, origSize/1024, optSize/1024)
		}

		if o.Progress != nil {
			o.Progress.Increment(1)
		}
	}

	return stats
}

func (o *Optimizer) optimizeFile(file FileEntry, task Task) (int64, int64, error) {
	format, ok := file.Kind.Format()
	if !ok {
		return 0, 0, fmt.Errorf("not a raster image: %s", file.Kind)
	}

	dst, err := ResolveOutputPath(file.Path, task.InputDir, task.OutputDir)
	if err != nil {
		return 0, 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, 0, fmt.Errorf("error creating directory: %w", err)
	}

	img, origSize, err := o.decode(file.Path)
	if err != nil {
		return origSize, 0, err
	}

	base := strings.TrimSuffix(dst, filepath.Ext(dst))
	outputs := []output{
		{path: dst, format: format},
		{path: base + codec.FormatWebP.Ext(), format: codec.FormatWebP},
		{path: base + codec.FormatAVIF.Ext(), format: codec.FormatAVIF},
	}

	var optSize int64
	for i, out := range outputs {
		size, err := writeFile(out.path, 0o644, func(w io.Writer) error {
			return o.Encoder.Encode(w, img, out.format)
		})
		if err != nil {
			return origSize, 0, fmt.Errorf("%s: %w", filepath.Base(out.path), err)
		}
		if i == 0 {
			optSize = size
		}
	}

	return origSize, optSize, nil
}

func (o *Optimizer) decode(path string) (image.Image, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get file info: %w", err)
	}

	img, err := o.Encoder.Decode(f)
	if err != nil {
		return nil, info.Size(), err
	}
	return img, info.Size(), nil
}
