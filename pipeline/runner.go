package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"assetpipe/logger"
)

// Runner executes its tasks one after another and merges their Stats.
type Runner struct {
	Tasks     []Task
	Optimizer *Optimizer
	Copier    *Copier
	Console   *logger.Console
}

func NewRunner(tasks []Task, enc Encoder, console *logger.Console) *Runner {
	return &Runner{
		Tasks:     tasks,
		Optimizer: &Optimizer{Encoder: enc, Console: console},
		Copier:    &Copier{Console: console},
		Console:   console,
	}
}

func (r *Runner) Run(ctx context.Context) Stats {
	var total Stats

	for i, task := range r.Tasks {
		if ctx.Err() != nil {
			r.Console.Warn("Interrupted, skipping %d remaining task(s)", len(r.Tasks)-i)
			break
		}
		total = total.Add(r.runTask(ctx, task))
	}

	return total
}

func (r *Runner) runTask(ctx context.Context, task Task) Stats {
	var stats Stats

	info, err := os.Stat(task.InputDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.Console.Warn("Input directory %s does not exist, skipping", task.InputDir)
		return stats
	case err != nil:
		stats.Errors++
		r.Console.Error("Error reading input directory %s: %v", task.InputDir, err)
		return stats
	case !info.IsDir():
		stats.Errors++
		r.Console.Error("Input path %s is not a directory", task.InputDir)
		return stats
	}

	if err := os.MkdirAll(task.OutputDir, 0o755); err != nil {
		stats.Errors++
		r.Console.Error("Error creating output directory %s: %v", task.OutputDir, err)
		return stats
	}

	raster, verbatim, err := discoverTask(task)
	if err != nil {
		stats.Errors++
		r.Console.Error("File collection error: %v", err)
		return stats
	}

	r.Console.Info("Processing %s (%d images, %d assets)", task, len(raster), len(verbatim))
	timer := r.Console.StartTimer(task.String())

	console := r.Console.With("task", task.OutputDir)
	optimizer, copier := *r.Optimizer, *r.Copier
	optimizer.Console, copier.Console = console, console

	var bar *logger.ProgressBar
	if console.Quiet && len(raster)+len(verbatim) > 0 {
		bar = console.NewProgressBar(int64(len(raster)+len(verbatim)), task.OutputDir)
		optimizer.Progress, copier.Progress = bar, bar
	}

	stats = stats.Add(optimizer.Optimize(ctx, raster, task))
	stats = stats.Add(copier.Copy(ctx, verbatim, task))

	if bar != nil {
		bar.Complete()
	}
	timer.End()
	return stats
}

func discoverTask(task Task) (raster, verbatim []FileEntry, err error) {
	raster, err = Discover(task.InputDir, RasterPattern)
	if err != nil {
		return nil, nil, err
	}
	verbatim, err = Discover(task.InputDir, VerbatimPattern)
	if err != nil {
		return nil, nil, err
	}

	for _, f := range raster {
		if !f.Kind.IsRaster() {
			return nil, nil, fmt.Errorf("%s matched the raster pattern but is %s", f.RelPath, f.Kind)
		}
	}
	for _, f := range verbatim {
		if !f.Kind.IsVerbatim() {
			return nil, nil, fmt.Errorf("%s matched the verbatim pattern but is %s", f.RelPath, f.Kind)
		}
	}
	return raster, verbatim, nil
}
