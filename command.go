package main

import (
	"fmt"
	"io"
	"log/slog"

	"assetpipe/codec"
	"assetpipe/logger"
	"assetpipe/pipeline"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Config holds the presentation flags. What gets processed is fixed by
// pipeline.DefaultTasks and codec.DefaultSettings.
type Config struct {
	BaseDir   string
	LogFormat string
	NoColor   bool
	Quiet     bool
	Verbose   bool
}

func newRootCmd() *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "assetpipe",
		Short: "Optimize raster images and copy static assets into build directories",
		Long: `assetpipe re-encodes JPEG and PNG images into optimized originals plus
WebP and AVIF siblings, and copies SVG, GIF and ICO files unchanged, for
every configured input/output directory pair.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.BaseDir, "chdir", "C", "", "directory the task paths are relative to (default: current directory)")
	flags.StringVar(&cfg.LogFormat, "log-format", "text", "log output format: text or json")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "show a progress bar instead of one line per file")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			console := logger.NewConsole(&logger.RichLoggerOptions{Output: cmd.OutOrStdout()})
			versionInfo := fmt.Sprintf(
				"Version: %s\nBuild date: %s\nGit commit: %s",
				Version, BuildDate, GitCommit,
			)
			console.Box("assetpipe version information", versionInfo)
		},
	}
}

func run(cmd *cobra.Command, cfg *Config) error {
	console := cfg.newConsole(cmd.OutOrStdout())

	enc, err := codec.New(codec.DefaultSettings())
	if err != nil {
		return err
	}

	tasks := pipeline.ResolveTasks(cfg.BaseDir, pipeline.DefaultTasks())
	console.Debug("Running %d task(s)", len(tasks))

	stats := pipeline.NewRunner(tasks, enc, console).Run(cmd.Context())
	pipeline.Report(console, stats)

	if stats.Errors > 0 {
		console.Warn("Completed with %d error(s)", stats.Errors)
		return nil
	}
	console.Success("All processing completed successfully")
	return nil
}

func (cfg *Config) validate() error {
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("error: log format must be text or json, got %q", cfg.LogFormat)
	}
	if cfg.Quiet && cfg.Verbose {
		return fmt.Errorf("error: --quiet cannot be used with --verbose")
	}
	return nil
}

func (cfg *Config) newConsole(w io.Writer) *logger.Console {
	opts := logger.DefaultOptions()
	opts.Output = w
	opts.EnableJSON = cfg.LogFormat == "json"
	opts.EnableColors = !cfg.NoColor && !opts.EnableJSON
	if cfg.Verbose {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	console := logger.NewConsole(opts)
	console.Quiet = cfg.Quiet
	return console
}
