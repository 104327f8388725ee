package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"
)

// Console is the human-facing logging surface. Every line goes through the
// wrapped slog.Logger so text and JSON output share one path.
type Console struct {
	Logger    *slog.Logger
	Output    io.Writer
	Colorized bool
	Quiet     bool

	// shared by every Console derived through With
	progress *progressSlot
}

type progressSlot struct {
	bar *ProgressBar
}

func NewConsole(opts *RichLoggerOptions) *Console {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Console{
		Logger:    NewRichLogger(opts),
		Output:    opts.Output,
		Colorized: opts.EnableColors && !opts.EnableJSON,
		progress:  &progressSlot{},
	}
}

// With returns a Console whose lines carry the given slog attributes.
func (c *Console) With(args ...any) *Console {
	c2 := *c
	c2.Logger = c.Logger.With(args...)
	return &c2
}

func (c *Console) StartTimer(name string) *Timer {
	return &Timer{
		Name:      name,
		StartTime: time.Now(),
		Console:   c,
	}
}

// log emits one record attributed to the caller of the exported method.
func (c *Console) log(level slog.Level, msg string) {
	ctx := context.Background()
	if !c.Logger.Enabled(ctx, level) {
		return
	}
	if c.progress != nil && c.progress.bar != nil {
		c.progress.bar.Break()
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, log, exported method
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	_ = c.Logger.Handler().Handle(ctx, r)
}

func (c *Console) decorate(icon, color, format string, args ...any) string {
	msg := icon + fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = color + Bold + msg + Reset
	}
	return msg
}

func (c *Console) Success(format string, args ...any) {
	if c.Quiet {
		c.log(slog.LevelDebug, fmt.Sprintf(format, args...))
		return
	}
	c.log(slog.LevelInfo, c.decorate("✓ ", Green, format, args...))
}

func (c *Console) Info(format string, args ...any) {
	c.log(slog.LevelInfo, c.decorate("ℹ ", Blue, format, args...))
}

func (c *Console) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Colorized {
		msg = White + msg + Reset
	}
	c.log(slog.LevelInfo, msg)
}

func (c *Console) Debug(format string, args ...any) {
	c.log(slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (c *Console) Warn(format string, args ...any) {
	c.log(slog.LevelWarn, c.decorate("⚠ ", Yellow, format, args...))
}

func (c *Console) Error(format string, args ...any) {
	c.log(slog.LevelError, c.decorate("✖ ", Red, format, args...))
}

// NewProgressBar starts a bar on the console output. Until the bar completes,
// any line the console prints first ends the partially drawn bar line.
func (c *Console) NewProgressBar(total int64, label string) *ProgressBar {
	bar := NewProgressBar(total, label, c.Output)
	if c.progress != nil {
		c.progress.bar = bar
	}
	return bar
}

func (c *Console) NewTable(headers []string) *Table {
	return NewTable(headers, c.Output, c.Colorized)
}

// Box prints content framed by a titled box straight to the output,
// bypassing the log formatter.
func (c *Console) Box(title string, content string) {
	lines := strings.Split(content, "\n")
	maxWidth := utf8.RuneCountInString(title)

	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxWidth {
			maxWidth = n
		}
	}

	maxWidth += 4
	titleWidth := utf8.RuneCountInString(title)

	fmt.Fprintln(c.Output, "┌─"+title+"─"+strings.Repeat("─", maxWidth-titleWidth-2)+"┐")

	for _, line := range lines {
		fmt.Fprintln(c.Output, "│ "+line+strings.Repeat(" ", maxWidth-utf8.RuneCountInString(line))+" │")
	}

	fmt.Fprintln(c.Output, "└"+strings.Repeat("─", maxWidth+2)+"┘")
}
