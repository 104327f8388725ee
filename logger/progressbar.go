package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ProgressBar redraws a single line on w with "\r". It is only used in quiet
// mode, where per-file lines are demoted to debug level.
type ProgressBar struct {
	startTime time.Time
	mu        sync.Mutex
	w         io.Writer
	label     string
	total     int64
	current   int64
	width     int
	complete  bool
	lineOpen  bool
}

func NewProgressBar(total int64, label string, w io.Writer) *ProgressBar {
	return &ProgressBar{
		total:     total,
		width:     40,
		label:     label,
		startTime: time.Now(),
		w:         w,
	}
}

func (p *ProgressBar) Increment(amount int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = min(p.current+amount, p.total)
	p.render()
}

func (p *ProgressBar) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.complete {
		return
	}

	p.current = p.total
	p.render()
	p.complete = true
	p.lineOpen = false
	fmt.Fprintln(p.w)
}

// Break ends a partially drawn bar line so another line can be printed
// below it. The next Increment redraws the bar on a fresh line.
func (p *ProgressBar) Break() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lineOpen {
		fmt.Fprintln(p.w)
		p.lineOpen = false
	}
}

func (p *ProgressBar) render() {
	if p.complete || p.total <= 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100
	filled := int(float64(p.width) * float64(p.current) / float64(p.total))

	elapsed := time.Since(p.startTime)
	var eta time.Duration
	if p.current > 0 {
		eta = time.Duration(float64(elapsed) * float64(p.total-p.current) / float64(p.current))
	}

	fmt.Fprintf(p.w, "\r%s [%s%s] %3.0f%% %d/%d ETA: %s ",
		p.label,
		strings.Repeat("█", filled),
		strings.Repeat("░", p.width-filled),
		percent,
		p.current,
		p.total,
		formatDuration(eta),
	)
	p.lineOpen = true
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
