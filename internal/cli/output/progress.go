package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar draws a single-line counter bar such as
//
//	inserting [████████░░░░] 66% (660/1000)
//
// It redraws only when the whole-percent value changes, so it can be
// incremented once per item without flooding the terminal.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int
	current int
	width   int
	drawn   int
	mu      sync.Mutex
}

// NewProgressBar creates a progress bar for total items.
func NewProgressBar(w io.Writer, title string, total int) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		total: total,
		width: 40,
		drawn: -1,
	}
}

// Increment adds n completed items.
func (p *ProgressBar) Increment(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	p.render(false)
}

// Set sets the number of completed items.
func (p *ProgressBar) Set(current int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = current
	p.render(false)
}

// Finish draws the bar at 100% and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total > 0 {
		p.current = p.total
	}
	p.render(true)
	fmt.Fprintln(p.w)
}

func (p *ProgressBar) render(force bool) {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %d", p.title, p.current)
		return
	}

	current := min(p.current, p.total)
	percent := current * 100 / p.total
	if percent == p.drawn && !force {
		return
	}
	p.drawn = percent

	filled := p.width * current / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	fmt.Fprintf(p.w, "\r%s [%s] %3d%% (%d/%d)", p.title, bar, percent, current, p.total)
}
