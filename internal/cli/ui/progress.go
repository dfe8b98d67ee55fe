package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Spinner shows indeterminate activity, such as inferring a graph from a
// large sample set where no per-file progress exists.
type Spinner struct {
	writer   io.Writer
	frames   []string
	interval time.Duration
	noColor  bool

	mu      sync.Mutex
	message string
	running bool
	quit    chan struct{}
	stopped sync.WaitGroup
}

// SpinnerOptions configures a Spinner.
type SpinnerOptions struct {
	Message  string
	NoColor  bool
	Interval time.Duration // zero means 100ms
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a spinner writing to w. It does not draw until Start.
func NewSpinner(w io.Writer, opts SpinnerOptions) *Spinner {
	interval := opts.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	return &Spinner{
		writer:   w,
		message:  opts.Message,
		frames:   spinnerFrames,
		interval: interval,
		noColor:  opts.NoColor,
	}
}

// Start begins drawing frames on the spinner's interval.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.quit = make(chan struct{})
	s.stopped.Add(1)
	go s.spin(s.quit)
}

// Stop halts the animation and clears the current line. Safe to call more
// than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.quit)
	s.mu.Unlock()

	s.stopped.Wait()
	fmt.Fprint(s.writer, "\r\033[K")
}

// Succeed stops the spinner and prints a green check line.
func (s *Spinner) Succeed(message string) {
	s.Stop()
	green := color.New(color.FgGreen, color.Bold)
	if s.noColor {
		green.DisableColor()
	}
	green.Fprintf(s.writer, "✓ %s\n", message)
}

// Fail stops the spinner and prints a red error line.
func (s *Spinner) Fail(message string) {
	s.Stop()
	red := color.New(color.FgRed, color.Bold)
	if s.noColor {
		red.DisableColor()
	}
	red.Fprintf(s.writer, "❌ %s\n", message)
}

// SetMessage replaces the text drawn next to the frames.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) spin(quit chan struct{}) {
	defer s.stopped.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	cyan := color.New(color.FgCyan)
	if s.noColor {
		cyan.DisableColor()
	}

	for frame := 0; ; frame = (frame + 1) % len(s.frames) {
		select {
		case <-quit:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			cyan.Fprintf(s.writer, "\r%s %s", s.frames[frame], msg)
		}
	}
}

// ProgressBar tracks a determinate operation, such as parsing a known number
// of sample files.
type ProgressBar struct {
	writer  io.Writer
	total   int
	current int
	width   int
	message string
	noColor bool
}

// ProgressBarOptions configures a ProgressBar.
type ProgressBarOptions struct {
	Total   int
	Width   int // zero means 40
	Message string
	NoColor bool
}

// NewProgressBar creates a progress bar writing to w.
func NewProgressBar(w io.Writer, opts ProgressBarOptions) *ProgressBar {
	width := opts.Width
	if width == 0 {
		width = 40
	}
	return &ProgressBar{
		writer:  w,
		total:   opts.Total,
		width:   width,
		message: opts.Message,
		noColor: opts.NoColor,
	}
}

// Add advances the bar by n steps, clamped to the total.
func (p *ProgressBar) Add(n int) {
	p.Set(p.current + n)
}

// Set moves the bar to an absolute position, clamped to the total.
func (p *ProgressBar) Set(n int) {
	p.current = n
	if p.current > p.total {
		p.current = p.total
	}
	p.draw()
}

// Finish fills the bar and terminates its line.
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.draw()
	fmt.Fprintln(p.writer)
}

// FinishWithMessage fills the bar and prints a green check line after it.
func (p *ProgressBar) FinishWithMessage(message string) {
	p.Finish()
	green := color.New(color.FgGreen, color.Bold)
	if p.noColor {
		green.DisableColor()
	}
	green.Fprintf(p.writer, "✓ %s\n", message)
}

func (p *ProgressBar) draw() {
	if p.total == 0 {
		return
	}

	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if p.noColor {
		cyan.DisableColor()
		gray.DisableColor()
	}

	fraction := float64(p.current) / float64(p.total)
	filled := int(float64(p.width) * fraction)

	var bar strings.Builder
	bar.WriteString("[")
	cyan.Fprint(&bar, strings.Repeat("█", filled))
	gray.Fprint(&bar, strings.Repeat("░", p.width-filled))
	bar.WriteString("]")

	suffix := ""
	if p.message != "" {
		suffix = " " + p.message
	}
	fmt.Fprintf(p.writer, "\r%s %3d%%%s", bar.String(), int(fraction*100), suffix)
}

// WithSpinner runs fn under a spinner and reports the outcome on w.
func WithSpinner(w io.Writer, message string, noColor bool, fn func() error) error {
	spinner := NewSpinner(w, SpinnerOptions{Message: message, NoColor: noColor})
	spinner.Start()
	defer spinner.Stop()

	if err := fn(); err != nil {
		spinner.Fail(fmt.Sprintf("%s failed", message))
		return err
	}
	spinner.Succeed(message)
	return nil
}

// WithProgress runs fn with a progress bar sized for total steps. The bar is
// completed on success and its line is terminated on failure so subsequent
// output starts clean.
func WithProgress(w io.Writer, message string, total int, noColor bool, fn func(*ProgressBar) error) error {
	bar := NewProgressBar(w, ProgressBarOptions{
		Total:   total,
		Message: message,
		NoColor: noColor,
	})

	if err := fn(bar); err != nil {
		fmt.Fprintln(w)
		return err
	}
	bar.FinishWithMessage(message)
	return nil
}
