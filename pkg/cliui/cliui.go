// Package cliui holds the shared terminal presentation pieces for embedviz
// commands built on lipgloss and glamour.
package cliui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	SuccessMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	FailMark     = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Render("✗")
	StepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	// HeaderStyle renders table headers and section titles.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// NameStyle highlights primary identifiers such as model names.
	NameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	// KeyStyle renders metric and setting labels.
	KeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	// ValueStyle renders metric values.
	ValueStyle = lipgloss.NewStyle().Bold(true)

	// DimStyle renders secondary detail such as sizes and paths.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// WarnStyle renders warnings that are not hard failures.
	WarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// spinnerFrames cycles through braille dots while a step runs.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Step prints an animated spinner on w while fn runs, then replaces it
// with a ✓ or ✗ mark and the elapsed time. The returned error is fn's.
func Step(w io.Writer, msg string, fn func() error) error {
	var mu sync.Mutex
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			glyph := spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)])

			mu.Lock()
			fmt.Fprintf(w, "\r  %s %s", glyph, msg)
			mu.Unlock()

			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()

	start := time.Now()
	err := fn()
	close(done)

	elapsed := StepStyle.Render("(" + FormatDuration(time.Since(start)) + ")")

	mu.Lock()
	fmt.Fprintf(w, "\r  %s %s %s\n", Mark(err), msg, elapsed)
	mu.Unlock()

	return err
}

// Mark returns a ✓ for nil errors or ✗ for non-nil errors.
func Mark(err error) string {
	if err != nil {
		return FailMark
	}
	return SuccessMark
}

// FormatDuration formats a duration for display (e.g. "12ms" or "3.2s").
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// RenderMarkdown renders markdown for the terminal via glamour. On error
// the raw content comes back with it, so callers can still print something.
func RenderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, err
	}

	out, err := r.Render(content)
	if err != nil {
		return content, err
	}

	return out, nil
}
