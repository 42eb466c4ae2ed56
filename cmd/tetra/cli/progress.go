// Copyright 2026 The Tetra Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// drawInterval caps progress redraws. Advance arrives per read call,
// far faster than a terminal needs.
const drawInterval = 100 * time.Millisecond

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	byteStyle  = lipgloss.NewStyle().Faint(true)
)

// TerminalProgress renders one in-place transfer line on stderr. It
// implements the fetcher's Progress interface. When stderr is not a
// terminal (CI, pipes), it degrades to a single summary line per
// transfer instead of redrawing.
type TerminalProgress struct {
	out         *termenv.Output
	bar         progress.Model
	interactive bool

	label    string
	total    int64
	received int64
	lastDraw time.Time
}

// NewTerminalProgress creates a progress renderer writing to stderr.
func NewTerminalProgress() *TerminalProgress {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return &TerminalProgress{
		out:         termenv.NewOutput(os.Stderr),
		bar:         bar,
		interactive: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Cached reports a source that needed no transfer. The line is
// committed immediately; there is nothing to update in place.
func (p *TerminalProgress) Cached(label string) {
	if !p.interactive {
		fmt.Fprintf(os.Stderr, "cached %s\n", label)
		return
	}
	p.out.WriteString(labelStyle.Render(label) + " " + byteStyle.Render("cached") + "\n")
}

// Start begins a transfer line.
func (p *TerminalProgress) Start(label string, total int64) {
	p.label = label
	p.total = total
	p.received = 0
	p.lastDraw = time.Time{}

	if !p.interactive {
		return
	}
	p.out.HideCursor()
	p.draw()
}

// Advance adds transferred bytes and redraws at most every
// [drawInterval].
func (p *TerminalProgress) Advance(n int) {
	p.received += int64(n)

	if !p.interactive || time.Since(p.lastDraw) < drawInterval {
		return
	}
	p.draw()
}

// Done finishes the transfer line. On success the final state is
// drawn and committed with a newline; on failure the in-place line is
// cleared so the error (printed by main) is not glued to a stale bar.
func (p *TerminalProgress) Done(err error) {
	if !p.interactive {
		if err == nil {
			fmt.Fprintf(os.Stderr, "fetched %s (%s)\n", p.label, formatBytes(p.received))
		}
		return
	}

	p.out.ShowCursor()
	if err != nil {
		p.out.WriteString("\r")
		p.out.ClearLineRight()
		return
	}
	p.draw()
	p.out.WriteString("\n")
}

// draw renders the current state in place.
func (p *TerminalProgress) draw() {
	p.lastDraw = time.Now()

	p.out.WriteString("\r")
	p.out.ClearLineRight()

	line := labelStyle.Render(p.label) + " "
	if p.total > 0 {
		ratio := float64(p.received) / float64(p.total)
		if ratio > 1 {
			ratio = 1
		}
		line += p.bar.ViewAs(ratio) + " " +
			byteStyle.Render(fmt.Sprintf("%s / %s", formatBytes(p.received), formatBytes(p.total)))
	} else {
		line += byteStyle.Render(formatBytes(p.received))
	}
	p.out.WriteString(line)
}

// formatBytes renders a byte count in binary units with one decimal.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
