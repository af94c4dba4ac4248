// Package console prints the human-readable progress of a run.
package console

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Marker prefixes a progress line.
type Marker int

const (
	Start Marker = iota
	Package
	OK
	Fail
	Done
	Share
)

var fancyMarkers = map[Marker]string{
	Start: "🎨", Package: "📦", OK: "✅", Fail: "❌", Done: "🎉", Share: "📤",
}

var plainMarkers = map[Marker]string{
	Start: "==>", Package: "==>", OK: "[ok]", Fail: "[error]", Done: "[done]", Share: "-->",
}

// Printer writes progress to Out and failures to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Fancy bool // emoji markers instead of ASCII
}

// New returns a Printer on stdout/stderr, using emoji only when stdout is a
// terminal.
func New() *Printer {
	return &Printer{
		Out:   os.Stdout,
		Err:   os.Stderr,
		Fancy: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (p *Printer) marker(m Marker) string {
	if p.Fancy {
		return fancyMarkers[m]
	}
	return plainMarkers[m]
}

// Say prints a marked line to Out.
func (p *Printer) Say(m Marker, format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", p.marker(m), fmt.Sprintf(format, args...))
}

// Line prints an unmarked line to Out.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.Out, format+"\n", args...)
}

// Blank prints an empty line to Out.
func (p *Printer) Blank() {
	fmt.Fprintln(p.Out)
}

// Fail prints a marked line to Err.
func (p *Printer) Fail(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", p.marker(Fail), fmt.Sprintf(format, args...))
}

// Warn prints an unmarked line to Err.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.Err, "Warning: "+format+"\n", args...)
}
