// Package ui prints fanchart's command-line output: coloured status lines on
// stderr and listings on stdout.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/papapumpkin/fanchart/internal/ansi"
)

// Printer writes status lines to Err and listings to Out.
type Printer struct {
	Out io.Writer
	Err io.Writer
	// Verbose enables Debug lines.
	Verbose bool
}

// New returns a printer on the process's stdout and stderr.
func New() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

// NewWith returns a printer on the given writers.
func NewWith(out, err io.Writer) *Printer {
	return &Printer{Out: out, Err: err}
}

// Banner prints the viewer banner.
func (p *Printer) Banner() {
	fmt.Fprintln(p.Err, ansi.Bold+ansi.Cyan+"  ╔═════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(p.Err, ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset+ansi.Bold+"   FANCHART  "+ansi.Dim+"ancestor fans"+ansi.Reset+ansi.Bold+ansi.Cyan+"   ║"+ansi.Reset)
	fmt.Fprintln(p.Err, ansi.Bold+ansi.Cyan+"  ╚═════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(p.Err)
}

// Error prints msg as an error.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.Err, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// Warn prints msg as a warning.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.Err, ansi.Yellow+ansi.Bold+"⚠ "+ansi.Reset+"%s\n", msg)
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.Err, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Debug prints msg only in verbose mode.
func (p *Printer) Debug(format string, args ...any) {
	if !p.Verbose {
		return
	}
	fmt.Fprintf(p.Err, ansi.Dim+"debug: "+format+ansi.Reset+"\n", args...)
}

// Success prints msg with a check mark.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.Err, ansi.Green+ansi.Bold+"✓ "+ansi.Reset+"%s\n", msg)
}

// DatabaseReady reports an opened or created database.
func (p *Printer) DatabaseReady(path string, people, families int) {
	fmt.Fprintf(p.Err, ansi.Green+ansi.Bold+"✓ database"+ansi.Reset+" %s "+ansi.Dim+"(%s, %s)"+ansi.Reset+"\n",
		path, count(people, "person", "people"), count(families, "family", "families"))
}

// Imported reports the result of an import.
func (p *Printer) Imported(file string, people, families, templates int) {
	fmt.Fprintf(p.Err, ansi.Green+ansi.Bold+"✓ imported"+ansi.Reset+" %s: %s, %s, %s\n", file,
		count(people, "person", "people"), count(families, "family", "families"), count(templates, "template", "templates"))
}

// Rendered reports a written chart image.
func (p *Printer) Rendered(path string, w, h int, size int64) {
	fmt.Fprintf(p.Err, ansi.Green+ansi.Bold+"✓ rendered"+ansi.Reset+" %s "+ansi.Dim+"(%d×%d, %s)"+ansi.Reset+"\n",
		path, w, h, humanize.Bytes(uint64(max(size, 0))))
}

func count(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return humanize.Comma(int64(n)) + " " + many
}
