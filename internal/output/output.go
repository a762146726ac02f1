// Package output renders hidewatch's user-facing terminal output.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/hidewatch/hidewatch/internal/scan"
)

// Reporter prints per-entry outcomes and pass summaries.
// Errors from writing are intentionally ignored for console output.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	tty    bool
	dryRun bool

	hidden *color.Color
	would  *color.Color
	failed *color.Color
	notice *color.Color
}

// Options configures a Reporter.
type Options struct {
	// DryRun switches per-entry lines from "hid" to "would hide".
	DryRun bool

	// ErrOut receives error lines. Defaults to the main writer.
	ErrOut io.Writer
}

// New returns a Reporter writing to out. Colors and tables are used
// only when out is a terminal.
func New(out io.Writer, opts Options) *Reporter {
	tty := false
	if f, ok := out.(*os.File); ok {
		fd := f.Fd()
		tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	errOut := opts.ErrOut
	if errOut == nil {
		errOut = out
	}

	r := &Reporter{
		out:    out,
		errOut: errOut,
		tty:    tty,
		dryRun: opts.DryRun,
		hidden: color.New(color.FgGreen),
		would:  color.New(color.FgCyan),
		failed: color.New(color.FgRed),
		notice: color.New(color.FgYellow),
	}
	if !tty {
		for _, c := range []*color.Color{r.hidden, r.would, r.failed, r.notice} {
			c.DisableColor()
		}
	}
	return r
}

// Hidden reports that path was hidden and now lives at result.
func (r *Reporter) Hidden(path, result string) {
	if r.dryRun {
		_, _ = r.would.Fprintf(r.out, "would hide %s\n", path)
		return
	}
	if result != path {
		_, _ = r.hidden.Fprintf(r.out, "hid %s -> %s\n", path, result)
		return
	}
	_, _ = r.hidden.Fprintf(r.out, "hid %s\n", path)
}

// Failed reports that processing path failed. The path is part of the
// error message already, so only the error is printed.
func (r *Reporter) Failed(path string, err error) {
	_, _ = r.failed.Fprintf(r.errOut, "error: %v\n", err)
}

// Noticef prints an operator-facing notice line.
func (r *Reporter) Noticef(format string, args ...any) {
	_, _ = r.notice.Fprintf(r.out, format+"\n", args...)
}

// Summary renders the result of the one-shot pass, one row per root.
// Terminals get a table; everything else gets greppable lines.
func (r *Reporter) Summary(summaries []scan.Summary) {
	if len(summaries) == 0 {
		return
	}
	if !r.tty {
		for _, s := range summaries {
			_, _ = fmt.Fprintf(r.out, "root=%s entries=%d matched=%d errors=%d\n",
				s.Root, s.Entries, s.Matched, s.Errors)
		}
		return
	}
	r.renderTable(summaries)
}

func (r *Reporter) renderTable(summaries []scan.Summary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(r.out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Root", "Entries", "Matched", "Errors"})

	var entries, matched, failures int
	for _, s := range summaries {
		tw.AppendRow(table.Row{s.Root, s.Entries, s.Matched, s.Errors})
		entries += s.Entries
		matched += s.Matched
		failures += s.Errors
	}
	if len(summaries) > 1 {
		tw.AppendFooter(table.Row{"Total", entries, matched, failures})
	}
	tw.Render()
}
