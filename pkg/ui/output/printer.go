package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/arthur-debert/makecatalogs/pkg/ui/output/styles"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Printer renders progress and report messages.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	outColor bool
	errColor bool
}

// NewPrinter returns a Printer writing progress to out and messages to errOut.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{
		out:      out,
		errOut:   errOut,
		outColor: ColorEnabled(out),
		errColor: ColorEnabled(errOut),
	}
}

// Discard returns a Printer that writes nothing.
func Discard() *Printer {
	return NewPrinter(io.Discard, io.Discard)
}

// ColorEnabled reports whether styled output should be written to w: w must
// be a terminal and NO_COLOR must be unset.
func ColorEnabled(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *Printer) render(color bool, style, text string) string {
	if !color {
		return text
	}
	return styles.GetStyle(style).Render(text)
}

// Hashing reports an icon being fingerprinted.
func (p *Printer) Hashing(iconPath string) {
	fmt.Fprintln(p.out, p.render(p.outColor, "Progress", "Hashing "+iconPath+"..."))
}

// Adding reports a descriptor being added to a catalog.
func (p *Printer) Adding(descriptorPath, catalog string) {
	line := fmt.Sprintf("Adding %s to %s...", descriptorPath, p.render(p.outColor, "Catalog", catalog))
	fmt.Fprintln(p.out, line)
}

// Created reports a catalog file written to storage.
func (p *Printer) Created(catalogPath string) {
	fmt.Fprintln(p.out, p.render(p.outColor, "Success", "Created "+catalogPath+"..."))
}

// Messages writes report entries to the error stream as one block,
// preceded by a blank line. Nothing is written for an empty slice.
func (p *Printer) Messages(entries []report.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(p.errOut)
	for _, e := range entries {
		style := "Warning"
		if e.Severity == report.Failure {
			style = "Error"
		}
		msg := strings.ToValidUTF8(e.Message, "�")
		fmt.Fprintln(p.errOut, p.render(p.errColor, style, msg))
	}
}
