// Package printer renders user-facing command output with consistent
// styling. Commands pull the printer from the context so tests can capture
// output.
package printer

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/HiddenStrawberry/anubis-discuss/internal/core/styles"
)

type ctxKey struct{}

// Printer writes styled status lines.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// WithCtx attaches a printer to the context.
func WithCtx(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer attached to the context, or a stdout printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Successf writes a line with a success glyph.
func (p *Printer) Successf(format string, a ...any) {
	p.glyph("✓", styles.ColorSuccess, format, a...)
}

// Infof writes a line with an info glyph.
func (p *Printer) Infof(format string, a ...any) {
	p.glyph("•", styles.ColorPrimary, format, a...)
}

// Errorf writes a line with an error glyph.
func (p *Printer) Errorf(format string, a ...any) {
	p.glyph("✗", styles.ColorError, format, a...)
}

// Success writes a success line followed by indented detail lines.
func (p *Printer) Success(msg string, details ...string) {
	p.Successf("%s", msg)
	for _, d := range details {
		p.Printf("  %s", d)
	}
}

func (p *Printer) glyph(glyph string, c color.Color, format string, a ...any) {
	prefix := lipgloss.NewStyle().Foreground(c).Render(glyph)
	fmt.Fprintf(p.out, prefix+" "+format+"\n", a...)
}
