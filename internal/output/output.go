// Package output provides context-aware primary output for prep.
// Stdout carries primary data (check results, step banners, paths);
// diagnostics go to stderr via the log package. The styled helpers
// (Pass, Fail, Success, Muted) are the only way commands render result
// lines, so all surfaces stay visually consistent.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bkrems/prep/internal/ui/styles"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, &Printer{w: w})
}

// FromContext retrieves the Printer from the context, or a Printer
// writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return &Printer{w: os.Stdout}
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Pass writes a passed-check line with a success mark.
func (p *Printer) Pass(text string) {
	fmt.Fprintln(p.w, styles.Pass(text))
}

// Fail writes a failed-check line with a cross mark.
func (p *Printer) Fail(text string) {
	fmt.Fprintln(p.w, styles.Fail(text))
}

// Success writes a final result line.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.w, styles.SuccessStyle.Render(text))
}

// Muted writes a de-emphasized hint line.
func (p *Printer) Muted(text string) {
	fmt.Fprintln(p.w, styles.MutedStyle.Render(text))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
