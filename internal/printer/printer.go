// Package printer writes human oriented status output for the CLI.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hay-kot/criterio"
	"github.com/hay-kot/randoid/internal/styles"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer io.Writer
}

// New creates a new Printer that writes to the given writer
func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.writer, s+"\n")
}

// FatalError prints a formatted error box and does NOT exit.
// Caller should handle exit code.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	bar := styles.ErrorStyle.Render("│")
	p.line(styles.ErrorStyle.Render("╭ Error"))
	for _, msg := range strings.Split(err.Error(), "\n") {
		p.line(bar + " " + styles.MutedStyle.Render(msg))
	}
	p.line(styles.ErrorStyle.Render("╵"))
}

// printValidationErrors lists each field error under the wrapping context,
// e.g. "load config: invalid config".
func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	errStr := wrappedErr.Error()
	fieldErrStr := fieldErrs.Error()

	errContext := ""
	if idx := strings.Index(errStr, fieldErrStr); idx > 0 {
		errContext = strings.TrimSuffix(errStr[:idx], ": ")
	}

	bar := styles.ErrorStyle.Render("│")
	p.line(styles.ErrorStyle.Render("╭ Validation Error"))

	if errContext != "" {
		p.line(bar + " " + styles.MutedStyle.Render(errContext))
		p.line(bar)
	}

	for _, fe := range fieldErrs {
		l := bar + " " + styles.ErrorStyle.Render(Cross) + " "
		if fe.Field != "" {
			l += styles.MutedStyle.Render(fe.Field + ": ")
		}
		p.line(l + fe.Err.Error())
	}

	p.line(styles.ErrorStyle.Render("╵"))
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render(Cross + " " + fmt.Sprintf(format, args...)))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render(Check + " " + fmt.Sprintf(format, args...)))
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.MutedStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarnStyle.Render(Dot + " " + fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.line(styles.SectionStyle.Render(title))
}

// KeyValue prints an aligned label and value pair.
func (p *Printer) KeyValue(label string, value any) {
	p.line("  " + styles.MutedStyle.Render(fmt.Sprintf("%-16s", label)) + " " + fmt.Sprint(value))
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.printItem(styles.SuccessStyle, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.printItem(styles.WarnStyle, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.printItem(styles.ErrorStyle, Cross, label, detail)
}

func (p *Printer) printItem(style lipgloss.Style, symbol, label, detail string) {
	l := "  " + style.Render(symbol) + " " + label
	if detail != "" {
		l += ": " + detail
	}
	p.line(l)
}
