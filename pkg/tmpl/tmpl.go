// Package tmpl renders the output templates applied to generated identifiers.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// shellQuote wraps s in single quotes so a shell reads it literally. Embedded
// single quotes close the quoted run, emit an escaped quote, then reopen it.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	escaped := strings.ReplaceAll(s, "'", `'\''`)
	return "'" + escaped + "'"
}

// chunk splits s into groups of n characters joined by sep. It is used to make
// long identifiers easier to read aloud, e.g. "abcd-efgh-ij".
func chunk(n int, sep, s string) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + (len(s)/n)*len(sep))
	count := 0
	for _, r := range s {
		if count > 0 && count%n == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}

var funcs = template.FuncMap{
	"shq":   shellQuote,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"chunk": chunk,
}

// Parse compiles tmpl without executing it.
func Parse(tmpl string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - shq: Shell-quote a string for safe use in shell commands
//   - upper, lower: change case
//   - chunk N SEP: split into groups of N characters joined by SEP
func Render(tmpl string, data any) (string, error) {
	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}
	return Execute(t, data)
}

// Execute runs a parsed template. Use it with Parse when rendering the same
// template for many identifiers.
func Execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
