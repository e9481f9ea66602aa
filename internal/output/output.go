// Package output renders search reports for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/Aman-CERP/grrep/internal/search"
)

// Format selects the report rendering.
type Format string

const (
	// FormatText renders grep-style path:line:text lines.
	FormatText Format = "text"
	// FormatJSON renders the report as indented JSON.
	FormatJSON Format = "json"
)

// Options configures a report writer.
type Options struct {
	// Format is text or json.
	Format Format
	// Color is auto, always, or never. Auto enables color only when the
	// destination is a terminal.
	Color string
	// ShowLineNumbers includes the line number in text output.
	ShowLineNumbers bool
	// Query is the search pattern, used to highlight matches.
	Query string
	// IgnoreCase matches the search's case sensitivity so highlighting
	// finds the same occurrences the matcher did.
	IgnoreCase bool
}

// Writer renders reports.
type Writer struct {
	out  io.Writer
	opts Options

	useColor   bool
	pathStyle  lipgloss.Style
	lineStyle  lipgloss.Style
	matchStyle lipgloss.Style
}

// New creates a report writer for out.
func New(out io.Writer, opts Options) *Writer {
	if opts.Format == "" {
		opts.Format = FormatText
	}

	w := &Writer{out: out, opts: opts}

	switch opts.Color {
	case "always":
		w.useColor = true
	case "never":
		w.useColor = false
	default:
		if f, ok := out.(*os.File); ok {
			w.useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	if w.useColor {
		// Bind styles to the destination writer; force ANSI for
		// "always" so redirected output still carries color.
		renderer := lipgloss.NewRenderer(out)
		if opts.Color == "always" {
			renderer.SetColorProfile(termenv.ANSI)
		}
		w.pathStyle = renderer.NewStyle().Foreground(lipgloss.Color("5"))
		w.lineStyle = renderer.NewStyle().Foreground(lipgloss.Color("2"))
		w.matchStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	}

	return w
}

// WriteReport renders the report in the configured format.
func (w *Writer) WriteReport(r *search.Report) error {
	if w.opts.Format == FormatJSON {
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	for _, fm := range r.Matches {
		for _, m := range fm.Matches {
			if err := w.writeLine(fm.Path, m.Line, m.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteErrors renders the per-file error summary, typically to stderr.
func (w *Writer) WriteErrors(out io.Writer, r *search.Report) {
	if len(r.Errors) == 0 {
		return
	}
	_, _ = fmt.Fprintf(out, "grrep: %d path(s) could not be processed:\n", len(r.Errors))
	for _, fe := range r.Errors {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", fe.Path, fe.Error)
	}
}

func (w *Writer) writeLine(path string, line int, text string) error {
	p := path
	if w.useColor {
		p = w.pathStyle.Render(path)
	}

	body := w.highlight(text)

	var err error
	if w.opts.ShowLineNumbers {
		n := fmt.Sprintf("%d", line)
		if w.useColor {
			n = w.lineStyle.Render(n)
		}
		_, err = fmt.Fprintf(w.out, "%s:%s:%s\n", p, n, body)
	} else {
		_, err = fmt.Fprintf(w.out, "%s:%s\n", p, body)
	}
	return err
}

// highlight wraps every occurrence of the query in the match style.
func (w *Writer) highlight(text string) string {
	if !w.useColor || w.opts.Query == "" {
		return text
	}

	haystack := text
	needle := w.opts.Query
	if w.opts.IgnoreCase {
		haystack = strings.ToLower(text)
		needle = strings.ToLower(needle)
	}

	var b strings.Builder
	start := 0
	for {
		i := strings.Index(haystack[start:], needle)
		if i < 0 {
			b.WriteString(text[start:])
			return b.String()
		}
		i += start
		b.WriteString(text[start:i])
		b.WriteString(w.matchStyle.Render(text[i : i+len(needle)]))
		start = i + len(needle)
	}
}
