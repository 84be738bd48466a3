package prompt

import (
	"io"

	"github.com/muesli/termenv"
)

// styles renders prompt decorations. With color disabled every style is a
// no-op and output is plain text.
type styles struct {
	out *termenv.Output
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
	}
	return styles{out: termenv.NewOutput(w)}
}

func (s styles) progress(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#818cf8")).String()
}

func (s styles) title(text string) string {
	return s.out.String(text).Bold().String()
}

func (s styles) hint(text string) string {
	return s.out.String(text).Faint().String()
}

func (s styles) problem(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#fb7185")).String()
}
