package view

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Dialog draws a boxed message with an OK footer, the terminal stand-in
// for the modal alert.
func Dialog(w io.Writer, title, message string) error {
	lines := append([]string{title, ""}, strings.Split(message, "\n")...)
	lines = append(lines, "", "[ OK ]")

	width := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", width+2) + "+\n"
	b.WriteString(border)
	for _, l := range lines {
		pad := width - utf8.RuneCountInString(l)
		fmt.Fprintf(&b, "| %s%s |\n", l, strings.Repeat(" ", pad))
	}
	b.WriteString(border)

	_, err := io.WriteString(w, b.String())
	return err
}
