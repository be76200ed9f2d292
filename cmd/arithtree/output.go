package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kr/pretty"

	"github.com/zephyrtronium/arithtree"
)

var (
	resultStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// printer writes results. Styles apply only when styled is set, which should
// be when w is a terminal.
type printer struct {
	w    io.Writer
	verb string

	tokens, echo, dump bool
	styled             bool
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) print(r result) {
	if p.tokens && r.toks != nil {
		fmt.Fprintln(p.w, p.style(detailStyle, formatTokens(r.toks)))
	}
	if p.echo && r.tree != nil {
		fmt.Fprintln(p.w, p.style(detailStyle, r.tree.String()))
	}
	if p.dump && r.tree != nil {
		fmt.Fprintln(p.w, p.style(detailStyle, pretty.Sprint(r.tree)))
	}
	if r.err != nil {
		fmt.Fprintln(p.w, p.style(errorStyle, formatError(r.src, r.err)))
		return
	}
	var v any = r.val
	if r.bval != nil {
		v = r.bval
	}
	fmt.Fprintln(p.w, p.style(resultStyle, fmt.Sprintf(p.verb, v)))
}

// formatTokens renders tokens like "[NUMBER 2, ADD, NUMBER 3]".
func formatTokens(toks []arithtree.Token) string {
	s := make([]string, len(toks))
	for i, tok := range toks {
		s[i] = tok.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// formatError renders an error. If the error has a position in a single-line
// source, the source is shown with a caret under the position.
func formatError(src string, err error) string {
	var ie arithtree.InputError
	src = strings.TrimRight(src, "\r\n")
	if !errors.As(err, &ie) || strings.ContainsAny(src, "\r\n") {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(src)
	b.WriteByte('\n')
	pos := ie.Position()
	for _, r := range src {
		if pos == 0 {
			break
		}
		pos--
		// Keep tabs so the caret lines up.
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ ")
	b.WriteString(err.Error())
	return b.String()
}
