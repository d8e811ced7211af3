package view

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Span is a run of text with uniform emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Line is a sequence of spans ended by a line break.
type Line []Span

// Paragraph is a block of lines separated from its neighbours by a blank line.
type Paragraph []Line

// RichText is formatted message content, independent of any surface.
type RichText []Paragraph

// inlineMarkup only knows paragraphs and emphasis, so list markers,
// headings and the like stay literal text.
var inlineMarkup = parser.NewParser(
	parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 100)),
	parser.WithInlineParsers(util.Prioritized(parser.NewEmphasisParser(), 100)),
)

// FormatText applies the message markup: blank lines split paragraphs,
// single newlines break lines, **x** is bold and *x* is italic.
func FormatText(s string) RichText {
	source := []byte(unindent(s))
	doc := inlineMarkup.Parse(text.NewReader(source))

	f := &flattener{source: source}
	_ = ast.Walk(doc, f.visit)
	return f.out
}

// unindent strips leading blanks from every line. An indented line would
// otherwise start a code block, which the paragraph-only parser discards.
func unindent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	return strings.Join(lines, "\n")
}

type flattener struct {
	source []byte
	out    RichText
	bold   int
	italic int
}

func (f *flattener) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Paragraph:
		if entering {
			f.out = append(f.out, Paragraph{Line{}})
		} else if last := f.out[len(f.out)-1]; len(last) > 1 && len(last[len(last)-1]) == 0 {
			f.out[len(f.out)-1] = last[:len(last)-1]
		}
	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if node.Level >= 2 {
			f.bold += delta
		} else {
			f.italic += delta
		}
	case *ast.Text:
		if entering {
			f.add(resolveReferences(node.Segment.Value(f.source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				f.breakLine()
			}
		}
	case *ast.String:
		if entering {
			f.add(string(node.Value))
		}
	}
	return ast.WalkContinue, nil
}

// resolveReferences turns entity and numeric references such as &amp; or
// &#916; into the characters they name.
func resolveReferences(b []byte) string {
	return string(util.ResolveNumericReferences(util.ResolveEntityNames(b)))
}

func (f *flattener) add(s string) {
	if s == "" {
		return
	}
	if len(f.out) == 0 {
		f.out = append(f.out, Paragraph{Line{}})
	}
	para := f.out[len(f.out)-1]
	line := para[len(para)-1]
	span := Span{Text: s, Bold: f.bold > 0, Italic: f.italic > 0}
	if n := len(line); n > 0 && line[n-1].Bold == span.Bold && line[n-1].Italic == span.Italic {
		line[n-1].Text += s
	} else {
		line = append(line, span)
	}
	para[len(para)-1] = line
}

func (f *flattener) breakLine() {
	if len(f.out) == 0 {
		return
	}
	last := len(f.out) - 1
	f.out[last] = append(f.out[last], Line{})
}

// Plain returns the text without emphasis markers.
func (r RichText) Plain() string {
	paras := make([]string, 0, len(r))
	for _, p := range r {
		lines := make([]string, 0, len(p))
		for _, l := range p {
			var b strings.Builder
			for _, s := range l {
				b.WriteString(s.Text)
			}
			lines = append(lines, b.String())
		}
		paras = append(paras, strings.Join(lines, "\n"))
	}
	return strings.Join(paras, "\n\n")
}

// HTML renders the text as escaped HTML using <p>, <br>, <strong> and <em>.
func (r RichText) HTML() string {
	var b strings.Builder
	for _, p := range r {
		b.WriteString("<p>")
		for i, l := range p {
			if i > 0 {
				b.WriteString("<br>")
			}
			for _, s := range l {
				t := html.EscapeString(s.Text)
				if s.Italic {
					t = "<em>" + t + "</em>"
				}
				if s.Bold {
					t = "<strong>" + t + "</strong>"
				}
				b.WriteString(t)
			}
		}
		b.WriteString("</p>")
	}
	return b.String()
}
