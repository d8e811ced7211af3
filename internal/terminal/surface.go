// Package terminal renders view descriptions as plain or styled text.
package terminal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/biobuilder/internal/controller"
	"github.com/ziadkadry99/biobuilder/internal/state"
	"github.com/ziadkadry99/biobuilder/internal/view"
)

// Section selects which parts of the screen a Surface prints.
type Section uint8

const (
	ShowModels Section = 1 << iota
	ShowDocuments
	ShowLayout
	ShowTranscript
	ShowExtraction

	ShowAll = ShowModels | ShowDocuments | ShowLayout | ShowTranscript | ShowExtraction
)

// maxFilename is the display width for document names.
const maxFilename = 48

var _ controller.Surface = (*Surface)(nil)

// Surface prints to a terminal. Alerts and busy labels go to errOut so
// command output stays clean.
type Surface struct {
	out       io.Writer
	errOut    io.Writer
	exportDir string
	show      Section
	printed   map[string]bool

	bold   func(interface{}) string
	italic func(interface{}) string
	faint  func(interface{}) string
	alert  func(interface{}) string
	accent func(interface{}) string
}

// Option configures a Surface.
type Option func(*Surface)

// WithExportDir sets where downloads are written.
func WithExportDir(dir string) Option {
	return func(s *Surface) { s.exportDir = dir }
}

// WithSections limits output to the given sections.
func WithSections(show Section) Option {
	return func(s *Surface) { s.show = show }
}

// WithColor turns ANSI styling on or off.
func WithColor(on bool) Option {
	return func(s *Surface) {
		if !on {
			s.bold, s.italic, s.faint, s.alert, s.accent = plain, plain, plain, plain, plain
			return
		}
		s.bold = promptui.Styler(promptui.FGBold)
		s.italic = promptui.Styler(promptui.FGItalic)
		s.faint = promptui.Styler(promptui.FGFaint)
		s.alert = promptui.Styler(promptui.FGRed, promptui.FGBold)
		s.accent = promptui.Styler(promptui.FGCyan)
	}
}

func plain(v interface{}) string { return fmt.Sprint(v) }

// New creates a surface that shows every section, styled.
func New(out, errOut io.Writer, opts ...Option) *Surface {
	s := &Surface{
		out:       out,
		errOut:    errOut,
		exportDir: ".",
		show:      ShowAll,
		printed:   make(map[string]bool),
	}
	WithColor(true)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Show replaces the set of printed sections.
func (s *Surface) Show(sections Section) { s.show = sections }

func (s *Surface) enabled(sec Section) bool { return s.show&sec != 0 }

func (s *Surface) Alert(msg string) {
	fmt.Fprintln(s.errOut, s.alert("! "+msg))
}

func (s *Surface) ShowBusy(label string) {
	fmt.Fprintln(s.errOut, s.faint(label))
}

func (s *Surface) HideBusy() {}

func (s *Surface) ClearQuestion() {}

func (s *Surface) RenderModels(v view.ModelSelector) {
	if !s.enabled(ShowModels) {
		return
	}
	fmt.Fprintln(s.out, s.bold("Models"))
	if v.Placeholder != "" {
		fmt.Fprintln(s.out, "  "+s.faint(v.Placeholder))
		return
	}
	if len(v.Options) == 0 {
		fmt.Fprintln(s.out, "  "+s.faint("none available"))
		return
	}
	for _, o := range v.Options {
		marker := " "
		if o.Selected {
			marker = s.accent("*")
		}
		fmt.Fprintf(s.out, "%s %s  %s\n", marker, o.ID, s.faint(o.Name))
	}
}

func (s *Surface) RenderDocuments(v view.DocumentList) {
	if !s.enabled(ShowDocuments) {
		return
	}
	fmt.Fprintln(s.out, s.bold("Documents"))
	if v.Empty() {
		fmt.Fprintln(s.out, "  "+s.faint(v.EmptyText))
		return
	}
	for _, r := range v.Rows {
		fmt.Fprintf(s.out, "  %s  %s  %s\n", s.faint(r.ID), Truncate(r.Filename, maxFilename), r.WordCount)
	}
}

func (s *Surface) RenderLayout(v view.Layout) {
	if !s.enabled(ShowLayout) {
		return
	}
	for _, tab := range v.Tabs {
		if tab.Active {
			fmt.Fprintf(s.out, "Mode: %s\n", s.accent(tab.Label))
		}
	}
}

// RenderTranscript prints entries not printed before. Pending placeholders
// are skipped since the busy label already covers them and printed lines
// cannot be taken back.
func (s *Surface) RenderTranscript(v view.Transcript) {
	if !s.enabled(ShowTranscript) {
		return
	}
	for _, e := range v.Entries {
		if e.Pending || s.printed[e.ID] {
			continue
		}
		s.printed[e.ID] = true
		who := "You"
		if e.Author == state.AuthorBot {
			who = "BioBuilder"
		}
		fmt.Fprintf(s.out, "%s\n%s\n", s.bold(who+":"), s.rich(e.Body, "  "))
		if e.Meta != "" {
			fmt.Fprintln(s.out, "  "+s.faint(e.Meta))
		}
		fmt.Fprintln(s.out)
	}
}

func (s *Surface) RenderExtraction(v view.ExtractionPanel) {
	if !s.enabled(ShowExtraction) {
		return
	}
	if v.Error != "" {
		fmt.Fprintln(s.out, s.alert(v.Error))
		return
	}
	if v.Status != "" {
		fmt.Fprintln(s.out, s.faint(v.Status))
		return
	}

	entities, relations := v.Visible()
	if v.EntitiesHeading != "" {
		fmt.Fprintln(s.out, s.bold(v.EntitiesHeading))
		for _, e := range v.Entities {
			if !e.Hidden {
				s.entity(e)
			}
		}
		fmt.Fprintln(s.out)
	}
	if v.RelationsHeading != "" {
		fmt.Fprintln(s.out, s.bold(v.RelationsHeading))
		for _, r := range v.Relations {
			if !r.Hidden {
				s.relation(r)
			}
		}
		fmt.Fprintln(s.out)
	}
	if strings.TrimSpace(v.Filter) != "" {
		fmt.Fprintf(s.out, "Filter %q: showing %d of %d entities, %d of %d relationships\n",
			v.Filter, entities, len(v.Entities), relations, len(v.Relations))
	}
	if v.Meta != "" {
		fmt.Fprintln(s.out, s.faint(v.Meta))
	}
}

func (s *Surface) entity(e view.EntityCard) {
	line := "  " + s.bold(e.Name) + " " + s.accent("("+e.Type+")")
	if len(e.Aliases) > 0 {
		line += " " + s.faint("aka "+strings.Join(e.Aliases, ", "))
	}
	fmt.Fprintln(s.out, line)
	if e.Description != "" {
		fmt.Fprintln(s.out, "    "+e.Description)
	}
}

func (s *Surface) relation(r view.RelationCard) {
	fmt.Fprintf(s.out, "  %s → %s %s\n", s.bold(r.Source), s.bold(r.Target), s.accent("["+r.Type+"]"))
	if r.Description != "" {
		fmt.Fprintln(s.out, "    "+r.Description)
	}
	if r.Evidence != "" {
		fmt.Fprintln(s.out, "    "+s.italic(`"`+r.Evidence+`"`))
	}
}

// Download writes data into the export directory.
func (s *Surface) Download(filename string, data []byte) error {
	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(s.exportDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
	return nil
}

// rich renders formatted text with every line indented by prefix.
func (s *Surface) rich(r view.RichText, prefix string) string {
	paras := make([]string, 0, len(r))
	for _, p := range r {
		lines := make([]string, 0, len(p))
		for _, l := range p {
			var b strings.Builder
			for _, span := range l {
				t := span.Text
				if span.Italic {
					t = s.italic(t)
				}
				if span.Bold {
					t = s.bold(t)
				}
				b.WriteString(t)
			}
			lines = append(lines, prefix+b.String())
		}
		paras = append(paras, strings.Join(lines, "\n"))
	}
	return strings.Join(paras, "\n\n")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}
