// Package shell is the interactive line-oriented front end. Slash commands
// map to controller actions; anything else is a question in Q&A mode or a
// result filter in extraction mode.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ziadkadry99/biobuilder/internal/controller"
	"github.com/ziadkadry99/biobuilder/internal/state"
)

const helpText = `Commands:
  /docs                          reload documents and models
  /upload <path|glob>...         upload PDF or TXT files, one at a time
  /delete <id>...                delete documents
  /models                        list models
  /model <id>                    use a model for questions and extraction
  /mode qa|extraction            switch panels
  /extract [genes=<list>] [relations=<list>]
                                 extract genes, proteins and relationships
  /filter [text]                 filter extraction results (blank clears)
  /export json|csv               save the last extraction result
  /help                          show this help
  /quit                          leave the shell
In qa mode any other line is a question; in extraction mode it filters results.
`

// ErrQuit ends the loop.
var ErrQuit = errors.New("quit")

// Shell reads commands from in and drives actions.
type Shell struct {
	actions controller.Actions
	in      *bufio.Reader
	out     io.Writer
	mode    state.Mode
}

// New creates a shell. The controller must already be started.
func New(actions controller.Actions, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		actions: actions,
		in:      bufio.NewReader(in),
		out:     out,
		mode:    state.ModeQA,
	}
}

// Run reads lines until /quit, end of input or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Type /help for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprintf(s.out, "%s> ", s.mode)
		line, err := s.in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if execErr := s.Execute(ctx, line); errors.Is(execErr, ErrQuit) {
				return nil
			}
		}
		if err == io.EOF {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

// Execute runs one input line. Action failures are already shown by the
// surface, so they are returned only for callers that want them.
func (s *Shell) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		if s.mode == state.ModeExtraction {
			s.actions.FilterResults(line)
			return nil
		}
		return s.actions.AskQuestion(ctx, line)
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "/help", "/?":
		fmt.Fprint(s.out, helpText)
	case "/quit", "/exit":
		return ErrQuit
	case "/docs", "/models", "/refresh":
		s.actions.Refresh(ctx)
	case "/upload":
		if len(args) == 0 {
			return s.usage("/upload <path|glob>...")
		}
		paths, err := controller.ExpandPaths(args)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return err
		}
		return s.actions.UploadFiles(ctx, paths)
	case "/delete":
		if len(args) == 0 {
			return s.usage("/delete <id>...")
		}
		var errs []error
		for _, id := range args {
			errs = append(errs, s.actions.DeleteDocument(ctx, id))
		}
		return errors.Join(errs...)
	case "/model":
		if len(args) != 1 {
			return s.usage("/model <id>")
		}
		return s.actions.SelectModel(args[0])
	case "/mode":
		if len(args) != 1 {
			return s.usage("/mode qa|extraction")
		}
		if err := s.actions.SwitchMode(args[0]); err != nil {
			return err
		}
		s.mode = state.Mode(strings.ToLower(args[0]))
	case "/extract":
		genes, relations, err := ParseExtractArgs(rest)
		if err != nil {
			return s.usage("/extract [genes=<list>] [relations=<list>]")
		}
		return s.actions.ExtractEntities(ctx, genes, relations)
	case "/filter":
		s.actions.FilterResults(rest)
	case "/export":
		if len(args) != 1 {
			return s.usage("/export json|csv")
		}
		file, err := s.actions.ExportResults(args[0])
		if err == nil && file == "" {
			fmt.Fprintln(s.out, "Nothing to export yet; run /extract first.")
		}
		return err
	default:
		fmt.Fprintf(s.out, "Unknown command %s. Type /help for commands.\n", name)
		return fmt.Errorf("unknown command %s", name)
	}
	return nil
}

func (s *Shell) usage(u string) error {
	fmt.Fprintln(s.out, "Usage: "+u)
	return fmt.Errorf("usage: %s", u)
}

// ParseExtractArgs splits "genes=TP53, BRCA1 relations=inhibits" into its
// two comma-separated lists. A value runs until the next key, so lists may
// contain spaces.
func ParseExtractArgs(s string) (genes, relations string, err error) {
	values := map[string][]string{}
	key := ""
	for _, tok := range strings.Fields(s) {
		if k, v, ok := strings.Cut(tok, "="); ok && (k == "genes" || k == "relations") {
			key = k
			tok = v
		} else if key == "" {
			return "", "", fmt.Errorf("unexpected %q: expected genes= or relations=", tok)
		}
		values[key] = append(values[key], tok)
	}
	return strings.Join(values["genes"], " "), strings.Join(values["relations"], " "), nil
}
