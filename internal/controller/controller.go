// Package controller mediates between user actions, the BioBuilder API and
// whatever surface displays the result.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/export"
	"github.com/ziadkadry99/biobuilder/internal/progress"
	"github.com/ziadkadry99/biobuilder/internal/state"
	"github.com/ziadkadry99/biobuilder/internal/view"
)

// Guard messages shown when an action cannot run.
const (
	MsgEnterQuestion = "Please enter a question"
	MsgNeedDocuments = "Please upload at least one document first"
)

var (
	ErrEmptyQuestion = errors.New("empty question")
	ErrNoDocuments   = errors.New("no documents uploaded")
)

// Backend is the remote API. *api.Client implements it.
type Backend interface {
	ListModels(ctx context.Context) ([]api.Model, error)
	ListDocuments(ctx context.Context) ([]api.Document, error)
	UploadDocument(ctx context.Context, filename string, content io.Reader) (api.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	Ask(ctx context.Context, req api.AskRequest) (*api.Answer, error)
	Extract(ctx context.Context, req api.ExtractionRequest) (*api.ExtractionResult, error)
}

// Surface displays view descriptions and talks to the user.
type Surface interface {
	// Alert is a blocking, user-visible notice.
	Alert(msg string)
	ShowBusy(label string)
	HideBusy()
	RenderModels(v view.ModelSelector)
	RenderDocuments(v view.DocumentList)
	RenderLayout(v view.Layout)
	RenderTranscript(v view.Transcript)
	RenderExtraction(v view.ExtractionPanel)
	ClearQuestion()
	// Download hands a generated file to the user.
	Download(filename string, data []byte) error
}

// Actions is every user action the client responds to. Methods block until
// the action, including any request, has completed; failures are reported
// on the surface and also returned.
type Actions interface {
	Start(ctx context.Context)
	Refresh(ctx context.Context)
	UploadFiles(ctx context.Context, paths []string) error
	DeleteDocument(ctx context.Context, id string) error
	SelectModel(id string) error
	SwitchMode(mode string) error
	AskQuestion(ctx context.Context, question string) error
	ExtractEntities(ctx context.Context, genes, relations string) error
	FilterResults(query string)
	ExportResults(format string) (string, error)
}

var _ Actions = (*Controller)(nil)

// Controller implements Actions. It owns its state and must be driven from
// a single goroutine.
type Controller struct {
	backend        Backend
	surface        Surface
	state          *state.State
	progress       progress.Reporter
	logger         *slog.Logger
	preferredModel string
	now            func() time.Time

	panel view.ExtractionPanel
}

// Option configures a Controller.
type Option func(*Controller)

// WithProgress reports upload queue progress.
func WithProgress(r progress.Reporter) Option {
	return func(c *Controller) { c.progress = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithPreferredModel selects id at startup when the server lists it.
func WithPreferredModel(id string) Option {
	return func(c *Controller) { c.preferredModel = id }
}

// WithClock overrides the clock used for export file names.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller. Call Start before any other action.
func New(backend Backend, surface Surface, opts ...Option) *Controller {
	c := &Controller{
		backend:  backend,
		surface:  surface,
		state:    state.New(),
		progress: progress.Nop{},
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		panel:    view.RenderExtractionIdle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State exposes the controller's state for inspection.
func (c *Controller) State() *state.State { return c.state }

// Start resets state, loads models and documents and renders everything.
// A failed load degrades to a placeholder and does not stop the other.
func (c *Controller) Start(ctx context.Context) {
	c.state.Reset()
	c.panel = view.RenderExtractionIdle()

	c.loadModels(ctx, c.preferredModel)
	c.loadDocuments(ctx)

	c.surface.RenderLayout(view.RenderLayout(c.state.Mode))
	c.surface.RenderTranscript(view.RenderTranscript(c.state.Transcript))
	c.surface.RenderExtraction(c.panel)
}

// Refresh reloads models and documents without touching the transcript or
// the last extraction. The current model stays selected while listed.
func (c *Controller) Refresh(ctx context.Context) {
	preferred := c.state.SelectedModel
	if preferred == "" {
		preferred = c.preferredModel
	}
	c.loadModels(ctx, preferred)
	c.loadDocuments(ctx)
}

func (c *Controller) loadModels(ctx context.Context, preferred string) {
	models, err := c.backend.ListModels(ctx)
	if err != nil {
		c.logger.Warn("failed to load models", "error", err)
		c.state.Models = nil
		c.state.ModelsError = true
		c.state.SelectedModel = ""
	} else {
		c.state.SetModels(models, preferred)
	}
	c.surface.RenderModels(view.RenderModels(c.state))
}

func (c *Controller) loadDocuments(ctx context.Context) {
	docs, err := c.backend.ListDocuments(ctx)
	if err != nil {
		c.logger.Warn("failed to load documents", "error", err)
		docs = nil
	}
	c.state.Documents = docs
	c.renderDocuments()
}

func (c *Controller) renderDocuments() {
	c.surface.RenderDocuments(view.RenderDocuments(c.state.Documents))
}

func (c *Controller) renderTranscript() {
	c.surface.RenderTranscript(view.RenderTranscript(c.state.Transcript))
}

func (c *Controller) renderPanel(p view.ExtractionPanel) {
	c.panel = p
	c.surface.RenderExtraction(p)
}

// UploadFiles uploads paths one at a time in the given order. A failure is
// alerted and the queue moves on; only a cancelled context stops it.
func (c *Controller) UploadFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	c.progress.Start(len(paths))
	defer c.progress.Finish()

	failed := 0
	for i, path := range paths {
		if ctx.Err() != nil {
			failed += len(paths) - i
			break
		}
		if err := c.uploadFile(ctx, path); err != nil {
			failed++
		}
		c.progress.Update(i+1, filepath.Base(path))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(paths))
	}
	return nil
}

func (c *Controller) uploadFile(ctx context.Context, path string) (err error) {
	name := filepath.Base(path)
	c.surface.ShowBusy(fmt.Sprintf("Uploading %s...", name))
	defer c.surface.HideBusy()
	defer func() {
		if err != nil {
			c.logger.Debug("upload failed", "file", path, "error", err)
			c.surface.Alert(fmt.Sprintf("Failed to upload %s: %s", name, api.Message(err, api.MsgUploadFailed)))
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := c.backend.UploadDocument(ctx, name, f)
	if err != nil {
		return err
	}
	c.state.AddDocument(doc)
	c.renderDocuments()
	return nil
}

// DeleteDocument removes a document once the server confirms. A 404 means
// the server no longer has it, so the local copy is dropped as well.
func (c *Controller) DeleteDocument(ctx context.Context, id string) error {
	err := c.backend.DeleteDocument(ctx, id)
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		c.logger.Debug("document already gone on server", "id", id)
		err = nil
	}
	if err != nil {
		msg := api.MsgDeleteFailed
		if detail := api.Message(err, ""); detail != "" {
			msg += ": " + detail
		}
		c.surface.Alert(msg)
		return err
	}

	c.state.RemoveDocument(id)
	c.renderDocuments()
	return nil
}

// SelectModel changes the model used for questions and extraction.
func (c *Controller) SelectModel(id string) error {
	if !c.state.SelectModel(id) {
		c.surface.Alert(fmt.Sprintf("Unknown model %q", id))
		return fmt.Errorf("unknown model %q", id)
	}
	c.surface.RenderModels(view.RenderModels(c.state))
	return nil
}

// SwitchMode makes mode the visible panel. Switching to the active mode
// renders the same layout again.
func (c *Controller) SwitchMode(mode string) error {
	m, err := state.ParseMode(mode)
	if err != nil {
		c.surface.Alert(err.Error())
		return err
	}
	c.state.Mode = m
	c.surface.RenderLayout(view.RenderLayout(m))
	return nil
}

// AskQuestion sends a question about all uploaded documents and appends the
// exchange to the transcript.
func (c *Controller) AskQuestion(ctx context.Context, text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		c.surface.Alert(MsgEnterQuestion)
		return ErrEmptyQuestion
	}
	if !c.state.HasDocuments() {
		c.surface.Alert(MsgNeedDocuments)
		return ErrNoDocuments
	}

	c.state.AppendMessage(state.Message{Author: state.AuthorUser, Text: question})
	c.surface.ClearQuestion()
	pendingID := c.state.AppendMessage(state.Message{Author: state.AuthorBot, Text: view.ThinkingText, Pending: true})
	c.renderTranscript()

	c.surface.ShowBusy("Analyzing documents...")
	defer c.surface.HideBusy()

	answer, err := c.backend.Ask(ctx, api.AskRequest{
		Question: question,
		Model:    api.ModelRef(c.state.SelectedModel),
	})
	c.state.RemoveMessage(pendingID)
	if err != nil {
		c.state.AppendMessage(state.Message{
			Author: state.AuthorBot,
			Text:   "Error: " + api.Message(err, api.MsgAskFailed),
		})
		c.renderTranscript()
		return err
	}

	c.state.AppendMessage(state.Message{
		Author: state.AuthorBot,
		Text:   answer.Answer,
		Meta:   view.AnswerMeta(answer.ModelUsed, answer.DocumentsUsed),
	})
	c.renderTranscript()
	return nil
}

// ExtractEntities runs extraction over all documents. genes and relations
// are comma-separated name filters; blank means no filter.
func (c *Controller) ExtractEntities(ctx context.Context, genes, relations string) error {
	if !c.state.HasDocuments() {
		c.surface.Alert(MsgNeedDocuments)
		return ErrNoDocuments
	}

	req := api.ExtractionRequest{
		Model:           api.ModelRef(c.state.SelectedModel),
		TargetGenes:     SplitList(genes),
		TargetRelations: SplitList(relations),
	}

	c.renderPanel(view.RenderExtractionBusy())
	defer func() {
		if c.panel.Trigger.Disabled {
			c.panel.Trigger = view.Trigger{Label: view.ExtractLabel}
			c.surface.RenderExtraction(c.panel)
		}
	}()

	result, err := c.backend.Extract(ctx, req)
	if err != nil {
		c.renderPanel(view.RenderExtractionError(api.Message(err, api.MsgExtractionFailed)))
		return err
	}

	c.state.LastExtraction = result
	c.renderPanel(view.RenderExtractionResult(result))
	return nil
}

// FilterResults hides rendered cards that do not match query. The stored
// result is not touched.
func (c *Controller) FilterResults(query string) {
	if !c.panel.HasCards() {
		return
	}
	c.panel.ApplyFilter(query)
	c.surface.RenderExtraction(c.panel)
}

// ExportResults downloads the last extraction result as json or csv and
// returns the file name. Without a result it does nothing.
func (c *Controller) ExportResults(format string) (string, error) {
	if c.state.LastExtraction == nil {
		return "", nil
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		c.surface.Alert(err.Error())
		return "", err
	}
	data, err := export.Marshal(c.state.LastExtraction, f)
	if err != nil {
		c.surface.Alert(fmt.Sprintf("Export failed: %v", err))
		return "", err
	}

	name := export.Filename(f, c.now())
	if err := c.surface.Download(name, data); err != nil {
		c.surface.Alert(fmt.Sprintf("Failed to save %s: %v", name, err))
		return "", err
	}
	return name, nil
}

// SplitList splits a comma-separated filter, trimming entries and dropping
// empty ones. Blank input yields nil, meaning "no filter".
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}
