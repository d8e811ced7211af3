// Package view turns client state into surface-independent descriptions of
// what should be on screen. Nothing here performs I/O.
package view

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/state"
)

// Placeholder and label texts shared by all surfaces.
const (
	NoDocumentsText     = "No documents uploaded"
	ModelsErrorText     = "Error loading models"
	ThinkingText        = "Thinking..."
	ExtractLabel        = "Extract"
	ExtractingLabel     = "Extracting..."
	ExtractingStatus    = "Extracting genes and proteins... This may take a moment."
	ExtractionIdleText  = "Run an extraction to find genes, proteins and their relationships."
	NoEntitiesText      = "No genes or proteins found in the documents."
	PartialResultsText  = "Partial results (parsing error)"
	QuestionPlaceholder = "Ask a question about your documents..."
)

// DocumentRow is one entry of the document list.
type DocumentRow struct {
	ID       string
	Filename string
	// Title carries the full filename for surfaces that truncate.
	Title     string
	WordCount string
}

// DocumentList is the sidebar document list.
type DocumentList struct {
	EmptyText string
	Rows      []DocumentRow
}

// Empty reports whether the list shows its empty state.
func (l DocumentList) Empty() bool { return len(l.Rows) == 0 }

// RenderDocuments describes the document list in upload order.
func RenderDocuments(docs []api.Document) DocumentList {
	if len(docs) == 0 {
		return DocumentList{EmptyText: NoDocumentsText}
	}
	rows := make([]DocumentRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, DocumentRow{
			ID:        d.ID,
			Filename:  d.Filename,
			Title:     d.Filename,
			WordCount: FormatWordCount(d.WordCount),
		})
	}
	return DocumentList{Rows: rows}
}

// FormatWordCount renders a count with thousands separators, e.g. "1,200 words".
func FormatWordCount(n int) string {
	return humanize.Comma(int64(n)) + " words"
}

// ModelOption is one entry of the model selector.
type ModelOption struct {
	ID       string
	Name     string
	Selected bool
}

// ModelSelector is the model drop-down.
type ModelSelector struct {
	Options []ModelOption
	// Placeholder is shown instead of options when loading failed.
	Placeholder string
}

// RenderModels describes the model selector.
func RenderModels(s *state.State) ModelSelector {
	if s.ModelsError {
		return ModelSelector{Placeholder: ModelsErrorText}
	}
	opts := make([]ModelOption, 0, len(s.Models))
	for _, m := range s.Models {
		opts = append(opts, ModelOption{ID: m.ID, Name: m.Name, Selected: m.ID == s.SelectedModel})
	}
	return ModelSelector{Options: opts}
}

// Tab is a mode switch control.
type Tab struct {
	Mode   state.Mode
	Label  string
	Active bool
}

// Layout says which panel is visible.
type Layout struct {
	Tabs             []Tab
	QAHidden         bool
	ExtractionHidden bool
}

// RenderLayout describes panel visibility for the active mode.
func RenderLayout(mode state.Mode) Layout {
	return Layout{
		Tabs: []Tab{
			{Mode: state.ModeQA, Label: "Q&A", Active: mode == state.ModeQA},
			{Mode: state.ModeExtraction, Label: "Gene Extraction", Active: mode == state.ModeExtraction},
		},
		QAHidden:         mode != state.ModeQA,
		ExtractionHidden: mode != state.ModeExtraction,
	}
}

// TranscriptEntry is one rendered chat message.
type TranscriptEntry struct {
	ID      string
	Author  state.Author
	Body    RichText
	Meta    string
	Pending bool
}

// Transcript is the question answering conversation.
type Transcript struct {
	Entries []TranscriptEntry
}

// RenderTranscript formats every message, user and bot alike.
func RenderTranscript(msgs []state.Message) Transcript {
	entries := make([]TranscriptEntry, 0, len(msgs))
	for _, m := range msgs {
		entries = append(entries, TranscriptEntry{
			ID:      m.ID,
			Author:  m.Author,
			Body:    FormatText(m.Text),
			Meta:    m.Meta,
			Pending: m.Pending,
		})
	}
	return Transcript{Entries: entries}
}

// AnswerMeta is the line shown under an answer or extraction result.
func AnswerMeta(model string, docs int) string {
	return fmt.Sprintf("Model: %s | Documents used: %d", model, docs)
}
