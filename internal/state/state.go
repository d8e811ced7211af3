// Package state holds the client-side mirror of server data and the UI
// state the controller mutates.
package state

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

// Mode selects which panel is active.
type Mode string

const (
	ModeQA         Mode = "qa"
	ModeExtraction Mode = "extraction"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeQA, ModeExtraction:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q: must be qa or extraction", s)
	}
}

// Author identifies who wrote a transcript message.
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// Message is one transcript entry.
type Message struct {
	ID      string
	Author  Author
	Text    string
	Meta    string
	Pending bool
}

// State is owned by a single controller and is not safe for concurrent use.
type State struct {
	Documents      []api.Document
	Models         []api.Model
	ModelsError    bool
	SelectedModel  string
	Mode           Mode
	Transcript     []Message
	LastExtraction *api.ExtractionResult
}

// New returns a freshly reset State.
func New() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset returns the state to its startup values.
func (s *State) Reset() {
	s.Documents = nil
	s.Models = nil
	s.ModelsError = false
	s.SelectedModel = ""
	s.Mode = ModeQA
	s.Transcript = nil
	s.LastExtraction = nil
}

// SetModels replaces the model list and picks the selection: preferred when
// it names a listed model, else the first entry.
func (s *State) SetModels(models []api.Model, preferred string) {
	s.Models = models
	s.ModelsError = false
	s.SelectedModel = ""
	for _, m := range models {
		if m.ID == preferred && preferred != "" {
			s.SelectedModel = preferred
			return
		}
	}
	if len(models) > 0 {
		s.SelectedModel = models[0].ID
	}
}

// SelectModel changes the current model. It reports false for ids that are
// not in the list.
func (s *State) SelectModel(id string) bool {
	for _, m := range s.Models {
		if m.ID == id {
			s.SelectedModel = id
			return true
		}
	}
	return false
}

// AddDocument appends a document in upload order.
func (s *State) AddDocument(doc api.Document) {
	s.Documents = append(s.Documents, doc)
}

// RemoveDocument drops the document with the given id. Unknown ids are a
// no-op; the return value reports whether anything was removed.
func (s *State) RemoveDocument(id string) bool {
	for i, d := range s.Documents {
		if d.ID == id {
			s.Documents = append(s.Documents[:i:i], s.Documents[i+1:]...)
			return true
		}
	}
	return false
}

// HasDocuments reports whether at least one document is uploaded.
func (s *State) HasDocuments() bool {
	return len(s.Documents) > 0
}

// AppendMessage adds a transcript entry, assigning an id when it has none,
// and returns the id.
func (s *State) AppendMessage(m Message) string {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.Transcript = append(s.Transcript, m)
	return m.ID
}

// RemoveMessage deletes a transcript entry by id.
func (s *State) RemoveMessage(id string) {
	for i, m := range s.Transcript {
		if m.ID == id {
			s.Transcript = append(s.Transcript[:i:i], s.Transcript[i+1:]...)
			return
		}
	}
}
