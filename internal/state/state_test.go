package state

import (
	"testing"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

func TestNewIsReset(t *testing.T) {
	s := New()
	if s.Mode != ModeQA {
		t.Errorf("expected initial mode qa, got %q", s.Mode)
	}
	if s.HasDocuments() || s.LastExtraction != nil || len(s.Transcript) != 0 {
		t.Error("expected empty state")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s.AddDocument(api.Document{ID: "d1"})
	s.Mode = ModeExtraction
	s.LastExtraction = &api.ExtractionResult{}
	s.AppendMessage(Message{Author: AuthorUser, Text: "hi"})

	s.Reset()
	if s.HasDocuments() || s.Mode != ModeQA || s.LastExtraction != nil || len(s.Transcript) != 0 {
		t.Errorf("Reset left state behind: %+v", s)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"qa", ModeQA, false},
		{"extraction", ModeExtraction, false},
		{"QA", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetModels(t *testing.T) {
	models := []api.Model{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	s := New()
	s.SetModels(models, "")
	if s.SelectedModel != "a" {
		t.Errorf("expected first model, got %q", s.SelectedModel)
	}

	s.SetModels(models, "b")
	if s.SelectedModel != "b" {
		t.Errorf("expected preferred model, got %q", s.SelectedModel)
	}

	s.SetModels(models, "missing")
	if s.SelectedModel != "a" {
		t.Errorf("unknown preferred model should fall back to first, got %q", s.SelectedModel)
	}

	s.SetModels(nil, "b")
	if s.SelectedModel != "" {
		t.Errorf("expected no selection, got %q", s.SelectedModel)
	}
}

func TestSelectModel(t *testing.T) {
	s := New()
	s.SetModels([]api.Model{{ID: "a"}, {ID: "b"}}, "")
	if !s.SelectModel("b") || s.SelectedModel != "b" {
		t.Error("expected b to be selected")
	}
	if s.SelectModel("zzz") {
		t.Error("unknown model should not be selectable")
	}
	if s.SelectedModel != "b" {
		t.Errorf("selection changed on failure: %q", s.SelectedModel)
	}
}

func TestRemoveDocument(t *testing.T) {
	s := New()
	s.AddDocument(api.Document{ID: "d1"})
	s.AddDocument(api.Document{ID: "d2"})
	s.AddDocument(api.Document{ID: "d3"})

	if s.RemoveDocument("missing") {
		t.Error("removing an unknown id should report false")
	}
	if len(s.Documents) != 3 {
		t.Fatalf("unknown id changed the list: %d", len(s.Documents))
	}

	if !s.RemoveDocument("d2") {
		t.Error("expected d2 to be removed")
	}
	if len(s.Documents) != 2 || s.Documents[0].ID != "d1" || s.Documents[1].ID != "d3" {
		t.Errorf("unexpected order after removal: %+v", s.Documents)
	}

	if s.RemoveDocument("d2") {
		t.Error("second removal should be a no-op")
	}
}

func TestTranscript(t *testing.T) {
	s := New()
	userID := s.AppendMessage(Message{Author: AuthorUser, Text: "question"})
	pendingID := s.AppendMessage(Message{Author: AuthorBot, Text: "Thinking...", Pending: true})
	if userID == "" || pendingID == "" || userID == pendingID {
		t.Fatalf("expected distinct ids, got %q and %q", userID, pendingID)
	}

	s.RemoveMessage(pendingID)
	if len(s.Transcript) != 1 || s.Transcript[0].ID != userID {
		t.Errorf("unexpected transcript: %+v", s.Transcript)
	}

	s.RemoveMessage("unknown")
	if len(s.Transcript) != 1 {
		t.Error("removing unknown message changed the transcript")
	}
}
