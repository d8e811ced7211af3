package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

func sample() *api.ExtractionResult {
	return &api.ExtractionResult{
		Entities: []api.Entity{
			{Name: "TP53", Type: "gene", Description: `Say "hi"`},
			{Name: "MDM2", Type: "protein"},
		},
		Relations: []api.Relation{
			{Source: "MDM2", Target: "TP53", Type: "inhibits", Description: "negative, regulation", Evidence: `"MDM2 degrades p53"`},
		},
		ModelUsed:     "llama",
		DocumentsUsed: 1,
		ParseError:    true,
	}
}

func TestQuote(t *testing.T) {
	if got := Quote(`Say "hi"`); got != `"Say ""hi"""` {
		t.Errorf("Quote = %s", got)
	}
	if got := Quote(""); got != `""` {
		t.Errorf("Quote(empty) = %s", got)
	}
}

func TestCSVLayout(t *testing.T) {
	got := CSV(sample())
	want := "Name,Type,Description\n" +
		`"TP53","gene","Say ""hi"""` + "\n" +
		`"MDM2","protein",""` + "\n" +
		"\n" +
		"Source,Target,Type,Description,Evidence\n" +
		`"MDM2","TP53","inhibits","negative, regulation","""MDM2 degrades p53"""` + "\n"
	if got != want {
		t.Errorf("CSV mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVSectionsParse(t *testing.T) {
	sections := strings.Split(CSV(sample()), "\n\n")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}

	entities, err := csv.NewReader(strings.NewReader(sections[0])).ReadAll()
	if err != nil {
		t.Fatalf("parsing entities table: %v", err)
	}
	if len(entities) != 3 || entities[1][2] != `Say "hi"` {
		t.Errorf("unexpected entity rows: %q", entities)
	}

	relations, err := csv.NewReader(strings.NewReader(sections[1])).ReadAll()
	if err != nil {
		t.Fatalf("parsing relations table: %v", err)
	}
	if len(relations) != 2 || relations[1][3] != "negative, regulation" {
		t.Errorf("unexpected relation rows: %q", relations)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	data, err := JSON(sample())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"entities\": [") {
		t.Errorf("expected two-space indentation, got:\n%s", data)
	}

	var back api.ExtractionResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back.Entities) != 2 || !back.ParseError || back.ModelUsed != "llama" {
		t.Errorf("unexpected round trip: %+v", back)
	}
}

func TestJSONEmptyListsAreArrays(t *testing.T) {
	data, err := JSON(&api.ExtractionResult{ModelUsed: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"entities": []`) || !strings.Contains(string(data), `"relations": []`) {
		t.Errorf("expected empty arrays, got:\n%s", data)
	}
}

func TestFilename(t *testing.T) {
	day := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	if got := Filename(FormatJSON, day); got != "bio_extraction_2026-03-09.json" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename(FormatCSV, day); got != "bio_extraction_2026-03-09.csv" {
		t.Errorf("Filename = %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "JSON", "csv"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Error("expected error for xlsx")
	}
}

func TestMarshal(t *testing.T) {
	data, err := Marshal(sample(), FormatCSV)
	if err != nil || !strings.HasPrefix(string(data), "Name,Type,Description") {
		t.Errorf("Marshal csv = %q, %v", data, err)
	}
	if _, err := Marshal(sample(), Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
