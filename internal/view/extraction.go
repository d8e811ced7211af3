package view

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

// Trigger is the extraction button.
type Trigger struct {
	Label    string
	Disabled bool
}

// EntityCard is one entity in the results grid.
type EntityCard struct {
	Name        string
	Type        string
	Aliases     []string
	Description string
	Hidden      bool
}

// RelationCard is one relationship in the results list.
type RelationCard struct {
	Source      string
	Target      string
	Type        string
	Description string
	Evidence    string
	Hidden      bool
}

// ExtractionPanel is the extraction results area.
type ExtractionPanel struct {
	Trigger Trigger
	// Status is a placeholder occupying the results area (idle, busy or
	// nothing found). Error replaces results on failure.
	Status string
	Error  string

	EntitiesHeading  string
	Entities         []EntityCard
	RelationsHeading string
	Relations        []RelationCard
	Meta             string

	ToolbarVisible bool
	Filter         string
}

// RenderExtractionIdle is the panel before any extraction ran.
func RenderExtractionIdle() ExtractionPanel {
	return ExtractionPanel{
		Trigger: Trigger{Label: ExtractLabel},
		Status:  ExtractionIdleText,
	}
}

// RenderExtractionBusy is the panel while a request is in flight.
func RenderExtractionBusy() ExtractionPanel {
	return ExtractionPanel{
		Trigger: Trigger{Label: ExtractingLabel, Disabled: true},
		Status:  ExtractingStatus,
	}
}

// RenderExtractionError shows a failure in place of results.
func RenderExtractionError(msg string) ExtractionPanel {
	return ExtractionPanel{
		Trigger: Trigger{Label: ExtractLabel},
		Error:   "Error: " + msg,
	}
}

// RenderExtractionResult lays out entities, relationships and the meta line.
func RenderExtractionResult(r *api.ExtractionResult) ExtractionPanel {
	p := ExtractionPanel{Trigger: Trigger{Label: ExtractLabel}}
	if r.Empty() {
		p.Status = NoEntitiesText
		return p
	}

	if len(r.Entities) > 0 {
		p.EntitiesHeading = fmt.Sprintf("Entities (%d)", len(r.Entities))
		for _, e := range r.Entities {
			p.Entities = append(p.Entities, EntityCard{
				Name:        e.Name,
				Type:        e.Type,
				Aliases:     e.Aliases,
				Description: e.Description,
			})
		}
	}
	if len(r.Relations) > 0 {
		p.RelationsHeading = fmt.Sprintf("Relationships (%d)", len(r.Relations))
		for _, rel := range r.Relations {
			p.Relations = append(p.Relations, RelationCard{
				Source:      rel.Source,
				Target:      rel.Target,
				Type:        rel.Type,
				Description: rel.Description,
				Evidence:    rel.Evidence,
			})
		}
	}

	p.Meta = AnswerMeta(r.ModelUsed, r.DocumentsUsed)
	if r.ParseError {
		p.Meta += " | " + PartialResultsText
	}
	p.ToolbarVisible = true
	return p
}

// HasCards reports whether there is anything for the filter to act on.
func (p *ExtractionPanel) HasCards() bool {
	return len(p.Entities) > 0 || len(p.Relations) > 0
}

// ApplyFilter hides cards that do not contain query, case-insensitively.
// An empty query shows every card.
func (p *ExtractionPanel) ApplyFilter(query string) {
	p.Filter = query
	q := strings.ToLower(strings.TrimSpace(query))
	for i := range p.Entities {
		p.Entities[i].Hidden = q != "" && !strings.Contains(strings.ToLower(p.Entities[i].searchText()), q)
	}
	for i := range p.Relations {
		p.Relations[i].Hidden = q != "" && !strings.Contains(strings.ToLower(p.Relations[i].searchText()), q)
	}
}

// Visible returns the number of entity and relation cards not hidden.
func (p *ExtractionPanel) Visible() (entities, relations int) {
	for _, e := range p.Entities {
		if !e.Hidden {
			entities++
		}
	}
	for _, r := range p.Relations {
		if !r.Hidden {
			relations++
		}
	}
	return entities, relations
}

func (c EntityCard) searchText() string {
	return c.Name + " " + c.Type
}

func (c RelationCard) searchText() string {
	return strings.Join([]string{c.Source, "→", c.Target, c.Type, c.Description, c.Evidence}, " ")
}
