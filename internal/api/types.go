package api

// Document is an uploaded file tracked by the server.
type Document struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count,omitempty"`
}

// Model is a selectable inference target exposed by the server.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entity is a named biological object found by extraction.
type Entity struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Relation is a directed, typed link between two entities.
type Relation struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Evidence    string `json:"evidence,omitempty"`
}

// ExtractionResult is the response of the gene extraction endpoint.
type ExtractionResult struct {
	Entities      []Entity   `json:"entities"`
	Relations     []Relation `json:"relations"`
	ModelUsed     string     `json:"model_used"`
	DocumentsUsed int        `json:"documents_used"`
	ParseError    bool       `json:"parse_error,omitempty"`
}

// Empty reports whether the result carries neither entities nor relations.
func (r *ExtractionResult) Empty() bool {
	return len(r.Entities) == 0 && len(r.Relations) == 0
}

// AskRequest is the body of POST /api/qa/ask. A nil Model is sent as null,
// which lets the server pick its default.
type AskRequest struct {
	Question string  `json:"question"`
	Model    *string `json:"model"`
}

// Answer is the response of POST /api/qa/ask.
type Answer struct {
	Answer        string `json:"answer"`
	ModelUsed     string `json:"model_used"`
	DocumentsUsed int    `json:"documents_used"`
}

// ExtractionRequest is the body of POST /api/extraction/genes. Nil filter
// slices are sent as null ("no filter"), which is not the same as [].
type ExtractionRequest struct {
	Model           *string  `json:"model"`
	TargetGenes     []string `json:"target_genes"`
	TargetRelations []string `json:"target_relations"`
}

type modelsResponse struct {
	Models []Model `json:"models"`
}

type documentsResponse struct {
	Documents []Document `json:"documents"`
}

type uploadResponse struct {
	Document Document `json:"document"`
}

// ModelRef returns a pointer suitable for the nullable model field: empty
// ids become nil.
func ModelRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
