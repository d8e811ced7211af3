// Package apitest provides an in-memory fake of the BioBuilder API for
// tests. It mirrors the server's routes, validation and error bodies.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/ziadkadry99/biobuilder/internal/api"
)

// Failure is a canned response returned once for a route.
type Failure struct {
	Status int
	Body   string
}

// AnswerFunc produces the answer for a question.
type AnswerFunc func(req api.AskRequest, docs []api.Document) (*api.Answer, error)

// ExtractFunc produces the extraction result for a request.
type ExtractFunc func(req api.ExtractionRequest, docs []api.Document) (*api.ExtractionResult, error)

// Server is a running fake API.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	models    []api.Model
	docs      []api.Document
	failures  map[string][]Failure
	answer    AnswerFunc
	extract   ExtractFunc
	asks      []api.AskRequest
	extracts  []api.ExtractionRequest
	uploads   []string
	deletes   []string
	callCount map[string]int
}

// NewServer starts a fake API with the given models. Close it when done.
func NewServer(models ...api.Model) *Server {
	s := &Server{
		models:    models,
		failures:  make(map[string][]Failure),
		callCount: make(map[string]int),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.countAndFail)

	r.Get("/api/models", s.handleModels)
	r.Get("/api/documents", s.handleListDocuments)
	r.Post("/api/documents/upload", s.handleUpload)
	r.Delete("/api/documents/{id}", s.handleDelete)
	r.Post("/api/qa/ask", s.handleAsk)
	r.Post("/api/extraction/genes", s.handleExtract)
	return r
}

// countAndFail records each call and serves queued failures.
func (s *Server) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.callCount[key]++
		var fail *Failure
		if queue := s.failures[key]; len(queue) > 0 {
			fail = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if fail != nil {
			w.WriteHeader(fail.Status)
			io.WriteString(w, fail.Body)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext queues a raw response for the next call of method+path, e.g.
// FailNext("GET /api/models", 500, "").
func (s *Server) FailNext(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], Failure{Status: status, Body: body})
}

// FailNextDetail queues a JSON {"detail": ...} error.
func (s *Server) FailNextDetail(route string, status int, detail string) {
	body, _ := json.Marshal(map[string]string{"detail": detail})
	s.FailNext(route, status, string(body))
}

// SetAnswer overrides the question answering behaviour.
func (s *Server) SetAnswer(fn AnswerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answer = fn
}

// SetExtract overrides the extraction behaviour.
func (s *Server) SetExtract(fn ExtractFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extract = fn
}

// AddDocument seeds a document as if it had been uploaded.
func (s *Server) AddDocument(filename string, wordCount int) api.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := api.Document{ID: uuid.NewString(), Filename: filename, WordCount: wordCount}
	s.docs = append(s.docs, doc)
	return doc
}

// Documents returns a copy of the server-side document list.
func (s *Server) Documents() []api.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Document(nil), s.docs...)
}

// AskRequests returns every decoded question request.
func (s *Server) AskRequests() []api.AskRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.AskRequest(nil), s.asks...)
}

// ExtractRequests returns every decoded extraction request.
func (s *Server) ExtractRequests() []api.ExtractionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ExtractionRequest(nil), s.extracts...)
}

// Uploads returns uploaded filenames in arrival order, including rejected ones.
func (s *Server) Uploads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.uploads...)
}

// Deletes returns the ids passed to DELETE in arrival order.
func (s *Server) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// Calls returns how many times method+path was requested.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount[route]
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	models := append([]api.Model{}, s.models...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"models": models})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.Documents()
	if docs == nil {
		docs = []api.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "No file provided")
		return
	}
	defer file.Close()

	s.mu.Lock()
	s.uploads = append(s.uploads, header.Filename)
	s.mu.Unlock()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if ext != "pdf" && ext != "txt" && ext != "text" {
		writeDetail(w, http.StatusBadRequest, "Only PDF and TXT files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	text := string(data)
	doc := api.Document{
		ID:        uuid.NewString(),
		Filename:  header.Filename,
		WordCount: len(strings.Fields(text)),
		CharCount: len(text),
	}
	s.mu.Lock()
	s.docs = append(s.docs, doc)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "document": doc})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	s.deletes = append(s.deletes, id)
	idx := -1
	for i, d := range s.docs {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.docs = append(s.docs[:idx], s.docs[idx+1:]...)
	}
	s.mu.Unlock()

	if idx < 0 {
		writeDetail(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Document deleted"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req api.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	s.asks = append(s.asks, req)
	docs := append([]api.Document(nil), s.docs...)
	answer := s.answer
	s.mu.Unlock()

	if len(docs) == 0 {
		writeDetail(w, http.StatusBadRequest, "No documents available. Please upload documents first.")
		return
	}
	if answer == nil {
		answer = defaultAnswer
	}
	resp, err := answer(req, docs)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req api.ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	s.mu.Lock()
	s.extracts = append(s.extracts, req)
	docs := append([]api.Document(nil), s.docs...)
	extract := s.extract
	s.mu.Unlock()

	if len(docs) == 0 {
		writeDetail(w, http.StatusBadRequest, "No documents available. Please upload documents first.")
		return
	}
	if extract == nil {
		extract = defaultExtract
	}
	resp, err := extract(req, docs)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func modelUsed(model *string) string {
	if model == nil {
		return "default"
	}
	return *model
}

func defaultAnswer(req api.AskRequest, docs []api.Document) (*api.Answer, error) {
	return &api.Answer{
		Answer:        fmt.Sprintf("You asked: %s", req.Question),
		ModelUsed:     modelUsed(req.Model),
		DocumentsUsed: len(docs),
	}, nil
}

func defaultExtract(req api.ExtractionRequest, docs []api.Document) (*api.ExtractionResult, error) {
	return &api.ExtractionResult{
		Entities: []api.Entity{
			{Name: "TP53", Type: "gene", Description: "Tumor suppressor"},
			{Name: "MDM2", Type: "protein"},
		},
		Relations: []api.Relation{
			{Source: "MDM2", Target: "TP53", Type: "inhibits", Evidence: "MDM2 binds and degrades p53"},
		},
		ModelUsed:     modelUsed(req.Model),
		DocumentsUsed: len(docs),
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
