package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ziadkadry99/biobuilder/internal/api"
	"github.com/ziadkadry99/biobuilder/internal/apitest"
)

func newTestClient(t *testing.T, models ...api.Model) (*api.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(models...)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL), srv
}

func TestListModels(t *testing.T) {
	client, _ := newTestClient(t, api.Model{ID: "gpt-oss", Name: "GPT OSS"}, api.Model{ID: "llama", Name: "Llama"})

	models, err := client.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].ID != "gpt-oss" || models[1].Name != "Llama" {
		t.Errorf("unexpected models: %+v", models)
	}
}

func TestUploadListDelete(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	doc, err := client.UploadDocument(ctx, "/tmp/papers/paper.txt", strings.NewReader("TP53 regulates the cell cycle"))
	if err != nil {
		t.Fatalf("UploadDocument: %v", err)
	}
	if doc.Filename != "paper.txt" {
		t.Errorf("filename = %q, want %q", doc.Filename, "paper.txt")
	}
	if doc.WordCount != 5 {
		t.Errorf("word_count = %d, want 5", doc.WordCount)
	}
	if doc.ID == "" {
		t.Error("expected a document id")
	}

	docs, err := client.ListDocuments(ctx)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("unexpected documents: %+v", docs)
	}

	if err := client.DeleteDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
	if got := srv.Documents(); len(got) != 0 {
		t.Errorf("expected server list to be empty, got %d", len(got))
	}
}

func TestUploadRejectedSurfacesDetail(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.UploadDocument(context.Background(), "figure.png", strings.NewReader("binary"))
	if err == nil {
		t.Fatal("expected an error for unsupported file type")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if got := api.Message(err, api.MsgUploadFailed); got != "Only PDF and TXT files are supported" {
		t.Errorf("message = %q", got)
	}
}

func TestDeleteMissingDocument(t *testing.T) {
	client, _ := newTestClient(t)

	err := client.DeleteDocument(context.Background(), "nope")
	if got := api.Message(err, api.MsgDeleteFailed); got != "Document not found" {
		t.Errorf("message = %q, want %q", got, "Document not found")
	}
}

func TestAskSendsNullModel(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddDocument("paper.txt", 1200)

	answer, err := client.Ask(context.Background(), api.AskRequest{Question: "What gene is discussed?"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.ModelUsed != "default" {
		t.Errorf("model_used = %q, want default", answer.ModelUsed)
	}
	if answer.DocumentsUsed != 1 {
		t.Errorf("documents_used = %d, want 1", answer.DocumentsUsed)
	}

	reqs := srv.AskRequests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Model != nil {
		t.Errorf("expected null model, got %q", *reqs[0].Model)
	}
	if reqs[0].Question != "What gene is discussed?" {
		t.Errorf("question = %q", reqs[0].Question)
	}
}

func TestAskRequestWireFormat(t *testing.T) {
	body, err := json.Marshal(api.AskRequest{Question: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"question":"q","model":null}` {
		t.Errorf("unexpected body %s", body)
	}

	body, _ = json.Marshal(api.AskRequest{Question: "q", Model: api.ModelRef("llama")})
	if string(body) != `{"question":"q","model":"llama"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestExtractionRequestNullVersusEmpty(t *testing.T) {
	body, _ := json.Marshal(api.ExtractionRequest{TargetGenes: []string{"TP53", "BRCA1"}})
	want := `{"model":null,"target_genes":["TP53","BRCA1"],"target_relations":null}`
	if string(body) != want {
		t.Errorf("got %s, want %s", body, want)
	}

	body, _ = json.Marshal(api.ExtractionRequest{TargetRelations: []string{}})
	want = `{"model":null,"target_genes":null,"target_relations":[]}`
	if string(body) != want {
		t.Errorf("got %s, want %s", body, want)
	}
}

func TestExtract(t *testing.T) {
	client, srv := newTestClient(t)
	srv.AddDocument("paper.txt", 10)

	model := "llama"
	result, err := client.Extract(context.Background(), api.ExtractionRequest{Model: &model})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(result.Entities) != 2 || len(result.Relations) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.ModelUsed != "llama" {
		t.Errorf("model_used = %q", result.ModelUsed)
	}
	if result.Empty() {
		t.Error("result should not be empty")
	}
}

func TestErrorBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"No documents available. Please upload documents first."}`, "No documents available. Please upload documents first."},
		{"validation array", `{"detail":[{"loc":["body","question"],"msg":"field required"}]}`, api.MsgAskFailed},
		{"empty body", ``, api.MsgAskFailed},
		{"html page", `<html>Bad Gateway</html>`, api.MsgAskFailed},
		{"empty detail", `{"detail":""}`, api.MsgAskFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(t)
			srv.FailNext("POST /api/qa/ask", http.StatusBadGateway, tt.body)

			_, err := client.Ask(context.Background(), api.AskRequest{Question: "q"})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := api.Message(err, api.MsgAskFailed); got != tt.want {
				t.Errorf("message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := api.NewClient(url)
	_, err := client.ListModels(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		t.Fatal("transport failure should not be an APIError")
	}
	if got := api.Message(err, api.MsgLoadModelsFailed); got == "" || got == api.MsgLoadModelsFailed {
		t.Errorf("expected transport error text, got %q", got)
	}
}

func TestDeleteAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.EscapedPath() != "/api/documents/a%2Fb" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.EscapedPath())
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := api.NewClient(srv.URL + "/").DeleteDocument(context.Background(), "a/b"); err != nil {
		t.Fatalf("DeleteDocument: %v", err)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).ListDocuments(context.Background())
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMessageNil(t *testing.T) {
	if got := api.Message(nil, "x"); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}

func TestWithTimeoutLeavesCallerClient(t *testing.T) {
	srv := apitest.NewServer(api.Model{ID: "m1", Name: "One"})
	defer srv.Close()

	hc := &http.Client{}
	client := api.NewClient(srv.URL, api.WithHTTPClient(hc), api.WithTimeout(5*time.Second))
	if hc.Timeout != 0 {
		t.Errorf("caller's client timeout changed to %v", hc.Timeout)
	}
	if _, err := client.ListModels(context.Background()); err != nil {
		t.Fatalf("ListModels: %v", err)
	}
}
