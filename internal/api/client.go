package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// Client talks to the BioBuilder HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout on a copy of the underlying
// http.Client, leaving a client passed to WithHTTPClient untouched.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.client
		hc.Timeout = d
		c.client = &hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API rooted at baseURL. An empty
// baseURL means same-origin paths, which is only useful with a custom
// transport.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// ListModels returns the models the server can route to.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var resp modelsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/models", nil, &resp, MsgLoadModelsFailed); err != nil {
		return nil, err
	}
	return resp.Models, nil
}

// ListDocuments returns all documents currently held by the server, in
// upload order.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	var resp documentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents", nil, &resp, MsgLoadDocumentsFailed); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// UploadDocument sends one file as the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return Document{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return Document{}, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, "/api/documents/upload", mw.FormDataContentType(), &buf, &resp, MsgUploadFailed); err != nil {
		return Document{}, err
	}
	return resp.Document, nil
}

// DeleteDocument removes a document. Any 2xx counts as success; the body is
// ignored.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, nil, MsgDeleteFailed)
}

// Ask asks a question against all uploaded documents.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	var resp Answer
	if err := c.doJSON(ctx, http.MethodPost, "/api/qa/ask", req, &resp, MsgAskFailed); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Extract runs gene/protein entity and relation extraction.
func (c *Client) Extract(ctx context.Context, req ExtractionRequest) (*ExtractionResult, error) {
	var resp ExtractionResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/extraction/genes", req, &resp, MsgExtractionFailed); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, fallback string) error {
	if in == nil {
		return c.do(ctx, method, path, "", nil, out, fallback)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(body), out, fallback)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any, fallback string) error {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	c.logger.Debug("api request", "method", method, "path", path,
		"status", httpResp.StatusCode, "duration", time.Since(start))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &APIError{
			StatusCode: httpResp.StatusCode,
			Detail:     parseDetail(respBody),
			Fallback:   fallback,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
