package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Fallback messages used when the server gives no usable detail.
const (
	MsgLoadModelsFailed    = "Failed to load models"
	MsgLoadDocumentsFailed = "Failed to load documents"
	MsgUploadFailed        = "Upload failed"
	MsgDeleteFailed        = "Failed to delete document"
	MsgAskFailed           = "Failed to get answer"
	MsgExtractionFailed    = "Extraction failed"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	// Detail is the server-provided message, empty when the body had none.
	Detail string
	// Fallback is the operation's generic message.
	Fallback string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Fallback != "" {
		return e.Fallback
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Message returns the text to show a user for err. Server details win,
// then the fallback for non-2xx responses without a body; transport errors
// surface their own text.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	}
	return err.Error()
}

// parseDetail extracts a string "detail" field from an error body. Any other
// shape (validation arrays, HTML error pages, empty bodies) yields "".
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
