package server

import "github.com/teranos/hiero/translit"

// ConvertRequest is the body of POST /api/convert. Text is decoded
// untyped so that non-string values reach the engine's input kind check.
type ConvertRequest struct {
	Text  any  `json:"text"`
	Trace bool `json:"trace"`
}

// ConvertResponse answers POST /api/convert.
type ConvertResponse struct {
	Output      string                `json:"output"`
	Trace       []translit.TraceEntry `json:"trace,omitempty"`
	Supported   bool                  `json:"supported"`
	Unsupported []string              `json:"unsupported"`
}

// BatchRequest is the body of POST /api/batch.
type BatchRequest struct {
	Texts    []any `json:"texts"`
	Tolerant bool  `json:"tolerant"`
}

// BatchItem is one tolerant batch result.
type BatchItem struct {
	Index  int    `json:"index"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResponse answers POST /api/batch. Outputs is set in fail-fast mode,
// Results in tolerant mode; the one in use is always present, even when empty.
type BatchResponse struct {
	RunID   string      `json:"run_id"`
	Outputs []string    `json:"outputs,omitzero"`
	Results []BatchItem `json:"results,omitzero"`
}

// ValidateRequest is the body of POST /api/validate.
type ValidateRequest struct {
	Text any `json:"text"`
}

// ValidateResponse answers POST /api/validate.
type ValidateResponse struct {
	Supported   bool     `json:"supported"`
	Unsupported []string `json:"unsupported"`
}

// DescribeResponse answers GET /api/describe.
type DescribeResponse struct {
	Description string `json:"description"`
}

// HealthResponse answers GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	TableVersion string `json:"table_version"`
}

// SocketMessage is written for every websocket frame received.
type SocketMessage struct {
	Type        string                `json:"type"` // "trace" or "error"
	Input       string                `json:"input,omitempty"`
	Output      string                `json:"output,omitempty"`
	Trace       []translit.TraceEntry `json:"trace,omitempty"`
	Unsupported []string              `json:"unsupported,omitempty"`
	Error       string                `json:"error,omitempty"`
}
