package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/translit"
	"github.com/teranos/hiero/version"
)

// HandleConvert converts one text, optionally with its trace.
func (s *Server) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ConvertRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	output, trace, err := translit.ConvertValueWithTrace(req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	text := req.Text.(string)
	ok, unsupported := translit.Validate(text)

	resp := ConvertResponse{
		Output:      output,
		Supported:   ok,
		Unsupported: unsupportedOrEmpty(unsupported),
	}
	if req.Trace {
		resp.Trace = trace
	}

	s.record(r.Context(), text, output)
	writeJSON(w, http.StatusOK, resp)
}

// HandleBatch converts a list of texts under one run ID.
func (s *Server) HandleBatch(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req BatchRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}

	runID := uuid.NewString()
	ctx := logger.WithRunID(r.Context(), runID)
	resp := BatchResponse{RunID: runID}

	if req.Tolerant {
		resp.Results = make([]BatchItem, 0, len(req.Texts))
		for _, res := range translit.BatchConvertTolerant(req.Texts) {
			item := BatchItem{Index: res.Index, Output: res.Output}
			if res.Err != nil {
				item.Error = res.Err.Error()
			} else {
				s.record(ctx, req.Texts[res.Index].(string), res.Output)
			}
			resp.Results = append(resp.Results, item)
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	outputs, err := translit.BatchConvert(req.Texts)
	if err != nil {
		writeErr(w, err)
		return
	}
	for i, out := range outputs {
		s.record(ctx, req.Texts[i].(string), out)
	}
	resp.Outputs = outputs
	if resp.Outputs == nil {
		resp.Outputs = []string{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDescribe describes the character in the c query parameter.
func (s *Server) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, DescribeResponse{
		Description: translit.DescribeCharacter(r.URL.Query().Get("c")),
	})
}

// HandleAlphabet lists the letter signs in alphabetical order.
func (s *Server) HandleAlphabet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, translit.Alphabet())
}

// HandleValidate reports which characters of a text have no sign.
func (s *Server) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req ValidateRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	text, isText := req.Text.(string)
	if !isText {
		_, err := translit.ConvertValue(req.Text)
		writeErr(w, err)
		return
	}
	ok, unsupported := translit.Validate(text)
	writeJSON(w, http.StatusOK, ValidateResponse{
		Supported:   ok,
		Unsupported: unsupportedOrEmpty(unsupported),
	})
}

// HandleHealth serves health check endpoint with version info
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	info := version.Get()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       "ok",
		Version:      info.Version,
		Commit:       info.Short(),
		TableVersion: info.TableVersion,
	})
}

// record stores a conversion in history. Failures are logged, never
// returned to the client.
func (s *Server) record(ctx context.Context, input, output string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.Record(ctx, history.NewEntry(input, output, history.SourceServer)); err != nil {
		logger.FromContext(ctx, s.logger).Warnw("Failed to record conversion", logger.FieldError, err)
	}
}

func unsupportedOrEmpty(chars []rune) []string {
	if len(chars) == 0 {
		return []string{}
	}
	return translit.Unsupported(chars)
}
