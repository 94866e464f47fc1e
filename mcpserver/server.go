// Package mcpserver exposes the conversion engine as Model Context Protocol
// tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/hiero/history"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/translit"
	"github.com/teranos/hiero/version"
)

// Tool names
const (
	ToolConvert  = "hiero_convert"
	ToolTrace    = "hiero_trace"
	ToolDescribe = "hiero_describe"
	ToolValidate = "hiero_validate"
	ToolAlphabet = "hiero_alphabet"
	ToolBatch    = "hiero_batch"
)

// MCPServer registers hiero's tools on an mcp-go server.
type MCPServer struct {
	server *server.MCPServer
	store  *history.Store // nil when history is disabled
	logger *zap.SugaredLogger
}

// New creates the MCP server advertised under name.
func New(name string, store *history.Store, l *zap.SugaredLogger) *MCPServer {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	s := &MCPServer{
		server: server.NewMCPServer(
			name,
			version.Get().Version,
			server.WithToolCapabilities(false),
		),
		store:  store,
		logger: l,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (s *MCPServer) Serve() error {
	return server.ServeStdio(s.server)
}

// Server returns the underlying mcp-go server.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

func (s *MCPServer) registerTools() {
	textArg := mcp.WithString("text",
		mcp.Required(),
		mcp.Description("English text to convert"),
	)

	s.server.AddTool(mcp.NewTool(ToolConvert,
		mcp.WithDescription("Convert English text to Egyptian hieroglyphs, one sign per character"),
		textArg,
	), s.handleConvert)

	s.server.AddTool(mcp.NewTool(ToolTrace,
		mcp.WithDescription("Convert text and explain which sign each character became"),
		textArg,
	), s.handleTrace)

	s.server.AddTool(mcp.NewTool(ToolDescribe,
		mcp.WithDescription("Describe how a single character converts"),
		mcp.WithString("char",
			mcp.Required(),
			mcp.Description("Exactly one character"),
		),
	), s.handleDescribe)

	s.server.AddTool(mcp.NewTool(ToolValidate,
		mcp.WithDescription("List the characters of a text that have no hieroglyph and become the stroke placeholder"),
		textArg,
	), s.handleValidate)

	s.server.AddTool(mcp.NewTool(ToolAlphabet,
		mcp.WithDescription("List the sign for every letter a-z and digit 0-9"),
	), s.handleAlphabet)

	s.server.AddTool(mcp.NewTool(ToolBatch,
		mcp.WithDescription("Convert several texts at once"),
		mcp.WithArray("texts",
			mcp.Required(),
			mcp.Description("Texts to convert, in order"),
		),
		mcp.WithBoolean("tolerant",
			mcp.Description("Report failures per item instead of stopping at the first non-text value (default: false)"),
		),
	), s.handleBatch)
}

func (s *MCPServer) handleConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	output, err := translit.ConvertValue(request.GetArguments()["text"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.record(ctx, request.GetString("text", ""), output)
	return mcp.NewToolResultText(output), nil
}

func (s *MCPServer) handleTrace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	output, trace, err := translit.ConvertValueWithTrace(request.GetArguments()["text"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.record(ctx, request.GetString("text", ""), output)

	var b strings.Builder
	fmt.Fprintf(&b, "Hieroglyphic: %s\n", output)
	for _, e := range trace {
		b.WriteString(e.Explain())
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *MCPServer) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	char, err := request.RequireString("char")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(translit.DescribeCharacter(char)), nil
}

func (s *MCPServer) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ok, unsupported := translit.Validate(text)
	if ok {
		return mcp.NewToolResultText("All characters are supported"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Unsupported characters (replaced with the stroke placeholder): %s",
		strings.Join(translit.Unsupported(unsupported), " "))), nil
}

func (s *MCPServer) handleAlphabet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Letters:\n")
	for _, e := range translit.Alphabet() {
		fmt.Fprintf(&b, "%s = %s (%s)\n", e.Letter, e.Glyph, e.Label)
	}
	b.WriteString("Numerals:\n")
	for _, e := range translit.Numerals() {
		fmt.Fprintf(&b, "%s = %s (%s)\n", e.Letter, e.Glyph, e.Label)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// batchItem is one tolerant batch result as JSON.
type batchItem struct {
	Index  int    `json:"index"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (s *MCPServer) handleBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	values, ok := request.GetArguments()["texts"].([]any)
	if !ok {
		return mcp.NewToolResultError("texts must be an array"), nil
	}
	ctx = logger.WithRunID(ctx, uuid.NewString())

	var payload any
	if request.GetBool("tolerant", false) {
		items := make([]batchItem, 0, len(values))
		for _, res := range translit.BatchConvertTolerant(values) {
			item := batchItem{Index: res.Index, Output: res.Output}
			if res.Err != nil {
				item.Error = res.Err.Error()
			} else {
				s.record(ctx, values[res.Index].(string), res.Output)
			}
			items = append(items, item)
		}
		payload = items
	} else {
		outputs, err := translit.BatchConvert(values)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for i, out := range outputs {
			s.record(ctx, values[i].(string), out)
		}
		if outputs == nil {
			outputs = []string{}
		}
		payload = outputs
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *MCPServer) record(ctx context.Context, input, output string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.Record(ctx, history.NewEntry(input, output, history.SourceMCP)); err != nil {
		s.logger.Warnw("Failed to record conversion", logger.FieldError, err)
	}
}
