// Package lineproto serves the fusemcp engine over a line-oriented JSON
// protocol: one request object per line on the reader, one response object
// per line on the writer. In production the pair is stdin/stdout, which is
// why all logging goes to a separate sink.
package lineproto

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// JSON-RPC style error codes kept for host compatibility.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Engine defines the generation façade required by the line protocol.
type Engine interface {
	Tools() []domain.ToolDescriptor
	GenerateOne(toolName string, parameters map[string]any) (domain.Program, error)
	GenerateMany(calls []domain.ToolCall) (domain.Program, error)
}

// Request is one incoming protocol line.
type Request struct {
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

// Response is one outgoing protocol line: either a result or an error.
type Response struct {
	Result any        `json:"result,omitempty"`
	Error  *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries a protocol error code and message.
type ErrorInfo struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type callToolParams struct {
	Name      string         `mapstructure:"name"`
	Arguments map[string]any `mapstructure:"arguments"`
}

type callToolsParams struct {
	Calls []domain.ToolCall `mapstructure:"calls"`
}

// Server reads requests line by line and writes one response per request.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	scanner *bufio.Scanner
	encoder *json.Encoder
}

// NewServer creates a line protocol server over the given reader/writer.
func NewServer(engine Engine, r io.Reader, w io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Server{
		engine:  engine,
		logger:  logger,
		scanner: scanner,
		encoder: json.NewEncoder(w),
	}
}

// Serve processes requests until the reader is exhausted. A line that is
// not valid JSON is logged and skipped rather than terminating the loop.
func (s *Server) Serve() error {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error("invalid JSON line", "error", err)
			continue
		}

		resp := s.Handle(req)
		if err := s.encoder.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return s.scanner.Err()
}

// Handle dispatches a single request to the engine.
func (s *Server) Handle(req Request) Response {
	switch req.Method {
	case "list_tools":
		return s.handleListTools()
	case "call_tool":
		return s.handleCallTool(req.Params)
	case "call_tools":
		return s.handleCallTools(req.Params)
	default:
		return errorResponse(codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) handleListTools() Response {
	descriptors := s.engine.Tools()
	tools := make([]map[string]any, len(descriptors))
	for i, d := range descriptors {
		properties := make(map[string]any, len(d.Parameters))
		var required []string
		for name, spec := range d.Parameters {
			properties[name] = map[string]any{
				"type":        spec.Type,
				"description": spec.Description,
			}
			if spec.Required() {
				required = append(required, name)
			}
		}
		sort.Strings(required)
		tools[i] = map[string]any{
			"name":        d.Name,
			"description": d.Description,
			"input_schema": map[string]any{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		}
	}
	return Response{Result: map[string]any{"tools": tools}}
}

func (s *Server) handleCallTool(params map[string]any) Response {
	var p callToolParams
	if err := mapstructure.Decode(params, &p); err != nil {
		return errorResponse(codeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
	}
	if p.Name == "" {
		return errorResponse(codeInvalidParams, "Invalid params: missing tool name")
	}

	program, err := s.engine.GenerateOne(p.Name, p.Arguments)
	if err != nil {
		return generationError(err)
	}
	return scriptResponse(program)
}

func (s *Server) handleCallTools(params map[string]any) Response {
	var p callToolsParams
	if err := mapstructure.Decode(params, &p); err != nil {
		return errorResponse(codeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
	}
	if len(p.Calls) == 0 {
		return errorResponse(codeInvalidParams, "Invalid params: missing calls")
	}

	program, err := s.engine.GenerateMany(p.Calls)
	if err != nil {
		return generationError(err)
	}
	return scriptResponse(program)
}

func scriptResponse(program domain.Program) Response {
	return Response{Result: map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(program)},
		},
	}}
}

func generationError(err error) Response {
	if domain.IsCallerError(err) {
		return errorResponse(codeInvalidParams, fmt.Sprintf("Invalid params: %v", err))
	}
	return errorResponse(codeInternalError, fmt.Sprintf("Internal error: %v", err))
}

func errorResponse(code int, message string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message}}
}
