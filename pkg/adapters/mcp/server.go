// Package mcp exposes the fusemcp engine as a Model Context Protocol
// server. Every catalog tool is registered as an MCP tool; calling one
// returns the generated script text for the host to run.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fusemcp/fusemcp"
	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Engine defines the generation façade required by the MCP adapter.
type Engine interface {
	Tools() []domain.ToolDescriptor
	GenerateOne(toolName string, parameters map[string]any) (domain.Program, error)
	GenerateMany(calls []domain.ToolCall) (domain.Program, error)
}

// Server wraps the engine and exposes it as an MCP server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance with every catalog tool
// registered.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("fusemcp", strings.TrimSpace(fusemcp.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	for _, desc := range s.engine.Tools() {
		s.mcpServer.AddTool(buildTool(desc), s.toolHandler(desc.Name))
	}

	// batch_generate: one program from an ordered sequence of calls.
	s.mcpServer.AddTool(mcp.NewTool("batch_generate",
		mcp.WithDescription("Generate a single script from an ordered list of tool calls. Calls is a JSON array of {tool_name, parameters} objects."),
		mcp.WithString("calls", mcp.Required(), mcp.Description("JSON array of tool calls to compose, in order")),
	), s.handleBatchGenerate)
}

// buildTool derives the MCP tool schema from a catalog descriptor: a
// parameter without a default is required, one with a default is optional
// and advertises it.
func buildTool(desc domain.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(desc.Description)}

	names := make([]string, 0, len(desc.Parameters))
	for name := range desc.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := desc.Parameters[name]
		propOpts := []mcp.PropertyOption{mcp.Description(spec.Description)}
		if spec.Required() {
			propOpts = append(propOpts, mcp.Required())
		}

		switch spec.Type {
		case "string":
			if spec.HasDefault {
				if v, ok := spec.Default.(string); ok {
					propOpts = append(propOpts, mcp.DefaultString(v))
				}
			}
			opts = append(opts, mcp.WithString(name, propOpts...))
		case "number", "integer":
			if spec.HasDefault {
				if v, ok := asFloat(spec.Default); ok {
					propOpts = append(propOpts, mcp.DefaultNumber(v))
				}
			}
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		case "boolean":
			if spec.HasDefault {
				if v, ok := spec.Default.(bool); ok {
					propOpts = append(propOpts, mcp.DefaultBool(v))
				}
			}
			opts = append(opts, mcp.WithBoolean(name, propOpts...))
		case "array":
			opts = append(opts, mcp.WithArray(name, propOpts...))
		}
	}
	return mcp.NewTool(desc.Name, opts...)
}

func (s *Server) toolHandler(toolName string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		program, err := s.engine.GenerateOne(toolName, request.GetArguments())
		if err != nil {
			if domain.IsCallerError(err) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		return mcp.NewToolResultText(string(program)), nil
	}
}

func (s *Server) handleBatchGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["calls"].(string)
	if !ok || raw == "" {
		return mcp.NewToolResultError("calls must be a JSON array of {tool_name, parameters} objects"), nil
	}

	var calls []domain.ToolCall
	if err := json.Unmarshal([]byte(raw), &calls); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid calls payload: %v", err)), nil
	}

	program, err := s.engine.GenerateMany(calls)
	if err != nil {
		if domain.IsCallerError(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(string(program)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("fusemcp://registry", "Tool Registry",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Tools())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal registry: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fusemcp://registry",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
