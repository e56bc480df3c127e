// Package httpapi exposes the fusemcp engine as a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fusemcp/fusemcp"
	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines the generation façade required by the HTTP adapter.
type Engine interface {
	Tools() []domain.ToolDescriptor
	GenerateOne(toolName string, parameters map[string]any) (domain.Program, error)
	GenerateMany(calls []domain.ToolCall) (domain.Program, error)
}

// ToolCallRequest is the body of POST /call_tool.
type ToolCallRequest struct {
	ToolName   string         `json:"tool_name"`
	Parameters map[string]any `json:"parameters"`
}

// MultiToolCallRequest is the body of POST /call_tools.
type MultiToolCallRequest struct {
	ToolCalls []ToolCallRequest `json:"tool_calls"`
}

// ScriptResponse carries a generated program back to the caller.
type ScriptResponse struct {
	Script  string `json:"script"`
	Message string `json:"message"`
}

// ToolListResponse is the body of GET /tools.
type ToolListResponse struct {
	Tools []domain.ToolDescriptor `json:"tools"`
}

// Server handles the HTTP routes over an Engine.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	metrics *metrics
}

type metrics struct {
	registry  *prometheus.Registry
	generated *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fusemcp_scripts_generated_total",
			Help: "Programs generated, by tool name (batches count each call).",
		}, []string{"tool"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fusemcp_generation_errors_total",
			Help: "Failed generations, by error kind.",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.generated, m.failed)
	return m
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{Engine: engine, Logger: logger, metrics: newMetrics()}

	r := chi.NewRouter()
	r.Get("/", s.Root)
	r.Get("/health", s.GetHealth)
	r.Get("/tools", s.ListTools)
	r.Post("/call_tool", s.CallTool)
	r.Post("/call_tools", s.CallTools)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Root handles GET / with a liveness message.
func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"message": "fusemcp server is running"})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "version": fusemcp.Version})
}

// ListTools handles GET /tools.
func (s *Server) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ToolListResponse{Tools: s.Engine.Tools()})
}

// CallTool handles POST /call_tool: generate one program for one call.
func (s *Server) CallTool(w http.ResponseWriter, r *http.Request) {
	var body ToolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CallTool: invalid request body", "error", err)
		return
	}

	program, err := s.Engine.GenerateOne(body.ToolName, body.Parameters)
	if err != nil {
		s.writeError(w, body.ToolName, err)
		return
	}

	s.metrics.generated.WithLabelValues(body.ToolName).Inc()
	writeJSON(w, ScriptResponse{Script: string(program), Message: "Success"})
}

// CallTools handles POST /call_tools: generate one program for an ordered
// batch. Fails atomically with the first error.
func (s *Server) CallTools(w http.ResponseWriter, r *http.Request) {
	var body MultiToolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CallTools: invalid request body", "error", err)
		return
	}

	calls := make([]domain.ToolCall, len(body.ToolCalls))
	for i, c := range body.ToolCalls {
		calls[i] = domain.ToolCall{Name: c.ToolName, Parameters: c.Parameters}
	}

	program, err := s.Engine.GenerateMany(calls)
	if err != nil {
		s.writeError(w, "batch", err)
		return
	}

	for _, c := range calls {
		s.metrics.generated.WithLabelValues(c.Name).Inc()
	}
	writeJSON(w, ScriptResponse{Script: string(program), Message: "Success"})
}

// writeError maps caller-error kinds to 400 and everything else,
// including catalog/template drift, to 500.
func (s *Server) writeError(w http.ResponseWriter, tool string, err error) {
	kind := domain.KindOf(err)
	s.metrics.failed.WithLabelValues(string(kind)).Inc()
	if domain.IsCallerError(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("generation rejected", "tool", tool, "kind", kind, "error", err)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
	s.Logger.Error("generation failed", "tool", tool, "kind", kind, "error", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
