package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fusemcp/fusemcp"
	"github.com/fusemcp/fusemcp/pkg/domain"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	eng, err := fusemcp.New()
	require.NoError(t, err)
	return NewHandler(eng, nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRoot(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fusemcp server is running")
}

func TestGetHealth(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, fusemcp.Version, body["version"])
}

func TestListTools(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodGet, "/tools", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body ToolListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Tools)
	assert.Equal(t, "CreateSketch", body.Tools[0].Name)
}

func TestCallTool_Success(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tool", ToolCallRequest{
		ToolName:   "CreateSketch",
		Parameters: map[string]any{"plane": "yz"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body ScriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Success", body.Message)
	assert.Contains(t, body.Script, "# Create a new sketch on the yz plane")
}

func TestCallTool_UnknownToolIs400(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tool", ToolCallRequest{
		ToolName: "Teleport",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Teleport")
}

func TestCallTool_MissingParameterIs400(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tool", ToolCallRequest{
		ToolName:   "Extrude",
		Parameters: map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "height")
}

func TestCallTool_InvalidValueIs400(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tool", ToolCallRequest{
		ToolName:   "CreateSketch",
		Parameters: map[string]any{"plane": "diagonal"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "diagonal")
}

func TestCallTool_MalformedBodyIs400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/call_tool", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCallTools_Batch(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tools", MultiToolCallRequest{
		ToolCalls: []ToolCallRequest{
			{ToolName: "CreateSketch", Parameters: map[string]any{"plane": "xy"}},
			{ToolName: "DrawCircle", Parameters: map[string]any{"radius": 2}},
			{ToolName: "Extrude", Parameters: map[string]any{"height": 5}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body ScriptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Script, "# Draw a circle")
	assert.Contains(t, body.Script, "# Extrude the profile")
}

func TestCallTools_AtomicFailure(t *testing.T) {
	rec := doJSON(t, newTestHandler(t), http.MethodPost, "/call_tools", MultiToolCallRequest{
		ToolCalls: []ToolCallRequest{
			{ToolName: "CreateSketch", Parameters: map[string]any{"plane": "xy"}},
			{ToolName: "Teleport"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, rec.Body.String(), "\"script\"")
}

// failingEngine simulates catalog/template drift to exercise the internal
// error path.
type failingEngine struct{}

func (failingEngine) Tools() []domain.ToolDescriptor { return nil }

func (failingEngine) GenerateOne(string, map[string]any) (domain.Program, error) {
	return "", domain.ErrUnknownTemplate("CreateSketch")
}

func (failingEngine) GenerateMany([]domain.ToolCall) (domain.Program, error) {
	return "", domain.ErrSubstitution("CreateSketch", "plane_code")
}

func TestCallTool_InternalErrorIs500(t *testing.T) {
	handler := NewHandler(failingEngine{}, nil)

	rec := doJSON(t, handler, http.MethodPost, "/call_tool", ToolCallRequest{ToolName: "CreateSketch"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/call_tools", MultiToolCallRequest{
		ToolCalls: []ToolCallRequest{{ToolName: "CreateSketch"}},
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	doJSON(t, handler, http.MethodPost, "/call_tool", ToolCallRequest{ToolName: "CreateSketch"})
	doJSON(t, handler, http.MethodPost, "/call_tool", ToolCallRequest{ToolName: "Teleport"})

	rec := doJSON(t, handler, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fusemcp_scripts_generated_total{tool="CreateSketch"} 1`)
	assert.Contains(t, rec.Body.String(), `fusemcp_generation_errors_total{kind="unknown_tool"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/call_tool", nil)
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
