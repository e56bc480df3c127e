package fusemcp

import (
	"io"
	"log/slog"

	"github.com/fusemcp/fusemcp/pkg/catalog"
	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/fusemcp/fusemcp/pkg/script"
)

// Version is the release version reported by transports and the CLI.
var Version = "0.2.0"

// Engine is the high-level entry point for the fusemcp library and the
// seam all transports call into. It wraps the catalog and the script
// generator behind two operations: generate one program for a single tool
// call, or one program for an ordered batch.
type Engine struct {
	catalog      *catalog.Catalog
	generator    *script.Generator
	logger       *slog.Logger
	registryPath string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCatalog injects an already-loaded catalog, bypassing the embedded
// default registry.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithRegistryFile loads the catalog from a registry file instead of the
// embedded default. Ignored when WithCatalog is also given.
func WithRegistryFile(path string) Option {
	return func(e *Engine) {
		e.registryPath = path
	}
}

// New initializes an Engine. Without options it loads the registry
// embedded in the binary. A malformed registry is a startup error and no
// Engine is returned: the process must not serve with a partial catalog.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.catalog == nil {
		var (
			c   *catalog.Catalog
			err error
		)
		if eng.registryPath != "" {
			c, err = catalog.Load(eng.registryPath)
		} else {
			c, err = catalog.Default()
		}
		if err != nil {
			return nil, err
		}
		eng.catalog = c
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	eng.generator = script.New(eng.catalog)

	if missing := eng.generator.CheckTemplates(); len(missing) > 0 {
		// Catalog/template drift is a configuration defect but not fatal:
		// the affected tools fail with UnknownTemplate, everything else
		// keeps serving. Surfaced here so operators spot it at startup.
		eng.logger.Warn("catalog tools without templates", "tools", missing)
	}
	return eng, nil
}

// Tools returns every catalog descriptor in registry order.
func (e *Engine) Tools() []domain.ToolDescriptor {
	return e.catalog.All()
}

// Lookup returns the descriptor for a tool name.
func (e *Engine) Lookup(name string) (domain.ToolDescriptor, bool) {
	return e.catalog.Lookup(name)
}

// CheckTemplates reports catalog tools that have no registered template.
func (e *Engine) CheckTemplates() []string {
	return e.generator.CheckTemplates()
}

// GenerateOne produces a complete program for a single tool call.
func (e *Engine) GenerateOne(toolName string, parameters map[string]any) (domain.Program, error) {
	fragment, err := e.generator.Generate(domain.ToolCall{Name: toolName, Parameters: parameters})
	if err != nil {
		e.logger.Debug("generation failed", "tool", toolName, "kind", domain.KindOf(err), "error", err)
		return "", err
	}
	return e.generator.Compose([]domain.Fragment{fragment}), nil
}

// GenerateMany produces one program from an ordered sequence of tool
// calls. Fragments appear in exactly the given order. The operation is
// atomic: if any call fails, the first error is returned and no program is
// produced.
func (e *Engine) GenerateMany(calls []domain.ToolCall) (domain.Program, error) {
	fragments := make([]domain.Fragment, 0, len(calls))
	for _, call := range calls {
		fragment, err := e.generator.Generate(call)
		if err != nil {
			e.logger.Debug("batch generation failed", "tool", call.Name, "kind", domain.KindOf(err), "error", err)
			return "", err
		}
		fragments = append(fragments, fragment)
	}
	return e.generator.Compose(fragments), nil
}
