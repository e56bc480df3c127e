package script

import (
	"sort"
	"strings"

	"github.com/fusemcp/fusemcp/pkg/catalog"
	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/fusemcp/fusemcp/pkg/schema"
)

// Params is the processed parameter set for one fragment generation: the
// caller's arguments plus filled defaults plus derived template values. It
// lives only for the duration of a single expansion.
type Params map[string]any

// toolSpec pairs a tool's fragment template with its derivation logic.
// Registering a tool is one entry here plus a catalog descriptor; the
// engine itself never changes.
type toolSpec struct {
	template string
	derive   DeriveFunc
}

// builtins holds the tools shipped with the generator. Derive may be nil
// for tools whose templates only reference declared parameters.
var builtins = map[string]toolSpec{
	"CreateSketch":  {template: createSketchTemplate, derive: deriveCreateSketch},
	"DrawRectangle": {template: drawRectangleTemplate},
	"DrawCircle":    {template: drawCircleTemplate},
	"Extrude":       {template: extrudeTemplate, derive: deriveFeatureOperation},
	"Revolve":       {template: revolveTemplate, derive: deriveFeatureOperation},
	"Fillet":        {template: filletTemplate, derive: deriveEdgeCollection},
	"Chamfer":       {template: chamferTemplate, derive: deriveEdgeCollection},
	"Shell":         {template: shellTemplate, derive: deriveShell},
	"Combine":       {template: combineTemplate, derive: deriveCombine},
	"ExportBody":    {template: exportBodyTemplate, derive: deriveExportBody},
	"LoftProfiles":  {template: loftProfilesTemplate, derive: deriveLoftProfiles},
}

// Generator turns validated tool calls into script fragments and composes
// them into complete programs. It holds no mutable state after
// construction and is safe for concurrent use.
type Generator struct {
	catalog *catalog.Catalog
	specs   map[string]toolSpec
}

// New creates a Generator over the given catalog with the built-in tool
// templates registered.
func New(c *catalog.Catalog) *Generator {
	specs := make(map[string]toolSpec, len(builtins))
	for name, spec := range builtins {
		specs[name] = spec
	}
	return &Generator{catalog: c, specs: specs}
}

// Register adds or replaces a tool's template and derivation. It must be
// called before the generator starts serving requests; the spec table is
// read-only afterwards.
func (g *Generator) Register(name, template string, derive DeriveFunc) {
	g.specs[name] = toolSpec{template: template, derive: derive}
}

// Process validates and completes the raw arguments for a tool call:
// defensive copy, unconditional defaulting, declared-type checking, then
// tool-specific derivation. The input map is never mutated.
func (g *Generator) Process(toolName string, raw map[string]any) (Params, error) {
	desc, ok := g.catalog.Lookup(toolName)
	if !ok {
		return nil, domain.ErrUnknownTool(toolName)
	}

	p := make(Params, len(raw)+len(desc.Parameters))
	for k, v := range raw {
		p[k] = v
	}

	// Defaults are filled before any tool-specific logic, and presence is
	// checked over sorted names so the first error reported is stable.
	names := make([]string, 0, len(desc.Parameters))
	for name := range desc.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := desc.Parameters[name]
		if _, supplied := p[name]; !supplied {
			if !spec.HasDefault {
				return nil, domain.ErrMissingParameter(toolName, name)
			}
			p[name] = spec.Default
		}
	}

	for _, name := range names {
		spec := desc.Parameters[name]
		t, err := schema.ParseType(spec.Type)
		if err != nil {
			// Unparseable types are rejected at catalog load; this guards
			// generators built over hand-constructed catalogs.
			return nil, domain.ErrInvalidValue("parameter %q: %v", name, err)
		}
		if err := t.Validate(p[name]); err != nil {
			verr := &schema.ValidationError{Key: name, Reason: err.Error(), Value: p[name]}
			return nil, domain.ErrInvalidValue("%v", verr)
		}
	}

	if spec, ok := g.specs[toolName]; ok && spec.derive != nil {
		if err := spec.derive(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Expand maps a tool name to its fragment template and substitutes the
// processed parameters into it.
func (g *Generator) Expand(toolName string, p Params) (domain.Fragment, error) {
	spec, ok := g.specs[toolName]
	if !ok {
		return "", domain.ErrUnknownTemplate(toolName)
	}
	text, err := interpolate(toolName, spec.template, p)
	if err != nil {
		return "", err
	}
	return domain.Fragment(text), nil
}

// Generate runs Process then Expand for a single call.
func (g *Generator) Generate(call domain.ToolCall) (domain.Fragment, error) {
	p, err := g.Process(call.Name, call.Parameters)
	if err != nil {
		return "", err
	}
	return g.Expand(call.Name, p)
}

// Compose concatenates fragments in the given order, indents the combined
// body uniformly and wraps it in the fixed outer scaffold. Composition is
// order-preserving: no reordering, deduplication or cross-fragment
// validation happens here.
func (g *Generator) Compose(fragments []domain.Fragment) domain.Program {
	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = string(f)
	}
	body := indentBody(strings.TrimSpace(strings.Join(parts, "\n")))
	return domain.Program(strings.Replace(baseScaffold, bodyPlaceholder, body, 1))
}

// CheckTemplates reports catalog tools that have no registered template,
// in registry order. A non-empty result means the catalog and the template
// table have drifted apart; requests for those tools fail with
// UnknownTemplate until the pairing is fixed.
func (g *Generator) CheckTemplates() []string {
	var missing []string
	for _, name := range g.catalog.Names() {
		if _, ok := g.specs[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// indentBody prefixes every non-empty line with the scaffold's body
// indentation (two levels, matching the try block of run(context)).
func indentBody(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "        " + line
		}
	}
	return strings.Join(lines, "\n")
}
