package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/fusemcp/fusemcp/pkg/domain"
	"github.com/fusemcp/fusemcp/pkg/schema"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var defaultRegistry []byte

// Catalog is the immutable set of tool descriptors available at runtime.
// It is loaded once at process start and never mutated afterwards, so it
// is safe for concurrent reads without locking.
type Catalog struct {
	tools  []domain.ToolDescriptor
	byName map[string]int
}

// rawTool mirrors the registry file shape. Parameters are decoded as loose
// maps so that an absent "default" key can be told apart from an explicit
// zero value.
type rawTool struct {
	Name        string                    `yaml:"name"`
	Description string                    `yaml:"description"`
	Parameters  map[string]map[string]any `yaml:"parameters"`
	Docs        string                    `yaml:"docs"`
}

// Default parses the registry embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultRegistry)
}

// Load reads and parses a registry file. The file is a YAML sequence of
// tool descriptors; JSON registries parse too since YAML is a superset.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a Catalog from registry bytes. Any malformed descriptor is
// an error: the caller must not serve requests with a partial catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw []rawTool
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("registry contains no tools")
	}

	c := &Catalog{byName: make(map[string]int, len(raw))}
	for _, rt := range raw {
		desc, err := buildDescriptor(rt)
		if err != nil {
			return nil, err
		}
		if _, exists := c.byName[desc.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name: %s", desc.Name)
		}
		c.byName[desc.Name] = len(c.tools)
		c.tools = append(c.tools, desc)
	}
	return c, nil
}

func buildDescriptor(rt rawTool) (domain.ToolDescriptor, error) {
	if rt.Name == "" {
		return domain.ToolDescriptor{}, fmt.Errorf("tool descriptor missing name")
	}
	if rt.Description == "" {
		return domain.ToolDescriptor{}, fmt.Errorf("tool %s: missing description", rt.Name)
	}

	desc := domain.ToolDescriptor{
		Name:        rt.Name,
		Description: rt.Description,
		Parameters:  make(map[string]domain.ParameterSpec, len(rt.Parameters)),
		Docs:        rt.Docs,
	}

	for pname, fields := range rt.Parameters {
		spec, err := buildParameter(rt.Name, pname, fields)
		if err != nil {
			return domain.ToolDescriptor{}, err
		}
		desc.Parameters[pname] = spec
	}
	return desc, nil
}

func buildParameter(tool, name string, fields map[string]any) (domain.ParameterSpec, error) {
	typeStr, _ := fields["type"].(string)
	if typeStr == "" {
		return domain.ParameterSpec{}, fmt.Errorf("tool %s: parameter %s: missing type", tool, name)
	}
	t, err := schema.ParseType(typeStr)
	if err != nil {
		return domain.ParameterSpec{}, fmt.Errorf("tool %s: parameter %s: %w", tool, name, err)
	}

	spec := domain.ParameterSpec{Type: typeStr}
	if d, ok := fields["description"].(string); ok {
		spec.Description = d
	}
	if def, ok := fields["default"]; ok {
		if err := t.Validate(def); err != nil {
			return domain.ParameterSpec{}, fmt.Errorf("tool %s: parameter %s: default does not match declared type: %v", tool, name, err)
		}
		spec.Default = def
		spec.HasDefault = true
	}
	return spec, nil
}

// Lookup returns the descriptor for name. The second result is false when
// no tool with that name exists.
func (c *Catalog) Lookup(name string) (domain.ToolDescriptor, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.ToolDescriptor{}, false
	}
	return c.tools[i], true
}

// All returns every descriptor in registry order. The returned slice is a
// copy; mutating it does not affect the catalog.
func (c *Catalog) All() []domain.ToolDescriptor {
	out := make([]domain.ToolDescriptor, len(c.tools))
	copy(out, c.tools)
	return out
}

// Names returns the tool names in registry order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.tools))
	for i, t := range c.tools {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int {
	return len(c.tools)
}
