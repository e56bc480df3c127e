package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fusemcp/fusemcp/pkg/domain"
)

// DeriveFunc applies tool-specific derivation to a processed parameter set:
// resolving enumeration values to host API codes, synthesizing repeated
// sub-fragments from index lists, and similar template-ready values. It
// mutates p in place; p is always a private copy of the caller's arguments.
type DeriveFunc func(p Params) error

// featureOperations maps the user-facing operation names to the host API
// feature operation prefixes (the template appends "FeatureOperation").
var featureOperations = map[string]string{
	"new":       "NewBody",
	"join":      "JoinFeature",
	"cut":       "CutFeature",
	"intersect": "IntersectFeature",
}

var sketchPlanes = map[string]struct {
	code string
	name string
}{
	"xy": {code: "xyPlane = component.xYConstructionPlane", name: "xyPlane"},
	"yz": {code: "yzPlane = component.yZConstructionPlane", name: "yzPlane"},
	"xz": {code: "xzPlane = component.xZConstructionPlane", name: "xzPlane"},
}

var exportOptions = map[string]string{
	"stl":  "options = exportMgr.createSTLExportOptions(body)",
	"obj":  "options = exportMgr.createOBJExportOptions(body)",
	"step": "options = exportMgr.createSTEPExportOptions()",
	"iges": "options = exportMgr.createIGESExportOptions()",
	"sat":  "options = exportMgr.createSATExportOptions()",
}

func deriveCreateSketch(p Params) error {
	plane := strings.ToLower(stringParam(p, "plane"))
	target, ok := sketchPlanes[plane]
	if !ok {
		return domain.ErrInvalidValue("invalid plane: %s (must be one of: xy, yz, xz)", plane)
	}
	// Normalized so the generated comment is identical regardless of the
	// letter case the caller used.
	p["plane"] = plane
	p["plane_code"] = target.code
	p["plane_var"] = target.name
	return nil
}

func deriveFeatureOperation(p Params) error {
	op := strings.ToLower(stringParam(p, "operation"))
	code, ok := featureOperations[op]
	if !ok {
		return domain.ErrInvalidValue("invalid operation: %s (must be one of: new, join, cut, intersect)", op)
	}
	p["operation_code"] = code
	return nil
}

func deriveCombine(p Params) error {
	op := strings.ToLower(stringParam(p, "operation"))
	if op == "new" {
		// Combine always needs an existing target; "new" is only valid for
		// profile features.
		return domain.ErrInvalidValue("invalid operation: %s (must be one of: join, cut, intersect)", op)
	}
	code, ok := featureOperations[op]
	if !ok {
		return domain.ErrInvalidValue("invalid operation: %s (must be one of: join, cut, intersect)", op)
	}
	p["operation_code"] = code
	return nil
}

// deriveEdgeCollection synthesizes one add-statement pair per edge index.
// An empty list falls back to collecting every edge on the body ("apply to
// all"), matching the documented behavior of Fillet and Chamfer.
func deriveEdgeCollection(p Params) error {
	indices, err := indexList(p, "edge_indices")
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		p["edge_collection_code"] = "for edge in body.edges:\n    edgeCollection.add(edge)"
		return nil
	}
	var lines []string
	for _, idx := range indices {
		lines = append(lines, fmt.Sprintf("edge = body.edges.item(%s)", idx))
		lines = append(lines, "edgeCollection.add(edge)")
	}
	p["edge_collection_code"] = strings.Join(lines, "\n")
	return nil
}

// deriveShell synthesizes face collection statements. Unlike the edge
// tools, an empty face list is a no-op comment rather than "all faces":
// shelling with no removed faces hollows the body without opening it.
func deriveShell(p Params) error {
	indices, err := indexList(p, "face_indices")
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		p["face_collection_code"] = "# No faces selected for removal"
		return nil
	}
	var lines []string
	for _, idx := range indices {
		lines = append(lines, fmt.Sprintf("face = body.faces.item(%s)", idx))
		lines = append(lines, "faceCollection.add(face)")
	}
	p["face_collection_code"] = strings.Join(lines, "\n")
	return nil
}

func deriveExportBody(p Params) error {
	format := strings.ToLower(stringParam(p, "format"))
	code, ok := exportOptions[format]
	if !ok {
		return domain.ErrInvalidValue("invalid format: %s (must be one of: stl, obj, step, iges, sat)", format)
	}
	p["export_options_code"] = code

	if dir := stringParam(p, "directory"); strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			p["directory"] = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return nil
}

func deriveLoftProfiles(p Params) error {
	indices, err := indexList(p, "profile_indices")
	if err != nil {
		return err
	}
	if len(indices) == 0 {
		return domain.ErrInvalidValue("profile_indices is required and must not be empty")
	}
	var lines []string
	for _, idx := range indices {
		lines = append(lines, fmt.Sprintf("prof = sketch.profiles.item(%s)", idx))
		lines = append(lines, "profiles.append(prof)")
	}
	p["profile_collection_code"] = strings.Join(lines, "\n")

	if err := deriveFeatureOperation(p); err != nil {
		return err
	}

	if closed, _ := p["is_closed"].(bool); closed {
		p["closed_code"] = "loftInput.isClosed = True"
	} else {
		p["closed_code"] = "# Not a closed loft"
	}
	return nil
}

// stringParam reads a string parameter; declared types are checked before
// derivation, so a missing or non-string value yields "".
func stringParam(p Params, key string) string {
	s, _ := p[key].(string)
	return s
}

// indexList reads an array parameter and formats each element as an
// integer literal. Rejects fractional or non-numeric elements.
func indexList(p Params, key string) ([]string, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}
	elems, ok := asSlice(raw)
	if !ok {
		return nil, domain.ErrInvalidValue("parameter %q: expected an array of integers", key)
	}
	out := make([]string, 0, len(elems))
	for i, e := range elems {
		s, err := formatIndex(e)
		if err != nil {
			return nil, domain.ErrInvalidValue("parameter %q: element %d: %v", key, i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

func formatIndex(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return fmt.Sprintf("%d", n), nil
	case int64:
		return fmt.Sprintf("%d", n), nil
	case float64:
		if n != float64(int64(n)) {
			return "", fmt.Errorf("expected integer, got %v", n)
		}
		return fmt.Sprintf("%d", int64(n)), nil
	default:
		return "", fmt.Errorf("expected integer, got %T", v)
	}
}
