package script

import (
	"strings"
	"testing"

	"github.com/fusemcp/fusemcp/pkg/domain"
)

func TestDeriveEdgeCollection_EmptyListFallsBackToAllEdges(t *testing.T) {
	g := newTestGenerator(t)

	frag, err := g.Generate(domain.ToolCall{Name: "Fillet", Parameters: map[string]any{"radius": 0.5}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(frag), "for edge in body.edges:") {
		t.Errorf("empty edge_indices should fall back to iterating all edges:\n%s", frag)
	}
}

func TestDeriveEdgeCollection_ExplicitIndices(t *testing.T) {
	g := newTestGenerator(t)

	frag, err := g.Generate(domain.ToolCall{Name: "Chamfer", Parameters: map[string]any{
		"distance":     0.2,
		"edge_indices": []any{0.0, 3.0},
	}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	text := string(frag)
	for _, want := range []string{"edge = body.edges.item(0)", "edge = body.edges.item(3)", "edgeCollection.add(edge)"} {
		if !strings.Contains(text, want) {
			t.Errorf("fragment missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "for edge in body.edges:") {
		t.Error("explicit indices must not trigger the all-edges fallback")
	}
}

func TestDeriveEdgeCollection_RejectsFractionalIndex(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.Generate(domain.ToolCall{Name: "Fillet", Parameters: map[string]any{
		"radius":       0.5,
		"edge_indices": []any{1.5},
	}})
	if domain.KindOf(err) != domain.KindInvalidValue {
		t.Errorf("kind = %v, want invalid_parameter_value", domain.KindOf(err))
	}
}

func TestDeriveShell_EmptyListIsNoOpComment(t *testing.T) {
	g := newTestGenerator(t)

	frag, err := g.Generate(domain.ToolCall{Name: "Shell", Parameters: map[string]any{"thickness": 0.3}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	text := string(frag)
	if !strings.Contains(text, "# No faces selected for removal") {
		t.Errorf("empty face_indices should produce the no-op comment:\n%s", text)
	}
	if strings.Contains(text, "faceCollection.add(face)") {
		t.Error("no faces should be added for an empty list")
	}
}

func TestDeriveShell_ExplicitFaces(t *testing.T) {
	g := newTestGenerator(t)

	frag, err := g.Generate(domain.ToolCall{Name: "Shell", Parameters: map[string]any{
		"thickness":    0.3,
		"face_indices": []any{2.0},
	}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(string(frag), "face = body.faces.item(2)") {
		t.Errorf("fragment missing face selection:\n%s", frag)
	}
}

func TestDeriveCombine_RejectsNew(t *testing.T) {
	p := Params{"operation": "new"}
	err := deriveCombine(p)
	if domain.KindOf(err) != domain.KindInvalidValue {
		t.Errorf("kind = %v, want invalid_parameter_value", domain.KindOf(err))
	}
	if !strings.Contains(err.Error(), "join, cut, intersect") {
		t.Errorf("error should list the valid operations: %v", err)
	}
}

func TestDeriveCombine_ResolvesOperation(t *testing.T) {
	p := Params{"operation": "Cut"}
	if err := deriveCombine(p); err != nil {
		t.Fatalf("deriveCombine() error = %v", err)
	}
	if p["operation_code"] != "CutFeature" {
		t.Errorf("operation_code = %v, want CutFeature", p["operation_code"])
	}
}

func TestDeriveExportBody_Formats(t *testing.T) {
	for format, want := range map[string]string{
		"stl":  "createSTLExportOptions(body)",
		"step": "createSTEPExportOptions()",
	} {
		p := Params{"format": format, "directory": "/tmp/exports"}
		if err := deriveExportBody(p); err != nil {
			t.Fatalf("deriveExportBody(%s) error = %v", format, err)
		}
		code, _ := p["export_options_code"].(string)
		if !strings.Contains(code, want) {
			t.Errorf("format %s: export_options_code = %q, want contains %q", format, code, want)
		}
	}
}

func TestDeriveExportBody_UnknownFormat(t *testing.T) {
	p := Params{"format": "dxf", "directory": "/tmp"}
	err := deriveExportBody(p)
	if domain.KindOf(err) != domain.KindInvalidValue {
		t.Errorf("kind = %v, want invalid_parameter_value", domain.KindOf(err))
	}
}

func TestDeriveExportBody_ExpandsHome(t *testing.T) {
	p := Params{"format": "stl", "directory": "~/Desktop"}
	if err := deriveExportBody(p); err != nil {
		t.Fatalf("deriveExportBody() error = %v", err)
	}
	dir, _ := p["directory"].(string)
	if strings.HasPrefix(dir, "~") {
		t.Errorf("directory %q should have the home prefix expanded", dir)
	}
	if !strings.HasSuffix(dir, "Desktop") {
		t.Errorf("directory %q should still end in Desktop", dir)
	}
}

func TestDeriveLoftProfiles(t *testing.T) {
	g := newTestGenerator(t)

	frag, err := g.Generate(domain.ToolCall{Name: "LoftProfiles", Parameters: map[string]any{
		"profile_indices": []any{0.0, 1.0},
		"is_closed":       true,
	}})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	text := string(frag)
	for _, want := range []string{
		"prof = sketch.profiles.item(0)",
		"prof = sketch.profiles.item(1)",
		"loftInput.isClosed = True",
		"adsk.fusion.FeatureOperations.NewBodyFeatureOperation",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("fragment missing %q:\n%s", want, text)
		}
	}
}

func TestDeriveLoftProfiles_EmptyListRejected(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.Generate(domain.ToolCall{Name: "LoftProfiles", Parameters: map[string]any{
		"profile_indices": []any{},
	}})
	if domain.KindOf(err) != domain.KindInvalidValue {
		t.Errorf("kind = %v, want invalid_parameter_value", domain.KindOf(err))
	}
}

func TestDeriveCreateSketch_AllPlanes(t *testing.T) {
	for plane, wantVar := range map[string]string{"xy": "xyPlane", "yz": "yzPlane", "xz": "xzPlane"} {
		p := Params{"plane": plane}
		if err := deriveCreateSketch(p); err != nil {
			t.Fatalf("deriveCreateSketch(%s) error = %v", plane, err)
		}
		if p["plane_var"] != wantVar {
			t.Errorf("plane %s: plane_var = %v, want %s", plane, p["plane_var"], wantVar)
		}
	}
}
