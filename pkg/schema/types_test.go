package schema

import "testing"

func TestParseType_Known(t *testing.T) {
	for _, name := range []string{"string", "number", "integer", "boolean", "array"} {
		typ, err := ParseType(name)
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v, want nil", name, err)
		}
		if typ.Name() != name {
			t.Errorf("ParseType(%q).Name() = %q", name, typ.Name())
		}
	}
}

func TestParseType_Unknown(t *testing.T) {
	if _, err := ParseType("object"); err == nil {
		t.Fatal("ParseType(object) should return error")
	}
}

func TestString_Validate(t *testing.T) {
	if err := String().Validate("xy"); err != nil {
		t.Errorf("Validate(string) error = %v, want nil", err)
	}
	if err := String().Validate(10); err == nil {
		t.Error("Validate(int) should fail for string type")
	}
}

func TestNumber_Validate(t *testing.T) {
	for _, v := range []any{10, 10.5, float64(0), int64(3)} {
		if err := Number().Validate(v); err != nil {
			t.Errorf("Validate(%v) error = %v, want nil", v, err)
		}
	}
	if err := Number().Validate("10"); err == nil {
		t.Error("Validate(string) should fail for number type")
	}
}

func TestInteger_Validate(t *testing.T) {
	if err := Integer().Validate(3); err != nil {
		t.Errorf("Validate(3) error = %v, want nil", err)
	}
	// JSON numbers arrive as float64; whole values are integers.
	if err := Integer().Validate(float64(3)); err != nil {
		t.Errorf("Validate(3.0) error = %v, want nil", err)
	}
	if err := Integer().Validate(3.5); err == nil {
		t.Error("Validate(3.5) should fail for integer type")
	}
	if err := Integer().Validate(true); err == nil {
		t.Error("Validate(bool) should fail for integer type")
	}
}

func TestBoolean_Validate(t *testing.T) {
	if err := Boolean().Validate(false); err != nil {
		t.Errorf("Validate(false) error = %v, want nil", err)
	}
	if err := Boolean().Validate("false"); err == nil {
		t.Error("Validate(string) should fail for boolean type")
	}
}

func TestArray_Validate(t *testing.T) {
	if err := Array().Validate([]any{1, 2}); err != nil {
		t.Errorf("Validate([]any) error = %v, want nil", err)
	}
	if err := Array().Validate([]int{1, 2}); err != nil {
		t.Errorf("Validate([]int) error = %v, want nil", err)
	}
	if err := Array().Validate(map[string]any{}); err == nil {
		t.Error("Validate(map) should fail for array type")
	}
}
