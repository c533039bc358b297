package quillc

import "testing"

func TestCheckAcceptsWellTypedFunction(t *testing.T) {
	src := `function add(int a, int b) -> int { return a + b; }`
	result, err := Check(src, "add.ql", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK, got diagnostics: %s", result.Text(false))
	}
}

func TestCheckReportsSyntaxError(t *testing.T) {
	src := `function add(int a, int b) -> int { return a +; }`
	result, err := Check(src, "add.ql", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.OK {
		t.Fatalf("expected a syntax error to be reported")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestCheckReportsSubtypeError(t *testing.T) {
	src := `function bad() -> int { return true; }`
	result, err := Check(src, "bad.ql", nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if result.OK {
		t.Fatalf("expected a subtype error to be reported")
	}
}
