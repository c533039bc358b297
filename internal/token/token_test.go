package token

import "testing"

func TestLookupReturnsKeywordKind(t *testing.T) {
	if Lookup("function") != FUNCTION {
		t.Errorf("expected 'function' to resolve to FUNCTION")
	}
	if Lookup("somethingElse") != IDENT {
		t.Errorf("expected a non-keyword identifier to resolve to IDENT")
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Line: 3, Column: 7}
	if got := p.String(); got != "3:7" {
		t.Errorf("expected \"3:7\", got %q", got)
	}
}
