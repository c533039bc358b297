package semantic_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/quill-lang/quillc/internal/parser"
	"github.com/quill-lang/quillc/internal/report"
	"github.com/quill-lang/quillc/internal/semantic"
)

// TestFixtures runs every ".ql" file under testdata/fixtures through the
// parser and checker and snapshots the resulting diagnostic report (empty
// when the fixture checks clean). A mismatch means either a regression or
// a deliberate behavior change; run with UPDATE_SNAPS=true to re-baseline.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/fixtures/*.ql")
	if err != nil {
		t.Fatalf("globbing fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("expected at least one fixture under testdata/fixtures")
	}
	for _, path := range files {
		name := filepath.Base(path)
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading %s: %v", path, err)
			}

			p := parser.New(string(src), name)
			unit := p.ParseUnit()
			if len(p.Errors()) > 0 {
				t.Fatalf("unexpected parse errors in %s: %v", name, p.Errors())
			}

			c := semantic.NewChecker(string(src), name)
			c.CheckUnit(unit)

			report.Sort(c.Errors)
			snaps.MatchSnapshot(t, report.Text(c.Errors, false))
		})
	}
}
