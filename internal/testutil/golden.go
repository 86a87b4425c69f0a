package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Golden compares got against testdata/<name>.golden.
// Set GOLDEN_UPDATE to rewrite the file instead.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")

	if os.Getenv("GOLDEN_UPDATE") != "" {
		if err := os.MkdirAll("testdata", 0755); err != nil {
			t.Fatalf("failed to create testdata dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, got, 0644); err != nil {
			t.Fatalf("failed to update golden file: %v", err)
		}
		return
	}

	want, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nGot:\n%s", goldenPath, err, got)
	}

	if bytes.Equal(got, want) {
		return
	}
	line, wantLine, gotLine := firstDiff(string(want), string(got))
	t.Errorf("output mismatch for %s at line %d\nwant: %q\ngot:  %q\n(run with GOLDEN_UPDATE=1 to accept)",
		name, line, wantLine, gotLine)
}

// GoldenString is like Golden but takes a string.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

// firstDiff returns the 1-based number of the first differing line and
// both versions of it. A missing line is reported as "<EOF>".
func firstDiff(want, got string) (int, string, string) {
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(got, "\n")

	for i := 0; ; i++ {
		w, g := "<EOF>", "<EOF>"
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g || (i >= len(wantLines) && i >= len(gotLines)) {
			return i + 1, w, g
		}
	}
}
