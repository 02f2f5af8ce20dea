package match_test

import (
	"errors"
	"testing"

	"commitgen/internal/match"
)

func TestCompileCommaEquivalence(t *testing.T) {
	commaSeparated, err := match.Compile([]string{"a.txt,b/*.go,c/**"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	separate, err := match.Compile([]string{"a.txt", "b/*.go", "c/**"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	paths := []string{
		"a.txt",
		"b/x.go",
		"b/sub/x.go",
		"c/deep/nested/file",
		"unrelated.md",
	}
	for _, p := range paths {
		if commaSeparated.Matches(p) != separate.Matches(p) {
			t.Errorf("Matches(%q): comma form = %v, separate form = %v",
				p, commaSeparated.Matches(p), separate.Matches(p))
		}
	}
}

func TestNormalize(t *testing.T) {
	got := match.Normalize([]string{"*.log, target/**", "", "docs/*"})
	want := []string{"*.log", "target/**", "docs/*"}
	if len(got) != len(want) {
		t.Fatalf("Normalize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Normalize()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	_, err := match.Compile([]string{"["})
	if err == nil {
		t.Fatal("Compile() expected error for invalid pattern")
	}
	var invalidErr *match.InvalidPatternError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Compile() error = %T, want *InvalidPatternError", err)
	}
	if invalidErr.Pattern != "[" {
		t.Errorf("InvalidPatternError.Pattern = %q, want %q", invalidErr.Pattern, "[")
	}
}

func TestMatchesGlobSemantics(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"single star matches within segment", []string{"*.log"}, "a.log", true},
		{"single star does not cross segments", []string{"*.log"}, "logs/a.log", false},
		{"double star crosses segments", []string{"target/**"}, "target/debug/x", true},
		{"double star requires prefix", []string{"target/**"}, "src/target", false},
		{"literal path", []string{"src/main.rs"}, "src/main.rs", true},
		{"case sensitive", []string{"README.md"}, "readme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := match.Compile(tt.patterns)
			if err != nil {
				t.Fatalf("Compile(%v) error = %v", tt.patterns, err)
			}
			if got := rs.Matches(tt.path); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesEmptyRuleSet(t *testing.T) {
	rs, err := match.Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil) error = %v", err)
	}
	if rs.Matches("anything") {
		t.Error("empty rule set should match nothing")
	}
}
