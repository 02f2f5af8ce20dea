package core_test

import (
	"strings"
	"testing"

	"commitgen/internal/core"
)

func TestBuildPromptContainsHeadersAndBodies(t *testing.T) {
	fd := &core.FilteredDiff{
		Mode: core.Unstaged,
		Files: []core.FileDiff{
			{Path: "src/main.go", Kind: core.KindModified, Body: "-old line\n+new line"},
			{Path: "assets/logo.png", Kind: core.KindAdded, Binary: true},
		},
	}

	p := core.BuildPrompt(fd, "", core.DefaultPromptConfig())

	if !strings.Contains(p.User, "### src/main.go (modified)") {
		t.Error("prompt missing header for modified file")
	}
	if !strings.Contains(p.User, "### assets/logo.png (binary)") {
		t.Error("prompt missing header for binary file")
	}
	if !strings.Contains(p.User, "+new line") {
		t.Error("prompt missing diff body")
	}
	if p.Truncated {
		t.Error("small prompt should not be truncated")
	}
	if !strings.Contains(p.System, core.Sentinel) {
		t.Error("system prompt must describe the sentinel")
	}
}

func TestBuildPromptSubjectHint(t *testing.T) {
	fd := &core.FilteredDiff{
		Files: []core.FileDiff{{Path: "a.go", Body: "+x"}},
	}
	p := core.BuildPrompt(fd, "the parser rewrite", core.DefaultPromptConfig())
	if !strings.Contains(p.User, "the parser rewrite") {
		t.Error("subject hint missing from prompt")
	}
}

func TestBuildPromptNeverExceedsBudget(t *testing.T) {
	cfg := core.PromptConfig{MaxBytes: 8192}

	// Synthetic diffs of wildly different sizes, including ones far past
	// the budget on their own.
	sizes := []int{10, 100_000, 500, 250_000, 0, 64}
	for run := 0; run < 4; run++ {
		fd := &core.FilteredDiff{Mode: core.Staged}
		for i, size := range sizes {
			fd.Files = append(fd.Files, core.FileDiff{
				Path: strings.Repeat("d/", run+1) + "file" + string(rune('a'+i)) + ".go",
				Kind: core.KindModified,
				Body: strings.Repeat("+x\n", size),
			})
		}

		p := core.BuildPrompt(fd, "", cfg)
		if p.Len() > cfg.MaxBytes {
			t.Fatalf("run %d: prompt length %d exceeds budget %d", run, p.Len(), cfg.MaxBytes)
		}
		if !p.Truncated {
			t.Fatalf("run %d: oversized input must report truncation", run)
		}
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	fd := &core.FilteredDiff{
		Files: []core.FileDiff{
			{Path: "a.go", Body: strings.Repeat("+a\n", 5000)},
			{Path: "b.go", Body: strings.Repeat("+b\n", 9000)},
			{Path: "c.go", Body: "+tiny"},
		},
	}
	cfg := core.PromptConfig{MaxBytes: 4096}

	first := core.BuildPrompt(fd, "", cfg)
	second := core.BuildPrompt(fd, "", cfg)

	if first.User != second.User || first.System != second.System {
		t.Fatal("BuildPrompt is not deterministic for identical input")
	}
}

func TestBuildPromptTruncatesLargestFirst(t *testing.T) {
	small := "+small change"
	fd := &core.FilteredDiff{
		Files: []core.FileDiff{
			{Path: "small.go", Body: small},
			{Path: "huge.go", Body: strings.Repeat("+hhh\n", 20_000)},
		},
	}
	p := core.BuildPrompt(fd, "", core.PromptConfig{MaxBytes: 4096})

	if !p.Truncated {
		t.Fatal("expected truncation")
	}
	if !strings.Contains(p.User, small) {
		t.Error("smallest body should survive intact; largest is cut first")
	}
	if !strings.Contains(p.User, "### huge.go (modified)") {
		t.Error("headers must never be dropped by body truncation")
	}
	if !strings.Contains(p.User, "[diff truncated") {
		t.Error("truncation note missing")
	}
}
