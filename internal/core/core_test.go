package core_test

import (
	"context"
	"errors"
	"testing"

	"commitgen/internal/core"
	"commitgen/internal/match"
)

type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) GenerateCommitMessage(_ context.Context, _ *core.Prompt) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestGenerateCommitHappyPath(t *testing.T) {
	provider := &fakeProvider{response: "feat: add parser\n---\nAdds a new parser module."}
	c := core.NewCore(provider)

	fd := &core.FilteredDiff{
		Files: []core.FileDiff{{Path: "parser.go", Kind: core.KindAdded, Body: "+func Parse() {}"}},
	}
	msg, err := c.GenerateCommit(context.Background(), core.GenerateOptions{Diff: fd})
	if err != nil {
		t.Fatalf("GenerateCommit() error = %v", err)
	}
	if msg.Title != "feat: add parser" {
		t.Errorf("Title = %q", msg.Title)
	}
	if msg.Body != "Adds a new parser module." {
		t.Errorf("Body = %q", msg.Body)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}

func TestGenerateCommitValidatesOptions(t *testing.T) {
	provider := &fakeProvider{response: "feat: x"}
	c := core.NewCore(provider)

	if _, err := c.GenerateCommit(context.Background(), core.GenerateOptions{}); !errors.Is(err, core.ErrNilFilteredDiff) {
		t.Errorf("GenerateCommit(nil diff) error = %v, want ErrNilFilteredDiff", err)
	}
	if _, err := c.GenerateCommit(context.Background(), core.GenerateOptions{Diff: &core.FilteredDiff{}}); !errors.Is(err, core.ErrNoFileDiffs) {
		t.Errorf("GenerateCommit(empty diff) error = %v, want ErrNoFileDiffs", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times for invalid options, want 0", provider.calls)
	}
}

// Filtering away every file must short-circuit before any provider call.
func TestEmptyFilterNeverReachesProvider(t *testing.T) {
	provider := &fakeProvider{response: "feat: never"}
	c := core.NewCore(provider)

	matcher, err := match.Compile([]string{"**"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	cs := &core.ChangeSet{Files: []core.FileDiff{{Path: "a.go", Body: "+x"}}}

	// Mirror the caller's contract: only a successful filter result may
	// reach the provider.
	fd, err := core.Filter(cs, matcher)
	if err == nil {
		if _, genErr := c.GenerateCommit(context.Background(), core.GenerateOptions{Diff: fd}); genErr != nil {
			t.Fatalf("GenerateCommit() error = %v", genErr)
		}
	}

	if !errors.Is(err, core.ErrNothingToAnalyze) {
		t.Fatalf("Filter() error = %v, want ErrNothingToAnalyze", err)
	}
	if fd != nil {
		t.Fatal("Filter() must not return a diff alongside ErrNothingToAnalyze")
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times, want 0", provider.calls)
	}
}

func TestGenerateCommitPropagatesProviderError(t *testing.T) {
	wantErr := errors.New("boom")
	c := core.NewCore(&fakeProvider{err: wantErr})

	fd := &core.FilteredDiff{Files: []core.FileDiff{{Path: "a.go", Body: "+x"}}}
	_, err := c.GenerateCommit(context.Background(), core.GenerateOptions{Diff: fd})
	if !errors.Is(err, wantErr) {
		t.Fatalf("GenerateCommit() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestGenerateCommitRejectsEmptyResponse(t *testing.T) {
	c := core.NewCore(&fakeProvider{response: "  \n "})

	fd := &core.FilteredDiff{Files: []core.FileDiff{{Path: "a.go", Body: "+x"}}}
	_, err := c.GenerateCommit(context.Background(), core.GenerateOptions{Diff: fd})
	if !errors.Is(err, core.ErrEmptyResponse) {
		t.Fatalf("GenerateCommit() error = %v, want ErrEmptyResponse", err)
	}
}
