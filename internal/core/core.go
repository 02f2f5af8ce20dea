package core

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

var (
	ErrNilFilteredDiff = errors.New("filtered diff cannot be nil")
	ErrNoFileDiffs     = errors.New("filtered diff contains no files")
)

// Mode selects which change set is collected from the working tree.
type Mode int

const (
	// Unstaged compares the working tree against the index.
	Unstaged Mode = iota
	// Staged compares the index against HEAD.
	Staged
)

func (m Mode) String() string {
	if m == Staged {
		return "staged"
	}
	return "unstaged"
}

// ChangeKind classifies a single file entry within a change set.
type ChangeKind int

const (
	KindModified ChangeKind = iota
	KindAdded
	KindDeleted
	KindRenamed
	KindCopied
)

func (k ChangeKind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindDeleted:
		return "deleted"
	case KindRenamed:
		return "renamed"
	case KindCopied:
		return "copied"
	default:
		return "modified"
	}
}

// FileDiff is one changed file: its path relative to the repository root,
// its unified diff text, and whether git reported it as binary. Binary
// files carry an empty Body.
type FileDiff struct {
	Path   string
	Kind   ChangeKind
	Body   string
	Binary bool
}

// ChangeSet is the ordered list of file diffs collected for one mode.
type ChangeSet struct {
	Mode  Mode
	Files []FileDiff
}

// FilteredDiff is a ChangeSet reduced to the files that survived
// exclusion filtering. Order is preserved from the source ChangeSet.
type FilteredDiff struct {
	Mode  Mode
	Files []FileDiff
}

// CommitMessage is the parsed result of a generation run: a single-line
// title and an optional multi-line body.
type CommitMessage struct {
	Title string
	Body  string
}

// Matcher reports whether a relative path matches the user's exclusion
// patterns. Implemented by match.RuleSet; alternate engines can be
// substituted without touching the filter.
type Matcher interface {
	Matches(path string) bool
}

// Provider is the generation backend. Implementations send the prompt to
// a remote service and return its raw text response.
type Provider interface {
	GenerateCommitMessage(ctx context.Context, prompt *Prompt) (string, error)
	Name() string
}

type Core struct {
	provider  Provider
	promptCfg PromptConfig
}

func NewCore(provider Provider) *Core {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return &Core{
		provider:  provider,
		promptCfg: DefaultPromptConfig(),
	}
}

func (c *Core) IsDebug() bool {
	return os.Getenv("DEBUG") != ""
}

type GenerateOptions struct {
	Diff *FilteredDiff
	// Subject is an optional focus hint forwarded into the prompt.
	Subject string
}

func (o *GenerateOptions) validate() error {
	if o.Diff == nil {
		return ErrNilFilteredDiff
	}
	if len(o.Diff.Files) == 0 {
		return ErrNoFileDiffs
	}
	return nil
}

// GenerateCommit runs the back half of the pipeline: build the prompt,
// call the provider, parse its response. Collection and filtering happen
// before this point so an empty diff never reaches the provider.
func (c *Core) GenerateCommit(ctx context.Context, opts GenerateOptions) (*CommitMessage, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	prompt := BuildPrompt(opts.Diff, opts.Subject, c.promptCfg)

	if c.IsDebug() {
		log.Debug().
			Int("system_bytes", len(prompt.System)).
			Int("user_bytes", len(prompt.User)).
			Bool("truncated", prompt.Truncated).
			Str("provider", c.provider.Name()).
			Msg("Sending prompt")
	}

	raw, err := c.provider.GenerateCommitMessage(ctx, prompt)
	if err != nil {
		return nil, &ErrGeneratingCommit{Msg: c.provider.Name(), Err: err}
	}

	msg, err := ParseCommitMessage(raw)
	if err != nil {
		return nil, &ErrParsingCommit{Msg: "provider response", Err: err}
	}

	if !HasConventionalPrefix(msg.Title) {
		log.Warn().Str("title", msg.Title).Msg("Title is missing a conventional commit type prefix")
	}

	return msg, nil
}
