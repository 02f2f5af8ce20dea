package core

import (
	"fmt"
	"strings"
)

// Sentinel is the delimiter line the provider is instructed to emit
// between the commit title and body. The parser splits on it.
const Sentinel = "---"

const SystemPrompt = `You are an AI coding assistant that generates precise and structured Git commit messages. Analyze the provided diff and produce a commit message following the conventional commits format (e.g. fix(main), feat(cli), chore), using imperative verbs such as 'fix', 'add', 'remove'.

Your response must contain exactly two parts:
1. The commit title on a single line (72 characters or less), starting with a conventional commit type prefix.
2. A line containing only ` + Sentinel + `
3. The commit body: a bullet-point list explaining the meaningful changes.

Do not include any additional explanatory text, code fences, or a recap of the format. Only return the commit message.`

const userPreamble = "Analyze the following Git diff (lock files and excluded paths already removed) and generate a conventional commit message:\n\n"

const truncationNote = "\n[diff truncated to fit the request size limit]\n"

// DefaultMaxPromptBytes bounds the total request payload (system plus
// user text) sent to a provider.
const DefaultMaxPromptBytes = 16384

type PromptConfig struct {
	MaxBytes int
}

func DefaultPromptConfig() PromptConfig {
	return PromptConfig{MaxBytes: DefaultMaxPromptBytes}
}

// Prompt is a fully serialized generation request. Its total byte length
// never exceeds the PromptConfig budget it was built with.
type Prompt struct {
	System    string
	User      string
	Truncated bool
}

func (p *Prompt) Len() int {
	return len(p.System) + len(p.User)
}

// BuildPrompt serializes the filtered diff into a provider request. Each
// file gets a header line with its path and change kind; non-binary
// files are followed by their unified diff in a fenced block. When the
// serialized form exceeds the byte budget, diff bodies are trimmed
// largest-first (headers are never dropped) and a truncation note is
// appended. The same input always yields the same output.
func BuildPrompt(fd *FilteredDiff, subject string, cfg PromptConfig) *Prompt {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxPromptBytes
	}

	headers := make([]string, len(fd.Files))
	bodies := make([]string, len(fd.Files))
	fixed := len(SystemPrompt) + len(userPreamble)

	for i, f := range fd.Files {
		kind := f.Kind.String()
		if f.Binary {
			kind = "binary"
		}
		headers[i] = fmt.Sprintf("### %s (%s)\n", f.Path, kind)
		fixed += len(headers[i])
		if !f.Binary {
			bodies[i] = f.Body
			fixed += len("```diff\n") + len("\n```\n")
		}
		fixed++ // blank line between sections
	}

	subjectPart := ""
	if subject != "" {
		subjectPart = fmt.Sprintf("\nFocus on the following subject in your commit message: %s\n", subject)
		fixed += len(subjectPart)
	}

	truncated := false
	if fixed+totalLen(bodies) > cfg.MaxBytes {
		truncated = true
		budget := cfg.MaxBytes - fixed - len(truncationNote)
		if budget < 0 {
			budget = 0
		}
		trimLargestFirst(bodies, budget)
	}

	var b strings.Builder
	b.WriteString(userPreamble)
	for i, f := range fd.Files {
		b.WriteString(headers[i])
		if !f.Binary {
			b.WriteString("```diff\n")
			b.WriteString(bodies[i])
			b.WriteString("\n```\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(subjectPart)
	if truncated {
		b.WriteString(truncationNote)
	}

	user := b.String()
	// Headers alone can blow the budget when the change set is huge; the
	// length invariant wins over keeping every header intact.
	if len(SystemPrompt)+len(user) > cfg.MaxBytes {
		keep := cfg.MaxBytes - len(SystemPrompt)
		if keep < 0 {
			keep = 0
		}
		user = user[:keep]
		truncated = true
	}

	return &Prompt{
		System:    SystemPrompt,
		User:      user,
		Truncated: truncated,
	}
}

func totalLen(bodies []string) int {
	n := 0
	for _, s := range bodies {
		n += len(s)
	}
	return n
}

// trimLargestFirst cuts diff bodies down until their combined length
// fits the budget, always taking bytes from the end of the currently
// largest body. Ties go to the earlier file, keeping the result
// deterministic.
func trimLargestFirst(bodies []string, budget int) {
	for totalLen(bodies) > budget {
		largest := 0
		for i, s := range bodies {
			if len(s) > len(bodies[largest]) {
				largest = i
			}
		}
		if len(bodies[largest]) == 0 {
			return
		}
		cut := totalLen(bodies) - budget
		if cut > len(bodies[largest]) {
			cut = len(bodies[largest])
		}
		bodies[largest] = bodies[largest][:len(bodies[largest])-cut]
	}
}
