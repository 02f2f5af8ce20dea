package core

import (
	"regexp"
	"strings"
)

var conventionalPrefix = regexp.MustCompile(`^[a-z]+(\([^)]*\))?!?: \S`)

// HasConventionalPrefix reports whether a title starts with a
// conventional commit type prefix such as "feat:" or "fix(cli):".
// Absence is a quality warning for the caller, not a parse failure.
func HasConventionalPrefix(title string) bool {
	return conventionalPrefix.MatchString(title)
}

// ParseCommitMessage splits raw provider output into title and body on
// the sentinel line requested by the prompt. When the model ignored the
// sentinel instruction, the first non-empty line becomes the title and
// the rest the body. Returns ErrEmptyResponse for empty or
// whitespace-only input.
func ParseCommitMessage(raw string) (*CommitMessage, error) {
	text := strings.TrimSpace(stripFence(raw))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != Sentinel {
			continue
		}
		title := strings.TrimSpace(strings.Join(lines[:i], " "))
		body := strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
		if title == "" {
			// Sentinel with nothing before it; fall back on what remains.
			return fallbackSplit(body)
		}
		return &CommitMessage{Title: title, Body: body}, nil
	}

	return fallbackSplit(text)
}

func fallbackSplit(text string) (*CommitMessage, error) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return &CommitMessage{
			Title: strings.TrimSpace(line),
			Body:  strings.TrimSpace(strings.Join(lines[i+1:], "\n")),
		}, nil
	}
	return nil, ErrEmptyResponse
}

// stripFence removes a markdown code fence wrapping the whole response.
// Models occasionally add one despite the instructions.
func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
