// Package git collects pending changes from a working tree by driving
// the git binary, with go-git handling repository discovery.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog/log"

	"commitgen/internal/core"
)

// ErrNotARepository reports that the given path is not inside a git
// working tree.
var ErrNotARepository = errors.New("not a git repository")

// InvocationError reports a git invocation that failed: the binary is
// missing or exited non-zero.
type InvocationError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *InvocationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Discover verifies that dir is inside a git working tree.
func Discover(dir string) error {
	_, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return fmt.Errorf("%w: %s", ErrNotARepository, dir)
		}
		return fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}
	return nil
}

// Collect returns the ordered change set for the requested mode:
// Unstaged diffs the working tree against the index, Staged diffs the
// index against HEAD. Read-only.
func Collect(ctx context.Context, dir string, mode core.Mode) (*core.ChangeSet, error) {
	if err := Discover(dir); err != nil {
		return nil, err
	}

	entries, err := changedPaths(ctx, dir, mode)
	if err != nil {
		return nil, err
	}

	cs := &core.ChangeSet{Mode: mode}
	for _, e := range entries {
		body, err := fileDiff(ctx, dir, mode, e.path)
		if err != nil {
			log.Warn().Err(err).Str("file", e.path).Msg("Failed to get diff for file")
			continue
		}
		fd := core.FileDiff{Path: e.path, Kind: e.kind}
		if isBinaryPatch(body) {
			fd.Binary = true
		} else {
			fd.Body = strings.TrimRight(body, "\n")
		}
		cs.Files = append(cs.Files, fd)
	}
	return cs, nil
}

type entry struct {
	path string
	kind core.ChangeKind
}

func changedPaths(ctx context.Context, dir string, mode core.Mode) ([]entry, error) {
	args := []string{"diff", "--name-status", "-z"}
	if mode == core.Staged {
		args = append(args, "--cached")
	}
	out, err := run(ctx, dir, args...)
	if err != nil {
		return nil, err
	}
	return parseNameStatus(out)
}

// parseNameStatus decodes `git diff --name-status -z` output. Each
// record is a status field followed by one path, or two paths for
// renames and copies.
func parseNameStatus(out string) ([]entry, error) {
	fields := strings.Split(out, "\x00")
	var entries []entry
	for i := 0; i < len(fields); i++ {
		status := fields[i]
		if status == "" {
			continue
		}
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("unexpected git name-status output: truncated record after %q", status)
		}
		i++
		path := fields[i]
		if path == "" {
			return nil, fmt.Errorf("unexpected git name-status output: empty path after %q", status)
		}

		kind := core.KindModified
		switch status[0] {
		case 'A':
			kind = core.KindAdded
		case 'D':
			kind = core.KindDeleted
		case 'R', 'C':
			if status[0] == 'R' {
				kind = core.KindRenamed
			} else {
				kind = core.KindCopied
			}
			// Rename and copy records carry the destination as a second path.
			if i+1 >= len(fields) || fields[i+1] == "" {
				return nil, fmt.Errorf("unexpected git name-status output: missing destination for %q", status)
			}
			i++
			path = fields[i]
		}
		entries = append(entries, entry{path: path, kind: kind})
	}
	return entries, nil
}

func fileDiff(ctx context.Context, dir string, mode core.Mode, path string) (string, error) {
	args := []string{"--no-pager", "diff"}
	if mode == core.Staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	return run(ctx, dir, args...)
}

// isBinaryPatch reports whether the patch text is git's stub for a
// binary file rather than a unified diff.
func isBinaryPatch(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "Binary files ") && strings.HasSuffix(line, " differ") {
			return true
		}
		if strings.HasPrefix(line, "GIT binary patch") {
			return true
		}
	}
	return false
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", &InvocationError{Args: args, Stderr: stderr, Err: err}
	}
	return string(out), nil
}

// Stage adds all pending changes to the index.
func Stage(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	return nil
}

// Commit records the staged changes with the given title and body as
// separate message paragraphs.
func Commit(ctx context.Context, dir, title, body string) error {
	args := []string{"commit", "-m", title}
	if body != "" {
		args = append(args, "-m", body)
	}
	if _, err := run(ctx, dir, args...); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}
