package core

import "github.com/rs/zerolog/log"

// Lock files are machine-generated churn that drowns out the interesting
// parts of a diff, so they are always excluded.
var defaultExclusions = map[string]struct{}{
	"go.sum":            {},
	"Cargo.lock":        {},
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
}

// Filter drops every file whose path matches the user's exclusion rules
// or one of the built-in lock-file exclusions. The result preserves the
// input order and is always a subset of the input. Returns
// ErrNothingToAnalyze when no files survive.
func Filter(changes *ChangeSet, matcher Matcher) (*FilteredDiff, error) {
	filtered := &FilteredDiff{Mode: changes.Mode}

	for _, f := range changes.Files {
		if _, ok := defaultExclusions[f.Path]; ok {
			log.Debug().Str("path", f.Path).Msg("Excluding lock file")
			continue
		}
		if matcher != nil && matcher.Matches(f.Path) {
			log.Debug().Str("path", f.Path).Msg("Excluding file matching pattern")
			continue
		}
		filtered.Files = append(filtered.Files, f)
	}

	if len(filtered.Files) == 0 {
		return nil, ErrNothingToAnalyze
	}

	return filtered, nil
}
