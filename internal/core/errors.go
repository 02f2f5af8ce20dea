package core

import (
	"errors"
	"fmt"
)

// ErrNothingToAnalyze signals that exclusion filtering removed every file
// from the change set. Callers must not invoke the provider in this case.
var ErrNothingToAnalyze = errors.New("no files left to analyze after filtering")

// ErrEmptyResponse signals that the provider returned empty or
// whitespace-only text.
var ErrEmptyResponse = errors.New("provider returned an empty response")

type ErrParsingCommit struct {
	Msg string
	Err error
}

func (e *ErrParsingCommit) Error() string {
	return fmt.Sprintf("failed to parse commit: %s: %v", e.Msg, e.Err)
}

func (e *ErrParsingCommit) Unwrap() error {
	return e.Err
}

type ErrGeneratingCommit struct {
	Msg string
	Err error
}

func (e *ErrGeneratingCommit) Error() string {
	return fmt.Sprintf("failed to generate commit: %s: %v", e.Msg, e.Err)
}

func (e *ErrGeneratingCommit) Unwrap() error {
	return e.Err
}
