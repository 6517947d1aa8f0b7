package types

import (
	"fmt"
	"strings"
)

// AcceptedSpecifierForms are the version specifier syntaxes the resolver
// understands, included in InvalidSpecifierError messages.
var AcceptedSpecifierForms = []string{"A.B.C", "A.B", "A.B.x", "A", "A.x"}

// InvalidSpecifierError indicates a version specifier that does not match
// the semantic-version range grammar
type InvalidSpecifierError struct {
	Specifier string
	Err       error
}

func (e *InvalidSpecifierError) Error() string {
	return fmt.Sprintf("invalid version specifier %q: accepted forms are %s",
		e.Specifier, strings.Join(AcceptedSpecifierForms, ", "))
}

func (e *InvalidSpecifierError) Unwrap() error {
	return e.Err
}

// ChannelNotFoundError indicates the releases index has no channel for the
// requested major version
type ChannelNotFoundError struct {
	Major    string
	IndexURL string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("no release channel found for major version %s in %s", e.Major, e.IndexURL)
}

// TransportError indicates the releases index could not be fetched after
// exhausting retries
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExecutableNotFoundError indicates the script interpreter required to run
// the install script is missing from PATH
type ExecutableNotFoundError struct {
	Searched []string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("script interpreter not found in PATH (searched: %s)", strings.Join(e.Searched, ", "))
}

// InstallerExecutionError indicates the install script exited non-zero
type InstallerExecutionError struct {
	ExitCode int
	Output   string
	Err      error
}

func (e *InstallerExecutionError) Error() string {
	msg := fmt.Sprintf("install script failed with exit code %d", e.ExitCode)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *InstallerExecutionError) Unwrap() error {
	return e.Err
}
