// Package session implements REPL session save/replay: a JSON document
// recording the command history (INIT_HEAP lines included), tagged
// with a semver format version so an incompatible future format is
// rejected instead of silently misread.
package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
)

// FormatVersion is the session format this binary writes.
const FormatVersion = "1.0.0"

// supported is the range of session format versions this binary can load.
var supported = mustConstraint(">= 1.0.0, < 2.0.0")

func mustConstraint(expr string) *semver.Constraints {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Session is the on-disk record of one REPL run: the commands typed, in
// order, so replaying them against a fresh engine reproduces the heap
// state. It does not serialize the live Heap/AllocationMap structures
// themselves.
type Session struct {
	FormatVersion string   `json:"format_version"`
	Commands      []string `json:"commands"`
}

// New returns an empty Session stamped with the current format version.
func New() *Session {
	return &Session{FormatVersion: FormatVersion}
}

// Record appends a request line to the session history.
func (s *Session) Record(line string) {
	s.Commands = append(s.Commands, line)
}

// Save writes the session to path as JSON.
func (s *Session) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a session from path, rejecting one whose format_version
// falls outside the range this binary understands.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	v, err := semver.NewVersion(s.FormatVersion)
	if err != nil {
		return nil, fmt.Errorf("session %s: invalid format_version %q: %w", path, s.FormatVersion, err)
	}
	if !supported.Check(v) {
		return nil, fmt.Errorf("session %s: format_version %s is not supported by this binary (expects %s)",
			path, s.FormatVersion, supported.String())
	}

	return &s, nil
}
