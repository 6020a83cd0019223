package model

import "fmt"

// Branch is a named release channel with its own version catalog
type Branch string

const (
	// BranchRelease is the stable channel
	BranchRelease Branch = "release"

	// BranchPreRelease is the early-access channel
	BranchPreRelease Branch = "pre-release"
)

// VersionAuto is the sentinel version meaning "always latest"
const VersionAuto = "auto"

// String returns the string representation of Branch
func (b Branch) String() string {
	return string(b)
}

// Valid returns true if the branch is a known channel
func (b Branch) Valid() bool {
	return b == BranchRelease || b == BranchPreRelease
}

// ParseBranch parses a raw channel name. Empty input falls back to the
// release channel, matching backend-persisted configs written before the
// pre-release channel existed.
func ParseBranch(raw string) (Branch, error) {
	if raw == "" {
		return BranchRelease, nil
	}
	b := Branch(raw)
	if !b.Valid() {
		return "", fmt.Errorf("unknown branch: %q", raw)
	}
	return b, nil
}
