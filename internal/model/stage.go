package model

// Stage represents the phase of the download/launch lifecycle
type Stage string

const (
	// StageIdle means no operation is running; also the terminal signal
	StageIdle Stage = "idle"

	// StageDownloading means game files are being downloaded
	StageDownloading Stage = "downloading"

	// StageInstalling means downloaded files are being installed
	StageInstalling Stage = "installing"

	// StageLaunching means the game process is being started
	StageLaunching Stage = "launching"
)

// String returns the string representation of Stage
func (s Stage) String() string {
	return string(s)
}

// IsActive returns true if the stage describes work in progress
func (s Stage) IsActive() bool {
	return s == StageDownloading || s == StageInstalling || s == StageLaunching
}

// IsTerminal returns true for the stage that ends an operation cycle
func (s Stage) IsTerminal() bool {
	return s == StageIdle
}

// ParseStage maps a raw stage name to a known Stage. Unknown or empty
// values map to StageIdle so a malformed event can never invent a phase.
func ParseStage(raw string) Stage {
	switch Stage(raw) {
	case StageDownloading, StageInstalling, StageLaunching:
		return Stage(raw)
	default:
		return StageIdle
	}
}
