package backend

import (
	"context"

	"github.com/hytide/launcher/internal/model"
)

// InstanceInfo is the backend-persisted session configuration loaded once at
// startup. Branch arrives as a raw string; the controller validates it.
type InstanceInfo struct {
	Branch  string `json:"branch"`
	Version string `json:"version"`
}

// DiagnosticsReport is the opaque report returned by the backend diagnostics
// run. The launcher only displays it.
type DiagnosticsReport struct {
	NumCPU         int    `json:"num_cpu"`
	OS             string `json:"goos"`
	Arch           string `json:"goarch"`
	BackendVersion string `json:"backend_version"`
	GameInstalled  bool   `json:"game_installed"`
	Details        string `json:"details"`
}

// Gateway is the command surface of the external backend host process. Every
// call is request/response and independently awaitable; resolution of Play is
// NOT the completion signal, progress events are.
type Gateway interface {
	GetIdentity(ctx context.Context) (string, error)
	SetIdentity(ctx context.Context, nickname string) error
	GetInstanceInfo(ctx context.Context) (InstanceInfo, error)
	GetVersions(ctx context.Context, branch model.Branch) ([]string, error)
	SetBranch(ctx context.Context, branch model.Branch) error
	SetVersion(ctx context.Context, version, instanceID string) error
	Play(ctx context.Context, nickname, serverAddress string) error
	RequestSelfUpdate(ctx context.Context) error
	RunDiagnostics(ctx context.Context) (DiagnosticsReport, error)
	GetLauncherVersion(ctx context.Context) (string, error)
	GetNewsFeed(ctx context.Context) ([]model.NewsItem, error)
}
