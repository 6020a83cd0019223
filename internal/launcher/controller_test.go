package launcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/backend"
	"github.com/hytide/launcher/internal/catalog"
	"github.com/hytide/launcher/internal/model"
	"github.com/hytide/launcher/internal/session"
)

// fakeGateway scripts backend behavior per test through function fields.
// Nil fields succeed with zero values.
type fakeGateway struct {
	mu        sync.Mutex
	playCalls int

	getIdentity        func(ctx context.Context) (string, error)
	setIdentity        func(ctx context.Context, nickname string) error
	getInstanceInfo    func(ctx context.Context) (backend.InstanceInfo, error)
	getVersions        func(ctx context.Context, branch model.Branch) ([]string, error)
	setBranch          func(ctx context.Context, branch model.Branch) error
	setVersion         func(ctx context.Context, version, instanceID string) error
	play               func(ctx context.Context, nickname, serverAddress string) error
	requestSelfUpdate  func(ctx context.Context) error
	runDiagnostics     func(ctx context.Context) (backend.DiagnosticsReport, error)
	getLauncherVersion func(ctx context.Context) (string, error)
	getNewsFeed        func(ctx context.Context) ([]model.NewsItem, error)
}

func (g *fakeGateway) GetIdentity(ctx context.Context) (string, error) {
	if g.getIdentity != nil {
		return g.getIdentity(ctx)
	}
	return "", nil
}

func (g *fakeGateway) SetIdentity(ctx context.Context, nickname string) error {
	if g.setIdentity != nil {
		return g.setIdentity(ctx, nickname)
	}
	return nil
}

func (g *fakeGateway) GetInstanceInfo(ctx context.Context) (backend.InstanceInfo, error) {
	if g.getInstanceInfo != nil {
		return g.getInstanceInfo(ctx)
	}
	return backend.InstanceInfo{}, nil
}

func (g *fakeGateway) GetVersions(ctx context.Context, branch model.Branch) ([]string, error) {
	if g.getVersions != nil {
		return g.getVersions(ctx, branch)
	}
	return nil, nil
}

func (g *fakeGateway) SetBranch(ctx context.Context, branch model.Branch) error {
	if g.setBranch != nil {
		return g.setBranch(ctx, branch)
	}
	return nil
}

func (g *fakeGateway) SetVersion(ctx context.Context, version, instanceID string) error {
	if g.setVersion != nil {
		return g.setVersion(ctx, version, instanceID)
	}
	return nil
}

func (g *fakeGateway) Play(ctx context.Context, nickname, serverAddress string) error {
	g.mu.Lock()
	g.playCalls++
	g.mu.Unlock()
	if g.play != nil {
		return g.play(ctx, nickname, serverAddress)
	}
	return nil
}

func (g *fakeGateway) RequestSelfUpdate(ctx context.Context) error {
	if g.requestSelfUpdate != nil {
		return g.requestSelfUpdate(ctx)
	}
	return nil
}

func (g *fakeGateway) RunDiagnostics(ctx context.Context) (backend.DiagnosticsReport, error) {
	if g.runDiagnostics != nil {
		return g.runDiagnostics(ctx)
	}
	return backend.DiagnosticsReport{}, nil
}

func (g *fakeGateway) GetLauncherVersion(ctx context.Context) (string, error) {
	if g.getLauncherVersion != nil {
		return g.getLauncherVersion(ctx)
	}
	return "", nil
}

func (g *fakeGateway) GetNewsFeed(ctx context.Context) ([]model.NewsItem, error) {
	if g.getNewsFeed != nil {
		return g.getNewsFeed(ctx)
	}
	return nil, nil
}

func (g *fakeGateway) playCallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playCalls
}

// newFixture wires a controller to a fake gateway and starts its event loop
func newFixture(t *testing.T, gw *fakeGateway, opts ...Option) (*Controller, chan backend.Event) {
	t.Helper()
	events := make(chan backend.Event, 16)
	ctrl := New(gw, events, session.NewStore(), catalog.New(gw), opts...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go ctrl.Run(ctx)

	return ctrl, events
}

// waitFor polls the store until cond holds or the test times out
func waitFor(t *testing.T, store *session.Store, cond func(session.State) bool) session.State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		st := store.Snapshot()
		if cond(st) {
			return st
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for state condition, last state: %+v", st)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func progressEvent(stage string, percent int, message string) backend.Event {
	return backend.Event{
		Name: backend.EventDownloadProgress,
		Payload: map[string]any{
			"stage":   stage,
			"percent": percent,
			"message": message,
		},
	}
}

func TestPlayRejectsInvalidNickname(t *testing.T) {
	gw := &fakeGateway{}
	ctrl, _ := newFixture(t, gw)

	for _, nick := range []string{"", "   ", "this-nickname-is-way-too-long"} {
		err := ctrl.Play(context.Background(), nick)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.ErrorTypeValidation))
	}

	st := ctrl.Store().Snapshot()
	assert.False(t, st.IsDownloading)
	require.NotNil(t, st.ActiveError)
	assert.Equal(t, apperr.ErrorTypeValidation, st.ActiveError.Type)
	assert.Zero(t, gw.playCallCount(), "invalid input must not reach the backend")
}

func TestPlayFlipsToDownloadingBeforeBackendResolves(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-release
			return nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	defer close(release)

	st := ctrl.Store().Snapshot()
	assert.True(t, st.IsDownloading, "state must flip before the blocking call resolves")
	assert.Equal(t, model.Progress{}, st.Progress)
}

func TestPlayRejectsWhileDownloading(t *testing.T) {
	release := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-release
			return nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	defer close(release)
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.IsDownloading })

	before := ctrl.Store().Snapshot()
	err := ctrl.Play(context.Background(), "Steve")
	require.ErrorIs(t, err, ErrPlayInFlight)
	assert.Equal(t, before, ctrl.Store().Snapshot(), "rejected command must leave state untouched")
	assert.Equal(t, 1, gw.playCallCount())
}

func TestPlayBackendRejectionAbortsCycle(t *testing.T) {
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			return errors.New("game files corrupted")
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))

	st := waitFor(t, ctrl.Store(), func(st session.State) bool {
		return !st.IsDownloading && st.ActiveError != nil
	})
	assert.Equal(t, apperr.ErrorTypeLaunch, st.ActiveError.Type)
	assert.Equal(t, "game files corrupted", st.ActiveError.Technical)
	assert.Equal(t, model.Progress{}, st.Progress)
}

func TestFullDownloadCycle(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-block
			return nil
		},
	}
	ctrl, events := newFixture(t, gw, WithSettleDelay(20*time.Millisecond))
	defer close(block)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.IsDownloading })

	events <- progressEvent("downloading", 40, "Downloading game files")
	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 40 })
	assert.Equal(t, model.StageDownloading, st.Progress.Stage)
	assert.Equal(t, "Downloading game files", st.StatusMessage)

	events <- progressEvent("installing", 80, "Installing")
	events <- progressEvent("launching", 100, "Starting the game")
	waitFor(t, ctrl.Store(), func(st session.State) bool {
		return st.Progress.Stage == model.StageLaunching
	})

	events <- progressEvent("idle", 100, "")
	st = waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 100 })
	assert.True(t, st.IsDownloading, "completion frame renders before the settle reset")

	st = waitFor(t, ctrl.Store(), func(st session.State) bool { return !st.IsDownloading })
	assert.Equal(t, model.Progress{}, st.Progress)
	assert.Equal(t, session.StatusReady, st.StatusMessage)
	assert.Nil(t, st.ActiveError)
}

func TestProgressNeverRegressesWithinStage(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-block
			return nil
		},
	}
	ctrl, events := newFixture(t, gw, WithSettleDelay(time.Hour))
	defer close(block)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))

	events <- progressEvent("downloading", 50, "")
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 50 })

	events <- progressEvent("downloading", 30, "late chunk")
	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.StatusMessage == "late chunk" })
	assert.Equal(t, 50, st.Progress.Percent, "percent must hold within a stage")

	// A stage change resets the floor
	events <- progressEvent("installing", 10, "")
	st = waitFor(t, ctrl.Store(), func(st session.State) bool {
		return st.Progress.Stage == model.StageInstalling
	})
	assert.Equal(t, 10, st.Progress.Percent)
}

func TestDuplicateTerminalIsIgnored(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-block
			return nil
		},
	}
	ctrl, events := newFixture(t, gw, WithSettleDelay(time.Hour))
	defer close(block)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.IsDownloading })

	events <- progressEvent("idle", 100, "Done")
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 100 })

	// A second terminal before the settle reset must change nothing; the
	// marker event proves it was consumed.
	events <- progressEvent("idle", 100, "Done again")
	events <- backend.Event{
		Name:    backend.EventSelfUpdateProgress,
		Payload: map[string]any{"downloaded": 7, "total": 9},
	}
	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.SelfUpdate.Downloaded == 7 })
	assert.Equal(t, "Done", st.StatusMessage)
	assert.True(t, st.IsDownloading)
}

func TestTerminalWithoutActiveDownloadIsIgnored(t *testing.T) {
	ctrl, events := newFixture(t, &fakeGateway{}, WithSettleDelay(time.Millisecond))
	before := ctrl.Store().Snapshot()

	events <- progressEvent("idle", 100, "stray")
	events <- backend.Event{
		Name:    backend.EventSelfUpdateProgress,
		Payload: map[string]any{"downloaded": 1, "total": 2},
	}
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.SelfUpdate.Downloaded == 1 })

	st := ctrl.Store().Snapshot()
	assert.Equal(t, before.StatusMessage, st.StatusMessage)
	assert.Equal(t, before.Progress, st.Progress)
	assert.False(t, st.IsDownloading)
}

func TestBackendErrorAbortsWithoutSettleDelay(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-block
			return nil
		},
	}
	ctrl, events := newFixture(t, gw, WithSettleDelay(time.Hour))
	defer close(block)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	events <- progressEvent("downloading", 30, "")
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 30 })

	events <- backend.Event{
		Name: backend.EventBackendError,
		Payload: map[string]any{
			"kind":    "LAUNCH_ERROR",
			"message": "Disk full",
		},
	}

	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.ActiveError != nil })
	assert.False(t, st.IsDownloading)
	assert.Equal(t, apperr.ErrorTypeLaunch, st.ActiveError.Type)
	assert.Equal(t, "Disk full", st.ActiveError.Message)
	assert.Equal(t, model.Progress{}, st.Progress)
}

func TestSelfUpdateStreamDoesNotTouchGameProgress(t *testing.T) {
	block := make(chan struct{})
	gw := &fakeGateway{
		play: func(ctx context.Context, nickname, serverAddress string) error {
			<-block
			return nil
		},
	}
	ctrl, events := newFixture(t, gw, WithSettleDelay(time.Hour))
	defer close(block)

	require.NoError(t, ctrl.Play(context.Background(), "Steve"))
	events <- progressEvent("downloading", 55, "Downloading game files")
	waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 55 })

	events <- backend.Event{
		Name:    backend.EventSelfUpdateProgress,
		Payload: map[string]any{"downloaded": 1024, "total": 4096},
	}
	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.SelfUpdate.Downloaded == 1024 })
	assert.Equal(t, int64(4096), st.SelfUpdate.Total)
	assert.Equal(t, 55, st.Progress.Percent, "game progress must be untouched")
	assert.Equal(t, "Downloading game files", st.StatusMessage)

	events <- progressEvent("downloading", 60, "")
	st = waitFor(t, ctrl.Store(), func(st session.State) bool { return st.Progress.Percent == 60 })
	assert.Equal(t, int64(1024), st.SelfUpdate.Downloaded, "update counters must be untouched")
}

func TestSelfUpdateAvailableStoresAsset(t *testing.T) {
	ctrl, events := newFixture(t, &fakeGateway{})

	events <- backend.Event{
		Name: backend.EventSelfUpdateAvail,
		Payload: map[string]any{
			"asset": map[string]any{"url": "https://dl.example.com/launcher.bin", "sha256": "abc123"},
		},
	}
	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.SelfUpdate.PendingAsset != nil })
	assert.Equal(t, "https://dl.example.com/launcher.bin", st.SelfUpdate.PendingAsset.URL)
	assert.Equal(t, "abc123", st.SelfUpdate.PendingAsset.SHA256)
	assert.False(t, st.SelfUpdate.IsUpdating, "availability alone must not start an update")
}

func TestRequestSelfUpdateRejection(t *testing.T) {
	gw := &fakeGateway{
		requestSelfUpdate: func(ctx context.Context) error {
			return errors.New("signature mismatch")
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.RequestSelfUpdate(context.Background()))

	st := waitFor(t, ctrl.Store(), func(st session.State) bool { return st.ActiveError != nil })
	assert.Equal(t, apperr.ErrorTypeUpdate, st.ActiveError.Type)
	assert.False(t, st.SelfUpdate.IsUpdating)
}

func TestRequestSelfUpdateRejectsConcurrent(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		requestSelfUpdate: func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		},
	}
	ctrl, _ := newFixture(t, gw)
	defer close(release)

	require.NoError(t, ctrl.RequestSelfUpdate(context.Background()))
	<-started
	require.ErrorIs(t, ctrl.RequestSelfUpdate(context.Background()), ErrUpdateInFlight)
}

func TestRenameCommitsOnlyOnConfirmation(t *testing.T) {
	gw := &fakeGateway{
		setIdentity: func(ctx context.Context, nickname string) error {
			return errors.New("store offline")
		},
	}
	ctrl, _ := newFixture(t, gw)

	err := ctrl.Rename(context.Background(), "Alex")
	require.Error(t, err)
	st := ctrl.Store().Snapshot()
	assert.Equal(t, session.DefaultNickname, st.Nickname, "failed persist must not commit")
	require.NotNil(t, st.ActiveError)
	assert.Equal(t, apperr.ErrorTypeConfig, st.ActiveError.Type)

	gw.setIdentity = nil
	require.NoError(t, ctrl.Rename(context.Background(), "  Alex  "))
	assert.Equal(t, "Alex", ctrl.Store().Snapshot().Nickname)
}

func TestSelectBranchPersistFailureKeepsOldBranch(t *testing.T) {
	gw := &fakeGateway{
		setBranch: func(ctx context.Context, branch model.Branch) error {
			return errors.New("branch locked")
		},
	}
	ctrl, _ := newFixture(t, gw)

	err := ctrl.SelectBranch(context.Background(), model.BranchPreRelease)
	require.Error(t, err)

	st := ctrl.Store().Snapshot()
	assert.Equal(t, model.BranchRelease, st.Branch, "no partial commit on persistence failure")
	assert.Equal(t, []string{model.VersionAuto}, st.Versions)
	require.NotNil(t, st.ActiveError)
	assert.Equal(t, apperr.ErrorTypeConfig, st.ActiveError.Type)
}

func TestSelectBranchFetchFailureStillCommitsBranch(t *testing.T) {
	gw := &fakeGateway{
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			return nil, errors.New("catalog unreachable")
		},
	}
	ctrl, _ := newFixture(t, gw)

	err := ctrl.SelectBranch(context.Background(), model.BranchPreRelease)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrorTypeVersionFetch))

	st := ctrl.Store().Snapshot()
	assert.Equal(t, model.BranchPreRelease, st.Branch)
	assert.Equal(t, []string{model.VersionAuto}, st.Versions)
	assert.Equal(t, model.VersionAuto, st.SelectedVersion)
}

func TestSelectBranchRevalidatesSelection(t *testing.T) {
	gw := &fakeGateway{
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			if branch == model.BranchPreRelease {
				return []string{"15-rc1", "14"}, nil
			}
			return []string{"14", "13", "12"}, nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.SelectBranch(context.Background(), model.BranchPreRelease))
	require.NoError(t, ctrl.SelectVersion(context.Background(), "15-rc1"))

	// "15-rc1" does not exist on release, selection falls back to auto
	require.NoError(t, ctrl.SelectBranch(context.Background(), model.BranchRelease))
	st := ctrl.Store().Snapshot()
	assert.Equal(t, []string{"auto", "14", "13", "12"}, st.Versions)
	assert.Equal(t, model.VersionAuto, st.SelectedVersion)

	// "14" exists on both, selection survives the switch back
	require.NoError(t, ctrl.SelectVersion(context.Background(), "14"))
	require.NoError(t, ctrl.SelectBranch(context.Background(), model.BranchPreRelease))
	assert.Equal(t, "14", ctrl.Store().Snapshot().SelectedVersion)
}

func TestSelectVersionValidatesAgainstCatalog(t *testing.T) {
	ctrl, _ := newFixture(t, &fakeGateway{})

	err := ctrl.SelectVersion(context.Background(), "99")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrorTypeValidation))
	assert.Equal(t, model.VersionAuto, ctrl.Store().Snapshot().SelectedVersion)
}

func TestSelectVersionChecksCurrentBranchCatalog(t *testing.T) {
	gw := &fakeGateway{
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			if branch == model.BranchPreRelease {
				return []string{"15-rc1"}, nil
			}
			return []string{"14", "13"}, nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Bootstrap(context.Background()))
	require.NoError(t, ctrl.SelectBranch(context.Background(), model.BranchPreRelease))

	// "14" exists only in the release catalog; pinning it while on
	// pre-release is rejected.
	err := ctrl.SelectVersion(context.Background(), "14")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrorTypeValidation))

	require.NoError(t, ctrl.SelectVersion(context.Background(), "15-rc1"))
	assert.Equal(t, "15-rc1", ctrl.Store().Snapshot().SelectedVersion)
}

func TestSelectVersionKeepsSelectionOnPersistFailure(t *testing.T) {
	gw := &fakeGateway{
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			return []string{"14", "13"}, nil
		},
		setVersion: func(ctx context.Context, version, instanceID string) error {
			return errors.New("write failed")
		},
	}
	ctrl, _ := newFixture(t, gw)
	require.NoError(t, ctrl.Bootstrap(context.Background()))

	err := ctrl.SelectVersion(context.Background(), "13")
	require.Error(t, err)

	st := ctrl.Store().Snapshot()
	assert.Equal(t, "13", st.SelectedVersion, "local selection stays despite persist failure")
	require.NotNil(t, st.ActiveError)
	assert.Equal(t, apperr.ErrorTypeConfig, st.ActiveError.Type)
}

func TestBootstrapLoadsPersistedSession(t *testing.T) {
	gw := &fakeGateway{
		getLauncherVersion: func(ctx context.Context) (string, error) { return "1.4.2", nil },
		getIdentity:        func(ctx context.Context) (string, error) { return "Notch", nil },
		getInstanceInfo: func(ctx context.Context) (backend.InstanceInfo, error) {
			return backend.InstanceInfo{Branch: "release", Version: "12"}, nil
		},
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			return []string{"14", "13", "12"}, nil
		},
		getNewsFeed: func(ctx context.Context) ([]model.NewsItem, error) {
			return []model.NewsItem{{Title: "Patch notes"}}, nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Bootstrap(context.Background()))

	st := ctrl.Store().Snapshot()
	assert.Equal(t, "1.4.2", st.LauncherVersion)
	assert.Equal(t, "Notch", st.Nickname)
	assert.False(t, st.IdentityLoading)
	assert.Equal(t, model.BranchRelease, st.Branch)
	assert.Equal(t, []string{"auto", "14", "13", "12"}, st.Versions)
	assert.Equal(t, "12", st.SelectedVersion, "persisted pin inside the catalog survives")
	require.Len(t, st.News, 1)
	assert.Equal(t, "Patch notes", st.News[0].Title)
}

func TestBootstrapIdentityFailureIsSoft(t *testing.T) {
	gw := &fakeGateway{
		getIdentity: func(ctx context.Context) (string, error) {
			return "", errors.New("socket closed")
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Bootstrap(context.Background()))

	st := ctrl.Store().Snapshot()
	assert.Equal(t, StatusConnectionIssue, st.StatusMessage)
	assert.Equal(t, session.DefaultNickname, st.Nickname)
	assert.False(t, st.IdentityLoading)
	assert.Nil(t, st.ActiveError)
}

func TestBootstrapInstanceLoadFailure(t *testing.T) {
	gw := &fakeGateway{
		getInstanceInfo: func(ctx context.Context) (backend.InstanceInfo, error) {
			return backend.InstanceInfo{}, errors.New("no config")
		},
	}
	ctrl, _ := newFixture(t, gw)

	err := ctrl.Bootstrap(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrorTypeInstanceLoad))

	st := ctrl.Store().Snapshot()
	require.NotNil(t, st.ActiveError)
	assert.Equal(t, apperr.ErrorTypeInstanceLoad, st.ActiveError.Type)
}

func TestBootstrapStalePinFallsBackToAuto(t *testing.T) {
	gw := &fakeGateway{
		getInstanceInfo: func(ctx context.Context) (backend.InstanceInfo, error) {
			return backend.InstanceInfo{Branch: "release", Version: "7"}, nil
		},
		getVersions: func(ctx context.Context, branch model.Branch) ([]string, error) {
			return []string{"14", "13"}, nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	require.NoError(t, ctrl.Bootstrap(context.Background()))
	assert.Equal(t, model.VersionAuto, ctrl.Store().Snapshot().SelectedVersion)
}

func TestDismissError(t *testing.T) {
	ctrl, _ := newFixture(t, &fakeGateway{})
	require.Error(t, ctrl.Play(context.Background(), ""))
	require.NotNil(t, ctrl.Store().Snapshot().ActiveError)

	ctrl.DismissError()
	assert.Nil(t, ctrl.Store().Snapshot().ActiveError)
}

func TestNextNewsRotation(t *testing.T) {
	ctrl, _ := newFixture(t, &fakeGateway{})

	ctrl.NextNews() // empty feed is a no-op
	assert.Zero(t, ctrl.Store().Snapshot().NewsIndex)

	ctrl.Store().Apply(func(st *session.State) {
		st.News = []model.NewsItem{{Title: "a"}, {Title: "b"}, {Title: "c"}}
	})
	ctrl.NextNews()
	assert.Equal(t, 1, ctrl.Store().Snapshot().NewsIndex)
	ctrl.NextNews()
	ctrl.NextNews()
	assert.Zero(t, ctrl.Store().Snapshot().NewsIndex, "rotation wraps")
}

func TestRunDiagnostics(t *testing.T) {
	gw := &fakeGateway{
		runDiagnostics: func(ctx context.Context) (backend.DiagnosticsReport, error) {
			return backend.DiagnosticsReport{NumCPU: 8, OS: "linux", GameInstalled: true}, nil
		},
	}
	ctrl, _ := newFixture(t, gw)

	report, err := ctrl.RunDiagnostics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, report.NumCPU)
	assert.True(t, report.GameInstalled)

	gw.runDiagnostics = func(ctx context.Context) (backend.DiagnosticsReport, error) {
		return backend.DiagnosticsReport{}, errors.New("probe failed")
	}
	_, err = ctrl.RunDiagnostics(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.ErrorTypeBackend, ctrl.Store().Snapshot().ActiveError.Type)
}
