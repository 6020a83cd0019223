package launcher

import (
	"context"
	"errors"
	"strings"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/backend"
	"github.com/hytide/launcher/internal/model"
	"github.com/hytide/launcher/internal/session"
)

// ErrPlayInFlight means a play command was issued while one is already
// running. The command is rejected locally; no backend call is made and no
// state changes.
var ErrPlayInFlight = errors.New("play already in progress")

// ErrUpdateInFlight means a self-update command was issued while one is
// already running.
var ErrUpdateInFlight = errors.New("self-update already in progress")

// Play validates the nickname and starts the download/launch pipeline. The
// store flips to downloading before the backend call is issued because the
// call may block for the entire operation. Completion is signaled only by
// the terminal progress event, never by this call resolving.
func (c *Controller) Play(ctx context.Context, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if err := model.ValidateNickname(nickname); err != nil {
		appErr := apperr.Wrap(apperr.ErrorTypeValidation, "Invalid nickname", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	c.mu.Lock()
	if c.store.Snapshot().IsDownloading {
		c.mu.Unlock()
		c.log.Debug("play rejected: already downloading")
		return ErrPlayInFlight
	}
	c.terminalSeen = false
	gen := c.cycleGen
	c.store.Apply(func(st *session.State) {
		st.IsDownloading = true
		st.Progress = model.Progress{}
	})
	c.mu.Unlock()

	go func() {
		err := c.gateway.Play(ctx, nickname, c.serverAddress)
		if err == nil {
			// Resolution is not completion; the terminal event handles reset
			return
		}

		c.mu.Lock()
		stale := gen != c.cycleGen
		c.mu.Unlock()
		if stale {
			c.log.WithError(err).Warn("play rejection for a superseded cycle")
			return
		}

		c.log.WithError(err).Error("play command rejected")
		c.abortDownload(apperr.Launch("Failed to start the game", err))
	}()

	return nil
}

// Rename persists a new nickname and commits it locally only once the
// backend confirms.
func (c *Controller) Rename(ctx context.Context, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if err := model.ValidateNickname(nickname); err != nil {
		appErr := apperr.Wrap(apperr.ErrorTypeValidation, "Invalid nickname", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	if c.store.Snapshot().Nickname == nickname {
		return nil
	}

	if err := c.gateway.SetIdentity(ctx, nickname); err != nil {
		appErr := apperr.Config("Failed to save nickname", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	c.store.Apply(func(st *session.State) { st.Nickname = nickname })
	return nil
}

// SelectBranch switches the release channel as a two-phase commit: the new
// branch is persisted first and committed locally only on success, so the UI
// can never show a branch the backend does not have. After the commit the
// catalog refreshes and the selected version is revalidated against it.
func (c *Controller) SelectBranch(ctx context.Context, branch model.Branch) error {
	if !branch.Valid() {
		appErr := apperr.Validation("Unknown release channel")
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	snap := c.store.Snapshot()
	if snap.Branch == branch {
		return nil
	}

	if err := c.gateway.SetBranch(ctx, branch); err != nil {
		appErr := apperr.Config("Failed to switch branch", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	versions, err := c.catalog.Fetch(ctx, branch)
	if err != nil {
		// Branch is already committed backend-side; surface the fetch
		// failure but do not pretend the old branch is still active.
		appErr := apperr.From(err, apperr.ErrorTypeVersionFetch, "Failed to load available versions")
		c.store.Apply(func(st *session.State) {
			st.Branch = branch
			st.Versions = displayVersions(nil)
			st.SelectedVersion = model.VersionAuto
			st.ActiveError = appErr
		})
		return appErr
	}

	selected := snap.SelectedVersion
	if !c.versionAvailable(branch, selected) {
		selected = model.VersionAuto
	}

	c.store.Apply(func(st *session.State) {
		st.Branch = branch
		st.Versions = displayVersions(versions)
		st.SelectedVersion = selected
	})
	return nil
}

// SelectVersion pins a version from the current branch's catalog. The local
// selection commits immediately; a persistence failure raises CONFIG_ERROR
// without rolling the selection back. The asymmetry with SelectBranch is
// deliberate: a stale pinned version self-corrects on the next catalog
// refresh, a stale branch does not.
func (c *Controller) SelectVersion(ctx context.Context, version string) error {
	snap := c.store.Snapshot()
	if !c.versionAvailable(snap.Branch, version) {
		appErr := apperr.Validation("Version is not available on this branch")
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	if snap.SelectedVersion == version {
		return nil
	}

	c.store.Apply(func(st *session.State) { st.SelectedVersion = version })

	if err := c.gateway.SetVersion(ctx, version, c.instanceID); err != nil {
		appErr := apperr.Config("Failed to save version selection", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}
	return nil
}

// RequestSelfUpdate starts the launcher's own update. Progress arrives via
// selfupdate-progress events; success ends with a process restart, so
// isUpdating is cleared only by a caught failure.
func (c *Controller) RequestSelfUpdate(ctx context.Context) error {
	snap := c.store.Snapshot()
	if snap.SelfUpdate.IsUpdating {
		return ErrUpdateInFlight
	}

	c.store.Apply(func(st *session.State) {
		st.SelfUpdate.IsUpdating = true
		st.SelfUpdate.Downloaded = 0
		st.SelfUpdate.Total = 0
	})

	go func() {
		if err := c.gateway.RequestSelfUpdate(ctx); err != nil {
			c.log.WithError(err).Error("self-update rejected")
			appErr := apperr.Update("Failed to update the launcher", err)
			c.store.Apply(func(st *session.State) {
				st.SelfUpdate.IsUpdating = false
				st.ActiveError = appErr
			})
		}
	}()

	return nil
}

// DismissError clears the active error. Nothing is retried.
func (c *Controller) DismissError() {
	c.store.Apply(func(st *session.State) { st.ActiveError = nil })
}

// RunDiagnostics asks the backend for a diagnostics report
func (c *Controller) RunDiagnostics(ctx context.Context) (backend.DiagnosticsReport, error) {
	report, err := c.gateway.RunDiagnostics(ctx)
	if err != nil {
		appErr := apperr.Wrap(apperr.ErrorTypeBackend, "Diagnostics failed", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return backend.DiagnosticsReport{}, appErr
	}
	return report, nil
}

// NextNews advances the news rotation index
func (c *Controller) NextNews() {
	c.store.Apply(func(st *session.State) {
		if len(st.News) == 0 {
			return
		}
		st.NewsIndex = (st.NewsIndex + 1) % len(st.News)
	})
}

// displayVersions builds the selectable list shown to the user: the auto
// sentinel first, then the branch catalog newest first.
func displayVersions(versions []string) []string {
	return append([]string{model.VersionAuto}, versions...)
}

// versionAvailable checks a selection against the branch's cached catalog.
// The auto sentinel is always available.
func (c *Controller) versionAvailable(branch model.Branch, version string) bool {
	return version == model.VersionAuto || c.catalog.Contains(branch, version)
}
