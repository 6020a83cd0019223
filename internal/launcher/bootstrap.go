package launcher

import (
	"context"
	"strings"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/model"
	"github.com/hytide/launcher/internal/session"
)

// StatusConnectionIssue replaces the status line when the identity cannot be
// loaded at startup. The session stays usable with the default nickname.
const StatusConnectionIssue = "Warning: Connection issue"

// Bootstrap loads the backend-persisted session at startup: launcher
// version, identity, instance configuration (branch + pinned version), the
// initial version catalog, and the news feed. Identity and news failures are
// soft; a missing instance configuration is surfaced as INSTANCE_LOAD_ERROR.
func (c *Controller) Bootstrap(ctx context.Context) error {
	if version, err := c.gateway.GetLauncherVersion(ctx); err != nil {
		c.log.WithError(err).Warn("launcher version unavailable")
	} else {
		c.store.Apply(func(st *session.State) { st.LauncherVersion = version })
	}

	c.loadIdentity(ctx)

	info, err := c.gateway.GetInstanceInfo(ctx)
	if err != nil {
		appErr := apperr.InstanceLoad("Failed to load session configuration", err)
		c.store.Apply(func(st *session.State) { st.ActiveError = appErr })
		return appErr
	}

	branch, err := model.ParseBranch(info.Branch)
	if err != nil {
		c.log.WithError(err).Warn("persisted branch unknown, falling back to release")
		branch = model.BranchRelease
	}

	selected := strings.TrimSpace(info.Version)
	if selected == "" {
		selected = model.VersionAuto
	}

	versions, fetchErr := c.catalog.Fetch(ctx, branch)
	if fetchErr != nil {
		appErr := apperr.From(fetchErr, apperr.ErrorTypeVersionFetch, "Failed to load available versions")
		c.store.Apply(func(st *session.State) {
			st.Branch = branch
			st.Versions = displayVersions(nil)
			st.SelectedVersion = model.VersionAuto
			st.ActiveError = appErr
		})
		return appErr
	}

	if !c.versionAvailable(branch, selected) {
		selected = model.VersionAuto
	}

	c.store.Apply(func(st *session.State) {
		st.Branch = branch
		st.Versions = displayVersions(versions)
		st.SelectedVersion = selected
	})

	c.loadNews(ctx)
	return nil
}

func (c *Controller) loadIdentity(ctx context.Context) {
	nick, err := c.gateway.GetIdentity(ctx)
	if err != nil {
		c.log.WithError(err).Warn("identity unavailable")
		c.store.Apply(func(st *session.State) {
			st.IdentityLoading = false
			st.StatusMessage = StatusConnectionIssue
		})
		return
	}

	c.store.Apply(func(st *session.State) {
		st.IdentityLoading = false
		if trimmed := strings.TrimSpace(nick); trimmed != "" {
			st.Nickname = trimmed
		}
	})
}

func (c *Controller) loadNews(ctx context.Context) {
	items, err := c.gateway.GetNewsFeed(ctx)
	if err != nil {
		c.log.WithError(err).Warn("news feed unavailable")
		return
	}

	c.store.Apply(func(st *session.State) {
		st.News = items
		st.NewsIndex = 0
	})
}
