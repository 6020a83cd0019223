// Package catalog caches the installable version list per release branch.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/backend"
	"github.com/hytide/launcher/internal/logging"
	"github.com/hytide/launcher/internal/model"
)

// Cache holds the last successfully fetched version list for each branch.
// A successful fetch replaces a branch's list atomically; a failed fetch
// leaves the previous list untouched. Concurrent fetches for one branch are
// coalesced into a single backend call.
type Cache struct {
	gateway backend.Gateway
	log     *logrus.Entry

	mu    sync.RWMutex
	lists map[model.Branch][]string

	group singleflight.Group
}

// New creates an empty cache backed by the given gateway
func New(gateway backend.Gateway) *Cache {
	return &Cache{
		gateway: gateway,
		log:     logging.NewLogger("catalog"),
		lists:   make(map[model.Branch][]string),
	}
}

// fetchTimeout bounds a detached backend fetch
const fetchTimeout = 30 * time.Second

// Fetch loads the version list for a branch from the backend. Callers that
// arrive while a fetch for the same branch is in flight receive the result
// of that single call. The backend call runs on a detached context so that
// cancelling the first caller cannot fail the coalesced callers behind it.
func (c *Cache) Fetch(ctx context.Context, branch model.Branch) ([]string, error) {
	v, err, shared := c.group.Do(branch.String(), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		versions, err := c.gateway.GetVersions(fetchCtx, branch)
		if err != nil {
			return nil, apperr.VersionFetch("Failed to load available versions", err)
		}

		normalized := Normalize(versions)

		c.mu.Lock()
		c.lists[branch] = normalized
		c.mu.Unlock()

		return normalized, nil
	})
	if err != nil {
		c.log.WithError(err).WithField("branch", branch).Warn("version fetch failed")
		return nil, err
	}
	if shared {
		c.log.WithField("branch", branch).Debug("version fetch coalesced")
	}

	return cloneVersions(v.([]string)), nil
}

// cached returns the last fetched list for a branch, if any
func (c *Cache) cached(branch model.Branch) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list, ok := c.lists[branch]
	if !ok {
		return nil, false
	}
	return cloneVersions(list), true
}

// Contains reports whether a version id is present in a branch's cached list
func (c *Cache) Contains(branch model.Branch, version string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.lists[branch] {
		if v == version {
			return true
		}
	}
	return false
}

// Normalize dedupes and sorts version ids newest first. Ids that parse as
// integers compare numerically; everything else falls back to reverse
// lexicographic order after the numeric block. The "auto" sentinel is never
// part of a catalog.
func Normalize(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	out := make([]string, 0, len(versions))
	for _, v := range versions {
		if v == "" || v == model.VersionAuto {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni, errI := strconv.Atoi(out[i])
		nj, errJ := strconv.Atoi(out[j])
		switch {
		case errI == nil && errJ == nil:
			return ni > nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return out[i] > out[j]
		}
	})

	return out
}

func cloneVersions(versions []string) []string {
	out := make([]string, len(versions))
	copy(out, versions)
	return out
}
