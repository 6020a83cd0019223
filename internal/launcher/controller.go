// Package launcher contains the launch session controller: the orchestration
// core that issues backend commands, reconciles pushed events, and keeps the
// session store consistent while overlapping operations are in flight.
package launcher

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/backend"
	"github.com/hytide/launcher/internal/catalog"
	"github.com/hytide/launcher/internal/logging"
	"github.com/hytide/launcher/internal/model"
	"github.com/hytide/launcher/internal/session"
)

// DefaultSettleDelay keeps the 100%-complete frame on screen before the
// progress row collapses back to idle. Cosmetic, but contractual: the reset
// must not race the final render.
const DefaultSettleDelay = 2 * time.Second

// DefaultInstanceID identifies the single game instance managed by this
// launcher build.
const DefaultInstanceID = "default"

// Controller owns command orchestration and event reconciliation for one
// launch session. Command methods are safe to call from the UI goroutine;
// Run must be started once to consume pushed events in arrival order.
type Controller struct {
	gateway backend.Gateway
	events  <-chan backend.Event
	store   *session.Store
	catalog *catalog.Cache
	log     *logrus.Entry

	settleDelay   time.Duration
	instanceID    string
	serverAddress string

	// mu guards the download-cycle bookkeeping below. cycleGen invalidates
	// settle timers from superseded cycles; terminalSeen makes duplicate
	// terminal events no-ops.
	mu           sync.Mutex
	cycleGen     uint64
	terminalSeen bool
}

// Option configures a Controller
type Option func(*Controller)

// WithSettleDelay overrides the idle-reset settle delay
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settleDelay = d }
}

// WithInstanceID overrides the instance id sent with version persistence
func WithInstanceID(id string) Option {
	return func(c *Controller) { c.instanceID = id }
}

// WithServerAddress sets the server joined by play commands
func WithServerAddress(addr string) Option {
	return func(c *Controller) { c.serverAddress = addr }
}

// New creates a controller bound to a gateway, its push event channel, the
// session store, and the version catalog cache.
func New(gateway backend.Gateway, events <-chan backend.Event, store *session.Store, cat *catalog.Cache, opts ...Option) *Controller {
	c := &Controller{
		gateway:     gateway,
		events:      events,
		store:       store,
		catalog:     cat,
		log:         logging.NewLogger("controller"),
		settleDelay: DefaultSettleDelay,
		instanceID:  DefaultInstanceID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the session store for read snapshots and subscriptions
func (c *Controller) Store() *session.Store {
	return c.store
}

// Run consumes pushed backend events until ctx is cancelled or the event
// channel closes. Events are processed strictly in arrival order.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.events:
			if !ok {
				c.log.Info("event channel closed")
				return
			}
			c.handleEvent(ev)
		}
	}
}

// handleEvent routes one push by name. Game download and launcher
// self-update are disjoint state slices; an event for one must never touch
// the other.
func (c *Controller) handleEvent(ev backend.Event) {
	switch ev.Name {
	case backend.EventDownloadProgress:
		c.applyProgress(backend.DecodeProgress(ev.Payload))

	case backend.EventSelfUpdateAvail:
		asset := backend.DecodeAsset(ev.Payload)
		if asset == nil {
			c.log.Warn("selfupdate-available event without usable asset")
			return
		}
		c.store.Apply(func(st *session.State) {
			st.SelfUpdate.PendingAsset = asset
		})

	case backend.EventSelfUpdateProgress:
		downloaded, total := backend.DecodeSelfUpdateProgress(ev.Payload)
		c.store.Apply(func(st *session.State) {
			st.SelfUpdate.Downloaded = downloaded
			st.SelfUpdate.Total = total
		})

	case backend.EventBackendError:
		// Backend-originated errors replace whatever is active and imply the
		// in-flight operation cannot continue.
		c.abortDownload(backend.DecodeError(ev.Payload))

	default:
		c.log.WithField("event", ev.Name).Debug("ignoring unknown event")
	}
}

func (c *Controller) applyProgress(p model.Progress) {
	if p.Stage.IsTerminal() {
		c.handleTerminal(p)
		return
	}

	c.store.Apply(func(st *session.State) {
		// Percent never regresses between events of the same stage
		if p.Stage == st.Progress.Stage && p.Percent < st.Progress.Percent {
			p.Percent = st.Progress.Percent
		}
		st.Progress = p
		if p.Message != "" {
			st.StatusMessage = p.Message
		}
	})
}

// handleTerminal processes the sole authoritative completion signal. The
// idle reset happens after the settle delay; duplicate terminals and
// terminals without an active operation are no-ops.
func (c *Controller) handleTerminal(p model.Progress) {
	c.mu.Lock()
	if c.terminalSeen || !c.store.Snapshot().IsDownloading {
		c.mu.Unlock()
		return
	}
	c.terminalSeen = true
	gen := c.cycleGen
	c.mu.Unlock()

	// Render the completion frame before collapsing
	c.store.Apply(func(st *session.State) {
		if p.Percent > st.Progress.Percent {
			st.Progress.Percent = p.Percent
		}
		if p.Message != "" {
			st.StatusMessage = p.Message
		}
	})

	time.AfterFunc(c.settleDelay, func() { c.finishCycle(gen) })
}

func (c *Controller) finishCycle(gen uint64) {
	c.mu.Lock()
	if gen != c.cycleGen {
		c.mu.Unlock()
		return
	}
	c.cycleGen++
	c.terminalSeen = false
	c.mu.Unlock()

	c.store.Apply(func(st *session.State) {
		st.IsDownloading = false
		st.Progress = model.Progress{}
		st.StatusMessage = session.StatusReady
	})
}

// abortDownload ends the current cycle immediately: no settle delay, error
// surfaced, progress zeroed.
func (c *Controller) abortDownload(appErr *apperr.AppError) {
	c.mu.Lock()
	c.cycleGen++
	c.terminalSeen = false
	c.mu.Unlock()

	c.store.Apply(func(st *session.State) {
		st.ActiveError = appErr
		st.IsDownloading = false
		st.Progress = model.Progress{}
		st.StatusMessage = session.StatusReady
	})
}
