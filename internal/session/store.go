// Package session holds the launcher's client-side session truth in a single
// observable store. All mutation flows through Apply; observers receive one
// synchronous notification per accepted mutation.
package session

import (
	"reflect"
	"sync"

	"github.com/hytide/launcher/internal/apperr"
	"github.com/hytide/launcher/internal/model"
)

// StatusReady is the default status line restored whenever the download
// pipeline returns to idle.
const StatusReady = "Ready to play"

// DefaultNickname is shown until the backend-persisted identity loads
const DefaultNickname = "Player"

// State is the full client-side session snapshot. Slices are copied on
// read/write; pointer fields (ActiveError, SelfUpdate.PendingAsset) are
// immutable once stored.
type State struct {
	Nickname        string
	IdentityLoading bool

	Branch          model.Branch
	Versions        []string // display list, "auto" first
	SelectedVersion string

	StatusMessage string
	IsDownloading bool
	Progress      model.Progress

	SelfUpdate model.SelfUpdateState

	ActiveError *apperr.AppError

	LauncherVersion string

	News      []model.NewsItem
	NewsIndex int
}

// Listener observes accepted state mutations. Listeners are invoked
// synchronously and must not mutate the store from within the callback.
type Listener func(State)

// Store is the single owner of session state
type Store struct {
	// notifyMu serializes mutation+notification pairs so listeners observe
	// states in the order they were produced.
	notifyMu sync.Mutex

	mu    sync.RWMutex
	state State

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

// NewStore creates a store with the initial pre-bootstrap state
func NewStore() *Store {
	return &Store{
		state: State{
			Nickname:        DefaultNickname,
			IdentityLoading: true,
			Branch:          model.BranchRelease,
			Versions:        []string{model.VersionAuto},
			SelectedVersion: model.VersionAuto,
			StatusMessage:   StatusReady,
		},
		listeners: make(map[int]Listener),
	}
}

// Snapshot returns a value copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Apply runs mutate against the state and notifies listeners exactly once if
// anything actually changed. A mutation that leaves the state value-equal to
// the previous state is a no-op and produces no notification. Reports
// whether the mutation was accepted.
func (s *Store) Apply(mutate func(*State)) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := cloneState(s.state)
	mutate(&next)
	if statesEqual(s.state, next) {
		s.mu.Unlock()
		return false
	}
	s.state = next
	snapshot := cloneState(next)
	s.mu.Unlock()

	for _, fn := range s.snapshotListeners() {
		fn(snapshot)
	}
	return true
}

// Subscribe registers a listener and returns its unsubscribe function
func (s *Store) Subscribe(fn Listener) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Store) snapshotListeners() []Listener {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	out := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func cloneState(st State) State {
	out := st
	out.Versions = append([]string(nil), st.Versions...)
	out.News = append([]model.NewsItem(nil), st.News...)
	return out
}

func statesEqual(a, b State) bool {
	return reflect.DeepEqual(a, b)
}
