package client

import (
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultSearchDelay is how long the controller waits after the last
// keystroke before committing a search term.
const DefaultSearchDelay = 1500 * time.Millisecond

// FilterConfig holds FilterController settings
type FilterConfig struct {
	// SearchDelay is the trailing debounce window for search input.
	// Zero means DefaultSearchDelay.
	SearchDelay time.Duration

	// OnCommit is invoked with a snapshot of the query state every
	// time a filter change is committed. It runs outside the
	// controller's lock, so it may call back into the controller.
	OnCommit func(url.Values)
}

// FilterController manages the query state of a service listing.
// Search input is staged on every change but committed only after the
// input has been idle for the debounce window, so one request is
// issued per pause in typing rather than per keystroke. Status changes
// commit immediately. External changes to the query state (such as
// browser navigation) are absorbed with Sync, which discards any
// pending search commit.
type FilterController struct {
	mu      sync.Mutex
	state   url.Values
	staged  string
	pending bool
	gen     uint64
	timer   *time.Timer
	delay   time.Duration
	commit  func(url.Values)
}

// NewFilterController creates a controller with empty query state
func NewFilterController(cfg FilterConfig) *FilterController {
	delay := cfg.SearchDelay
	if delay == 0 {
		delay = DefaultSearchDelay
	}
	commit := cfg.OnCommit
	if commit == nil {
		commit = func(url.Values) {}
	}
	return &FilterController{
		state:  url.Values{},
		delay:  delay,
		commit: commit,
	}
}

// SetSearch stages a new search term and restarts the debounce timer.
// The term is committed once no further SetSearch call arrives within
// the debounce window.
func (fc *FilterController) SetSearch(term string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.staged = term
	fc.pending = true
	fc.gen++
	gen := fc.gen

	// Stop returns false once the callback has already been launched,
	// so the generation capture is what actually cancels a superseded
	// timer: its callback finds a newer generation and backs off.
	if fc.timer != nil {
		fc.timer.Stop()
	}
	fc.timer = time.AfterFunc(fc.delay, func() { fc.fireSearch(gen) })
}

// fireSearch commits the staged search term when the timer for
// generation gen expires. A callback from a superseded generation is
// a no-op. The pending flag stays up through the commit callback, so
// callers observing Pending see the in-flight refetch too.
func (fc *FilterController) fireSearch(gen uint64) {
	fc.mu.Lock()

	if gen != fc.gen || !fc.pending {
		fc.mu.Unlock()
		return
	}

	// Nothing to do when the staged term already matches the
	// committed state; typing a term and reverting it within the
	// window issues no request.
	if fc.staged == fc.state.Get("search") {
		fc.pending = false
		fc.mu.Unlock()
		return
	}

	if strings.TrimSpace(fc.staged) == "" {
		fc.state.Del("search")
	} else {
		fc.state.Set("search", fc.staged)
	}
	snapshot := cloneValues(fc.state)
	fc.mu.Unlock()

	fc.commit(snapshot)

	fc.mu.Lock()
	// A new keystroke during the refetch keeps its own pending state.
	if fc.gen == gen {
		fc.pending = false
	}
	fc.mu.Unlock()
}

// SetStatus commits a status filter immediately. "all" or a blank
// value removes the constraint.
func (fc *FilterController) SetStatus(status string) {
	fc.mu.Lock()

	status = strings.TrimSpace(status)
	if status == "" || status == "all" {
		fc.state.Del("status")
	} else {
		fc.state.Set("status", status)
	}
	snapshot := cloneValues(fc.state)
	fc.mu.Unlock()

	fc.commit(snapshot)
}

// Sync replaces the controller's state with externally changed query
// values, cancels any pending search commit, and restages the search
// term from the new state. No commit is issued; the state already
// reflects reality.
func (fc *FilterController) Sync(values url.Values) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if fc.timer != nil {
		fc.timer.Stop()
	}
	fc.pending = false
	fc.state = cloneValues(values)
	fc.staged = fc.state.Get("search")
}

// Staged returns the search term as currently typed, which may not be
// committed yet.
func (fc *FilterController) Staged() string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.staged
}

// Pending reports whether a search commit is waiting on the debounce
// window.
func (fc *FilterController) Pending() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pending
}

// State returns a snapshot of the committed query state
func (fc *FilterController) State() url.Values {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return cloneValues(fc.state)
}

// Stop cancels any pending search commit
func (fc *FilterController) Stop() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.timer != nil {
		fc.timer.Stop()
	}
	fc.pending = false
}

func cloneValues(v url.Values) url.Values {
	clone := make(url.Values, len(v))
	for key, vals := range v {
		clone[key] = append([]string(nil), vals...)
	}
	return clone
}
