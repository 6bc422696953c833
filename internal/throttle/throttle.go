// Package throttle implements the client-side login guard: consecutive
// failures are counted in local persisted state and, from the fifth
// failure on, attempts are refused locally for fifteen minutes before any
// request is made. It is advisory UX protection, not a security control;
// the server checks credentials on every request that reaches it.
package throttle

import (
	"fmt"
	"time"
)

const (
	// MaxFailures is the count at which the lockout engages.
	MaxFailures = 5
	// WarnAfter is the count from which remaining attempts are announced.
	WarnAfter = 3
	// LockWindow is how long login stays locally blocked after MaxFailures.
	LockWindow = 15 * time.Minute
	// DecayAfter resets the counter when the last failure is this old.
	DecayAfter = time.Hour
)

// State is the persisted throttle state, the equivalent of the browser's
// localStorage entries surviving page reloads.
type State struct {
	Failures    int       `json:"tentativas"`
	LastFailure time.Time `json:"ultima_tentativa"`
	LockedUntil time.Time `json:"bloqueado_ate"`
}

// Store persists State between runs.
type Store interface {
	Load() (State, error)
	Save(State) error
	Clear() error
}

// ErrLocked reports a locally refused attempt and the time left on the lock.
type ErrLocked struct {
	Remaining time.Duration
}

func (e *ErrLocked) Error() string {
	return fmt.Sprintf("muitas tentativas, tente novamente em %d segundos",
		int(e.Remaining.Seconds()+0.999))
}

// Guard evaluates the throttle against a Store. All methods apply the
// one-hour decay before anything else, so stale state never locks anyone out.
type Guard struct {
	store Store
	now   func() time.Time
}

// NewGuard wraps a Store.
func NewGuard(store Store) *Guard {
	return &Guard{store: store, now: time.Now}
}

// Check returns *ErrLocked while the lock window is active, nil otherwise.
// Callers must not contact the server when an error is returned.
func (g *Guard) Check() error {
	s, err := g.load()
	if err != nil {
		return err
	}

	now := g.now()
	if !s.LockedUntil.IsZero() {
		if now.Before(s.LockedUntil) {
			return &ErrLocked{Remaining: s.LockedUntil.Sub(now)}
		}
		// the window elapsed: back to open, attempts reach the server again
		return g.store.Clear()
	}

	if s.Failures >= MaxFailures {
		// counter ran out without an active lock yet: lock now
		s.LockedUntil = now.Add(LockWindow)
		if err := g.store.Save(s); err != nil {
			return err
		}
		return &ErrLocked{Remaining: LockWindow}
	}
	return nil
}

// RecordFailure increments the counter and engages the lock when the
// counter reaches MaxFailures.
func (g *Guard) RecordFailure() error {
	s, err := g.load()
	if err != nil {
		return err
	}

	now := g.now()
	s.Failures++
	s.LastFailure = now
	if s.Failures >= MaxFailures {
		s.LockedUntil = now.Add(LockWindow)
	}
	return g.store.Save(s)
}

// RecordSuccess resets the state entirely.
func (g *Guard) RecordSuccess() error {
	return g.store.Clear()
}

// Remaining returns how many attempts are left before the lock, or 0 when
// already locked. Only meaningful for the warning band.
func (g *Guard) Remaining() int {
	s, err := g.load()
	if err != nil {
		return MaxFailures
	}
	left := MaxFailures - s.Failures
	if left < 0 {
		return 0
	}
	return left
}

// ShouldWarn reports whether the caller is inside the warning band.
func (g *Guard) ShouldWarn() bool {
	s, err := g.load()
	if err != nil {
		return false
	}
	return s.Failures >= WarnAfter && s.Failures < MaxFailures
}

// load reads the state and applies the decay rule.
func (g *Guard) load() (State, error) {
	s, err := g.store.Load()
	if err != nil {
		return State{}, err
	}

	if !s.LastFailure.IsZero() && g.now().Sub(s.LastFailure) > DecayAfter {
		s = State{}
		if err := g.store.Clear(); err != nil {
			return State{}, err
		}
	}
	return s, nil
}
