// internal/guard/guard.go

// Package guard decides, per layout area, whether a request may see its
// page, must wait for session hydration, or must be redirected. The decision
// function is pure; redirects are performed by the caller only when a
// Decided state is reached.
package guard

import "sync/atomic"

// Area is the layout group a route belongs to.
type Area int

const (
	// AreaAuth covers the login, register, verify-email, and password pages.
	AreaAuth Area = iota
	// AreaDashboard covers every authenticated page.
	AreaDashboard
)

// State of the guard for one evaluation.
type State int

const (
	// AwaitingHydration means the session store has not produced a state
	// yet. No protected content may render and no redirect may fire.
	AwaitingHydration State = iota
	// DecidedAuthorized means the page content may render.
	DecidedAuthorized
	// DecidedUnauthorized means the request must be redirected away.
	DecidedUnauthorized
)

// Decision is the action the caller takes.
type Decision int

const (
	// Wait renders only a loading placeholder.
	Wait Decision = iota
	// Render shows the page.
	Render
	// RedirectLogin sends the request to /login, recording the attempted
	// path as the pending redirect target first.
	RedirectLogin
	// RedirectDashboard sends an already-authenticated request away from
	// the auth pages.
	RedirectDashboard
)

// Decide commits to a branch once hydration has happened. Reading the
// authenticated flag before hydration is the bug class this gate exists to
// prevent, so an unhydrated evaluation always waits.
func Decide(area Area, hydrated, authenticated bool) (State, Decision) {
	if !hydrated {
		return AwaitingHydration, Wait
	}

	switch area {
	case AreaDashboard:
		if !authenticated {
			return DecidedUnauthorized, RedirectLogin
		}
		return DecidedAuthorized, Render
	default: // AreaAuth
		if authenticated {
			return DecidedUnauthorized, RedirectDashboard
		}
		return DecidedAuthorized, Render
	}
}

// Latch is the one-shot hydration flag: once fired it never reverts for the
// process lifetime, so guard decisions stay committed across navigations
// without a full restart.
type Latch struct {
	fired atomic.Bool
}

// Fire marks hydration complete. Safe to call more than once.
func (l *Latch) Fire() {
	l.fired.Store(true)
}

// Fired reports whether hydration has completed.
func (l *Latch) Fired() bool {
	return l.fired.Load()
}
