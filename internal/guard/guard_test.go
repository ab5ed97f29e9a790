package guard

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideBeforeHydrationAlwaysWaits(t *testing.T) {
	for _, area := range []Area{AreaAuth, AreaDashboard} {
		for _, authed := range []bool{true, false} {
			state, decision := Decide(area, false, authed)
			assert.Equal(t, AwaitingHydration, state)
			assert.Equal(t, Wait, decision)
		}
	}
}

func TestDecideDashboard(t *testing.T) {
	state, decision := Decide(AreaDashboard, true, false)
	assert.Equal(t, DecidedUnauthorized, state)
	assert.Equal(t, RedirectLogin, decision)

	state, decision = Decide(AreaDashboard, true, true)
	assert.Equal(t, DecidedAuthorized, state)
	assert.Equal(t, Render, decision)
}

func TestDecideAuthPages(t *testing.T) {
	state, decision := Decide(AreaAuth, true, true)
	assert.Equal(t, DecidedUnauthorized, state)
	assert.Equal(t, RedirectDashboard, decision)

	state, decision = Decide(AreaAuth, true, false)
	assert.Equal(t, DecidedAuthorized, state)
	assert.Equal(t, Render, decision)
}

// A Decided state is re-evaluated whenever the authenticated flag changes:
// logging out while a dashboard page is open flips the next evaluation back
// to a login redirect.
func TestDecideReevaluatesOnLogout(t *testing.T) {
	_, decision := Decide(AreaDashboard, true, true)
	assert.Equal(t, Render, decision)

	_, decision = Decide(AreaDashboard, true, false)
	assert.Equal(t, RedirectLogin, decision)
}

func TestLatchFiresOnce(t *testing.T) {
	var l Latch
	assert.False(t, l.Fired())

	l.Fire()
	assert.True(t, l.Fired())

	// Firing again never reverts it.
	l.Fire()
	assert.True(t, l.Fired())
}

func TestLatchConcurrentFire(t *testing.T) {
	var l Latch
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Fire()
		}()
	}
	wg.Wait()

	assert.True(t, l.Fired())
}
