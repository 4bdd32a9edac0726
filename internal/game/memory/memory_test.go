package memory

import (
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

// noShuffle keeps the deck as Symbols followed by Symbols, so card i pairs with i+8.
func noShuffle(n int, swap func(i, j int)) {}

type fakeClock struct {
	delays  []time.Duration
	pending []func()
}

func (c *fakeClock) schedule(d time.Duration, f func()) func() {
	c.delays = append(c.delays, d)
	c.pending = append(c.pending, f)
	return func() {}
}

func (c *fakeClock) fire() {
	fns := c.pending
	c.pending = nil
	for _, f := range fns {
		f()
	}
}

func TestNewDealsSixteenCardsInPairs(t *testing.T) {
	g := New(nil, nil, nil)
	counts := map[string]int{}
	for _, c := range g.cards {
		counts[c.Symbol]++
	}
	assert.Equal(t, 16, len(g.cards))
	assert.Equal(t, 8, len(counts))
	for _, n := range counts {
		assert.Equal(t, 2, n)
	}
}

func TestMatchingPairStaysMatched(t *testing.T) {
	clock := &fakeClock{}
	g := New(noShuffle, clock.schedule, nil)

	assert.Equal(t, nil, g.Flip(0))
	assert.Equal(t, nil, g.Flip(8))

	state := g.State()
	assert.Equal(t, true, state.Cards[0].Matched)
	assert.Equal(t, true, state.Cards[8].Matched)
	assert.Equal(t, 1, state.Matched)
	assert.Equal(t, 1, state.Moves)
	assert.Equal(t, 0, len(clock.pending))

	assert.Equal(t, ErrCardUnavailable, g.Flip(0))
}

func TestMismatchFlipsBackAfterDelay(t *testing.T) {
	clock := &fakeClock{}
	g := New(noShuffle, clock.schedule, nil)

	assert.Equal(t, nil, g.Flip(0))
	assert.Equal(t, nil, g.Flip(1))

	state := g.State()
	assert.Equal(t, true, state.Cards[0].Flipped)
	assert.Equal(t, true, state.Cards[1].Flipped)
	assert.Equal(t, []time.Duration{RevealDelay}, clock.delays)

	assert.Equal(t, ErrPairPending, g.Flip(2))

	clock.fire()
	state = g.State()
	assert.Equal(t, false, state.Cards[0].Flipped)
	assert.Equal(t, false, state.Cards[1].Flipped)
	assert.Equal(t, false, state.Cards[0].Matched)
	assert.Equal(t, "", state.Cards[0].Symbol)

	assert.Equal(t, nil, g.Flip(2))
}

func TestCompletionAwardsBonusOnce(t *testing.T) {
	var earned []int
	clock := &fakeClock{}
	g := New(noShuffle, clock.schedule, func(p int) { earned = append(earned, p) })

	// one miss on the way
	assert.Equal(t, nil, g.Flip(0))
	assert.Equal(t, nil, g.Flip(1))
	clock.fire()

	for i := 0; i < len(Symbols); i++ {
		assert.Equal(t, nil, g.Flip(i))
		assert.Equal(t, nil, g.Flip(i+len(Symbols)))
	}

	state := g.State()
	assert.Equal(t, true, state.Completed)
	assert.Equal(t, 8, state.Matched)
	assert.Equal(t, 9, state.Moves)
	assert.Equal(t, []int{CompletionBonus}, earned)

	assert.Equal(t, ErrGameCompleted, g.Flip(0))
	assert.Equal(t, []int{CompletionBonus}, earned)
}

func TestFlipInvalidCard(t *testing.T) {
	g := New(noShuffle, nil, nil)
	assert.Equal(t, ErrInvalidCard, g.Flip(-1))
	assert.Equal(t, ErrInvalidCard, g.Flip(16))
}
