// Package memory implements the single-player card matching game.
package memory

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

const (
	RevealDelay     = 1000 * time.Millisecond
	CompletionBonus = 50
)

// Symbols are the eight distinct faces; each appears on exactly two cards.
var Symbols = []string{"🎮", "🎯", "⭐", "🎪", "🎨", "🎭", "👾", "🎵"}

var (
	ErrGameCompleted   = errors.New("game already completed")
	ErrInvalidCard     = errors.New("invalid card")
	ErrCardUnavailable = errors.New("card is already face up")
	ErrPairPending     = errors.New("wait for the current pair to flip back")
)

// Scheduler runs f after d and returns a function that cancels it.
type Scheduler func(d time.Duration, f func()) (cancel func())

func afterFunc(d time.Duration, f func()) func() {
	t := time.AfterFunc(d, f)
	return func() { t.Stop() }
}

type Card struct {
	ID      int    `json:"id"`
	Symbol  string `json:"symbol,omitempty"`
	Flipped bool   `json:"flipped"`
	Matched bool   `json:"matched"`
}

type Game struct {
	mu        sync.Mutex
	cards     []Card
	faceUp    []int
	moves     int
	completed bool
	onPoints  func(int)
	schedule  Scheduler
	cancel    func()
}

// New deals a shuffled deck. shuffle and schedule may be nil to use
// math/rand and real timers.
func New(shuffle func(n int, swap func(i, j int)), schedule Scheduler, onPoints func(int)) *Game {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	if schedule == nil {
		schedule = afterFunc
	}
	if onPoints == nil {
		onPoints = func(int) {}
	}

	faces := append(append([]string(nil), Symbols...), Symbols...)
	shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })

	cards := make([]Card, len(faces))
	for i, s := range faces {
		cards[i] = Card{ID: i, Symbol: s}
	}
	return &Game{cards: cards, onPoints: onPoints, schedule: schedule}
}

// Flip turns a card face up. The second card of a pair counts as a move; a
// matching pair stays up for good, a mismatch flips back after RevealDelay.
func (g *Game) Flip(id int) error {
	g.mu.Lock()

	if g.completed {
		g.mu.Unlock()
		return ErrGameCompleted
	}
	if id < 0 || id >= len(g.cards) {
		g.mu.Unlock()
		return ErrInvalidCard
	}
	if len(g.faceUp) >= 2 {
		g.mu.Unlock()
		return ErrPairPending
	}
	card := &g.cards[id]
	if card.Flipped || card.Matched {
		g.mu.Unlock()
		return ErrCardUnavailable
	}

	card.Flipped = true
	g.faceUp = append(g.faceUp, id)
	if len(g.faceUp) < 2 {
		g.mu.Unlock()
		return nil
	}

	g.moves++
	first, second := &g.cards[g.faceUp[0]], &g.cards[g.faceUp[1]]
	if first.Symbol != second.Symbol {
		pair := [2]int{g.faceUp[0], g.faceUp[1]}
		g.cancel = g.schedule(RevealDelay, func() { g.hide(pair) })
		g.mu.Unlock()
		return nil
	}

	first.Matched, second.Matched = true, true
	g.faceUp = g.faceUp[:0]
	done := g.allMatched()
	if done {
		g.completed = true
	}
	g.mu.Unlock()

	if done {
		g.onPoints(CompletionBonus)
	}
	return nil
}

func (g *Game) hide(pair [2]int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range pair {
		g.cards[id].Flipped = false
	}
	g.faceUp = g.faceUp[:0]
	g.cancel = nil
}

func (g *Game) allMatched() bool {
	for _, c := range g.cards {
		if !c.Matched {
			return false
		}
	}
	return true
}

// Stop cancels a pending flip-back.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

type State struct {
	Cards     []Card `json:"cards"`
	Moves     int    `json:"moves"`
	Matched   int    `json:"matched_pairs"`
	Completed bool   `json:"completed"`
}

// State hides the symbol of every card that is face down.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := State{Cards: make([]Card, len(g.cards)), Moves: g.moves, Completed: g.completed}
	for i, c := range g.cards {
		if c.Matched {
			s.Matched++
		}
		if !c.Flipped && !c.Matched {
			c.Symbol = ""
		}
		s.Cards[i] = c
	}
	s.Matched /= 2
	return s
}
