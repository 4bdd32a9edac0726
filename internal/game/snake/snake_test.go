package snake

import (
	"context"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func firstFree(n int) int { return 0 }

func TestNewGame(t *testing.T) {
	g := New(firstFree, nil)
	state := g.State()

	assert.Equal(t, []Point{{X: 10, Y: 10}}, state.Snake)
	assert.Equal(t, Right, state.Heading)
	assert.Equal(t, StatusRunning, state.Status)
	assert.Equal(t, Point{X: 0, Y: 0}, state.Food)
}

func TestFoodNeverOnSnake(t *testing.T) {
	g := New(firstFree, nil)
	g.snake = []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}

	assert.Equal(t, Point{X: 3, Y: 0}, g.placeFood())
}

func TestEatingFoodGrowsAndScoresOnce(t *testing.T) {
	var earned []int
	g := New(firstFree, func(p int) { earned = append(earned, p) })
	g.food = Point{X: 11, Y: 10}

	assert.Equal(t, true, g.Step())
	state := g.State()
	assert.Equal(t, []Point{{X: 11, Y: 10}, {X: 10, Y: 10}}, state.Snake)
	assert.Equal(t, []int{FoodPoints}, earned)
	assert.Equal(t, 1, state.Eaten)
	assert.Equal(t, 10, state.Score)

	assert.Equal(t, true, g.Step())
	assert.Equal(t, 2, len(g.State().Snake))
	assert.Equal(t, 1, len(earned))
}

func TestWallCollisionEndsRun(t *testing.T) {
	var earned []int
	g := New(firstFree, func(p int) { earned = append(earned, p) })
	g.food = Point{X: 0, Y: 19}

	steps := 0
	for g.Step() {
		steps++
	}
	assert.Equal(t, 9, steps)

	state := g.State()
	assert.Equal(t, StatusHitWall, state.Status)
	assert.Equal(t, Point{X: 19, Y: 10}, state.Snake[0])
	assert.Equal(t, 0, len(earned))
	assert.Equal(t, false, g.Step())
}

func TestSelfCollisionEndsRun(t *testing.T) {
	var earned []int
	g := New(firstFree, func(p int) { earned = append(earned, p) })
	g.snake = []Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}}
	g.heading, g.next = Right, Right
	g.food = Point{X: 19, Y: 19}

	assert.Equal(t, true, g.Turn(Down))
	assert.Equal(t, false, g.Step())

	state := g.State()
	assert.Equal(t, StatusHitSelf, state.Status)
	assert.Equal(t, 5, len(state.Snake))
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 0, len(earned))
}

func TestTurnRejectsReversal(t *testing.T) {
	g := New(firstFree, nil)

	assert.Equal(t, false, g.Turn(Left))
	assert.Equal(t, false, g.Turn(Right))
	assert.Equal(t, true, g.Turn(Up))

	g.food = Point{X: 19, Y: 19}
	g.Step()
	assert.Equal(t, Point{X: 10, Y: 9}, g.State().Snake[0])
	assert.Equal(t, false, g.Turn(Down))
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("up")
	assert.Equal(t, nil, err)
	assert.Equal(t, Up, d)

	_, err = ParseDirection("sideways")
	assert.Equal(t, ErrUnknownDirection, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	g := New(firstFree, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		g.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, StatusStopped, g.State().Status)
}
