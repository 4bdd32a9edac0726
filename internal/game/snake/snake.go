// Package snake implements the single-player snake game on a fixed board.
package snake

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

const (
	BoardSize    = 20
	TickInterval = 150 * time.Millisecond
	FoodPoints   = 10
)

var ErrUnknownDirection = errors.New("unknown direction")

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Direction Point

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// ParseDirection maps "up", "down", "left" and "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Direction{}, ErrUnknownDirection
}

type Status string

const (
	StatusRunning Status = "running"
	StatusHitWall Status = "hit_wall"
	StatusHitSelf Status = "hit_self"
	StatusStopped Status = "stopped"
)

var start = Point{X: 10, Y: 10}

type Game struct {
	mu       sync.Mutex
	snake    []Point
	food     Point
	heading  Direction
	next     Direction
	status   Status
	eaten    int
	intn     func(n int) int
	onPoints func(int)
}

// New starts a game with a one-segment snake at the board centre heading right.
// intn picks food cells; nil uses math/rand. onPoints is called once per food eaten.
func New(intn func(n int) int, onPoints func(int)) *Game {
	if intn == nil {
		intn = rand.Intn
	}
	if onPoints == nil {
		onPoints = func(int) {}
	}
	g := &Game{
		snake:    []Point{start},
		heading:  Right,
		next:     Right,
		status:   StatusRunning,
		intn:     intn,
		onPoints: onPoints,
	}
	g.food = g.placeFood()
	return g
}

// Turn queues a direction change for the next step. Reversing onto the
// snake's own axis is ignored.
func (g *Game) Turn(d Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusRunning {
		return false
	}
	horizontal := d.Y == 0
	if horizontal && g.heading.X != 0 || !horizontal && g.heading.Y != 0 {
		return false
	}
	g.next = d
	return true
}

// Step moves the snake one cell and reports whether the game is still running.
func (g *Game) Step() bool {
	g.mu.Lock()
	if g.status != StatusRunning {
		g.mu.Unlock()
		return false
	}

	g.heading = g.next
	head := Point{X: g.snake[0].X + g.heading.X, Y: g.snake[0].Y + g.heading.Y}

	if head.X < 0 || head.X >= BoardSize || head.Y < 0 || head.Y >= BoardSize {
		g.status = StatusHitWall
		g.mu.Unlock()
		return false
	}
	if occupies(g.snake, head) {
		g.status = StatusHitSelf
		g.mu.Unlock()
		return false
	}

	g.snake = append([]Point{head}, g.snake...)
	ate := head == g.food
	if ate {
		g.eaten++
		g.food = g.placeFood()
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}
	g.mu.Unlock()

	if ate {
		g.onPoints(FoodPoints)
	}
	return true
}

// Run steps the game every TickInterval until it ends or ctx is cancelled.
func (g *Game) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			g.stop()
			return
		case <-ticker.C:
			if !g.Step() {
				return
			}
		}
	}
}

func (g *Game) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.status == StatusRunning {
		g.status = StatusStopped
	}
}

// placeFood picks a free cell. Callers hold g.mu.
func (g *Game) placeFood() Point {
	free := make([]Point, 0, BoardSize*BoardSize-len(g.snake))
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			p := Point{X: x, Y: y}
			if !occupies(g.snake, p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return g.snake[0]
	}
	return free[g.intn(len(free))]
}

func occupies(segments []Point, p Point) bool {
	for _, s := range segments {
		if s == p {
			return true
		}
	}
	return false
}

type State struct {
	Snake   []Point   `json:"snake"`
	Food    Point     `json:"food"`
	Heading Direction `json:"heading"`
	Status  Status    `json:"status"`
	Eaten   int       `json:"eaten"`
	Score   int       `json:"score"`
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		Snake:   append([]Point(nil), g.snake...),
		Food:    g.food,
		Heading: g.heading,
		Status:  g.status,
		Eaten:   g.eaten,
		Score:   g.eaten * FoodPoints,
	}
}
