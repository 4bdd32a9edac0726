// Package quiz implements one player's run through a timed quiz.
package quiz

import "errors"

// QuestionSeconds is the countdown each question starts with.
const QuestionSeconds = 10

var (
	ErrRunFinished     = errors.New("quiz already finished")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrInvalidOption   = errors.New("invalid answer option")
)

type Question struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"-"`
}

// DefaultQuestions is the fixed question set used by quiz rooms.
var DefaultQuestions = []Question{
	{
		Prompt:  "Qual anime tem o protagonista Monkey D. Luffy?",
		Options: []string{"Naruto", "One Piece", "Dragon Ball", "Attack on Titan"},
		Correct: 1,
	},
	{
		Prompt:  "Em qual console foi lançado Super Mario Bros?",
		Options: []string{"Atari", "Nintendo Entertainment System", "Sega Genesis", "PlayStation"},
		Correct: 1,
	},
	{
		Prompt:  "Qual é o nome do protagonista de The Legend of Zelda?",
		Options: []string{"Zelda", "Link", "Ganondorf", "Epona"},
		Correct: 1,
	},
	{
		Prompt:  "Qual anime é conhecido por 'Kamehameha'?",
		Options: []string{"Naruto", "One Piece", "Dragon Ball", "Bleach"},
		Correct: 2,
	},
	{
		Prompt:  "Em que ano foi lançado o primeiro Pokémon?",
		Options: []string{"1994", "1996", "1998", "2000"},
		Correct: 1,
	},
}

// Run is a player's progress through the question list. It is not safe for
// concurrent use; the room runtime serialises access.
type Run struct {
	questions []Question
	index     int
	timeLeft  int
	score     int
	answered  bool
	selected  int
}

func NewRun(questions []Question) *Run {
	return &Run{
		questions: questions,
		timeLeft:  QuestionSeconds,
		selected:  -1,
	}
}

// Answer records the player's choice for the current question and returns the
// points it earned. A correct answer earns max(1, seconds remaining).
func (r *Run) Answer(option int) (int, error) {
	if r.Done() {
		return 0, ErrRunFinished
	}
	if r.answered {
		return 0, ErrAlreadyAnswered
	}
	q := r.questions[r.index]
	if option < 0 || option >= len(q.Options) {
		return 0, ErrInvalidOption
	}

	r.answered = true
	r.selected = option
	if option != q.Correct {
		return 0, nil
	}
	points := max(1, r.timeLeft)
	r.score += points
	return points, nil
}

// Tick advances the run by one second. An answered question moves on at the
// next tick; an unanswered one moves on when its countdown reaches zero.
// It reports whether the run moved to another question (or finished).
func (r *Run) Tick() bool {
	if r.Done() {
		return false
	}
	if r.answered {
		r.next()
		return true
	}
	r.timeLeft--
	if r.timeLeft <= 0 {
		r.next()
		return true
	}
	return false
}

func (r *Run) next() {
	r.index++
	r.timeLeft = QuestionSeconds
	r.answered = false
	r.selected = -1
}

func (r *Run) Done() bool { return r.index >= len(r.questions) }

func (r *Run) Score() int { return r.score }

// State is a point-in-time view of a run.
type State struct {
	Index     int       `json:"index"`
	Total     int       `json:"total"`
	Question  *Question `json:"question,omitempty"`
	TimeLeft  int       `json:"time_left"`
	Answered  bool      `json:"answered"`
	Selected  *int      `json:"selected,omitempty"`
	Correct   *int      `json:"correct,omitempty"`
	Score     int       `json:"score"`
	Completed bool      `json:"completed"`
}

func (r *Run) State() State {
	s := State{
		Index:     r.index,
		Total:     len(r.questions),
		TimeLeft:  r.timeLeft,
		Answered:  r.answered,
		Score:     r.score,
		Completed: r.Done(),
	}
	if s.Completed {
		s.TimeLeft = 0
		return s
	}
	q := r.questions[r.index]
	s.Question = &q
	if r.answered {
		selected, correct := r.selected, q.Correct
		s.Selected = &selected
		s.Correct = &correct
	}
	return s
}
