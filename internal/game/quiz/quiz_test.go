package quiz

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCorrectAnswerScoresSecondsRemaining(t *testing.T) {
	r := NewRun(DefaultQuestions)

	for i := 0; i < 3; i++ {
		assert.Equal(t, false, r.Tick())
	}
	assert.Equal(t, 7, r.State().TimeLeft)

	points, err := r.Answer(DefaultQuestions[0].Correct)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 7, points)
	assert.Equal(t, 7, r.Score())
}

func TestCorrectAnswerScoresAtLeastOne(t *testing.T) {
	r := NewRun(DefaultQuestions)
	r.timeLeft = 0

	points, err := r.Answer(DefaultQuestions[0].Correct)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, points)
}

func TestWrongAnswerScoresNothing(t *testing.T) {
	r := NewRun(DefaultQuestions)

	points, err := r.Answer(0)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, points)
	assert.Equal(t, 0, r.Score())

	state := r.State()
	assert.Equal(t, true, state.Answered)
	assert.Equal(t, 0, *state.Selected)
	assert.Equal(t, 1, *state.Correct)
}

func TestAnswerTwiceRejected(t *testing.T) {
	r := NewRun(DefaultQuestions)
	if _, err := r.Answer(1); err != nil {
		t.Fatal(err)
	}
	_, err := r.Answer(1)
	assert.Equal(t, ErrAlreadyAnswered, err)
}

func TestInvalidOption(t *testing.T) {
	r := NewRun(DefaultQuestions)
	_, err := r.Answer(4)
	assert.Equal(t, ErrInvalidOption, err)
	_, err = r.Answer(-1)
	assert.Equal(t, ErrInvalidOption, err)
}

func TestAnsweredQuestionAdvancesOnNextTick(t *testing.T) {
	r := NewRun(DefaultQuestions)
	if _, err := r.Answer(1); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, true, r.Tick())
	state := r.State()
	assert.Equal(t, 1, state.Index)
	assert.Equal(t, QuestionSeconds, state.TimeLeft)
	assert.Equal(t, false, state.Answered)
}

func TestExpiredQuestionAdvancesWithZeroPoints(t *testing.T) {
	r := NewRun(DefaultQuestions)

	for i := 0; i < QuestionSeconds-1; i++ {
		assert.Equal(t, false, r.Tick())
	}
	assert.Equal(t, true, r.Tick())

	assert.Equal(t, 1, r.State().Index)
	assert.Equal(t, 0, r.Score())
}

func TestRunCompletes(t *testing.T) {
	r := NewRun(DefaultQuestions)
	want := 0
	for _, q := range DefaultQuestions {
		points, err := r.Answer(q.Correct)
		if err != nil {
			t.Fatal(err)
		}
		want += points
		r.Tick()
	}

	assert.Equal(t, true, r.Done())
	assert.Equal(t, QuestionSeconds*len(DefaultQuestions), want)
	assert.Equal(t, want, r.Score())
	assert.Equal(t, false, r.Tick())

	_, err := r.Answer(0)
	assert.Equal(t, ErrRunFinished, err)

	state := r.State()
	assert.Equal(t, true, state.Completed)
	assert.T(t, state.Question == nil)
}
