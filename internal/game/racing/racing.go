// Package racing holds the rules of the button-mashing race.
package racing

import "time"

const (
	// FinishLine is the progress at which a racer is done.
	FinishLine = 100
	// ProgressPerPress is added to a racer's progress on every press.
	ProgressPerPress = 2
	// Countdown runs between the room starting and the first accepted press.
	Countdown = 3 * time.Second

	WinReward          = 200
	minPlacementReward = 50
	placementStep      = 30
)

// Press returns the progress after one press and whether the racer crossed the line.
func Press(progress int) (int, bool) {
	if progress >= FinishLine {
		return FinishLine, true
	}
	progress = min(progress+ProgressPerPress, FinishLine)
	return progress, progress >= FinishLine
}

// Started reports whether the countdown from startedAt has elapsed at now.
func Started(startedAt, now time.Time) bool {
	return !now.Before(startedAt.Add(Countdown))
}

// CountdownLeft returns how long until racing opens, zero once it has.
func CountdownLeft(startedAt, now time.Time) time.Duration {
	left := startedAt.Add(Countdown).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// Reward returns the points for finishing at the 1-based position.
func Reward(position int) int {
	if position == 1 {
		return WinReward
	}
	return max(minPlacementReward, WinReward-placementStep*position)
}
