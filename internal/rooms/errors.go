package rooms

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrAlreadyJoined     = errors.New("already joined this room")
	ErrNotEnoughPlayers  = errors.New("at least two players are required to start")
	ErrNotParticipant    = errors.New("not a participant of this room")
	ErrRoomNotWaiting    = errors.New("room is not waiting for players")
	ErrRoomNotPlaying    = errors.New("room is not playing")
	ErrWrongGameType     = errors.New("operation not available for this game type")
	ErrRaceNotStarted    = errors.New("race countdown still running")
	ErrQuizNotRunning    = errors.New("quiz is not running in this room")
	ErrInvalidGameType   = errors.New("game_type must be quiz or racing")
	ErrInvalidMaxPlayers = errors.New("max_players must be between 2 and 8")
	ErrCodeExhausted     = errors.New("could not allocate a unique room code")
)
