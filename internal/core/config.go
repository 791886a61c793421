package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
	Status   string // Short status line for the platform (e.g. why the game ended)
	Level    int    // Level in play, 1-indexed; 0 for games without levels
	Boards   int    // Boards completed so far in this run
	Won      bool   // Whether the game ended by being beaten
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Event is a notable thing that happened during a tick.
type Event struct {
	Kind   EventKind
	Detail string
}

// EventKind classifies an Event.
type EventKind int

const (
	EventBoardCompleted EventKind = iota + 1
	EventBoardLost
	EventLevelStarted
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventBoardCompleted:
		return "board_completed"
	case EventBoardLost:
		return "board_lost"
	case EventLevelStarted:
		return "level_started"
	default:
		return "unknown"
	}
}
