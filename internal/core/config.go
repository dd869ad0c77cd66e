package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to the terminal and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal frontends)
	ScreenH  int   // Screen height in characters (terminal frontends)
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a session.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Tick    int  // Ticks simulated so far (paused ticks excluded)
	Mice    int  // Mice currently in the live set
	Kills   int  // Mice killed this session
	Paused  bool // Whether the simulation is paused
	Stopped bool // Whether the session received a quit signal
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
