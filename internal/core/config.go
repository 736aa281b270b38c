package core

// RuntimeConfig contains the platform parameters passed to a session.
// Screen dimensions are in platform units (terminal cells or window pixels);
// the playfield itself always has the fixed world size from the game config.
type RuntimeConfig struct {
	ScreenW  int   // Available width (cells or pixels)
	ScreenH  int   // Available height (cells or pixels)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic obstacle placement
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
