package animation

import "time"

// DefaultConfig returns the blink timing used for an expired timer.
func DefaultConfig() Config {
	return Config{
		On:  600 * time.Millisecond,
		Off: 400 * time.Millisecond,
	}
}
