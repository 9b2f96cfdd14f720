package model

import (
	"strconv"
	"strings"
	"time"
)

// Mode selects how a TimeKeeper moves its value on every tick.
type Mode string

const (
	ModeCountdown Mode = "countdown"
	ModeStopwatch Mode = "stopwatch"
)

// TickInterval is the time between two ticks of a running timer.
const TickInterval = time.Second

// TimerState is a snapshot of a TimeKeeper.
type TimerState struct {
	Value   int
	Running bool
	Mode    Mode
}

// AlarmState is a snapshot of an alarm player.
type AlarmState struct {
	Playing bool
	Track   string
	Loop    bool
}

// ParseDurationInput converts minutes/seconds text entries into seconds.
// Missing, non-numeric or negative parts count as zero.
func ParseDurationInput(minutes, seconds string) int {
	return parseNonNegative(minutes)*60 + parseNonNegative(seconds)
}

// DurationSeconds combines selector values into seconds.
func DurationSeconds(minutes, seconds int) int {
	if minutes < 0 {
		minutes = 0
	}
	if seconds < 0 {
		seconds = 0
	}
	return minutes*60 + seconds
}

func parseNonNegative(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
