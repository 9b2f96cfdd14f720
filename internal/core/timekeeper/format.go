package timekeeper

import "fmt"

// FormatClock renders seconds as MM:SS. Minutes are not wrapped at an hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
