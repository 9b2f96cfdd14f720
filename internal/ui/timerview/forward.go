package timerview

import (
	"timeapp/internal/core/timekeeper"

	"fyne.io/fyne/v2"
)

// Forward runs handle on the fyne goroutine for every event until events closes.
func Forward(events <-chan timekeeper.Event, handle func(timekeeper.Event)) {
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				handle(event)
			})
		}
	}()
}
