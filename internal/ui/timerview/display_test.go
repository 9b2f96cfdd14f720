package timerview

import (
	"image/color"
	"testing"
	"time"

	"timeapp/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplay(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	display := NewDisplay()
	assert.Equal(t, "00:00", display.Text())

	display.Set(3725)
	assert.Equal(t, "62:05", display.Text())

	display.SetVisible(false)
	assert.Equal(t, color.Transparent, display.text.Color)
	display.SetVisible(true)
	assert.NotEqual(t, color.Transparent, display.text.Color)
}

func TestSetToggle(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	button := widget.NewButton("", nil)
	SetToggle(button, true)
	assert.Equal(t, "Pause", button.Text)
	assert.Equal(t, widget.DangerImportance, button.Importance)

	SetToggle(button, false)
	assert.Equal(t, "Start", button.Text)
	assert.Equal(t, widget.SuccessImportance, button.Importance)
}

func TestForward(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	events := make(chan timekeeper.Event, 2)
	got := make(chan int, 2)
	Forward(events, func(event timekeeper.Event) {
		got <- event.Value
	})
	events <- timekeeper.Event{Value: 4}
	events <- timekeeper.Event{Value: 3}
	close(events)

	for _, want := range []int{4, 3} {
		select {
		case value := <-got:
			assert.Equal(t, want, value)
		case <-time.After(time.Second):
			require.FailNow(t, "event not forwarded")
		}
	}
}
