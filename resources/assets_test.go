package resources

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundsContainsEveryTrack(t *testing.T) {
	sounds := Sounds()
	for _, name := range []string{"alarm.wav", "music1.wav", "music2.wav", "music3.wav"} {
		info, err := fs.Stat(sounds, name)
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestIconIsCached(t *testing.T) {
	first, err := Icon("timeapp.png")
	require.NoError(t, err)
	second := AppIcon()
	assert.Same(t, first, second)
	assert.NotEmpty(t, first.Content())
}

func TestIconMissing(t *testing.T) {
	_, err := Icon("missing.png")
	assert.Error(t, err)
	assert.Panics(t, func() { MustIcon("missing.png") })
}
