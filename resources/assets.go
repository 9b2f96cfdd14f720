package resources

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	soundDir = "sounds"
	iconDir  = "icon/"
)

//go:embed sounds/*.wav
var soundFS embed.FS

//go:embed icon/*.png
var iconFS embed.FS

var iconCache sync.Map

// Sounds returns the embedded sound assets rooted at the sounds directory,
// so a track named "alarm" lives at "alarm.wav".
func Sounds() fs.FS {
	sub, err := fs.Sub(soundFS, soundDir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// AppIcon is the launcher and window icon.
func AppIcon() fyne.Resource {
	return MustIcon("timeapp.png")
}

func loadResource(fsys embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
