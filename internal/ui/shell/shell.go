// Package shell composes the app's screens into bottom tabs and drives their
// mount/unmount lifecycle.
package shell

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// Screen is one tab's content and lifecycle.
type Screen interface {
	Content() fyne.CanvasObject
	Mount()
	Unmount()
	Close()
}

// Tab describes a screen and its tab item.
type Tab struct {
	Title  string
	Icon   fyne.Resource
	Screen Screen
}

// Shell owns the tabs. Selecting a tab mounts it and unmounts the previous one.
type Shell struct {
	tabs    []Tab
	appTabs *container.AppTabs
	current int

	closeOnce sync.Once
}

// New builds the tab container and mounts the first tab.
func New(tabs ...Tab) *Shell {
	shell := &Shell{tabs: tabs, current: -1}

	items := make([]*container.TabItem, 0, len(tabs))
	for _, tab := range tabs {
		items = append(items, container.NewTabItemWithIcon(tab.Title, tab.Icon, tab.Screen.Content()))
	}
	shell.appTabs = container.NewAppTabs(items...)
	shell.appTabs.SetTabLocation(container.TabLocationBottom)
	shell.appTabs.OnSelected = func(item *container.TabItem) {
		shell.activate(shell.appTabs.SelectedIndex())
	}

	if len(tabs) > 0 {
		shell.activate(0)
	}
	return shell
}

// Content returns the tab container.
func (shell *Shell) Content() fyne.CanvasObject {
	return shell.appTabs
}

// Select shows the tab at index.
func (shell *Shell) Select(index int) {
	if index < 0 || index >= len(shell.tabs) {
		return
	}
	shell.appTabs.SelectIndex(index)
	shell.activate(index)
}

// Current returns the index of the mounted tab, or -1.
func (shell *Shell) Current() int {
	return shell.current
}

// PauseAll unmounts every tab, which pauses timers and silences audio.
func (shell *Shell) PauseAll() {
	for _, tab := range shell.tabs {
		tab.Screen.Unmount()
	}
}

// Close tears every screen down. Later calls do nothing.
func (shell *Shell) Close() {
	shell.closeOnce.Do(func() {
		for _, tab := range shell.tabs {
			tab.Screen.Close()
		}
	})
}

func (shell *Shell) activate(index int) {
	if index == shell.current || index < 0 || index >= len(shell.tabs) {
		return
	}
	if shell.current >= 0 {
		shell.tabs[shell.current].Screen.Unmount()
	}
	shell.current = index
	shell.tabs[index].Screen.Mount()
}
