package ui

import (
	"github.com/dori/bloc/internal/model"
)

// screen is what the root shows: the container's Nav refined by the
// persisted view mode
type screen int

const (
	screenKanban screen = iota
	screenList
	screenArchive
	screenStats
)

func currentScreen(nav model.Nav, mode model.ViewMode) screen {
	switch nav {
	case model.NavArchive:
		return screenArchive
	case model.NavStats:
		return screenStats
	}
	if mode == model.ViewList {
		return screenList
	}
	return screenKanban
}

// String returns the display name for a screen
func (s screen) String() string {
	switch s {
	case screenKanban:
		return "Board"
	case screenList:
		return "List"
	case screenArchive:
		return "Archive"
	case screenStats:
		return "Stats"
	default:
		return "Unknown"
	}
}

// reminderMsg reports the overdue notification sent at startup
type reminderMsg struct {
	count int
	err   error
}
