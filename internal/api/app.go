package api

import (
	"github.com/yourname/sleepcatalyst/internal"
	"github.com/yourname/sleepcatalyst/internal/tracker"
)

type App interface {
	Logger() internal.Logger
	Tracker() *tracker.Tracker
}
