// Package scene owns the wallpaper's application state and the logic that
// reacts to hover and menu events.
package scene

import (
	"time"

	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/grid"
)

// Character is a roster entry's asset key.
type Character string

// Direction is the edge a transition wipe slides in from.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// LiveBatch is an effect batch on screen. Retired is zero while the shapes
// are entering or settled; once set they play their exit.
type LiveBatch struct {
	Batch   effects.Batch
	Spawned time.Time
	Retired time.Time

	expiry clock.Handle
}

// Live reports whether the batch has not started exiting
func (b *LiveBatch) Live() bool { return b.Retired.IsZero() }

// Transition is the character-switch state machine. Pending is set iff Active.
type Transition struct {
	Active    bool
	Pending   Character
	Direction Direction
	Started   time.Time
}

// Wipe is the visual of a switch. It outlives the commit so the slide can finish.
type Wipe struct {
	Character Character
	Direction Direction
	Started   time.Time
	Duration  time.Duration
}

// State is everything the surface draws from. It is mutated only from the
// update loop.
type State struct {
	Grid   *grid.Grid
	Bounds effects.Bounds

	Character Character

	// Tint indexes the catalog's background tints; -1 when the palette is empty.
	Tint        int
	PrevTint    int
	TintChanged time.Time

	Paused       bool
	MusicEnabled bool
	MenuOpen     bool

	Batches    []*LiveBatch
	Transition Transition
	Wipe       *Wipe

	// LastError is the most recent folder dialog failure, shown in the status line.
	// Playback failures are only logged.
	LastError error
}

func (s *State) removeBatch(b *LiveBatch) {
	for i, cur := range s.Batches {
		if cur == b {
			s.Batches = append(s.Batches[:i], s.Batches[i+1:]...)
			return
		}
	}
}
