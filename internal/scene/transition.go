package scene

import (
	"log"

	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/media"
)

// Controller swaps the current character behind a directional wipe.
//
// Idle -> Transitioning on Request; Transitioning -> Idle CommitDelay later,
// regardless of how far the wipe has drawn. Requests made while transitioning
// are ignored.
type Controller struct {
	state    *State
	settings *config.Settings
	rng      effects.Rand
	player   media.Player
	sched    *clock.Scheduler
}

func NewController(state *State, settings *config.Settings, rng effects.Rand, player media.Player, sched *clock.Scheduler) *Controller {
	return &Controller{
		state:    state,
		settings: settings,
		rng:      rng,
		player:   player,
		sched:    sched,
	}
}

// InRoster reports whether c is selectable
func (c *Controller) InRoster(ch Character) bool {
	for _, name := range c.settings.Roster {
		if Character(name) == ch {
			return true
		}
	}
	return false
}

// Request starts a switch to next. It reports whether the request was accepted.
func (c *Controller) Request(next Character) bool {
	if c.state.Transition.Active {
		log.Printf("character switch to %s ignored: switch to %s in progress", next, c.state.Transition.Pending)
		return false
	}
	if !c.InRoster(next) {
		log.Printf("character switch to %s ignored: not in roster", next)
		return false
	}

	now := c.sched.Now()
	dir := Direction(c.rng.Intn(4))
	c.state.MenuOpen = false
	c.state.Transition = Transition{
		Active:    true,
		Pending:   next,
		Direction: dir,
		Started:   now,
	}
	wipe := &Wipe{
		Character: next,
		Direction: dir,
		Started:   now,
		Duration:  config.WipeDuration,
	}
	c.state.Wipe = wipe

	c.sched.After(config.CommitDelay, c.commit)
	c.sched.After(config.WipeDuration, func() {
		if c.state.Wipe == wipe {
			c.state.Wipe = nil
		}
	})
	return true
}

func (c *Controller) commit() {
	next := c.state.Transition.Pending
	c.state.Character = next
	c.Rebind()
	c.state.Transition = Transition{}
	log.Printf("character switched to %s", next)
}

// Rebind points every cell channel at the current character's cues.
func (c *Controller) Rebind() {
	for i := 0; i < c.state.Grid.Len(); i++ {
		c.player.SetSource(media.Channel(i), media.CuePath(c.settings.AssetDir, string(c.state.Character), i, c.settings.CueExt))
	}
}
