package scene

import (
	"log"

	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/media"
)

// Dispatcher turns pointer events on grid cells into shapes, tint changes and cues.
type Dispatcher struct {
	state    *State
	settings *config.Settings
	gen      *effects.Generator
	rng      effects.Rand
	player   media.Player
	sched    *clock.Scheduler
}

func NewDispatcher(state *State, settings *config.Settings, gen *effects.Generator, rng effects.Rand, player media.Player, sched *clock.Scheduler) *Dispatcher {
	return &Dispatcher{
		state:    state,
		settings: settings,
		gen:      gen,
		rng:      rng,
		player:   player,
		sched:    sched,
	}
}

// Resize records new grid bounds
func (d *Dispatcher) Resize(width, height float64) {
	d.state.Bounds = effects.Bounds{Width: width, Height: height}.Normalized()
}

// OnCellEnter handles the pointer entering cell i.
func (d *Dispatcher) OnCellEnter(i int) {
	if !d.state.Grid.Valid(i) {
		return
	}
	d.state.Grid.Enter(i)

	if d.state.Paused {
		if d.settings.Pause == config.PauseSuppressAll {
			return
		}
	} else {
		d.spawn()
		d.MaybeChangeTint()
	}
	d.playCue(i)
}

// OnCellLeave clears i's hover flag. Shapes and cues keep running.
func (d *Dispatcher) OnCellLeave(i int) {
	d.state.Grid.Leave(i)
}

func (d *Dispatcher) spawn() {
	catalog := d.gen.Catalog()
	lb := &LiveBatch{
		Batch:   d.gen.Generate(d.state.Bounds),
		Spawned: d.sched.Now(),
	}

	expiry := config.BatchExpiry
	switch d.settings.Batch {
	case config.BatchReplace:
		for _, old := range d.state.Batches {
			d.retire(old)
		}
	case config.BatchCoexist:
		expiry = lb.Batch.Lifetime(catalog)
	}

	lb.expiry = d.sched.After(expiry, func() { d.retire(lb) })
	d.state.Batches = append(d.state.Batches, lb)
}

// retire starts b's exit and schedules its removal. Its pending expiry, if
// any, is cancelled so it cannot fire against a batch that is already gone.
func (d *Dispatcher) retire(b *LiveBatch) {
	if !b.Live() {
		return
	}
	d.sched.Cancel(b.expiry)
	b.Retired = d.sched.Now()
	d.sched.After(b.Batch.ExitDuration(d.gen.Catalog()), func() {
		d.state.removeBatch(b)
	})
}

// MaybeChangeTint resamples the background tint with the configured chance.
// It reports whether the tint changed.
func (d *Dispatcher) MaybeChangeTint() bool {
	n := d.gen.Catalog().NumTints()
	if n < 2 || d.settings.TintChance <= 0 {
		return false
	}
	if d.rng.Float64() >= d.settings.TintChance {
		return false
	}
	d.state.PrevTint = d.state.Tint
	d.state.Tint = ResampleTint(d.rng, n, d.state.Tint)
	d.state.TintChanged = d.sched.Now()
	return true
}

func (d *Dispatcher) playCue(i int) {
	if d.settings.Cues == config.CueMusicGated && !d.state.MusicEnabled {
		return
	}
	ch := media.Channel(i)
	if d.player.Source(ch) == "" {
		return
	}
	if err := d.player.Seek(ch, 0); err != nil {
		d.fail(ch, err)
		return
	}
	if err := d.player.Play(ch); err != nil {
		d.fail(ch, err)
	}
}

func (d *Dispatcher) fail(ch media.Channel, err error) {
	log.Printf("audio playback failed for %s: %v", ch, err)
}
