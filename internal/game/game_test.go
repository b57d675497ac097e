package game

import (
	"errors"
	"image/color"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/grid"
	"github.com/iburimskiy/hover-wallpaper/internal/media"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
)

type stubPlayer struct {
	sources map[media.Channel]string
	plays   map[media.Channel]int
}

func (p *stubPlayer) SetSource(ch media.Channel, path string) { p.sources[ch] = path }
func (p *stubPlayer) Source(ch media.Channel) string          { return p.sources[ch] }
func (p *stubPlayer) Play(ch media.Channel) error             { p.plays[ch]++; return nil }
func (p *stubPlayer) Pause(ch media.Channel) error            { return nil }
func (p *stubPlayer) Seek(ch media.Channel, sample int) error { return nil }

type stubAudio struct{ reloads int }

func (a *stubAudio) Level(n int) float64 { return 0.5 }
func (a *stubAudio) Reload()             { a.reloads++ }

func newTestGame(t *testing.T, v config.Variant) (*Game, *stubPlayer, *clock.MockTimeProvider) {
	t.Helper()
	s, err := config.Preset(v)
	if err != nil {
		t.Fatal(err)
	}
	catalog, err := effects.NewCatalog(effects.CatalogConfig{
		Kinds:         s.Shapes,
		Palette:       s.Palette,
		PaletteAlpha:  s.PaletteAlpha,
		Tints:         s.Tints,
		TintAlpha:     s.TintAlpha,
		EnterDuration: s.EnterDuration,
	})
	if err != nil {
		t.Fatal(err)
	}
	player := &stubPlayer{sources: map[media.Channel]string{}, plays: map[media.Channel]int{}}
	mock := clock.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	sc := scene.New(s, catalog, player, mock, rand.New(rand.NewSource(1)))
	sc.Start()

	g := New(sc, &stubAudio{}, mock)
	g.Layout(config.WindowWidth, config.WindowHeight)
	return g, player, mock
}

func TestLayoutMeasuresGrid(t *testing.T) {
	g, _, _ := newTestGame(t, config.VariantRoster)
	b := g.scene.State.Bounds
	if b.Width != config.WindowWidth || b.Height != config.WindowHeight {
		t.Errorf("Expected bounds %dx%d, got %+v", config.WindowWidth, config.WindowHeight, b)
	}
	g.Layout(640, 480)
	if g.scene.State.Bounds.Width != 640 {
		t.Errorf("Expected resize to 640, got %v", g.scene.State.Bounds.Width)
	}
}

func TestRoutePointer(t *testing.T) {
	g, player, mock := newTestGame(t, config.VariantRoster)
	st := g.scene.State
	now := mock.Now()

	g.routePointer(5, now)
	if st.Grid.Hovered() != 5 || player.plays[5] != 1 {
		t.Fatal("Expected enter on cell 5")
	}
	// Staying on the same cell is not a new hover
	g.routePointer(5, now)
	if player.plays[5] != 1 {
		t.Error("Re-entering the same cell retriggered the cue")
	}

	later := now.Add(50 * time.Millisecond)
	g.routePointer(6, later)
	if st.Grid.Cell(5).IsHovered || !st.Grid.Cell(6).IsHovered {
		t.Error("Expected hover to move from 5 to 6")
	}
	if !g.hoverChanged[5].Equal(later) || !g.hoverChanged[6].Equal(later) {
		t.Error("Expected fade timestamps on both cells")
	}

	g.routePointer(grid.None, later)
	if st.Grid.Hovered() != grid.None {
		t.Error("Expected no hover after leaving the grid")
	}
}

func TestHoverAmountFades(t *testing.T) {
	g, _, mock := newTestGame(t, config.VariantRoster)
	start := mock.Now()
	g.routePointer(2, start)

	if amt := g.hoverAmount(2, start); amt != 0 {
		t.Errorf("Expected fade to start at 0, got %v", amt)
	}
	if amt := g.hoverAmount(2, start.Add(config.HoverFade/2)); amt < 0.49 || amt > 0.51 {
		t.Errorf("Expected half faded, got %v", amt)
	}
	if amt := g.hoverAmount(3, start); amt != 0 {
		t.Errorf("Expected untouched cell to be dark, got %v", amt)
	}
}

func TestMenuLayoutStacksRows(t *testing.T) {
	panel, rows := menuLayout(3, 1000, 800)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if !r.In(panel) {
			t.Errorf("Row %d %v outside panel %v", i, r, panel)
		}
		if i > 0 && r.Min.Y < rows[i-1].Max.Y {
			t.Errorf("Row %d overlaps row %d", i, i-1)
		}
	}
	if panel.Min.X != (1000-config.MenuPanelWidth)/2 {
		t.Errorf("Panel not centered: %v", panel)
	}
}

func clickItem(t *testing.T, g *Game, label string) {
	t.Helper()
	items := g.menuItems()
	_, rows := menuLayout(len(items), g.width, g.height)
	for i, it := range items {
		if it.label == label {
			c := rows[i].Min.Add(rows[i].Size().Div(2))
			if !g.clickMenu(c.X, c.Y) {
				t.Fatalf("Click on %q missed", label)
			}
			return
		}
	}
	t.Fatalf("No menu item %q", label)
}

func TestMenuCharacterRequest(t *testing.T) {
	g, _, mock := newTestGame(t, config.VariantRoster)
	st := g.scene.State
	st.MenuOpen = true

	clickItem(t, g, "Kita")
	if st.MenuOpen {
		t.Error("Selecting a character should close the menu")
	}
	if !st.Transition.Active {
		t.Fatal("Expected a transition to start")
	}
	mock.Advance(config.CommitDelay)
	g.scene.Tick()
	if st.Character != "喜多" {
		t.Errorf("Expected 喜多 after commit, got %s", st.Character)
	}
}

func TestMenuMusicSwitch(t *testing.T) {
	g, _, _ := newTestGame(t, config.VariantRoster)
	st := g.scene.State
	st.MenuOpen = true

	clickItem(t, g, "Background music")
	if st.MusicEnabled {
		t.Error("Expected music off after toggling")
	}
	clickItem(t, g, "Background music")
	if !st.MusicEnabled {
		t.Error("Expected music back on")
	}
}

func TestClassicContinueResumes(t *testing.T) {
	g, _, _ := newTestGame(t, config.VariantClassic)
	g.toggleMenu()
	st := g.scene.State
	if !st.Paused || !st.MenuOpen {
		t.Fatal("Classic menu button pauses and opens the menu")
	}
	clickItem(t, g, "Continue")
	if st.Paused || st.MenuOpen {
		t.Error("Continue should resume and close the menu")
	}
}

func TestOpenAssetsDialog(t *testing.T) {
	g, player, _ := newTestGame(t, config.VariantRoster)
	audio := g.audio.(*stubAudio)

	g.pickDir = func(string) (string, error) { return "", nil }
	g.openAssetsDialog()
	if audio.reloads != 0 {
		t.Error("Cancelled dialog must not reload")
	}

	g.pickDir = func(string) (string, error) { return "", errors.New("no display") }
	g.openAssetsDialog()
	if g.scene.State.LastError == nil {
		t.Error("Expected dialog failure to be surfaced")
	}

	g.pickDir = func(string) (string, error) { return "/srv/skins", nil }
	g.openAssetsDialog()
	if audio.reloads != 1 {
		t.Errorf("Expected one reload, got %d", audio.reloads)
	}
	if got := player.Source(0); got != filepath.Join("/srv/skins", "波奇1.wav") {
		t.Errorf("Expected cell 0 rebound to the new folder, got %s", got)
	}
	if g.assets.dir != "/srv/skins" {
		t.Errorf("Expected image store moved to the new folder, got %s", g.assets.dir)
	}
}

func TestMixSRGB(t *testing.T) {
	navy := color.NRGBA{R: 0, G: 0, B: 0x8b, A: 178}
	got := mixSRGB(navy, white, 0.5)
	if got.R != 128 || got.B != 197 {
		t.Errorf("Unexpected mix %+v", got)
	}
	if got.A != 217 {
		t.Errorf("Expected alpha halfway, got %d", got.A)
	}
}

func TestCrossfadeEndpoints(t *testing.T) {
	a := color.NRGBA{R: 255, A: 255}
	b := color.NRGBA{B: 255, A: 255}
	if got := crossfade(a, b, 0); got != a {
		t.Errorf("Expected start color, got %+v", got)
	}
	if got := crossfade(a, b, 1); got != b {
		t.Errorf("Expected end color, got %+v", got)
	}
}

func TestWithOpacity(t *testing.T) {
	if got := withOpacity(white, 0.5); got.A != 128 {
		t.Errorf("Expected alpha 128, got %d", got.A)
	}
	if got := withOpacity(white, 2); got.A != 255 {
		t.Errorf("Expected clamped alpha, got %d", got.A)
	}
}
