// Package game is the ebiten surface of the wallpaper: it polls input, feeds
// hover and menu events into the scene and draws the result.
package game

import (
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/hover-wallpaper/internal/clock"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/grid"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
)

// Audio is the part of the media backend the surface needs beyond the scene.
type Audio interface {
	Level(n int) float64
	Reload()
}

var digitKeys = [...]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

type Game struct {
	scene  *scene.Scene
	audio  Audio
	clock  clock.TimeProvider
	assets *assetStore

	width, height int

	// hoverChanged is when each cell last gained or lost hover, for the fade
	hoverChanged []time.Time

	// smoothed background level
	level float64

	// input edge detection
	prevKey map[ebiten.Key]bool

	// menu button state
	menuButtonHovered bool
	menuButtonPressed bool

	// pickDir is swapped in tests
	pickDir func(current string) (string, error)
}

// New returns a surface for sc. audio may be nil when no output device is available.
func New(sc *scene.Scene, audio Audio, tp clock.TimeProvider) *Game {
	return &Game{
		scene:        sc,
		audio:        audio,
		clock:        tp,
		assets:       newAssetStore(sc.Settings().AssetDir),
		hoverChanged: make([]time.Time, sc.State.Grid.Len()),
		prevKey:      map[ebiten.Key]bool{},
		pickDir:      selectAssetDir,
	}
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	st := g.scene.State
	now := g.clock.Now()
	mx, my := ebiten.CursorPosition()

	// Menu button
	g.menuButtonHovered = image.Pt(mx, my).In(menuButtonRect(g.width))
	if g.menuButtonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.menuButtonPressed = true
	}
	clicked := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	if clicked {
		switch {
		case g.menuButtonPressed && g.menuButtonHovered:
			g.toggleMenu()
		case st.MenuOpen:
			g.clickMenu(mx, my)
		}
		g.menuButtonPressed = false
	}

	if justPressed(ebiten.KeySpace) {
		g.scene.TogglePause()
	}
	if justPressed(ebiten.KeyM) {
		g.toggleMenu()
	}
	if g.scene.Settings().RosterSwitch {
		for i, name := range g.scene.Settings().Roster {
			if i >= len(digitKeys) {
				break
			}
			if justPressed(digitKeys[i]) {
				g.scene.Controller.Request(scene.Character(name))
			}
		}
	}
	if justPressed(ebiten.KeyEscape) {
		if !st.MenuOpen {
			return ebiten.Termination
		}
		st.MenuOpen = false
	}
	if justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// The menu overlay and the button cover the grid
	target := grid.None
	if !st.MenuOpen && !g.menuButtonHovered && ebiten.IsFocused() {
		target = st.Grid.CellAt(float64(mx), float64(my), st.Bounds)
	}
	g.routePointer(target, now)

	g.scene.Tick()

	if g.audio != nil {
		g.level = config.SmoothingFactor*g.level + (1-config.SmoothingFactor)*g.audio.Level(2048)
	}
	return nil
}

// routePointer moves hover to target, emitting leave before enter.
func (g *Game) routePointer(target int, now time.Time) {
	st := g.scene.State
	cur := st.Grid.Hovered()
	if target == cur {
		return
	}
	if cur != grid.None {
		g.scene.Dispatcher.OnCellLeave(cur)
		g.hoverChanged[cur] = now
	}
	if target != grid.None {
		g.scene.Dispatcher.OnCellEnter(target)
		g.hoverChanged[target] = now
	}
}

func (g *Game) toggleMenu() {
	if g.scene.Settings().Variant == config.VariantClassic {
		g.scene.TogglePause()
		return
	}
	g.scene.State.MenuOpen = !g.scene.State.MenuOpen
}

func (g *Game) openAssetsDialog() {
	dir, err := g.pickDir(g.scene.Settings().AssetDir)
	if err != nil {
		log.Printf("asset folder dialog failed: %v", err)
		g.scene.State.LastError = err
		return
	}
	if dir == "" {
		return
	}
	log.Printf("loading assets from %s", dir)
	g.assets.setDir(dir)
	if g.audio != nil {
		g.audio.Reload()
	}
	g.scene.ReloadAssets(dir)
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.clock.Now()
	st := g.scene.State

	g.drawBackground(screen)
	g.drawWipe(screen, now)
	g.drawCells(screen, now)
	g.drawShapes(screen, now)
	g.drawMenuButton(screen)
	if st.MenuOpen {
		g.drawMenu(screen)
	}

	status := ""
	switch {
	case st.Transition.Active:
		status = "Switching to " + string(st.Transition.Pending)
	case st.Paused:
		status = "Paused - Space to resume, M for menu"
	}
	if st.LastError != nil {
		if status != "" {
			status += " | "
		}
		status += "Error: " + st.LastError.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, 12)
	}
}

// Layout keeps one logical pixel per window pixel and remeasures the grid on resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.scene.Dispatcher.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}
