package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
	"golang.org/x/image/font/basicfont"
)

const (
	menuPadding     = 32
	menuTitleHeight = 40
	avatarSize      = 30
)

type itemKind int

const (
	itemButton itemKind = iota
	itemSwitch
	itemCharacter
)

type menuItem struct {
	kind      itemKind
	label     string
	character string
	on        bool
	action    func()
}

// menuItems lists the menu rows for the current state.
func (g *Game) menuItems() []menuItem {
	st := g.scene.State
	s := g.scene.Settings()
	var items []menuItem

	if s.Variant == config.VariantClassic {
		items = append(items, menuItem{kind: itemButton, label: "Continue", action: func() {
			if st.Paused {
				g.scene.TogglePause()
			}
			st.MenuOpen = false
		}})
	}

	items = append(items, menuItem{kind: itemSwitch, label: "Background music", on: st.MusicEnabled, action: func() {
		g.scene.SetMusic(!st.MusicEnabled)
	}})

	if s.RosterSwitch {
		for i, name := range s.Roster {
			name := name
			items = append(items, menuItem{kind: itemCharacter, label: s.Label(i), character: name, action: func() {
				g.scene.Controller.Request(scene.Character(name))
			}})
		}
		pauseLabel := "Pause"
		if st.Paused {
			pauseLabel = "Resume"
		}
		items = append(items, menuItem{kind: itemButton, label: pauseLabel, action: g.scene.TogglePause})
	}

	items = append(items, menuItem{kind: itemButton, label: "Open assets folder...", action: g.openAssetsDialog})

	if s.Variant != config.VariantClassic {
		items = append(items, menuItem{kind: itemButton, label: "Close menu", action: func() { st.MenuOpen = false }})
	}
	return items
}

// menuLayout centers a panel holding n rows on a w×h screen.
func menuLayout(n, w, h int) (panel image.Rectangle, rows []image.Rectangle) {
	ph := menuPadding*2 + menuTitleHeight + n*config.MenuItemHeight + max(0, n-1)*config.MenuItemSpacing
	pw := config.MenuPanelWidth
	x0 := (w - pw) / 2
	y0 := (h - ph) / 2
	panel = image.Rect(x0, y0, x0+pw, y0+ph)

	y := y0 + menuPadding + menuTitleHeight
	for i := 0; i < n; i++ {
		rows = append(rows, image.Rect(x0+menuPadding, y, x0+pw-menuPadding, y+config.MenuItemHeight))
		y += config.MenuItemHeight + config.MenuItemSpacing
	}
	return panel, rows
}

// menuButtonRect is the top-right button that opens the menu.
func menuButtonRect(w int) image.Rectangle {
	x1 := w - config.MenuButtonMargin
	y0 := config.MenuButtonMargin
	return image.Rect(x1-config.MenuButtonWidth, y0, x1, y0+config.MenuButtonHeight)
}

// clickMenu runs the item under (x, y). Clicking outside the panel does nothing.
func (g *Game) clickMenu(x, y int) bool {
	items := g.menuItems()
	_, rows := menuLayout(len(items), g.width, g.height)
	p := image.Pt(x, y)
	for i, r := range rows {
		if p.In(r) {
			items[i].action()
			return true
		}
	}
	return false
}

func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	text.Draw(dst, s, basicfont.Face7x13, x, y, clr)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), color.NRGBA{A: 128}, false)

	items := g.menuItems()
	panel, rows := menuLayout(len(items), g.width, g.height)
	vector.DrawFilledRect(screen, float32(panel.Min.X), float32(panel.Min.Y), float32(panel.Dx()), float32(panel.Dy()), menuPanel, false)
	drawText(screen, "Menu", panel.Min.X+menuPadding, panel.Min.Y+menuPadding+20, menuText)

	mx, my := ebiten.CursorPosition()
	cursor := image.Pt(mx, my)
	for i, it := range items {
		r := rows[i]
		switch it.kind {
		case itemSwitch:
			drawText(screen, it.label, r.Min.X, r.Min.Y+r.Dy()/2+5, menuText)
			track := switchOff
			knobX := float32(r.Max.X - 40 + 10)
			if it.on {
				track = switchOn
				knobX = float32(r.Max.X - 10)
			}
			vector.DrawFilledRect(screen, float32(r.Max.X-44), float32(r.Min.Y+r.Dy()/2-10), 44, 20, track, true)
			vector.DrawFilledCircle(screen, knobX-2, float32(r.Min.Y+r.Dy()/2), 8, white, true)
		default:
			bg := menuButton
			if cursor.In(r) {
				bg = menuButtonHi
			}
			vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
			tx := r.Min.X + 12
			if it.kind == itemCharacter {
				if av := g.assets.avatar(it.character); av != nil {
					op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
					op.GeoM.Scale(avatarSize/float64(av.Bounds().Dx()), avatarSize/float64(av.Bounds().Dy()))
					op.GeoM.Translate(float64(r.Min.X+6), float64(r.Min.Y+(r.Dy()-avatarSize)/2))
					screen.DrawImage(av, op)
				}
				tx = r.Min.X + avatarSize + 16
			}
			drawText(screen, it.label, tx, r.Min.Y+r.Dy()/2+5, white)
		}
	}
}

func (g *Game) drawMenuButton(screen *ebiten.Image) {
	r := menuButtonRect(g.width)
	var bg color.NRGBA
	if g.menuButtonPressed {
		bg = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	} else if g.menuButtonHovered {
		bg = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	} else {
		bg = white
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, false)

	cx := float32(r.Min.X + r.Dx()/2)
	cy := float32(r.Min.Y + r.Dy()/2)
	if g.scene.Settings().Variant == config.VariantClassic {
		if g.scene.State.Paused {
			// play triangle
			var path vector.Path
			path.MoveTo(cx-5, cy-7)
			path.LineTo(cx+7, cy)
			path.LineTo(cx-5, cy+7)
			path.Close()
			fillPath(screen, &path, menuText, 1)
		} else {
			vector.DrawFilledRect(screen, cx-6, cy-7, 4, 14, menuText, false)
			vector.DrawFilledRect(screen, cx+2, cy-7, 4, 14, menuText, false)
		}
		return
	}
	for _, dy := range []float32{-6, 0, 6} {
		vector.StrokeLine(screen, cx-8, cy+dy, cx+8, cy+dy, 2, menuText, false)
	}
}
