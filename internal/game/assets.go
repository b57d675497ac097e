package game

import (
	"errors"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ncruces/zenity"
)

// assetStore lazily loads portraits and avatars from the asset folder.
// Missing files are logged once and drawn as nothing.
type assetStore struct {
	dir     string
	images  map[string]*ebiten.Image
	missing map[string]bool
}

func newAssetStore(dir string) *assetStore {
	return &assetStore{
		dir:     dir,
		images:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
	}
}

func (a *assetStore) setDir(dir string) {
	a.dir = dir
	a.images = make(map[string]*ebiten.Image)
	a.missing = make(map[string]bool)
}

func (a *assetStore) image(name string) *ebiten.Image {
	if img, ok := a.images[name]; ok {
		return img
	}
	if a.missing[name] {
		return nil
	}
	path := filepath.Join(a.dir, name)
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		log.Printf("image %s unavailable: %v", path, err)
		a.missing[name] = true
		return nil
	}
	a.images[name] = img
	return img
}

// portrait returns the full-screen art of a character
func (a *assetStore) portrait(character string) *ebiten.Image {
	return a.image(character + ".jpg")
}

// avatar returns the menu head shot of a character
func (a *assetStore) avatar(character string) *ebiten.Image {
	return a.image(character + "_head.jpg")
}

// selectAssetDir asks the user for an asset folder. An empty path with a nil
// error means the dialog was cancelled.
func selectAssetDir(current string) (string, error) {
	dir, err := zenity.SelectFile(
		zenity.Title("Open Assets Folder"),
		zenity.Directory(),
		zenity.Filename(current),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return dir, nil
}
