// Package assets supplies the card's static visual resources: the overlay
// frame, the circular avatar mask, the curved corner mask, and the display
// font. The compositor only sees the Loader interface, so installs can swap
// in their own artwork via a directory while everything else (including
// tests) runs on the built-in procedural set.
package assets

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Asset names understood by every Loader.
const (
	Overlay    = "overlay"
	CircleMask = "mask_circle"
	CurvedMask = "curved_overlay"
)

type Loader interface {
	// Image returns the named asset decoded.
	Image(name string) (image.Image, error)
	// FontFace returns the display font at the given point size.
	FontFace(points float64) (font.Face, error)
}

// fileCandidates maps asset names to the filenames a Dir loader accepts,
// first match wins.
var fileCandidates = map[string][]string{
	Overlay:    {"overlay.png", "overlay1.png"},
	CircleMask: {"mask_circle.png", "mask_circle.jpg"},
	CurvedMask: {"curved_overlay.png", "curvedoverlay.png"},
}

var fontCandidates = []string{"levelfont.otf", "levelfont.ttf", "font.ttf"}

// Dir loads assets from a directory on disk. Everything is read eagerly at
// construction so a bad install fails at startup, not mid-render, and so
// concurrent renders share only immutable state.
type Dir struct {
	images map[string]image.Image
	font   *truetype.Font
}

func NewDir(path string) (*Dir, error) {
	d := &Dir{images: make(map[string]image.Image)}
	for name, candidates := range fileCandidates {
		img, err := openFirst(path, candidates)
		if err != nil {
			return nil, fmt.Errorf("asset %s: %w", name, err)
		}
		d.images[name] = img
	}
	raw, err := readFirst(path, fontCandidates)
	if err != nil {
		return nil, fmt.Errorf("asset font: %w", err)
	}
	f, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	d.font = f
	return d, nil
}

func openFirst(dir string, names []string) (image.Image, error) {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return imaging.Open(p)
	}
	return nil, fmt.Errorf("none of %v found in %s", names, dir)
}

func readFirst(dir string, names []string) ([]byte, error) {
	for _, n := range names {
		p := filepath.Join(dir, n)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return os.ReadFile(p)
	}
	return nil, fmt.Errorf("none of %v found in %s", names, dir)
}

func (d *Dir) Image(name string) (image.Image, error) {
	img, ok := d.images[name]
	if !ok {
		return nil, fmt.Errorf("unknown asset %q", name)
	}
	return img, nil
}

func (d *Dir) FontFace(points float64) (font.Face, error) {
	return truetype.NewFace(d.font, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
