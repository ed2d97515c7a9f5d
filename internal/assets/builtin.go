package assets

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Working canvas dimensions shared by the generated assets. The overlay's
// size drives the compositor's canvas, so these must stay in step with the
// card layout constants.
const (
	canvasW = 638
	canvasH = 327
)

// Builtin is the procedural asset set: overlay frame, masks and font drawn
// or parsed at construction time. It keeps the service usable with no asset
// files installed and gives tests a deterministic fixture.
type Builtin struct {
	images map[string]image.Image
	font   *truetype.Font
}

func NewBuiltin() (*Builtin, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in font: %w", err)
	}
	return &Builtin{
		images: map[string]image.Image{
			Overlay:    buildOverlay(),
			CircleMask: buildCircleMask(),
			CurvedMask: buildCurvedMask(),
		},
		font: f,
	}, nil
}

func (b *Builtin) Image(name string) (image.Image, error) {
	img, ok := b.images[name]
	if !ok {
		return nil, fmt.Errorf("unknown asset %q", name)
	}
	return img, nil
}

func (b *Builtin) FontFace(points float64) (font.Face, error) {
	return truetype.NewFace(b.font, &truetype.Options{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// buildOverlay draws the card frame: transparent over the banner area so the
// background shows through, an opaque dark info panel below it, and a ring
// around the avatar slot. Pasted over the background using its own alpha.
func buildOverlay() image.Image {
	dc := gg.NewContext(canvasW, canvasH)
	// info panel under the banner
	dc.SetRGBA255(22, 24, 32, 255)
	dc.DrawRectangle(0, 159, canvasW, canvasH-159)
	dc.Fill()
	// soft darkening strip where the username sits
	dc.SetRGBA255(0, 0, 0, 90)
	dc.DrawRectangle(190, 120, canvasW-190, 39)
	dc.Fill()
	// avatar ring, centered on the avatar paste box
	dc.SetRGBA255(240, 240, 240, 255)
	dc.SetLineWidth(6)
	dc.DrawCircle(98, 150, 88)
	dc.Stroke()
	return dc.Image()
}

// buildCircleMask is a white disc on black; luminance becomes paste alpha.
func buildCircleMask() image.Image {
	const size = 512
	dc := gg.NewContext(size, size)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.DrawCircle(size/2, size/2, size/2)
	dc.Fill()
	return dc.Image()
}

// buildCurvedMask rounds the final card's corners: white rounded rectangle
// on black at the working canvas size.
func buildCurvedMask() image.Image {
	dc := gg.NewContext(canvasW, canvasH)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.DrawRoundedRectangle(0, 0, canvasW, canvasH, 34)
	dc.Fill()
	return dc.Image()
}
