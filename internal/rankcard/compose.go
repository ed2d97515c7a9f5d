package rankcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/youruser/rankcard/internal/assets"
)

// Card layout constants. The paste points and text anchors assume the
// 638x327 working canvas defined by the overlay asset; the finished card is
// scaled down to 505x259 at the end.
const (
	avatarSize = 170

	bannerW = 638
	bannerH = 159

	avatarX = 13
	avatarY = 65

	usernameX = 205
	usernameY = 183.5

	levelX = 197
	levelY = 288.5

	xpRightMargin = 50

	barTrackWidth  = 420
	barTrackHeight = 50
	barMinWidth    = 50
	barRadius      = 30
	barCanvasW     = 490
	barCanvasH     = 51
	barX           = 190
	barY           = 235

	outW = 505
	outH = 259
)

// RenderParams carries the per-card values the compositor draws.
type RenderParams struct {
	Username  string
	Level     uint
	CurrentXP uint
	MaxXP     uint
	BarColor  color.Color
	TextColor color.Color
}

// Compositor layers a resolved background and avatar into the finished card.
// It holds no per-render state; concurrent Compose calls are independent.
type Compositor struct {
	Assets assets.Loader
	Log    *log.Logger
}

func NewCompositor(loader assets.Loader) *Compositor {
	return &Compositor{Assets: loader, Log: log.Default()}
}

// barFillWidth maps an XP ratio onto the bar track, clamped so an empty bar
// still shows a visible stub and an overfull one never leaves the track.
func barFillWidth(current, max uint) float64 {
	w := float64(current) / float64(max) * barTrackWidth
	if w < barMinWidth {
		w = barMinWidth
	}
	if w > barTrackWidth {
		w = barTrackWidth
	}
	return w
}

// Compose runs the layering pipeline. The step order is a correctness
// requirement: each paste depends on the exact state left by the previous
// one. Deterministic: identical inputs yield byte-identical PNGs.
func (c *Compositor) Compose(background, avatar image.Image, p RenderParams) ([]byte, error) {
	// Alpha presence is decided from the decoded avatar, before resizing
	// normalizes everything to NRGBA.
	avatarHasAlpha := hasAlphaChannel(avatar)
	av := imaging.Resize(avatar, avatarSize, avatarSize, imaging.Lanczos)

	overlay, err := c.Assets.Image(assets.Overlay)
	if err != nil {
		return nil, fmt.Errorf("loading overlay: %w", err)
	}
	ow := overlay.Bounds().Dx()
	oh := overlay.Bounds().Dy()

	// Banner background under the overlay frame.
	canvas := imaging.New(ow, oh, color.NRGBA{})
	banner := imaging.Resize(background, bannerW, bannerH, imaging.Lanczos)
	canvas = imaging.Paste(canvas, banner, image.Pt(0, 0))
	canvas = imaging.Resize(canvas, ow, oh, imaging.Lanczos)
	canvas = imaging.Overlay(canvas, overlay, image.Pt(0, 0), 1.0)

	// Text layer.
	face40, err := c.Assets.FontFace(40)
	if err != nil {
		return nil, fmt.Errorf("loading 40pt face: %w", err)
	}
	face30, err := c.Assets.FontFace(30)
	if err != nil {
		return nil, fmt.Errorf("loading 30pt face: %w", err)
	}

	dc := gg.NewContextForImage(canvas)
	drawOutlined(dc, face40, p.Username, usernameX, usernameY, p.TextColor)

	filled := barFillWidth(p.CurrentXP, p.MaxXP)
	xpLabel := FormatNumber(p.CurrentXP) + "/" + FormatNumber(p.MaxXP)

	drawOutlined(dc, face30, "LEVEL - "+FormatNumber(p.Level), levelX, levelY, p.TextColor)

	dc.SetFontFace(face30)
	w, _ := dc.MeasureString(xpLabel)
	drawOutlined(dc, face30, xpLabel, float64(bannerW)-w-xpRightMargin, levelY, p.TextColor)

	work := imaging.Clone(dc.Image())

	// Circular avatar. The avatar is flattened onto black first: with an
	// alpha channel its transparent pixels keep the black backing, without
	// one it is pasted opaque, which is the degraded (but non-fatal) path.
	circle, err := c.Assets.Image(assets.CircleMask)
	if err != nil {
		return nil, fmt.Errorf("loading circle mask: %w", err)
	}
	circleMask := luminanceMask(imaging.Resize(circle, avatarSize, avatarSize, imaging.Lanczos))

	backed := imaging.New(avatarSize, avatarSize, color.NRGBA{0, 0, 0, 255})
	if avatarHasAlpha {
		draw.Draw(backed, backed.Bounds(), av, image.Point{}, draw.Over)
	} else {
		c.Log.Println("avatar has no alpha channel, pasting without transparency")
		draw.Draw(backed, backed.Bounds(), av, image.Point{}, draw.Src)
	}
	avatarRect := image.Rect(avatarX, avatarY, avatarX+avatarSize, avatarY+avatarSize)
	draw.DrawMask(work, avatarRect, backed, image.Point{}, circleMask, image.Point{}, draw.Over)

	// XP bar: translucent track plus opaque fill, on its own small canvas.
	bar := gg.NewContext(barCanvasW, barCanvasH)
	bar.SetRGB(0, 0, 0)
	bar.Clear()
	bar.SetRGBA255(255, 255, 255, 50)
	bar.DrawRoundedRectangle(0, 0, barTrackWidth, barTrackHeight, barRadius)
	bar.Fill()
	bar.SetColor(p.BarColor)
	bar.DrawRoundedRectangle(0, 0, filled, barTrackHeight, barRadius)
	bar.Fill()
	work = imaging.Paste(work, bar.Image(), image.Pt(barX, barY))

	// Curved corners, then scale down to the final card size.
	curved, err := c.Assets.Image(assets.CurvedMask)
	if err != nil {
		return nil, fmt.Errorf("loading curved mask: %w", err)
	}
	curvedMask := luminanceMask(imaging.Resize(curved, ow, oh, imaging.Lanczos))
	rounded := image.NewNRGBA(work.Bounds())
	draw.DrawMask(rounded, rounded.Bounds(), work, image.Point{}, curvedMask, image.Point{}, draw.Over)

	final := imaging.Resize(rounded, outW, outH, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawOutlined renders s with a 1px black outline under the fill color so
// text stays legible on arbitrary backgrounds. x,y anchor the top-left of
// the string.
func drawOutlined(dc *gg.Context, face font.Face, s string, x, y float64, fill color.Color) {
	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dc.DrawStringAnchored(s, x+float64(dx), y+float64(dy), 0, 1)
		}
	}
	dc.SetColor(fill)
	dc.DrawStringAnchored(s, x, y, 0, 1)
}

// luminanceMask converts a grayscale mask asset into an alpha mask: white
// keeps, black drops.
func luminanceMask(img image.Image) *image.Alpha {
	b := img.Bounds()
	m := image.NewAlpha(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			m.SetAlpha(x, y, color.Alpha{A: g.Y})
		}
	}
	return m
}

// hasAlphaChannel reports whether the decoded image carries an alpha
// channel at all. JPEG decodes to YCbCr and grayscale formats to Gray, none
// of which do.
func hasAlphaChannel(img image.Image) bool {
	switch img.ColorModel() {
	case color.YCbCrModel, color.GrayModel, color.Gray16Model, color.CMYKModel:
		return false
	}
	return true
}
