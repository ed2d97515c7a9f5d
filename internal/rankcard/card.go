// Package rankcard renders the rank card image: a fixed-layout PNG showing
// a member's avatar, username, level and XP bar. The pipeline is a strict
// forward flow of immutable values: Source -> decoded image -> composited
// card -> encoded bytes.
package rankcard

import (
	"context"
	"fmt"

	"github.com/youruser/rankcard/internal/assets"
)

const defaultColor = "white"

// Settings is the style configuration shared across cards: the background
// source plus bar and text colors (names or hex, empty means white).
type Settings struct {
	Background Source
	BarColor   string
	TextColor  string
}

// RankCard describes a single card to render. The avatar is always a string
// reference (path or URL), never a buffer.
type RankCard struct {
	Settings  Settings
	Avatar    string
	Level     uint
	Username  string
	CurrentXP uint
	MaxXP     uint
}

// Renderer ties the resolver and compositor together. It is safe for
// concurrent use: each Create call works on its own values.
type Renderer struct {
	Resolver   *Resolver
	Compositor *Compositor
}

func NewRenderer(loader assets.Loader) *Renderer {
	return &Renderer{
		Resolver:   NewResolver(),
		Compositor: NewCompositor(loader),
	}
}

// Create validates the card, resolves both image sources and composites the
// final PNG. All validation happens before any file or network I/O; the
// caller gets either the complete card bytes or an error, never a partial
// image.
func (r *Renderer) Create(ctx context.Context, card RankCard) ([]byte, error) {
	if card.MaxXP == 0 {
		return nil, fmt.Errorf("max xp must be greater than zero")
	}
	if card.Avatar == "" {
		return nil, &InvalidImageTypeError{Reason: "avatar must be a url or path"}
	}
	if card.Settings.Background.kind == kindNone {
		return nil, &InvalidImageTypeError{Reason: "background must be a path, url or file buffer"}
	}

	barColor, err := ParseColor(orDefault(card.Settings.BarColor))
	if err != nil {
		return nil, fmt.Errorf("bar color: %w", err)
	}
	textColor, err := ParseColor(orDefault(card.Settings.TextColor))
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}

	// Both sources must resolve before any compositing starts. Resolution
	// is sequential; the calls are independent but ordered background
	// first.
	background, err := r.Resolver.Resolve(ctx, card.Settings.Background)
	if err != nil {
		return nil, fmt.Errorf("resolving background: %w", err)
	}
	avatar, err := r.Resolver.Resolve(ctx, SourceFromString(card.Avatar))
	if err != nil {
		return nil, fmt.Errorf("resolving avatar: %w", err)
	}

	return r.Compositor.Compose(background, avatar, RenderParams{
		Username:  card.Username,
		Level:     card.Level,
		CurrentXP: card.CurrentXP,
		MaxXP:     card.MaxXP,
		BarColor:  barColor,
		TextColor: textColor,
	})
}

func orDefault(c string) string {
	if c == "" {
		return defaultColor
	}
	return c
}
