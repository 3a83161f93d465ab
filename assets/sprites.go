package assets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Sprite names used by the game objects.
const (
	SpritePlayer       = "player"
	SpriteBlockade     = "blockade"
	SpriteDestructible = "destructible"
	SpriteGround       = "ground"
)

// ExplosionFrames is the number of frames in the explosion animation.
const ExplosionFrames = 4

// ExplosionFrame returns the sprite name of explosion frame i.
func ExplosionFrame(i int) string { return fmt.Sprintf("explosion/%d", i) }

// Emoji constants used as sprite glyphs.
const (
	GlyphPlayer       = "🚀"
	GlyphBlockade     = "🧱"
	GlyphDestructible = "📦"
	GlyphGround       = "🟫"
)

var explosionGlyphs = [ExplosionFrames]string{"💥", "🔥", "💨", "·"}

// Default returns an atlas holding every sprite the game needs.
func Default() *Atlas {
	a := NewAtlas()
	_ = a.Load(SpritePlayer, Drawable{Glyph: GlyphPlayer, Color: tcell.ColorWhite})
	_ = a.Load(SpriteBlockade, Drawable{Glyph: GlyphBlockade, Color: tcell.ColorRed})
	_ = a.Load(SpriteDestructible, Drawable{Glyph: GlyphDestructible, Color: tcell.ColorYellow})
	_ = a.Load(SpriteGround, Drawable{Glyph: GlyphGround, Color: tcell.ColorGray})
	for i, g := range explosionGlyphs {
		_ = a.Load(ExplosionFrame(i), Drawable{Glyph: g, Color: tcell.ColorOrange})
	}
	return a
}

// Open returns the built-in atlas with the sprites of the YAML file at
// path merged over it. An empty path yields Default.
func Open(path string) (*Atlas, error) {
	a := Default()
	if path == "" {
		return a, nil
	}
	if err := a.LoadFile(path); err != nil {
		return nil, err
	}
	return a, nil
}
