package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlasLoadGet(t *testing.T) {
	a := NewAtlas()
	assert.False(t, a.IsLoaded("rock"))

	_, err := a.Get("rock")
	assert.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, a.Load("rock", Drawable{Glyph: "🪨"}))
	assert.True(t, a.IsLoaded("rock"))
	d, err := a.Get("rock")
	require.NoError(t, err)
	assert.Equal(t, "🪨", d.Glyph)

	a.Unload("rock")
	assert.False(t, a.IsLoaded("rock"))
}

func TestAtlasRejectsEmptyGlyph(t *testing.T) {
	a := NewAtlas()
	assert.ErrorIs(t, a.Load("blank", Drawable{}), ErrInvalidGlyph)
	assert.False(t, a.IsLoaded("blank"))
}

func TestDefaultAtlasHasGameSprites(t *testing.T) {
	a := Default()
	for _, name := range []string{SpritePlayer, SpriteBlockade, SpriteDestructible, SpriteGround} {
		assert.True(t, a.IsLoaded(name), name)
	}
	for i := 0; i < ExplosionFrames; i++ {
		assert.True(t, a.IsLoaded(ExplosionFrame(i)), ExplosionFrame(i))
	}
}

func TestLoadYAML(t *testing.T) {
	doc := `
sprites:
  player: {glyph: "🛸", color: lime}
  coin: {glyph: "🪙"}
`
	a := Default()
	require.NoError(t, a.LoadYAML(strings.NewReader(doc)))

	d, err := a.Get(SpritePlayer)
	require.NoError(t, err)
	assert.Equal(t, "🛸", d.Glyph)
	assert.Equal(t, tcell.ColorLime, d.Color)

	d, err = a.Get("coin")
	require.NoError(t, err)
	assert.Equal(t, tcell.ColorDefault, d.Color)

	assert.True(t, a.IsLoaded(SpriteBlockade))
}

func TestLoadYAMLErrors(t *testing.T) {
	a := NewAtlas()
	assert.Error(t, a.LoadYAML(strings.NewReader("sprites: [1, 2")))
	assert.ErrorIs(t, a.LoadYAML(strings.NewReader("sprites:\n  x: {color: red}\n")), ErrInvalidGlyph)
	assert.NoError(t, a.LoadYAML(strings.NewReader("")))
}

func TestNamesSorted(t *testing.T) {
	a := NewAtlas()
	require.NoError(t, a.Load("b", Drawable{Glyph: "b"}))
	require.NoError(t, a.Load("a", Drawable{Glyph: "a"}))
	assert.Equal(t, []string{"a", "b"}, a.Names())
}

func TestOpenMergesOverDefault(t *testing.T) {
	a, err := Open("")
	require.NoError(t, err)
	assert.True(t, a.IsLoaded(SpritePlayer))

	path := filepath.Join(t.TempDir(), "atlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sprites:\n  player: {glyph: \"@\", color: green}\n"), 0o644))

	a, err = Open(path)
	require.NoError(t, err)
	d, err := a.Get(SpritePlayer)
	require.NoError(t, err)
	assert.Equal(t, "@", d.Glyph)
	assert.Equal(t, tcell.ColorGreen, d.Color)
	assert.True(t, a.IsLoaded(SpriteBlockade))

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
