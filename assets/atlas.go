package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrNotLoaded    = errors.New("assets: sprite not loaded")
	ErrInvalidGlyph = errors.New("assets: sprite has no glyph")
)

// Drawable is a sprite resolved from the atlas: a glyph (ASCII or emoji)
// and an optional foreground color.
type Drawable struct {
	Glyph string
	Color tcell.Color
}

// Atlas is the sprite registry consulted by the render pass.
type Atlas struct {
	sprites map[string]Drawable
}

// NewAtlas creates an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{sprites: make(map[string]Drawable)}
}

// Load registers d under name, replacing any previous entry.
func (a *Atlas) Load(name string, d Drawable) error {
	if d.Glyph == "" {
		return fmt.Errorf("%q: %w", name, ErrInvalidGlyph)
	}
	a.sprites[name] = d
	return nil
}

// Unload removes name from the atlas.
func (a *Atlas) Unload(name string) { delete(a.sprites, name) }

// IsLoaded reports whether name can be drawn.
func (a *Atlas) IsLoaded(name string) bool {
	_, ok := a.sprites[name]
	return ok
}

// Get returns the drawable registered under name.
func (a *Atlas) Get(name string) (Drawable, error) {
	d, ok := a.sprites[name]
	if !ok {
		return Drawable{}, fmt.Errorf("%q: %w", name, ErrNotLoaded)
	}
	return d, nil
}

// Names returns the loaded sprite names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.sprites))
	for n := range a.sprites {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type spriteDef struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

type atlasFile struct {
	Sprites map[string]spriteDef `yaml:"sprites"`
}

// LoadYAML merges sprites from r into the atlas. The document has the form
//
//	sprites:
//	  player: {glyph: "🚀", color: white}
//
// Colors are tcell color names or #rrggbb; an empty color keeps the
// terminal default.
func (a *Atlas) LoadYAML(r io.Reader) error {
	var f atlasFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode atlas: %w", err)
	}
	for name, def := range f.Sprites {
		d := Drawable{Glyph: def.Glyph, Color: tcell.ColorDefault}
		if def.Color != "" {
			d.Color = tcell.GetColor(def.Color)
		}
		if err := a.Load(name, d); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile merges sprites from the YAML file at path.
func (a *Atlas) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()
	return a.LoadYAML(f)
}
