// Package assets resolves named sprites for the renderer.
//
// Sprites are plain-text glyph art. A name is looked up in the override
// directory first, then in the embedded defaults; a name that resolves
// nowhere gets a placeholder showing the name itself, so lookups never fail.
package assets

import (
	"strings"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// Source tells where a sprite was resolved from.
type Source int

const (
	SourcePlaceholder Source = iota
	SourceEmbedded
	SourceFile
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceEmbedded:
		return "embedded"
	default:
		return "placeholder"
	}
}

// Sprite is a block of glyphs. Space cells are transparent.
type Sprite struct {
	Name   string
	Lines  [][]rune
	Color  core.Color
	Source Source
}

// Cols returns the sprite width in terminal columns.
func (s *Sprite) Cols() int {
	w := 0
	for _, line := range s.Lines {
		w = core.Max(w, len(line))
	}
	return w
}

// Rows returns the sprite height in terminal rows.
func (s *Sprite) Rows() int {
	return len(s.Lines)
}

// Size returns the sprite extent in board units for the given cell size.
func (s *Sprite) Size(cellW, cellH int) (w, h int) {
	return s.Cols() * cellW, s.Rows() * cellH
}

// Draw blits the sprite with its top-left corner at cell (x, y).
func (s *Sprite) Draw(dst *core.Screen, x, y int) {
	for dy, line := range s.Lines {
		for dx, r := range line {
			if r == ' ' {
				continue
			}
			dst.SetColored(x+dx, y+dy, r, s.Color)
		}
	}
}

// parseSprite splits glyph art into lines. Trailing newlines are dropped,
// trailing spaces inside a line are kept.
func parseSprite(name string, data []byte) (*Sprite, bool) {
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	raw := strings.Split(text, "\n")
	lines := make([][]rune, len(raw))
	for i, l := range raw {
		lines[i] = []rune(l)
	}
	return &Sprite{Name: name, Lines: lines}, true
}

// placeholder renders the sprite name as a one-line stand-in.
func placeholder(name string) *Sprite {
	text := name
	if text == "" {
		text = "?"
	}
	return &Sprite{
		Name:   name,
		Lines:  [][]rune{[]rune(text)},
		Color:  core.ColorBrightRed,
		Source: SourcePlaceholder,
	}
}
