package ski

import "github.com/vovakirdan/tui-ski/internal/core"

// Category determines size, speed and collision effect of an entity.
type Category int

const (
	CategoryPlayer Category = iota
	CategoryHazard
	CategoryBonus
	CategoryRamp
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryHazard:
		return "hazard"
	case CategoryBonus:
		return "bonus"
	case CategoryRamp:
		return "ramp"
	default:
		return "unknown"
	}
}

// Entity is a moving rectangle on the board.
type Entity struct {
	Category Category
	X, Y     int // Top-left corner in board units
	W, H     int // Fixed per category, taken from the sprite
	VX, VY   int // Velocity in units per tick
	Speed    int // Magnitude used when velocity is (re)assigned
	Points   int // Score delta on contact
}

// Advance moves the entity by its velocity.
func (e *Entity) Advance() {
	e.X += e.VX
	e.Y += e.VY
}

// Bounds returns the collision rectangle.
func (e Entity) Bounds() core.Rect {
	return core.NewRect(e.X, e.Y, e.W, e.H)
}

// Template describes how a pool stamps out new entities.
type Template struct {
	Category Category
	W, H     int
	Speed    int
	Points   int
}

func (t Template) spawn(x, y int) Entity {
	return Entity{
		Category: t.Category,
		X:        x,
		Y:        y,
		W:        t.W,
		H:        t.H,
		VX:       0,
		VY:       -t.Speed,
		Speed:    t.Speed,
		Points:   t.Points,
	}
}
