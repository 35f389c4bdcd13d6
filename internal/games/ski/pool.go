package ski

import (
	"math/rand"

	"github.com/vovakirdan/tui-ski/internal/core"
)

// slot is one arena cell of a Pool.
type slot struct {
	entity Entity
	active bool
	// latched is set while a ramp contact has already scored.
	latched bool
}

// Pool owns a fixed-capacity arena of same-category entities.
// Spawning claims the lowest free slot and removal frees it, so iteration
// order is the slot order and stays stable within a tick.
type Pool struct {
	tmpl   Template
	board  core.Board
	rng    *rand.Rand
	slots  []slot
	active int
}

// NewPool creates an empty pool with room for capacity entities.
func NewPool(tmpl Template, capacity int, board core.Board, rng *rand.Rand) *Pool {
	return &Pool{
		tmpl:  tmpl,
		board: board,
		rng:   rng,
		slots: make([]slot, core.Max(capacity, 0)),
	}
}

// Category returns the pool's entity category.
func (p *Pool) Category() Category {
	return p.tmpl.Category
}

// Len returns the number of active entities.
func (p *Pool) Len() int {
	return p.active
}

// Cap returns the maximum number of simultaneous entities.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// TrySpawn adds at most one entity below the visible board.
// It returns the claimed slot, or -1 when the pool is full.
func (p *Pool) TrySpawn() int {
	if p.active >= len(p.slots) {
		return -1
	}
	for i := range p.slots {
		if p.slots[i].active {
			continue
		}
		x := p.randomX()
		y := randInclusive(p.rng, p.board.Height) + p.board.Height
		p.slots[i] = slot{entity: p.tmpl.spawn(x, y), active: true}
		p.active++
		return i
	}
	return -1
}

// Advance moves every active entity by its velocity.
func (p *Pool) Advance() {
	for i := range p.slots {
		if p.slots[i].active {
			p.slots[i].entity.Advance()
		}
	}
}

// Recycle wraps entities that scrolled past the top edge back to the bottom
// with a fresh column. Velocity is left untouched. It returns the number of
// entities recycled.
func (p *Pool) Recycle() int {
	n := 0
	for i := range p.slots {
		s := &p.slots[i]
		if !s.active || s.entity.Y >= -s.entity.H {
			continue
		}
		s.entity.X = p.randomX()
		s.entity.Y = p.board.Height
		s.latched = false
		n++
	}
	return n
}

// RemoveAndFree destroys the entity in slot i. It reports false when the
// slot is out of range or already free.
func (p *Pool) RemoveAndFree(i int) bool {
	if i < 0 || i >= len(p.slots) || !p.slots[i].active {
		return false
	}
	p.slots[i] = slot{}
	p.active--
	return true
}

// Get returns the entity in slot i and whether the slot is active.
func (p *Pool) Get(i int) (Entity, bool) {
	if i < 0 || i >= len(p.slots) {
		return Entity{}, false
	}
	return p.slots[i].entity, p.slots[i].active
}

// Each calls fn for every active entity in slot order.
func (p *Pool) Each(fn func(i int, e Entity)) {
	for i := range p.slots {
		if p.slots[i].active {
			fn(i, p.slots[i].entity)
		}
	}
}

// Overlapping returns the active slots whose bounds intersect r, in slot order.
func (p *Pool) Overlapping(r core.Rect) []int {
	var hits []int
	for i := range p.slots {
		if p.slots[i].active && p.slots[i].entity.Bounds().Intersects(r) {
			hits = append(hits, i)
		}
	}
	return hits
}

// latch marks slot i as having scored and reports whether it already was.
func (p *Pool) latch(i int) (already bool) {
	already = p.slots[i].latched
	p.slots[i].latched = true
	return already
}

// unlatchExcept clears the latch on every slot not in keep.
func (p *Pool) unlatchExcept(keep []int) {
	for i := range p.slots {
		if !p.slots[i].latched {
			continue
		}
		held := false
		for _, k := range keep {
			if k == i {
				held = true
				break
			}
		}
		if !held {
			p.slots[i].latched = false
		}
	}
}

func (p *Pool) randomX() int {
	return randInclusive(p.rng, p.board.Width-p.tmpl.W)
}

// randInclusive returns a value in [0, n]; n < 0 yields 0.
func randInclusive(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n + 1)
}
