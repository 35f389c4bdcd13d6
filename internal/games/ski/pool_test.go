package ski

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-ski/internal/core"
)

var testBoard = core.Board{Width: 480, Height: 640}

func newTestPool(capacity int) *Pool {
	tmpl := Template{Category: CategoryHazard, W: 18, H: 36, Speed: 4, Points: 10}
	return NewPool(tmpl, capacity, testBoard, rand.New(rand.NewSource(1)))
}

// put overwrites slot i with a fresh entity at (x, y).
func (p *Pool) put(i, x, y int) {
	if !p.slots[i].active {
		p.active++
	}
	p.slots[i] = slot{entity: p.tmpl.spawn(x, y), active: true}
}

func TestPoolSpawnRespectsCapacity(t *testing.T) {
	p := newTestPool(3)

	for want := 0; want < 3; want++ {
		if got := p.TrySpawn(); got != want {
			t.Fatalf("spawn %d claimed slot %d", want, got)
		}
	}
	if got := p.TrySpawn(); got != -1 {
		t.Errorf("full pool spawned into slot %d", got)
	}
	if p.Len() != 3 || p.Cap() != 3 {
		t.Errorf("Len/Cap = %d/%d, want 3/3", p.Len(), p.Cap())
	}
}

func TestPoolSpawnBelowBoard(t *testing.T) {
	p := newTestPool(10)
	for i := 0; i < 10; i++ {
		p.TrySpawn()
	}

	p.Each(func(i int, e Entity) {
		if e.Y < testBoard.Height || e.Y > 2*testBoard.Height {
			t.Errorf("slot %d spawned at y=%d, want within [%d, %d]", i, e.Y, testBoard.Height, 2*testBoard.Height)
		}
		if e.X < 0 || e.X > testBoard.Width-e.W {
			t.Errorf("slot %d spawned at x=%d, outside board", i, e.X)
		}
		if e.VY != -4 || e.VX != 0 {
			t.Errorf("slot %d velocity = (%d, %d), want (0, -4)", i, e.VX, e.VY)
		}
	})
}

func TestPoolZeroCapacity(t *testing.T) {
	p := newTestPool(0)
	if got := p.TrySpawn(); got != -1 {
		t.Errorf("zero-capacity pool spawned into slot %d", got)
	}
	p.Advance()
	if n := p.Recycle(); n != 0 {
		t.Errorf("Recycle() = %d on empty pool", n)
	}
}

func TestPoolRemoveFreesLowestSlot(t *testing.T) {
	p := newTestPool(3)
	p.TrySpawn()
	p.TrySpawn()
	p.TrySpawn()

	if !p.RemoveAndFree(1) {
		t.Fatal("RemoveAndFree(1) = false")
	}
	if p.RemoveAndFree(1) {
		t.Error("second RemoveAndFree(1) should report false")
	}
	if p.RemoveAndFree(7) {
		t.Error("out of range RemoveAndFree should report false")
	}
	if _, ok := p.Get(1); ok {
		t.Error("slot 1 should be free")
	}
	if got := p.TrySpawn(); got != 1 {
		t.Errorf("respawn claimed slot %d, want 1", got)
	}
}

func TestPoolRecycle(t *testing.T) {
	p := newTestPool(2)
	p.put(0, 100, -36) // exactly at the edge, stays
	p.put(1, 100, -37) // fully past the top

	if n := p.Recycle(); n != 1 {
		t.Fatalf("Recycle() = %d, want 1", n)
	}

	e0, _ := p.Get(0)
	if e0.Y != -36 {
		t.Errorf("slot 0 moved to y=%d", e0.Y)
	}
	e1, ok := p.Get(1)
	if !ok {
		t.Fatal("recycled entity should stay active")
	}
	if e1.Y != testBoard.Height {
		t.Errorf("recycled y = %d, want %d", e1.Y, testBoard.Height)
	}
	if e1.VY != -4 {
		t.Errorf("recycle changed velocity to %d", e1.VY)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d after recycle, want 2", p.Len())
	}
}

func TestPoolOverlappingOrder(t *testing.T) {
	p := newTestPool(4)
	p.put(2, 10, 10)
	p.put(0, 12, 12)
	p.put(3, 300, 300)

	got := p.Overlapping(core.NewRect(0, 0, 40, 40))
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Overlapping() = %v, want [0 2]", got)
	}

	var order []int
	p.Each(func(i int, _ Entity) { order = append(order, i) })
	if len(order) != 3 || order[0] != 0 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Each order = %v, want [0 2 3]", order)
	}
}

func TestPoolLatch(t *testing.T) {
	p := newTestPool(2)
	p.put(0, 0, 0)
	p.put(1, 0, 0)

	if p.latch(0) {
		t.Error("first latch should report not already latched")
	}
	if !p.latch(0) {
		t.Error("second latch should report already latched")
	}
	p.latch(1)
	p.unlatchExcept([]int{1})
	if p.slots[0].latched {
		t.Error("slot 0 should be unlatched")
	}
	if !p.slots[1].latched {
		t.Error("slot 1 should stay latched")
	}
}

func TestRandInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{-5, 0} {
		if got := randInclusive(rng, n); got != 0 {
			t.Errorf("randInclusive(%d) = %d, want 0", n, got)
		}
	}
	for i := 0; i < 100; i++ {
		if got := randInclusive(rng, 2); got < 0 || got > 2 {
			t.Fatalf("randInclusive(2) = %d", got)
		}
	}
}
