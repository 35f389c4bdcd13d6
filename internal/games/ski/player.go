package ski

import "github.com/vovakirdan/tui-ski/internal/core"

// Visual is the pose or kind a draw request refers to.
type Visual int

const (
	VisualStraight Visual = iota
	VisualBankLeft
	VisualBankRight
	VisualCrashed
	VisualShadow
	VisualHazard
	VisualBonus
	VisualRamp
)

func (v Visual) String() string {
	switch v {
	case VisualStraight:
		return "straight"
	case VisualBankLeft:
		return "bank-left"
	case VisualBankRight:
		return "bank-right"
	case VisualCrashed:
		return "crashed"
	case VisualShadow:
		return "shadow"
	case VisualHazard:
		return "hazard"
	case VisualBonus:
		return "bonus"
	case VisualRamp:
		return "ramp"
	default:
		return "unknown"
	}
}

// SelectVisual picks the player pose: crashed wins over banking,
// banking follows the sign of the horizontal velocity.
func SelectVisual(crashTimer, vx int) Visual {
	switch {
	case crashTimer > 0:
		return VisualCrashed
	case vx < 0:
		return VisualBankLeft
	case vx > 0:
		return VisualBankRight
	default:
		return VisualStraight
	}
}

// Player is the skier: an entity plus score, crash and jump bookkeeping.
type Player struct {
	Entity
	Score      int
	Crashes    int
	CrashTimer int  // Ticks of world freeze left; 0 = not crashed
	JumpTimer  int  // Ticks into the jump arc; 0 = grounded
	Jumping    bool // Rising toward the peak
}

// NewPlayer places a player of the given size at the board center.
func NewPlayer(w, h, speed int, board core.Board) Player {
	return Player{
		Entity: Entity{
			Category: CategoryPlayer,
			X:        (board.Width - w) / 2,
			Y:        (board.Height - h) / 2,
			W:        w,
			H:        h,
			Speed:    speed,
		},
	}
}

// Steer applies one key intent to the velocity.
func (p *Player) Steer(in core.Intent) {
	switch in.Action {
	case core.ActionLeft, core.ActionRight:
		switch {
		case in.Release:
			p.VX = 0
		case in.Action == core.ActionLeft:
			p.VX = -p.Speed
		default:
			p.VX = p.Speed
		}
	case core.ActionUp, core.ActionDown:
		switch {
		case in.Release:
			p.VY = 0
		case in.Action == core.ActionUp:
			p.VY = -p.Speed
		default:
			p.VY = p.Speed
		}
	}
}

// AdvanceJump moves the jump arc one tick: up while rising until jumpTime
// is reached, then back down to the ground.
func (p *Player) AdvanceJump(jumpTime int) {
	if p.Jumping {
		p.JumpTimer++
		if p.JumpTimer >= jumpTime {
			p.Jumping = false
		}
	} else if p.JumpTimer > 0 {
		p.JumpTimer--
	}
}

// Frozen reports whether a crash is still freezing the world.
func (p *Player) Frozen() bool {
	return p.CrashTimer > 0
}

// Airborne reports whether the player is immune to collisions.
func (p *Player) Airborne() bool {
	return p.JumpTimer > 0
}

// Clamp keeps the player inside the board.
func (p *Player) Clamp(board core.Board) {
	p.X = core.Clamp(p.X, 0, board.Width-p.W)
	p.Y = core.Clamp(p.Y, 0, board.Height-p.H)
}

// Crash applies a hazard hit.
func (p *Player) Crash(points, crashTime int) {
	p.Score -= points
	p.Crashes++
	p.CrashTimer = crashTime
}

// Collect applies a bonus pickup.
func (p *Player) Collect(points int) {
	p.Score += points
}

// Launch applies a ramp contact; the arc starts rising next tick.
func (p *Player) Launch(points int) {
	p.Score += points
	p.Jumping = true
}

// Visual returns the current pose.
func (p *Player) Visual() Visual {
	return SelectVisual(p.CrashTimer, p.VX)
}

// DrawY returns the on-screen y, lifted by the jump height.
// Collision and clamping always use Y.
func (p *Player) DrawY() int {
	return p.Y - p.JumpTimer
}
