// Package tactics implements the turn engine for a three-player skirmish on
// an 11x11 grid. It owns the board, players and units, advances turns and
// evaluates the win condition. It has no rendering or input code; a
// presenter reads its state every frame and calls its operations in
// response to UI events.
package tactics

import (
	"fmt"
	"math"
)

// Board and roster dimensions.
const (
	BoardSize      = 11
	PlayerCount    = 3
	UnitsPerPlayer = 5
)

// Position is a cell on the board. (0, 0) is the top-left corner.
type Position struct {
	X, Y int
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// String implements fmt.Stringer.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Unit is a single game piece. Dead units stay in their roster.
type Unit struct {
	Pos   Position
	HP    int
	ATK   int
	Alive bool
}

// takeDamage subtracts amount from HP and updates Alive.
// HP saturates at math.MinInt so repeated hits never wrap positive.
func (u *Unit) takeDamage(amount int) {
	if u.HP < math.MinInt+amount {
		u.HP = math.MinInt
	} else {
		u.HP -= amount
	}
	if u.HP <= 0 {
		u.Alive = false
	}
}

// Player is a turn-order slot with a fixed roster of units.
type Player struct {
	ID    int
	Units [UnitsPerPlayer]Unit
}

// AliveCount returns the number of living units.
func (p Player) AliveCount() int {
	count := 0
	for _, u := range p.Units {
		if u.Alive {
			count++
		}
	}
	return count
}

// Eliminated reports whether every unit of the player is dead.
func (p Player) Eliminated() bool {
	for _, u := range p.Units {
		if u.Alive {
			return false
		}
	}
	return true
}

// UnitRef addresses a unit by owning player and roster index.
type UnitRef struct {
	Player int
	Index  int
}

// String implements fmt.Stringer.
func (r UnitRef) String() string {
	return fmt.Sprintf("P%d#%d", r.Player, r.Index)
}

// validate checks that the reference points at an existing unit.
func (r UnitRef) validate() error {
	if r.Player < 0 || r.Player >= PlayerCount {
		return fmt.Errorf("%w: player %d out of range [0, %d)", ErrInvalidArgument, r.Player, PlayerCount)
	}
	if r.Index < 0 || r.Index >= UnitsPerPlayer {
		return fmt.Errorf("%w: unit %d out of range [0, %d)", ErrInvalidArgument, r.Index, UnitsPerPlayer)
	}
	return nil
}

// startPosition returns the starting cell of unit j of player i.
// Player 0 lines up along row 1, player 1 along row 10 from the right,
// player 2 down column 6.
func startPosition(player, j int) Position {
	switch player {
	case 0:
		return Position{X: 1 + j, Y: 1}
	case 1:
		return Position{X: 10 - j, Y: 10}
	default:
		return Position{X: 6, Y: 1 + j}
	}
}
