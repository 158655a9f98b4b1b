package tactics

import "fmt"

// Engine holds the authoritative game state and is the only place it is
// mutated. It is not safe for concurrent use; the presenter calls it from
// its update loop.
type Engine struct {
	rules Rules
	rng   Source

	players       [PlayerCount]Player
	currentPlayer int
	currentUnit   int
	steps         int
	turn          int
}

// New creates an engine and populates the board.
// rng must be seeded by the caller; the engine never reseeds it.
func New(rng Source, rules Rules) (*Engine, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		rules: rules,
		rng:   rng,
	}
	e.Initialize()
	return e, nil
}

// Initialize places every unit at its starting cell with fresh stats and
// resets the turn counters. Calling it again restarts the game.
func (e *Engine) Initialize() {
	for i := range PlayerCount {
		p := Player{ID: i}
		for j := range UnitsPerPlayer {
			p.Units[j] = Unit{
				Pos:   startPosition(i, j),
				HP:    between(e.rng, e.rules.MinHP, e.rules.MaxHP),
				ATK:   between(e.rng, e.rules.MinATK, e.rules.MaxATK),
				Alive: true,
			}
		}
		e.players[i] = p
	}

	e.currentPlayer = 0
	e.currentUnit = 0
	e.steps = 0
	e.turn = 0
}

// ApplyDamage subtracts amount from the unit's hit points. A unit whose hit
// points drop to zero or below dies. Zero is a no-op.
func (e *Engine) ApplyDamage(ref UnitRef, amount int) error {
	if err := ref.validate(); err != nil {
		return err
	}
	if amount < 0 {
		return fmt.Errorf("%w: negative damage %d", ErrInvalidArgument, amount)
	}
	if amount == 0 {
		return nil
	}

	e.players[ref.Player].Units[ref.Index].takeDamage(amount)
	return nil
}

// EndTurn draws the next step allowance, passes the turn to the next player
// and resets the unit selection. Eliminated players still receive their turn.
func (e *Engine) EndTurn() {
	e.steps = between(e.rng, e.rules.MinSteps, e.rules.MaxSteps)
	e.currentPlayer = (e.currentPlayer + 1) % PlayerCount
	e.currentUnit = 0
	e.turn++
}

// IsGameOver reports whether any single player has lost every unit.
// With three players the game ends on the first elimination.
func (e *Engine) IsGameOver() bool {
	_, ok := e.Loser()
	return ok
}

// Loser returns the lowest-numbered eliminated player.
func (e *Engine) Loser() (int, bool) {
	for i := range e.players {
		if e.players[i].Eliminated() {
			return i, true
		}
	}
	return 0, false
}

// SelectUnit chooses which unit of the current player awaits action.
func (e *Engine) SelectUnit(index int) error {
	ref := UnitRef{Player: e.currentPlayer, Index: index}
	if err := ref.validate(); err != nil {
		return err
	}
	e.currentUnit = index
	return nil
}

// Move relocates a unit. Movement rules (range, blocking, step cost) are
// not defined, so it always fails with ErrNotImplemented.
func (e *Engine) Move(ref UnitRef, to Position) error {
	return fmt.Errorf("%w: move %s to %s", ErrNotImplemented, ref, to)
}

// Attack resolves an attack between two units. Targeting and hit rules are
// not defined, so it always fails with ErrNotImplemented.
func (e *Engine) Attack(attacker, target UnitRef) error {
	return fmt.Errorf("%w: attack %s -> %s", ErrNotImplemented, attacker, target)
}

// Rules returns the ranges the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Size returns the board dimensions.
func (e *Engine) Size() (w, h int) {
	return BoardSize, BoardSize
}

// Players returns a copy of all players.
func (e *Engine) Players() [PlayerCount]Player {
	return e.players
}

// Unit returns a copy of the referenced unit.
func (e *Engine) Unit(ref UnitRef) (Unit, error) {
	if err := ref.validate(); err != nil {
		return Unit{}, err
	}
	return e.players[ref.Player].Units[ref.Index], nil
}

// CurrentPlayer returns the index of the player whose turn it is.
func (e *Engine) CurrentPlayer() int {
	return e.currentPlayer
}

// CurrentUnit returns the roster index of the selected unit.
func (e *Engine) CurrentUnit() int {
	return e.currentUnit
}

// Steps returns the movement allowance of the current turn.
// It is 0 until the first EndTurn.
func (e *Engine) Steps() int {
	return e.steps
}

// Turn returns how many turns have been ended.
func (e *Engine) Turn() int {
	return e.turn
}
