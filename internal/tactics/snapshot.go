package tactics

// Piece is the render view of a unit.
type Piece struct {
	Pos   Position
	Alive bool
	Owner int
	Index int
	HP    int
	ATK   int
}

// Ref returns the reference to the unit this piece shows.
func (p Piece) Ref() UnitRef {
	return UnitRef{Player: p.Owner, Index: p.Index}
}

// Pieces lists every unit, dead ones included, in player then roster order.
func (e *Engine) Pieces() []Piece {
	pieces := make([]Piece, 0, PlayerCount*UnitsPerPlayer)
	for i, p := range e.players {
		for j, u := range p.Units {
			pieces = append(pieces, Piece{
				Pos:   u.Pos,
				Alive: u.Alive,
				Owner: i,
				Index: j,
				HP:    u.HP,
				ATK:   u.ATK,
			})
		}
	}
	return pieces
}

// Snapshot captures the complete engine state for rendering and testing.
type Snapshot struct {
	Width         int
	Height        int
	Turn          int
	CurrentPlayer int
	CurrentUnit   int
	Steps         int
	Players       [PlayerCount]Player
	Pieces        []Piece
	GameOver      bool
	Loser         int // Valid only when GameOver is set
}

// Snapshot returns the current state by value.
func (e *Engine) Snapshot() Snapshot {
	loser, over := e.Loser()
	w, h := e.Size()
	return Snapshot{
		Width:         w,
		Height:        h,
		Turn:          e.turn,
		CurrentPlayer: e.currentPlayer,
		CurrentUnit:   e.currentUnit,
		Steps:         e.steps,
		Players:       e.players,
		Pieces:        e.Pieces(),
		GameOver:      over,
		Loser:         loser,
	}
}

// PieceAt returns the piece on the given cell. Living units win over dead
// ones sharing the cell.
func (s Snapshot) PieceAt(pos Position) (Piece, bool) {
	var found Piece
	ok := false
	for _, p := range s.Pieces {
		if p.Pos != pos {
			continue
		}
		if p.Alive {
			return p, true
		}
		if !ok {
			found, ok = p, true
		}
	}
	return found, ok
}
