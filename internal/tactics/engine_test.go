package tactics

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// scriptedSource replays values in order, wrapping around. Each value is
// reduced modulo n so any script is valid for any range.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(NewSource(42), DefaultRules())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

// killPlayer applies enough damage to every unit of a player to kill it.
func killPlayer(t *testing.T, e *Engine, player int) {
	t.Helper()
	for j := range UnitsPerPlayer {
		u, err := e.Unit(UnitRef{Player: player, Index: j})
		if err != nil {
			t.Fatalf("Unit() failed: %v", err)
		}
		if err := e.ApplyDamage(UnitRef{Player: player, Index: j}, u.HP); err != nil {
			t.Fatalf("ApplyDamage() failed: %v", err)
		}
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(nil, DefaultRules()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("New(nil) error = %v, want ErrInvalidArgument", err)
	}

	bad := DefaultRules()
	bad.MaxHP = bad.MinHP - 1
	if _, err := New(NewSource(1), bad); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("New(bad rules) error = %v, want ErrInvalidArgument", err)
	}
}

func TestInitializePopulatesBoard(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		e, err := New(NewSource(seed), DefaultRules())
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		players := e.Players()
		if len(players) != 3 {
			t.Fatalf("expected 3 players, got %d", len(players))
		}
		for i, p := range players {
			if p.ID != i {
				t.Errorf("player %d has ID %d", i, p.ID)
			}
			if len(p.Units) != 5 {
				t.Fatalf("player %d has %d units, expected 5", i, len(p.Units))
			}
			for j, u := range p.Units {
				if !u.Alive {
					t.Errorf("seed %d: unit P%d#%d should start alive", seed, i, j)
				}
				if u.HP < 500 || u.HP > 1000 {
					t.Errorf("seed %d: unit P%d#%d hp = %d, want [500,1000]", seed, i, j, u.HP)
				}
				if u.ATK < 100 || u.ATK > 600 {
					t.Errorf("seed %d: unit P%d#%d atk = %d, want [100,600]", seed, i, j, u.ATK)
				}
			}
		}

		if e.CurrentPlayer() != 0 || e.CurrentUnit() != 0 || e.Steps() != 0 || e.Turn() != 0 {
			t.Errorf("fresh engine counters = (%d, %d, %d, %d), want all zero",
				e.CurrentPlayer(), e.CurrentUnit(), e.Steps(), e.Turn())
		}
	}
}

func TestStartingPositions(t *testing.T) {
	e := newTestEngine(t)
	players := e.Players()

	expected := [PlayerCount][UnitsPerPlayer]Position{
		{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}},
		{{10, 10}, {9, 10}, {8, 10}, {7, 10}, {6, 10}},
		{{6, 1}, {6, 2}, {6, 3}, {6, 4}, {6, 5}},
	}

	for i := range PlayerCount {
		for j := range UnitsPerPlayer {
			got := players[i].Units[j].Pos
			if got != expected[i][j] {
				t.Errorf("P%d#%d at %v, expected %v", i, j, got, expected[i][j])
			}
			if !got.InBounds() {
				t.Errorf("P%d#%d at %v is off the board", i, j, got)
			}
		}
	}
}

func TestInitializeDrawsStatsFromSource(t *testing.T) {
	// hp offset then atk offset for each unit, in player/roster order.
	src := &scriptedSource{values: []int{0, 0, 500, 500, 250, 7}}
	e, err := New(src, DefaultRules())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	u0, _ := e.Unit(UnitRef{0, 0})
	if u0.HP != 500 || u0.ATK != 100 {
		t.Errorf("P0#0 stats = (%d, %d), expected (500, 100)", u0.HP, u0.ATK)
	}
	u1, _ := e.Unit(UnitRef{0, 1})
	if u1.HP != 1000 || u1.ATK != 600 {
		t.Errorf("P0#1 stats = (%d, %d), expected (1000, 600)", u1.HP, u1.ATK)
	}
	u2, _ := e.Unit(UnitRef{0, 2})
	if u2.HP != 750 || u2.ATK != 107 {
		t.Errorf("P0#2 stats = (%d, %d), expected (750, 107)", u2.HP, u2.ATK)
	}
}

func TestInitializeRestarts(t *testing.T) {
	e := newTestEngine(t)
	killPlayer(t, e, 1)
	e.EndTurn()

	e.Initialize()

	if e.IsGameOver() {
		t.Error("game should not be over after Initialize")
	}
	if e.CurrentPlayer() != 0 || e.Steps() != 0 || e.Turn() != 0 {
		t.Error("counters should be reset after Initialize")
	}
}

func TestApplyDamageKeepsAliveInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := newTestEngine(t)

	for range 500 {
		ref := UnitRef{Player: rng.Intn(PlayerCount), Index: rng.Intn(UnitsPerPlayer)}
		if err := e.ApplyDamage(ref, rng.Intn(400)); err != nil {
			t.Fatalf("ApplyDamage(%v) failed: %v", ref, err)
		}
		for _, p := range e.Players() {
			for j, u := range p.Units {
				if u.Alive != (u.HP > 0) {
					t.Fatalf("P%d#%d alive=%v with hp=%d", p.ID, j, u.Alive, u.HP)
				}
			}
		}
	}
}

func TestApplyDamageSaturates(t *testing.T) {
	e := newTestEngine(t)
	ref := UnitRef{Player: 0, Index: 0}

	for i := range 3 {
		if err := e.ApplyDamage(ref, math.MaxInt); err != nil {
			t.Fatalf("ApplyDamage(MaxInt) failed: %v", err)
		}
		u, _ := e.Unit(ref)
		if u.Alive || u.HP > 0 {
			t.Fatalf("hit %d: alive=%v hp=%d, expected a dead unit", i+1, u.Alive, u.HP)
		}
	}

	u, _ := e.Unit(ref)
	if u.HP != math.MinInt {
		t.Errorf("hp = %d, expected saturation at math.MinInt", u.HP)
	}
	if err := e.ApplyDamage(ref, 1); err != nil {
		t.Fatalf("ApplyDamage(1) failed: %v", err)
	}
	if after, _ := e.Unit(ref); after.HP != math.MinInt || after.Alive {
		t.Errorf("saturated unit changed: %+v", after)
	}
}

func TestApplyDamageZeroIsNoop(t *testing.T) {
	e := newTestEngine(t)
	before := e.Players()

	for i := range PlayerCount {
		for j := range UnitsPerPlayer {
			if err := e.ApplyDamage(UnitRef{i, j}, 0); err != nil {
				t.Fatalf("ApplyDamage(0) failed: %v", err)
			}
		}
	}

	if e.Players() != before {
		t.Error("ApplyDamage with 0 should not change any unit")
	}

	// Also on a dead unit.
	u, _ := e.Unit(UnitRef{2, 3})
	_ = e.ApplyDamage(UnitRef{2, 3}, u.HP+10)
	dead, _ := e.Unit(UnitRef{2, 3})
	_ = e.ApplyDamage(UnitRef{2, 3}, 0)
	after, _ := e.Unit(UnitRef{2, 3})
	if after != dead {
		t.Errorf("zero damage changed dead unit: %+v -> %+v", dead, after)
	}
}

func TestApplyDamageRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		ref    UnitRef
		amount int
	}{
		{"negative amount", UnitRef{0, 0}, -1},
		{"player below range", UnitRef{-1, 0}, 10},
		{"player above range", UnitRef{3, 0}, 10},
		{"unit below range", UnitRef{0, -1}, 10},
		{"unit above range", UnitRef{0, 5}, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t)
			before := e.Snapshot()

			err := e.ApplyDamage(tc.ref, tc.amount)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("ApplyDamage() error = %v, want ErrInvalidArgument", err)
			}
			if e.Players() != before.Players {
				t.Error("rejected ApplyDamage must not change state")
			}
		})
	}
}

func TestKillingOneUnit(t *testing.T) {
	e := newTestEngine(t)
	before := e.Players()

	u, _ := e.Unit(UnitRef{0, 0})
	if err := e.ApplyDamage(UnitRef{0, 0}, u.HP); err != nil {
		t.Fatalf("ApplyDamage() failed: %v", err)
	}

	after := e.Players()
	if after[0].Units[0].Alive {
		t.Error("P0#0 should be dead after taking its full hp")
	}
	if after[0].Units[0].HP != 0 {
		t.Errorf("P0#0 hp = %d, expected 0", after[0].Units[0].HP)
	}
	for i := range PlayerCount {
		for j := range UnitsPerPlayer {
			if i == 0 && j == 0 {
				continue
			}
			if after[i].Units[j] != before[i].Units[j] {
				t.Errorf("P%d#%d changed by damage to P0#0", i, j)
			}
		}
	}
	if after[0].AliveCount() != 4 {
		t.Errorf("player 0 alive count = %d, expected 4", after[0].AliveCount())
	}
	if e.IsGameOver() {
		t.Error("game should not be over with 4 units of player 0 alive")
	}
}

func TestGameOverOnAnyElimination(t *testing.T) {
	for player := range PlayerCount {
		e := newTestEngine(t)
		killPlayer(t, e, player)

		if !e.IsGameOver() {
			t.Errorf("game should be over after player %d is eliminated", player)
		}
		loser, ok := e.Loser()
		if !ok || loser != player {
			t.Errorf("Loser() = (%d, %v), expected (%d, true)", loser, ok, player)
		}
	}
}

func TestGameOverOnlyAfterLastUnit(t *testing.T) {
	orders := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
	}

	for _, order := range orders {
		e := newTestEngine(t)
		for k, j := range order {
			if e.IsGameOver() {
				t.Fatalf("order %v: game over after only %d kills", order, k)
			}
			u, _ := e.Unit(UnitRef{1, j})
			// Split the damage to exercise partial hits.
			_ = e.ApplyDamage(UnitRef{1, j}, u.HP/2)
			_ = e.ApplyDamage(UnitRef{1, j}, u.HP-u.HP/2)
		}
		if !e.IsGameOver() {
			t.Errorf("order %v: game should be over after all 5 kills", order)
		}
	}
}

func TestEndTurnRotation(t *testing.T) {
	e := newTestEngine(t)

	for i := range 3 {
		e.EndTurn()
		if e.CurrentUnit() != 0 {
			t.Errorf("after EndTurn %d current unit = %d, expected 0", i+1, e.CurrentUnit())
		}
	}
	if e.CurrentPlayer() != 0 {
		t.Errorf("after 3 EndTurn calls current player = %d, expected 0", e.CurrentPlayer())
	}
	if e.Turn() != 3 {
		t.Errorf("turn = %d, expected 3", e.Turn())
	}
}

func TestEndTurnStepsAndAdvance(t *testing.T) {
	e := newTestEngine(t)

	seen := map[int]bool{}
	for i := range 200 {
		prev := e.CurrentPlayer()
		if i%7 == 0 {
			_ = e.SelectUnit(i % UnitsPerPlayer)
		}
		e.EndTurn()

		if e.Steps() < 1 || e.Steps() > 2 {
			t.Fatalf("steps = %d, want 1 or 2", e.Steps())
		}
		if e.CurrentPlayer() != (prev+1)%3 {
			t.Fatalf("current player %d -> %d, expected %d", prev, e.CurrentPlayer(), (prev+1)%3)
		}
		if e.CurrentUnit() != 0 {
			t.Fatalf("current unit = %d after EndTurn", e.CurrentUnit())
		}
		seen[e.Steps()] = true
	}

	if !seen[1] || !seen[2] {
		t.Errorf("expected both step values over 200 turns, saw %v", seen)
	}
}

func TestEndTurnDoesNotSkipEliminated(t *testing.T) {
	e := newTestEngine(t)
	killPlayer(t, e, 1)

	e.EndTurn()
	if e.CurrentPlayer() != 1 {
		t.Errorf("eliminated player should still get the turn, got player %d", e.CurrentPlayer())
	}
}

func TestSelectUnit(t *testing.T) {
	e := newTestEngine(t)

	if err := e.SelectUnit(3); err != nil {
		t.Fatalf("SelectUnit(3) failed: %v", err)
	}
	if e.CurrentUnit() != 3 {
		t.Errorf("current unit = %d, expected 3", e.CurrentUnit())
	}

	for _, idx := range []int{-1, 5} {
		if err := e.SelectUnit(idx); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("SelectUnit(%d) error = %v, want ErrInvalidArgument", idx, err)
		}
	}
	if e.CurrentUnit() != 3 {
		t.Errorf("rejected SelectUnit changed current unit to %d", e.CurrentUnit())
	}
}

func TestMoveAndAttackAreExtensionPoints(t *testing.T) {
	e := newTestEngine(t)
	before := e.Snapshot()

	if err := e.Move(UnitRef{0, 0}, Position{2, 2}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Move() error = %v, want ErrNotImplemented", err)
	}
	if err := e.Attack(UnitRef{0, 0}, UnitRef{1, 0}); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("Attack() error = %v, want ErrNotImplemented", err)
	}
	if e.Players() != before.Players {
		t.Error("Move/Attack must not change state")
	}
}

func TestSnapshot(t *testing.T) {
	e := newTestEngine(t)
	e.EndTurn()

	s := e.Snapshot()
	if s.Width != 11 || s.Height != 11 {
		t.Errorf("board = %dx%d, expected 11x11", s.Width, s.Height)
	}
	if len(s.Pieces) != 15 {
		t.Errorf("expected 15 pieces, got %d", len(s.Pieces))
	}
	if s.CurrentPlayer != 1 || s.Turn != 1 {
		t.Errorf("snapshot turn state = (player %d, turn %d), expected (1, 1)", s.CurrentPlayer, s.Turn)
	}
	if s.GameOver {
		t.Error("fresh game should not be over")
	}

	p, ok := s.PieceAt(Position{6, 3})
	if !ok || p.Owner != 2 || p.Index != 2 {
		t.Errorf("PieceAt(6,3) = (%+v, %v), expected P2#2", p, ok)
	}
	if _, ok := s.PieceAt(Position{0, 0}); ok {
		t.Error("PieceAt(0,0) should be empty")
	}

	// Dead pieces stay in the list.
	killPlayer(t, e, 0)
	s = e.Snapshot()
	if len(s.Pieces) != 15 {
		t.Errorf("dead units should remain, got %d pieces", len(s.Pieces))
	}
	if !s.GameOver || s.Loser != 0 {
		t.Errorf("snapshot game over = (%v, loser %d), expected (true, 0)", s.GameOver, s.Loser)
	}
	if p, ok := s.PieceAt(Position{1, 1}); !ok || p.Alive {
		t.Errorf("PieceAt(1,1) = (%+v, %v), expected a dead piece", p, ok)
	}
}
