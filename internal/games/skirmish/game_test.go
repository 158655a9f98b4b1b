package skirmish

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tactics/internal/config"
	"github.com/vovakirdan/tui-tactics/internal/core"
	"github.com/vovakirdan/tui-tactics/internal/tactics"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.resetWith(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 7}, config.DefaultSkirmishConfig())
	if g.tooSmall {
		t.Fatal("80x24 should fit the board")
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func kill(t *testing.T, g *Game, player int) {
	t.Helper()
	for i := range tactics.UnitsPerPlayer {
		if err := g.engine.ApplyDamage(tactics.UnitRef{Player: player, Index: i}, 10000); err != nil {
			t.Fatalf("ApplyDamage: %v", err)
		}
	}
}

func TestResetFocusesFirstUnit(t *testing.T) {
	g := newTestGame(t)

	if g.cursor != (tactics.Position{X: 1, Y: 1}) {
		t.Errorf("cursor = %v, expected player 0's first unit at (1,1)", g.cursor)
	}
	if g.damage != 50 {
		t.Errorf("damage = %d, expected configured step 50", g.damage)
	}
	if s := g.State(); s.GameOver || s.Paused || s.Score != 0 {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestConfirmEndsTurn(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionConfirm))

	if got := g.engine.CurrentPlayer(); got != 1 {
		t.Errorf("current player = %d, expected 1", got)
	}
	if steps := g.engine.Steps(); steps < 1 || steps > 2 {
		t.Errorf("steps = %d, expected 1 or 2", steps)
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1 turn", g.State().Score)
	}
	// Player 1 starts at row 10, column 10
	if g.cursor != (tactics.Position{X: 10, Y: 10}) {
		t.Errorf("cursor = %v, expected (10,10)", g.cursor)
	}
}

func TestPlayerNumberingMatchesBoardLabels(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))

	if !strings.HasPrefix(g.status, "Player 1's turn") {
		t.Errorf("status = %q, expected player 1's turn", g.status)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, " Player 1 ") {
		t.Error("roster should be titled with the engine's player ID")
	}
	if strings.Contains(out, "Player 2") {
		t.Error("no player should be shown one-based")
	}

	g.Step(press(core.ActionReset))
	for range 20 {
		g.Step(press(core.ActionIncrease))
	}
	g.Step(press(core.ActionApply))
	if !strings.HasPrefix(g.status, "P1 unit 1 ") {
		t.Errorf("status = %q, expected the unit to be named P1", g.status)
	}
}

func TestCursorClampsToBoard(t *testing.T) {
	g := newTestGame(t)

	for range 20 {
		g.Step(press(core.ActionUp))
		g.Step(press(core.ActionLeft))
	}
	if g.cursor != (tactics.Position{X: 0, Y: 0}) {
		t.Errorf("cursor = %v, expected (0,0)", g.cursor)
	}

	for range 20 {
		g.Step(press(core.ActionDown))
		g.Step(press(core.ActionRight))
	}
	if g.cursor != (tactics.Position{X: 10, Y: 10}) {
		t.Errorf("cursor = %v, expected (10,10)", g.cursor)
	}
}

func TestDamageSlider(t *testing.T) {
	g := newTestGame(t)

	tests := []struct {
		action core.Action
		times  int
		want   int
	}{
		{core.ActionIncrease, 1, 100},
		{core.ActionIncrease, 100, 1000},
		{core.ActionDecrease, 1, 950},
		{core.ActionReset, 1, 0},
		{core.ActionDecrease, 3, 0},
	}

	for _, tt := range tests {
		for range tt.times {
			g.Step(press(tt.action))
		}
		if g.damage != tt.want {
			t.Errorf("after %v x%d: damage = %d, expected %d", tt.action, tt.times, g.damage, tt.want)
		}
	}
}

func TestApplyDamagesUnitUnderCursor(t *testing.T) {
	g := newTestGame(t)
	ref := tactics.UnitRef{Player: 0, Index: 0}
	before, _ := g.engine.Unit(ref)

	g.Step(press(core.ActionApply))

	after, _ := g.engine.Unit(ref)
	if after.HP != before.HP-50 {
		t.Errorf("HP = %d, expected %d", after.HP, before.HP-50)
	}
	if !strings.Contains(g.status, "takes 50 damage") {
		t.Errorf("status = %q", g.status)
	}
}

func TestApplyOnEmptyCell(t *testing.T) {
	g := newTestGame(t)
	before := g.engine.Snapshot()

	g.Step(press(core.ActionUp)) // (1,0) is empty
	g.Step(press(core.ActionApply))

	after := g.engine.Snapshot()
	for i := range before.Pieces {
		if before.Pieces[i] != after.Pieces[i] {
			t.Fatalf("piece %d changed: %+v -> %+v", i, before.Pieces[i], after.Pieces[i])
		}
	}
	if g.status != "No unit under cursor" {
		t.Errorf("status = %q", g.status)
	}
}

func TestNextUnitSkipsFallen(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionNextUnit))
	if g.engine.CurrentUnit() != 1 {
		t.Fatalf("current unit = %d, expected 1", g.engine.CurrentUnit())
	}
	if g.cursor != (tactics.Position{X: 2, Y: 1}) {
		t.Errorf("cursor = %v, expected (2,1)", g.cursor)
	}

	g.engine.ApplyDamage(tactics.UnitRef{Player: 0, Index: 2}, 10000)
	g.Step(press(core.ActionNextUnit))
	if g.engine.CurrentUnit() != 3 {
		t.Errorf("current unit = %d, expected 3 (unit 2 is dead)", g.engine.CurrentUnit())
	}

	// Wraps around to the start of the roster
	g.Step(press(core.ActionNextUnit))
	g.Step(press(core.ActionNextUnit))
	if g.engine.CurrentUnit() != 0 {
		t.Errorf("current unit = %d, expected wrap to 0", g.engine.CurrentUnit())
	}
}

func TestGameOverReportsOutcome(t *testing.T) {
	g := newTestGame(t)

	if _, ok := g.Outcome(); ok {
		t.Fatal("Outcome() should be false while nobody is eliminated")
	}

	g.Step(press(core.ActionConfirm))
	g.Step(press(core.ActionConfirm))
	kill(t, g, 1)
	g.Step(press())

	if !g.State().GameOver {
		t.Fatal("game should be over once a player is eliminated")
	}
	out, ok := g.Outcome()
	if !ok {
		t.Fatal("Outcome() should be available after game over")
	}
	want := core.MatchOutcome{Turns: 2, Loser: 1, Survivors: 10, Reason: "eliminated"}
	if out != want {
		t.Errorf("Outcome() = %+v, expected %+v", out, want)
	}

	// Input is ignored after game over
	g.Step(press(core.ActionConfirm))
	if g.engine.Turn() != 2 {
		t.Errorf("turn = %d, End Turn should be ignored after game over", g.engine.Turn())
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newTestGame(t)

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionConfirm))
	if g.engine.Turn() != 0 {
		t.Error("End Turn should be ignored while paused")
	}
	if !g.State().Paused {
		t.Error("State should report paused")
	}

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionConfirm))
	if g.engine.Turn() != 1 {
		t.Error("End Turn should work after unpausing")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"BATTLE STRATEGY", "Player 0", "P0", "P1", "P2", "End Turn", "[x] Show fallen units"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if screen.GetCell(0, 0).Rune != ' ' {
		t.Error("top-left corner should be blank")
	}
}

func TestRenderHidesFallenWhenUnchecked(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)

	g.Step(press(core.ActionReset))
	for range 20 {
		g.Step(press(core.ActionIncrease))
	}
	g.Step(press(core.ActionApply)) // 1000 damage kills any unit

	g.Render(screen)
	if !strings.Contains(screen.String(), "x0") {
		t.Error("fallen unit should be drawn while the checkbox is set")
	}

	g.Step(press(core.ActionToggle))
	g.Render(screen)
	if strings.Contains(screen.String(), "x0") {
		t.Error("fallen unit should be hidden after unchecking")
	}
}

func TestRenderGameOverPopup(t *testing.T) {
	g := newTestGame(t)
	kill(t, g, 2)
	g.Step(press())

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected Game Over popup")
	}
	if !strings.Contains(screen.String(), "Player 2 eliminated") {
		t.Error("popup should name the eliminated player")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.resetWith(core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1}, config.DefaultSkirmishConfig())

	g.Step(press(core.ActionConfirm))
	if g.engine.Turn() != 0 {
		t.Error("input should be ignored when the window is too small")
	}

	screen := core.NewScreen(40, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestResizeKeepsMatch(t *testing.T) {
	g := newTestGame(t)
	g.Step(press(core.ActionConfirm))

	g.Resize(40, 10)
	if !g.State().Paused {
		t.Error("a too-small window should pause the game")
	}
	g.Resize(100, 30)
	if g.State().Paused {
		t.Error("game should resume once the window is large enough")
	}
	if g.engine.Turn() != 1 {
		t.Errorf("turn = %d, resize must not restart the match", g.engine.Turn())
	}
}
