// Package skirmish implements Battle Strategy: three hot-seat players with
// five units each on an 11x11 board. The game drives a tactics.Engine and
// only translates platform actions into engine calls.
package skirmish

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/tui-tactics/internal/config"
	"github.com/vovakirdan/tui-tactics/internal/core"
	"github.com/vovakirdan/tui-tactics/internal/registry"
	"github.com/vovakirdan/tui-tactics/internal/tactics"
	"github.com/vovakirdan/tui-tactics/internal/telemetry"
)

// Game is the Battle Strategy presenter.
type Game struct {
	cfg    config.SkirmishConfig
	engine *tactics.Engine

	cursor     tactics.Position
	damage     int
	showFallen bool
	status     string

	screenW int
	screenH int

	paused   bool
	tooSmall bool
	ended    bool // game over already traced
}

// Package-level config path, set from the CLI --config flag.
var configPath string

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// New creates a Battle Strategy game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("skirmish", func() registry.Game {
		return New()
	})
}

var (
	_ registry.OutcomeReporter = (*Game)(nil)
	_ registry.Resizable       = (*Game)(nil)
)

// ID returns the game identifier.
func (g *Game) ID() string {
	return "skirmish"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Battle Strategy"
}

// Reset loads the configuration and starts a fresh match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	conf, err := config.LoadSkirmish(configPath)
	g.status = ""
	if err != nil {
		g.status = "config: " + err.Error()
	}
	g.resetWith(cfg, conf)
}

// resetWith starts a match from an already loaded configuration.
func (g *Game) resetWith(cfg core.RuntimeConfig, conf config.SkirmishConfig) {
	engine, err := tactics.New(tactics.NewSource(cfg.Seed), conf.Rules())
	if err != nil {
		g.status = "rules: " + err.Error()
		conf = config.DefaultSkirmishConfig()
		engine, _ = tactics.New(tactics.NewSource(cfg.Seed), tactics.DefaultRules())
	}

	g.cfg = conf
	g.engine = engine
	g.damage = conf.Presenter.DamageStep
	g.showFallen = true
	g.paused = false
	g.ended = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.focusCurrentUnit()
}

// Resize adapts the layout to a new screen size and keeps the match.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *tactics.Engine {
	return g.engine
}

// Step maps one tick of input onto engine operations.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.engine.IsGameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.engine.IsGameOver() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	switch {
	case in.Has(core.ActionIncrease):
		g.damage = core.Min(g.damage+g.cfg.Presenter.DamageStep, g.cfg.Presenter.MaxDamage)
	case in.Has(core.ActionDecrease):
		g.damage = core.Max(g.damage-g.cfg.Presenter.DamageStep, 0)
	case in.Has(core.ActionReset):
		g.damage = 0
	}

	if in.Has(core.ActionToggle) {
		g.showFallen = !g.showFallen
	}
	if in.Has(core.ActionNextUnit) {
		g.nextUnit()
	}
	if in.Has(core.ActionApply) {
		g.applyDamage()
	}
	if in.Has(core.ActionConfirm) {
		g.endTurn()
	}

	if g.engine.IsGameOver() && !g.ended {
		g.ended = true
		g.traceGameOver()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	dx, dy := 0, 0
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	}
	w, h := g.engine.Size()
	g.cursor.X = core.Clamp(g.cursor.X+dx, 0, w-1)
	g.cursor.Y = core.Clamp(g.cursor.Y+dy, 0, h-1)
}

// nextUnit selects the next living unit of the current player.
func (g *Game) nextUnit() {
	player := g.engine.Players()[g.engine.CurrentPlayer()]
	start := g.engine.CurrentUnit()
	for k := 1; k <= tactics.UnitsPerPlayer; k++ {
		idx := (start + k) % tactics.UnitsPerPlayer
		if !player.Units[idx].Alive {
			continue
		}
		if err := g.engine.SelectUnit(idx); err != nil {
			g.status = err.Error()
			return
		}
		g.focusCurrentUnit()
		return
	}
	g.status = fmt.Sprintf("Player %d has no living units", player.ID)
}

// focusCurrentUnit moves the cursor onto the selected unit.
func (g *Game) focusCurrentUnit() {
	ref := tactics.UnitRef{Player: g.engine.CurrentPlayer(), Index: g.engine.CurrentUnit()}
	if u, err := g.engine.Unit(ref); err == nil {
		g.cursor = u.Pos
	}
}

func (g *Game) endTurn() {
	_, span := telemetry.Tracer("skirmish").Start(context.Background(), "skirmish.end_turn")
	defer span.End()

	from := g.engine.CurrentPlayer()
	g.engine.EndTurn()
	g.focusCurrentUnit()
	g.status = fmt.Sprintf("Player %d's turn: %d step(s)", g.engine.CurrentPlayer(), g.engine.Steps())

	span.SetAttributes(
		attribute.Int("from_player", from),
		attribute.Int("to_player", g.engine.CurrentPlayer()),
		attribute.Int("steps", g.engine.Steps()),
		attribute.Int("turn", g.engine.Turn()),
	)
}

func (g *Game) applyDamage() {
	piece, ok := g.engine.Snapshot().PieceAt(g.cursor)
	if !ok {
		g.status = "No unit under cursor"
		return
	}

	_, span := telemetry.Tracer("skirmish").Start(context.Background(), "skirmish.apply_damage")
	defer span.End()
	span.SetAttributes(
		attribute.String("unit", piece.Ref().String()),
		attribute.Int("amount", g.damage),
	)

	if err := g.engine.ApplyDamage(piece.Ref(), g.damage); err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		g.status = err.Error()
		return
	}

	u, _ := g.engine.Unit(piece.Ref())
	span.SetAttributes(attribute.Int("hp", u.HP), attribute.Bool("alive", u.Alive))
	if u.Alive {
		g.status = fmt.Sprintf("P%d unit %d takes %d damage (HP %d)", piece.Owner, piece.Index+1, g.damage, u.HP)
	} else {
		g.status = fmt.Sprintf("P%d unit %d has fallen", piece.Owner, piece.Index+1)
	}
}

func (g *Game) traceGameOver() {
	out, _ := g.Outcome()
	_, span := telemetry.Tracer("skirmish").Start(context.Background(), "skirmish.game_over")
	span.SetAttributes(
		attribute.Int("loser", out.Loser),
		attribute.Int("turns", out.Turns),
		attribute.Int("survivors", out.Survivors),
	)
	span.End()
}

// Outcome reports the finished match. It returns false while no player
// has been eliminated.
func (g *Game) Outcome() (core.MatchOutcome, bool) {
	if g.engine == nil {
		return core.MatchOutcome{}, false
	}
	loser, over := g.engine.Loser()
	if !over {
		return core.MatchOutcome{}, false
	}

	survivors := 0
	for _, p := range g.engine.Players() {
		survivors += p.AliveCount()
	}
	return core.MatchOutcome{
		Turns:     g.engine.Turn(),
		Loser:     loser,
		Survivors: survivors,
		Reason:    "eliminated",
	}, true
}

// State returns the current game state. Score is the number of turns played.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Turn(),
		GameOver: g.engine.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

