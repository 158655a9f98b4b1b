// Package widgets is a minimal screen that shows a text line, a slider,
// a checkbox and a button. It exercises the platform render loop without
// any game rules.
package widgets

import (
	"math"

	"github.com/vovakirdan/tui-tactics/internal/core"
	"github.com/vovakirdan/tui-tactics/internal/registry"
)

const sliderStep = 0.05

// focus identifies the widget that receives input.
type focus int

const (
	focusSlider focus = iota
	focusCheckbox
	focusButton
	focusCount
)

// Game is the widget demo.
type Game struct {
	value   float64
	checked bool
	focused focus

	screenW int
	screenH int
}

// New creates the widget demo.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("widgets", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "widgets"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Widget Demo"
}

// Reset restores the initial widget values.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.value = 0
	g.checked = true
	g.focused = focusSlider
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize keeps the widget values and recenters the panel.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
}

// Step applies one frame of input to the focused widget.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch {
	case in.Has(core.ActionUp):
		g.focused = (g.focused + focusCount - 1) % focusCount
	case in.Has(core.ActionDown):
		g.focused = (g.focused + 1) % focusCount
	}

	switch g.focused {
	case focusSlider:
		if in.Has(core.ActionLeft) || in.Has(core.ActionDecrease) {
			g.setValue(g.value - sliderStep)
		}
		if in.Has(core.ActionRight) || in.Has(core.ActionIncrease) {
			g.setValue(g.value + sliderStep)
		}
	case focusCheckbox:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionToggle) {
			g.checked = !g.checked
		}
	case focusButton:
		if in.Has(core.ActionConfirm) {
			g.value = 0
		}
	}

	return core.StepResult{State: g.State()}
}

// setValue clamps to [0,1] and snaps to the step grid so repeated steps
// land exactly on 0 and 1.
func (g *Game) setValue(v float64) {
	v = math.Round(v/sliderStep) * sliderStep
	g.value = core.ClampF(v, 0, 1)
}

// Value returns the slider value.
func (g *Game) Value() float64 {
	return g.value
}

// Checked returns the checkbox state.
func (g *Game) Checked() bool {
	return g.checked
}

// State returns the game state. The demo never ends.
func (g *Game) State() core.GameState {
	return core.GameState{}
}
