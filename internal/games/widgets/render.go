package widgets

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tactics/internal/core"
)

const barWidth = 20

// Render draws the widget panel centered on screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	panel := core.NewRect(0, 0, g.screenW, g.screenH).Centered(44, 9)
	dst.DrawBox(panel)
	dst.DrawTextColor(panel.X+2, panel.Y, " Widget Demo ", core.ColorBrightCyan)

	x := panel.X + 2
	dst.DrawText(x, panel.Y+2, "Welcome to the turn-based strategy game!")

	filled := int(g.value*barWidth + 0.5)
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
	g.drawItem(dst, x, panel.Y+4, focusSlider, fmt.Sprintf("Slider %s %.2f", bar, g.value))

	box := "[ ]"
	if g.checked {
		box = "[x]"
	}
	g.drawItem(dst, x, panel.Y+5, focusCheckbox, box+" Checkbox")
	g.drawItem(dst, x, panel.Y+6, focusButton, "< Reset >")

	dst.DrawTextColor(x, panel.Bottom(), "Up/Down focus  Left/Right adjust  Enter press", core.ColorGray)
}

func (g *Game) drawItem(dst *core.Screen, x, y int, f focus, text string) {
	if g.focused == f {
		dst.DrawTextColor(x, y, "> "+text, core.ColorBrightYellow)
		return
	}
	dst.DrawText(x, y, "  "+text)
}
