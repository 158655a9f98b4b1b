package skirmish

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-tactics/internal/core"
	"github.com/vovakirdan/tui-tactics/internal/tactics"
)

const (
	cellWidth  = 3 // cursor marker + two-character piece label
	hudHeight  = 3
	panelWidth = 28
	panelGap   = 2

	boardW    = tactics.BoardSize*cellWidth + 2 // + border
	boardH    = tactics.BoardSize + 2
	minWidth  = boardW + panelGap + panelWidth
	minHeight = hudHeight + boardH + 5
)

var playerColors = [tactics.PlayerCount]struct{ normal, active core.Color }{
	{core.ColorRed, core.ColorBrightRed},
	{core.ColorBlue, core.ColorBrightBlue},
	{core.ColorGreen, core.ColorBrightGreen},
}

// Render draws the HUD, board, roster panel, widgets and overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		msg := "Window too small"
		dst.DrawTextCentered(g.screenH/2, msg)
		dst.DrawTextCentered(g.screenH/2+1, fmt.Sprintf("Need %dx%d", minWidth, minHeight))
		return
	}

	snap := g.engine.Snapshot()
	originX := (g.screenW - minWidth) / 2
	boardY := hudHeight

	g.renderHUD(dst, snap, originX)
	g.renderBoard(dst, snap, originX, boardY)
	g.renderRoster(dst, snap, originX+boardW+panelGap, boardY)
	g.renderControls(dst, originX, boardY+boardH)

	switch {
	case snap.GameOver:
		g.renderGameOver(dst, snap)
	case g.paused:
		g.renderPopup(dst, "PAUSED", "P to resume")
	}
}

func (g *Game) renderHUD(dst *core.Screen, snap tactics.Snapshot, x int) {
	dst.DrawTextCentered(0, "BATTLE STRATEGY")

	current := snap.CurrentPlayer
	dst.DrawTextColor(x, 1, fmt.Sprintf("Player %d", current), playerColors[current].active)

	info := fmt.Sprintf("Turn %d  Steps %d", snap.Turn, snap.Steps)
	dst.DrawText(x+minWidth-len(info), 1, info)
}

func (g *Game) renderBoard(dst *core.Screen, snap tactics.Snapshot, x, y int) {
	dst.DrawBox(core.NewRect(x, y, boardW, boardH))

	for row := range snap.Height {
		for col := range snap.Width {
			pos := tactics.Position{X: col, Y: row}
			px := x + 1 + col*cellWidth
			py := y + 1 + row

			if pos == g.cursor {
				dst.SetWithColor(px, py, '>', core.ColorBrightYellow)
			}

			piece, ok := snap.PieceAt(pos)
			if !ok || (!piece.Alive && !g.showFallen) {
				dst.SetWithColor(px+1, py, '·', core.ColorGray)
				continue
			}

			label := fmt.Sprintf("P%d", piece.Owner)
			color := playerColors[piece.Owner].normal
			switch {
			case !piece.Alive:
				label = fmt.Sprintf("x%d", piece.Owner)
				color = core.ColorGray
			case piece.Owner == snap.CurrentPlayer && piece.Index == snap.CurrentUnit:
				color = playerColors[piece.Owner].active
			}
			dst.DrawTextColor(px+1, py, label, color)
		}
	}
}

func (g *Game) renderRoster(dst *core.Screen, snap tactics.Snapshot, x, y int) {
	current := snap.CurrentPlayer
	dst.DrawBox(core.NewRect(x, y, panelWidth, boardH))
	dst.DrawTextColor(x+2, y, fmt.Sprintf(" Player %d ", current), playerColors[current].active)

	for i, u := range snap.Players[current].Units {
		marker := "  "
		if i == snap.CurrentUnit {
			marker = "> "
		}
		line := fmt.Sprintf("%s#%d HP %4d ATK %3d", marker, i+1, u.HP, u.ATK)
		color := playerColors[current].normal
		if !u.Alive {
			line = fmt.Sprintf("%s#%d fallen", marker, i+1)
			color = core.ColorGray
		}
		dst.DrawTextColor(x+2, y+2+i, line, color)
	}

	// Unit under cursor, any owner
	if piece, ok := snap.PieceAt(g.cursor); ok {
		dst.DrawText(x+2, y+8, fmt.Sprintf("Cursor %s", piece.Pos))
		dst.DrawTextColor(x+2, y+9, fmt.Sprintf("P%d #%d HP %d", piece.Owner, piece.Index+1, piece.HP),
			playerColors[piece.Owner].normal)
	} else {
		dst.DrawText(x+2, y+8, fmt.Sprintf("Cursor %s", g.cursor))
	}

	for i, p := range snap.Players {
		dst.DrawTextColor(x+2+i*8, y+boardH-2, fmt.Sprintf("P%d:%d", i, p.AliveCount()), playerColors[i].normal)
	}
}

func (g *Game) renderControls(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, fmt.Sprintf("Damage %s %4d", slider(g.damage, g.cfg.Presenter.MaxDamage, 20), g.damage))

	box := "[ ]"
	if g.showFallen {
		box = "[x]"
	}
	dst.DrawText(x, y+1, box+" Show fallen units")
	dst.DrawTextColor(x+28, y+1, "[ End Turn ]", core.ColorBrightWhite)

	if g.status != "" {
		dst.DrawTextColor(x, y+2, g.status, core.ColorYellow)
	}
	dst.DrawTextColor(x, y+3, "Tab unit  Enter end turn  +/- damage  X apply  C fallen", core.ColorGray)
}

// slider renders value/limit as a fixed-width bar.
func slider(value, limit, width int) string {
	filled := 0
	if limit > 0 {
		filled = core.Clamp(value*width/limit, 0, width)
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func (g *Game) renderGameOver(dst *core.Screen, snap tactics.Snapshot) {
	g.renderPopup(dst, "GAME OVER",
		fmt.Sprintf("Player %d eliminated after %d turns", snap.Loser, snap.Turn),
		"R restart  B menu")
}

// renderPopup draws a centered box with the given lines.
func (g *Game) renderPopup(dst *core.Screen, lines ...string) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len(l))
	}
	w += 4
	h := len(lines) + 2

	r := core.NewRect(0, 0, g.screenW, g.screenH).Centered(w, h)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	for i, l := range lines {
		dst.DrawTextColor(r.X+(w-len(l))/2, r.Y+1+i, l, core.ColorBrightWhite)
	}
}
