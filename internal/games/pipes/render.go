package pipes

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

const hudHeight = 2 // status line + separator

// tileScale is the size of one tile on screen in terminal cells.
type tileScale struct{ w, h int }

var (
	largeTiles   = tileScale{w: 5, h: 3}
	compactTiles = tileScale{w: 3, h: 1}
)

// layout places the board on screen.
type layout struct {
	tileW int
	tileH int
	board platformcore.Rect // tile area, without the frame
}

// computeLayout picks the largest tile scale that fits the board and its
// frame below the HUD. ok is false when nothing fits.
func computeLayout(screenW, screenH, cols, rows int) (layout, bool) {
	for _, s := range []tileScale{largeTiles, compactTiles} {
		w, h := cols*s.w, rows*s.h
		if w+2 > screenW || h+2+hudHeight > screenH {
			continue
		}
		x := (screenW - w) / 2
		y := hudHeight + 1 + (screenH-hudHeight-h-2)/2
		return layout{tileW: s.w, tileH: s.h, board: platformcore.NewRect(x, y, w, h)}, true
	}
	return layout{}, false
}

// Junction glyphs indexed by mask (bit order N, W, S, E).
var junctionGlyphs = [16]rune{
	'·', '╹', '╸', '┛', '╻', '┃', '┓', '┫',
	'╺', '┗', '━', '┻', '┏', '┣', '┳', '╋',
}

const (
	startGlyph = '●'
	endGlyph   = '◆'
)

// Colors of the board elements.
const (
	colorPipe   = platformcore.ColorGray
	colorWater  = platformcore.ColorBrightCyan
	colorStart  = platformcore.ColorBrightYellow
	colorEnd    = platformcore.ColorBrightGreen
	colorBurst  = platformcore.ColorBrightRed
	colorFrame  = platformcore.ColorBlue
	colorCursor = platformcore.ColorDarkGray
)

type point struct{ x, y int }

// armCells lists the cells of the arm towards side s, outermost first.
func armCells(s core.Side, w, h int) []point {
	cx, cy := w/2, h/2
	var pts []point
	switch s {
	case core.SideNorth:
		for y := 0; y < cy; y++ {
			pts = append(pts, point{cx, y})
		}
	case core.SideSouth:
		for y := h - 1; y > cy; y-- {
			pts = append(pts, point{cx, y})
		}
	case core.SideWest:
		for x := 0; x < cx; x++ {
			pts = append(pts, point{x, cy})
		}
	case core.SideEast:
		for x := w - 1; x > cx; x-- {
			pts = append(pts, point{x, cy})
		}
	}
	return pts
}

func armGlyph(s core.Side) rune {
	if s == core.SideNorth || s == core.SideSouth {
		return '┃'
	}
	return '━'
}

// flowCells lists the cells the flow passes through inside one tile, in
// order: entry arm inwards, center, exit arm outwards.
func flowCells(step core.FlowStep, w, h int) []point {
	var pts []point
	if step.Entry.Valid() {
		pts = append(pts, armCells(step.Entry, w, h)...)
	}
	pts = append(pts, point{w / 2, h / 2})
	if step.Exit.Valid() {
		exit := armCells(step.Exit, w, h)
		for i := len(exit) - 1; i >= 0; i-- {
			pts = append(pts, exit[i])
		}
	}
	return pts
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	switch {
	case g.board == nil:
		g.renderOverlay(dst, "No board", g.status)
		return
	case g.tooSmall:
		g.renderTooSmall(dst)
		return
	}

	g.renderBoard(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", g.board.Cols()*compactTiles.w+2, g.board.Rows()*compactTiles.h+2+hudHeight)
	dst.DrawTextCentered(y+1, need)
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " PIPES | Score: " + fmt.Sprint(g.score)
	if g.mode == ModeCampaign && g.boardFile == nil {
		hud += fmt.Sprintf(" | Level %d/%d: %s", g.levelIndex+1, LevelCount(), g.boardName)
	} else if g.boardName != "" {
		hud += " | " + g.boardName
	}

	if g.board != nil {
		switch g.board.State() {
		case core.StateDelayed:
			hud += fmt.Sprintf(" | Flow in %.1fs", g.board.TimeUntilFlow())
		case core.StateFlowing:
			hud += fmt.Sprintf(" | Flowing %.1f", g.board.FlowLength())
		}
		if g.fast {
			hud += " >>"
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderBoard draws the frame, the tiles, the flow and the cursor.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	area := g.layout.board
	dst.DrawBoxWithColor(platformcore.NewRect(area.X-1, area.Y-1, area.W+2, area.H+2), colorFrame)

	end, hasEnd := g.board.End()
	for _, c := range g.board.Grid().AllCoords() {
		m, _ := g.board.Tile(c)
		color := colorPipe
		switch {
		case c == g.board.Start():
			color = colorStart
		case hasEnd && c == end:
			color = colorEnd
		}
		g.renderTile(dst, c, m, color)
	}

	g.renderFlow(dst)

	// Cursor highlight
	ox, oy := g.tileOrigin(g.cursor)
	for y := 0; y < g.layout.tileH; y++ {
		for x := 0; x < g.layout.tileW; x++ {
			dst.SetBg(ox+x, oy+y, colorCursor)
		}
	}
}

func (g *Game) tileOrigin(c core.Coord) (int, int) {
	return g.layout.board.X + c.Col*g.layout.tileW, g.layout.board.Y + c.Row*g.layout.tileH
}

// renderTile draws the pipe arms and the center glyph of one tile.
func (g *Game) renderTile(dst *platformcore.Screen, c core.Coord, m core.Mask, color platformcore.Color) {
	ox, oy := g.tileOrigin(c)
	w, h := g.layout.tileW, g.layout.tileH

	for _, s := range m.OpenSides() {
		for _, p := range armCells(s, w, h) {
			dst.SetWithColor(ox+p.x, oy+p.y, armGlyph(s), color)
		}
	}

	center := junctionGlyphs[m&core.MaskCross]
	end, hasEnd := g.board.End()
	switch {
	case c == g.board.Start():
		center = startGlyph
	case hasEnd && c == end:
		center = endGlyph
	}
	dst.SetWithColor(ox+w/2, oy+h/2, center, color)
}

// renderFlow colors the pipes the flow has filled. The leading tile is
// filled in proportion to its progress.
func (g *Game) renderFlow(dst *platformcore.Screen) {
	flow := g.board.Flow()
	w, h := g.layout.tileW, g.layout.tileH

	for i, step := range flow.Steps {
		color := colorWater
		if flow.Outcome == core.OutcomeDefeated && i == len(flow.Steps)-1 {
			color = colorBurst
		}
		cells := flowCells(step, w, h)
		n := int(math.Ceil(step.Progress * float64(len(cells))))
		ox, oy := g.tileOrigin(step.Cell)
		for _, p := range cells[:platformcore.Min(n, len(cells))] {
			cell := dst.GetCell(ox+p.x, oy+p.y)
			dst.SetWithColor(ox+p.x, oy+p.y, cell.Rune, color)
		}
	}

	if flow.Outcome == core.OutcomeDefeated && g.board.Grid().InBounds(flow.DefeatAt) {
		m, _ := g.board.Tile(flow.DefeatAt)
		g.renderTile(dst, flow.DefeatAt, m, colorBurst)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *platformcore.Screen) {
	switch {
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "Press P to resume")
	case g.won:
		g.renderOverlay(dst, "ALL BOARDS CONNECTED!", fmt.Sprintf("Final score: %d", g.score), "Press R to play again")
	case g.gameOver:
		g.renderOverlay(dst, "PIPE BURST", g.status, "Press R to restart")
	case g.levelCleared:
		g.renderOverlay(dst, "Connected!", fmt.Sprintf("+%d bonus", g.cfg.Scoring.CompletionBonus), "Enter: next board")
	}
}

// renderOverlay draws a centered box with the given lines.
func (g *Game) renderOverlay(dst *platformcore.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = platformcore.Max(maxLen, len(line))
	}

	box := platformcore.NewRect(0, 0, maxLen+4, len(lines)+2)
	box.X = (dst.Width() - box.W) / 2
	box.Y = (dst.Height() - box.H) / 2

	dst.DrawRect(box, ' ')
	dst.DrawBoxWithColor(box, platformcore.ColorWhite)
	for i, line := range lines {
		dst.DrawTextCenteredWithColor(box.Y+1+i, line, platformcore.ColorBrightWhite)
	}
}

// BoardText draws a board with one glyph per tile, source and drain marked.
func BoardText(b *core.Board) string {
	var sb strings.Builder
	end, hasEnd := b.End()
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			c := core.C(col, row)
			m, _ := b.Tile(c)
			switch {
			case c == b.Start():
				sb.WriteRune(startGlyph)
			case hasEnd && c == end:
				sb.WriteRune(endGlyph)
			default:
				sb.WriteRune(junctionGlyphs[m&core.MaskCross])
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
