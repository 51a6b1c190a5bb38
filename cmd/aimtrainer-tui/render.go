package main

import (
	"fmt"
	"math"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/gdamore/tcell/v2"
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(0, 25, 40)).Foreground(tcell.ColorWhite)
	topBarStyle     = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
	highlightStyle  = backgroundStyle.Foreground(tcell.NewRGBColor(255, 200, 0))
	redRingStyle    = tcell.StyleDefault.Background(tcell.ColorRed)
	whiteRingStyle  = tcell.StyleDefault.Background(tcell.ColorWhite)
)

// ringStyle 按距离占半径的比例返回环的颜色（外到内红白相间）
func ringStyle(frac float64) tcell.Style {
	switch {
	case frac > 0.8:
		return redRingStyle
	case frac > 0.6:
		return whiteRingStyle
	case frac > 0.4:
		return redRingStyle
	default:
		return whiteRingStyle
	}
}

func (t *tui) draw() {
	t.screen.SetStyle(backgroundStyle)
	t.screen.Clear()

	switch t.mode {
	case modeMenu:
		t.drawMenu()
	case modePlay:
		t.drawPlay()
	case modeEnd:
		t.drawEnd()
	}

	t.screen.Show()
}

func (t *tui) drawMenu() {
	_, rows := t.screen.Size()
	mid := rows / 2
	best := t.highScores.Best()

	t.drawCentered(mid-4, t.cfg.Window.Title, backgroundStyle)
	t.drawCentered(mid-1, fmt.Sprintf("< %s >", difficultyLabel(t.currentDifficulty())), highlightStyle)
	t.drawCentered(mid+1, fmt.Sprintf("Best: %.1f t/s, %d hits", game.Round1(best.Speed), best.Hits), backgroundStyle)
	t.drawCentered(mid+4, "Press SPACE to Start", backgroundStyle)
	sound := "Off"
	if t.settings.GetSettings().SoundEnabled {
		sound = "On"
	}
	t.drawCentered(mid+5, fmt.Sprintf("Sound: %s (M)", sound), backgroundStyle)
	t.drawCentered(mid+7, "←/→ or 1/2/3 difficulty, Q quit", backgroundStyle)
}

func (t *tui) drawPlay() {
	state := t.session.Snapshot()
	vp := t.viewport()

	for _, target := range state.Targets {
		t.drawTarget(vp, target)
	}

	barRows := vp.topBarRows(t.cfg.Window.TopBarHeight)
	for row := 0; row < barRows; row++ {
		for col := 0; col < vp.cols; col++ {
			t.screen.SetContent(col, row, ' ', nil, topBarStyle)
		}
	}
	t.drawString(1, 0, statusLine(state), topBarStyle)

	if state.Paused {
		t.drawCentered(vp.rows/2, "PAUSED", backgroundStyle)
	}
}

// drawTarget 填充圆心落在靶子内的字符格
func (t *tui) drawTarget(vp viewport, target game.TargetView) {
	if target.Radius <= 0 {
		return
	}

	drawn := false
	minCol, minRow := vp.toCell(target.X-target.Radius, target.Y-target.Radius)
	maxCol, maxRow := vp.toCell(target.X+target.Radius, target.Y+target.Radius)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y := vp.toLogical(col, row)
			dist := math.Hypot(x-target.X, y-target.Y)
			if dist > target.Radius {
				continue
			}
			t.screen.SetContent(col, row, ' ', nil, ringStyle(dist/target.Radius))
			drawn = true
		}
	}

	// 靶子小于一个字符格时只显示圆心
	if !drawn {
		col, row := vp.toCell(target.X, target.Y)
		t.screen.SetContent(col, row, '•', nil, backgroundStyle.Foreground(tcell.ColorRed))
	}
}

func (t *tui) drawEnd() {
	_, rows := t.screen.Size()
	lines := resultLines(t.result)
	top := rows/2 - len(lines)

	if t.result.NewRecord {
		t.drawCentered(top-2, "New record!", highlightStyle)
	}
	for i, line := range lines {
		t.drawCentered(top+i*2, line, backgroundStyle)
	}
}

func (t *tui) drawString(col, row int, str string, style tcell.Style) {
	for _, r := range str {
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (t *tui) drawCentered(row int, str string, style tcell.Style) {
	cols, _ := t.screen.Size()
	col := (cols - len([]rune(str))) / 2
	if col < 0 {
		col = 0
	}
	t.drawString(col, row, str, style)
}

// statusLine 顶部状态栏文字
func statusLine(state game.FrameState) string {
	return fmt.Sprintf("Time: %s   Speed: %.1f t/s   Hits: %d   Lives: %d",
		game.FormatTime(state.Elapsed), game.Round1(state.Speed), state.Hits, state.LivesLeft)
}

// resultLines 结算界面的文字行
func resultLines(result game.Result) []string {
	return []string{
		fmt.Sprintf("Time: %s", game.FormatTime(result.Elapsed)),
		fmt.Sprintf("Speed: %.1f t/s", game.Round1(result.Speed)),
		fmt.Sprintf("Hits: %d", result.Hits),
		fmt.Sprintf("Accuracy: %.1f%%", game.Round1(result.Accuracy)),
		fmt.Sprintf("High Score: %.1f t/s, %d hits", game.Round1(result.HighScore.Speed), result.HighScore.Hits),
	}
}

func difficultyLabel(d config.Difficulty) string {
	switch d {
	case config.DifficultyEasy:
		return "Easy"
	case config.DifficultyHard:
		return "Hard"
	default:
		return "Normal"
	}
}
