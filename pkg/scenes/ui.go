package scenes

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// 配色
var (
	BackgroundColor = color.RGBA{0, 25, 40, 255}
	TopBarColor     = color.RGBA{128, 128, 128, 255}
	TargetColor     = color.RGBA{255, 0, 0, 255}
	TargetAltColor  = color.RGBA{255, 255, 255, 255}
	LabelDarkColor  = color.RGBA{0, 0, 0, 255}
	LabelLightColor = color.RGBA{255, 255, 255, 255}
	HighlightColor  = color.RGBA{255, 200, 0, 255}
)

// 字号
const (
	labelFontSize = 24
	menuFontSize  = 40
)

// UI 持有字体等绘制资源，启动时创建一次
type UI struct {
	LabelFont *text.GoTextFace
	MenuFont  *text.GoTextFace
}

// NewUI 加载内置字体（Go Regular）
func NewUI() (*UI, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}

	return &UI{
		LabelFont: &text.GoTextFace{
			Source:    source,
			Size:      labelFontSize,
			Direction: text.DirectionLeftToRight,
		},
		MenuFont: &text.GoTextFace{
			Source:    source,
			Size:      menuFontSize,
			Direction: text.DirectionLeftToRight,
		},
	}, nil
}

// drawText 在 (x, y) 绘制左上对齐的文字
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawCenteredText 以 centerX 为水平中心、y 为顶部绘制文字
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, centerX, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignStart
	op.GeoM.Translate(centerX, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawTarget 绘制靶子：红白相间的四层同心圆（半径 1.0/0.8/0.6/0.4）
func drawTarget(screen *ebiten.Image, target game.TargetView) {
	if target.Radius <= 0 {
		return
	}

	cx := float32(target.X)
	cy := float32(target.Y)
	r := float32(target.Radius)

	vector.DrawFilledCircle(screen, cx, cy, r, TargetColor, true)
	vector.DrawFilledCircle(screen, cx, cy, r*0.8, TargetAltColor, true)
	vector.DrawFilledCircle(screen, cx, cy, r*0.6, TargetColor, true)
	vector.DrawFilledCircle(screen, cx, cy, r*0.4, TargetAltColor, true)
}

// topBarLabels 生成顶部状态栏的四个标签
func topBarLabels(state game.FrameState) [4]string {
	return [4]string{
		fmt.Sprintf("Time: %s", game.FormatTime(state.Elapsed)),
		fmt.Sprintf("Speed: %.1f t/s", game.Round1(state.Speed)),
		fmt.Sprintf("Hits: %d", state.Hits),
		fmt.Sprintf("Lives: %d", state.LivesLeft),
	}
}

// topBarLabelX 状态栏标签的 X 坐标（按 800 宽度布局，等比缩放）
var topBarLabelX = [4]float64{5, 200, 450, 650}

// drawTopBar 绘制顶部状态栏
func drawTopBar(screen *ebiten.Image, ui *UI, cfg *config.GameConfig, state game.FrameState) {
	width := float32(cfg.Window.Width)
	vector.DrawFilledRect(screen, 0, 0, width, float32(cfg.Window.TopBarHeight), TopBarColor, false)

	scale := float64(cfg.Window.Width) / float64(config.GameWindowWidth)
	for i, label := range topBarLabels(state) {
		drawText(screen, label, ui.LabelFont, topBarLabelX[i]*scale, 5, LabelDarkColor)
	}
}

// resultLines 生成结算界面的文字行
func resultLines(result game.Result) []string {
	return []string{
		fmt.Sprintf("Time: %s", game.FormatTime(result.Elapsed)),
		fmt.Sprintf("Speed: %.1f t/s", game.Round1(result.Speed)),
		fmt.Sprintf("Hits: %d", result.Hits),
		fmt.Sprintf("Accuracy: %.1f%%", game.Round1(result.Accuracy)),
		fmt.Sprintf("High Score: %.1f t/s, %d hits", game.Round1(result.HighScore.Speed), result.HighScore.Hits),
	}
}

// difficultyLabel 难度的显示名称
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
