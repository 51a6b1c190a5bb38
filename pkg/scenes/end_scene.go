package scenes

import (
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// endSceneInputDelay 结算界面忽略输入的时间（秒），避免对局最后一帧的操作直接跳过结算
const endSceneInputDelay = 0.5

// EndScene 结算界面
//
// 显示用时、速度、命中、命中率和最高成绩；任意键或点击返回主菜单，Q 退出
type EndScene struct {
	ctx     *Context
	result  game.Result
	elapsed float64
}

// NewEndScene 创建结算界面
func NewEndScene(ctx *Context, result game.Result) *EndScene {
	return &EndScene{
		ctx:    ctx,
		result: result,
	}
}

// Result 返回展示的成绩
func (s *EndScene) Result() game.Result {
	return s.result
}

// Update 等待玩家按键
func (s *EndScene) Update(deltaTime float64) {
	s.update(deltaTime, utils.ReadFrameInput())
}

func (s *EndScene) update(deltaTime float64, input utils.FrameInput) {
	s.elapsed += deltaTime
	if s.elapsed < endSceneInputDelay {
		return
	}

	if input.Quit {
		s.ctx.Scenes.RequestQuit()
		return
	}
	if input.AnyKey || input.Click {
		s.ctx.Scenes.SwitchTo(NewMenuScene(s.ctx, s.result.Difficulty))
	}
}

// Draw 绘制成绩
func (s *EndScene) Draw(screen *ebiten.Image) {
	cfg := s.ctx.Config
	ui := s.ctx.UI
	centerX := float64(cfg.Window.Width) / 2

	screen.Fill(BackgroundColor)

	// 五行成绩从 y=100 开始，每行间隔 100（与 600 高度的布局一致，按窗口高度缩放）
	step := float64(cfg.Window.Height) / 6
	for i, line := range resultLines(s.result) {
		drawCenteredText(screen, line, ui.LabelFont, centerX, step*float64(i+1), LabelLightColor)
	}

	if s.result.NewRecord {
		drawCenteredText(screen, "New record!", ui.LabelFont, centerX, step*0.4, HighlightColor)
	}
}
