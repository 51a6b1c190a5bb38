package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene 主菜单
//
// SPACE/ENTER 或点击开始，←/→ 或 1/2/3 选择难度，M 切换音效，Q 退出
type MenuScene struct {
	ctx        *Context
	difficulty int // 当前选择的难度在 config.Difficulties 中的索引
}

// NewMenuScene 创建主菜单，默认选中 difficulty
func NewMenuScene(ctx *Context, difficulty config.Difficulty) *MenuScene {
	scene := &MenuScene{ctx: ctx}
	for i, d := range config.Difficulties {
		if d == difficulty {
			scene.difficulty = i
		}
	}
	return scene
}

// Difficulty 返回当前选择的难度
func (s *MenuScene) Difficulty() config.Difficulty {
	return config.Difficulties[s.difficulty]
}

// Update 处理菜单输入
func (s *MenuScene) Update(deltaTime float64) {
	s.update(utils.ReadFrameInput())
}

func (s *MenuScene) update(input utils.FrameInput) {
	if input.Quit {
		s.ctx.Scenes.RequestQuit()
		return
	}

	count := len(config.Difficulties)
	if input.DifficultyIndex >= 0 && input.DifficultyIndex < count {
		s.difficulty = input.DifficultyIndex
	}
	if input.DifficultyStep != 0 {
		s.difficulty = ((s.difficulty+input.DifficultyStep)%count + count) % count
	}

	if input.ToggleSound {
		enabled := !s.ctx.Settings.GetSettings().SoundEnabled
		s.ctx.Settings.SetSoundEnabled(enabled)
		s.saveSettings()
	}

	if input.Start || input.Click {
		scene, err := NewPlayScene(s.ctx, s.Difficulty())
		if err != nil {
			log.Printf("[MenuScene] Error: %v", err)
			return
		}
		s.ctx.Settings.SetLastDifficulty(s.Difficulty())
		s.saveSettings()
		s.ctx.Scenes.SwitchTo(scene)
	}
}

func (s *MenuScene) saveSettings() {
	if err := s.ctx.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制标题、难度选择和最高成绩
func (s *MenuScene) Draw(screen *ebiten.Image) {
	cfg := s.ctx.Config
	ui := s.ctx.UI
	centerX := float64(cfg.Window.Width) / 2
	centerY := float64(cfg.Window.Height) / 2

	screen.Fill(BackgroundColor)
	drawCenteredText(screen, cfg.Window.Title, ui.MenuFont, centerX, centerY-140, LabelLightColor)
	drawCenteredText(screen, fmt.Sprintf("< %s >", difficultyLabel(s.Difficulty())), ui.LabelFont,
		centerX, centerY-40, HighlightColor)

	best := s.ctx.HighScores.Best()
	drawCenteredText(screen, fmt.Sprintf("Best: %.1f t/s, %d hits", game.Round1(best.Speed), best.Hits), ui.LabelFont,
		centerX, centerY, LabelLightColor)

	drawCenteredText(screen, "Press SPACE to Start", ui.MenuFont, centerX, centerY+100, LabelLightColor)

	sound := "Off"
	if s.ctx.Settings.GetSettings().SoundEnabled {
		sound = "On"
	}
	drawCenteredText(screen, fmt.Sprintf("Sound: %s (M)", sound), ui.LabelFont, centerX, centerY+180, LabelLightColor)
}
