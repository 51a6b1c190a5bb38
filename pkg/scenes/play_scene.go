package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/systems"
	"github.com/decker502/aimtrainer/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// PlayScene 对局场景
//
// 每帧流程：读取输入 → 处理暂停/退出 → 生成计时器 → Session.Tick → 检查结束
type PlayScene struct {
	ctx        *Context
	session    *game.Session
	spawnTimer *systems.SpawnTimerSystem
}

// NewPlayScene 创建对局场景并立即开始计时
//
// 参数：
//   - ctx: 场景共享依赖
//   - difficulty: 本局难度
func NewPlayScene(ctx *Context, difficulty config.Difficulty) (*PlayScene, error) {
	session, err := ctx.NewSession(difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	scene := &PlayScene{
		ctx:        ctx,
		session:    session,
		spawnTimer: systems.NewSpawnTimerSystem(session.Params().SpawnInterval()),
	}
	session.Start()
	log.Printf("[PlayScene] Session %s started", session.ID())

	return scene, nil
}

// Session 返回当前对局
func (s *PlayScene) Session() *game.Session {
	return s.session
}

// Update 更新对局逻辑
func (s *PlayScene) Update(deltaTime float64) {
	s.update(deltaTime, utils.ReadFrameInput())
}

// update 使用给定输入推进一帧
func (s *PlayScene) update(deltaTime float64, input utils.FrameInput) {
	if input.Quit {
		s.SaveOnExit()
		s.ctx.Scenes.RequestQuit()
		return
	}

	if input.TogglePause {
		s.session.TogglePause()
	}

	// 计时器在 Session 之外，由帧循环驱动并受暂停控制
	for n := s.spawnTimer.Update(deltaTime, s.session.IsPaused()); n > 0; n-- {
		s.session.SpawnTarget()
	}

	hits := s.session.Hits()
	s.session.Tick(game.Input{
		X:     float64(input.X),
		Y:     float64(input.Y),
		Click: input.Click,
	})
	if s.session.Hits() > hits {
		s.ctx.Audio.PlayHit()
	}

	if s.session.IsOver() {
		result := s.session.Finish()
		s.ctx.Scenes.SwitchTo(NewEndScene(s.ctx, result))
	}
}

// SaveOnExit 对局中途退出时结算已进行的部分
func (s *PlayScene) SaveOnExit() bool {
	if !s.session.IsStarted() {
		return true
	}
	result := s.session.Finish()
	log.Printf("[PlayScene] Saved on exit: session=%s hits=%d", result.ID, result.Hits)
	return true
}

// Draw 绘制靶子、顶部状态栏和暂停提示
func (s *PlayScene) Draw(screen *ebiten.Image) {
	state := s.session.Snapshot()
	cfg := s.ctx.Config

	screen.Fill(BackgroundColor)
	for _, target := range state.Targets {
		drawTarget(screen, target)
	}

	drawTopBar(screen, s.ctx.UI, cfg, state)

	if state.Paused {
		drawCenteredText(screen, "PAUSED", s.ctx.UI.MenuFont,
			float64(cfg.Window.Width)/2, float64(cfg.Window.Height)/2, LabelLightColor)
	}
}
