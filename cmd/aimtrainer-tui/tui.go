package main

import (
	"log"
	"time"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

type mode int

const (
	modeMenu mode = iota
	modePlay
	modeEnd
)

// endInputDelay 结算界面忽略输入的时间（秒）
const endInputDelay = 0.5

// tui 终端版前端：菜单、对局、结算三个状态共用一个 tcell 屏幕
type tui struct {
	screen      tcell.Screen
	cfg         *config.GameConfig
	highScores  *game.HighScoreManager
	settings    *game.SettingsManager
	sessionOpts []game.SessionOption
	sound       *hitSound

	mode       mode
	difficulty int

	session    *game.Session
	spawnTimer *systems.SpawnTimerSystem
	result     game.Result
	endElapsed float64

	// 两次 step 之间收到的按下，每次按下单独执行一次 Tick，不丢弃
	pending   []game.Input
	mouseDown bool
	quit      bool
}

func newTUI(screen tcell.Screen, cfg *config.GameConfig, highScores *game.HighScoreManager,
	settings *game.SettingsManager, difficulty config.Difficulty, opts ...game.SessionOption) *tui {
	t := &tui{
		screen:      screen,
		cfg:         cfg,
		highScores:  highScores,
		settings:    settings,
		sessionOpts: opts,
	}
	t.selectDifficulty(difficulty)
	return t
}

func (t *tui) selectDifficulty(difficulty config.Difficulty) {
	for i, d := range config.Difficulties {
		if d == difficulty {
			t.difficulty = i
		}
	}
}

func (t *tui) currentDifficulty() config.Difficulty {
	return config.Difficulties[t.difficulty]
}

func (t *tui) viewport() viewport {
	cols, rows := t.screen.Size()
	return newViewport(cols, rows, t.cfg)
}

// startSession 以当前难度开始一局
func (t *tui) startSession() {
	opts := append([]game.SessionOption{game.WithHighScores(t.highScores)}, t.sessionOpts...)
	session := game.NewSession(t.cfg, opts...)
	if err := session.SetDifficulty(t.currentDifficulty()); err != nil {
		log.Printf("[TUI] Error: %v", err)
		return
	}

	t.settings.SetLastDifficulty(session.Difficulty())
	t.saveSettings()

	t.session = session
	t.spawnTimer = systems.NewSpawnTimerSystem(session.Params().SpawnInterval())
	t.pending = nil
	t.mode = modePlay
	session.Start()
}

func (t *tui) saveSettings() {
	if err := t.settings.Save(); err != nil {
		log.Printf("[TUI] Warning: Failed to save settings: %v", err)
	}
}

// finishSession 结算当前对局并进入结算界面
func (t *tui) finishSession() {
	t.result = t.session.Finish()
	t.endElapsed = 0
	t.mode = modeEnd
}

// handleEvent 处理一个终端事件
func (t *tui) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

func (t *tui) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
		if t.mode == modePlay {
			t.session.Finish()
		}
		t.quit = true
		return
	}

	switch t.mode {
	case modeMenu:
		count := len(config.Difficulties)
		switch ev.Key() {
		case tcell.KeyLeft:
			t.difficulty = (t.difficulty - 1 + count) % count
		case tcell.KeyRight:
			t.difficulty = (t.difficulty + 1) % count
		case tcell.KeyEnter:
			t.startSession()
		case tcell.KeyRune:
			switch r := ev.Rune(); {
			case r == ' ':
				t.startSession()
			case r == 'm' || r == 'M':
				t.settings.SetSoundEnabled(!t.settings.GetSettings().SoundEnabled)
				t.saveSettings()
			case r >= '1' && int(r-'1') < count:
				t.difficulty = int(r - '1')
			}
		}

	case modePlay:
		if ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P')) {
			t.session.TogglePause()
		}

	case modeEnd:
		if t.endElapsed >= endInputDelay {
			t.mode = modeMenu
		}
	}
}

// handleMouse 左键按下的那一次事件算作点击，按住移动不重复计数
func (t *tui) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	clicked := pressed && !t.mouseDown
	t.mouseDown = pressed
	if !clicked {
		return
	}

	switch t.mode {
	case modeMenu:
		t.startSession()
	case modePlay:
		col, row := ev.Position()
		x, y := t.viewport().toLogical(col, row)
		t.pending = append(t.pending, game.Input{X: x, Y: y, Click: true})
	case modeEnd:
		if t.endElapsed >= endInputDelay {
			t.mode = modeMenu
		}
	}
}

// step 推进一帧
func (t *tui) step(deltaTime float64) {
	switch t.mode {
	case modePlay:
		for n := t.spawnTimer.Update(deltaTime, t.session.IsPaused()); n > 0; n-- {
			t.session.SpawnTarget()
		}

		hits := t.session.Hits()
		if len(t.pending) == 0 {
			t.session.Tick(game.Input{})
		}
		// 每次 Tick 也推进一帧靶子生长，同一帧内的多次按下会让靶子多长几帧
		for _, in := range t.pending {
			t.session.Tick(in)
		}
		t.pending = t.pending[:0]
		if t.session.Hits() > hits && t.settings.GetSettings().SoundEnabled {
			t.sound.Play()
		}

		if t.session.IsOver() {
			t.finishSession()
		}

	case modeEnd:
		t.endElapsed += deltaTime
	}
}

// run 事件循环：输入由独立 goroutine 读取，逻辑和绘制在 ticker 上执行
func (t *tui) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for !t.quit {
		select {
		case ev := <-eventChan:
			t.handleEvent(ev)

		case now := <-ticker.C:
			t.step(now.Sub(last).Seconds())
			last = now
			t.draw()
		}
	}
}
