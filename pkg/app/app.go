// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/decker502/aimtrainer/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Difficulty 菜单中默认选中的难度，为空则使用配置文件中的默认难度
	Difficulty string
	// ConfigPath 覆盖内嵌配置的 YAML 文件路径，为空则使用内嵌配置
	ConfigPath string
	// AppName gdata 存储使用的应用名，为空则使用 game.DefaultAppName
	AppName string
	// DataFS 内嵌配置所在的文件系统，为 nil 时使用内置默认值
	DataFS fs.FS
	// DataPath DataFS 中配置文件的路径
	DataPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg                      *config.GameConfig
	settings                 *game.SettingsManager
	sceneManager             *scenes.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.ResolveGameConfig(cfg.ConfigPath, cfg.DataFS, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[Config] Window %dx%d, lives=%d, default difficulty=%s",
		gameConfig.Window.Width, gameConfig.Window.Height, gameConfig.Session.Lives, gameConfig.Session.DefaultDifficulty)

	appName := cfg.AppName
	if appName == "" {
		appName = game.DefaultAppName
	}
	storage := game.OpenStorage(appName)
	highScores := game.NewHighScoreManager(storage, gameConfig.Session.HistorySize)
	settings := game.NewSettingsManager(storage)
	log.Printf("[App] High score: %+v", highScores.Best())

	// 命令行参数 > 上次选择的难度 > 配置文件默认难度
	difficulty := settings.Difficulty(gameConfig.Session.DefaultDifficulty)
	if cfg.Difficulty != "" {
		difficulty, err = config.ParseDifficulty(cfg.Difficulty)
		if err != nil {
			return nil, err
		}
	}

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	ui, err := scenes.NewUI()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	sceneManager := scenes.NewSceneManager()
	ctx := &scenes.Context{
		Config:     gameConfig,
		HighScores: highScores,
		Settings:   settings,
		Audio:      scenes.NewAudioManager(audio.NewContext(scenes.AudioSampleRate), settings),
		UI:         ui,
		Scenes:     sceneManager,
	}
	sceneManager.SwitchTo(scenes.NewMenuScene(ctx, difficulty))

	return &App{
		cfg:          gameConfig,
		settings:     settings,
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// GameConfig 返回生效的游戏配置
func (a *App) GameConfig() *config.GameConfig {
	return a.cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（config.TPS 次每秒）
func (a *App) Update() error {
	// 窗口关闭或场景请求退出时，先结算当前对局再结束游戏循环
	if ebiten.IsWindowBeingClosed() || a.sceneManager.QuitRequested() {
		if !a.sceneManager.SaveCurrentScene() {
			log.Printf("[App] Warning: Failed to save on exit")
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.cfg.Window.Width, a.cfg.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记住选择
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.settings.SetFullscreen(!ebiten.IsFullscreen())
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}

		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.sceneManager.Update(1.0 / config.TPS)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧填充黑色，游戏画面使用线性滤波缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Window.Width, a.cfg.Window.Height
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
