package main

import (
	"flag"
	"log"

	"github.com/decker502/aimtrainer/data"
	"github.com/decker502/aimtrainer/pkg/app"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	difficulty = flag.String("difficulty", "", "默认选中的难度（easy/normal/hard）")
	configPath = flag.String("config", "", "覆盖内嵌配置的 YAML 文件路径")
)

func main() {
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Difficulty: *difficulty,
		ConfigPath: *configPath,
		DataFS:     data.FS,
		DataPath:   data.GameConfigPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	cfg := gameApp.GameConfig()
	ebiten.SetTPS(config.TPS)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时由 App.Update 结算当前对局
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
