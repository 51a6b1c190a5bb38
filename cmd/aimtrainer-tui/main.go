// aimtrainer-tui 终端版打靶训练
//
// 与桌面版共用 game.Session 和最高成绩存储，在支持鼠标的终端中运行。
//
// 用法：
//
//	go run ./cmd/aimtrainer-tui --difficulty hard
//	go run ./cmd/aimtrainer-tui --verbose --log tui.log
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/aimtrainer/data"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/gdamore/tcell/v2"
)

var (
	// 命令行参数
	verbose    = flag.Bool("verbose", false, "将详细日志写入 --log 指定的文件")
	logPath    = flag.String("log", "aimtrainer-tui.log", "详细日志文件路径")
	difficulty = flag.String("difficulty", "", "默认选中的难度（easy/normal/hard）")
	configPath = flag.String("config", "", "覆盖内嵌配置的 YAML 文件路径")
	mute       = flag.Bool("mute", false, "不初始化音频设备")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aimtrainer-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 终端被 tcell 占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *verbose {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := config.ResolveGameConfig(*configPath, data.FS, data.GameConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load game config: %w", err)
	}

	storage := game.OpenStorage(game.DefaultAppName)
	highScores := game.NewHighScoreManager(storage, cfg.Session.HistorySize)
	settings := game.NewSettingsManager(storage)

	// 命令行参数 > 上次选择的难度 > 配置文件默认难度
	level := settings.Difficulty(cfg.Session.DefaultDifficulty)
	if *difficulty != "" {
		if level, err = config.ParseDifficulty(*difficulty); err != nil {
			return err
		}
	}

	var sound *hitSound
	if !*mute {
		// 没有音频设备时静音运行
		if sound, err = newHitSound(); err != nil {
			log.Printf("[TUI] Audio initialization failed: %v", err)
			sound = nil
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	t := newTUI(screen, cfg, highScores, settings, level)
	t.sound = sound
	t.run()
	return nil
}
