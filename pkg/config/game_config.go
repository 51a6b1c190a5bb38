package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Difficulty 难度等级
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties 按菜单显示顺序列出所有难度
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ErrUnknownDifficulty 表示难度名称不在 easy/normal/hard 之内
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty 将字符串解析为难度等级
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// HitTestMode 命中判定方式
type HitTestMode string

const (
	// HitTestCircle 使用圆心距离判定（默认）
	HitTestCircle HitTestMode = "circle"
	// HitTestBox 使用外接正方形判定，四角处比圆形判定更宽松
	HitTestBox HitTestMode = "box"
)

// DifficultyParams 单个难度的参数
type DifficultyParams struct {
	SpawnIntervalMs int     `yaml:"spawnIntervalMs"` // 靶子生成间隔（毫秒）
	GrowthRate      float64 `yaml:"growthRate"`      // 每帧半径变化量（像素）
}

// SpawnInterval 返回生成间隔
func (p DifficultyParams) SpawnInterval() time.Duration {
	return time.Duration(p.SpawnIntervalMs) * time.Millisecond
}

// WindowConfig 窗口与状态栏配置
type WindowConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	TopBarHeight int    `yaml:"topBarHeight"`
	Title        string `yaml:"title"`
}

// TargetConfig 靶子几何配置
type TargetConfig struct {
	MaxRadius float64     `yaml:"maxRadius"`
	Padding   int         `yaml:"padding"`
	HitTest   HitTestMode `yaml:"hitTest"`
}

// SessionConfig 对局规则配置
type SessionConfig struct {
	Lives             int        `yaml:"lives"`
	DefaultDifficulty Difficulty `yaml:"defaultDifficulty"`
	HistorySize       int        `yaml:"historySize"`
}

// GameConfig 游戏配置
//
// 启动时创建一次，由顶层循环持有，并显式传递给 Session 和各场景。
//
// 配置文件位置: data/game_config.yaml
type GameConfig struct {
	Window       WindowConfig                    `yaml:"window"`
	Target       TargetConfig                    `yaml:"target"`
	Session      SessionConfig                   `yaml:"session"`
	Difficulties map[Difficulty]DifficultyParams `yaml:"difficulties"`
}

// DefaultGameConfig 返回内置默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Window: WindowConfig{
			Width:        GameWindowWidth,
			Height:       GameWindowHeight,
			TopBarHeight: TopBarHeight,
			Title:        "Aim Trainer",
		},
		Target: TargetConfig{
			MaxRadius: TargetMaxRadius,
			Padding:   TargetPadding,
			HitTest:   HitTestCircle,
		},
		Session: SessionConfig{
			Lives:             DefaultLives,
			DefaultDifficulty: DifficultyNormal,
			HistorySize:       DefaultHistorySize,
		},
		Difficulties: map[Difficulty]DifficultyParams{
			DifficultyEasy:   {SpawnIntervalMs: 600, GrowthRate: 0.15},
			DifficultyNormal: {SpawnIntervalMs: 400, GrowthRate: 0.2},
			DifficultyHard:   {SpawnIntervalMs: 300, GrowthRate: 0.25},
		},
	}
}

// Difficulty 返回指定难度的参数
func (c *GameConfig) Difficulty(level Difficulty) (DifficultyParams, error) {
	params, ok := c.Difficulties[level]
	if !ok {
		return DifficultyParams{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, level)
	}
	return params, nil
}

// PlayArea 返回靶子生成区域
func (c *GameConfig) PlayArea() PlayArea {
	return CalculatePlayArea(c.Window.Width, c.Window.Height, c.Window.TopBarHeight, c.Target.Padding)
}

// ParseGameConfig 解析 YAML 配置
//
// 未出现在 YAML 中的字段保留默认值，difficulties 下的每个难度也逐字段合并到默认参数上。
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}
	if err := mergeDifficulties(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	return cfg, nil
}

// mergeDifficulties 将 YAML 中的难度参数解码到默认参数的副本上
//
// yaml.v3 解码 map 时每个值都从零值开始，只覆盖 growthRate 会把 spawnIntervalMs 清零。
func mergeDifficulties(data []byte, cfg *GameConfig) error {
	var raw struct {
		Difficulties map[Difficulty]yaml.Node `yaml:"difficulties"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	defaults := DefaultGameConfig().Difficulties
	for level, node := range raw.Difficulties {
		params := defaults[level]
		if err := node.Decode(&params); err != nil {
			return fmt.Errorf("difficulty %q: %w", level, err)
		}
		cfg.Difficulties[level] = params
	}
	return nil
}

// LoadGameConfig 从 YAML 文件加载游戏配置
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	return ParseGameConfig(data)
}

// LoadGameConfigFS 从文件系统（通常是 embed.FS）加载游戏配置
func LoadGameConfigFS(fsys fs.FS, filePath string) (*GameConfig, error) {
	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config %s: %w", filePath, err)
	}
	return ParseGameConfig(data)
}

// ResolveGameConfig 按优先级加载配置：命令行指定的文件 > 内嵌配置 > 内置默认值
//
// 参数：
//   - overridePath: --config 指定的文件路径，为空表示不覆盖
//   - fsys: 内嵌配置所在的文件系统，可为 nil
//   - embeddedPath: fsys 中配置文件的路径
func ResolveGameConfig(overridePath string, fsys fs.FS, embeddedPath string) (*GameConfig, error) {
	if overridePath != "" {
		return LoadGameConfig(overridePath)
	}
	if fsys != nil {
		return LoadGameConfigFS(fsys, embeddedPath)
	}
	return DefaultGameConfig(), nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.TopBarHeight < 0 {
		return fmt.Errorf("window.topBarHeight must be >= 0, got %d", cfg.Window.TopBarHeight)
	}

	if cfg.Target.MaxRadius <= 0 {
		return fmt.Errorf("target.maxRadius must be > 0, got %f", cfg.Target.MaxRadius)
	}
	if cfg.Target.Padding < 0 {
		return fmt.Errorf("target.padding must be >= 0, got %d", cfg.Target.Padding)
	}
	switch cfg.Target.HitTest {
	case HitTestCircle, HitTestBox:
	default:
		return fmt.Errorf("target.hitTest must be %q or %q, got %q", HitTestCircle, HitTestBox, cfg.Target.HitTest)
	}

	// 生成区域不能为空
	area := cfg.PlayArea()
	if area.MinX > area.MaxX || area.MinY > area.MaxY {
		return fmt.Errorf("play area is empty: padding %d and top bar %d leave no room in %dx%d",
			cfg.Target.Padding, cfg.Window.TopBarHeight, cfg.Window.Width, cfg.Window.Height)
	}

	if cfg.Session.Lives < 1 {
		return fmt.Errorf("session.lives must be >= 1, got %d", cfg.Session.Lives)
	}
	if cfg.Session.HistorySize < 0 {
		return fmt.Errorf("session.historySize must be >= 0, got %d", cfg.Session.HistorySize)
	}

	for _, d := range Difficulties {
		params, ok := cfg.Difficulties[d]
		if !ok {
			return fmt.Errorf("difficulty %q is missing", d)
		}
		if params.SpawnIntervalMs <= 0 {
			return fmt.Errorf("difficulty %q: spawnIntervalMs must be > 0, got %d", d, params.SpawnIntervalMs)
		}
		if params.GrowthRate <= 0 || params.GrowthRate >= cfg.Target.MaxRadius {
			return fmt.Errorf("difficulty %q: growthRate must be in (0, maxRadius), got %f", d, params.GrowthRate)
		}
	}
	for d := range cfg.Difficulties {
		if _, err := ParseDifficulty(string(d)); err != nil {
			return err
		}
	}

	if _, ok := cfg.Difficulties[cfg.Session.DefaultDifficulty]; !ok {
		return fmt.Errorf("session.defaultDifficulty: %w: %q", ErrUnknownDifficulty, cfg.Session.DefaultDifficulty)
	}

	return nil
}
