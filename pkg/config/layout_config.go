package config

// 布局配置常量
// 本文件定义了窗口尺寸、顶部状态栏和靶子的默认几何参数
// 这些值同时作为 GameConfig 的默认值（data/game_config.yaml 可覆盖）

const (
	// GameWindowWidth 是游戏逻辑屏幕宽度（像素）
	GameWindowWidth = 800

	// GameWindowHeight 是游戏逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// TopBarHeight 是顶部状态栏高度（像素）
	// 靶子不会生成在状态栏区域内
	TopBarHeight = 50

	// TargetPadding 是靶子中心距离游戏区域边缘的最小距离（像素）
	TargetPadding = 30

	// TargetMaxRadius 是靶子的最大半径（像素）
	// 达到该半径后靶子开始收缩
	TargetMaxRadius = 30.0

	// DefaultLives 是一局游戏允许的最大漏靶数
	DefaultLives = 10

	// TPS 是游戏逻辑更新频率（每秒帧数）
	TPS = 60

	// DefaultHistorySize 是保留的最近成绩条数
	DefaultHistorySize = 20
)

// PlayArea 描述靶子可以生成的矩形区域（闭区间，单位像素）
type PlayArea struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains 判断点是否位于生成区域内
func (a PlayArea) Contains(x, y float64) bool {
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// CalculatePlayArea 根据窗口尺寸、状态栏高度和边距计算靶子生成区域
//
// 参数：
//   - width, height: 游戏逻辑屏幕尺寸
//   - topBar: 顶部状态栏高度
//   - padding: 靶子中心距离边缘的最小距离
//
// 返回：
//   - PlayArea: X ∈ [padding, width-padding]，Y ∈ [padding+topBar, height-padding]
func CalculatePlayArea(width, height, topBar, padding int) PlayArea {
	return PlayArea{
		MinX: float64(padding),
		MinY: float64(padding + topBar),
		MaxX: float64(width - padding),
		MaxY: float64(height - padding),
	}
}
