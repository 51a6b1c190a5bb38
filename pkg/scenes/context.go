package scenes

import (
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/game"
)

// Context 场景共享的依赖
//
// 启动时由 App 创建一次，以指针传递给每个场景；场景之间不通过全局变量共享状态。
type Context struct {
	Config     *config.GameConfig     // 游戏配置（只读）
	HighScores *game.HighScoreManager // 最高成绩管理器
	Settings   *game.SettingsManager  // 偏好设置（上次难度、音效开关）
	Audio      *AudioManager          // 命中音效，nil 表示静音
	UI         *UI                    // 字体等绘制资源，测试中可为 nil
	Scenes     *SceneManager          // 场景管理器

	// SessionOptions 创建每局 Session 时附加的选项（测试中注入时钟和随机数）
	SessionOptions []game.SessionOption
}

// NewSession 使用上下文中的依赖创建一局游戏
func (c *Context) NewSession(difficulty config.Difficulty) (*game.Session, error) {
	opts := append([]game.SessionOption{game.WithHighScores(c.HighScores)}, c.SessionOptions...)
	session := game.NewSession(c.Config, opts...)
	if err := session.SetDifficulty(difficulty); err != nil {
		return nil, err
	}
	return session, nil
}
