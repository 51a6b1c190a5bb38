// Package data 内嵌默认游戏配置，桌面端、终端和移动端共用
package data

import "embed"

// GameConfigPath 内嵌配置文件在 FS 中的路径
const GameConfigPath = "game_config.yaml"

//go:embed game_config.yaml
var FS embed.FS
