package game

import (
	"fmt"
	"math"
)

// Speed 计算命中速度（每秒命中数）
// elapsed <= 0 时返回 0
func Speed(hits int, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(hits) / elapsed
}

// Accuracy 计算命中率（百分比）
// clicks == 0 时返回 0
func Accuracy(hits, clicks int) float64 {
	if clicks <= 0 {
		return 0
	}
	return float64(hits) / float64(clicks) * 100
}

// Round1 四舍五入保留一位小数（仅用于显示）
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatTime 将秒数格式化为 MM:SS.d
//
// 示例：FormatTime(75.36) == "01:15.3"
func FormatTime(secs float64) string {
	if secs < 0 {
		secs = 0
	}
	total := int(secs)
	tenths := int(secs*10) % 10
	return fmt.Sprintf("%02d:%02d.%d", total/60, total%60, tenths)
}
