package game

import "time"

// Clock 提供当前时间，测试中可替换为手动推进的时钟
type Clock interface {
	Now() time.Time
}

// systemClock 使用系统时间
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock 返回基于系统时间的时钟
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock 手动推进的时钟（用于测试和回放）
type ManualClock struct {
	now time.Time
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance 将时钟向前推进 d
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
