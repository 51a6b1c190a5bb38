package systems

import (
	"time"

	"github.com/decker502/aimtrainer/pkg/components"
)

// SpawnTimerSystem 靶子生成计时器
//
// 计时器位于 Session 之外，由帧循环驱动；暂停期间调用方传入 paused=true，
// 计时器既不累计时间也不触发。
type SpawnTimerSystem struct {
	interval time.Duration
	timer    *components.TimerComponent
}

// NewSpawnTimerSystem 创建生成计时器
//
// 参数：
//   - interval: 生成间隔
func NewSpawnTimerSystem(interval time.Duration) *SpawnTimerSystem {
	return &SpawnTimerSystem{
		interval: interval,
		timer: &components.TimerComponent{
			Name:       "target_spawn",
			TargetTime: interval.Seconds(),
		},
	}
}

// Update 推进计时器
//
// 参数：
//   - deltaTime: 距上一帧的时间（秒）
//   - paused: 是否暂停
//
// 返回：
//   - int: 本帧应生成的靶子数量（帧间隔大于生成间隔时可能大于 1）
func (s *SpawnTimerSystem) Update(deltaTime float64, paused bool) int {
	s.timer.IsReady = false
	if paused || s.timer.TargetTime <= 0 {
		return 0
	}

	s.timer.CurrentTime += deltaTime

	fired := 0
	for s.timer.CurrentTime >= s.timer.TargetTime {
		s.timer.CurrentTime -= s.timer.TargetTime
		fired++
	}
	s.timer.IsReady = fired > 0
	return fired
}

// Reset 清零已累计的时间
func (s *SpawnTimerSystem) Reset() {
	s.timer.CurrentTime = 0
	s.timer.IsReady = false
}

// Interval 返回当前生成间隔
func (s *SpawnTimerSystem) Interval() time.Duration {
	return s.interval
}

// IsReady 本帧是否触发过
func (s *SpawnTimerSystem) IsReady() bool {
	return s.timer.IsReady
}
