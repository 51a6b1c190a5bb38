package components

// TimerComponent 周期计时器组件
// 用于按固定间隔触发事件（如靶子生成）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "target_spawn"
	TargetTime  float64 // 触发间隔（秒）
	CurrentTime float64 // 自上次触发以来已过时间（秒）
	IsReady     bool    // 本帧是否触发
}
