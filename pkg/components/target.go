package components

// TargetComponent 靶子的半径与生长阶段
//
// 生命周期：
//   - 半径从 0 开始，每帧增加 GrowthRate
//   - 当 Radius+GrowthRate 将达到 MaxRadius 时切换为收缩阶段（只切换一次）
//   - 收缩阶段每帧减少 GrowthRate，半径降到 0 即视为漏靶
//
// GrowthRate 和 MaxRadius 在创建时由对局参数写入，靶子之间不共享可变状态。
type TargetComponent struct {
	Radius     float64 // 当前半径，始终位于 [0, MaxRadius]
	MaxRadius  float64 // 最大半径
	GrowthRate float64 // 每帧半径变化量
	Growing    bool    // true=生长阶段，false=收缩阶段
	BoxHitTest bool    // true=使用外接正方形判定，false=使用圆形判定
}

// Update 推进一帧
//
// 切换阶段的那一帧同时执行第一次收缩。
func (t *TargetComponent) Update() {
	if t.Growing && t.Radius+t.GrowthRate >= t.MaxRadius {
		t.Growing = false
	}

	if t.Growing {
		t.Radius += t.GrowthRate
	} else {
		t.Radius -= t.GrowthRate
	}

	if t.Radius < 0 {
		t.Radius = 0
	}
	if t.Radius > t.MaxRadius {
		t.Radius = t.MaxRadius
	}
}

// IsExpired 靶子是否已经完全收缩
func (t *TargetComponent) IsExpired() bool {
	return !t.Growing && t.Radius <= 0
}

// Contains 判断点 (px, py) 是否落在以 (cx, cy) 为中心的靶子内
//
// 圆形判定使用 dx²+dy² <= r²；
// 正方形判定使用边长 2r 的外接正方形，四角处会比圆形判定多出命中区域。
func (t *TargetComponent) Contains(cx, cy, px, py float64) bool {
	dx := px - cx
	dy := py - cy

	if t.BoxHitTest {
		return dx >= -t.Radius && dx <= t.Radius && dy >= -t.Radius && dy <= t.Radius
	}
	return dx*dx+dy*dy <= t.Radius*t.Radius
}
