package components

// PositionComponent 存储实体中心点的屏幕坐标（像素）
// 靶子的位置在整个生命周期内固定不变
type PositionComponent struct {
	X float64
	Y float64
}
