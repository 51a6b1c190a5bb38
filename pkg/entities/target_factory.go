package entities

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
)

// TargetParams 创建靶子所需的对局参数
// 由 Session 在设置难度时计算一次，之后每个新靶子都拷贝一份
type TargetParams struct {
	MaxRadius  float64
	GrowthRate float64
	HitTest    config.HitTestMode
}

// NewTargetParams 根据游戏配置和难度参数构造靶子参数
func NewTargetParams(cfg *config.GameConfig, difficulty config.DifficultyParams) TargetParams {
	return TargetParams{
		MaxRadius:  cfg.Target.MaxRadius,
		GrowthRate: difficulty.GrowthRate,
		HitTest:    cfg.Target.HitTest,
	}
}

// NewTargetEntity 创建一个靶子实体
// 参数:
//   - manager: EntityManager 实例
//   - x, y: 靶子中心坐标（整个生命周期内不变）
//   - params: 对局参数（最大半径、生长速度、命中判定方式）
//
// 返回: 创建的实体ID
func NewTargetEntity(manager *ecs.EntityManager, x, y float64, params TargetParams) ecs.EntityID {
	id := manager.CreateEntity()

	ecs.AddComponent(manager, id, &components.PositionComponent{
		X: x,
		Y: y,
	})

	// 半径从 0 开始生长
	ecs.AddComponent(manager, id, &components.TargetComponent{
		Radius:     0,
		MaxRadius:  params.MaxRadius,
		GrowthRate: params.GrowthRate,
		Growing:    true,
		BoxHitTest: params.HitTest == config.HitTestBox,
	})

	return id
}
