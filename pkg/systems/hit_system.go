package systems

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/ecs"
)

// HitSystem 处理点击命中判定
type HitSystem struct {
	entityManager *ecs.EntityManager
}

// NewHitSystem 创建命中判定系统
func NewHitSystem(em *ecs.EntityManager) *HitSystem {
	return &HitSystem{
		entityManager: em,
	}
}

// Resolve 判定一次点击
//
// 一次点击最多命中一个靶子。多个靶子重叠时，最早生成的靶子优先。
// 已标记删除的靶子（本帧漏靶）不参与判定。
//
// 参数：
//   - x, y: 点击位置（屏幕坐标）
//
// 返回：
//   - ecs.EntityID: 被命中的靶子
//   - bool: 是否命中
func (s *HitSystem) Resolve(x, y float64) (ecs.EntityID, bool) {
	entities := ecs.GetEntitiesWith2[*components.TargetComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		if target.Contains(pos.X, pos.Y, x, y) {
			s.entityManager.DestroyEntity(id)
			return id, true
		}
	}

	return 0, false
}
