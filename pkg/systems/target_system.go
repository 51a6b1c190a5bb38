package systems

import (
	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/ecs"
)

// TargetSystem 推进所有靶子的生长/收缩
type TargetSystem struct {
	entityManager *ecs.EntityManager
}

// NewTargetSystem 创建靶子系统
func NewTargetSystem(em *ecs.EntityManager) *TargetSystem {
	return &TargetSystem{
		entityManager: em,
	}
}

// Update 推进一帧
//
// 按创建顺序更新每个靶子，半径降到 0 的靶子被标记删除。
//
// 返回：
//   - []ecs.EntityID: 本帧完全收缩（漏靶）的实体，按创建顺序
func (s *TargetSystem) Update() []ecs.EntityID {
	var expired []ecs.EntityID

	entities := ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager)
	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}

		target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if !ok {
			continue
		}

		target.Update()

		if target.IsExpired() {
			s.entityManager.DestroyEntity(id)
			expired = append(expired, id)
		}
	}

	return expired
}
