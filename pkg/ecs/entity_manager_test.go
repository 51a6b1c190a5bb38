package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.Count() != 2 {
		t.Errorf("Expected 2 entities, got %d", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})

	// 泛型和反射版本应该看到同一个组件
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Reflection API should see component added by generic API")
	}

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find component")
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Expected (1, 2), got (%f, %f)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Should not find missing component")
	}
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should be false for missing component")
	}
	if _, ok := GetComponent[*testPositionComponent](em, EntityID(999)); ok {
		t.Error("Should not find component of unknown entity")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除（重复标记）
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	// 清理前仍然存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}

	if em.Exists(id) {
		t.Error("Entity should be removed")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Destroy list should be cleared")
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()

	var withPos []EntityID
	for i := 0; i < 50; i++ {
		id := em.CreateEntity()
		if i%3 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			continue
		}
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		withPos = append(withPos, id)
	}

	got := GetEntitiesWith1[*testPositionComponent](em)
	if len(got) != len(withPos) {
		t.Fatalf("Expected %d entities, got %d", len(withPos), len(got))
	}
	for i := range got {
		if got[i] != withPos[i] {
			t.Fatalf("Entities should be in creation order, index %d: expected %d, got %d", i, withPos[i], got[i])
		}
	}
}

func TestGetEntitiesWith2(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	got := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(got) != 1 || got[0] != id1 {
		t.Errorf("Expected only entity %d, got %v", id1, got)
	}
}

func TestClearKeepsIDCounter(t *testing.T) {
	em := NewEntityManager()
	em.CreateEntity()
	em.CreateEntity()
	em.DestroyEntity(1)

	em.Clear()

	if em.Count() != 0 {
		t.Errorf("Expected 0 entities after Clear, got %d", em.Count())
	}
	if id := em.CreateEntity(); id != 3 {
		t.Errorf("Expected next ID 3 after Clear, got %d", id)
	}
	if removed := em.RemoveMarkedEntities(); removed != 0 {
		t.Errorf("Destroy list should be empty after Clear, removed %d", removed)
	}
}
