package entities

import (
	"testing"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
)

func TestNewTargetEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	hard, _ := cfg.Difficulty(config.DifficultyHard)

	id := NewTargetEntity(em, 120, 240, NewTargetParams(cfg, hard))

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("target should have PositionComponent")
	}
	if pos.X != 120 || pos.Y != 240 {
		t.Errorf("expected position (120, 240), got (%f, %f)", pos.X, pos.Y)
	}

	target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
	if !ok {
		t.Fatal("target should have TargetComponent")
	}
	if target.Radius != 0 || !target.Growing {
		t.Errorf("new target should start growing from 0, got radius=%f growing=%v", target.Radius, target.Growing)
	}
	if target.GrowthRate != 0.25 {
		t.Errorf("expected hard growth rate 0.25, got %f", target.GrowthRate)
	}
	if target.MaxRadius != config.TargetMaxRadius {
		t.Errorf("expected max radius %f, got %f", config.TargetMaxRadius, target.MaxRadius)
	}
	if target.BoxHitTest {
		t.Error("default config should use circle hit test")
	}
}

// TestTargetsDoNotShareParams 每个靶子持有自己的参数副本
func TestTargetsDoNotShareParams(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	cfg.Target.HitTest = config.HitTestBox
	easy, _ := cfg.Difficulty(config.DifficultyEasy)

	params := NewTargetParams(cfg, easy)
	id1 := NewTargetEntity(em, 100, 100, params)
	params.GrowthRate = 5
	id2 := NewTargetEntity(em, 200, 200, params)

	t1, _ := ecs.GetComponent[*components.TargetComponent](em, id1)
	t2, _ := ecs.GetComponent[*components.TargetComponent](em, id2)

	if t1.GrowthRate != 0.15 {
		t.Errorf("first target growth rate should stay 0.15, got %f", t1.GrowthRate)
	}
	if t2.GrowthRate != 5 {
		t.Errorf("second target growth rate should be 5, got %f", t2.GrowthRate)
	}
	if !t1.BoxHitTest || !t2.BoxHitTest {
		t.Error("box hit test should be copied from config")
	}
}
