package components

import (
	"math"
	"testing"
)

func newTestTarget(rate float64) *TargetComponent {
	return &TargetComponent{
		MaxRadius:  30,
		GrowthRate: rate,
		Growing:    true,
	}
}

// TestTargetRadiusStaysInRange 半径始终位于 [0, MaxRadius]，
// 生长阶段单调递增，切换后单调递减，阶段最多切换一次
func TestTargetRadiusStaysInRange(t *testing.T) {
	for _, rate := range []float64{0.15, 0.2, 0.25, 7, 29.9} {
		target := newTestTarget(rate)

		flips := 0
		prevRadius := target.Radius
		prevGrowing := target.Growing

		for frame := 0; frame < 1000 && !target.IsExpired(); frame++ {
			target.Update()

			if target.Radius < 0 || target.Radius > target.MaxRadius {
				t.Fatalf("rate=%v frame=%d: radius %f out of range", rate, frame, target.Radius)
			}

			if prevGrowing != target.Growing {
				flips++
				if target.Growing {
					t.Fatalf("rate=%v frame=%d: phase reverted to growing", rate, frame)
				}
			}

			if target.Growing && target.Radius <= prevRadius {
				t.Fatalf("rate=%v frame=%d: radius should grow, %f -> %f", rate, frame, prevRadius, target.Radius)
			}
			if !target.Growing && target.Radius >= prevRadius && prevRadius > 0 {
				t.Fatalf("rate=%v frame=%d: radius should shrink, %f -> %f", rate, frame, prevRadius, target.Radius)
			}

			prevRadius = target.Radius
			prevGrowing = target.Growing
		}

		if flips != 1 {
			t.Errorf("rate=%v: expected exactly 1 phase flip, got %d", rate, flips)
		}
		if !target.IsExpired() {
			t.Errorf("rate=%v: target should expire within 1000 frames", rate)
		}
	}
}

// TestTargetFlipFrame 切换阶段的那一帧同时开始收缩
func TestTargetFlipFrame(t *testing.T) {
	target := &TargetComponent{Radius: 29, MaxRadius: 30, GrowthRate: 1, Growing: true}

	target.Update()

	if target.Growing {
		t.Fatal("target should switch to shrinking when radius+rate reaches max")
	}
	if target.Radius != 28 {
		t.Errorf("expected radius 28 after flip frame, got %f", target.Radius)
	}

	target.Update()
	if target.Radius != 27 {
		t.Errorf("expected radius 27, got %f", target.Radius)
	}
}

// TestTargetLifetimeFrames 未被点击的靶子大约存活 2*MaxRadius/GrowthRate 帧
func TestTargetLifetimeFrames(t *testing.T) {
	target := &TargetComponent{MaxRadius: 30, GrowthRate: 1, Growing: true}

	frames := 0
	for !target.IsExpired() {
		target.Update()
		frames++
		if frames > 1000 {
			t.Fatal("target never expired")
		}
	}

	// 生长 29 帧到 29，第 30 帧切换并收缩到 28，再 28 帧收缩到 0
	if frames != 58 {
		t.Errorf("expected 58 frames, got %d", frames)
	}
	expected := 2 * target.MaxRadius / target.GrowthRate
	if math.Abs(float64(frames)-expected) > 2 {
		t.Errorf("lifetime %d too far from %f", frames, expected)
	}
}

func TestTargetContains(t *testing.T) {
	tests := []struct {
		name   string
		box    bool
		px, py float64
		want   bool
	}{
		{"circle center", false, 100, 100, true},
		{"circle edge", false, 110, 100, true},
		{"circle outside", false, 111, 100, false},
		{"circle corner", false, 109, 109, false},
		{"box corner", true, 109, 109, true},
		{"box edge", true, 90, 110, true},
		{"box outside", true, 111, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &TargetComponent{Radius: 10, MaxRadius: 30, BoxHitTest: tt.box}
			if got := target.Contains(100, 100, tt.px, tt.py); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestTargetZeroRadiusContainsOnlyCenter(t *testing.T) {
	target := &TargetComponent{MaxRadius: 30, Growing: true}

	if !target.Contains(50, 50, 50, 50) {
		t.Error("zero-radius target should contain its exact center")
	}
	if target.Contains(50, 50, 51, 50) {
		t.Error("zero-radius target should not contain other points")
	}
}
