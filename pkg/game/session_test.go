package game

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/aimtrainer/pkg/config"
)

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestSession 创建使用手动时钟和固定随机种子的对局
func newTestSession(t *testing.T, cfg *config.GameConfig) (*Session, *ManualClock) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	clock := NewManualClock(testStart)
	s := NewSession(cfg,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(1))),
		WithHighScores(NewHighScoreManager(nil, 5)),
	)
	return s, clock
}

// growFrames 推进 n 帧（无点击），每帧时钟前进 1/60 秒
func growFrames(s *Session, clock *ManualClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second / 60)
		s.Tick(Input{})
	}
}

func TestSessionDifficulty(t *testing.T) {
	tests := []struct {
		level        config.Difficulty
		wantInterval time.Duration
		wantRate     float64
	}{
		{config.DifficultyEasy, 600 * time.Millisecond, 0.15},
		{config.DifficultyNormal, 400 * time.Millisecond, 0.2},
		{config.DifficultyHard, 300 * time.Millisecond, 0.25},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			s, _ := newTestSession(t, nil)
			if err := s.SetDifficulty(tt.level); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Difficulty() != tt.level {
				t.Errorf("expected difficulty %s, got %s", tt.level, s.Difficulty())
			}
			if s.Params().SpawnInterval() != tt.wantInterval {
				t.Errorf("expected interval %v, got %v", tt.wantInterval, s.Params().SpawnInterval())
			}
			if s.Params().GrowthRate != tt.wantRate {
				t.Errorf("expected growth rate %v, got %v", tt.wantRate, s.Params().GrowthRate)
			}
		})
	}
}

func TestSessionDefaultDifficultyIsNormal(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if s.Difficulty() != config.DifficultyNormal {
		t.Errorf("expected normal difficulty, got %s", s.Difficulty())
	}
}

func TestSessionSetDifficultyAfterStart(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.Start()

	err := s.SetDifficulty(config.DifficultyHard)
	if !errors.Is(err, ErrSessionStarted) {
		t.Fatalf("expected ErrSessionStarted, got %v", err)
	}
	if s.Difficulty() != config.DifficultyNormal {
		t.Errorf("difficulty should not change after start, got %s", s.Difficulty())
	}
}

func TestSessionSetUnknownDifficulty(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if err := s.SetDifficulty("insane"); !errors.Is(err, config.ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestSessionStartAssignsID(t *testing.T) {
	s, _ := newTestSession(t, nil)
	if s.ID() != "" || s.IsStarted() {
		t.Fatal("new session should not be started")
	}

	s.Start()
	id := s.ID()
	if id == "" {
		t.Fatal("started session should have an ID")
	}

	s.Start()
	if s.ID() != id {
		t.Error("Start should be idempotent")
	}
}

func TestSpawnTargetWithinPlayArea(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s, _ := newTestSession(t, cfg)
	area := cfg.PlayArea()

	for i := 0; i < 500; i++ {
		if _, ok := s.SpawnTarget(); !ok {
			t.Fatal("spawn should succeed")
		}
	}

	state := s.Snapshot()
	if len(state.Targets) != 500 {
		t.Fatalf("expected 500 targets, got %d", len(state.Targets))
	}
	for _, target := range state.Targets {
		if !area.Contains(target.X, target.Y) {
			t.Fatalf("target (%f, %f) outside play area %+v", target.X, target.Y, area)
		}
		if target.Y < float64(cfg.Window.TopBarHeight) {
			t.Fatalf("target (%f, %f) under the top bar", target.X, target.Y)
		}
		if target.Radius != 0 {
			t.Fatalf("new target should have radius 0, got %f", target.Radius)
		}
	}
}

// TestTickHitIncrementsOnce 命中时命中数和点击数各加一，与存活靶子数量无关
func TestTickHitIncrementsOnce(t *testing.T) {
	s, clock := newTestSession(t, nil)

	s.SpawnTargetAt(100, 100)
	s.SpawnTargetAt(400, 300)
	s.SpawnTargetAt(700, 500)
	growFrames(s, clock, 20)

	s.Tick(Input{X: 400, Y: 300, Click: true})

	if s.Hits() != 1 {
		t.Errorf("expected 1 hit, got %d", s.Hits())
	}
	if s.Clicks() != 1 {
		t.Errorf("expected 1 click, got %d", s.Clicks())
	}
	if s.TargetCount() != 2 {
		t.Errorf("expected 2 targets left, got %d", s.TargetCount())
	}
}

// TestTickOverlappingTargetsSingleHit 一次点击只命中一个靶子（最早生成的）
func TestTickOverlappingTargetsSingleHit(t *testing.T) {
	s, clock := newTestSession(t, nil)

	first, _ := s.SpawnTargetAt(300, 300)
	growFrames(s, clock, 5)
	s.SpawnTargetAt(302, 300)
	growFrames(s, clock, 20)

	s.Tick(Input{X: 301, Y: 300, Click: true})

	if s.Hits() != 1 || s.Clicks() != 1 {
		t.Fatalf("expected 1 hit / 1 click, got %d / %d", s.Hits(), s.Clicks())
	}
	if s.TargetCount() != 1 {
		t.Fatalf("expected 1 target left, got %d", s.TargetCount())
	}
	if s.entityManager.Exists(first) {
		t.Error("oldest overlapping target should be the one removed")
	}
}

func TestTickMissedClick(t *testing.T) {
	s, clock := newTestSession(t, nil)

	s.SpawnTargetAt(100, 100)
	growFrames(s, clock, 20)

	s.Tick(Input{X: 600, Y: 400, Click: true})

	if s.Hits() != 0 {
		t.Errorf("expected 0 hits, got %d", s.Hits())
	}
	if s.Clicks() != 1 {
		t.Errorf("expected 1 click, got %d", s.Clicks())
	}
	if s.TargetCount() != 1 {
		t.Errorf("target should survive a missed click, got %d targets", s.TargetCount())
	}
}

// TestTickWithoutClick 无点击时点击数不变
func TestTickWithoutClick(t *testing.T) {
	s, clock := newTestSession(t, nil)

	for i := 0; i < 5; i++ {
		s.SpawnTarget()
	}
	growFrames(s, clock, 400)

	if s.Clicks() != 0 {
		t.Errorf("expected 0 clicks, got %d", s.Clicks())
	}
	if s.Hits() != 0 {
		t.Errorf("expected 0 hits, got %d", s.Hits())
	}
	if s.Misses() != 5 {
		t.Errorf("expected all 5 targets to be missed, got %d", s.Misses())
	}
}

// TestIsOverTransition 漏靶数从 lives-1 变为 lives 时结束，之前不会结束
func TestIsOverTransition(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s, clock := newTestSession(t, cfg)
	lives := cfg.Session.Lives

	for i := 0; i < lives; i++ {
		if s.IsOver() {
			t.Fatalf("session over too early after %d misses", s.Misses())
		}
		s.SpawnTargetAt(400, 300)

		for s.Misses() == i {
			clock.Advance(time.Second / 60)
			s.Tick(Input{})
		}

		if s.Misses() != i+1 {
			t.Fatalf("expected %d misses, got %d", i+1, s.Misses())
		}
		if i+1 < lives && s.IsOver() {
			t.Fatalf("session over at %d misses, limit is %d", s.Misses(), lives)
		}
	}

	if !s.IsOver() {
		t.Fatal("session should be over")
	}
	if s.Hits() != 0 {
		t.Errorf("expected 0 hits, got %d", s.Hits())
	}
	if s.LivesLeft() != 0 {
		t.Errorf("expected 0 lives left, got %d", s.LivesLeft())
	}
}

// TestMissesCappedAtLives 同一帧多个靶子消失时漏靶数不超过生命数
func TestMissesCappedAtLives(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Session.Lives = 3
	s, clock := newTestSession(t, cfg)

	for i := 0; i < 5; i++ {
		s.SpawnTargetAt(100+float64(i)*100, 300)
	}
	growFrames(s, clock, 400)

	if s.Misses() != 3 {
		t.Errorf("expected misses capped at 3, got %d", s.Misses())
	}
	if !s.IsOver() {
		t.Error("session should be over")
	}
}

func TestPauseFreezesSession(t *testing.T) {
	s, clock := newTestSession(t, nil)

	s.SpawnTargetAt(400, 300)
	growFrames(s, clock, 10)
	before := s.Snapshot()

	s.TogglePause()
	if !s.IsPaused() {
		t.Fatal("session should be paused")
	}

	for i := 0; i < 120; i++ {
		clock.Advance(time.Second / 60)
		s.Tick(Input{X: 400, Y: 300, Click: true})
	}
	if _, ok := s.SpawnTarget(); ok {
		t.Error("spawning should be ignored while paused")
	}

	after := s.Snapshot()
	if after.Elapsed != before.Elapsed {
		t.Errorf("elapsed should not advance while paused: %v -> %v", before.Elapsed, after.Elapsed)
	}
	if after.Clicks != 0 || after.Hits != 0 {
		t.Errorf("counters should not change while paused, got hits=%d clicks=%d", after.Hits, after.Clicks)
	}
	if len(after.Targets) != 1 || after.Targets[0].Radius != before.Targets[0].Radius {
		t.Errorf("targets should not change while paused")
	}
	if !after.Paused {
		t.Error("snapshot should report paused")
	}

	s.TogglePause()
	clock.Advance(time.Second)
	if got, want := s.Elapsed(), before.Elapsed+1; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected elapsed %v after resume, got %v", want, got)
	}
}

func TestElapsedStopsWhenOver(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Session.Lives = 1
	s, clock := newTestSession(t, cfg)

	s.SpawnTargetAt(400, 300)
	for !s.IsOver() {
		clock.Advance(time.Second / 60)
		s.Tick(Input{})
	}
	final := s.Elapsed()

	clock.Advance(10 * time.Second)
	if s.Elapsed() != final {
		t.Errorf("elapsed should freeze when over: %v -> %v", final, s.Elapsed())
	}

	// 结束后 Tick 不再改变状态
	s.Tick(Input{X: 1, Y: 1, Click: true})
	if s.Clicks() != 0 {
		t.Errorf("clicks should not change after session is over, got %d", s.Clicks())
	}
}

func TestElapsedBeforeStart(t *testing.T) {
	s, clock := newTestSession(t, nil)
	clock.Advance(time.Minute)
	if s.Elapsed() != 0 {
		t.Errorf("elapsed should be 0 before start, got %v", s.Elapsed())
	}
}

// TestHighScoreScenario 5 次命中用时 2 秒 -> {2.5, 5}，之后更差的成绩不会降低记录
func TestHighScoreScenario(t *testing.T) {
	hm := NewHighScoreManager(nil, 5)
	if hm.Best() != (HighScore{}) {
		t.Fatalf("expected zero record, got %+v", hm.Best())
	}

	clock := NewManualClock(testStart)
	s := NewSession(config.DefaultGameConfig(), WithClock(clock), WithHighScores(hm))
	s.Start()

	for i := 0; i < 5; i++ {
		s.SpawnTargetAt(400, 300)
		clock.Advance(400 * time.Millisecond)
		s.Tick(Input{X: 400, Y: 300, Click: true})
	}
	if s.Hits() != 5 {
		t.Fatalf("expected 5 hits, got %d", s.Hits())
	}
	if s.Elapsed() != 2.0 {
		t.Fatalf("expected elapsed 2.0, got %v", s.Elapsed())
	}

	improved, err := s.UpdateHighScore(s.Elapsed())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !improved {
		t.Error("first session should improve the record")
	}
	if got := hm.Best(); got != (HighScore{Speed: 2.5, Hits: 5}) {
		t.Errorf("expected {2.5 5}, got %+v", got)
	}

	// 更差的一局
	s2 := NewSession(config.DefaultGameConfig(), WithClock(clock), WithHighScores(hm))
	s2.Start()
	s2.SpawnTargetAt(400, 300)
	clock.Advance(time.Second)
	s2.Tick(Input{X: 400, Y: 300, Click: true})

	improved, _ = s2.UpdateHighScore(s2.Elapsed())
	if improved {
		t.Error("worse session should not improve the record")
	}
	if got := hm.Best(); got != (HighScore{Speed: 2.5, Hits: 5}) {
		t.Errorf("record should stay {2.5 5}, got %+v", got)
	}
}

// TestHighScoreIndependentMaxima 速度和命中数分别取最大值
func TestHighScoreIndependentMaxima(t *testing.T) {
	hm := NewHighScoreManager(nil, 0)
	hm.Submit(3.0, 4)
	hm.Submit(1.0, 10)

	if got := hm.Best(); got != (HighScore{Speed: 3.0, Hits: 10}) {
		t.Errorf("expected {3 10}, got %+v", got)
	}
}

func TestUpdateHighScoreZeroElapsed(t *testing.T) {
	hm := NewHighScoreManager(nil, 0)
	s := NewSession(config.DefaultGameConfig(), WithHighScores(hm))

	if _, err := s.UpdateHighScore(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hm.Best().Speed != 0 {
		t.Errorf("speed should be 0 for zero elapsed, got %v", hm.Best().Speed)
	}
}

func TestFinish(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Session.Lives = 1
	s, clock := newTestSession(t, cfg)

	s.SpawnTargetAt(100, 100)
	s.SpawnTargetAt(500, 500)
	growFrames(s, clock, 30)
	s.Tick(Input{X: 100, Y: 100, Click: true})
	s.Tick(Input{X: 10, Y: 10, Click: true})
	for !s.IsOver() {
		clock.Advance(time.Second / 60)
		s.Tick(Input{})
	}

	result := s.Finish()

	if result.ID != s.ID() || result.ID == "" {
		t.Errorf("result should carry the session ID, got %q", result.ID)
	}
	if result.Hits != 1 || result.Clicks != 2 || result.Misses != 1 {
		t.Errorf("unexpected counters %+v", result)
	}
	if result.Accuracy != 50 {
		t.Errorf("expected accuracy 50, got %v", result.Accuracy)
	}
	if result.Speed != Speed(1, result.Elapsed) {
		t.Errorf("unexpected speed %v", result.Speed)
	}
	if !result.NewRecord || result.HighScore.Hits != 1 {
		t.Errorf("first result should set a record, got %+v", result.HighScore)
	}

	history := s.highScores.History()
	if len(history) != 1 || history[0].ID != result.ID {
		t.Fatalf("expected result recorded in history, got %+v", history)
	}

	// 重复结算返回同一结果，不会重复记录
	again := s.Finish()
	if again != result {
		t.Error("Finish should be idempotent")
	}
	if len(s.highScores.History()) != 1 {
		t.Error("Finish should record history once")
	}
}
