package game

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/aimtrainer/pkg/components"
	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/decker502/aimtrainer/pkg/ecs"
	"github.com/decker502/aimtrainer/pkg/entities"
	"github.com/decker502/aimtrainer/pkg/systems"
	"github.com/google/uuid"
)

// ErrSessionStarted 表示对局开始后不能再修改难度
var ErrSessionStarted = errors.New("session already started")

// Input 单帧输入快照（由前端采集）
type Input struct {
	X, Y  float64 // 指针位置（游戏逻辑坐标）
	Click bool    // 本帧是否发生点击
}

// TargetView 渲染一个靶子所需的数据
type TargetView struct {
	X, Y   float64
	Radius float64
}

// FrameState 渲染一帧所需的对局状态
type FrameState struct {
	Targets    []TargetView
	Elapsed    float64
	Hits       int
	Clicks     int
	Misses     int
	LivesLeft  int
	Paused     bool
	Over       bool
	Speed      float64
	Difficulty config.Difficulty
}

// Result 一局结束时的成绩
type Result struct {
	ID         string
	Difficulty config.Difficulty
	Elapsed    float64
	Hits       int
	Clicks     int
	Misses     int
	Speed      float64
	Accuracy   float64
	HighScore  HighScore
	NewRecord  bool
}

// SessionOption 配置 Session 的可选参数
type SessionOption func(*Session)

// WithClock 指定时钟（默认使用系统时间）
func WithClock(clock Clock) SessionOption {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithRand 指定随机数生成器（默认使用当前时间作为种子）
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithHighScores 指定最高成绩管理器（默认使用不持久化的内存管理器）
func WithHighScores(hm *HighScoreManager) SessionOption {
	return func(s *Session) {
		s.highScores = hm
	}
}

// Session 一局游戏的控制器
//
// 职责：
//   - 持有存活的靶子（ECS 实体）
//   - 统计命中、点击、漏靶
//   - 计时（暂停期间不计时）
//   - 结束时比较并保存最高成绩
//
// 架构说明：
//   - 单线程使用，由帧循环每帧调用 Tick
//   - 生成计时器在 Session 之外，前端在计时器触发且未暂停时调用 SpawnTarget
type Session struct {
	cfg        *config.GameConfig
	clock      Clock
	rng        *rand.Rand
	highScores *HighScoreManager

	entityManager *ecs.EntityManager
	targetSystem  *systems.TargetSystem
	hitSystem     *systems.HitSystem

	difficulty   config.Difficulty
	params       config.DifficultyParams
	targetParams entities.TargetParams
	area         config.PlayArea

	id          string
	started     bool
	startTime   time.Time
	endTime     time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration
	over        bool

	hits   int
	clicks int
	misses int

	result *Result
}

// NewSession 创建一局游戏（尚未开始，难度为配置中的默认难度）
//
// 参数：
//   - cfg: 游戏配置，创建后只读
//   - opts: 可选参数（时钟、随机数、最高成绩管理器）
func NewSession(cfg *config.GameConfig, opts ...SessionOption) *Session {
	em := ecs.NewEntityManager()
	s := &Session{
		cfg:           cfg,
		entityManager: em,
		targetSystem:  systems.NewTargetSystem(em),
		hitSystem:     systems.NewHitSystem(em),
		area:          cfg.PlayArea(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.clock == nil {
		s.clock = SystemClock()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.highScores == nil {
		s.highScores = NewHighScoreManager(nil, 0)
	}

	if err := s.SetDifficulty(cfg.Session.DefaultDifficulty); err != nil {
		// 配置经过校验，默认难度一定存在
		log.Printf("[Session] Warning: %v, falling back to %s", err, config.DifficultyNormal)
		s.difficulty = config.DifficultyNormal
		s.params = config.DefaultGameConfig().Difficulties[config.DifficultyNormal]
		s.targetParams = entities.NewTargetParams(cfg, s.params)
	}

	return s
}

// SetDifficulty 设置难度
//
// 必须在对局开始前调用，开始后返回 ErrSessionStarted
func (s *Session) SetDifficulty(level config.Difficulty) error {
	if s.started {
		return fmt.Errorf("cannot set difficulty to %s: %w", level, ErrSessionStarted)
	}

	params, err := s.cfg.Difficulty(level)
	if err != nil {
		return err
	}

	s.difficulty = level
	s.params = params
	s.targetParams = entities.NewTargetParams(s.cfg, params)
	return nil
}

// Difficulty 返回当前难度
func (s *Session) Difficulty() config.Difficulty {
	return s.difficulty
}

// Params 返回当前难度参数（生成间隔、生长速度）
func (s *Session) Params() config.DifficultyParams {
	return s.params
}

// Start 开始计时，重复调用无效果
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.startTime = s.clock.Now()
	s.id = uuid.NewString()
	log.Printf("[Session] Started %s (difficulty=%s, interval=%v, growth=%.2f)",
		s.id, s.difficulty, s.params.SpawnInterval(), s.params.GrowthRate)
}

// ID 返回对局 UUID（开始前为空）
func (s *Session) ID() string {
	return s.id
}

// IsStarted 对局是否已经开始
func (s *Session) IsStarted() bool {
	return s.started
}

// SpawnTarget 在生成区域内随机位置创建一个靶子
//
// 暂停或对局结束时不生成。
//
// 返回：
//   - ecs.EntityID: 新靶子
//   - bool: 是否生成
func (s *Session) SpawnTarget() (ecs.EntityID, bool) {
	s.Start()
	if s.paused || s.over {
		return 0, false
	}

	x := randomInRange(s.rng, s.area.MinX, s.area.MaxX)
	y := randomInRange(s.rng, s.area.MinY, s.area.MaxY)
	return entities.NewTargetEntity(s.entityManager, x, y, s.targetParams), true
}

// SpawnTargetAt 在指定位置创建靶子（用于回放和测试）
func (s *Session) SpawnTargetAt(x, y float64) (ecs.EntityID, bool) {
	s.Start()
	if s.paused || s.over {
		return 0, false
	}
	return entities.NewTargetEntity(s.entityManager, x, y, s.targetParams), true
}

// randomInRange 返回 [min, max] 内的随机整数坐标
func randomInRange(rng *rand.Rand, min, max float64) float64 {
	lo, hi := int(min), int(max)
	if hi <= lo {
		return float64(lo)
	}
	return float64(lo + rng.Intn(hi-lo+1))
}

// Tick 推进一帧
//
// 暂停或结束时只返回用时，不改变任何状态。否则：
//   - 每个靶子生长/收缩一次，完全收缩的靶子移除并计一次漏靶
//   - 有点击时，最早生成且包含点击位置的靶子被移除并计一次命中
//   - 有点击时点击数加一（无论是否命中）
//
// 返回：
//   - float64: 对局用时（秒，不含暂停）
func (s *Session) Tick(in Input) float64 {
	s.Start()
	if s.paused || s.over {
		return s.Elapsed()
	}

	expired := s.targetSystem.Update()
	for range expired {
		// 同一帧多个靶子消失时，漏靶数不超过生命数
		if s.misses < s.cfg.Session.Lives {
			s.misses++
		}
	}

	if in.Click {
		if _, ok := s.hitSystem.Resolve(in.X, in.Y); ok {
			s.hits++
		}
		s.clicks++
	}

	s.entityManager.RemoveMarkedEntities()

	if s.misses >= s.cfg.Session.Lives {
		s.over = true
		s.endTime = s.clock.Now()
		log.Printf("[Session] Over %s: hits=%d clicks=%d misses=%d", s.id, s.hits, s.clicks, s.misses)
	}

	return s.Elapsed()
}

// IsOver 漏靶数是否达到生命数
func (s *Session) IsOver() bool {
	return s.misses >= s.cfg.Session.Lives
}

// TogglePause 切换暂停状态，结束后无效果
func (s *Session) TogglePause() {
	if s.over {
		return
	}

	now := s.clock.Now()
	if s.paused {
		s.pausedTotal += now.Sub(s.pausedAt)
		s.paused = false
		log.Printf("[Session] Resumed")
		return
	}

	s.paused = true
	s.pausedAt = now
	log.Printf("[Session] Paused")
}

// IsPaused 是否暂停
func (s *Session) IsPaused() bool {
	return s.paused
}

// Elapsed 返回对局用时（秒）
//
// 暂停期间和结束后时间停止增长；开始前为 0。
func (s *Session) Elapsed() float64 {
	if !s.started {
		return 0
	}

	end := s.clock.Now()
	switch {
	case s.over:
		end = s.endTime
	case s.paused:
		end = s.pausedAt
	}

	elapsed := end.Sub(s.startTime) - s.pausedTotal
	if elapsed < 0 {
		return 0
	}
	return elapsed.Seconds()
}

// Hits 返回命中数
func (s *Session) Hits() int {
	return s.hits
}

// Clicks 返回点击数
func (s *Session) Clicks() int {
	return s.clicks
}

// Misses 返回漏靶数
func (s *Session) Misses() int {
	return s.misses
}

// LivesLeft 返回剩余生命
func (s *Session) LivesLeft() int {
	return s.cfg.Session.Lives - s.misses
}

// TargetCount 返回存活靶子数量
func (s *Session) TargetCount() int {
	return s.entityManager.Count()
}

// Snapshot 返回渲染当前帧所需的状态
func (s *Session) Snapshot() FrameState {
	elapsed := s.Elapsed()
	state := FrameState{
		Elapsed:    elapsed,
		Hits:       s.hits,
		Clicks:     s.clicks,
		Misses:     s.misses,
		LivesLeft:  s.LivesLeft(),
		Paused:     s.paused,
		Over:       s.over,
		Speed:      Speed(s.hits, elapsed),
		Difficulty: s.difficulty,
	}

	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.PositionComponent](s.entityManager)
	state.Targets = make([]TargetView, 0, len(ids))
	for _, id := range ids {
		target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		state.Targets = append(state.Targets, TargetView{X: pos.X, Y: pos.Y, Radius: target.Radius})
	}

	return state
}

// HighScore 返回当前最高成绩
func (s *Session) HighScore() HighScore {
	return s.highScores.Best()
}

// UpdateHighScore 用本局成绩刷新最高成绩并保存
//
// speed = hits / elapsed（elapsed <= 0 时为 0），速度和命中数分别取最大值。
//
// 返回：
//   - bool: 是否刷新了任意一项记录
//   - error: 保存失败时返回错误（内存中的记录已更新）
func (s *Session) UpdateHighScore(elapsed float64) (bool, error) {
	improved := s.highScores.Submit(Speed(s.hits, elapsed), s.hits)
	if err := s.highScores.Save(); err != nil {
		return improved, err
	}
	return improved, nil
}

// Finish 结算本局：刷新最高成绩、记录最近成绩并保存
//
// 重复调用返回第一次的结果。保存失败只记录日志。
func (s *Session) Finish() Result {
	if s.result != nil {
		return *s.result
	}

	elapsed := s.Elapsed()
	speed := Speed(s.hits, elapsed)
	accuracy := Accuracy(s.hits, s.clicks)

	s.highScores.Record(HistoryEntry{
		ID:         s.id,
		Difficulty: s.difficulty,
		Hits:       s.hits,
		Clicks:     s.clicks,
		Misses:     s.misses,
		Elapsed:    elapsed,
		Speed:      speed,
		Accuracy:   accuracy,
		PlayedAt:   s.clock.Now(),
	})

	improved, err := s.UpdateHighScore(elapsed)
	if err != nil {
		log.Printf("[Session] Warning: Failed to save high score: %v", err)
	}

	s.result = &Result{
		ID:         s.id,
		Difficulty: s.difficulty,
		Elapsed:    elapsed,
		Hits:       s.hits,
		Clicks:     s.clicks,
		Misses:     s.misses,
		Speed:      speed,
		Accuracy:   accuracy,
		HighScore:  s.highScores.Best(),
		NewRecord:  improved,
	}
	return *s.result
}
