package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/aimtrainer/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScore 最高成绩记录
// Speed 和 Hits 是两个独立的历史最大值，不要求来自同一局
type HighScore struct {
	Speed float64 `yaml:"speed"` // 最高命中速度（每秒命中数）
	Hits  int     `yaml:"hits"`  // 最多命中数
}

// HistoryEntry 单局成绩
type HistoryEntry struct {
	ID         string            `yaml:"id"`         // 对局 UUID
	Difficulty config.Difficulty `yaml:"difficulty"` // 难度
	Hits       int               `yaml:"hits"`       // 命中数
	Clicks     int               `yaml:"clicks"`     // 点击数
	Misses     int               `yaml:"misses"`     // 漏靶数
	Elapsed    float64           `yaml:"elapsed"`    // 用时（秒，不含暂停）
	Speed      float64           `yaml:"speed"`      // 命中速度
	Accuracy   float64           `yaml:"accuracy"`   // 命中率（百分比）
	PlayedAt   time.Time         `yaml:"playedAt"`   // 结束时间
}

// HighScoreManager 最高成绩管理器
// 负责最高成绩和最近成绩的加载、保存和内存管理
type HighScoreManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	best         HighScore
	history      []HistoryEntry
	historySize  int
}

// DefaultAppName 默认 gdata 应用名
const DefaultAppName = "aimtrainer"

// 存储路径常量
const (
	highScoreObject   = "highscore"
	highScoreProperty = "best"
	historyProperty   = "history"
)

// OpenStorage 打开 gdata 存储
//
// 失败不是致命错误：返回 nil，调用方进入降级模式（仅内存成绩）。
//
// 参数：
//   - appName: gdata 应用名，决定存储目录
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to open storage %q: %v (scores will not persist)", appName, err)
		return nil
	}
	return manager
}

// NewHighScoreManager 创建最高成绩管理器
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式）
//   - historySize: 保留的最近成绩条数，0 表示不保留
//
// 返回：
//   - *HighScoreManager: 管理器实例；记录缺失或损坏时使用零值记录
func NewHighScoreManager(gdataManager *gdata.Manager, historySize int) *HighScoreManager {
	hm := &HighScoreManager{
		gdataManager: gdataManager,
		historySize:  historySize,
	}

	// 加载失败不是致命错误，使用零值记录
	if err := hm.Load(); err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to load high score: %v (using defaults)", err)
	}

	return hm
}

// Load 从 gdata 加载最高成绩和最近成绩
//
// 记录不存在时使用零值；记录损坏时重置为零值并返回错误
func (hm *HighScoreManager) Load() error {
	hm.best = HighScore{}
	hm.history = nil

	// 降级模式：无法持久化
	if hm.gdataManager == nil {
		return nil
	}

	if hm.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		data, err := hm.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
		if err != nil {
			return fmt.Errorf("failed to load high score: %w", err)
		}

		var loaded HighScore
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("failed to unmarshal high score: %w", err)
		}
		if loaded.Speed < 0 || loaded.Hits < 0 {
			return fmt.Errorf("invalid high score record: speed=%f hits=%d", loaded.Speed, loaded.Hits)
		}
		hm.best = loaded
	}

	if hm.gdataManager.ObjectPropExists(highScoreObject, historyProperty) {
		data, err := hm.gdataManager.LoadObjectProp(highScoreObject, historyProperty)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		var loaded []HistoryEntry
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("failed to unmarshal history: %w", err)
		}
		hm.history = hm.trimHistory(loaded)
	}

	log.Printf("[HighScoreManager] Loaded high score: speed=%.2f hits=%d (%d history entries)",
		hm.best.Speed, hm.best.Hits, len(hm.history))
	return nil
}

// Save 保存最高成绩和最近成绩到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (hm *HighScoreManager) Save() error {
	if hm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(hm.best)
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}
	if err := hm.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}

	if hm.historySize > 0 {
		data, err := yaml.Marshal(hm.history)
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		if err := hm.gdataManager.SaveObjectProp(highScoreObject, historyProperty, data); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
	}

	log.Printf("[HighScoreManager] High score saved: speed=%.2f hits=%d", hm.best.Speed, hm.best.Hits)
	return nil
}

// Best 返回当前最高成绩
func (hm *HighScoreManager) Best() HighScore {
	return hm.best
}

// Submit 提交一局的成绩
//
// 速度和命中数分别与历史最大值比较，各自独立更新。
// 注意：仅修改内存中的记录，需调用 Save() 方法持久化
//
// 返回：
//   - bool: 是否刷新了任意一项记录
func (hm *HighScoreManager) Submit(speed float64, hits int) bool {
	improved := false
	if speed > hm.best.Speed {
		hm.best.Speed = speed
		improved = true
	}
	if hits > hm.best.Hits {
		hm.best.Hits = hits
		improved = true
	}
	return improved
}

// Record 追加一条最近成绩，超出上限时丢弃最旧的记录
// 注意：仅修改内存中的记录，需调用 Save() 方法持久化
func (hm *HighScoreManager) Record(entry HistoryEntry) {
	if hm.historySize <= 0 {
		return
	}
	hm.history = hm.trimHistory(append(hm.history, entry))
}

// History 返回最近成绩（从旧到新，副本）
func (hm *HighScoreManager) History() []HistoryEntry {
	history := make([]HistoryEntry, len(hm.history))
	copy(history, hm.history)
	return history
}

// trimHistory 只保留最新的 historySize 条
func (hm *HighScoreManager) trimHistory(entries []HistoryEntry) []HistoryEntry {
	if hm.historySize <= 0 {
		return nil
	}
	if len(entries) > hm.historySize {
		entries = entries[len(entries)-hm.historySize:]
	}
	return entries
}
