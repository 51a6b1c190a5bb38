package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	hitToneFreq     = 880
	hitToneDuration = 50 * time.Millisecond
)

// hitSound 命中提示音，nil 表示静音
type hitSound struct {
	sampleRate beep.SampleRate
}

// newHitSound 初始化扬声器
func newHitSound() (*hitSound, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &hitSound{sampleRate: sampleRate}, nil
}

// Play 播放一次短促的正弦音
func (h *hitSound) Play() {
	if h == nil {
		return
	}
	tone, err := newHitTone(h.sampleRate, hitToneFreq)
	if err != nil {
		log.Printf("[TUI] Warning: Failed to create hit tone: %v", err)
		return
	}
	speaker.Play(tone)
}

// newHitTone 生成一段 hitToneDuration 长的正弦音
//
// 返回：
//   - beep.Streamer: 音频流
//   - error: 频率不低于采样率一半时返回错误
func newHitTone(sampleRate beep.SampleRate, freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(hitToneDuration), sine), nil
}

// Close 关闭扬声器
func (h *hitSound) Close() {
	if h == nil {
		return
	}
	speaker.Close()
}
