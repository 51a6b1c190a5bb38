package scenes

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/decker502/aimtrainer/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000

	hitToneFreq     = 880
	hitToneDuration = 50 * time.Millisecond
)

// AudioManager 播放命中音效
//
// 音效在创建时用 beep 生成一次，每次命中用同一段 PCM 创建新的播放器。
// 开关和音量从 SettingsManager 读取。nil 表示静音。
type AudioManager struct {
	context  *audio.Context
	settings *game.SettingsManager
	hitPCM   []byte
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - context: ebiten 音频上下文（采样率须为 AudioSampleRate）
//   - settings: 设置管理器（可为 nil，此时总是播放）
func NewAudioManager(context *audio.Context, settings *game.SettingsManager) *AudioManager {
	pcm, err := sineTonePCM(AudioSampleRate, hitToneFreq, hitToneDuration)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to generate hit sound: %v (sound disabled)", err)
	}
	return &AudioManager{
		context:  context,
		settings: settings,
		hitPCM:   pcm,
	}
}

// PlayHit 播放命中音效
//
// 返回：
//   - bool: 是否播放
func (am *AudioManager) PlayHit() bool {
	if am == nil || am.context == nil || len(am.hitPCM) == 0 {
		return false
	}

	volume := 1.0
	if am.settings != nil {
		settings := am.settings.GetSettings()
		if !settings.SoundEnabled {
			return false
		}
		volume = settings.SoundVolume
	}

	player := am.context.NewPlayerFromBytes(am.hitPCM)
	player.SetVolume(volume)
	player.Play()
	return true
}

// sineTonePCM 用 beep 生成正弦波（音量减半），转换为 ebiten 使用的 16 位小端双声道 PCM，末尾线性淡出
func sineTonePCM(sampleRate int, freq float64, d time.Duration) ([]byte, error) {
	sr := beep.SampleRate(sampleRate)
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create sine tone: %w", err)
	}

	total := sr.N(d)
	streamer := &effects.Volume{Streamer: beep.Take(total, sine), Base: 2, Volume: -1}

	samples := make([][2]float64, total)
	filled := 0
	for filled < total {
		n, ok := streamer.Stream(samples[filled:])
		filled += n
		if !ok {
			break
		}
	}

	buf := make([]byte, filled*4)
	for i := 0; i < filled; i++ {
		fade := 1 - float64(i)/float64(filled)
		left := uint16(int16(clampSample(samples[i][0]*fade) * math.MaxInt16))
		right := uint16(int16(clampSample(samples[i][1]*fade) * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], left)
		binary.LittleEndian.PutUint16(buf[i*4+2:], right)
	}

	return buf, nil
}

func clampSample(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
