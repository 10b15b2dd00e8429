package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SoundID 音效标识
type SoundID string

const (
	SoundPop     SoundID = "pop"      // 点中普通气泡
	SoundPoison  SoundID = "poison"   // 点中毒气泡
	SoundLevelUp SoundID = "level_up" // 升级
	SoundReward  SoundID = "reward"   // 获得奖励
	SoundClick   SoundID = "click"    // 按钮点击
)

// Waveform 波形类型
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
)

// ToneSpec 一个音符的合成参数
type ToneSpec struct {
	Frequency    float64  // 起始频率（Hz）
	EndFrequency float64  // 结束频率（Hz），0 表示不滑音
	Duration     float64  // 时长（秒）
	Volume       float64  // 音量 0.0 ~ 1.0
	Wave         Waveform // 波形
}

// soundBank 每个音效由若干音符顺序拼接
var soundBank = map[SoundID][]ToneSpec{
	SoundPop: {
		{Frequency: 660, EndFrequency: 1320, Duration: 0.08, Volume: 0.5, Wave: WaveSine},
	},
	SoundPoison: {
		{Frequency: 220, EndFrequency: 110, Duration: 0.35, Volume: 0.35, Wave: WaveSquare},
	},
	SoundLevelUp: {
		{Frequency: 523.25, Duration: 0.09, Volume: 0.45, Wave: WaveTriangle},
		{Frequency: 659.25, Duration: 0.09, Volume: 0.45, Wave: WaveTriangle},
		{Frequency: 783.99, Duration: 0.16, Volume: 0.45, Wave: WaveTriangle},
	},
	SoundReward: {
		{Frequency: 1046.5, EndFrequency: 1568, Duration: 0.15, Volume: 0.35, Wave: WaveSine},
	},
	SoundClick: {
		{Frequency: 880, Duration: 0.03, Volume: 0.3, Wave: WaveSine},
	},
}

// attackDuration 起音时长
const attackDuration = 5 * time.Millisecond

// SoundIDs 返回所有已定义的音效
func SoundIDs() []SoundID {
	return []SoundID{SoundPop, SoundPoison, SoundLevelUp, SoundReward, SoundClick}
}

// NewSoundStreamer 返回指定音效的 beep 音频流（各音符顺序拼接），未知音效返回 nil
// 终端前端直接交给 speaker 播放，ebiten 前端通过 SynthesizeSound 转成 PCM
func NewSoundStreamer(id SoundID, sampleRate beep.SampleRate) beep.Streamer {
	tones, ok := soundBank[id]
	if !ok {
		return nil
	}
	notes := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		notes = append(notes, NewToneStreamer(tone, sampleRate))
	}
	return beep.Seq(notes...)
}

// NewToneStreamer 单个音符：振荡器 → 包络 → 音量
func NewToneStreamer(tone ToneSpec, sampleRate beep.SampleRate) beep.Streamer {
	samples := int(tone.Duration * float64(sampleRate))
	if samples < 0 {
		samples = 0
	}
	endFreq := tone.EndFrequency
	if endFreq <= 0 {
		endFreq = tone.Frequency
	}

	osc := &oscillator{
		startFreq: tone.Frequency,
		endFreq:   endFreq,
		total:     samples,
		wave:      tone.Wave,
		rate:      sampleRate,
	}
	shaped := &envelope{
		streamer: osc,
		total:    samples,
		attack:   sampleRate.N(attackDuration),
	}
	return &effects.Gain{Streamer: shaped, Gain: tone.Volume - 1}
}

// SynthesizeSound 合成指定音效的 PCM 数据（16 位有符号小端、双声道）
// 未知音效返回 nil
func SynthesizeSound(id SoundID, sampleRate int) []byte {
	s := NewSoundStreamer(id, beep.SampleRate(sampleRate))
	if s == nil {
		return nil
	}
	return drainPCM(s)
}

// SynthesizeTone 合成单个音符
// 返回 16 位有符号小端双声道 PCM，首尾采样带包络，不会产生爆音
func SynthesizeTone(tone ToneSpec, sampleRate int) []byte {
	return drainPCM(NewToneStreamer(tone, beep.SampleRate(sampleRate)))
}

// drainPCM 读完音频流并打包为 audio.Context 使用的 16 位小端双声道 PCM
func drainPCM(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			var sample [4]byte
			binary.LittleEndian.PutUint16(sample[0:], uint16(toInt16(frame[0])))
			binary.LittleEndian.PutUint16(sample[2:], uint16(toInt16(frame[1])))
			out = append(out, sample[:]...)
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * math.MaxInt16)
}

// oscillator 波形振荡器，频率在音符时长内线性滑向 endFreq
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64 // 0 ~ 1
	position  int
	total     int
	wave      Waveform
	rate      beep.SampleRate
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		val := waveValue(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.total)
		freq := o.startFreq + (o.endFreq-o.startFreq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveValue 返回相位处的波形值（-1 ~ 1）
func waveValue(w Waveform, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 2 / math.Pi * math.Asin(math.Sin(2*math.Pi*phase))
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope 线性起音 + 后 30% 线性释放，最后一个采样为 0
type envelope struct {
	streamer beep.Streamer
	position int
	total    int
	attack   int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := e.gainAt(e.position)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func (e *envelope) gainAt(i int) float64 {
	if e.attack > 0 && i < e.attack {
		return float64(i) / float64(e.attack)
	}
	releaseStart := int(float64(e.total) * 0.7)
	if i >= releaseStart {
		remaining := e.total - 1 - releaseStart
		if remaining <= 0 {
			return 0
		}
		return float64(e.total-1-i) / float64(remaining)
	}
	return 1
}
