package scenes

import (
	"log"

	"github.com/decker502/bubblepop/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理所有音效的播放
//   - 与 SettingsManager 联动（音效开关、音量）
//   - 音效在内存中合成，首次播放时缓存播放器
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager
	soundPlayers    map[game.SoundID]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（无声模式，例如无头运行）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		settingsManager: sm,
		soundPlayers:    make(map[game.SoundID]*audio.Player),
	}
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放（音效关闭或无音频上下文时为 false）
func (am *AudioManager) PlaySound(id game.SoundID) bool {
	if !am.IsSoundEnabled() {
		return false
	}

	player := am.getSoundPlayer(id)
	if player == nil {
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", id, err)
	}
	player.Play()
	return true
}

// IsSoundEnabled 音效是否可以播放
func (am *AudioManager) IsSoundEnabled() bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	return true
}

// SetSoundVolume 设置音效音量，立即应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for _, player := range am.soundPlayers {
		player.SetVolume(am.GetSoundVolume())
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return game.DefaultSettings().SoundVolume
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(id game.SoundID) *audio.Player {
	if player, exists := am.soundPlayers[id]; exists {
		return player
	}

	pcm := game.SynthesizeSound(id, am.context.SampleRate())
	if pcm == nil {
		log.Printf("[AudioManager] Warning: Sound not found: %s", id)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[id] = player
	return player
}

// PreloadSounds 预合成所有音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds() {
	if am.context == nil {
		return
	}
	for _, id := range game.SoundIDs() {
		am.getSoundPlayer(id)
	}
	log.Printf("[AudioManager] Preloaded %d sounds", len(am.soundPlayers))
}
