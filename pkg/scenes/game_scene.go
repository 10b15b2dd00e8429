package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/simulation"
	"github.com/decker502/bubblepop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	// 逻辑屏幕尺寸
	ScreenWidth  = 800
	ScreenHeight = 600

	// Bubble Field (气泡区域) - 520px 对应 100%，与 pixelsPerPercent=5.2 一致
	FieldX      = 140
	FieldY      = 60
	FieldWidth  = 520
	FieldHeight = 520

	// Play/Stop 按钮
	ButtonX      = 16
	ButtonY      = 60
	ButtonWidth  = 108
	ButtonHeight = 40

	// 左侧计分栏，位于按钮下方
	StatsX       = 16
	StatsY       = 130
	StatsSpacing = 56

	// Conquered 奖励面板
	PanelX      = 676
	PanelY      = 60
	PanelWidth  = 112
	PanelHeight = 360

	// 得分飘字
	ScorePopupDuration = 0.8  // 秒
	ScorePopupRise     = 30.0 // 上升像素
)

// scorePopup 得分后在气泡位置短暂显示的 "+N"
type scorePopup struct {
	x, y float64 // 屏幕坐标
	text string
	age  float64
}

// GameScene 气泡区域场景
// 负责把输入转换为模拟操作、绘制模拟状态，并在事件发生时播放音效
type GameScene struct {
	sim             *simulation.Simulation
	audioManager    *AudioManager
	settingsManager *game.SettingsManager

	face   text.Face
	popups []scorePopup
	taps   []pointerTap
}

// NewGameScene 创建气泡场景
//
// 参数:
//   - sim: 模拟核心
//   - audioManager: 音频管理器（可为无声模式）
//   - settingsManager: 偏好设置（可为 nil）
func NewGameScene(sim *simulation.Simulation, audioManager *AudioManager, settingsManager *game.SettingsManager) *GameScene {
	s := &GameScene{
		sim:             sim,
		audioManager:    audioManager,
		settingsManager: settingsManager,
		face:            text.NewGoXFace(basicfont.Face7x13),
	}

	sim.SetOnScored(func(points, combo int, x, y float64) {
		sx, sy := utils.FieldToScreen(x, y, FieldX, FieldY, FieldWidth, FieldHeight)
		label := fmt.Sprintf("+%d", points)
		if combo > 1 {
			label = fmt.Sprintf("+%d x%d", points, combo)
		}
		s.popups = append(s.popups, scorePopup{x: sx, y: sy, text: label})
	})
	sim.SetOnGameOver(func() {
		s.playSound(game.SoundPoison)
	})
	sim.SetOnLevelUp(func(level int, d game.Difficulty) {
		s.playSound(game.SoundLevelUp)
	})
	sim.SetOnRewardCollected(func(token game.RewardToken, isNew bool) {
		s.playSound(game.SoundReward)
	})

	return s
}

// Update 处理输入并推进模拟
func (s *GameScene) Update(deltaTime float64) {
	s.handleKeys()

	s.taps = appendJustTapped(s.taps[:0])
	for _, tap := range s.taps {
		s.handlePointer(tap.x, tap.y)
	}

	s.sim.Update(deltaTime)
	s.updatePopups(deltaTime)
}

// handleKeys 键盘快捷键：空格开始/停止，M 开关音效，H 开关帮助
func (s *GameScene) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.togglePlay()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		s.toggleHelp()
	}
}

// handlePointer 处理一次点击（屏幕坐标）
// 返回点击是否命中了按钮或气泡
func (s *GameScene) handlePointer(screenX, screenY float64) bool {
	if utils.PointInRect(screenX, screenY, ButtonX, ButtonY, ButtonWidth, ButtonHeight) {
		s.togglePlay()
		return true
	}

	if !utils.PointInRect(screenX, screenY, FieldX, FieldY, FieldWidth, FieldHeight) {
		return false
	}

	x, y := utils.ScreenToField(screenX, screenY, FieldX, FieldY, FieldWidth, FieldHeight)
	id, ok := s.sim.BubbleAt(x, y)
	if !ok {
		return false
	}
	if !s.sim.RequestPop(id) {
		return false
	}
	s.playSound(game.SoundPop)
	return true
}

// togglePlay Play/Stop 按钮
// 游戏中 → 停止；空闲或游戏结束 → 开始新一局
func (s *GameScene) togglePlay() {
	s.playSound(game.SoundClick)
	if s.sim.State().Phase == game.PhasePlaying {
		s.sim.Stop()
		return
	}
	s.popups = s.popups[:0]
	s.sim.Start()
}

func (s *GameScene) toggleSound() {
	if s.settingsManager == nil {
		return
	}
	enabled := s.settingsManager.ToggleSound()
	log.Printf("[GameScene] Sound enabled=%v", enabled)
	s.saveSettings()
}

func (s *GameScene) toggleHelp() {
	if s.settingsManager == nil {
		return
	}
	settings := s.settingsManager.GetSettings()
	s.settingsManager.SetShowHelp(!settings.ShowHelp)
	s.saveSettings()
}

// showHelp 是否显示底部快捷键提示
func (s *GameScene) showHelp() bool {
	if s.settingsManager == nil {
		return true
	}
	return s.settingsManager.GetSettings().ShowHelp
}

// updatePopups 推进得分飘字，移除到期项
func (s *GameScene) updatePopups(deltaTime float64) {
	alive := s.popups[:0]
	for _, p := range s.popups {
		p.age += deltaTime
		if p.age < ScorePopupDuration {
			alive = append(alive, p)
		}
	}
	s.popups = alive
}

func (s *GameScene) playSound(id game.SoundID) {
	if s.audioManager != nil {
		s.audioManager.PlaySound(id)
	}
}

// OnExit 窗口关闭时保存偏好设置
func (s *GameScene) OnExit() {
	s.saveSettings()
}

// saveSettings 立即持久化偏好设置
// 移动端没有窗口关闭事件，每次切换后都要保存
func (s *GameScene) saveSettings() {
	if s.settingsManager == nil {
		return
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
	}
}
