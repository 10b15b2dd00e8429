package scenes

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/decker502/bubblepop/pkg/components"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/simulation"
	"github.com/decker502/bubblepop/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorPage        = color.RGBA{R: 244, G: 248, B: 255, A: 255}
	colorBorder      = color.RGBA{R: 230, G: 238, B: 252, A: 255}
	colorBlue        = color.RGBA{R: 74, G: 163, B: 255, A: 255}
	colorStop        = color.RGBA{R: 255, G: 107, B: 107, A: 255}
	colorPoison      = color.RGBA{R: 255, G: 34, B: 34, A: 255}
	colorWhite       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorLabel       = color.RGBA{R: 102, G: 102, B: 102, A: 255}
	colorValue       = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	colorMuted       = color.RGBA{R: 187, G: 187, B: 187, A: 255}
	colorLevelBanner = color.RGBA{R: 255, G: 196, B: 0, A: 255}

	// 70% 白色遮罩
	colorOverlay = color.NRGBA{R: 255, G: 255, B: 255, A: 178}
)

// backgroundBands 渐变背景的分段数
const backgroundBands = 26

// Draw 绘制整个场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorPage)

	state := s.sim.State()

	s.drawField(screen)
	s.drawButton(screen, state.Phase)
	s.drawStats(screen, state)
	s.drawRewardPanel(screen, state.Rewards, state.LastReward)
	s.drawOverlay(screen, state)
	s.drawFooter(screen)
}

// drawField 绘制渐变背景、气泡、提示和得分飘字（裁剪在区域内）
func (s *GameScene) drawField(screen *ebiten.Image) {
	field := screen.SubImage(image.Rect(FieldX, FieldY, FieldX+FieldWidth, FieldY+FieldHeight)).(*ebiten.Image)

	top, bottom := utils.BackgroundGradient(s.sim.BackgroundHue())
	bandHeight := float32(FieldHeight) / backgroundBands
	for i := 0; i < backgroundBands; i++ {
		t := float64(i) / float64(backgroundBands-1)
		y := float32(FieldY) + float32(i)*bandHeight
		vector.DrawFilledRect(field, FieldX, y, FieldWidth, bandHeight+1, utils.LerpColor(top, bottom, t), false)
	}

	for _, b := range s.sim.Bubbles() {
		s.drawBubble(field, b)
	}
	for _, n := range s.sim.Notices() {
		s.drawNotice(field, n)
	}
	for _, p := range s.popups {
		progress := p.age / ScorePopupDuration
		s.drawCenteredText(field, p.text, p.x, p.y-ScorePopupRise*progress, utils.WithAlpha(colorValue, 1-progress))
	}

	vector.StrokeRect(screen, FieldX, FieldY, FieldWidth, FieldHeight, 2, colorBorder, true)
}

// drawBubble 绘制单个气泡
// 破裂中的气泡按动画缩放并淡出；毒气泡带红色外圈
func (s *GameScene) drawBubble(dst *ebiten.Image, b simulation.BubbleView) {
	cx, cy := utils.FieldToScreen(b.X, b.Y, FieldX, FieldY, FieldWidth, FieldHeight)
	radius := float32(b.Size / 2 * b.Scale)
	if radius <= 0 || b.Alpha <= 0 {
		return
	}

	fill := utils.ParseHexColor(b.Color, colorBlue)
	if b.IsPoison {
		vector.StrokeCircle(dst, float32(cx), float32(cy), radius+3, 4, utils.WithAlpha(colorPoison, b.Alpha*0.6), true)
	}
	vector.DrawFilledCircle(dst, float32(cx), float32(cy), radius, utils.WithAlpha(fill, b.Alpha), true)
	if b.IsPoison {
		vector.StrokeCircle(dst, float32(cx), float32(cy), radius, 2, utils.WithAlpha(colorPoison, b.Alpha), true)
	}

	if !b.Popping {
		s.drawCenteredText(dst, bubbleLabel(b), cx, cy, colorWhite)
	}
}

// drawNotice 绘制升级横幅或奖励弹出
func (s *GameScene) drawNotice(dst *ebiten.Image, n simulation.NoticeView) {
	alpha := 1 - n.Progress
	switch n.Kind {
	case components.NoticeLevelUp:
		cx := float64(FieldX + FieldWidth/2)
		cy := float64(FieldY + 60)
		vector.DrawFilledRect(dst, float32(cx-70), float32(cy-16), 140, 32, utils.WithAlpha(colorLevelBanner, alpha*0.9), true)
		s.drawCenteredText(dst, n.Text, cx, cy, utils.WithAlpha(colorValue, alpha))
	case components.NoticeReward:
		cx, cy := utils.FieldToScreen(n.X, n.Y, FieldX, FieldY, FieldWidth, FieldHeight)
		cy -= ScorePopupRise * n.Progress
		s.drawCenteredText(dst, "* "+n.Label+" *", cx, cy, utils.WithAlpha(colorBlue, alpha))
	}
}

// drawButton 绘制 Play/Stop 按钮
func (s *GameScene) drawButton(screen *ebiten.Image, phase game.Phase) {
	bg := colorBlue
	if phase == game.PhasePlaying {
		bg = colorStop
	}
	vector.DrawFilledRect(screen, ButtonX, ButtonY, ButtonWidth, ButtonHeight, bg, true)
	s.drawCenteredText(screen, buttonLabel(phase), ButtonX+ButtonWidth/2, ButtonY+ButtonHeight/2, colorWhite)
}

// drawStats 绘制分数、连击和等级
func (s *GameScene) drawStats(screen *ebiten.Image, state simulation.State) {
	rows := []struct {
		label string
		value string
	}{
		{"Score", strconv.Itoa(state.Score)},
		{"Combo", fmt.Sprintf("x%d", state.Combo)},
		{"Level", strconv.Itoa(state.Level)},
	}

	cx := float64(StatsX + ButtonWidth/2)
	for i, row := range rows {
		y := float64(StatsY + i*StatsSpacing)
		s.drawCenteredText(screen, row.label, cx, y, colorLabel)
		s.drawCenteredText(screen, row.value, cx, y+20, colorValue)
	}
}

// drawRewardPanel 绘制 "Conquered" 奖励面板
func (s *GameScene) drawRewardPanel(screen *ebiten.Image, rewards []game.RewardToken, last game.RewardToken) {
	vector.DrawFilledRect(screen, PanelX, PanelY, PanelWidth, PanelHeight, colorWhite, true)
	vector.StrokeRect(screen, PanelX, PanelY, PanelWidth, PanelHeight, 2, colorBorder, true)

	cx := float64(PanelX + PanelWidth/2)
	s.drawCenteredText(screen, "Conquered", cx, PanelY+20, colorBlue)

	lines := rewardPanelLines(rewards, last)
	clr := colorValue
	if len(rewards) == 0 {
		clr = colorMuted
	}
	for i, line := range lines {
		s.drawCenteredText(screen, line, cx, float64(PanelY+48+i*16), clr)
	}
}

// drawOverlay 空闲或游戏结束时在区域上方显示遮罩与提示
func (s *GameScene) drawOverlay(screen *ebiten.Image, state simulation.State) {
	title, subtitle, ok := overlayMessage(state)
	if !ok {
		return
	}
	vector.DrawFilledRect(screen, FieldX, FieldY, FieldWidth, FieldHeight, colorOverlay, false)

	cx := float64(FieldX + FieldWidth/2)
	cy := float64(FieldY + FieldHeight/2)
	titleColor := colorLabel
	if state.Phase == game.PhaseGameOver {
		titleColor = colorPoison
	}
	s.drawCenteredText(screen, title, cx, cy, titleColor)
	if subtitle != "" {
		s.drawCenteredText(screen, subtitle, cx, cy+20, colorLabel)
	}
}

// drawFooter 底部快捷键提示与音效状态
func (s *GameScene) drawFooter(screen *ebiten.Image) {
	if !s.showHelp() {
		return
	}
	s.drawCenteredText(screen, s.helpText(), ScreenWidth/2, ScreenHeight-10, colorLabel)
}

// helpText 底部提示文字，移动端没有键盘快捷键
func (s *GameScene) helpText() string {
	if utils.IsMobile() {
		return "Tap bubbles to pop them. Avoid the red X!"
	}
	sound := "off"
	if s.audioManager != nil && s.audioManager.IsSoundEnabled() {
		sound = "on"
	}
	return fmt.Sprintf("Space: play/stop   M: sound (%s)   H: hide help   F11: fullscreen", sound)
}

// drawCenteredText 以 (cx, cy) 为中心绘制单行文本
func (s *GameScene) drawCenteredText(dst *ebiten.Image, str string, cx, cy float64, clr color.Color) {
	w, h := text.Measure(str, s.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, str, s.face, op)
}

// bubbleLabel 气泡中央显示的文字：分值，毒气泡显示 "X"
func bubbleLabel(b simulation.BubbleView) string {
	if b.IsPoison {
		return "X"
	}
	return strconv.Itoa(b.Points)
}

// buttonLabel 按钮文字
func buttonLabel(phase game.Phase) string {
	if phase == game.PhasePlaying {
		return "Stop"
	}
	return "Play"
}

// rewardPanelLines 奖励面板的文本行（按首次收集顺序），为空时显示占位符
// 最近抽到的奖励前加 "* "
func rewardPanelLines(rewards []game.RewardToken, last game.RewardToken) []string {
	if len(rewards) == 0 {
		return []string{"-"}
	}
	lines := make([]string, 0, len(rewards))
	for _, r := range rewards {
		if r.Token == last.Token {
			lines = append(lines, "* "+r.Label)
			continue
		}
		lines = append(lines, r.Label)
	}
	return lines
}

// overlayMessage 返回遮罩的标题与副标题，游戏中不显示遮罩
func overlayMessage(state simulation.State) (title, subtitle string, show bool) {
	switch state.Phase {
	case game.PhaseIdle:
		return "Hit Play to start popping drifting bubbles!", "", true
	case game.PhaseGameOver:
		return "Poison bubble! Game over.", fmt.Sprintf("Final score %d, level %d. Hit Play to try again.", state.Score, state.Level), true
	default:
		return "", "", false
	}
}
