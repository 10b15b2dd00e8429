// bubblepop-term 终端版气泡游戏（tcell 渲染，鼠标点击，beep 音效）
//
// 操作: 鼠标左键点破气泡，空格开始/停止，a 切换自动演示，m 开关音效，q/Esc 退出
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/bubblepop/pkg/config"
	"github.com/decker502/bubblepop/pkg/game"
	"github.com/decker502/bubblepop/pkg/simulation"
	"github.com/decker502/bubblepop/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	tickInterval = 16 * time.Millisecond
	headerRows   = 2 // 顶部状态栏
	footerRows   = 1 // 底部提示
	sampleRate   = beep.SampleRate(44100)
)

var (
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	configPath = flag.String("config", "", "外部玩法配置文件（YAML）")
	demo       = flag.Bool("demo", false, "启动即进入自动演示")
	mute       = flag.Bool("mute", false, "关闭音效")
	logFile    = flag.String("log", "", "日志输出文件（终端界面下默认丢弃日志）")
)

var defaultBubbleColor = color.RGBA{R: 74, G: 163, B: 255, A: 255}

// TermGame 终端前端
type TermGame struct {
	screen tcell.Screen
	sim    *simulation.Simulation
	bot    *simulation.AutoPlayer

	autoplay  bool
	soundOn   bool
	audioInit bool
	mouseDown bool
	status    string
}

func NewTermGame(cfg *config.GameConfig, rngSeed int64) (*TermGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	sim := simulation.New(cfg, utils.NewRandomSource(rngSeed))
	g := &TermGame{
		screen:   screen,
		sim:      sim,
		bot:      simulation.NewAutoPlayer(sim, utils.NewRandomSource(rngSeed+1), 0.3, 0),
		autoplay: *demo,
		soundOn:  !*mute,
		status:   "Press space to play",
	}

	sim.SetOnScored(func(points, combo int, x, y float64) {
		g.status = fmt.Sprintf("+%d (x%d)", points, combo)
	})
	sim.SetOnGameOver(func() {
		g.status = "Poison bubble! Game over. Press space to try again"
		g.playSound(game.SoundPoison)
	})
	sim.SetOnLevelUp(func(level int, d game.Difficulty) {
		g.status = fmt.Sprintf("Level %d!", level)
		g.playSound(game.SoundLevelUp)
	})
	sim.SetOnRewardCollected(func(token game.RewardToken, isNew bool) {
		g.status = "Conquered " + token.Label
		g.playSound(game.SoundReward)
	})

	if err := g.initAudio(); err != nil {
		// 没有声卡时静默运行
		log.Printf("[TermGame] Audio initialization failed: %v", err)
	}

	if g.autoplay {
		sim.Start()
	}
	return g, nil
}

func (g *TermGame) initAudio() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	g.audioInit = true
	return nil
}

// playSound 播放与图形版相同的合成音效
func (g *TermGame) playSound(id game.SoundID) {
	if !g.audioInit || !g.soundOn {
		return
	}
	if s := game.NewSoundStreamer(id, sampleRate); s != nil {
		speaker.Play(s)
	}
}

// fieldRect 返回气泡区域在终端中的矩形（列、行）
func (g *TermGame) fieldRect() (x, y, w, h int) {
	width, height := g.screen.Size()
	return 0, headerRows, width, max(1, height-headerRows-footerRows)
}

// handleInput 处理输入，返回 false 表示退出
func (g *TermGame) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			g.togglePlay()
		case 'a':
			g.autoplay = !g.autoplay
		case 'm':
			g.soundOn = !g.soundOn
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !g.mouseDown {
			col, row := ev.Position()
			g.click(col, row)
		}
		g.mouseDown = pressed

	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

func (g *TermGame) togglePlay() {
	if g.sim.State().Phase == game.PhasePlaying {
		g.sim.Stop()
		g.status = "Stopped. Press space to play"
		return
	}
	g.sim.Start()
	g.status = "Pop the bubbles!"
}

// click 把终端单元格转换为百分比坐标后点击
func (g *TermGame) click(col, row int) {
	fx, fy, fw, fh := g.fieldRect()
	if row < fy || row >= fy+fh {
		return
	}
	x, y := utils.ScreenToField(float64(col)+0.5, float64(row)+0.5, float64(fx), float64(fy), float64(fw), float64(fh))
	if id, ok := g.sim.BubbleAt(x, y); ok && g.sim.RequestPop(id) {
		g.playSound(game.SoundPop)
	}
}

func (g *TermGame) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if g.autoplay {
				g.bot.Update(dt)
			}
			g.sim.Update(dt)
			g.draw()
		}
	}
}

func (g *TermGame) draw() {
	g.screen.Clear()
	state := g.sim.State()
	fx, fy, fw, fh := g.fieldRect()

	top, _ := utils.BackgroundGradient(g.sim.BackgroundHue())
	bg := tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))
	fieldStyle := tcell.StyleDefault.Background(bg)
	for row := fy; row < fy+fh; row++ {
		for col := fx; col < fx+fw; col++ {
			g.screen.SetContent(col, row, ' ', nil, fieldStyle)
		}
	}

	ppp := g.sim.Config().Field.PixelsPerPercent
	for _, b := range g.sim.Bubbles() {
		g.drawBubble(b, bg, ppp)
	}

	header := fmt.Sprintf(" Score %d   Combo x%d   Level %d   %s", state.Score, state.Combo, state.Level, state.Phase)
	g.drawText(0, 0, tcell.StyleDefault.Bold(true), header)
	conquered := "Conquered:"
	for _, r := range state.Rewards {
		conquered += " " + r.Label
	}
	g.drawText(0, 1, tcell.StyleDefault.Foreground(tcell.ColorBlue), " "+conquered)

	autoplay := "off"
	if g.autoplay {
		autoplay = "on"
	}
	footer := fmt.Sprintf(" %s | space play/stop  a demo(%s)  m sound  q quit", g.status, autoplay)
	_, height := g.screen.Size()
	g.drawText(0, height-1, tcell.StyleDefault.Foreground(tcell.ColorGray), footer)

	g.screen.Show()
}

// drawBubble 以椭圆填充单元格绘制气泡，终端单元格不是正方形
func (g *TermGame) drawBubble(b simulation.BubbleView, bg tcell.Color, ppp float64) {
	fx, fy, fw, fh := g.fieldRect()
	cx, cy := utils.FieldToScreen(b.X, b.Y, float64(fx), float64(fy), float64(fw), float64(fh))
	radiusPercent := b.Size / 2 * b.Scale / ppp
	rx := radiusPercent / 100 * float64(fw)
	ry := radiusPercent / 100 * float64(fh)
	if rx < 0.5 {
		rx = 0.5
	}
	if ry < 0.5 {
		ry = 0.5
	}

	c := utils.ParseHexColor(b.Color, defaultBubbleColor)
	fill := tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	style := tcell.StyleDefault.Background(fill).Foreground(tcell.ColorWhite).Bold(true)
	if b.Popping {
		style = tcell.StyleDefault.Background(bg).Foreground(fill)
	}

	for row := int(cy - ry); row <= int(cy+ry); row++ {
		for col := int(cx - rx); col <= int(cx+rx); col++ {
			dx := (float64(col) + 0.5 - cx) / rx
			dy := (float64(row) + 0.5 - cy) / ry
			if dx*dx+dy*dy > 1 || row < fy || row >= fy+fh || col < fx || col >= fx+fw {
				continue
			}
			ch := ' '
			if b.Popping {
				ch = '*'
			}
			g.screen.SetContent(col, row, ch, nil, style)
		}
	}

	if !b.Popping {
		label := fmt.Sprint(b.Points)
		if b.IsPoison {
			label = "X"
		}
		g.drawText(int(cx)-len(label)/2, int(cy), style, label)
	}
}

func (g *TermGame) drawText(x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (g *TermGame) cleanup() {
	if g.audioInit {
		speaker.Close()
	}
	g.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端界面占用 stdout，日志只写文件
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := NewTermGame(cfg, rngSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}
