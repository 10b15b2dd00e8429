package scenes

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// exitingScene 额外实现 Exiter
type exitingScene struct {
	MockScene
	exited bool
}

func (e *exitingScene) OnExit() {
	e.exited = true
}

func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60.0
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("deltaTime: got %.4f, want %.4f", mockScene.deltaTime, deltaTime)
	}
}

func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(nil)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerNoScene 没有活动场景时不应 panic
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	sm.Exit()
}

func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene1.updateCalled || !scene2.updateCalled {
		t.Error("both scenes should have been updated once")
	}
	if sm.GetCurrentScene() != scene2 {
		t.Error("current scene should be scene2")
	}
}

func TestSceneManagerExit(t *testing.T) {
	sm := NewSceneManager()
	scene := &exitingScene{}
	sm.SwitchTo(scene)

	sm.Exit()
	if !scene.exited {
		t.Error("OnExit was not called")
	}

	// 普通场景不实现 Exiter，Exit 不做任何事
	sm.SwitchTo(&MockScene{})
	sm.Exit()
}
