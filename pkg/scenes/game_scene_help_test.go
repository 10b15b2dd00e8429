//go:build !mobile

package scenes

import "testing"

func TestHelpText(t *testing.T) {
	s := newTestScene(0)

	t.Setenv("BUBBLEPOP_MOBILE_EMULATE", "")
	if got := s.helpText(); got != "Space: play/stop   M: sound (off)   H: hide help   F11: fullscreen" {
		t.Errorf("desktop help (silent audio): got %q", got)
	}

	t.Setenv("BUBBLEPOP_MOBILE_EMULATE", "1")
	if got := s.helpText(); got != "Tap bubbles to pop them. Avoid the red X!" {
		t.Errorf("mobile help: got %q", got)
	}
}
