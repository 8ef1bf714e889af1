//go:build !linux

package globalhook

import (
	"testing"

	hook "github.com/robotn/gohook"
)

func TestKindsMatchHook(t *testing.T) {
	pairs := []struct {
		local, lib uint8
	}{
		{kindHookEnabled, hook.HookEnabled},
		{kindHookDisabled, hook.HookDisabled},
		{kindKeyTyped, hook.KeyDown},
		{kindKeyPressed, hook.KeyHold},
		{kindKeyReleased, hook.KeyUp},
		{kindMouseClicked, hook.MouseUp},
		{kindMousePressed, hook.MouseHold},
		{kindMouseReleased, hook.MouseDown},
		{kindMouseMoved, hook.MouseMove},
		{kindMouseDragged, hook.MouseDrag},
		{kindMouseWheel, hook.MouseWheel},
	}
	for _, p := range pairs {
		if p.local != p.lib {
			t.Errorf("kind %d does not match hook constant %d", p.local, p.lib)
		}
	}
}
