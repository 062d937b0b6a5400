package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func press(x, y int, b tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: b, Action: tea.MouseActionPress}
}

func TestHitMapTopmostWins(t *testing.T) {
	h := NewHitMap()
	h.Add(RegionItem, Rect{X: 0, Y: 0, W: 10, H: 5}, 1)
	h.Add(RegionScrollbar, Rect{X: 9, Y: 0, W: 1, H: 5}, 0)

	if r := h.Test(9, 2); r == nil || r.ID != RegionScrollbar {
		t.Fatalf("Test(9, 2) = %+v, want scrollbar", r)
	}
	if r := h.Test(3, 4); r == nil || r.Index != 1 {
		t.Fatalf("Test(3, 4) = %+v, want item 1", r)
	}
	if r := h.Test(3, 5); r != nil {
		t.Fatalf("Test(3, 5) = %+v, want nil", r)
	}
}

func TestWheel(t *testing.T) {
	h := NewHandler()
	tests := []struct {
		name  string
		msg   tea.MouseMsg
		delta int
		cross bool
	}{
		{"down", press(0, 0, tea.MouseButtonWheelDown), WheelStep, false},
		{"up", press(0, 0, tea.MouseButtonWheelUp), -WheelStep, false},
		{"shift down", tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress, Shift: true}, ShiftWheelStep, true},
		{"left", press(0, 0, tea.MouseButtonWheelLeft), -ShiftWheelStep, true},
		{"right", press(0, 0, tea.MouseButtonWheelRight), ShiftWheelStep, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := h.Handle(tt.msg)
			if a.Type != ActionScroll || a.Delta != tt.delta || a.CrossAxis != tt.cross {
				t.Errorf("Handle() = %+v, want scroll %d cross=%v", a, tt.delta, tt.cross)
			}
		})
	}
}

func TestDoubleClick(t *testing.T) {
	h := NewHandler()
	now := time.Unix(0, 0)
	h.now = func() time.Time { return now }
	h.HitMap.Add(RegionItem, Rect{W: 10, H: 1}, 4)

	if a := h.Handle(press(1, 0, tea.MouseButtonLeft)); a.Type != ActionClick || a.Region.Index != 4 {
		t.Fatalf("first click = %+v", a)
	}
	now = now.Add(100 * time.Millisecond)
	if a := h.Handle(press(2, 0, tea.MouseButtonLeft)); a.Type != ActionDoubleClick {
		t.Fatalf("second click = %+v, want double click", a)
	}
	now = now.Add(100 * time.Millisecond)
	if a := h.Handle(press(2, 0, tea.MouseButtonLeft)); a.Type != ActionClick {
		t.Fatalf("third click = %+v, want click", a)
	}
	now = now.Add(time.Second)
	if a := h.Handle(press(2, 0, tea.MouseButtonLeft)); a.Type != ActionClick {
		t.Fatalf("late click = %+v, want click", a)
	}
}

func TestScrollbarDrag(t *testing.T) {
	h := NewHandler()
	h.HitMap.Add(RegionScrollbar, Rect{X: 20, W: 1, H: 10}, 0)

	if a := h.Handle(press(20, 3, tea.MouseButtonLeft)); a.Type != ActionDrag || !h.Dragging() {
		t.Fatalf("press on scrollbar = %+v", a)
	}
	// Motion continues the drag even off the track.
	if a := h.Handle(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionMotion}); a.Type != ActionDrag || a.Y != 6 {
		t.Fatalf("motion = %+v", a)
	}
	if a := h.Handle(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionRelease}); a.Type != ActionDragEnd || h.Dragging() {
		t.Fatalf("release = %+v", a)
	}
	if a := h.Handle(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionMotion}); a.Type != ActionNone {
		t.Fatalf("motion after release = %+v", a)
	}
}
