// Package mouse turns bubbletea mouse messages into list actions: wheel
// scrolling, clicks on item rows and dragging the scrollbar thumb.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// WheelStep is the scroll distance of one wheel notch.
	WheelStep = 3
	// ShiftWheelStep is the distance of a shift+wheel notch, which scrolls
	// the cross axis.
	ShiftWheelStep = 10

	doubleClickWindow = 400 * time.Millisecond
)

// Region IDs registered by the list view.
const (
	RegionItem      = "item"
	RegionScrollbar = "scrollbar"
)

// Rect represents a rectangular region.
type Rect struct {
	X, Y, W, H int
}

// Contains returns true if the point (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit region. Item regions carry the item index.
type Region struct {
	ID    string
	Rect  Rect
	Index int
}

// HitMap holds the regions of the last rendered frame.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty HitMap.
func NewHitMap() *HitMap {
	return &HitMap{regions: make([]Region, 0, 32)}
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Add registers a region.
func (h *HitMap) Add(id string, rect Rect, index int) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Index: index})
}

// Test returns the topmost region containing the point, or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			return &h.regions[i]
		}
	}
	return nil
}

// Len returns the number of regions.
func (h *HitMap) Len() int { return len(h.regions) }

// ActionType is the kind of processed mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScroll
	ActionDrag
	ActionDragEnd
)

// Action is a processed mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	// Delta is the scroll distance, negative towards the start.
	Delta int
	// CrossAxis is set for shift+wheel and native horizontal wheels.
	CrossAxis bool
}

// Handler tracks clicks and drags across mouse messages.
type Handler struct {
	HitMap *HitMap

	lastClickTime   time.Time
	lastClickRegion string
	lastClickIndex  int

	dragging bool

	now func() time.Time
}

// NewHandler creates a mouse handler.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// Dragging reports whether the scrollbar thumb is being dragged.
func (h *Handler) Dragging() bool { return h.dragging }

// Handle processes one mouse message.
func (h *Handler) Handle(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return h.press(msg.X, msg.Y)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			delta, cross := WheelStep, false
			if msg.Shift {
				delta, cross = ShiftWheelStep, true
			}
			if msg.Button == tea.MouseButtonWheelUp {
				delta = -delta
			}
			return Action{Type: ActionScroll, X: msg.X, Y: msg.Y, Delta: delta, CrossAxis: cross}
		case tea.MouseButtonWheelLeft:
			return Action{Type: ActionScroll, X: msg.X, Y: msg.Y, Delta: -ShiftWheelStep, CrossAxis: true}
		case tea.MouseButtonWheelRight:
			return Action{Type: ActionScroll, X: msg.X, Y: msg.Y, Delta: ShiftWheelStep, CrossAxis: true}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y}
		}

	case tea.MouseActionRelease:
		if h.dragging {
			h.dragging = false
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
	}
	return Action{Type: ActionNone}
}

func (h *Handler) press(x, y int) Action {
	region := h.HitMap.Test(x, y)
	if region == nil {
		return Action{Type: ActionNone}
	}
	if region.ID == RegionScrollbar {
		h.dragging = true
		return Action{Type: ActionDrag, Region: region, X: x, Y: y}
	}

	now := h.now()
	if region.ID == h.lastClickRegion && region.Index == h.lastClickIndex &&
		now.Sub(h.lastClickTime) < doubleClickWindow {
		// Reset so a third click starts over.
		h.lastClickRegion = ""
		h.lastClickTime = time.Time{}
		return Action{Type: ActionDoubleClick, Region: region, X: x, Y: y}
	}
	h.lastClickRegion, h.lastClickIndex, h.lastClickTime = region.ID, region.Index, now
	return Action{Type: ActionClick, Region: region, X: x, Y: y}
}
