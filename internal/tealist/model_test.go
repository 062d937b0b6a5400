package tealist

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/host"
	"github.com/wilbur182/vlist/internal/mouse"
)

func newModel(t *testing.T, mutate func(*config.Config)) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.List.ItemCount = 100
	if mutate != nil {
		mutate(cfg)
	}
	m, err := New(context.Background(), Options{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

// awaitFired delivers the next debounce token like the program would.
func awaitFired(t *testing.T, m *Model) {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- m.fired.wait()() }()
	select {
	case msg := <-done:
		m.Update(msg)
	case <-time.After(2 * time.Second):
		t.Fatal("scrolling never settled")
	}
}

func TestModel_InitialView(t *testing.T) {
	m := newModel(t, nil)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Item 0")
	assert.NotContains(t, view, "Item 40")
	assert.Equal(t, 12, len(strings.Split(view, "\n")))
}

func TestModel_CursorScrollsIntoView(t *testing.T) {
	m := newModel(t, nil)
	vp := m.list.ViewportSize()

	for range 15 {
		press(m, runes("j"))
	}

	assert.Equal(t, 15, m.Cursor())
	assert.Equal(t, 15-vp+1, m.list.State().Offset)
	assert.Equal(t, 15-vp+1, m.container.offset, "requested offset reaches the container")
	assert.False(t, m.list.State().IsScrolling)
	assert.True(t, m.lastScroll.UpdateWasRequested)
}

func TestModel_PageDownScrollsUntilSettled(t *testing.T) {
	m := newModel(t, nil)
	vp := m.list.ViewportSize()

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})

	st := m.list.State()
	assert.Equal(t, vp, st.Offset)
	assert.True(t, st.IsScrolling)
	assert.Equal(t, vp, m.Cursor(), "cursor follows the viewport")
	assert.False(t, m.lastScroll.UpdateWasRequested)

	awaitFired(t, m)
	assert.False(t, m.list.State().IsScrolling)
}

func TestModel_BottomAndTop(t *testing.T) {
	m := newModel(t, nil)
	vp := m.list.ViewportSize()

	press(m, runes("G"))
	assert.Equal(t, 99, m.Cursor())
	assert.Equal(t, 100-vp, m.list.State().Offset)
	assert.Contains(t, ansi.Strip(m.View()), "Item 99")

	press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Zero(t, m.Cursor())
	assert.Zero(t, m.list.State().Offset)
	assert.Zero(t, m.container.offset)
}

func TestModel_MouseWheel(t *testing.T) {
	m := newModel(t, nil)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, mouse.WheelStep, m.list.State().Offset)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Zero(t, m.list.State().Offset, "wheel stops at the top")
}

func TestModel_Horizontal(t *testing.T) {
	m := newModel(t, func(c *config.Config) {
		c.List.Layout = "horizontal"
		c.List.ItemSize = 10
	})

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Item 0")
	assert.Contains(t, view, "Item 5")
	assert.NotContains(t, view, "Item 7")
}

func TestModel_HorizontalRTL(t *testing.T) {
	m := newModel(t, func(c *config.Config) {
		c.List.Layout = "horizontal"
		c.List.Direction = "rtl"
		c.List.ItemSize = 10
	})

	first := strings.Split(ansi.Strip(m.View()), "\n")[0]
	require.Contains(t, first, "Item 0")
	require.Contains(t, first, "Item 5")
	assert.Less(t, strings.Index(first, "Item 5"), strings.Index(first, "Item 0"),
		"rtl lists start at the right edge")
}

func TestModel_PlaceholdersWhileScrolling(t *testing.T) {
	m := newModel(t, func(c *config.Config) {
		c.List.Variable = true
		c.List.UseIsScrolling = true
	})

	press(m, tea.KeyMsg{Type: tea.KeyPgDown})
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "░")
	assert.NotContains(t, view, "Item ")

	awaitFired(t, m)
	assert.Contains(t, ansi.Strip(m.View()), "Item ")
}

func TestModel_InvalidConfigKeepsProps(t *testing.T) {
	m := newModel(t, nil)

	bad := *m.cfg
	bad.List.Direction = "sideways"
	m.Update(configMsg{Config: &bad})

	assert.ErrorIs(t, m.Err(), host.ErrInvalidDirection)
	assert.Equal(t, "ltr", m.list.Props().Direction)
}

func TestModel_ShrinkingCountClampsOffset(t *testing.T) {
	m := newModel(t, nil)
	vp := m.list.ViewportSize()
	press(m, runes("G"))

	next := *m.cfg
	next.List.ItemCount = 20
	m.Update(configMsg{Config: &next})

	require.NoError(t, m.Err())
	assert.Equal(t, 20, m.list.Props().ItemCount)
	assert.Equal(t, 20-vp, m.list.State().Offset)
	assert.Equal(t, 19, m.Cursor())
}

func TestModel_ReloadCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"list": {"itemCount": 5}}`), 0o644))

	m, err := New(context.Background(), Options{ConfigPath: path})
	require.NoError(t, err)
	defer m.Close()

	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NoError(t, m.Err())
	assert.Equal(t, 5, m.list.Props().ItemCount)
}

func TestModel_InitialScrollOffset(t *testing.T) {
	m := newModel(t, func(c *config.Config) {
		c.List.InitialScrollOffset = 30
	})

	assert.Equal(t, 30, m.container.offset)
	assert.Equal(t, 30, m.list.State().Offset)
}

func TestModel_ToggleHelpShrinksViewport(t *testing.T) {
	m := newModel(t, nil)
	before := m.list.ViewportSize()

	press(m, runes("?"))
	assert.Less(t, m.list.ViewportSize(), before)

	press(m, runes("?"))
	assert.Equal(t, before, m.list.ViewportSize())
}

func TestModel_AlignCenter(t *testing.T) {
	m := newModel(t, nil)
	require.Equal(t, 10, m.list.ViewportSize())
	for range 50 {
		press(m, runes("j"))
	}
	require.Equal(t, 41, m.list.State().Offset)

	// Offsets 41 to 50 keep item 50 visible; the middle rounds half up.
	press(m, runes("z"), runes("z"))
	assert.Equal(t, 46, m.list.State().Offset)
}

func TestModel_ClickSelectsRow(t *testing.T) {
	m := newModel(t, nil)
	m.View()

	m.Update(tea.MouseMsg{X: 4, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 3, m.Cursor())
	assert.Zero(t, m.list.State().Offset, "a visible row does not scroll")
}

func TestModel_ScrollbarDrag(t *testing.T) {
	m := newModel(t, nil)
	vp := m.list.ViewportSize()
	m.View()

	// The scrollbar is the last column; its bottom row maps to the end.
	m.Update(tea.MouseMsg{X: 59, Y: vp - 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 100-vp, m.list.State().Offset)
	assert.True(t, m.list.State().IsScrolling)

	m.Update(tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionMotion})
	assert.Zero(t, m.list.State().Offset)

	m.Update(tea.MouseMsg{X: 40, Y: 0, Action: tea.MouseActionRelease})
	m.Update(tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionMotion})
	assert.Zero(t, m.list.State().Offset, "motion after release does not drag")
}
