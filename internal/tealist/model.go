// Package tealist hosts a windowed list inside a bubbletea program. The Model
// is the list's scroll container: it keeps the container offset, turns keys
// and the mouse wheel into scroll signals and draws only the rows the list
// renders.
package tealist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wilbur182/vlist/internal/config"
	"github.com/wilbur182/vlist/internal/host"
	"github.com/wilbur182/vlist/internal/keymap"
	"github.com/wilbur182/vlist/internal/markdown"
	"github.com/wilbur182/vlist/internal/mouse"
	"github.com/wilbur182/vlist/internal/scheduler"
	"github.com/wilbur182/vlist/internal/source"
	"github.com/wilbur182/vlist/internal/styles"
	"github.com/wilbur182/vlist/internal/window"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	// Source supplies the rows. When nil the model opens one from
	// Config.Source and closes it in Close.
	Source source.Source
	Keymap *keymap.Registry
	// Watcher, when set, feeds reloaded configs into the list.
	Watcher *config.Watcher
	// ConfigPath is reread by the reload-config command. Empty disables it.
	ConfigPath string
	Logger     *slog.Logger
}

// rowWindow holds the rows fetched for the current render range. It is the
// list's item data.
type rowWindow struct {
	start int
	rows  []source.Row
}

func (w *rowWindow) at(i int) (source.Row, bool) {
	if w == nil {
		return source.Row{}, false
	}
	k := i - w.start
	if k < 0 || k >= len(w.rows) {
		return source.Row{}, false
	}
	return w.rows[k], true
}

// container is the scrollable element seen by the list.
type container struct {
	offset int
}

func (c *container) SetScrollOffset(offset int) { c.offset = offset }

func (c *container) RTLOffsetType() host.RTLOffsetType { return host.RTLPositiveAscending }

// Model is the bubbletea model of the list view.
type Model struct {
	ctx        context.Context
	cfg        *config.Config
	src        source.Source
	ownsSource bool
	keys       *keymap.Registry
	help       help.Model
	md         *markdown.Renderer
	mouse      *mouse.Handler
	watcher    *config.Watcher
	configPath string
	log        *slog.Logger

	list      *host.List[*rowWindow]
	loop      *scheduler.Loop
	fired     *firedQueue
	container *container
	rows      *rowWindow

	width, height int
	cursor        int
	showHelp      bool
	sizeVersion   uint64
	lastScroll    host.ScrollInfo
	err           error
}

var _ tea.Model = (*Model)(nil)

// New creates the model and attaches its list.
func New(ctx context.Context, opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	keys := opts.Keymap
	if keys == nil {
		keys = keymap.Default()
	}
	keys.ApplyOverrides(cfg.Keymap.Overrides)
	styles.ApplyThemeWithOverrides(cfg.UI.Theme.Name, cfg.UI.Theme.Overrides)

	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		src:        opts.Source,
		keys:       keys,
		help:       help.New(),
		mouse:      mouse.NewHandler(),
		watcher:    opts.Watcher,
		configPath: opts.ConfigPath,
		log:        log,
		container:  &container{},
		rows:       &rowWindow{},
		width:      defaultWidth,
		height:     defaultHeight,
	}
	if m.src == nil {
		src, err := OpenSource(ctx, cfg)
		if err != nil {
			return nil, err
		}
		m.src, m.ownsSource = src, true
	}
	if cfg.UI.Markdown {
		m.md = markdown.NewRenderer(styles.GetMarkdownTheme(), log)
	}

	m.loop, m.fired = newLoop()
	list, err := host.New(m.props(), host.WithLogger(log), host.WithScheduler(m.loop))
	if err != nil {
		m.Close()
		return nil, err
	}
	m.list = list
	list.Attach(m.container)
	return m, nil
}

// OpenSource opens the item source named by cfg.
func OpenSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		return source.OpenSQLite(ctx, cfg.Source.Path, cfg.Source.PageSize)
	case "", config.SourceSynthetic:
		return source.NewSynthetic(cfg.List.ItemCount, cfg.Source.Seed), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fired.wait(), waitConfig(m.watcher))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != m.width && m.md != nil {
			m.sizeVersion++
		}
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.applyInputs()
		return m, nil

	case scheduler.Fired:
		m.loop.Fire(msg)
		return m, m.fired.wait()

	case configMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.log.Warn("config reload failed", "err", msg.Err)
		} else {
			m.applyConfig(msg.Config)
		}
		return m, waitConfig(m.watcher)

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	vp := m.list.ViewportSize()
	switch m.keys.Resolve(msg) {
	case keymap.CmdQuit:
		return tea.Quit
	case keymap.CmdScrollDown:
		m.scrollBy(1)
	case keymap.CmdScrollUp:
		m.scrollBy(-1)
	case keymap.CmdPageDown:
		m.scrollBy(vp)
	case keymap.CmdPageUp:
		m.scrollBy(-vp)
	case keymap.CmdHalfDown:
		m.scrollBy(max(1, vp/2))
	case keymap.CmdHalfUp:
		m.scrollBy(-max(1, vp/2))
	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorUp:
		m.moveCursor(-1)
	case keymap.CmdTop:
		m.cursor = 0
		m.list.ScrollTo(0)
	case keymap.CmdBottom:
		m.cursor = max(0, m.count()-1)
		m.list.ScrollToItem(m.cursor, window.AlignEnd)
	case keymap.CmdAlignStart:
		m.list.ScrollToItem(m.cursor, window.AlignStart)
	case keymap.CmdAlignCenter:
		m.list.ScrollToItem(m.cursor, window.AlignCenter)
	case keymap.CmdAlignEnd:
		m.list.ScrollToItem(m.cursor, window.AlignEnd)
	case keymap.CmdAlignAuto:
		m.list.ScrollToItem(m.cursor, window.AlignAuto)
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp
		m.applyInputs()
	case keymap.CmdReloadConfig:
		m.reload()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	a := m.mouse.Handle(msg)
	switch a.Type {
	case mouse.ActionScroll:
		// Vertical lists ignore sideways wheels; horizontal lists take both.
		if a.CrossAxis && !horizontal(m.cfg.List) {
			return
		}
		m.scrollBy(a.Delta)
	case mouse.ActionClick:
		m.cursor = a.Region.Index
		m.list.ScrollToItem(m.cursor, window.AlignAuto)
	case mouse.ActionDoubleClick:
		m.cursor = a.Region.Index
		m.list.ScrollToItem(m.cursor, window.AlignCenter)
	case mouse.ActionDrag:
		m.dragScrollbar(a.Y)
	}
}

// dragScrollbar maps a row on the scrollbar track to an offset, as dragging
// a native thumb would.
func (m *Model) dragScrollbar(y int) {
	_, rows := m.drawSize()
	maxOffset := max(0, m.list.TotalSize()-m.list.ViewportSize())
	y = max(0, min(y, rows-1))
	target := maxOffset
	if rows > 1 {
		target = y * maxOffset / (rows - 1)
	}
	m.scrollBy(target - m.container.offset)
}

// scrollBy moves the container like a user scroll and reports it to the list.
func (m *Model) scrollBy(delta int) {
	total := m.list.TotalSize()
	vp := m.list.ViewportSize()
	next := max(0, min(m.container.offset+delta, total-vp))
	if next == m.container.offset {
		return
	}
	m.container.offset = next
	m.list.OnScroll(host.ScrollEvent{Offset: next, ClientSize: vp, ScrollSize: total})
	m.followCursor()
}

func (m *Model) moveCursor(delta int) {
	n := m.count()
	if n == 0 {
		return
	}
	m.cursor = max(0, min(m.cursor+delta, n-1))
	m.list.ScrollToItem(m.cursor, window.AlignAuto)
}

// followCursor keeps the cursor on a visible item after a free scroll.
func (m *Model) followCursor() {
	if m.count() == 0 {
		return
	}
	r := m.list.Range()
	m.cursor = max(r.VisibleStart, min(m.cursor, r.VisibleStop))
}

func (m *Model) reload() {
	if m.configPath == "" {
		return
	}
	cfg, err := config.LoadFrom(m.configPath)
	if err != nil {
		m.err = err
		return
	}
	m.applyConfig(cfg)
}

func (m *Model) applyConfig(cfg *config.Config) {
	prev := m.cfg
	if cfg.Source != prev.Source || (cfg.Source.Kind == config.SourceSynthetic && cfg.List.ItemCount != prev.List.ItemCount) {
		src, err := OpenSource(m.ctx, cfg)
		if err != nil {
			m.err = err
			return
		}
		if m.ownsSource {
			_ = m.src.Close()
		}
		m.src, m.ownsSource = src, true
		if cfg.Source != prev.Source {
			m.sizeVersion++
		}
	}

	switch {
	case cfg.UI.Markdown && m.md == nil:
		m.md = markdown.NewRenderer(styles.GetMarkdownTheme(), m.log)
		m.sizeVersion++
	case !cfg.UI.Markdown && m.md != nil:
		m.md = nil
		m.sizeVersion++
	}

	m.keys.ApplyOverrides(cfg.Keymap.Overrides)
	styles.ApplyThemeWithOverrides(cfg.UI.Theme.Name, cfg.UI.Theme.Overrides)
	m.cfg = cfg
	m.log.Info("config applied", "layout", cfg.List.Layout, "count", m.src.Len())
	m.applyInputs()
}

// applyInputs recomputes the list props from config, source and terminal
// size. A rejected update keeps the previous props and shows the error.
func (m *Model) applyInputs() {
	if err := m.list.InputsChanged(m.props()); err != nil {
		m.err = err
		m.log.Warn("list inputs rejected", "err", err)
		return
	}
	m.err = nil

	// A shrinking list clamps the container, which reports a scroll.
	total, vp := m.list.TotalSize(), m.list.ViewportSize()
	if clamped := max(0, min(m.container.offset, total-vp)); clamped != m.container.offset {
		m.container.offset = clamped
		m.list.OnScroll(host.ScrollEvent{Offset: clamped, ClientSize: vp, ScrollSize: total})
	}
	if n := m.count(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *Model) props() host.Props[*rowWindow] {
	lc := m.cfg.List
	height, width, err := lc.Extents()
	if err != nil {
		// Validate already rejected bad extents; fall back to the terminal.
		height, width = host.Extent{}, host.Extent{}
	}
	cols, rows := m.available()

	p := host.Props[*rowWindow]{
		ItemCount:           m.src.Len(),
		ItemSize:            lc.ItemSize,
		EstimatedItemSize:   lc.EstimatedItemSize,
		Layout:              lc.Layout,
		Direction:           lc.Direction,
		Height:              fit(height, rows),
		Width:               fit(width, cols),
		OverscanCount:       host.Overscan(lc.OverscanCount),
		InitialScrollOffset: lc.InitialScrollOffset,
		UseIsScrolling:      lc.UseIsScrolling,
		ItemData:            m.rows,
		ItemKey: func(i int, w *rowWindow) any {
			if r, ok := w.at(i); ok {
				return r.ID
			}
			return i
		},
		OnItemsRendered: func(r window.Range) {
			m.log.Debug("items rendered", "visible", r.VisibleStart, "to", r.VisibleStop)
		},
		OnScroll: func(info host.ScrollInfo) {
			m.lastScroll = info
		},
	}
	if lc.Variable {
		p.ItemSizeFunc = m.sizeOf
		p.ItemSizeVersion = m.sizeVersion
	}
	return p
}

// fit bounds a numeric extent by the space the terminal has, and uses the
// whole space when unset. Lengths such as "100%" pass through unchanged.
func fit(e host.Extent, avail int) host.Extent {
	switch {
	case !e.IsSet():
		return host.Units(avail)
	case e.Numeric():
		return host.Units(min(e.Value(), avail))
	default:
		return e
	}
}

// available returns the columns and rows left for items.
func (m *Model) available() (cols, rows int) {
	cols = m.width
	if m.showScrollbar() {
		cols--
	}
	rows = m.height - m.footerHeight()
	return max(1, cols), max(1, rows)
}

// drawSize returns the columns and rows the items are drawn into.
func (m *Model) drawSize() (cols, rows int) {
	cols, rows = m.available()
	p := m.list.Props()
	if p.Width.Numeric() {
		cols = p.Width.Value()
	}
	if p.Height.Numeric() {
		rows = p.Height.Value()
	}
	return cols, rows
}

func (m *Model) showScrollbar() bool {
	return m.cfg.UI.ShowScrollbar && !horizontal(m.cfg.List)
}

func horizontal(lc config.ListConfig) bool {
	return strings.EqualFold(lc.Layout, "horizontal") || strings.EqualFold(lc.Direction, "horizontal")
}

func (m *Model) count() int {
	return m.list.Props().ItemCount
}

// Close detaches the list and releases the source if the model opened it.
func (m *Model) Close() {
	if m.list != nil {
		m.list.Detach()
	}
	if m.loop != nil {
		m.loop.Close()
		m.fired.stop()
	}
	if m.ownsSource && m.src != nil {
		_ = m.src.Close()
	}
}

// Cursor returns the index of the selected item.
func (m *Model) Cursor() int { return m.cursor }

// Err returns the last config or input error, if any.
func (m *Model) Err() error { return m.err }
