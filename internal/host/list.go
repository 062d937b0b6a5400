// Package host drives a windowing strategy from scroll signals.
//
// A List owns the scroll state, the size cache (through its strategy) and
// the style cache of one list instance. The owner calls Attach once the
// scrollable container exists, InputsChanged whenever props change, OnScroll
// for every scroll signal and Render to produce the items to draw. A List is
// safe for concurrent use. Callbacks and container pushes run after the
// list is unlocked, so they may call back into it; ItemSizeFunc and ItemKey
// run with the list locked and must not. Hosts with an event loop should
// use scheduler.Loop so the debounce callback runs on the loop goroutine.
package host

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wilbur182/vlist/internal/scheduler"
	"github.com/wilbur182/vlist/internal/stylecache"
	"github.com/wilbur182/vlist/internal/window"
)

// IsScrollingDebounce is how long scrolling must be quiet before the list
// stops reporting IsScrolling.
const IsScrollingDebounce = 150 * time.Millisecond

// ItemProps is passed to the per-item render function.
type ItemProps[D any] struct {
	Data  D
	Index int
	Key   any
	// IsScrolling is only reported when Props.UseIsScrolling is set.
	IsScrolling bool
	Style       stylecache.Style
}

// Frame describes one render pass.
type Frame struct {
	Range       window.Range
	TotalSize   int
	IsScrolling bool
	// Rendered is the number of items visited.
	Rendered int
	// OuterStyle styles the scrollable element, InnerStyle the element
	// holding the items.
	OuterStyle map[string]string
	InnerStyle map[string]string
	// OuterElement and InnerElement are the resolved element types.
	OuterElement string
	InnerElement string
}

// Option configures a List.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	scheduler scheduler.Scheduler
}

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithScheduler sets the scheduler for the scrolling debounce.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// List is one windowed list instance.
type List[D any] struct {
	mu sync.Mutex
	// outbox holds callbacks queued while mu is held.
	outbox []func()

	props    Props[D]
	resolved resolved

	strategy window.Strategy
	variable *window.Variable // nil for fixed lists

	state       window.ScrollState
	pendingPush bool

	styles     *stylecache.Cache
	styleEpoch uint64

	sched    scheduler.Scheduler
	reset    scheduler.Handle
	resetSeq uint64

	container Container
	log       *slog.Logger

	warnedDirection bool
	warnedTagName   bool

	lastRange    window.Range
	rangeEmitted bool
	lastScroll   ScrollInfo
	scrollSent   bool
}

// New validates props and creates a List.
func New[D any](props Props[D], opts ...Option) (*List[D], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.scheduler == nil {
		o.scheduler = scheduler.NewTimer()
	}

	r, err := validate(props)
	if err != nil {
		return nil, err
	}

	l := &List[D]{
		props:    props,
		resolved: r,
		styles:   stylecache.New(),
		sched:    o.scheduler,
		log:      o.logger,
	}
	l.warnDeprecated()
	l.buildStrategy()
	l.state.Offset = max(0, props.InitialScrollOffset)
	return l, nil
}

func (l *List[D]) buildStrategy() {
	if l.props.ItemSizeFunc == nil {
		l.variable = nil
		l.strategy = window.Fixed{Size: l.props.ItemSize}
		return
	}
	l.variable = window.NewVariable(l.props.ItemSizeFunc, l.props.EstimatedItemSize)
	l.strategy = l.variable
}

func (l *List[D]) warnDeprecated() {
	if l.resolved.legacyTagName && !l.warnedTagName {
		l.warnedTagName = true
		l.log.Warn("the OuterTagName and InnerTagName props are deprecated; use OuterElementType and InnerElementType instead")
	}
	if l.resolved.legacyDirection && !l.warnedDirection {
		l.warnedDirection = true
		l.log.Warn(`direction should be either "ltr" (default) or "rtl"; use layout for "vertical" (default) or "horizontal" orientation`,
			"direction", l.props.Direction)
	}
}

// Attach connects the list to its container, applies the initial scroll
// offset and fires the callbacks for the first render.
func (l *List[D]) Attach(c Container) {
	l.do(func() {
		l.container = c
		if c != nil && l.props.InitialScrollOffset > 0 {
			l.push()
		}
		l.callPropsCallbacks()
	})
}

// Detach cancels the pending debounce and forgets the container.
func (l *List[D]) Detach() {
	l.do(func() {
		if l.reset != 0 {
			l.sched.Cancel(l.reset)
			l.reset = 0
		}
		l.container = nil
	})
}

// InputsChanged applies new props. Invalid props are rejected and the
// previous props stay in effect.
func (l *List[D]) InputsChanged(p Props[D]) error {
	var err error
	l.do(func() { err = l.inputsChanged(p) })
	return err
}

func (l *List[D]) inputsChanged(p Props[D]) error {
	r, err := validate(p)
	if err != nil {
		return err
	}
	prev := l.props
	prevLayout := l.resolved.layout
	l.props = p
	l.resolved = r
	l.warnDeprecated()

	switch {
	case (prev.ItemSizeFunc == nil) != (p.ItemSizeFunc == nil):
		l.buildStrategy()
		l.styleEpoch++
	case l.variable != nil:
		l.variable.SetEstimatedItemSize(p.EstimatedItemSize)
		if prev.ItemSizeVersion != p.ItemSizeVersion || prevLayout != r.layout {
			l.variable.SetSizeFunc(p.ItemSizeFunc)
			l.styleEpoch++
		} else {
			l.variable.Cache().SetSizeFunc(p.ItemSizeFunc)
			if prev.ItemCount != p.ItemCount {
				from := min(prev.ItemCount, p.ItemCount)
				l.variable.ResetAfterIndex(from)
				l.styles.InvalidateFrom(from)
			}
		}
	default:
		l.strategy = window.Fixed{Size: p.ItemSize}
	}

	l.log.Debug("inputs changed", "count", p.ItemCount, "layout", r.layout, "direction", r.direction)
	l.commit()
	return nil
}

// OnScroll handles a scroll signal from the container.
func (l *List[D]) OnScroll(ev ScrollEvent) {
	l.do(func() { l.onScroll(ev) })
}

func (l *List[D]) onScroll(ev ScrollEvent) {
	frame := l.frame()
	client, scroll := ev.ClientSize, ev.ScrollSize
	if scroll <= 0 {
		client, scroll = frame.ViewportSize, l.strategy.EstimatedTotalSize(frame)
	}

	raw := ev.Offset
	if l.rtlHorizontal() {
		raw = fromContainer(rtlType(l.container), raw, client, scroll)
	}
	offset := max(0, min(raw, scroll-client))
	if offset == l.state.Offset {
		return
	}

	l.state.IsScrolling = true
	l.state.Direction = directionOf(l.state.Offset, offset)
	l.state.Offset = offset
	l.state.UpdateWasRequested = false
	l.pendingPush = false

	l.log.Debug("scroll", "offset", offset, "direction", l.state.Direction)
	l.scheduleReset()
	l.commit()
}

// ScrollTo scrolls to offset, clamped to the scrollable range.
func (l *List[D]) ScrollTo(offset int) {
	l.do(func() { l.scrollTo(offset) })
}

func (l *List[D]) scrollTo(offset int) {
	offset = window.ClampOffset(l.strategy, l.frame(), max(0, offset))
	if offset == l.state.Offset {
		return
	}

	l.state.Direction = directionOf(l.state.Offset, offset)
	l.state.Offset = offset
	l.state.UpdateWasRequested = true
	l.pendingPush = true

	l.scheduleReset()
	l.commit()
}

// ScrollToItem scrolls index into view under align.
func (l *List[D]) ScrollToItem(index int, align window.Align) {
	l.do(func() {
		f := l.frame()
		index = max(0, min(index, f.ItemCount-1))
		l.scrollTo(l.strategy.OffsetForIndexAndAlignment(f, index, align, l.state.Offset))
	})
}

// ResetAfterIndex drops cached sizes and styles at and after index. It only
// affects variable lists. With forceUpdate the callbacks run again as after
// a render.
func (l *List[D]) ResetAfterIndex(index int, forceUpdate bool) {
	l.do(func() {
		if l.variable == nil {
			return
		}
		l.variable.ResetAfterIndex(index)
		l.styles.InvalidateFrom(index)
		if forceUpdate {
			l.commit()
		}
	})
}

// Render visits every item in the overscanned range and reports the frame.
// visit runs after the list is unlocked.
func (l *List[D]) Render(visit func(ItemProps[D])) Frame {
	items, frame := l.layoutItems(visit != nil)
	for _, it := range items {
		visit(it)
	}
	return frame
}

func (l *List[D]) layoutItems(collect bool) ([]ItemProps[D], Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.syncStyles()

	f := l.frame()
	r := l.rangeToRender()
	var items []ItemProps[D]
	if f.ItemCount > 0 && collect {
		items = make([]ItemProps[D], 0, r.OverscanStop-r.OverscanStart+1)
		for i := r.OverscanStart; i <= r.OverscanStop; i++ {
			items = append(items, ItemProps[D]{
				Data:        l.props.ItemData,
				Index:       i,
				Key:         l.key(i),
				IsScrolling: l.props.UseIsScrolling && l.state.IsScrolling,
				Style:       l.styles.Get(i, l.computeStyle),
			})
		}
	}

	// Read after the items so variable sizes measured above count.
	total := l.strategy.EstimatedTotalSize(f)
	return items, Frame{
		Range:       r,
		TotalSize:   total,
		IsScrolling: l.state.IsScrolling,
		Rendered:    len(items),
		OuterStyle:  l.outerStyle(),
		InnerStyle:  l.innerStyle(total),

		OuterElement: l.resolved.outerElement,
		InnerElement: l.resolved.innerElement,
	}
}

// Range returns the render range for the current state.
func (l *List[D]) Range() window.Range {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rangeToRender()
}

// State returns a copy of the scroll state.
func (l *List[D]) State() window.ScrollState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Props returns the props in effect.
func (l *List[D]) Props() Props[D] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.props
}

// Layout returns the resolved layout axis.
func (l *List[D]) Layout() window.Layout {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolved.layout
}

// Direction returns the resolved text direction.
func (l *List[D]) Direction() window.Direction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolved.direction
}

// TotalSize returns the current estimated total extent.
func (l *List[D]) TotalSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.strategy.EstimatedTotalSize(l.frame())
}

// ItemOffset returns the offset of index along the list axis.
func (l *List[D]) ItemOffset(index int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.strategy.ItemOffset(l.frame(), index)
}

// ItemSize returns the size of index along the list axis.
func (l *List[D]) ItemSize(index int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.strategy.ItemSize(l.frame(), index)
}

// ViewportSize returns the extent of the viewport along the list axis.
func (l *List[D]) ViewportSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame().ViewportSize
}

// do runs fn with the list locked, then the callbacks fn queued.
func (l *List[D]) do(fn func()) {
	l.mu.Lock()
	fn()
	calls := l.outbox
	l.outbox = nil
	l.mu.Unlock()

	for _, call := range calls {
		call()
	}
}

func (l *List[D]) rangeToRender() window.Range {
	return window.RangeToRender(l.strategy, l.frame(), l.state, l.props.overscan())
}

func (l *List[D]) frame() window.Frame {
	viewport := l.props.Height.Value()
	if l.resolved.layout == window.Horizontal {
		viewport = l.props.Width.Value()
	}
	return window.Frame{ItemCount: l.props.ItemCount, ViewportSize: max(0, viewport)}
}

func (l *List[D]) rtlHorizontal() bool {
	return l.resolved.layout == window.Horizontal && l.resolved.direction == window.RTL
}

func (l *List[D]) key(index int) any {
	if l.props.ItemKey == nil {
		return index
	}
	return l.props.ItemKey(index, l.props.ItemData)
}

func (l *List[D]) scheduleReset() {
	if l.reset != 0 {
		l.sched.Cancel(l.reset)
	}
	l.resetSeq++
	seq := l.resetSeq
	l.reset = l.sched.Schedule(IsScrollingDebounce, func() {
		l.do(func() { l.resetIsScrolling(seq) })
	})
}

// resetIsScrolling ends scrolling unless a newer scroll rescheduled the
// reset or the list was detached after the timer fired.
func (l *List[D]) resetIsScrolling(seq uint64) {
	if seq != l.resetSeq || l.reset == 0 {
		return
	}
	l.reset = 0
	l.state.IsScrolling = false
	l.styles.Reset()
	l.log.Debug("scrolling settled", "offset", l.state.Offset)
	l.commit()
}

// commit runs after every state or props change: it pushes a requested
// offset to the container once, then fires the callbacks.
func (l *List[D]) commit() {
	if l.pendingPush && l.container != nil {
		l.push()
	}
	l.callPropsCallbacks()
}

func (l *List[D]) push() {
	offset := l.state.Offset
	if l.rtlHorizontal() {
		f := l.frame()
		offset = toContainer(rtlType(l.container), offset, f.ViewportSize, l.strategy.EstimatedTotalSize(f))
	}
	c := l.container
	l.outbox = append(l.outbox, func() { c.SetScrollOffset(offset) })
	l.pendingPush = false
}

func (l *List[D]) callPropsCallbacks() {
	if cb := l.props.OnItemsRendered; cb != nil && l.props.ItemCount > 0 {
		r := l.rangeToRender()
		if !l.rangeEmitted || r != l.lastRange {
			l.lastRange, l.rangeEmitted = r, true
			l.outbox = append(l.outbox, func() { cb(r) })
		}
	}

	if cb := l.props.OnScroll; cb != nil {
		info := ScrollInfo{
			Direction:          l.state.Direction,
			Offset:             l.state.Offset,
			UpdateWasRequested: l.state.UpdateWasRequested,
		}
		if !l.scrollSent || info != l.lastScroll {
			l.lastScroll, l.scrollSent = info, true
			l.outbox = append(l.outbox, func() { cb(info) })
		}
	}
}

func (l *List[D]) syncStyles() {
	in := stylecache.Inputs{
		Layout:    l.resolved.layout,
		Direction: l.resolved.direction,
		Epoch:     l.styleEpoch,
	}
	if l.strategy.ResetsStyleCacheOnSizeChange() {
		in.ItemSize = l.props.ItemSize
	}
	l.styles.Sync(in)
}

func (l *List[D]) computeStyle(index int) stylecache.Style {
	f := l.frame()
	return stylecache.Style{
		Layout:    l.resolved.layout,
		Direction: l.resolved.direction,
		Offset:    l.strategy.ItemOffset(f, index),
		Size:      l.strategy.ItemSize(f, index),
	}
}

func (l *List[D]) outerStyle() map[string]string {
	return map[string]string{
		"position":    "relative",
		"overflow":    "auto",
		"will-change": "transform",
		"height":      l.props.Height.CSS(),
		"width":       l.props.Width.CSS(),
		"direction":   l.resolved.direction.String(),
	}
}

func (l *List[D]) innerStyle(total int) map[string]string {
	s := map[string]string{}
	if l.resolved.layout == window.Horizontal {
		s["height"] = "100%"
		s["width"] = stylecache.Px(total)
	} else {
		s["height"] = stylecache.Px(total)
		s["width"] = "100%"
	}
	if l.state.IsScrolling {
		s["pointer-events"] = "none"
	}
	return s
}

func directionOf(prev, next int) window.ScrollDirection {
	if prev < next {
		return window.Forward
	}
	return window.Backward
}
