// Package window implements the windowing strategies behind virtualized
// lists: given a scroll offset, an item count and item sizes, a Strategy
// locates items along the list axis, finds the items that intersect the
// viewport and computes the offset that brings an item into view.
//
// Fixed handles lists whose items all share one size. Variable handles
// per-item sizes through a sizecache.Cache owned by the strategy value, so a
// Variable must not be shared between lists.
//
// RangeToRender combines a strategy with the current ScrollState to produce
// the overscanned Range a host renders.
package window
