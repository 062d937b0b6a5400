package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"github.com/wilbur182/vlist/internal/host"
	"github.com/wilbur182/vlist/internal/scheduler"
	"github.com/wilbur182/vlist/internal/source"
	"github.com/wilbur182/vlist/internal/stylecache"
	"github.com/wilbur182/vlist/internal/window"
	"golang.org/x/term"
)

func rangeCommand() *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: "Print the render range and item styles for the given inputs as JSON",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Usage: "Item count (default from config)"},
			&cli.IntFlag{Name: "item-size", Usage: "Fixed item size (default from config)"},
			&cli.StringFlag{Name: "height", Usage: "Viewport height, a number or a CSS length"},
			&cli.StringFlag{Name: "width", Usage: "Viewport width, a number or a CSS length"},
			&cli.StringFlag{Name: "layout", Usage: "vertical or horizontal"},
			&cli.StringFlag{Name: "direction", Usage: "ltr or rtl"},
			&cli.IntFlag{Name: "overscan", Usage: "Overscan count"},
			&cli.IntFlag{Name: "offset", Usage: "Initial scroll offset"},
			&cli.IntFlag{Name: "scroll", Value: -1, Usage: "Deliver a user scroll to this offset"},
			&cli.IntFlag{Name: "item", Value: -1, Usage: "Scroll this item into view"},
			&cli.StringFlag{Name: "align", Value: "auto", Usage: "Alignment for --item: auto, start, center or end"},
			&cli.BoolFlag{Name: "variable", Usage: "Size items by their line count"},
			&cli.StringFlag{Name: "db", Usage: "Take item sizes from this SQLite database"},
		},
		Action: printRange,
	}
}

type rangeItem struct {
	Index int    `json:"index"`
	Key   any    `json:"key"`
	Style string `json:"style"`
}

type rangeOutput struct {
	OverscanStart int         `json:"overscanStartIndex"`
	OverscanStop  int         `json:"overscanStopIndex"`
	VisibleStart  int         `json:"visibleStartIndex"`
	VisibleStop   int         `json:"visibleStopIndex"`
	Offset        int         `json:"scrollOffset"`
	Direction     string      `json:"scrollDirection"`
	IsScrolling   bool        `json:"isScrolling"`
	TotalSize     int         `json:"totalSize"`
	OuterElement  string      `json:"outerElementType"`
	OuterStyle    string      `json:"outerStyle"`
	InnerElement  string      `json:"innerElementType"`
	InnerStyle    string      `json:"innerStyle"`
	Items         []rangeItem `json:"items"`
}

func printRange(c *cli.Context) error {
	logger, closeLog, err := newLogger(c, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, _, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lc := cfg.List
	height, width, err := lc.Extents()
	if err != nil {
		return err
	}
	if c.IsSet("height") {
		height = flagExtent(c.String("height"))
	}
	if c.IsSet("width") {
		width = flagExtent(c.String("width"))
	}

	p := host.Props[struct{}]{
		ItemCount:           lc.ItemCount,
		ItemSize:            lc.ItemSize,
		EstimatedItemSize:   lc.EstimatedItemSize,
		Layout:              lc.Layout,
		Direction:           lc.Direction,
		Height:              height,
		Width:               width,
		OverscanCount:       host.Overscan(lc.OverscanCount),
		InitialScrollOffset: lc.InitialScrollOffset,
	}
	if c.IsSet("count") {
		p.ItemCount = c.Int("count")
	}
	if c.IsSet("item-size") {
		p.ItemSize = c.Int("item-size")
	}
	if c.IsSet("layout") {
		p.Layout = c.String("layout")
	}
	if c.IsSet("direction") {
		p.Direction = c.String("direction")
	}
	if c.IsSet("overscan") {
		p.OverscanCount = host.Overscan(c.Int("overscan"))
	}
	if c.IsSet("offset") {
		p.InitialScrollOffset = c.Int("offset")
	}

	if db := c.String("db"); db != "" {
		src, err := source.OpenSQLite(c.Context, db, cfg.Source.PageSize)
		if err != nil {
			return err
		}
		defer src.Close()
		if !c.IsSet("count") {
			p.ItemCount = src.Len()
		}
		p.ItemSizeFunc = source.SizeFunc(c.Context, src, p.ItemSize)
	} else if c.Bool("variable") || lc.Variable {
		src := source.NewSynthetic(p.ItemCount, cfg.Source.Seed)
		p.ItemSizeFunc = source.SizeFunc(c.Context, src, p.ItemSize)
	}

	align := window.ParseAlign(c.String("align"))

	// Nothing waits on the debounce, so a manual clock that never advances
	// keeps IsScrolling as the last signal left it.
	l, err := host.New(p, host.WithLogger(logger), host.WithScheduler(scheduler.NewManual()))
	if err != nil {
		return err
	}
	l.Attach(nil)
	defer l.Detach()

	if offset := c.Int("scroll"); offset >= 0 {
		l.OnScroll(host.ScrollEvent{Offset: offset})
	}
	if item := c.Int("item"); item >= 0 {
		l.ScrollToItem(item, align)
	}

	var items []rangeItem
	frame := l.Render(func(ip host.ItemProps[struct{}]) {
		items = append(items, rangeItem{Index: ip.Index, Key: ip.Key, Style: ip.Style.CSS()})
	})
	st := l.State()
	out := rangeOutput{
		OverscanStart: frame.Range.OverscanStart,
		OverscanStop:  frame.Range.OverscanStop,
		VisibleStart:  frame.Range.VisibleStart,
		VisibleStop:   frame.Range.VisibleStop,
		Offset:        st.Offset,
		Direction:     st.Direction.String(),
		IsScrolling:   frame.IsScrolling,
		TotalSize:     frame.TotalSize,
		OuterElement:  frame.OuterElement,
		OuterStyle:    stylecache.FormatCSS(frame.OuterStyle),
		InnerElement:  frame.InnerElement,
		InnerStyle:    stylecache.FormatCSS(frame.InnerStyle),
		Items:         items,
	}
	return writeJSON(c.App.Writer, out)
}

// flagExtent reads a number of units, or passes anything else through as a
// CSS length for the host to judge.
func flagExtent(s string) host.Extent {
	if n, err := strconv.Atoi(s); err == nil {
		return host.Units(n)
	}
	e, _ := host.ParseExtent(s)
	return e
}

// writeJSON indents when w is a terminal.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
