package tealist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/wilbur182/vlist/internal/host"
	"github.com/wilbur182/vlist/internal/mouse"
	"github.com/wilbur182/vlist/internal/source"
	"github.com/wilbur182/vlist/internal/styles"
	"github.com/wilbur182/vlist/internal/ui"
	"github.com/wilbur182/vlist/internal/window"
)

const (
	titleWidth  = 10
	columnInset = 2
)

func (m *Model) View() string {
	r := m.list.Range()
	m.fetch(r)

	var items []host.ItemProps[*rowWindow]
	frame := m.list.Render(func(ip host.ItemProps[*rowWindow]) {
		items = append(items, ip)
	})

	cols, rows := m.drawSize()
	m.mouse.HitMap.Clear()
	var body string
	if m.list.Layout() == window.Horizontal {
		body = m.composeHorizontal(items, cols, rows)
	} else {
		body = m.composeVertical(items, cols, rows)
		if m.showScrollbar() {
			bar := ui.RenderScrollbar(ui.ScrollbarParams{
				TotalSize:    frame.TotalSize,
				ScrollOffset: m.list.State().Offset,
				ViewportSize: m.list.ViewportSize(),
				TrackHeight:  rows,
			})
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
			m.mouse.HitMap.Add(mouse.RegionScrollbar, mouse.Rect{X: cols, Y: 0, W: 1, H: rows}, 0)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer(frame))
}

// fetch loads the rows of the overscanned range into the item data.
func (m *Model) fetch(r window.Range) {
	m.rows.start, m.rows.rows = r.OverscanStart, nil
	if m.count() == 0 {
		return
	}
	rows, err := m.src.Rows(m.ctx, r.OverscanStart, r.OverscanStop)
	if err != nil {
		m.err = err
		return
	}
	m.rows.rows = rows
}

// composeVertical places each item's lines at its style top.
func (m *Model) composeVertical(items []host.ItemProps[*rowWindow], cols, rows int) string {
	canvas := make([]string, rows)
	offset := m.list.State().Offset

	for _, ip := range items {
		var lines []string
		if row, ok := ip.Data.at(ip.Index); ok && !ip.IsScrolling {
			lines = m.itemLines(row, cols)
		}
		top := ip.Style.Offset - offset
		if lo, hi := max(0, top), min(rows, top+ip.Style.Size); lo < hi {
			m.mouse.HitMap.Add(mouse.RegionItem, mouse.Rect{X: 0, Y: lo, W: cols, H: hi - lo}, ip.Index)
		}
		for k := 0; k < ip.Style.Size; k++ {
			y := ip.Style.Offset + k - offset
			if y < 0 || y >= rows {
				continue
			}
			switch {
			case ip.IsScrolling:
				canvas[y] = ui.RenderPlaceholder(ip.Index+k, cols)
			case k < len(lines):
				canvas[y] = m.fitLine(lines[k], cols, ip.Index == m.cursor)
			default:
				canvas[y] = m.fitLine("", cols, ip.Index == m.cursor)
			}
		}
	}
	for y, line := range canvas {
		if line == "" {
			canvas[y] = strings.Repeat(" ", cols)
		}
	}
	return strings.Join(canvas, "\n")
}

// composeHorizontal lays items out as columns at their style offset. For
// rtl lists the offset is measured from the right edge.
func (m *Model) composeHorizontal(items []host.ItemProps[*rowWindow], cols, rows int) string {
	offset := m.list.State().Offset
	rtl := m.list.Direction() == window.RTL
	lines := make([][]string, rows)

	for _, ip := range items {
		x := ip.Style.Offset - offset
		lo, hi := max(0, x), min(cols, x+ip.Style.Size)
		if lo >= hi {
			continue
		}
		x0 := lo
		if rtl {
			x0 = cols - hi
		}
		m.mouse.HitMap.Add(mouse.RegionItem, mouse.Rect{X: x0, Y: 0, W: hi - lo, H: rows}, ip.Index)

		row, ok := ip.Data.at(ip.Index)
		content := columnLines(row)
		for y := range rows {
			text := ""
			if ip.IsScrolling {
				text = ui.RenderPlaceholder(ip.Index+y, ip.Style.Size-columnInset)
			} else if ok && y < len(content) {
				text = content[y]
			}
			text = ansi.TruncateLeft(text, lo-x, "")
			seg := m.fitLine(text, hi-lo, ok && ip.Index == m.cursor)
			lines[y] = append(lines[y], seg)
		}
	}

	out := make([]string, rows)
	for y, segs := range lines {
		if rtl {
			for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
				segs[i], segs[j] = segs[j], segs[i]
			}
		}
		line := strings.Join(segs, "")
		pad := strings.Repeat(" ", max(0, cols-ansi.StringWidth(line)))
		if rtl {
			out[y] = pad + line
		} else {
			out[y] = line + pad
		}
	}
	return strings.Join(out, "\n")
}

// itemLines returns the display lines of a vertical item.
func (m *Model) itemLines(r source.Row, cols int) []string {
	if m.md != nil {
		return append([]string{styles.Title.Render(r.Title)}, m.md.Render(r.Body, cols)...)
	}
	body := strings.Split(r.Body, "\n")
	lines := make([]string, len(body))
	for k, b := range body {
		label := ""
		if k == 0 {
			label = runewidth.Truncate(r.Title, titleWidth, "…")
		}
		lines[k] = runewidth.FillRight(label, titleWidth) + " " + b
	}
	return lines
}

// columnLines returns the display lines of a horizontal item.
func columnLines(r source.Row) []string {
	if r.Title == "" {
		return nil
	}
	return append([]string{r.Title}, strings.Split(r.Body, "\n")...)
}

// sizeOf measures item i along the list axis.
func (m *Model) sizeOf(i int) int {
	rows, err := m.src.Rows(m.ctx, i, i)
	if err != nil || len(rows) == 0 {
		return max(1, m.cfg.List.ItemSize)
	}
	r := rows[0]

	if horizontal(m.cfg.List) {
		w := 0
		for _, line := range columnLines(r) {
			w = max(w, runewidth.StringWidth(line))
		}
		return w + columnInset
	}
	if m.md != nil {
		cols, _ := m.available()
		return 1 + m.md.Height(r.Body, cols)
	}
	return max(1, r.Lines)
}

// fitLine truncates or pads line to exactly width cells and styles it.
func (m *Model) fitLine(line string, width int, selected bool) string {
	if width <= 0 {
		return ""
	}
	line = ansi.Truncate(line, width, "…")
	if pad := width - ansi.StringWidth(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	if selected {
		return styles.RowSelected.Render(line)
	}
	return styles.Row.Render(line)
}

func (m *Model) footer(frame host.Frame) string {
	st := m.list.State()
	r := frame.Range
	status := fmt.Sprintf("%d-%d of %d  offset %d/%d", r.VisibleStart, r.VisibleStop, m.count(),
		st.Offset, max(0, frame.TotalSize-m.list.ViewportSize()))
	if m.count() == 0 {
		status = "no items"
	}
	if frame.IsScrolling {
		status += "  scrolling " + st.Direction.String()
	}
	if m.err != nil {
		status += "  " + styles.ErrorText.Render(m.err.Error())
	}
	out := styles.StatusBar.Render(ansi.Truncate(status, max(1, m.width-2), "…"))
	if m.cfg.UI.ShowFooter {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.helpView())
	}
	return out
}

func (m *Model) helpView() string {
	m.help.ShowAll = m.showHelp
	return m.help.View(m.keys)
}

// footerHeight is the number of terminal rows below the items.
func (m *Model) footerHeight() int {
	h := 1
	if m.cfg.UI.ShowFooter {
		h += lipgloss.Height(m.helpView())
	}
	return h
}
