// Package markdown renders item bodies for the terminal list. The rendered
// line count of a body is its item size, so the renderer doubles as the size
// function of a variable list.
package markdown

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"
)

const (
	// MinWidthForMarkdown is the narrowest width glamour is used for.
	// Narrower bodies are word wrapped as plain text.
	MinWidthForMarkdown = 30

	// MaxCacheEntries bounds the render cache before it is dropped.
	MaxCacheEntries = 512
)

// Renderer renders markdown bodies to lines, caching by content and width.
type Renderer struct {
	mu    sync.Mutex
	theme string
	width int
	term  *glamour.TermRenderer
	cache map[uint64][]string
	log   *slog.Logger
}

// NewRenderer creates a renderer for a glamour standard style such as
// "dark", "light" or "notty". Empty means "dark".
func NewRenderer(theme string, logger *slog.Logger) *Renderer {
	if theme == "" {
		theme = "dark"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Renderer{
		theme: theme,
		cache: make(map[uint64][]string),
		log:   logger,
	}
}

// Render returns the styled lines of body wrapped to width.
func (r *Renderer) Render(body string, width int) []string {
	if body == "" {
		return nil
	}
	if width < MinWidthForMarkdown {
		return WrapText(body, width)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey(body, width)
	if lines, ok := r.cache[key]; ok {
		return lines
	}

	term, err := r.termFor(width)
	if err != nil {
		r.log.Warn("glamour renderer", "err", err, "width", width)
		return WrapText(body, width)
	}
	out, err := term.Render(body)
	if err != nil {
		r.log.Warn("glamour render", "err", err)
		return WrapText(body, width)
	}

	lines := strings.Split(strings.TrimRight(out, "\n\r\t "), "\n")
	if len(r.cache) >= MaxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

// Height is the number of terminal rows body occupies at width, at least 1.
func (r *Renderer) Height(body string, width int) int {
	return max(1, len(r.Render(body, width)))
}

// Cached returns the number of cached renders.
func (r *Renderer) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// termFor returns the glamour renderer for width, rebuilding it and dropping
// the cache when the width changes. Callers hold r.mu.
func (r *Renderer) termFor(width int) (*glamour.TermRenderer, error) {
	if r.term != nil && r.width == width {
		return r.term, nil
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.term = term
	r.width = width
	r.cache = make(map[uint64][]string)
	return term, nil
}

func cacheKey(body string, width int) uint64 {
	h := xxhash.New()
	h.WriteString(body)
	h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// WrapText word wraps text to maxWidth display cells, treating newlines as
// spaces. Words wider than maxWidth get a line of their own.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	lineWidth := runewidth.StringWidth(line)
	for _, w := range words[1:] {
		ww := runewidth.StringWidth(w)
		if lineWidth+1+ww <= maxWidth {
			line += " " + w
			lineWidth += 1 + ww
			continue
		}
		lines = append(lines, line)
		line, lineWidth = w, ww
	}
	return append(lines, line)
}
