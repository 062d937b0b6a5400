// Package keymap resolves key presses, including multi-key sequences such
// as "g g", to list commands.
package keymap

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Command IDs understood by the list view.
const (
	CmdScrollDown   = "scroll-down"
	CmdScrollUp     = "scroll-up"
	CmdPageDown     = "page-down"
	CmdPageUp       = "page-up"
	CmdHalfDown     = "half-page-down"
	CmdHalfUp       = "half-page-up"
	CmdTop          = "top"
	CmdBottom       = "bottom"
	CmdCursorDown   = "cursor-down"
	CmdCursorUp     = "cursor-up"
	CmdAlignStart   = "align-start"
	CmdAlignCenter  = "align-center"
	CmdAlignEnd     = "align-end"
	CmdAlignAuto    = "align-auto"
	CmdToggleHelp   = "toggle-help"
	CmdReloadConfig = "reload-config"
	CmdQuit         = "quit"
)

// Command is a named action.
type Command struct {
	ID   string
	Name string // short help text
}

// Binding maps a key or space-separated key sequence to a command.
type Binding struct {
	Key     string // e.g. "j", "ctrl+d", "g g"
	Command string
}

// Registry resolves keys to command IDs. User overrides win over
// registered bindings.
type Registry struct {
	mu            sync.Mutex
	commands      map[string]Command
	bindings      []Binding
	userOverrides map[string]string // key -> command ID
	pendingKey    string
	pendingTime   time.Time
	now           func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:      make(map[string]Command),
		userOverrides: make(map[string]string),
		now:           time.Now,
	}
}

// Default returns a registry with the built-in list bindings.
func Default() *Registry {
	r := NewRegistry()
	for _, c := range []Command{
		{CmdScrollDown, "scroll down"},
		{CmdScrollUp, "scroll up"},
		{CmdPageDown, "page down"},
		{CmdPageUp, "page up"},
		{CmdHalfDown, "half page down"},
		{CmdHalfUp, "half page up"},
		{CmdTop, "top"},
		{CmdBottom, "bottom"},
		{CmdCursorDown, "next item"},
		{CmdCursorUp, "previous item"},
		{CmdAlignStart, "item to top"},
		{CmdAlignCenter, "item to center"},
		{CmdAlignEnd, "item to bottom"},
		{CmdAlignAuto, "reveal item"},
		{CmdToggleHelp, "help"},
		{CmdReloadConfig, "reload config"},
		{CmdQuit, "quit"},
	} {
		r.RegisterCommand(c)
	}
	for _, b := range []Binding{
		{"ctrl+e", CmdScrollDown},
		{"ctrl+y", CmdScrollUp},
		{"pgdown", CmdPageDown},
		{"ctrl+f", CmdPageDown},
		{"space", CmdPageDown},
		{"pgup", CmdPageUp},
		{"ctrl+b", CmdPageUp},
		{"ctrl+d", CmdHalfDown},
		{"ctrl+u", CmdHalfUp},
		{"g g", CmdTop},
		{"home", CmdTop},
		{"G", CmdBottom},
		{"end", CmdBottom},
		{"j", CmdCursorDown},
		{"down", CmdCursorDown},
		{"k", CmdCursorUp},
		{"up", CmdCursorUp},
		{"z t", CmdAlignStart},
		{"z z", CmdAlignCenter},
		{"z b", CmdAlignEnd},
		{"enter", CmdAlignAuto},
		{"?", CmdToggleHelp},
		{"ctrl+r", CmdReloadConfig},
		{"q", CmdQuit},
		{"ctrl+c", CmdQuit},
	} {
		r.RegisterBinding(b)
	}
	return r
}

// RegisterCommand adds a command.
func (r *Registry) RegisterCommand(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.ID] = cmd
}

// RegisterBinding adds a key binding.
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, b)
}

// SetUserOverride binds key to commandID ahead of the registered bindings.
func (r *Registry) SetUserOverride(key, commandID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[key] = commandID
}

// ApplyOverrides sets every key -> command override in m.
func (r *Registry) ApplyOverrides(m map[string]string) {
	for k, id := range m {
		r.SetUserOverride(k, id)
	}
}

// Resolve returns the command bound to msg, or "" when msg is unbound or
// starts a sequence that is still pending.
func (r *Registry) Resolve(msg tea.KeyMsg) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyString(msg)

	if r.pendingKey != "" {
		pending := r.pendingKey
		r.pendingKey = ""
		if r.now().Sub(r.pendingTime) < sequenceTimeout {
			if id := r.lookup(pending + " " + keyStr); id != "" {
				return id
			}
		}
	}

	if r.isSequenceStart(keyStr) {
		r.pendingKey = keyStr
		r.pendingTime = r.now()
		return ""
	}
	return r.lookup(keyStr)
}

// HasPending reports whether a sequence is waiting for its next key.
func (r *Registry) HasPending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pendingKey != "" && r.now().Sub(r.pendingTime) < sequenceTimeout
}

// ResetPending drops a pending sequence.
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// GetCommand retrieves a command by ID.
func (r *Registry) GetCommand(id string) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Commands returns every registered command sorted by ID.
func (r *Registry) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmds := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].ID < cmds[j].ID })
	return cmds
}

// KeysFor returns the keys bound to a command, overrides first.
func (r *Registry) KeysFor(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.keysFor(id)
}

func (r *Registry) keysFor(id string) []string {
	var keys []string
	for k, c := range r.userOverrides {
		if c == id {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, b := range r.bindings {
		if b.Command == id {
			if _, overridden := r.userOverrides[b.Key]; !overridden {
				keys = append(keys, b.Key)
			}
		}
	}
	return keys
}

// ShortHelp implements help.KeyMap.
func (r *Registry) ShortHelp() []key.Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.helpBindings(CmdCursorDown, CmdCursorUp, CmdPageDown, CmdTop, CmdBottom, CmdToggleHelp, CmdQuit)
}

// FullHelp implements help.KeyMap.
func (r *Registry) FullHelp() [][]key.Binding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return [][]key.Binding{
		r.helpBindings(CmdCursorDown, CmdCursorUp, CmdScrollDown, CmdScrollUp),
		r.helpBindings(CmdPageDown, CmdPageUp, CmdHalfDown, CmdHalfUp, CmdTop, CmdBottom),
		r.helpBindings(CmdAlignStart, CmdAlignCenter, CmdAlignEnd, CmdAlignAuto),
		r.helpBindings(CmdReloadConfig, CmdToggleHelp, CmdQuit),
	}
}

func (r *Registry) helpBindings(ids ...string) []key.Binding {
	out := make([]key.Binding, 0, len(ids))
	for _, id := range ids {
		keys := r.keysFor(id)
		if len(keys) == 0 {
			continue
		}
		name := id
		if c, ok := r.commands[id]; ok && c.Name != "" {
			name = c.Name
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), name),
		))
	}
	return out
}

// lookup finds the command for a key. Callers hold r.mu.
func (r *Registry) lookup(k string) string {
	if id, ok := r.userOverrides[k]; ok {
		if _, known := r.commands[id]; known {
			return id
		}
	}
	for _, b := range r.bindings {
		if b.Key == k {
			return b.Command
		}
	}
	return ""
}

func (r *Registry) isSequenceStart(k string) bool {
	prefix := k + " "
	for _, b := range r.bindings {
		if strings.HasPrefix(b.Key, prefix) {
			return true
		}
	}
	for o := range r.userOverrides {
		if strings.HasPrefix(o, prefix) {
			return true
		}
	}
	return false
}

// KeyString is the binding name of a key press, e.g. "ctrl+d" or "space".
func KeyString(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}
