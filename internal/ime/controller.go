package ime

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"banglawriter/internal/config"
	"banglawriter/internal/logging"
)

// Orientation of the candidate window, numbered as IBus numbers it.
type Orientation int32

const (
	OrientationHorizontal Orientation = 0
	OrientationVertical   Orientation = 1
)

// ParseOrientation parses "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return OrientationHorizontal, nil
	case "vertical", "":
		return OrientationVertical, nil
	default:
		return OrientationVertical, fmt.Errorf("unknown orientation: %s", s)
	}
}

// LookupTable is the candidate window content.
type LookupTable struct {
	Candidates  []string
	PageSize    int
	Cursor      int
	Orientation Orientation
}

// PageStart returns the index of the first candidate on the cursor's page.
func (t LookupTable) PageStart() int {
	if t.PageSize <= 0 {
		return 0
	}
	return t.Cursor / t.PageSize * t.PageSize
}

// Sink receives the UI updates of a Controller. The IBus engine object
// implements it by emitting D-Bus signals.
type Sink interface {
	CommitText(text string)
	UpdatePreedit(text string, cursor uint32, visible bool)
	UpdateLookupTable(table LookupTable, visible bool)
	HideLookupTable()
}

// Options are the per-engine settings a Controller honours.
type Options struct {
	ToggleKey        uint32
	ShowSuggestions  bool
	PageSize         int
	Orientation      Orientation
	CommitOnFocusOut bool
}

// DefaultOptions mirrors config.DefaultConfig().Engine.
func DefaultOptions() Options {
	return Options{
		ToggleKey:        KeyF12,
		ShowSuggestions:  true,
		PageSize:         config.MaxPageSize,
		Orientation:      OrientationVertical,
		CommitOnFocusOut: true,
	}
}

// OptionsFromConfig converts the engine section of a validated config.
func OptionsFromConfig(c config.EngineConfig) (Options, error) {
	key, ok := config.FunctionKey(c.ToggleKey)
	if !ok {
		return Options{}, fmt.Errorf("invalid toggle key: %q", c.ToggleKey)
	}
	orientation, err := ParseOrientation(c.Orientation)
	if err != nil {
		return Options{}, err
	}
	if c.PageSize < 1 || c.PageSize > config.MaxPageSize {
		return Options{}, fmt.Errorf("page size out of range: %d", c.PageSize)
	}
	return Options{
		ToggleKey:        key,
		ShowSuggestions:  c.ShowSuggestions,
		PageSize:         c.PageSize,
		Orientation:      orientation,
		CommitOnFocusOut: c.CommitOnFocusOut,
	}, nil
}

// Controller maps key events of one input context onto its Session and
// reports the results to a Sink. It holds the candidate window state.
// All methods are safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	session *Session
	sink    Sink
	opts    Options
	log     *logging.Logger

	candidates []string
	cursor     int
	tableShown bool
}

// NewController returns a Controller driving s. It takes ownership of s.
func NewController(s *Session, sink Sink, opts Options) *Controller {
	return &Controller{
		session: s,
		sink:    sink,
		opts:    opts,
		log:     logging.Default().WithComponent("controller"),
	}
}

// SetLogger replaces the controller's logger.
func (c *Controller) SetLogger(l *logging.Logger) {
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
}

// Configure applies new options. An open candidate window is redrawn
// with the new layout or hidden if suggestions were turned off.
func (c *Controller) Configure(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts = opts
	if !c.tableShown {
		return
	}
	if !opts.ShowSuggestions {
		c.hideTable()
		return
	}
	c.sink.UpdateLookupTable(c.table(), true)
}

// Mode returns the session mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Mode()
}

// ProcessKeyEvent handles one key event and reports whether it was
// consumed. Unconsumed keys go on to the application.
func (c *Controller) ProcessKeyEvent(keyval, keycode, state uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if state&ReleaseMask != 0 {
		return false
	}
	if state&passMask != 0 {
		return false
	}

	if keyval == c.opts.ToggleKey {
		c.toggleMode()
		return true
	}

	switch keyval {
	case KeyEscape:
		if c.tableShown {
			c.hideTable()
			return true
		}
		if !c.session.Composing() {
			return false
		}
		c.session.ProcessKey(CancelRune)
		c.updatePreedit()
		return true

	case KeyReturn, KeyKPEnter:
		if c.tableShown && c.cursor < len(c.candidates) {
			c.selectCandidate(c.cursor)
			return true
		}
		return c.delimit('\n')

	case KeySpace:
		return c.delimit(' ')

	case KeyTab:
		return c.delimit('\t')

	case KeyBackSpace:
		if !c.session.Backspace() {
			return false
		}
		c.updatePreedit()
		c.showSuggestions(c.session.Suggestions())
		return true

	case KeyDelete, KeyKPDelete:
		if !c.session.Composing() {
			return false
		}
		c.commit(c.session.CommitBuffer())
		c.hideTable()
		c.updatePreedit()
		return true
	}

	if c.tableShown {
		switch keyval {
		case KeyDown, KeyKPDown:
			c.moveCursor(1)
			return true
		case KeyUp, KeyKPUp:
			c.moveCursor(-1)
			return true
		case KeyPageDown, KeyKPPageDn:
			c.moveCursor(c.opts.PageSize)
			return true
		case KeyPageUp, KeyKPPageUp:
			c.moveCursor(-c.opts.PageSize)
			return true
		}
		if i, ok := digitIndex(keyval); ok {
			if i < c.opts.PageSize {
				c.selectCandidate(c.table().PageStart() + i)
			}
			return true
		}
	}

	r := keyvalToRune(keyval)
	if !printable(r) {
		return false
	}

	res := c.session.ProcessKey(r)
	c.commit(res.Committed)
	c.updatePreedit()
	c.showSuggestions(res.Suggestions)
	return true
}

// delimit commits the composition for a whitespace key. The key itself is
// never consumed so the application still receives it.
func (c *Controller) delimit(r rune) bool {
	if !c.session.Composing() {
		return false
	}
	res := c.session.ProcessKey(r)
	c.commit(res.Committed)
	c.hideTable()
	c.updatePreedit()
	return false
}

// FocusIn redraws the preedit for the newly focused context.
func (c *Controller) FocusIn() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updatePreedit()
	if len(c.candidates) > 0 {
		c.tableShown = true
		c.sink.UpdateLookupTable(c.table(), true)
	}
}

// FocusOut commits or discards the composition, depending on
// CommitOnFocusOut.
func (c *Controller) FocusOut() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.finish()
}

// Reset discards the composition.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Reset()
	c.hideTable()
	c.updatePreedit()
}

// Disable is called when the user switches to another engine.
func (c *Controller) Disable() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finish()
}

func (c *Controller) finish() {
	if c.session.Composing() {
		if c.opts.CommitOnFocusOut {
			c.commit(c.session.CommitBuffer())
		} else {
			c.session.Reset()
		}
	}
	c.hideTable()
	c.updatePreedit()
}

// CandidateClicked commits the candidate at index on the current page.
// Indexes outside the page are ignored.
func (c *Controller) CandidateClicked(index uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.tableShown || int(index) >= c.opts.PageSize {
		return
	}
	c.selectCandidate(c.table().PageStart() + int(index))
}

// PageUp moves the candidate cursor one page back.
func (c *Controller) PageUp() { c.move(func() int { return -c.opts.PageSize }) }

// PageDown moves the candidate cursor one page forward.
func (c *Controller) PageDown() { c.move(func() int { return c.opts.PageSize }) }

// CursorUp moves the candidate cursor to the previous candidate.
func (c *Controller) CursorUp() { c.move(func() int { return -1 }) }

// CursorDown moves the candidate cursor to the next candidate.
func (c *Controller) CursorDown() { c.move(func() int { return 1 }) }

func (c *Controller) move(delta func() int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tableShown {
		c.moveCursor(delta())
	}
}

// Close releases the session.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Close()
}

func (c *Controller) toggleMode() {
	if c.session.Composing() {
		c.commit(c.session.CommitBuffer())
	}
	c.session.SetMode(c.session.Mode().Toggle())
	c.hideTable()
	c.updatePreedit()
	c.log.Debug("mode switched", "mode", c.session.Mode().String())
}

func (c *Controller) selectCandidate(i int) {
	word, err := c.session.SelectSuggestion(i)
	if err != nil {
		c.log.Debug("candidate ignored", "index", i, "error", err)
		return
	}
	c.commit(word)
	c.hideTable()
	c.updatePreedit()
}

func (c *Controller) moveCursor(delta int) {
	c.cursor = max(0, min(c.cursor+delta, len(c.candidates)-1))
	c.sink.UpdateLookupTable(c.table(), true)
}

func (c *Controller) commit(text string) {
	if text == "" {
		return
	}
	c.log.Debug("commit", "runes", utf8.RuneCountInString(text), "commit_text", text)
	c.sink.CommitText(text)
}

func (c *Controller) updatePreedit() {
	text := c.session.PreeditText()
	c.sink.UpdatePreedit(text, uint32(utf8.RuneCountInString(text)), text != "")
}

func (c *Controller) showSuggestions(list []string) {
	if !c.opts.ShowSuggestions || len(list) == 0 {
		c.hideTable()
		return
	}
	c.candidates = list
	c.cursor = 0
	c.tableShown = true
	c.sink.UpdateLookupTable(c.table(), true)
}

func (c *Controller) hideTable() {
	wasShown := c.tableShown
	c.candidates = nil
	c.cursor = 0
	c.tableShown = false
	if wasShown {
		c.sink.HideLookupTable()
	}
}

func (c *Controller) table() LookupTable {
	return LookupTable{
		Candidates:  append([]string(nil), c.candidates...),
		PageSize:    c.opts.PageSize,
		Cursor:      c.cursor,
		Orientation: c.opts.Orientation,
	}
}
