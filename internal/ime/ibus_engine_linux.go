//go:build linux

package ime

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"

	"banglawriter/internal/config"
	"banglawriter/internal/logging"
)

// IBus D-Bus constants
const (
	IBusService          = "org.freedesktop.IBus"
	IBusPath             = "/org/freedesktop/IBus"
	IBusFactoryPath      = "/org/freedesktop/IBus/Factory"
	IBusFactoryInterface = "org.freedesktop.IBus.Factory"
	IBusEngineInterface  = "org.freedesktop.IBus.Engine"
	IBusServiceInterface = "org.freedesktop.IBus.Service"

	errNoEngine = "org.freedesktop.IBus.NoEngine"
)

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// Bus holds the bus and engine names.
	Bus config.IBusConfig

	// Options are applied to every engine object.
	Options Options

	// UseIBus connects to the private ibus-daemon bus instead of the
	// session bus. ibus-daemon starts the engine with --ibus.
	UseIBus bool

	// Crash recovers panics in D-Bus handlers. Optional.
	Crash *logging.CrashHandler

	// Logger defaults to logging.Default().
	Logger *logging.Logger
}

// Service owns the bus connection, exports the IBus factory and creates
// one engine object per input context.
type Service struct {
	cfg     ServiceConfig
	log     *logging.Logger
	factory atomic.Pointer[Factory]

	mu      sync.Mutex
	conn    *dbus.Conn
	opts    Options
	engines map[dbus.ObjectPath]*ibusEngine
	nextID  uint32
}

// NewService returns a Service that builds sessions from f.
func NewService(f *Factory, cfg ServiceConfig) *Service {
	log := cfg.Logger
	if log == nil {
		log = logging.Default()
	}
	s := &Service{
		cfg:     cfg,
		log:     log.WithComponent("ibus"),
		opts:    cfg.Options,
		engines: make(map[dbus.ObjectPath]*ibusEngine),
	}
	s.factory.Store(f)
	return s
}

// Run connects, serves until ctx is done or the bus goes away, and
// destroys all engine objects on the way out.
func (s *Service) Run(ctx context.Context) error {
	if err := s.start(); err != nil {
		return err
	}
	defer s.stop()

	select {
	case <-ctx.Done():
		return nil
	case <-s.conn.Context().Done():
		return errors.New("bus connection closed")
	}
}

func (s *Service) start() error {
	conn, err := s.dial()
	if err != nil {
		return err
	}

	reply, err := conn.RequestName(s.cfg.Bus.BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("bus name %s already taken", s.cfg.Bus.BusName)
	}

	if err := conn.Export(&ibusFactory{svc: s}, IBusFactoryPath, IBusFactoryInterface); err != nil {
		conn.Close()
		return fmt.Errorf("export factory: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.log.Info("ibus engine started", "bus_name", s.cfg.Bus.BusName, "ibus", s.cfg.UseIBus)
	return nil
}

func (s *Service) dial() (*dbus.Conn, error) {
	if !s.cfg.UseIBus {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to session bus: %w", err)
		}
		return conn, nil
	}

	addr, err := ibusAddress()
	if err != nil {
		return nil, err
	}
	conn, err := dbus.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ibus: %w", err)
	}
	return conn, nil
}

func (s *Service) stop() {
	s.mu.Lock()
	engines := make([]*ibusEngine, 0, len(s.engines))
	for _, e := range s.engines {
		engines = append(engines, e)
	}
	conn := s.conn
	s.mu.Unlock()

	for _, e := range engines {
		e.destroy()
	}
	if conn != nil {
		conn.Close()
	}
	s.mu.Lock()
	s.conn = nil
	s.mu.Unlock()
	s.log.Info("ibus engine stopped")
}

// SetFactory replaces the factory used for new engine objects. Existing
// sessions keep their transducer and ranker.
func (s *Service) SetFactory(f *Factory) {
	s.factory.Store(f)
}

// Configure applies opts to every live engine and to future ones.
func (s *Service) Configure(opts Options) {
	s.mu.Lock()
	s.opts = opts
	engines := make([]*ibusEngine, 0, len(s.engines))
	for _, e := range s.engines {
		engines = append(engines, e)
	}
	s.mu.Unlock()

	for _, e := range engines {
		e.ctrl.Configure(opts)
	}
}

// Connected reports whether the bus connection is up.
func (s *Service) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil && s.conn.Connected()
}

// Engines returns the number of live engine objects.
func (s *Service) Engines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.engines)
}

func (s *Service) createEngine() (*ibusEngine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	path := dbus.ObjectPath(fmt.Sprintf("%s/Engine/%d", IBusPath, s.nextID))
	e := &ibusEngine{
		svc:  s,
		path: path,
		log:  s.log.WithSession(fmt.Sprintf("engine-%d", s.nextID)),
	}
	e.ctrl = NewController(s.factory.Load().NewSession(), &busSink{conn: s.conn, path: path, log: e.log}, s.opts)
	e.ctrl.SetLogger(e.log)

	if err := s.conn.Export(e, path, IBusEngineInterface); err != nil {
		e.ctrl.Close()
		return nil, err
	}
	service := map[string]interface{}{"Destroy": e.Destroy}
	if err := s.conn.ExportMethodTable(service, path, IBusServiceInterface); err != nil {
		s.conn.Export(nil, path, IBusEngineInterface)
		e.ctrl.Close()
		return nil, err
	}
	s.engines[path] = e
	return e, nil
}

func (s *Service) removeEngine(path dbus.ObjectPath) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.engines[path]; !ok {
		return false
	}
	delete(s.engines, path)
	s.conn.Export(nil, path, IBusEngineInterface)
	s.conn.ExportMethodTable(nil, path, IBusServiceInterface)
	return true
}

// ibusFactory implements the IBus Factory D-Bus interface.
type ibusFactory struct {
	svc *Service
}

// CreateEngine creates an engine object for a new input context.
func (f *ibusFactory) CreateEngine(engineName string) (dbus.ObjectPath, *dbus.Error) {
	if engineName != f.svc.cfg.Bus.EngineName {
		f.svc.log.Warn("unknown engine requested", "engine", engineName)
		return "", dbus.NewError(errNoEngine, []interface{}{"Unknown engine: " + engineName})
	}

	e, err := f.svc.createEngine()
	if err != nil {
		f.svc.log.Error("create engine failed", "error", err)
		return "", dbus.MakeFailedError(err)
	}
	f.svc.log.Debug("engine created", "path", string(e.path))
	return e.path, nil
}

// ibusEngine is one exported org.freedesktop.IBus.Engine object.
type ibusEngine struct {
	svc  *Service
	path dbus.ObjectPath
	ctrl *Controller
	log  *logging.Logger
}

// guard runs fn, turning a panic into a crash report and a reset engine.
func (e *ibusEngine) guard(method string, fn func()) {
	crash := e.svc.cfg.Crash
	if crash == nil {
		fn()
		return
	}
	info := map[string]any{"method": method, "engine": string(e.path)}
	if crash.Recover(info, fn) {
		crash.Recover(info, e.ctrl.Reset)
	}
}

// ProcessKeyEvent handles key press and release events from IBus.
// It returns true if the key was consumed.
func (e *ibusEngine) ProcessKeyEvent(keyval, keycode, state uint32) (bool, *dbus.Error) {
	var handled bool
	e.guard("ProcessKeyEvent", func() {
		handled = e.ctrl.ProcessKeyEvent(keyval, keycode, state)
	})
	return handled, nil
}

// FocusIn is called when the input context gains focus.
func (e *ibusEngine) FocusIn() *dbus.Error {
	e.guard("FocusIn", e.ctrl.FocusIn)
	return nil
}

// FocusOut is called when the input context loses focus.
func (e *ibusEngine) FocusOut() *dbus.Error {
	e.guard("FocusOut", e.ctrl.FocusOut)
	return nil
}

// Enable is called when the user switches to this engine.
func (e *ibusEngine) Enable() *dbus.Error {
	e.log.Debug("enable")
	return nil
}

// Disable is called when the user switches away.
func (e *ibusEngine) Disable() *dbus.Error {
	e.guard("Disable", e.ctrl.Disable)
	return nil
}

// Reset drops the composition.
func (e *ibusEngine) Reset() *dbus.Error {
	e.guard("Reset", e.ctrl.Reset)
	return nil
}

// SetCapabilities informs about client capabilities.
func (e *ibusEngine) SetCapabilities(caps uint32) *dbus.Error {
	return nil
}

// SetContentType informs about the type of content being edited.
func (e *ibusEngine) SetContentType(purpose, hints uint32) *dbus.Error {
	return nil
}

// SetCursorLocation informs about the cursor position.
func (e *ibusEngine) SetCursorLocation(x, y, w, h int32) *dbus.Error {
	return nil
}

// SetSurroundingText provides context around the cursor.
func (e *ibusEngine) SetSurroundingText(text dbus.Variant, cursorPos, anchorPos uint32) *dbus.Error {
	return nil
}

// PropertyActivate handles property activations.
func (e *ibusEngine) PropertyActivate(propName string, state uint32) *dbus.Error {
	return nil
}

// PageUp handles the panel's page up button.
func (e *ibusEngine) PageUp() *dbus.Error {
	e.guard("PageUp", e.ctrl.PageUp)
	return nil
}

// PageDown handles the panel's page down button.
func (e *ibusEngine) PageDown() *dbus.Error {
	e.guard("PageDown", e.ctrl.PageDown)
	return nil
}

// CursorUp handles the panel's cursor up button.
func (e *ibusEngine) CursorUp() *dbus.Error {
	e.guard("CursorUp", e.ctrl.CursorUp)
	return nil
}

// CursorDown handles the panel's cursor down button.
func (e *ibusEngine) CursorDown() *dbus.Error {
	e.guard("CursorDown", e.ctrl.CursorDown)
	return nil
}

// CandidateClicked commits the clicked candidate.
func (e *ibusEngine) CandidateClicked(index, button, state uint32) *dbus.Error {
	e.guard("CandidateClicked", func() { e.ctrl.CandidateClicked(index) })
	return nil
}

// Destroy is exported on org.freedesktop.IBus.Service. IBus calls it
// when the input context goes away.
func (e *ibusEngine) Destroy() *dbus.Error {
	e.destroy()
	return nil
}

func (e *ibusEngine) destroy() {
	if e.svc.removeEngine(e.path) {
		e.ctrl.Close()
		e.log.Debug("engine destroyed")
	}
}

// busSink emits the engine signals for a Controller.
type busSink struct {
	conn *dbus.Conn
	path dbus.ObjectPath
	log  *logging.Logger
}

func (b *busSink) emit(signal string, values ...interface{}) {
	if err := b.conn.Emit(b.path, IBusEngineInterface+"."+signal, values...); err != nil {
		b.log.Warn("emit failed", "signal", signal, "error", err)
	}
}

func (b *busSink) CommitText(text string) {
	b.emit("CommitText", dbus.MakeVariant(newText(text)))
}

func (b *busSink) UpdatePreedit(text string, cursor uint32, visible bool) {
	b.emit("UpdatePreeditText", dbus.MakeVariant(newUnderlinedText(text)), cursor, visible, uint32(preeditClear))
}

func (b *busSink) UpdateLookupTable(table LookupTable, visible bool) {
	b.emit("UpdateLookupTable", dbus.MakeVariant(newLookupTable(table)), visible)
}

func (b *busSink) HideLookupTable() {
	b.emit("HideLookupTable")
}

// ibusAddress finds the private bus of the running ibus-daemon.
func ibusAddress() (string, error) {
	if addr := os.Getenv("IBUS_ADDRESS"); addr != "" {
		return addr, nil
	}

	machineID, err := readMachineID()
	if err != nil {
		return "", err
	}
	display := os.Getenv("DISPLAY")
	if display == "" {
		display = os.Getenv("WAYLAND_DISPLAY")
	}
	path := busFilePath(config.PlatformConfigHome(), machineID, display)

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open ibus address file: %w", err)
	}
	defer f.Close()
	return parseBusFile(f)
}

func readMachineID() (string, error) {
	for _, p := range []string{"/etc/machine-id", "/var/lib/dbus/machine-id"} {
		if data, err := os.ReadFile(p); err == nil {
			return strings.TrimSpace(string(data)), nil
		}
	}
	return "", errors.New("no machine id found")
}

// busFilePath returns ~/.config/ibus/bus/<machine-id>-<host>-<display>,
// where a DISPLAY of "host:N.S" yields host and N. An empty host is
// "unix" and a display without a colon is used whole.
func busFilePath(configHome, machineID, display string) string {
	host, number := "unix", display
	if i := strings.LastIndex(display, ":"); i >= 0 {
		if display[:i] != "" {
			host = display[:i]
		}
		number = display[i+1:]
		if j := strings.Index(number, "."); j >= 0 {
			number = number[:j]
		}
	}
	if number == "" {
		number = "0"
	}
	return filepath.Join(configHome, "ibus", "bus", fmt.Sprintf("%s-%s-%s", machineID, host, number))
}

// parseBusFile extracts IBUS_ADDRESS from an ibus bus file.
func parseBusFile(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if addr, ok := strings.CutPrefix(line, "IBUS_ADDRESS="); ok && addr != "" {
			return addr, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read ibus address file: %w", err)
	}
	return "", errors.New("ibus address file has no IBUS_ADDRESS")
}
