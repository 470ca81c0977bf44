package app

import (
	"errors"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/petems/goggles/internal/config"
	"github.com/petems/goggles/internal/hotkey"
	"github.com/petems/goggles/internal/transparency"
	"github.com/rs/zerolog"
)

// Mock implementations for testing. Both mocks append to a shared journal so
// tests can check ordering across them.
type journal []string

type mockRegistrar struct {
	j   *journal
	err error
}

func (m *mockRegistrar) Register(id int, mods hotkey.Modifiers, key hotkey.Key) error {
	*m.j = append(*m.j, "register")
	return m.err
}

func (m *mockRegistrar) Unregister(id int) error {
	*m.j = append(*m.j, "unregister")
	return nil
}

type mockWindows struct {
	j     *journal
	alive map[transparency.Handle]bool
	style map[transparency.Handle]uintptr
}

func newMockWindows(j *journal, handles ...transparency.Handle) *mockWindows {
	m := &mockWindows{
		j:     j,
		alive: make(map[transparency.Handle]bool),
		style: make(map[transparency.Handle]uintptr),
	}
	for _, h := range handles {
		m.alive[h] = true
	}
	return m
}

func (m *mockWindows) IsWindow(h transparency.Handle) bool { return m.alive[h] }

func (m *mockWindows) ExtendedStyle(h transparency.Handle) (uintptr, error) {
	return m.style[h], nil
}

func (m *mockWindows) SetExtendedStyle(h transparency.Handle, style uintptr) error {
	*m.j = append(*m.j, "style")
	m.style[h] = style
	return nil
}

func (m *mockWindows) LayeredAttributes(h transparency.Handle) (transparency.Attributes, error) {
	return transparency.Attributes{}, errors.New("not layered")
}

func (m *mockWindows) SetLayeredAttributes(h transparency.Handle, attr transparency.Attributes) error {
	*m.j = append(*m.j, "attributes")
	return nil
}

type mockStatus struct {
	counts []int
}

func (m *mockStatus) SetTracked(n int) { m.counts = append(m.counts, n) }

type fixture struct {
	app      *App
	registry *hotkey.Registry
	manager  *transparency.Manager
	windows  *mockWindows
	status   *mockStatus
	journal  *journal
	fg       transparency.Handle
}

func newFixture(t *testing.T, cfg *config.Config, regErr error) *fixture {
	t.Helper()
	j := &journal{}
	f := &fixture{
		journal: j,
		windows: newMockWindows(j, 100, 200),
		status:  &mockStatus{},
		fg:      100,
	}
	f.registry = hotkey.NewRegistry(&mockRegistrar{j: j, err: regErr}, zerolog.Nop())
	f.manager = transparency.New(f.windows, cfg.Alpha, zerolog.Nop())
	f.app = New(Config{
		Hotkeys:       f.registry,
		Transparency:  f.manager,
		Foreground:    func() transparency.Handle { return f.fg },
		Config:        cfg,
		Logger:        zerolog.Nop(),
		StatusUpdater: f.status,
	})
	return f
}

func TestStartRegistersToggle(t *testing.T) {
	f := newFixture(t, config.Default(), nil)

	if err := f.app.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	bindings := f.registry.Bindings()
	if len(bindings) != 1 {
		t.Fatalf("bindings = %d, want 1", len(bindings))
	}
	b := bindings[0]
	if b.ID != ToggleHotkeyID {
		t.Errorf("id = %d, want %d", b.ID, ToggleHotkeyID)
	}
	if b.Modifiers != hotkey.ModControl|hotkey.ModWin|hotkey.ModNoRepeat {
		t.Errorf("modifiers = %#x", b.Modifiers)
	}
	if b.Key != hotkey.KeyF11 {
		t.Errorf("key = %#x, want F11", b.Key)
	}
	if got := f.app.Shortcut(); got != "Ctrl+Win+F11" {
		t.Errorf("Shortcut() = %q", got)
	}
}

func TestStartSurfacesClaimConflict(t *testing.T) {
	f := newFixture(t, config.Default(), syscall.Errno(1409))

	err := f.app.Start()
	var regErr *hotkey.RegistrationError
	if !errors.As(err, &regErr) || !regErr.Claimed() {
		t.Fatalf("got %v, want a claimed RegistrationError", err)
	}
	if f.registry.Registered(ToggleHotkeyID) {
		t.Error("nothing should be registered")
	}
}

func TestHotkeyTogglesForegroundWindow(t *testing.T) {
	f := newFixture(t, config.Default(), nil)
	if err := f.app.Start(); err != nil {
		t.Fatal(err)
	}

	if !f.registry.Dispatch(hotkey.MsgHotkey, ToggleHotkeyID) {
		t.Fatal("toggle hotkey should be handled")
	}
	if !f.manager.Tracked(100) {
		t.Error("foreground window should be transparent")
	}

	f.fg = 200
	f.registry.Dispatch(hotkey.MsgHotkey, ToggleHotkeyID)
	f.fg = 100
	f.registry.Dispatch(hotkey.MsgHotkey, ToggleHotkeyID)

	if f.manager.Tracked(100) {
		t.Error("second press on the same window should restore it")
	}
	if !f.manager.Tracked(200) {
		t.Error("other window should still be transparent")
	}
	if diff := cmp.Diff([]int{1, 2, 1}, f.status.counts); diff != "" {
		t.Errorf("status updates (-want +got):\n%s", diff)
	}
}

func TestHotkeyWithoutForegroundWindow(t *testing.T) {
	f := newFixture(t, config.Default(), nil)
	if err := f.app.Start(); err != nil {
		t.Fatal(err)
	}
	f.fg = 0
	*f.journal = nil

	f.app.OnHotkey()

	if len(*f.journal) != 0 {
		t.Errorf("expected no calls, got %v", *f.journal)
	}
	if len(f.status.counts) != 0 {
		t.Error("status should not change")
	}
}

func TestShutdownUnregistersBeforeRestoring(t *testing.T) {
	f := newFixture(t, config.Default(), nil)
	if err := f.app.Start(); err != nil {
		t.Fatal(err)
	}
	f.registry.Dispatch(hotkey.MsgHotkey, ToggleHotkeyID)
	*f.journal = nil

	if err := f.app.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	if diff := cmp.Diff(journal{"unregister", "style"}, *f.journal); diff != "" {
		t.Errorf("shutdown order (-want +got):\n%s", diff)
	}
	if f.manager.Len() != 0 {
		t.Error("no window should be tracked after shutdown")
	}

	// Idempotent.
	*f.journal = nil
	if err := f.app.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if len(*f.journal) != 0 {
		t.Errorf("second shutdown made calls: %v", *f.journal)
	}
}

func TestCustomBinding(t *testing.T) {
	cfg := config.Default()
	cfg.Hotkey = "T"
	cfg.Modifiers = []string{"Alt", "Shift"}
	cfg.Alpha = 40

	f := newFixture(t, cfg, nil)
	if got := f.app.Shortcut(); got != "Alt+Shift+T" {
		t.Errorf("Shortcut() = %q", got)
	}
	if f.manager.Alpha() != 40 {
		t.Errorf("alpha = %d, want 40", f.manager.Alpha())
	}
}
