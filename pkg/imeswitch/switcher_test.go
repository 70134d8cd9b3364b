package imeswitch

import (
	"errors"
	"testing"

	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"codeberg.org/miketth/win-ime-switch/pkg/statestore/memory"
	"go.uber.org/zap/zaptest"
)

// HKL style values: the high word is a device handle.
const (
	hklEnglish  layout.ID = 0x04090409
	hklChinese  layout.ID = 0x08040804
	hklJapanese layout.ID = 0xE0010411
)

func newTestSwitcher(t *testing.T, env Environment) (*Switcher, *memory.StateStore, *fakeLock) {
	t.Helper()
	store := memory.NewStateStore()
	lock := &fakeLock{}
	return NewSwitcher(env, store, lock, zaptest.NewLogger(t).Sugar()), store, lock
}

func newEnv() *fakeEnv {
	return &fakeEnv{
		enabled: []layout.ID{hklChinese, hklEnglish, hklJapanese},
		active:  hklEnglish,
	}
}

func TestListKeepsEnvironmentOrder(t *testing.T) {
	sw, _, _ := newTestSwitcher(t, newEnv())

	got, err := sw.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	want := []layout.ID{hklChinese, hklEnglish, hklJapanese}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d layouts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i].ID, want[i])
		}
		if got[i].Name == "" {
			t.Errorf("List()[%d] has no name", i)
		}
	}
	if got[2].Name != "Japanese" {
		t.Errorf("List()[2].Name = %q, want Japanese", got[2].Name)
	}
}

func TestListUsesEnvironmentNames(t *testing.T) {
	env := namingEnv{
		fakeEnv: newEnv(),
		names:   map[layout.ID]string{hklJapanese: "Japanese (Kana)"},
	}
	sw, _, _ := newTestSwitcher(t, env)

	got, err := sw.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if got[2].Name != "Japanese (Kana)" {
		t.Errorf("environment name not used: %q", got[2].Name)
	}
	if got[1].Name != layout.Name(hklEnglish) {
		t.Errorf("catalog fallback not used: %q", got[1].Name)
	}
}

func TestListNoLayouts(t *testing.T) {
	tests := []struct {
		name string
		env  *fakeEnv
	}{
		{name: "empty", env: &fakeEnv{}},
		{name: "query failed", env: &fakeEnv{enabledErr: errors.New("GetKeyboardLayoutList: 0")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, _, _ := newTestSwitcher(t, tt.env)
			if _, err := sw.List(); !errors.Is(err, ErrNoLayoutsAvailable) {
				t.Fatalf("List() error = %v, want ErrNoLayoutsAvailable", err)
			}
		})
	}
}

func TestCurrentAppearsInList(t *testing.T) {
	env := newEnv()
	env.active = hklJapanese
	sw, _, _ := newTestSwitcher(t, env)

	layouts, err := sw.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	current, err := sw.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	found := false
	for _, l := range layouts {
		if l.ID == current.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("current layout %s not in list %v", current.ID, layouts)
	}
}

func TestReadOnlyWithoutStore(t *testing.T) {
	sw := NewSwitcher(newEnv(), nil, nil, zaptest.NewLogger(t).Sugar())

	if _, err := sw.List(); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	current, err := sw.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if current.ID != hklEnglish {
		t.Errorf("Current() = %s, want %s", current.ID, hklEnglish)
	}
}

func TestCurrentFailure(t *testing.T) {
	sw, _, _ := newTestSwitcher(t, &fakeEnv{activeErr: errors.New("no foreground window")})
	if _, err := sw.Current(); !errors.Is(err, ErrEnvironment) {
		t.Fatalf("Current() error = %v, want ErrEnvironment", err)
	}
}

func TestSwitchTo(t *testing.T) {
	env := newEnv()
	sw, store, lock := newTestSwitcher(t, env)

	prev, err := sw.SwitchTo(layout.Japanese)
	if err != nil {
		t.Fatalf("SwitchTo() error: %v", err)
	}
	if prev != hklEnglish {
		t.Errorf("previous = %s, want %s", prev, hklEnglish)
	}
	if len(env.activated) != 1 || env.activated[0] != hklJapanese {
		t.Errorf("activated %v, want the enabled handle %#x", env.activated, uint32(hklJapanese))
	}

	saved, ok, _ := store.Load()
	if !ok || saved != hklEnglish {
		t.Errorf("stored %s (set=%v), want %s", saved, ok, hklEnglish)
	}
	if lock.locks != 1 || lock.unlocks != 1 || lock.held {
		t.Errorf("lock not released: %+v", lock)
	}
}

func TestSwitchToAliasesBehaveIdentically(t *testing.T) {
	var activated [][]layout.ID
	for _, tag := range []string{"zh", "zh-cn", "ZH-CN"} {
		id, err := (&layout.Resolver{}).Resolve(tag)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tag, err)
		}

		env := newEnv()
		sw, _, _ := newTestSwitcher(t, env)
		if _, err := sw.SwitchTo(id); err != nil {
			t.Fatalf("SwitchTo(%s) error: %v", id, err)
		}
		activated = append(activated, env.activated)
	}

	for i := 1; i < len(activated); i++ {
		if len(activated[i]) != 1 || activated[i][0] != activated[0][0] {
			t.Errorf("alias %d activated %v, want %v", i, activated[i], activated[0])
		}
	}
}

func TestSwitchToHexLiteral(t *testing.T) {
	env := newEnv()
	sw, _, _ := newTestSwitcher(t, env)

	id, err := (&layout.Resolver{}).Resolve("0x0411")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if _, err := sw.SwitchTo(id); err != nil {
		t.Fatalf("SwitchTo() error: %v", err)
	}
	if !env.active.SameLanguage(layout.Japanese) {
		t.Errorf("active = %s, want Japanese", env.active)
	}
}

func TestSwitchToAlreadyActive(t *testing.T) {
	env := newEnv()
	sw, store, _ := newTestSwitcher(t, env)

	prev, err := sw.SwitchTo(layout.English)
	if err != nil {
		t.Fatalf("SwitchTo() error: %v", err)
	}
	if !prev.SameLanguage(layout.English) {
		t.Errorf("previous = %s, want English", prev)
	}
	if len(env.activated) != 0 {
		t.Errorf("activated %v, want nothing", env.activated)
	}
	if store.Saves() != 0 {
		t.Errorf("store written %d times, want 0", store.Saves())
	}
}

func TestSwitchToNotEnabled(t *testing.T) {
	env := newEnv()
	sw, store, lock := newTestSwitcher(t, env)

	_, err := sw.SwitchTo(0x0419)
	if !errors.Is(err, ErrLayoutNotEnabled) {
		t.Fatalf("SwitchTo() error = %v, want ErrLayoutNotEnabled", err)
	}
	if len(env.activated) != 0 {
		t.Errorf("activated %v, want nothing", env.activated)
	}
	if store.Saves() != 0 {
		t.Errorf("store written on failure")
	}
	if lock.held {
		t.Errorf("lock still held")
	}
}

func TestSwitchToActivateFailure(t *testing.T) {
	env := newEnv()
	env.activateErr = errors.New("PostMessageW: access denied")
	sw, store, _ := newTestSwitcher(t, env)

	if _, err := sw.SwitchTo(layout.Japanese); !errors.Is(err, ErrEnvironment) {
		t.Fatalf("SwitchTo() error = %v, want ErrEnvironment", err)
	}
	if store.Saves() != 0 {
		t.Errorf("store written after failed switch")
	}
}

func TestSwitchToSaveFailure(t *testing.T) {
	env := newEnv()
	sw := NewSwitcher(env, &failingStore{}, &fakeLock{}, zaptest.NewLogger(t).Sugar())

	_, err := sw.SwitchTo(layout.Japanese)
	if !errors.Is(err, ErrStateStore) || !errors.Is(err, errDisk) {
		t.Fatalf("SwitchTo() error = %v, want ErrStateStore wrapping errDisk", err)
	}
}

func TestSwitchToConcurrent(t *testing.T) {
	env := newEnv()
	sw, store, lock := newTestSwitcher(t, env)
	lock.held = true

	if _, err := sw.SwitchTo(layout.Japanese); !errors.Is(err, ErrConcurrentOperation) {
		t.Fatalf("SwitchTo() error = %v, want ErrConcurrentOperation", err)
	}
	if len(env.activated) != 0 || store.Saves() != 0 {
		t.Errorf("mutation while lock held: activated=%v saves=%d", env.activated, store.Saves())
	}
	if lock.unlocks != 0 {
		t.Errorf("released a lock that was never acquired")
	}
}

func TestToggleWithoutHistory(t *testing.T) {
	env := newEnv()
	sw, store, _ := newTestSwitcher(t, env)

	_, _, err := sw.Toggle()
	if !errors.Is(err, ErrNoToggleHistory) {
		t.Fatalf("Toggle() error = %v, want ErrNoToggleHistory", err)
	}
	if len(env.activated) != 0 {
		t.Errorf("activated %v, want nothing", env.activated)
	}
	if store.Saves() != 0 {
		t.Errorf("store written on failed toggle")
	}
}

func TestToggleRoundTrip(t *testing.T) {
	env := newEnv()
	sw, _, _ := newTestSwitcher(t, env)

	// English is already active
	if _, err := sw.SwitchTo(layout.English); err != nil {
		t.Fatalf("SwitchTo(en) error: %v", err)
	}
	if _, err := sw.SwitchTo(layout.ChineseSimplified); err != nil {
		t.Fatalf("SwitchTo(zh) error: %v", err)
	}

	prev, restored, err := sw.Toggle()
	if err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if !env.active.SameLanguage(layout.English) {
		t.Errorf("active after toggle = %s, want English", env.active)
	}
	if !restored.SameLanguage(layout.English) || !prev.SameLanguage(layout.ChineseSimplified) {
		t.Errorf("Toggle() = (%s, %s), want (zh, en)", prev, restored)
	}

	// a second toggle undoes the first one
	if _, _, err := sw.Toggle(); err != nil {
		t.Fatalf("second Toggle() error: %v", err)
	}
	if !env.active.SameLanguage(layout.ChineseSimplified) {
		t.Errorf("active after second toggle = %s, want Chinese", env.active)
	}
}

func TestToggleStoredLayoutNoLongerEnabled(t *testing.T) {
	env := newEnv()
	sw, store, _ := newTestSwitcher(t, env)
	_ = store.Save(0x0419)

	if _, _, err := sw.Toggle(); !errors.Is(err, ErrLayoutNotEnabled) {
		t.Fatalf("Toggle() error = %v, want ErrLayoutNotEnabled", err)
	}
	if got, _, _ := store.Load(); got != 0x0419 {
		t.Errorf("stored layout changed to %s", got)
	}
}

func TestToggleCorruptStore(t *testing.T) {
	env := newEnv()
	sw := NewSwitcher(env, corruptStore{}, &fakeLock{}, zaptest.NewLogger(t).Sugar())

	if _, _, err := sw.Toggle(); !errors.Is(err, ErrStateStore) {
		t.Fatalf("Toggle() error = %v, want ErrStateStore", err)
	}
	if len(env.activated) != 0 {
		t.Errorf("activated %v, want nothing", env.activated)
	}
}

func TestFindLayoutPrefersExactMatch(t *testing.T) {
	enabled := []layout.ID{0xF0020409, 0x04090409}

	got, ok := findLayout(enabled, 0x04090409)
	if !ok || got != 0x04090409 {
		t.Errorf("findLayout() = %#x, %v", uint32(got), ok)
	}

	got, ok = findLayout(enabled, layout.English)
	if !ok || got != 0xF0020409 {
		t.Errorf("findLayout() = %#x, %v, want first locale match", uint32(got), ok)
	}
}
