package capture

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selgrab/selgrab/internal/clip"
	"github.com/selgrab/selgrab/internal/input"
)

// fakeClipboard is an in-memory clipboard with per-call failure injection.
type fakeClipboard struct {
	mu       sync.Mutex
	text     string
	hasText  bool
	image    []byte
	hasImage bool

	reads      int
	failReadAt int // fail the Nth ReadText call (1-based), 0 = never
	writeErr   error
	writeDelay time.Duration
}

func (f *fakeClipboard) setText(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text, f.hasText = s, true
	f.image, f.hasImage = nil, false
}

func (f *fakeClipboard) ReadText() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failReadAt != 0 && f.reads == f.failReadAt {
		return "", errors.New("backend unavailable")
	}
	if !f.hasText {
		return "", clip.ErrNoContent
	}
	return f.text, nil
}

func (f *fakeClipboard) ReadImage() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasImage {
		return nil, clip.ErrNoContent
	}
	return f.image, nil
}

func (f *fakeClipboard) WriteText(s string) error {
	if f.writeDelay > 0 {
		time.Sleep(f.writeDelay)
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	f.setText(s)
	return nil
}

func (f *fakeClipboard) WriteImage(data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.image, f.hasImage = data, true
	f.text, f.hasText = "", false
	return nil
}

func (f *fakeClipboard) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text, f.hasText = "", false
	f.image, f.hasImage = nil, false
	return nil
}

// fakeInput simulates the focused application: a copy shortcut places the
// current "selection" on the clipboard, select-all switches the copy source
// to the whole document.
type fakeInput struct {
	mu          sync.Mutex
	clipboard   *fakeClipboard
	selection   string // what a copy yields; "" = no-op copy (nothing selected)
	document    string // what a copy yields after select-all
	allSelected bool

	taps     []string
	tapErr   map[string]error
	releases int
}

func (f *fakeInput) Tap(key string, mods ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	name := strings.Join(append([]string{key}, mods...), "+")
	f.taps = append(f.taps, name)
	if err := f.tapErr[name]; err != nil {
		return err
	}
	if len(mods) > 0 {
		switch key {
		case "a":
			f.allSelected = true
		case "c":
			if f.allSelected {
				f.clipboard.setText(f.document)
			} else if f.selection != "" {
				f.clipboard.setText(f.selection)
			}
		}
	}
	return nil
}

func (f *fakeInput) ReleaseModifiers() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releases++
	return nil
}

func (f *fakeInput) tapped(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.taps {
		if t == name {
			return true
		}
	}
	return false
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SettleWrite = 0
	cfg.SettleRead = 0
	cfg.SettleCancel = 0
	cfg.SettleFallback = 0
	cfg.Poll = time.Millisecond
	cfg.Timeout = time.Second
	return cfg
}

func newTestEngine(selection, document string) (*Engine, *fakeClipboard, *fakeInput) {
	fc := &fakeClipboard{}
	fi := &fakeInput{clipboard: fc, selection: selection, document: document}
	return New(fc, fi, testConfig()), fc, fi
}

func copyTap() string {
	return "c+" + input.PrimaryModifier()
}

func TestCopySelectionCapturesAndRestores(t *testing.T) {
	eng, fc, fi := newTestEngine("hello world", "")
	fc.setText("previous contents")

	got, err := eng.CopySelection(false)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.True(t, fi.tapped(copyTap()))
	assert.GreaterOrEqual(t, fi.releases, 1)

	// The caller's clipboard must come back untouched.
	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestCopySelectionNothingSelected(t *testing.T) {
	// A no-op copy leaves the sentinel in place; that reads back as "".
	eng, fc, _ := newTestEngine("", "")
	fc.setText("previous contents")

	got, err := eng.CopySelection(false)
	require.NoError(t, err)
	assert.Empty(t, got)

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestCopySelectionCancelSelect(t *testing.T) {
	eng, _, fi := newTestEngine("hello", "")

	_, err := eng.CopySelection(true)
	require.NoError(t, err)
	assert.True(t, fi.tapped("right"))
}

func TestCopySelectionNoCancelByDefault(t *testing.T) {
	eng, _, fi := newTestEngine("hello", "")

	_, err := eng.CopySelection(false)
	require.NoError(t, err)
	assert.False(t, fi.tapped("right"))
}

func TestCopySelectionRestoresOnReadFailure(t *testing.T) {
	eng, fc, _ := newTestEngine("hello", "")
	fc.setText("previous contents")
	// Read #1 is the snapshot; read #2 is the post-copy read.
	fc.failReadAt = 2

	_, err := eng.CopySelection(false)
	var ce *ClipboardError
	require.ErrorAs(t, err, &ce)

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestCopySelectionRestoresImage(t *testing.T) {
	eng, fc, _ := newTestEngine("hello", "")
	require.NoError(t, fc.WriteImage([]byte{0x89, 'P', 'N', 'G'}))

	got, err := eng.CopySelection(false)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	img, err := fc.ReadImage()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img)
}

func TestCopySelectionInputFailure(t *testing.T) {
	eng, fc, fi := newTestEngine("hello", "")
	fc.setText("previous contents")
	fi.tapErr = map[string]error{copyTap(): errors.New("injection rejected")}

	_, err := eng.CopySelection(false)
	var ie *InputError
	require.ErrorAs(t, err, &ie)

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestCopySelectionTimeoutStillRestores(t *testing.T) {
	eng, fc, _ := newTestEngine("hello", "")
	fc.setText("previous contents")
	fc.writeDelay = 50 * time.Millisecond
	cfg := testConfig()
	cfg.Timeout = 5 * time.Millisecond
	eng.cfg = cfg

	_, err := eng.CopySelection(false)
	require.ErrorIs(t, err, ErrTimeout)

	fc.writeDelay = 0
	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestSelectAllContextEmptySelectionShortCircuits(t *testing.T) {
	eng, fc, fi := newTestEngine("", "whole document")
	fc.setText("previous contents")

	ctx, ok, err := eng.SelectAllContext("")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, ctx)
	// No simulation at all may happen for an empty selection.
	assert.Empty(t, fi.taps)
	assert.Zero(t, fi.releases)
}

func TestSelectAllContextWindowsAroundSelection(t *testing.T) {
	eng, fc, fi := newTestEngine("hello", "0123456789hello0123456789")
	fc.setText("previous contents")
	cfg := testConfig()
	cfg.ContextBefore = 5
	cfg.ContextAfter = 5
	eng.cfg = cfg

	ctx, ok, err := eng.SelectAllContext("hello")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "56789hello01234", ctx)
	assert.Contains(t, ctx, "hello")

	assert.True(t, fi.tapped("a+"+input.PrimaryModifier()))
	// Best-effort visual cancel ran.
	assert.True(t, fi.tapped("esc"))
	assert.True(t, fi.tapped("left"))
	assert.True(t, fi.tapped("right"))

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestSelectAllContextNotInContext(t *testing.T) {
	eng, fc, _ := newTestEngine("xyz", "abcdef")
	fc.setText("previous contents")

	_, ok, err := eng.SelectAllContext("xyz")
	require.ErrorIs(t, err, ErrNotInContext)
	assert.False(t, ok)

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestSelectAllContextTimeout(t *testing.T) {
	eng, fc, fi := newTestEngine("hello", "doc with hello in it")
	fc.setText("previous contents")
	cfg := testConfig()
	cfg.Timeout = 0 // budget already spent before the first phase
	eng.cfg = cfg

	_, ok, err := eng.SelectAllContext("hello")
	require.ErrorIs(t, err, ErrTimeout)
	assert.False(t, ok)

	// The select-all never happened, and on timeout the visual cancel is
	// skipped in favor of going straight to restore.
	assert.False(t, fi.tapped("a+"+input.PrimaryModifier()))
	assert.False(t, fi.tapped("esc"))

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}

func TestSelectAllContextInputFailureRestores(t *testing.T) {
	eng, fc, fi := newTestEngine("hello", "doc with hello in it")
	fc.setText("previous contents")
	fi.tapErr = map[string]error{"a+" + input.PrimaryModifier(): errors.New("injection rejected")}

	_, _, err := eng.SelectAllContext("hello")
	var ie *InputError
	require.ErrorAs(t, err, &ie)

	text, err := fc.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "previous contents", text)
}
