package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memClipboard is a minimal in-memory Clipboard for snapshot tests.
type memClipboard struct {
	text     string
	hasText  bool
	image    []byte
	hasImage bool
}

func (m *memClipboard) ReadText() (string, error) {
	if !m.hasText {
		return "", ErrNoContent
	}
	return m.text, nil
}

func (m *memClipboard) ReadImage() ([]byte, error) {
	if !m.hasImage {
		return nil, ErrNoContent
	}
	return m.image, nil
}

func (m *memClipboard) WriteText(s string) error {
	m.text, m.hasText = s, true
	m.image, m.hasImage = nil, false
	return nil
}

func (m *memClipboard) WriteImage(data []byte) error {
	m.image, m.hasImage = data, true
	m.text, m.hasText = "", false
	return nil
}

func (m *memClipboard) Clear() error {
	m.text, m.hasText = "", false
	m.image, m.hasImage = nil, false
	return nil
}

func TestSnapshotRestoresText(t *testing.T) {
	c := &memClipboard{}
	require.NoError(t, c.WriteText("keep me"))

	snap := Take(c)
	require.NoError(t, c.WriteText("scratch"))

	require.NoError(t, snap.Restore(c))
	got, err := c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "keep me", got)
}

func TestSnapshotPrefersTextOverImage(t *testing.T) {
	// Both formats present at snapshot time: text wins on restore.
	c := &memClipboard{
		text: "keep me", hasText: true,
		image: []byte{1, 2, 3}, hasImage: true,
	}

	snap := Take(c)
	require.NoError(t, c.Clear())

	require.NoError(t, snap.Restore(c))
	got, err := c.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "keep me", got)
}

func TestSnapshotRestoresImage(t *testing.T) {
	c := &memClipboard{}
	require.NoError(t, c.WriteImage([]byte{0x89, 'P', 'N', 'G'}))

	snap := Take(c)
	require.NoError(t, c.WriteText("scratch"))

	require.NoError(t, snap.Restore(c))
	img, err := c.ReadImage()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img)
}

func TestSnapshotOfEmptyClipboardClears(t *testing.T) {
	c := &memClipboard{}

	snap := Take(c)
	require.NoError(t, c.WriteText("scratch"))

	require.NoError(t, snap.Restore(c))
	_, err := c.ReadText()
	assert.ErrorIs(t, err, ErrNoContent)
	_, err = c.ReadImage()
	assert.ErrorIs(t, err, ErrNoContent)
}
