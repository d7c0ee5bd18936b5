package capture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowExactOffsets(t *testing.T) {
	full := "0123456789hello0123456789"
	got, ok := Window(full, "hello", 5, 5)
	require.True(t, ok)
	assert.Equal(t, "56789hello01234", got)
}

func TestWindowClampsToBounds(t *testing.T) {
	// Selection at offset 0: the window start clamps to 0.
	got, ok := Window("hello tail", "hello", 150, 3)
	require.True(t, ok)
	assert.Equal(t, "hello ta", got)

	// Selection near the end: the window end clamps to len(full).
	got, ok = Window("head hello", "hello", 2, 150)
	require.True(t, ok)
	assert.Equal(t, "d hello", got)
}

func TestWindowSnapsRuneBoundariesInward(t *testing.T) {
	// α is two bytes; "hello" sits between two runs of them.
	full := "ααααhello αααα"
	start := strings.Index(full, "hello")
	require.Equal(t, 8, start)

	// before=3 lands mid-α (byte 5) and must snap forward to byte 6;
	// after=2 lands mid-α (byte 15) and must snap back to byte 14.
	got, ok := Window(full, "hello", 3, 2)
	require.True(t, ok)
	assert.Equal(t, "αhello ", got)

	// after=4 lands mid-α (byte 17) and must snap back to byte 16.
	got, ok = Window(full, "hello", 2, 4)
	require.True(t, ok)
	assert.Equal(t, "αhello α", got)
}

func TestWindowNotFound(t *testing.T) {
	_, ok := Window("abcdef", "xyz", 5, 5)
	assert.False(t, ok)
}

func TestWindowDegenerateReturnsFull(t *testing.T) {
	// An empty needle matches at offset 0 with a zero-width window; rather
	// than a malformed empty slice the whole capture comes back.
	got, ok := Window("abc", "", 0, 0)
	require.True(t, ok)
	assert.Equal(t, "abc", got)
}

func TestWindowAlwaysContainsSelection(t *testing.T) {
	docs := []string{
		"plain ascii document with a needle in the middle of it",
		"日本語のテキストの中に needle が埋め込まれている文章です",
		"αβγδε needle ζηθικ needle λμνξο",
		strings.Repeat("x", 400) + "needle" + strings.Repeat("y", 400),
	}
	for _, full := range docs {
		for before := 0; before <= 12; before += 3 {
			for after := 0; after <= 12; after += 3 {
				got, ok := Window(full, "needle", before, after)
				require.True(t, ok)
				assert.Contains(t, got, "needle",
					"before=%d after=%d full=%q", before, after, full)
			}
		}
	}
}
