package selgrab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selgrab/selgrab/internal/capture"
)

func TestWithContextEmptySelectionShortCircuits(t *testing.T) {
	called := false
	sel := withContext("", func(string) (string, bool, error) {
		called = true
		return "anything", true, nil
	})
	assert.False(t, called)
	assert.Empty(t, sel.Text)
	assert.False(t, sel.HasContext)
}

func TestWithContextFirstStrategyWins(t *testing.T) {
	sel := withContext("hello",
		func(string) (string, bool, error) { return "say hello world", true, nil },
		func(string) (string, bool, error) {
			t.Fatal("second strategy must not run")
			return "", false, nil
		},
	)
	require.True(t, sel.HasContext)
	assert.Equal(t, "say hello world", sel.Context)
	assert.Equal(t, "hello", sel.Text)
}

func TestWithContextFallsThroughOnError(t *testing.T) {
	sel := withContext("hello",
		func(string) (string, bool, error) { return "", false, errors.New("automation broke") },
		func(string) (string, bool, error) { return "well hello there", true, nil },
	)
	require.True(t, sel.HasContext)
	assert.Equal(t, "well hello there", sel.Context)
}

func TestWithContextFallsThroughWhenNotApplicable(t *testing.T) {
	sel := withContext("hello",
		func(string) (string, bool, error) { return "", false, nil },
		func(string) (string, bool, error) { return "oh hello again", true, nil },
	)
	require.True(t, sel.HasContext)
	assert.Equal(t, "oh hello again", sel.Context)
}

func TestWithContextRejectsNonContainingContext(t *testing.T) {
	// A strategy claiming success with context that does not actually hold
	// the selection is dropped, not trusted.
	sel := withContext("hello",
		func(string) (string, bool, error) { return "completely unrelated", true, nil },
	)
	assert.False(t, sel.HasContext)
	assert.Empty(t, sel.Context)
	assert.Equal(t, "hello", sel.Text)
}

func TestWithContextLostContextIsNotAnError(t *testing.T) {
	// Every strategy failing still yields the selection itself.
	sel := withContext("xyz",
		func(string) (string, bool, error) { return "", false, capture.ErrNotInContext },
	)
	assert.Equal(t, "xyz", sel.Text)
	assert.False(t, sel.HasContext)
}
