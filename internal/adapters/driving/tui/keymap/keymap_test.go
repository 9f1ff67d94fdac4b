package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Send.Keys(), "enter")
	assert.Contains(t, km.Up.Keys(), "up")
	assert.Contains(t, km.Down.Keys(), "down")
	assert.Contains(t, km.Clear.Keys(), "esc")
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "enter", help[0].Help().Key)
	assert.Equal(t, "ctrl+c", help[3].Help().Key)
}
