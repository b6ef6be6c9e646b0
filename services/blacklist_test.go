package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBlackList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blacklist.txt")
	require.NoError(t, os.WriteFile(path, []byte("password123\n\n  qwerty  \n"), 0600))

	blackList, err := LoadBlackList(path)
	require.NoError(t, err)

	assert.True(t, blackList["password123"])
	assert.True(t, blackList["qwerty"])
	assert.False(t, blackList[""])
	assert.Len(t, blackList, 2)
}

func TestLoadBlackListMissingFile(t *testing.T) {
	_, err := LoadBlackList(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
