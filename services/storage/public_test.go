package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReturnsPublicURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalPublicStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.Save([]byte("mp3-bytes"), ".mp3")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/public/"), url)
	assert.True(t, strings.HasSuffix(url, ".mp3"), url)

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), data)
}

func TestSaveUniqueNames(t *testing.T) {
	store, err := NewLocalPublicStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	first, err := store.Save([]byte("a"), ".mp3")
	require.NoError(t, err)
	second, err := store.Save([]byte("b"), ".mp3")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNewLocalPublicStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "public")
	_, err := NewLocalPublicStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
