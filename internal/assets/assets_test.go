package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeImage(t *testing.T, dir, name string, typ gocv.MatType) string {
	t.Helper()

	img := gocv.NewMatWithSize(8, 8, typ)
	defer img.Close()

	path := filepath.Join(dir, name)
	require.True(t, gocv.IMWrite(path, img), "IMWrite %s", path)
	return path
}

func TestCache_Load(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "rgba.png", gocv.MatTypeCV8UC4)
	writeImage(t, dir, "rgb.png", gocv.MatTypeCV8UC3)

	c := NewCache(dir)
	defer c.Close()

	t.Run("four channel", func(t *testing.T) {
		img, err := c.Load("rgba.png")
		require.NoError(t, err)
		assert.Equal(t, 4, img.Channels())
		assert.Equal(t, 8, img.Cols())
	})

	t.Run("three channel", func(t *testing.T) {
		img, err := c.Load("rgb.png")
		require.NoError(t, err)
		assert.Equal(t, 3, img.Channels())
	})

	t.Run("absolute path", func(t *testing.T) {
		_, err := c.Load(filepath.Join(dir, "rgb.png"))
		require.NoError(t, err)
	})

	assert.Equal(t, 2, c.Len(), "absolute and relative names share an entry")
}

func TestCache_Memoized(t *testing.T) {
	dir := t.TempDir()
	path := writeImage(t, dir, "icon.png", gocv.MatTypeCV8UC4)

	c := NewCache(dir)
	defer c.Close()

	first, err := c.Load("icon.png")
	require.NoError(t, err)

	// A symlink resolves to the already cached file.
	link := filepath.Join(dir, "alias.png")
	require.NoError(t, os.Symlink(path, link))

	second, err := c.Load("alias.png")
	require.NoError(t, err)
	assert.Equal(t, first.Ptr(), second.Ptr())
	assert.Equal(t, 1, c.Len())
}

func TestCache_Errors(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, dir, "gray.png", gocv.MatTypeCV8UC1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.png"), []byte("not an image"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder"), 0o755))

	c := NewCache(dir)
	defer c.Close()

	tests := []struct {
		name string
		file string
		want error
	}{
		{"missing", "missing.png", ErrAssetNotFound},
		{"directory", "folder", ErrAssetNotFound},
		{"single channel", "gray.png", ErrInvalidAssetFormat},
		{"undecodable", "notes.png", ErrInvalidAssetFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Load(tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Zero(t, c.Len(), "failed loads are not cached")
}
