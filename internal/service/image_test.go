package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRecipeImageLocal(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(NewLocalImageStore(dir, "/media"))

	path, err := svc.StoreRecipeImage(context.Background(), testPNG(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/media/uploads/recipe/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	onDisk := filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(path, "/media/")))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	svc.Remove(context.Background(), path)
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestStoreRecipeImageRejectsNonImage(t *testing.T) {
	svc := NewImageService(NewLocalImageStore(t.TempDir(), "/media"))

	_, err := svc.StoreRecipeImage(context.Background(), []byte("not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestStoreRecipeImageUniqueNames(t *testing.T) {
	svc := NewImageService(NewLocalImageStore(t.TempDir(), "/media"))

	first, err := svc.StoreRecipeImage(context.Background(), testPNG(t))
	require.NoError(t, err)
	second, err := svc.StoreRecipeImage(context.Background(), testPNG(t))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveIgnoresEmptyPath(t *testing.T) {
	svc := NewImageService(NewLocalImageStore(t.TempDir(), "/media"))
	svc.Remove(context.Background(), "")
}
