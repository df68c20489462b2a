package assets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_CopyIfAbsent_Idempotent(t *testing.T) {
	// больше одного буфера копирования
	blob := bytes.Repeat([]byte("0123456789abcdef"), 10_000)
	src := fstest.MapFS{"model.onnx": &fstest.MapFile{Data: blob}}
	dir := filepath.Join(t.TempDir(), "files")
	store := NewStore(src, dir)

	first, err := store.CopyIfAbsent("model.onnx")
	require.NoError(t, err)
	require.True(t, first.Copied)
	require.Equal(t, filepath.Join(dir, "model.onnx"), first.Path)

	got, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	require.Equal(t, blob, got)

	info, err := os.Stat(first.Path)
	require.NoError(t, err)

	second, err := store.CopyIfAbsent("model.onnx")
	require.NoError(t, err)
	require.False(t, second.Copied)
	require.Equal(t, first.Digest, second.Digest)

	again, err := os.Stat(second.Path)
	require.NoError(t, err)
	require.Equal(t, info.ModTime(), again.ModTime())

	got, err = os.ReadFile(second.Path)
	require.NoError(t, err)
	require.Equal(t, blob, got)

	// во временных файлах ничего не осталось
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestStore_CopyIfAbsent_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.WriteFile(dst, []byte("local"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(dst, old, old))

	src := fstest.MapFS{"model.onnx": &fstest.MapFile{Data: []byte("bundled")}}
	asset, err := NewStore(src, dir).CopyIfAbsent("model.onnx")
	require.NoError(t, err)
	require.False(t, asset.Copied)
	require.NotEmpty(t, asset.Digest)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "local", string(got))
}

func TestStore_CopyIfAbsent_MissingAsset(t *testing.T) {
	store := NewStore(fstest.MapFS{}, t.TempDir())
	_, err := store.CopyIfAbsent("model.onnx")
	require.Error(t, err)
}

func TestStore_DigestStable(t *testing.T) {
	src := fstest.MapFS{"m.bin": &fstest.MapFile{Data: []byte("weights")}}

	a, err := NewStore(src, t.TempDir()).CopyIfAbsent("m.bin")
	require.NoError(t, err)
	b, err := NewStore(src, t.TempDir()).CopyIfAbsent("m.bin")
	require.NoError(t, err)

	require.Equal(t, a.Digest, b.Digest)
	require.Len(t, a.Digest, 64)
}
