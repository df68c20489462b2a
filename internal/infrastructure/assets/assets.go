package assets

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// Asset локальная копия поставляемого файла
type Asset struct {
	Path   string // путь к локальной копии
	Digest string // BLAKE3-256 содержимого, hex
	Copied bool   // true, если файл был скопирован этим вызовом
}

// Store копирует поставляемые файлы (src) в локальный каталог (dir).
type Store struct {
	src fs.FS
	dir string
}

// NewStore создаёт хранилище; dir создаётся при первом копировании.
func NewStore(src fs.FS, dir string) *Store {
	return &Store{src: src, dir: dir}
}

// CopyIfAbsent копирует name в локальный каталог, если там его ещё нет.
// Существующий файл никогда не перезаписывается.
func (s *Store) CopyIfAbsent(name string) (Asset, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(name))

	if _, err := os.Stat(dst); err == nil {
		digest, err := fileDigest(dst)
		if err != nil {
			return Asset{}, err
		}
		return Asset{Path: dst, Digest: digest}, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Asset{}, fmt.Errorf("stat %s: %w", dst, err)
	}

	in, err := s.src.Open(name)
	if err != nil {
		return Asset{}, fmt.Errorf("open bundled %s: %w", name, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Asset{}, fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}

	// Пишем во временный файл рядом и переименовываем, чтобы
	// прерванное копирование не оставило обрезанный файл под итоговым именем.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".asset-*")
	if err != nil {
		return Asset{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	h := blake3.New(32, nil)
	if _, err := io.Copy(io.MultiWriter(tmp, h), in); err != nil {
		tmp.Close()
		return Asset{}, fmt.Errorf("copy %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return Asset{}, fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return Asset{}, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return Asset{}, fmt.Errorf("rename to %s: %w", dst, err)
	}

	return Asset{Path: dst, Digest: hex.EncodeToString(h.Sum(nil)), Copied: true}, nil
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
