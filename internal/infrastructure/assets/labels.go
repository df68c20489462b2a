package assets

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"frame-classifier/internal/domain/entity"
)

// ErrNoLabels файл меток пуст
var ErrNoLabels = errors.New("labels file is empty")

// LoadLabels читает список классов, по одному на строку.
// Пустые строки внутри файла сохраняются, иначе съедут индексы.
func LoadLabels(r io.Reader) (entity.Labels, error) {
	var labels entity.Labels

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		labels = append(labels, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}

	return labels, nil
}

// Labels читает файл меток прямо из поставляемых файлов
func (s *Store) Labels(name string) (entity.Labels, error) {
	f, err := s.src.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open bundled %s: %w", name, err)
	}
	defer f.Close()

	return LoadLabels(f)
}
