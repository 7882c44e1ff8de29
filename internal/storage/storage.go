// Package storage — файловое хранилище, ограниченное корневым каталогом
// пользователя. Поверх go-billy: osfs с chroot не выпускает пути за корень,
// поэтому "../" в запросе упирается в границу, а не в соседний каталог.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sir_venger/filegate/internal/models"
)

type Storage struct {
	fs billy.Filesystem
}

// New создаёт хранилище с корнем в root.
func New(root string) *Storage {
	return &Storage{fs: osfs.New(root)}
}

// NewWithFilesystem оборачивает готовую billy-ФС (memfs в тестах).
func NewWithFilesystem(fsys billy.Filesystem) *Storage {
	return &Storage{fs: fsys}
}

// ReadStream открывает файл на чтение и возвращает позиционируемый поток
// вместе с именем и размером. Любая ошибка резолва (нет файла, выход за
// корень, каталог вместо файла) сворачивается в models.ErrNotFound — наружу
// детали не выдаются.
func (s *Storage) ReadStream(path string) (models.FileHandle, error) {
	name := clean(path)

	info, err := s.fs.Stat(name)
	if err != nil || info.IsDir() {
		return models.FileHandle{}, models.ErrNotFound
	}

	f, err := s.fs.Open(name)
	if err != nil {
		return models.FileHandle{}, models.ErrNotFound
	}

	return models.FileHandle{
		Stream:   f,
		Filename: info.Name(),
		Size:     info.Size(),
	}, nil
}

// Stat возвращает метаданные по пути внутри корня.
func (s *Storage) Stat(path string) (os.FileInfo, error) {
	info, err := s.fs.Stat(clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return info, nil
}

// Open открывает файл без метаданных — для последовательного чтения архиватором.
func (s *Storage) Open(path string) (billy.File, error) {
	f, err := s.fs.Open(clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return f, nil
}

// Walk обходит поддерево в лексикографическом порядке.
func (s *Storage) Walk(root string, fn func(path string, info os.FileInfo, err error) error) error {
	return util.Walk(s.fs, clean(root), fn)
}

// clean приводит путь запроса к виду относительно корня хранилища.
func clean(path string) string {
	return strings.TrimPrefix(path, "/")
}
