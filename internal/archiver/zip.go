// Package archiver собирает zip-архив из файлов хранилища прямо в tmpfs,
// не материализуя архив в памяти. Одна Job — один тикет; жизненный цикл:
// Create → AddFile/AddDir в порядке запроса → Close (запечатать) либо
// Discard (сбросить недостроенный артефакт).
package archiver

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sir_venger/filegate/internal/storage"
	"github.com/sir_venger/filegate/internal/tmpfs"
)

type Archiver struct {
	tmp   *tmpfs.Store
	files *storage.Storage
}

// New конструирует архиватор над хранилищем файлов и temp store.
func New(tmp *tmpfs.Store, files *storage.Storage) *Archiver {
	return &Archiver{tmp: tmp, files: files}
}

// Job — архив в процессе наполнения.
type Job struct {
	id    string
	sink  io.WriteCloser
	zw    *zip.Writer
	tmp   *tmpfs.Store
	files *storage.Storage
}

// Create заводит новую задачу с уникальным тикетом и открывает запись в tmpfs.
func (a *Archiver) Create(ctx context.Context) (*Job, error) {
	id := tmpfs.NewTicketID()

	w, err := a.tmp.NewWriter(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("create archive %s: %w", id, err)
	}

	return &Job{
		id:    id,
		sink:  w,
		zw:    zip.NewWriter(w),
		tmp:   a.tmp,
		files: a.files,
	}, nil
}

// ID возвращает тикет задачи.
func (j *Job) ID() string {
	return j.id
}

// AddFile кладёт один файл из хранилища в архив под его относительным путём.
func (j *Job) AddFile(path string) error {
	return j.addOne(path, entryName(path))
}

// AddDir рекурсивно кладёт каталог: для подкаталогов создаются записи с
// завершающим "/", файлы копируются в порядке обхода.
func (j *Job) AddDir(path string) error {
	return j.files.Walk(path, func(walked string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			_, err := j.zw.Create(entryName(walked) + "/")
			return err
		}

		return j.addOne(walked, entryName(walked))
	})
}

func (j *Job) addOne(path, name string) error {
	f, err := j.files.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := j.zw.Create(name)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}

// Close запечатывает архив: дописывает центральный каталог zip и коммитит
// артефакт в tmpfs. Вызывается безусловно, даже для пустого списка —
// пустой запечатанный zip валиден.
func (j *Job) Close() error {
	if err := j.zw.Close(); err != nil {
		_ = j.sink.Close()
		return err
	}

	return j.sink.Close()
}

// Discard прекращает сборку и удаляет недостроенный артефакт, чтобы не
// оставлять сирот в tmpfs.
func (j *Job) Discard(ctx context.Context) {
	_ = j.zw.Close()
	_ = j.sink.Close()
	_ = j.tmp.Remove(ctx, j.id)
}

// entryName — имя члена архива: путь хранилища без ведущего слэша.
func entryName(path string) string {
	return strings.TrimPrefix(path, "/")
}
