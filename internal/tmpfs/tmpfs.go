// Package tmpfs — эфемерное хранилище собранных архивов, ключом служит
// тикет. Поверх gocloud.dev/blob: в проде file://-бакет на локальном диске,
// в тестах mem://. Артефакт живёт от создания до первой выдачи, остатки
// подметает фоновый GC.
package tmpfs

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/sir_venger/filegate/internal/models"
)

type Store struct {
	bucket *blob.Bucket
}

// Open подключает store по blob-URL (file://, mem://, s3:// — что
// зарегистрировано драйверами на стороне вызывающего).
func Open(ctx context.Context, url string) (*Store, error) {
	bkt, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Store{bucket: bkt}, nil
}

// NewWithBucket оборачивает уже открытый бакет.
func NewWithBucket(bkt *blob.Bucket) *Store {
	return &Store{bucket: bkt}
}

func (s *Store) Close() error {
	return s.bucket.Close()
}

// NewTicketID выдаёт свежий тикет. Дефисы uuid убраны, чтобы идентификатор
// оставался в классе [0-9A-Za-z_] и проходил санитизацию без потерь.
func NewTicketID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Sanitize отбрасывает из тикета всё вне [0-9A-Za-z_] — защита от инъекции
// пути в пространство ключей store.
func Sanitize(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		}
	}

	return b.String()
}

// NewWriter открывает запись артефакта под тикетом. Содержимое становится
// видимым читателям только после Close.
func (s *Store) NewWriter(ctx context.Context, id string) (io.WriteCloser, error) {
	return s.bucket.NewWriter(ctx, id, nil)
}

// ReadStream открывает готовый артефакт на чтение. Неизвестный тикет —
// models.ErrNotFound, без деталей.
func (s *Store) ReadStream(ctx context.Context, id string) (*blob.Reader, error) {
	r, err := s.bucket.NewReader(ctx, id, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	return r, nil
}

// Remove удаляет артефакт. Отсутствующий ключ не считается ошибкой:
// удаление после выдачи обязано быть идемпотентным.
func (s *Store) Remove(ctx context.Context, id string) error {
	err := s.bucket.Delete(ctx, id)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return err
	}

	return nil
}

// TotalBytes суммирует размер всех артефактов — метрика для /health.
func (s *Store) TotalBytes(ctx context.Context) (int64, error) {
	var total int64
	it := s.bucket.List(nil)
	for {
		obj, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		total += obj.Size
	}

	return total, nil
}
