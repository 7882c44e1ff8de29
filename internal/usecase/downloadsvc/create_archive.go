package downloadsvc

import (
	"context"
	"fmt"

	"github.com/sir_venger/filegate/internal/models"
)

// CreateArchive синхронно собирает архив по списку элементов и возвращает
// тикет. Элементы добавляются строго в порядке запроса, без дедупликации;
// архив запечатывается безусловно — пустой список даёт валидный пустой
// архив. Любой сбой добавления прекращает сборку и сбрасывает
// недостроенный артефакт, тикет клиенту не выдаётся.
func (s *Downloads) CreateArchive(ctx context.Context, items []models.ArchiveItem) (string, error) {
	job, err := s.Archiver.Create(ctx)
	if err != nil {
		return "", err
	}

	for _, item := range items {
		switch item.Type {
		case models.ItemDir:
			err = job.AddDir(item.Path)
		case models.ItemFile:
			err = job.AddFile(item.Path)
		default:
			err = fmt.Errorf("%w: %q", models.ErrUnknownItem, item.Type)
		}

		if err != nil {
			job.Discard(ctx)
			return "", err
		}
	}

	if err := job.Close(); err != nil {
		job.Discard(ctx)
		return "", err
	}

	return job.ID(), nil
}
