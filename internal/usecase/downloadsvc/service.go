package downloadsvc

import (
	"context"
	"net/http"

	"github.com/sir_venger/filegate/internal/archiver"
	"github.com/sir_venger/filegate/internal/models"
	"github.com/sir_venger/filegate/internal/storage"
	"github.com/sir_venger/filegate/internal/tmpfs"
)

type (
	// Service объединяет операции выдачи: одиночный файл с поддержкой
	// Range и двухфазная пакетная выдача через архивный тикет.
	Service interface {
		ServeFile(ctx context.Context, w http.ResponseWriter, encodedPath, rangeHeader string) error
		CreateArchive(ctx context.Context, items []models.ArchiveItem) (string, error)
		DeliverArchive(ctx context.Context, w http.ResponseWriter, uniqid string) error
	}
)

type Deps struct {
	Files    *storage.Storage
	Tmp      *tmpfs.Store
	Archiver *archiver.Archiver

	// InlineExtensions — расширения, которые отдаются inline вместо
	// attachment; "*" включает inline для всех.
	InlineExtensions []string
	// ArchiveName — имя архива в Content-Disposition пакетной выдачи.
	ArchiveName string
}

type Downloads struct {
	Deps
}

// New конструирует сервис выдачи с заданными зависимостями. Конфигурация
// передаётся явно при конструировании, глобального состояния нет.
func New(deps Deps) *Downloads {
	return &Downloads{Deps: deps}
}

var _ Service = (*Downloads)(nil)

// inline сообщает, разрешена ли выдача inline для данного расширения.
func (s *Downloads) inline(ext string) bool {
	for _, allowed := range s.InlineExtensions {
		if allowed == "*" || allowed == ext {
			return true
		}
	}

	return false
}
