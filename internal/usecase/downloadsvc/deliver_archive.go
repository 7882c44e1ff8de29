package downloadsvc

import (
	"context"
	"log"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/sir_venger/filegate/internal/tmpfs"
	"github.com/sir_venger/filegate/pkg/streampump"
)

// DeliverArchive отдаёт готовый архив по тикету и удаляет артефакт после
// завершения стрима — безусловно, даже если клиент отвалился на середине:
// архив на время выдачи только читается, так что удаление безопасно в любом
// случае. Range для архивной выдачи не поддерживается, всегда полный 200.
// Предположение "один потребитель на тикет" не охраняется блокировкой:
// тикеты неугадываемы, а повторная выдача упирается в ErrNotFound.
func (s *Downloads) DeliverArchive(ctx context.Context, w http.ResponseWriter, uniqid string) error {
	id := tmpfs.Sanitize(uniqid)

	r, err := s.Tmp.ReadStream(ctx, id)
	if err != nil {
		return err
	}
	// Удаление обязано отработать и при отменённом контексте запроса.
	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)
		if err := s.Tmp.Remove(cleanupCtx, id); err != nil {
			log.Printf("remove archive %s: %v", id, err)
		}
	}()

	h := w.Header()
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": s.ArchiveName}))
	h.Set("Content-Type", "application/octet-stream")
	h.Set("Content-Transfer-Encoding", "binary")
	if size := r.Size(); size >= 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
	}

	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.WriteHeader(http.StatusOK)
	if err := streampump.Pump(ctx, w, r, 0, r.Size(), streampump.DefaultChunkSize); err != nil {
		log.Printf("stream archive %s interrupted: %v", id, err)
	}

	return nil
}
