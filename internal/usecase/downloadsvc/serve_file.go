package downloadsvc

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sir_venger/filegate/internal/models"
	"github.com/sir_venger/filegate/pkg/httprange"
	"github.com/sir_venger/filegate/pkg/streampump"
)

// ServeFile отдаёт один файл: декодирует путь, открывает позиционируемый
// поток, вычисляет окно по заголовку Range и качает его клиенту. Ошибка
// возвращается только до первого записанного байта — обработчик превращает
// её в мягкий редирект; после отправки заголовков сбои середины потока
// невосстановимы и лишь логируются.
func (s *Downloads) ServeFile(ctx context.Context, w http.ResponseWriter, encodedPath, rangeHeader string) error {
	raw, err := base64.StdEncoding.DecodeString(encodedPath)
	if err != nil {
		return models.ErrNotFound
	}

	fh, err := s.Files.ReadStream(string(raw))
	if err != nil {
		return err
	}

	plan, err := httprange.Resolve(fh.Size, rangeHeader)
	if err != nil {
		// Кривой или невыполнимый Range не роняет запрос: отдаём файл
		// целиком. Политика fail-open, как в исходной выдаче.
		log.Printf("range %q for %s: %v, serving full content", rangeHeader, fh.Filename, err)
		plan, _ = httprange.Resolve(fh.Size, "")
	}

	s.writeFileHeaders(w, fh, plan)

	// Долгие передачи легитимны: снимаем дедлайн записи на время стрима.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.WriteHeader(plan.StatusCode)
	if err := streampump.Pump(ctx, w, fh.Stream, plan.Start, plan.Length, streampump.DefaultChunkSize); err != nil {
		log.Printf("stream %s interrupted: %v", fh.Filename, err)
	}

	return nil
}

// writeFileHeaders детерминированно выставляет метаданные ответа до старта стрима.
func (s *Downloads) writeFileHeaders(w http.ResponseWriter, fh models.FileHandle, plan httprange.Plan) {
	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	if plan.Partial {
		h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", plan.Start, plan.Start+plan.Length-1, plan.Total))
	}

	ext := strings.TrimPrefix(path.Ext(fh.Filename), ".")
	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	disposition := "attachment"
	if s.inline(ext) {
		disposition = "inline"
	}

	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": fh.Filename}))
	h.Set("Content-Transfer-Encoding", "binary")
	h.Set("Content-Length", strconv.FormatInt(plan.Length, 10))
}
