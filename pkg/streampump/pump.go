// Package streampump перекачивает ограниченное окно байтов из позиционируемого
// источника в приёмник фиксированными кусками, сбрасывая буфер приёмника после
// каждого куска. Источник закрывается на любом пути выхода из цикла.
package streampump

import (
	"context"
	"errors"
	"io"
)

// DefaultChunkSize — размер куска по умолчанию, как у исходного протокола выдачи.
const DefaultChunkSize = 8 * 1024

// flusher реализуется http.ResponseWriter и позволяет кооперативно
// проталкивать данные клиенту по мере записи.
type flusher interface {
	Flush()
}

// Pump позиционирует src на start и копирует не более length байтов в dst
// кусками по chunkSize (<=0 означает DefaultChunkSize). Цикл завершается,
// когда окно исчерпано либо источник сообщил конец данных — ранний EOF не
// считается ошибкой. Отмена ctx (обычно отключение клиента) останавливает
// цикл между кусками. src закрывается ровно один раз при любом исходе.
func Pump(ctx context.Context, dst io.Writer, src io.ReadSeekCloser, start, length, chunkSize int64) error {
	defer src.Close()

	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return err
	}

	fl, _ := dst.(flusher)
	buf := make([]byte, chunkSize)
	remaining := length

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := chunkSize
		if remaining < n {
			n = remaining
		}

		rn, rerr := src.Read(buf[:n])
		if rn > 0 {
			if _, werr := dst.Write(buf[:rn]); werr != nil {
				return werr
			}
			if fl != nil {
				fl.Flush()
			}
			remaining -= int64(rn)
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				return nil
			}
			return rerr
		}
	}

	return nil
}
