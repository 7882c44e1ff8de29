package tmpfs

import (
	"context"
	"io"
	"sync"
	"time"

	"gocloud.dev/blob"
)

// StartGC стартует периодическую очистку устаревших артефактов —
// тикетов, которые так и не были выданы (клиент ушёл после batch create,
// либо создание упало до Discard). Возвращает функцию остановки.
func StartGC(store *Store, ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				_ = store.sweepOnce(context.Background(), ttl)
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}

// sweepOnce удаляет артефакты старше ttl.
func (s *Store) sweepOnce(ctx context.Context, ttl time.Duration) error {
	now := time.Now()
	it := s.bucket.List(&blob.ListOptions{})
	for {
		obj, err := it.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if now.Sub(obj.ModTime) < ttl {
			continue
		}

		_ = s.Remove(ctx, obj.Key)
	}
}
