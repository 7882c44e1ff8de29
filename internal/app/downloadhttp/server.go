package downloadhttp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sir_venger/filegate/internal/archiver"
	"github.com/sir_venger/filegate/internal/config"
	"github.com/sir_venger/filegate/internal/storage"
	"github.com/sir_venger/filegate/internal/tmpfs"
	"github.com/sir_venger/filegate/internal/usecase/downloadsvc"
)

type Server struct {
	Downloads downloadsvc.Service
	Tmp       *tmpfs.Store
	Cfg       *config.Config
}

// NewServer конструктор
func NewServer(ctx context.Context, cfg *config.Config) (http.Handler, *Server, error) {
	downloads, tmp, err := buildDownloadService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	srv := &Server{
		Downloads: downloads,
		Tmp:       tmp,
		Cfg:       cfg,
	}

	return srv.routes(), srv, nil
}

// routes регистрирует обработчики выдачи и здоровья.
func (s *Server) routes() http.Handler {
	rtr := chi.NewRouter()
	rtr.Get("/download", s.download)
	rtr.Post("/batchdownload", s.batchCreate)
	rtr.Get("/batchdownload", s.batchStart)
	rtr.Get("/health", s.health)

	return rtr
}

func buildDownloadService(ctx context.Context, cfg *config.Config) (downloadsvc.Service, *tmpfs.Store, error) {
	files := storage.New(cfg.FilesRoot)

	tmp, err := tmpfs.Open(ctx, cfg.TmpURL)
	if err != nil {
		return nil, nil, err
	}

	svc := downloadsvc.New(downloadsvc.Deps{
		Files:            files,
		Tmp:              tmp,
		Archiver:         archiver.New(tmp, files),
		InlineExtensions: cfg.DownloadInline,
		ArchiveName:      cfg.ArchiveName,
	})

	return svc, tmp, nil
}

// Close освобождает ресурсы сервера (соединение с temp store).
func (s *Server) Close() error {
	return s.Tmp.Close()
}
