package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/sir_venger/filegate/internal/app/downloadhttp"
	"github.com/sir_venger/filegate/internal/config"
	"github.com/sir_venger/filegate/internal/tmpfs"
)

// main инициализирует HTTP-сервис выдачи и обеспечивает корректное завершение по сигналу.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, srv, err := downloadhttp.NewServer(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close()

	// Фоновая уборка просроченных тикетов в temp store.
	stopGC := tmpfs.StartGC(srv.Tmp,
		time.Duration(cfg.GCTTLHours)*time.Hour,
		time.Duration(cfg.GCIntervalMin)*time.Minute,
	)
	defer stopGC()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("filegate listening on %s (root=%s, tmp=%s)", cfg.ListenAddr, cfg.FilesRoot, cfg.TmpURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("final shutdown error: %v", err)
	}
}
