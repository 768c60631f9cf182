package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/merchstore/merch-store/pkg/logging"
	loggingmw "github.com/merchstore/merch-store/pkg/middleware/logging"
	dbcfg "github.com/merchstore/merch-store/services/db/internal/config"
	"github.com/merchstore/merch-store/services/db/internal/httpserver"
	"github.com/merchstore/merch-store/services/db/internal/repo"
	"github.com/merchstore/merch-store/services/db/internal/service"
)

func main() {
	if err := godotenv.Load("services/db/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := dbcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", "db_service")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repo.Open(ctx, cfg.DatabaseURL, cfg.PoolMin, cfg.PoolMax)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	storeRepo := &repo.GormRepo{DB: db}
	svc := &service.StoreService{Repo: storeRepo}
	handler := &httpserver.StoreHTTP{Svc: svc}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{StoreHandler: handler})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("db service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("db service stopped")
}
