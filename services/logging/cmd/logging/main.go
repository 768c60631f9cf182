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
	logcfg "github.com/merchstore/merch-store/services/logging/internal/config"
	"github.com/merchstore/merch-store/services/logging/internal/es"
	"github.com/merchstore/merch-store/services/logging/internal/httpserver"
	"github.com/merchstore/merch-store/services/logging/internal/mykafka"
	"github.com/merchstore/merch-store/services/logging/internal/service"
)

func main() {
	if err := godotenv.Load("services/logging/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := logcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", "logging_service")
	slog.SetDefault(logger)

	producer := mykafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)

	svc := &service.IngestService{Sink: producer}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("es connect: %v", err)
		}
		svc.Indexer = &es.LogIndexer{Client: esClient, Index: cfg.ESLogIndex}
	}

	handler := &httpserver.LoggingHTTP{Svc: svc}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{LoggingHandler: handler})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("logging service listening on %s", srv.Addr)
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

	if err := producer.Close(); err != nil {
		logger.Error("producer close failed", "error", err)
	}

	log.Println("logging service stopped")
}
