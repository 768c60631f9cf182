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

	"github.com/merchstore/merch-store/gateway/internal/clients"
	"github.com/merchstore/merch-store/gateway/internal/config"
	"github.com/merchstore/merch-store/gateway/internal/httpserver"
	"github.com/merchstore/merch-store/pkg/logging"
	loggingmw "github.com/merchstore/merch-store/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load("gateway/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "api_service")
	slog.SetDefault(logger)

	gw := &httpserver.GatewayHTTP{
		DB:        clients.NewDBClient(cfg.DBServiceURL),
		Log:       clients.NewLogClient(cfg.LogServiceURL, "api_service"),
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
	}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{Gateway: gw, JWTSecret: cfg.JWTSecret})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("gateway listening on %s", srv.Addr)
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

	log.Println("gateway stopped")
}
