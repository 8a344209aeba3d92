package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/andrnaufal/perpustakaan/pkg/db"
	"github.com/andrnaufal/perpustakaan/pkg/events"
	"github.com/andrnaufal/perpustakaan/pkg/logging"
	loggingmw "github.com/andrnaufal/perpustakaan/pkg/middleware/logging"
	"github.com/andrnaufal/perpustakaan/services/library/internal/config"
	"github.com/andrnaufal/perpustakaan/services/library/internal/httpserver"
	"github.com/andrnaufal/perpustakaan/services/library/internal/repo"
	"github.com/andrnaufal/perpustakaan/services/library/internal/service"
)

func main() {
	if err := godotenv.Load("services/library/.env"); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cfg := config.Load()
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(loggingmw.RequestLogger(logger))

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	libraryHTTP := &httpserver.LibraryHTTP{
		Svc: &service.LibraryService{
			Repo:     &repo.GormRepo{DB: database},
			Producer: producer,
		},
		DB: database,
	}

	httpserver.Register(e, &httpserver.Deps{
		LibraryHandler: libraryHTTP,
		JWTSecret:      cfg.JWTSecret,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("echo shutdown: %v", err)
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}
	if err := db.Close(database); err != nil {
		log.Printf("db close: %v", err)
	}
}
