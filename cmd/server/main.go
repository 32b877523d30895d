package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"blogrank-go/internal/config"
	"blogrank-go/internal/handler"
	"blogrank-go/internal/service"
	"blogrank-go/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Configuration file path")
	flag.Parse()

	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.NewManager().Load(configPath)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	logger.SetLogger(log)

	svc, err := service.New(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	app := fiber.New(fiber.Config{
		AppName:               "blogrank-go",
		DisableStartupMessage: true,
	})
	handler.NewController(svc, svc, cfg.Analyzer.RecentCount).Register(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("HTTP server starting")
		errCh <- app.Listen(addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutting down")
		return app.Shutdown()
	}
}
