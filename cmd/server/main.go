package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
	"github.com/benbeisheim/scalechess-backend/internal/config"
	"github.com/benbeisheim/scalechess-backend/internal/controller"
	"github.com/benbeisheim/scalechess-backend/internal/middleware"
	"github.com/benbeisheim/scalechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if cfg.LogFormat == "json" {
		log.SetHandler(json.New(os.Stderr))
	} else {
		log.SetHandler(text.New(os.Stderr))
	}
	log.SetLevel(cfg.LogLevel)

	app := fiber.New(fiber.Config{
		AppName:               "scalechess",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(middleware.RequestLogger())

	// Initialize services
	gameManager := service.NewGameManager(cfg.GameTTL)
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go gameManager.Run(ctx, cfg.SweepInterval)
	go func() {
		<-ctx.Done()
		log.Info("received shutdown signal")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("HTTP server shutdown")
		}
	}()

	log.WithField("addr", cfg.Addr).Info("HTTP listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("HTTP server end")
	}
}
