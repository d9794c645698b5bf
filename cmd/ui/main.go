package main

import (
	"log"

	"github.com/joho/godotenv"

	"streamdash/app"
	"streamdash/internal"
	"streamdash/internal/config"
	"streamdash/ui"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	service := app.NewDashboardService(cfg.Paths.DataBasePath, cfg.Cache.TTL, internal.DefaultLogger)
	webApp, err := ui.NewApp(cfg, service)
	if err != nil {
		log.Fatal("Failed to create dashboard app: ", err)
	}

	log.Printf("Starting study dashboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(webApp.Start())
}
