package main

import (
	"log"

	"github.com/joho/godotenv"

	"sheetlens/internal/config"
	"sheetlens/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	app, err := ui.NewApp(cfg)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting Sheetlens UI on http://localhost:%s", cfg.Server.Port)
	log.Fatal(app.Start())
}
