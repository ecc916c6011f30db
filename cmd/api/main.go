package main

import (
	"log"

	"github.com/joho/godotenv"

	"sheetlens/internal/api"
	"sheetlens/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	server := api.NewServer(cfg)
	log.Fatal(server.Start())
}
