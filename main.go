package main

import (
	"log"

	"pocketbank/bank"
	"pocketbank/config"
	"pocketbank/router"
	"pocketbank/store"
)

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}

	app := &router.App{
		Store:     st,
		Transfers: bank.NewService(st),
		Cfg:       cfg,
	}

	r := router.NewRouter(app)
	log.Printf("pocketbank API listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting server:", err)
	}
}
