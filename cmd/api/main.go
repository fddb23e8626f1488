package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/electromaison/storefront-api/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Persisted cart documents carry totals as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg := app.LoadConfig()

	srv, cleanup, err := app.NewServer(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer cleanup()

	log.Printf("listening on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
