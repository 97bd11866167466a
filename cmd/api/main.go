package main

import (
	"context"
	"flag"
	"log"

	"github.com/rigpark/escrow-service/internal/app/bootstrap"
)

func main() {
	configPath := flag.String("config", "configs/default.yaml", "path to configuration file")
	flag.Parse()

	r, err := bootstrap.NewRuntime(context.Background(), *configPath)
	if err != nil {
		log.Fatalf("bootstrap runtime: %v", err)
	}
	if err := r.RunAPI(context.Background()); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
