package main

import (
	"log"

	"formforge/internal/app"
	"formforge/internal/core"
)

func main() {
	cfg, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}

	if err = application.Run(); err != nil {
		log.Fatalf("app run: %v", err)
	}
}
