package main

import (
	"log"

	"github.com/muralboard/mural/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ mural failed to start: %v", err)
	}
}
