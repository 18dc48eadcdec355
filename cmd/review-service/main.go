// cmd/review-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("review", app.ModuleReview)
	if err != nil {
		log.Fatalf("Failed to start review service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Review service error: %v", err)
	}
}
