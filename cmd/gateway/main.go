// cmd/gateway/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.NewGateway()
	if err != nil {
		log.Fatalf("Failed to start gateway: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Gateway error: %v", err)
	}
}
