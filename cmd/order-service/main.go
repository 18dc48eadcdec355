// cmd/order-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("order", app.ModuleOrder)
	if err != nil {
		log.Fatalf("Failed to start order service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Order service error: %v", err)
	}
}
