// cmd/inventory-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("inventory", app.ModuleInventory)
	if err != nil {
		log.Fatalf("Failed to start inventory service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Inventory service error: %v", err)
	}
}
