// cmd/cart-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("cart", app.ModuleCart)
	if err != nil {
		log.Fatalf("Failed to start cart service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Cart service error: %v", err)
	}
}
