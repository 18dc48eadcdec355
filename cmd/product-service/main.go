// cmd/product-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("product", app.ModuleProduct)
	if err != nil {
		log.Fatalf("Failed to start product service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Product service error: %v", err)
	}
}
