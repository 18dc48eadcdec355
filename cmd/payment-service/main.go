// cmd/payment-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("payment", app.ModulePayment)
	if err != nil {
		log.Fatalf("Failed to start payment service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Payment service error: %v", err)
	}
}
