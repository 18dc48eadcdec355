// cmd/user-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("user", app.ModuleUser)
	if err != nil {
		log.Fatalf("Failed to start user service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("User service error: %v", err)
	}
}
