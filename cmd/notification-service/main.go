// cmd/notification-service/main.go
package main

import (
	"log"

	"github.com/stephenombuya/Velixa/internal/app"
)

func main() {
	a, err := app.New("notification", app.ModuleNotification)
	if err != nil {
		log.Fatalf("Failed to start notification service: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Notification service error: %v", err)
	}
}
