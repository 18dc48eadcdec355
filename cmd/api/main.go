// cmd/api/main.go
package main

import (
	"log"
	"os"

	"github.com/stephenombuya/Velixa/internal/app"
)

// Runs every service in one process. VELIXA_MODULES narrows the set, e.g. "order,payment".
func main() {
	modules, err := app.ParseModules(os.Getenv("VELIXA_MODULES"))
	if err != nil {
		log.Fatalf("Invalid VELIXA_MODULES: %v", err)
	}

	a, err := app.New("api", modules...)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
