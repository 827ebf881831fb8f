package main

import (
	"log"
	"os"

	// SDK
	"github.com/flash-go/sdk/config"
	"github.com/flash-go/sdk/state"

	// Other
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// Get service name
	name := os.Getenv("SERVICE_NAME")
	if name == "" {
		log.Fatal("invalid service name")
	}

	// Create state service
	stateService := state.NewWithoutAuth(os.Getenv("CONSUL_AGENT"))

	// Create config
	cfg := config.New(
		stateService,
		name,
	)

	// Set KV from env map
	cfg.SetEnvMap(envMap)
}
