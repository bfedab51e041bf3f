package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/make-ten/internal/app"
	"github.com/gokatarajesh/make-ten/internal/config"
)

const defaultEnvFile = "configs/.env"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if os.Getenv("APP_ENV") != "production" {
		envFile := os.Getenv("ENV_FILE")
		if envFile == "" {
			envFile = defaultEnvFile
		}
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: could not load %s: %v", envFile, err)
		}
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg, err := config.Load(loadCtx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appCtx := context.Background()
	instance, err := app.New(appCtx, cfg)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}

	if err := instance.Run(appCtx); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
