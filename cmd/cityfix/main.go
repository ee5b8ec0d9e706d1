package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tuser579/CityFix/app/repository"
	"github.com/tuser579/CityFix/internal/pkg/cache"
	"github.com/tuser579/CityFix/internal/pkg/database"
	"github.com/tuser579/CityFix/internal/pkg/env"
	"github.com/tuser579/CityFix/internal/pkg/fbauth"
	"github.com/tuser579/CityFix/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "3999")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()
	repository.InitializeFactory(database.GetDB())

	verifier, err := fbauth.NewVerifierFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize token verifier: %v", err)
	}

	app := fiber.New()
	app.Use(recover.New(), logger.New())

	router.InstallRouter(app, verifier)

	return app
}
