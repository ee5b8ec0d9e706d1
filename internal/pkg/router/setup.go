package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tuser579/CityFix/internal/pkg/fbauth"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// InstallRouter registers all application routes.
func InstallRouter(app *fiber.App, verifier fbauth.TokenVerifier) {
	setup(app, NewHttpRouter(verifier))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
