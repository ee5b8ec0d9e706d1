package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/tuser579/CityFix/app/controllers"
	"github.com/tuser579/CityFix/internal/pkg/fbauth"
	"github.com/tuser579/CityFix/internal/pkg/middleware"
)

type HttpRouter struct {
	verifier fbauth.TokenVerifier
}

func NewHttpRouter(verifier fbauth.TokenVerifier) *HttpRouter {
	return &HttpRouter{verifier: verifier}
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("CityFix - Public Infrastructure Issue Reporting System")
	})

	// reviews
	app.Post("/givenReview", controllers.HandleCreateReview)
	app.Get("/getReview", controllers.HandleGetReviews)

	// citizen users
	app.Post("/citizensUser", controllers.HandleCreateCitizen)
	app.Get("/singleUser", controllers.HandleSingleCitizen)
	app.Patch("/userPhotoUpdate/:id", controllers.HandleUpdateCitizenPhoto)
	app.Patch("/updateUser/:id", controllers.HandleUpdateCitizen)

	// issues
	app.Get("/allIssues", controllers.HandleAllIssues)
	app.Get("/myIssues", controllers.HandleMyIssues)
	app.Get("/sixResolvedIssue", controllers.HandleRecentResolvedIssues)
	app.Post("/reportIssue", controllers.HandleReportIssue)
	app.Patch("/myIssueUpdate/:id", controllers.HandleUpdateIssue)
	app.Patch("/upvoteIssue/:id", controllers.HandleUpvoteIssue)
	app.Delete("/myIssueDelete/:id", controllers.HandleDeleteIssue)
	app.Get("/issueDetails/:id", controllers.HandleIssueDetails)

	// payments. The reconciliation endpoint sits behind a rate limiter since
	// it triggers provider round-trips.
	pay := app.Group("/", limiter.New(limiter.Config{Max: 60}))
	pay.Post("/create-checkout-session", controllers.HandleCreateCheckoutSession)
	pay.Patch("/payment-success", controllers.HandlePaymentSuccess)

	requireAuth := middleware.RequireAuth(h.verifier)
	app.Get("/myPayments", requireAuth, controllers.HandleMyPayments)
	app.Delete("/myPaymentDelete/:id", requireAuth, controllers.HandleDeletePayment)
}
