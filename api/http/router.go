package http

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-server/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	authH *handlers.AuthHandler,
	healthH *handlers.HealthHandler,
	portfolioH *handlers.PortfolioHandler,
	contentH *handlers.ContentHandler,
	chatH *handlers.ChatHandler,
	blogH *handlers.BlogHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", healthH.Health)
	v1.Get("/ready", healthH.Ready)

	a := v1.Group("/auth")
	a.Post("/login", authH.Login)
	a.Get("/me", authMW, authH.Me)

	// Public read side
	v1.Get("/portfolio", portfolioH.GetAll)
	v1.Get("/portfolio/:category", portfolioH.GetCategory)
	v1.Get("/blog/search", blogH.Search)

	// Admin panel (JWT)
	admin := v1.Group("/admin", authMW)
	admin.Put("/content/personalDetails", contentH.SetPersonalDetails)
	admin.Post("/content/:category/items", contentH.AddItem)
	admin.Put("/content/:category/items/:id", contentH.UpdateItem)
	admin.Delete("/content/:category/items/:id", contentH.RemoveItem)

	// Chat widget
	ch := v1.Group("/chat")
	ch.Post("/", chatH.Open)
	ch.Get("/:id", chatH.State)
	ch.Delete("/:id", chatH.Close)
	ch.Post("/:id/messages", chatH.SendMessage)
	ch.Post("/:id/meeting", chatH.SubmitMeeting)
}
