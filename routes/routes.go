package routes

import (
	"deliveryhub/handlers"
	"deliveryhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/driver-register", handlers.HandleDriverRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Customer Routes ---
	// These live at the top of /api/v1, so the auth middleware goes on each
	// route rather than on a catch-all group that would swallow /driver and
	// /admin too.
	orders := api.Group("/orders", middleware.JWTMiddleware, middleware.CustomerRequired)
	orders.Post("/", handlers.HandleCreateOrder)
	orders.Get("/", handlers.HandleListMyOrders)

	recommendations := api.Group("/recommendations", middleware.JWTMiddleware, middleware.CustomerRequired)
	recommendations.Get("/", handlers.HandleGetRecommendations)
	recommendations.Post("/generate", handlers.HandleGenerateRecommendations)
	recommendations.Post("/:recommendationId/accept", handlers.HandleAcceptRecommendation)
	recommendations.Post("/:recommendationId/dismiss", handlers.HandleDismissRecommendation)

	api.Post("/assistant", middleware.JWTMiddleware, middleware.CustomerRequired, handlers.HandleAssistant)

	// --- Driver Routes ---
	driver := api.Group("/driver", middleware.JWTMiddleware, middleware.DriverRequired)
	driver.Get("/profile", handlers.HandleGetDriverProfile)
	driver.Get("/dashboard/summary", handlers.HandleGetDriverDashboardSummary)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)
	admin.Get("/dashboard/summary", handlers.HandleGetAdminDashboardSummary)
	admin.Get("/drivers", handlers.HandleListDrivers)
	admin.Put("/drivers/:driverId/status", handlers.HandleSetDriverStatus)
	admin.Get("/settings/commission", handlers.HandleGetCommission)
	admin.Put("/settings/commission", handlers.HandleUpdateCommission)
}
