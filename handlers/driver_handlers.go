package handlers

import (
	"errors"
	"log"

	"deliveryhub/database"
	"deliveryhub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// HandleGetDriverProfile returns the authenticated driver's profile,
// including their approval status.
// GET /api/v1/driver/profile
func HandleGetDriverProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	var driver models.Driver
	query := `
        SELECT id, user_id, full_name, phone, vehicle_type, license_number,
               status, rating, created_at, updated_at
        FROM drivers
        WHERE user_id = $1
    `
	err := database.GetDB().QueryRow(c.Context(), query, userID).Scan(
		&driver.ID, &driver.UserID, &driver.FullName, &driver.Phone, &driver.VehicleType,
		&driver.LicenseNumber, &driver.Status, &driver.Rating, &driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Driver profile not found"})
		}
		log.Printf("Error fetching driver profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch driver profile"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": driver})
}

// HandleGetDriverDashboardSummary fetches summary data for the driver dashboard:
// how many deliveries they have, and earnings after platform commission.
// GET /api/v1/driver/dashboard/summary
func HandleGetDriverDashboardSummary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	db := database.GetDB()
	ctx := c.Context()

	var driverID string
	err := db.QueryRow(ctx, "SELECT id FROM drivers WHERE user_id = $1", userID).Scan(&driverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Driver profile not found"})
		}
		log.Printf("Error resolving driver for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}

	var summary models.DriverDashboardSummary

	query := `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'delivered'),
               COALESCE(SUM(price) FILTER (WHERE status = 'delivered'), 0)
        FROM orders
        WHERE driver_id = $1
    `
	err = db.QueryRow(ctx, query, driverID).Scan(
		&summary.AssignedOrders, &summary.CompletedOrders, &summary.GrossEarnings,
	)
	if err != nil {
		log.Printf("Error fetching driver dashboard for driver %s: %v", driverID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}

	rate, err := fetchCommissionRate(ctx)
	if err != nil {
		log.Printf("Error fetching commission rate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}

	summary.CommissionRate = rate
	summary.NetEarnings = summary.GrossEarnings * (1 - rate/100)

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}
