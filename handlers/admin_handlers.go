package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"deliveryhub/database"
	"deliveryhub/models"
	"deliveryhub/storage"
	"deliveryhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// defaultCommissionRate applies until an admin sets one.
const defaultCommissionRate = 10.0

// HandleGetAdminDashboardSummary fetches platform-wide figures for the admin
// dashboard.
// GET /api/v1/admin/dashboard/summary
func HandleGetAdminDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := c.Context()

	var summary models.AdminDashboardSummary

	err := db.QueryRow(ctx, `
        SELECT COUNT(*), COALESCE(SUM(price) FILTER (WHERE status = 'delivered'), 0)
        FROM orders
    `).Scan(&summary.TotalOrders, &summary.TotalRevenue)
	if err != nil {
		log.Printf("Error fetching order totals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}

	err = db.QueryRow(ctx, `
        SELECT COUNT(*) FILTER (WHERE status = 'approved'),
               COUNT(*) FILTER (WHERE status = 'pending')
        FROM drivers
    `).Scan(&summary.ActiveDrivers, &summary.PendingDrivers)
	if err != nil {
		log.Printf("Error fetching driver counts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}

	rate, err := fetchCommissionRate(ctx)
	if err != nil {
		log.Printf("Error fetching commission rate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard"})
	}
	summary.CommissionEarned = summary.TotalRevenue * rate / 100

	return c.JSON(fiber.Map{"status": "success", "data": summary})
}

// HandleListDrivers lists all drivers, with an optional status filter.
// GET /api/v1/admin/drivers?status=
func HandleListDrivers(c *fiber.Ctx) error {
	statusFilter := strings.ToLower(c.Query("status"))
	if statusFilter != "" && !utils.IsValidDriverStatus(statusFilter) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid driver status filter"})
	}

	store := storage.NewDriverStore(database.GetDB())
	drivers, err := store.GetDrivers(c.Context())
	if err != nil {
		log.Printf("Error querying drivers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve drivers"})
	}

	if statusFilter != "" {
		filtered := drivers[:0]
		for _, driver := range drivers {
			if driver.Status == statusFilter {
				filtered = append(filtered, driver)
			}
		}
		drivers = filtered
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"drivers": drivers}})
}

// HandleSetDriverStatus approves or rejects a driver application. Only
// approved drivers are eligible for the engine's driver matching.
// PUT /api/v1/admin/drivers/:driverId/status
func HandleSetDriverStatus(c *fiber.Ctx) error {
	driverID := c.Params("driverId")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	status := strings.ToLower(req.Status)
	if !utils.IsValidDriverStatus(status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Status must be 'pending', 'approved', or 'rejected'"})
	}

	var driver models.Driver
	query := `
        UPDATE drivers
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, user_id, full_name, phone, vehicle_type, license_number,
                  status, rating, created_at, updated_at
    `
	err := database.GetDB().QueryRow(c.Context(), query, status, driverID).Scan(
		&driver.ID, &driver.UserID, &driver.FullName, &driver.Phone, &driver.VehicleType,
		&driver.LicenseNumber, &driver.Status, &driver.Rating, &driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Driver not found"})
		}
		log.Printf("Error updating status for driver %s: %v", driverID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update driver status"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": driver})
}

// HandleGetCommission returns the current platform commission settings.
// GET /api/v1/admin/settings/commission
func HandleGetCommission(c *fiber.Ctx) error {
	var settings models.CommissionSettings
	query := `SELECT rate_percent, updated_at FROM commission_settings ORDER BY updated_at DESC LIMIT 1`
	err := database.GetDB().QueryRow(c.Context(), query).Scan(&settings.RatePercent, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			settings.RatePercent = defaultCommissionRate
			return c.JSON(fiber.Map{"status": "success", "data": settings})
		}
		log.Printf("Error fetching commission settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch commission settings"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": settings})
}

// HandleUpdateCommission sets a new platform commission rate.
// PUT /api/v1/admin/settings/commission
func HandleUpdateCommission(c *fiber.Ctx) error {
	var req models.UpdateCommissionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.RatePercent < 0 || req.RatePercent > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Rate must be between 0 and 100"})
	}

	var settings models.CommissionSettings
	query := `
        INSERT INTO commission_settings (rate_percent, updated_at)
        VALUES ($1, NOW())
        RETURNING rate_percent, updated_at
    `
	err := database.GetDB().QueryRow(c.Context(), query, req.RatePercent).Scan(&settings.RatePercent, &settings.UpdatedAt)
	if err != nil {
		log.Printf("Error updating commission rate: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update commission rate"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": settings})
}

// fetchCommissionRate returns the latest commission rate, falling back to the
// default when none has been configured yet.
func fetchCommissionRate(ctx context.Context) (float64, error) {
	var rate float64
	query := `SELECT rate_percent FROM commission_settings ORDER BY updated_at DESC LIMIT 1`
	err := database.GetDB().QueryRow(ctx, query).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultCommissionRate, nil
		}
		return 0, err
	}
	return rate, nil
}
