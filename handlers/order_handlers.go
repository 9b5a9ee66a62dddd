package handlers

import (
	"log"

	"deliveryhub/database"
	"deliveryhub/models"
	"deliveryhub/storage"
	"deliveryhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HandleCreateOrder places a new delivery order for the authenticated customer.
// POST /api/v1/orders
func HandleCreateOrder(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.PickupAddress == "" || req.DeliveryAddress == "" || req.PackageType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (pickup_address, delivery_address, package_type)"})
	}
	if req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Price cannot be negative"})
	}

	urgency := req.Urgency
	if urgency == "" {
		urgency = models.UrgencyStandard
	}
	if urgency != models.UrgencyStandard && urgency != models.UrgencyExpress {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Urgency must be 'standard' or 'express'"})
	}

	order := models.Order{
		ID:              uuid.NewString(),
		CustomerID:      userID,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		PackageType:     req.PackageType,
		Price:           req.Price,
		Urgency:         urgency,
		Status:          "pending",
	}

	store := storage.NewOrderStore(database.GetDB())
	if err := store.Create(c.Context(), &order); err != nil {
		log.Printf("Error creating order for customer %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": order})
}

// HandleListMyOrders lists the authenticated customer's orders, newest first,
// paginated.
// GET /api/v1/orders?page=&pageSize=
func HandleListMyOrders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Not authenticated"})
	}

	page := c.QueryInt("page", 1)
	if page <= 0 {
		page = 1
	}
	pageSize := c.QueryInt("pageSize", 10)
	if pageSize <= 0 {
		pageSize = 10
	}

	db := database.GetDB()
	ctx := c.Context()

	var total int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE customer_id = $1", userID).Scan(&total); err != nil {
		log.Printf("Error counting orders for customer %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve orders"})
	}

	query := `
        SELECT id, customer_id, driver_id, pickup_address, delivery_address,
               package_type, price, urgency, status, created_at, updated_at
        FROM orders
        WHERE customer_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `
	offset := (page - 1) * pageSize
	rows, err := db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		log.Printf("Error querying orders for customer %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve orders"})
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerID, &order.DriverID, &order.PickupAddress, &order.DeliveryAddress,
			&order.PackageType, &order.Price, &order.Urgency, &order.Status, &order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning order row: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Error processing order data"})
		}
		orders = append(orders, order)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       fiber.Map{"orders": orders},
		"pagination": utils.CreatePagination(total, page, pageSize),
	})
}
