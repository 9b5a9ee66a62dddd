// Package storage holds the pgx-backed stores the recommendation engine and
// handlers read from. The stores satisfy the engine's OrderSource and
// DriverSource interfaces.
package storage

import (
	"context"
	"time"

	"deliveryhub/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderStore reads and writes delivery orders.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// GetOrdersByCustomer returns every order a customer has placed, oldest first
// so pattern extraction sees them in creation order.
func (s *OrderStore) GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	query := `
        SELECT id, customer_id, driver_id, pickup_address, delivery_address,
               package_type, price, urgency, status, created_at, updated_at
        FROM orders
        WHERE customer_id = $1
        ORDER BY created_at ASC
    `

	rows, err := s.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.DriverID,
			&order.PickupAddress,
			&order.DeliveryAddress,
			&order.PackageType,
			&order.Price,
			&order.Urgency,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

// Create inserts a new order and returns it with generated fields filled in.
func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	query := `
        INSERT INTO orders (id, customer_id, pickup_address, delivery_address,
                            package_type, price, urgency, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at
    `

	return s.pool.QueryRow(ctx, query,
		order.ID,
		order.CustomerID,
		order.PickupAddress,
		order.DeliveryAddress,
		order.PackageType,
		order.Price,
		order.Urgency,
		order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

// DriverStore reads the driver pool.
type DriverStore struct {
	pool *pgxpool.Pool
}

func NewDriverStore(pool *pgxpool.Pool) *DriverStore {
	return &DriverStore{pool: pool}
}

// GetDrivers returns the full driver pool, newest applications last.
func (s *DriverStore) GetDrivers(ctx context.Context) ([]models.Driver, error) {
	query := `
        SELECT id, user_id, full_name, phone, vehicle_type, license_number,
               status, rating, created_at, updated_at
        FROM drivers
        ORDER BY created_at ASC
    `

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drivers []models.Driver
	for rows.Next() {
		var driver models.Driver
		if err := rows.Scan(
			&driver.ID,
			&driver.UserID,
			&driver.FullName,
			&driver.Phone,
			&driver.VehicleType,
			&driver.LicenseNumber,
			&driver.Status,
			&driver.Rating,
			&driver.CreatedAt,
			&driver.UpdatedAt,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

// FeedbackStore records accept/dismiss decisions on recommendations. The
// engine itself stays stateless; these rows exist for future tuning work.
type FeedbackStore struct {
	pool *pgxpool.Pool
}

func NewFeedbackStore(pool *pgxpool.Pool) *FeedbackStore {
	return &FeedbackStore{pool: pool}
}

// RecordDecision inserts one acceptance/dismissal event.
func (s *FeedbackStore) RecordDecision(ctx context.Context, userID, recommendationID string, accepted bool) error {
	query := `
        INSERT INTO recommendation_events (user_id, recommendation_id, accepted, decided_at)
        VALUES ($1, $2, $3, $4)
    `
	_, err := s.pool.Exec(ctx, query, userID, recommendationID, accepted, time.Now())
	return err
}
