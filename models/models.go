package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest defines the body for creating a customer account.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

// DriverRegisterRequest defines the body for a driver application.
// New drivers start with status "pending" until an admin approves them.
type DriverRegisterRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Phone         *string `json:"phone,omitempty"`
	VehicleType   *string `json:"vehicle_type,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
}

// --- Core Models ---

// User represents an account in the system (admin, customer, or driver).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Driver represents a delivery driver profile attached to a user account.
// Status is one of "pending", "approved", "rejected".
type Driver struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone,omitempty"`
	VehicleType   *string   `json:"vehicle_type,omitempty"`
	LicenseNumber *string   `json:"license_number,omitempty"`
	Status        string    `json:"status"`
	Rating        *float64  `json:"rating,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Order represents a delivery order placed by a customer.
// Urgency is "standard" or "express".
type Order struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	DriverID        *string   `json:"driver_id,omitempty"`
	PickupAddress   string    `json:"pickup_address"`
	DeliveryAddress string    `json:"delivery_address"`
	PackageType     string    `json:"package_type"`
	Price           float64   `json:"price"`
	Urgency         string    `json:"urgency"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateOrderRequest defines the body for placing a new order.
type CreateOrderRequest struct {
	PickupAddress   string  `json:"pickup_address"`
	DeliveryAddress string  `json:"delivery_address"`
	PackageType     string  `json:"package_type"`
	Price           float64 `json:"price"`
	Urgency         string  `json:"urgency"`
}

// CommissionSettings holds the platform commission taken on each delivery.
type CommissionSettings struct {
	RatePercent float64   `json:"rate_percent"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateCommissionRequest defines the body for changing the commission rate.
type UpdateCommissionRequest struct {
	RatePercent float64 `json:"rate_percent"`
}

// --- Dashboard Summaries ---

// AdminDashboardSummary aggregates platform-wide figures for the admin dashboard.
type AdminDashboardSummary struct {
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	CommissionEarned float64 `json:"commission_earned"`
	ActiveDrivers    int     `json:"active_drivers"`
	PendingDrivers   int     `json:"pending_drivers"`
}

// DriverDashboardSummary aggregates a driver's own figures.
type DriverDashboardSummary struct {
	AssignedOrders  int     `json:"assigned_orders"`
	CompletedOrders int     `json:"completed_orders"`
	GrossEarnings   float64 `json:"gross_earnings"`
	NetEarnings     float64 `json:"net_earnings"`
	CommissionRate  float64 `json:"commission_rate"`
}
