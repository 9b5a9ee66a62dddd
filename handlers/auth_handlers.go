package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"deliveryhub/config"
	"deliveryhub/database"
	"deliveryhub/models"
	"deliveryhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// HandleRegister creates a new customer account.
// POST /api/v1/auth/register
func HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password)"})
	}

	user, err := createUser(c.Context(), req.Name, req.Email, req.Password, "customer", req.Phone)
	if err != nil {
		log.Printf("Error creating customer account for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create account"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": user})
}

// HandleDriverRegister creates a driver account plus a driver profile in
// "pending" status. The driver cannot be matched until an admin approves them.
// POST /api/v1/auth/driver-register
func HandleDriverRegister(c *fiber.Ctx) error {
	var req models.DriverRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Missing required fields (name, email, password)"})
	}

	ctx := c.Context()
	user, err := createUser(ctx, req.Name, req.Email, req.Password, "driver", req.Phone)
	if err != nil {
		log.Printf("Error creating driver account for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create account"})
	}

	var driver models.Driver
	query := `
        INSERT INTO drivers (id, user_id, full_name, phone, vehicle_type, license_number, status)
        VALUES ($1, $2, $3, $4, $5, $6, 'pending')
        RETURNING id, user_id, full_name, phone, vehicle_type, license_number, status, rating, created_at, updated_at
    `
	err = database.GetDB().QueryRow(ctx, query, uuid.NewString(), user.ID, req.Name, req.Phone, req.VehicleType, req.LicenseNumber).Scan(
		&driver.ID, &driver.UserID, &driver.FullName, &driver.Phone, &driver.VehicleType,
		&driver.LicenseNumber, &driver.Status, &driver.Rating, &driver.CreatedAt, &driver.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating driver profile for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not create driver profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user, "driver": driver}})
}

// HandleLogin authenticates a user and returns a JWT token.
// POST /api/v1/auth/login
func HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	var user models.User
	var passwordHash string

	query := `
		SELECT id, name, email, password_hash, role, is_active, phone, created_at, updated_at
		FROM users
		WHERE email = $1`

	err := database.GetDB().QueryRow(c.Context(), query, req.Email).Scan(
		&user.ID, &user.Name, &user.Email, &passwordHash, &user.Role, &user.IsActive,
		&user.Phone, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
		}
		log.Printf("Database error during login for email %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "User account is inactive"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	token, err := createJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error creating JWT for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not sign token"})
	}

	return c.JSON(fiber.Map{"accessToken": token, "user": user})
}

// --- Helper Functions ---

func createUser(ctx context.Context, name, email, password, role string, phone *string) (*models.User, error) {
	if _, ok := utils.ValidateAndNormalizeRole(role); !ok {
		return nil, errors.New("invalid role")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO users (id, name, email, password_hash, role, phone)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, name, email, role, is_active, phone, created_at, updated_at
    `

	var user models.User
	err = database.GetDB().QueryRow(ctx, query, uuid.NewString(), name, email, string(hashedPassword), role, phone).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.IsActive,
		&user.Phone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func createJWT(userID, role string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}
