package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"deliveryhub/config"
	"deliveryhub/database"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AssistantRequest defines the body for the delivery assistant.
type AssistantRequest struct {
	Prompt string `json:"prompt"`
}

// TopRoute is a frequently used pickup/delivery pair with its order count.
type TopRoute struct {
	PickupAddress   string `json:"pickup_address"`
	DeliveryAddress string `json:"delivery_address"`
	TotalOrders     int    `json:"total_orders"`
}

// MonthlySpend is a customer's delivery spend for one month.
type MonthlySpend struct {
	Month      string  `json:"month"`
	TotalSpent float64 `json:"total_spent"`
}

// PeakHour is an hour of day ranked by how many orders were placed in it.
type PeakHour struct {
	Hour        int `json:"hour"`
	TotalOrders int `json:"total_orders"`
}

// HandleAssistant answers natural-language questions about the authenticated
// customer's own delivery history. This is a convenience surface on top of
// the deterministic recommendation engine, not part of it.
// POST /api/v1/assistant
func HandleAssistant(c *fiber.Ctx) error {
	var req AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request"})
	}

	userID, ok := c.Locals("userID").(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Not authenticated"})
	}

	// 1. Classify the user's intent
	intent, err := classifyIntent(req.Prompt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	// 2. Fetch data based on the intent
	data, err := fetchDataForIntent(intent, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	// 3. Generate a human-readable analysis
	analysis, err := generateAnalysis(req.Prompt, intent, data)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "analysis": analysis})
}

// classifyIntent uses Gemini to determine the user's intent.
func classifyIntent(prompt string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro")
	classificationPrompt := fmt.Sprintf(
		`You are an intent classification system. Classify the user's prompt into one of the following categories: 'top_routes', 'monthly_spend', 'peak_hours', or 'unknown'. The user prompt is: "%s"`,
		prompt,
	)

	resp, err := model.GenerateContent(ctx, genai.Text(classificationPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to classify intent: %w", err)
	}

	intent := strings.TrimSpace(fmt.Sprint(resp.Candidates[0].Content.Parts[0]))
	if intent == "top_routes" || intent == "monthly_spend" || intent == "peak_hours" {
		return intent, nil
	}
	return "unknown", nil
}

// fetchDataForIntent queries the database based on the classified intent.
func fetchDataForIntent(intent, userID string) (interface{}, error) {
	db := database.GetDB()
	ctx := context.Background()

	switch intent {
	case "top_routes":
		query := `
            SELECT pickup_address, delivery_address, COUNT(*) as total_orders
            FROM orders
            WHERE customer_id = $1
            GROUP BY pickup_address, delivery_address
            ORDER BY total_orders DESC
            LIMIT 10
        `
		rows, err := db.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to query top routes: %w", err)
		}
		defer rows.Close()

		var routes []TopRoute
		for rows.Next() {
			var route TopRoute
			if err := rows.Scan(&route.PickupAddress, &route.DeliveryAddress, &route.TotalOrders); err != nil {
				continue
			}
			routes = append(routes, route)
		}
		return routes, nil

	case "monthly_spend":
		query := `
            SELECT TO_CHAR(created_at, 'YYYY-MM') as month, SUM(price) as total_spent
            FROM orders
            WHERE customer_id = $1
            GROUP BY month
            ORDER BY month DESC
            LIMIT 12
        `
		rows, err := db.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to query monthly spend: %w", err)
		}
		defer rows.Close()

		var spend []MonthlySpend
		for rows.Next() {
			var month MonthlySpend
			if err := rows.Scan(&month.Month, &month.TotalSpent); err != nil {
				continue
			}
			spend = append(spend, month)
		}
		return spend, nil

	case "peak_hours":
		query := `
            SELECT EXTRACT(HOUR FROM created_at) as hour, COUNT(*) as total_orders
            FROM orders
            WHERE customer_id = $1
            GROUP BY hour
            ORDER BY total_orders DESC
        `
		rows, err := db.Query(ctx, query, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to query peak hours: %w", err)
		}
		defer rows.Close()

		var peakHours []PeakHour
		for rows.Next() {
			var hour PeakHour
			if err := rows.Scan(&hour.Hour, &hour.TotalOrders); err != nil {
				continue
			}
			peakHours = append(peakHours, hour)
		}
		return peakHours, nil
	}

	return nil, nil // No data for 'unknown' intent
}

// generateAnalysis uses Gemini to create a human-readable analysis.
func generateAnalysis(originalPrompt, intent string, data interface{}) (string, error) {
	if intent == "unknown" {
		return "Sorry, I can't answer that question yet. Try asking about 'top routes', 'monthly spend', or 'peak hours'.", nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro")

	jsonData, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to serialize data: %w", err)
	}

	analysisPrompt := fmt.Sprintf(
		`You are a helpful AI assistant for a package delivery service. The user asked: "%s". The intent of the query was determined to be '%s'. Based on the following data about their own delivery history, provide a concise and helpful analysis:

		Data: %s`,
		originalPrompt,
		intent,
		string(jsonData),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(analysisPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	return fmt.Sprint(resp.Candidates[0].Content.Parts[0]), nil
}
