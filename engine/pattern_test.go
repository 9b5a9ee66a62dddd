package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"deliveryhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	orders []models.Order
	err    error
}

func (s *stubOrders) GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error) {
	return s.orders, s.err
}

type stubDrivers struct {
	drivers []models.Driver
	err     error
}

func (s *stubDrivers) GetDrivers(ctx context.Context) ([]models.Driver, error) {
	return s.drivers, s.err
}

// makeOrder builds a historical order created at the given hour of day.
func makeOrder(hour int, pickup, delivery, packageType string, price float64, urgency string) models.Order {
	return models.Order{
		ID:              fmt.Sprintf("order-%d-%s", hour, pickup),
		CustomerID:      "user-1",
		PickupAddress:   pickup,
		DeliveryAddress: delivery,
		PackageType:     packageType,
		Price:           price,
		Urgency:         urgency,
		Status:          "delivered",
		CreatedAt:       time.Date(2024, time.March, 4, hour, 30, 0, 0, time.UTC),
	}
}

func TestTimeSlotForHour(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, models.SlotNight},
		{5, models.SlotNight},
		{6, models.SlotMorning},
		{11, models.SlotMorning},
		{12, models.SlotAfternoon},
		{16, models.SlotAfternoon},
		{17, models.SlotEvening},
		{20, models.SlotEvening},
		{21, models.SlotNight},
		{23, models.SlotNight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeSlotForHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestAnalyzeUserPatterns_NoOrders_ReturnsDefaultPattern(t *testing.T) {
	e := New(&stubOrders{}, &stubDrivers{})

	pattern, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", pattern.UserID)
	assert.Equal(t, []string{models.SlotAfternoon}, pattern.PreferredTimes)
	assert.Empty(t, pattern.FrequentLocations.Pickup)
	assert.Empty(t, pattern.FrequentLocations.Delivery)
	assert.Empty(t, pattern.PackageTypePreferences)
	assert.Equal(t, float64(2000), pattern.AverageOrderValue)
	assert.Equal(t, 0, pattern.DeliveryFrequency)
	assert.Equal(t, models.UrgencyStandard, pattern.UrgencyPattern)
	assert.Equal(t, "medium", pattern.BudgetRange)
}

func TestAnalyzeUserPatterns_IdenticalOrders(t *testing.T) {
	var orders []models.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, makeOrder(14, "ACI 2000", "Hippodrome", "documents", 2000, models.UrgencyStandard))
	}
	e := New(&stubOrders{orders: orders}, &stubDrivers{})

	pattern, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{models.SlotAfternoon}, pattern.PreferredTimes)
	assert.Equal(t, []models.LocationFrequency{{Address: "ACI 2000", Frequency: 10}}, pattern.FrequentLocations.Pickup)
	assert.Equal(t, []models.LocationFrequency{{Address: "Hippodrome", Frequency: 10}}, pattern.FrequentLocations.Delivery)
	assert.Equal(t, []models.PackageTypeFrequency{{Type: "documents", Frequency: 10}}, pattern.PackageTypePreferences)
	assert.Equal(t, float64(2000), pattern.AverageOrderValue)
	assert.Equal(t, 10, pattern.DeliveryFrequency)
	assert.Equal(t, models.UrgencyStandard, pattern.UrgencyPattern)
	assert.Equal(t, "medium", pattern.BudgetRange)
}

func TestAnalyzeUserPatterns_TruncatesTopLists(t *testing.T) {
	var orders []models.Order
	// Seven distinct addresses, hours spread over every slot.
	hours := []int{7, 8, 13, 14, 18, 19, 22}
	for i, hour := range hours {
		pickup := fmt.Sprintf("pickup-%d", i)
		delivery := fmt.Sprintf("delivery-%d", i)
		orders = append(orders, makeOrder(hour, pickup, delivery, "parcel", 500, models.UrgencyStandard))
	}
	e := New(&stubOrders{orders: orders}, &stubDrivers{})

	pattern, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(pattern.PreferredTimes), 3)
	assert.LessOrEqual(t, len(pattern.FrequentLocations.Pickup), 5)
	assert.LessOrEqual(t, len(pattern.FrequentLocations.Delivery), 5)
	// Package type list is never truncated.
	assert.Len(t, pattern.PackageTypePreferences, 1)
}

func TestAnalyzeUserPatterns_AverageOrderValue(t *testing.T) {
	orders := []models.Order{
		makeOrder(9, "A", "B", "documents", 1000, models.UrgencyStandard),
		makeOrder(10, "A", "B", "documents", 2500, models.UrgencyStandard),
		makeOrder(11, "A", "B", "documents", 400, models.UrgencyStandard),
	}
	e := New(&stubOrders{orders: orders}, &stubDrivers{})

	pattern, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	require.NoError(t, err)

	assert.InDelta(t, 1300.0, pattern.AverageOrderValue, 1e-9)
}

func TestAnalyzeUserPatterns_TieBreaksByFirstSeen(t *testing.T) {
	orders := []models.Order{
		makeOrder(9, "Badalabougou", "X", "documents", 100, models.UrgencyStandard),
		makeOrder(9, "Korofina", "X", "documents", 100, models.UrgencyStandard),
	}
	e := New(&stubOrders{orders: orders}, &stubDrivers{})

	pattern, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	require.NoError(t, err)

	// Equal frequencies keep traversal order.
	require.Len(t, pattern.FrequentLocations.Pickup, 2)
	assert.Equal(t, "Badalabougou", pattern.FrequentLocations.Pickup[0].Address)
	assert.Equal(t, "Korofina", pattern.FrequentLocations.Pickup[1].Address)
}

func TestAnalyzeUserPatterns_StorageErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	e := New(&stubOrders{err: wantErr}, &stubDrivers{})

	_, err := e.AnalyzeUserPatterns(context.Background(), "user-1")
	assert.ErrorIs(t, err, wantErr)
}

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		average float64
		want    string
	}{
		{0, "low"},
		{1500, "low"},
		{1501, "medium"},
		{3000, "medium"},
		{3001, "high"},
		{100000, "high"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyBudget(tt.average), "average %v", tt.average)
	}
}

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, models.UrgencyStandard},
		{0.3, models.UrgencyStandard},
		{0.31, "mixed"},
		{0.6, "mixed"},
		{0.61, models.UrgencyExpress},
		{1, models.UrgencyExpress},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyUrgency(tt.ratio), "ratio %v", tt.ratio)
	}
}

func TestClassificationsAreMonotonic(t *testing.T) {
	budgetRank := map[string]int{"low": 0, "medium": 1, "high": 2}
	prev := -1
	for avg := 0.0; avg <= 5000; avg += 50 {
		rank := budgetRank[classifyBudget(avg)]
		assert.GreaterOrEqual(t, rank, prev, "budget classification regressed at average %v", avg)
		prev = rank
	}

	urgencyRank := map[string]int{models.UrgencyStandard: 0, "mixed": 1, models.UrgencyExpress: 2}
	prev = -1
	for ratio := 0.0; ratio <= 1.0; ratio += 0.01 {
		rank := urgencyRank[classifyUrgency(ratio)]
		assert.GreaterOrEqual(t, rank, prev, "urgency classification regressed at ratio %v", ratio)
		prev = rank
	}
}
