package engine

import (
	"context"
	"sort"

	"deliveryhub/models"
)

// Classification thresholds. Currency-agnostic: the unit is whatever the
// order prices are stored in.
const (
	budgetHighThreshold   = 3000
	budgetMediumThreshold = 1500

	expressRatioHigh  = 0.6
	expressRatioMixed = 0.3

	defaultAverageOrderValue = 2000

	maxPreferredTimes    = 3
	maxFrequentLocations = 5
)

// TimeSlotForHour maps an hour of day to a time slot label.
func TimeSlotForHour(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return models.SlotMorning
	case hour >= 12 && hour < 17:
		return models.SlotAfternoon
	case hour >= 17 && hour < 21:
		return models.SlotEvening
	default:
		return models.SlotNight
	}
}

// AnalyzeUserPatterns derives a behavioral summary from the user's order
// history. A user with no orders gets the default pattern, so callers never
// see empty-but-required fields. Storage errors propagate unchanged.
func (e *Engine) AnalyzeUserPatterns(ctx context.Context, userID string) (*models.UserDeliveryPattern, error) {
	orders, err := e.orders.GetOrdersByCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return defaultPattern(userID), nil
	}
	return buildPattern(userID, orders), nil
}

// defaultPattern is returned for users with no history.
func defaultPattern(userID string) *models.UserDeliveryPattern {
	return &models.UserDeliveryPattern{
		UserID:         userID,
		PreferredTimes: []string{models.SlotAfternoon},
		FrequentLocations: models.FrequentLocations{
			Pickup:   []models.LocationFrequency{},
			Delivery: []models.LocationFrequency{},
		},
		PackageTypePreferences: []models.PackageTypeFrequency{},
		AverageOrderValue:      defaultAverageOrderValue,
		DeliveryFrequency:      0,
		UrgencyPattern:         models.UrgencyStandard,
		BudgetRange:            "medium",
	}
}

func buildPattern(userID string, orders []models.Order) *models.UserDeliveryPattern {
	slots := newFrequencyCounter()
	pickups := newFrequencyCounter()
	deliveries := newFrequencyCounter()
	packageTypes := newFrequencyCounter()

	var totalValue float64
	expressCount := 0

	for _, order := range orders {
		slots.Add(TimeSlotForHour(order.CreatedAt.Hour()))
		pickups.Add(order.PickupAddress)
		deliveries.Add(order.DeliveryAddress)
		packageTypes.Add(order.PackageType)

		totalValue += order.Price
		if order.Urgency == models.UrgencyExpress {
			expressCount++
		}
	}

	averageValue := totalValue / float64(len(orders))
	expressRatio := float64(expressCount) / float64(len(orders))

	preferredTimes := make([]string, 0, maxPreferredTimes)
	for _, entry := range slots.Ranked(maxPreferredTimes) {
		preferredTimes = append(preferredTimes, entry.Key)
	}

	return &models.UserDeliveryPattern{
		UserID:         userID,
		PreferredTimes: preferredTimes,
		FrequentLocations: models.FrequentLocations{
			Pickup:   toLocationFrequencies(pickups.Ranked(maxFrequentLocations)),
			Delivery: toLocationFrequencies(deliveries.Ranked(maxFrequentLocations)),
		},
		PackageTypePreferences: toPackageTypeFrequencies(packageTypes.Ranked(0)),
		AverageOrderValue:      averageValue,
		DeliveryFrequency:      len(orders),
		UrgencyPattern:         classifyUrgency(expressRatio),
		BudgetRange:            classifyBudget(averageValue),
	}
}

func classifyUrgency(expressRatio float64) string {
	switch {
	case expressRatio > expressRatioHigh:
		return models.UrgencyExpress
	case expressRatio > expressRatioMixed:
		return "mixed"
	default:
		return models.UrgencyStandard
	}
}

func classifyBudget(averageValue float64) string {
	switch {
	case averageValue > budgetHighThreshold:
		return "high"
	case averageValue > budgetMediumThreshold:
		return "medium"
	default:
		return "low"
	}
}

// --- frequency counting ---

type rankedEntry struct {
	Key   string
	Count int
}

// frequencyCounter counts string keys while remembering first-seen order, so
// ranking ties resolve to whichever key appeared first in the traversal. That
// keeps the output deterministic for identical input.
type frequencyCounter struct {
	counts map[string]int
	order  []string
}

func newFrequencyCounter() *frequencyCounter {
	return &frequencyCounter{counts: make(map[string]int)}
}

func (f *frequencyCounter) Add(key string) {
	if _, seen := f.counts[key]; !seen {
		f.order = append(f.order, key)
	}
	f.counts[key]++
}

// Ranked returns entries sorted by count descending. limit <= 0 means all.
func (f *frequencyCounter) Ranked(limit int) []rankedEntry {
	entries := make([]rankedEntry, 0, len(f.order))
	for _, key := range f.order {
		entries = append(entries, rankedEntry{Key: key, Count: f.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func toLocationFrequencies(entries []rankedEntry) []models.LocationFrequency {
	result := make([]models.LocationFrequency, 0, len(entries))
	for _, entry := range entries {
		result = append(result, models.LocationFrequency{Address: entry.Key, Frequency: entry.Count})
	}
	return result
}

func toPackageTypeFrequencies(entries []rankedEntry) []models.PackageTypeFrequency {
	result := make([]models.PackageTypeFrequency, 0, len(entries))
	for _, entry := range entries {
		result = append(result, models.PackageTypeFrequency{Type: entry.Key, Frequency: entry.Count})
	}
	return result
}
