package engine

import (
	"context"
	"fmt"
	"log"

	"deliveryhub/models"

	"github.com/google/uuid"
)

// Rule constants. The savings figures are rough platform estimates, not
// business law; tune them alongside the frontend copy.
const (
	timeSuggestionConfidence   = 0.85
	timeSuggestionMinutesSaved = 15

	peakHourConfidence   = 0.75
	peakHourMinutesSaved = 20
	peakHourStart        = 12
	peakHourEnd          = 14
	offPeakHour          = 15

	locationConfidenceCap    = 0.9
	locationFrequencyDivisor = 10
	locationMinutesSaved     = 5

	driverMatchConfidence   = 0.8
	driverMatchMinutesSaved = 10

	standardServiceConfidence = 0.7
	expressSurchargeSavings   = 800

	usualPackageConfidence   = 0.6
	usualPackageMoneySaved   = 200
	usualPackageMinutesSaved = 5

	routeConfidence   = 0.75
	routeMinutesSaved = 12
)

// optimalHours maps each slot to the hour the engine suggests scheduling in.
var optimalHours = map[string]int{
	models.SlotMorning:   9,
	models.SlotAfternoon: 14,
	models.SlotEvening:   18,
	models.SlotNight:     10,
}

// driverStatusApproved is the only driver status eligible for matching.
const driverStatusApproved = "approved"

// timeRecommendations suggests scheduling deliveries in the user's preferred
// slot, plus an independent off-peak nudge during the midday rush. Both rules
// can fire on the same call.
func timeRecommendations(pattern *models.UserDeliveryPattern, hour int) []models.Recommendation {
	var recs []models.Recommendation

	currentSlot := TimeSlotForHour(hour)
	if len(pattern.PreferredTimes) > 0 && !containsSlot(pattern.PreferredTimes, currentSlot) {
		preferred := pattern.PreferredTimes[0]
		recs = append(recs, models.Recommendation{
			ID:          uuid.NewString(),
			Type:        models.RecTypeTimeSuggestion,
			Title:       "Better time to send",
			Description: fmt.Sprintf("You usually order in the %s. Scheduling then tends to get faster pickups.", preferred),
			Confidence:  timeSuggestionConfidence,
			Savings: models.Savings{
				TimeSaved: timeSuggestionMinutesSaved,
				Reason:    "Drivers you order from are most available in your usual slot",
			},
			SuggestedAction: models.TimeSlotAction{TimeSlot: preferred, Hour: optimalHours[preferred]},
		})
	}

	if hour >= peakHourStart && hour <= peakHourEnd {
		recs = append(recs, models.Recommendation{
			ID:          uuid.NewString(),
			Type:        models.RecTypeTimeSuggestion,
			Title:       "Avoid the midday rush",
			Description: "It's peak hours right now. Deliveries scheduled after 15:00 are picked up faster.",
			Confidence:  peakHourConfidence,
			Savings: models.Savings{
				TimeSaved: peakHourMinutesSaved,
				Reason:    "Less traffic and more available drivers after 15:00",
			},
			SuggestedAction: models.TimeSlotAction{TimeSlot: models.SlotAfternoon, Hour: offPeakHour},
		})
	}

	return recs
}

// locationRecommendations pre-fills addresses the user relies on. Each side
// (pickup, delivery) fires independently, and only for request fields that
// were left blank.
func locationRecommendations(pattern *models.UserDeliveryPattern, reqCtx *models.RecommendationContext) []models.Recommendation {
	if reqCtx == nil {
		return nil
	}

	var recs []models.Recommendation

	if len(pattern.FrequentLocations.Pickup) > 0 && reqCtx.PickupAddress == "" {
		top := pattern.FrequentLocations.Pickup[0]
		recs = append(recs, locationRecommendation(top, "pickup"))
	}
	if len(pattern.FrequentLocations.Delivery) > 0 && reqCtx.DeliveryAddress == "" {
		top := pattern.FrequentLocations.Delivery[0]
		recs = append(recs, locationRecommendation(top, "delivery"))
	}

	return recs
}

func locationRecommendation(top models.LocationFrequency, addressType string) models.Recommendation {
	confidence := float64(top.Frequency) / locationFrequencyDivisor
	if confidence > locationConfidenceCap {
		confidence = locationConfidenceCap
	}
	return models.Recommendation{
		ID:          uuid.NewString(),
		Type:        models.RecTypeLocationSuggestion,
		Title:       fmt.Sprintf("Use your usual %s address", addressType),
		Description: fmt.Sprintf("You've used %s for %s %d times.", top.Address, addressType, top.Frequency),
		Confidence:  confidence,
		Savings: models.Savings{
			TimeSaved: locationMinutesSaved,
			Reason:    "No need to type the address again",
		},
		SuggestedAction: models.LocationAction{Address: top.Address, AddressType: addressType},
	}
}

// driverMatchRecommendations pairs the request with an approved driver when
// the package type matches the user's usual one. A failing driver lookup is
// logged and swallowed; this rule degrades to nothing rather than failing the
// whole generation.
func (e *Engine) driverMatchRecommendations(ctx context.Context, pattern *models.UserDeliveryPattern, reqCtx *models.RecommendationContext) []models.Recommendation {
	if reqCtx == nil || reqCtx.PackageType == "" || len(pattern.PackageTypePreferences) == 0 {
		return nil
	}
	if reqCtx.PackageType != pattern.PackageTypePreferences[0].Type {
		return nil
	}

	drivers, err := e.drivers.GetDrivers(ctx)
	if err != nil {
		log.Printf("driver match skipped, could not fetch drivers: %v", err)
		return nil
	}

	var approved []models.Driver
	for _, driver := range drivers {
		if driver.Status == driverStatusApproved {
			approved = append(approved, driver)
		}
	}
	if len(approved) == 0 {
		return nil
	}

	match := approved[0]
	return []models.Recommendation{{
		ID:          uuid.NewString(),
		Type:        models.RecTypeDriverMatch,
		Title:       "Driver suggestion",
		Description: fmt.Sprintf("%s regularly handles %s deliveries like yours.", match.FullName, reqCtx.PackageType),
		Confidence:  driverMatchConfidence,
		Savings: models.Savings{
			TimeSaved: driverMatchMinutesSaved,
			Reason:    "Experienced with your usual package type",
		},
		SuggestedAction: models.DriverMatchAction{DriverID: match.ID, DriverName: match.FullName},
	}}
}

// priceRecommendations nudges budget-conscious users off express service and
// toward their usual package type. The two sub-rules fire independently.
func priceRecommendations(pattern *models.UserDeliveryPattern, reqCtx *models.RecommendationContext) []models.Recommendation {
	if reqCtx == nil {
		return nil
	}

	var recs []models.Recommendation

	if pattern.BudgetRange == "low" && reqCtx.Urgency == models.UrgencyExpress {
		recs = append(recs, models.Recommendation{
			ID:          uuid.NewString(),
			Type:        models.RecTypePriceOptimization,
			Title:       "Save with standard delivery",
			Description: "Standard service costs much less than express and usually arrives the same day.",
			Confidence:  standardServiceConfidence,
			Savings: models.Savings{
				MoneySaved: expressSurchargeSavings,
				Reason:     "No express surcharge",
			},
			SuggestedAction: models.PriceAction{Urgency: models.UrgencyStandard, Savings: expressSurchargeSavings},
		})
	}

	if len(pattern.PackageTypePreferences) > 0 &&
		reqCtx.PackageType != "" &&
		reqCtx.PackageType != pattern.PackageTypePreferences[0].Type {
		usual := pattern.PackageTypePreferences[0].Type
		recs = append(recs, models.Recommendation{
			ID:          uuid.NewString(),
			Type:        models.RecTypePriceOptimization,
			Title:       "Cheaper with your usual package type",
			Description: fmt.Sprintf("You normally send %s. Sticking with it gets you better rates.", usual),
			Confidence:  usualPackageConfidence,
			Savings: models.Savings{
				TimeSaved:  usualPackageMinutesSaved,
				MoneySaved: usualPackageMoneySaved,
				Reason:     "Regular-type deliveries are priced lower",
			},
			SuggestedAction: models.PriceAction{Savings: usualPackageMoneySaved},
		})
	}

	return recs
}

// routeRecommendations surfaces the user's most traveled pickup/delivery pair.
func routeRecommendations(pattern *models.UserDeliveryPattern) []models.Recommendation {
	if len(pattern.FrequentLocations.Pickup) == 0 || len(pattern.FrequentLocations.Delivery) == 0 {
		return nil
	}

	from := pattern.FrequentLocations.Pickup[0]
	to := pattern.FrequentLocations.Delivery[0]
	frequency := from.Frequency
	if to.Frequency < frequency {
		frequency = to.Frequency
	}

	return []models.Recommendation{{
		ID:          uuid.NewString(),
		Type:        models.RecTypeRouteOptimization,
		Title:       "Your usual route",
		Description: fmt.Sprintf("%s to %s is your most common route. Reuse it in one tap.", from.Address, to.Address),
		Confidence:  routeConfidence,
		Savings: models.Savings{
			TimeSaved: routeMinutesSaved,
			Reason:    "Drivers already know this route well",
		},
		SuggestedAction: models.RouteAction{
			Route: models.CommonRoute{From: from.Address, To: to.Address, Frequency: frequency},
		},
	}}
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
