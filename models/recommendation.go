package models

// Recommendation types emitted by the engine.
const (
	RecTypeRouteOptimization  = "route_optimization"
	RecTypeTimeSuggestion     = "time_suggestion"
	RecTypeDriverMatch        = "driver_match"
	RecTypePriceOptimization  = "price_optimization"
	RecTypeLocationSuggestion = "location_suggestion"
)

// Time-of-day slots used for pattern bucketing.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
	SlotNight     = "night"
)

// Urgency categories carried on orders and requests.
const (
	UrgencyStandard = "standard"
	UrgencyExpress  = "express"
)

// The recommendation API keeps the camelCase wire shapes the frontend was
// built against, unlike the snake_case admin/CRUD payloads.

// LocationFrequency pairs an address with how often it appeared in the
// user's history. Addresses are compared by exact string match.
type LocationFrequency struct {
	Address   string `json:"address"`
	Frequency int    `json:"frequency"`
}

// PackageTypeFrequency pairs a package type with its order count.
type PackageTypeFrequency struct {
	Type      string `json:"type"`
	Frequency int    `json:"frequency"`
}

// FrequentLocations holds the user's most used pickup and delivery addresses,
// most frequent first, truncated to the top 5 each.
type FrequentLocations struct {
	Pickup   []LocationFrequency `json:"pickup"`
	Delivery []LocationFrequency `json:"delivery"`
}

// UserDeliveryPattern is the behavioral summary derived from a user's order
// history. It is recomputed on every call and never persisted.
type UserDeliveryPattern struct {
	UserID                 string                 `json:"userId"`
	PreferredTimes         []string               `json:"preferredTimes"`
	FrequentLocations      FrequentLocations      `json:"frequentLocations"`
	PackageTypePreferences []PackageTypeFrequency `json:"packageTypePreferences"`
	AverageOrderValue      float64                `json:"averageOrderValue"`
	DeliveryFrequency      int                    `json:"deliveryFrequency"`
	UrgencyPattern         string                 `json:"urgencyPattern"`
	BudgetRange            string                 `json:"budgetRange"`
}

// Savings quantifies what following a recommendation is expected to save.
type Savings struct {
	TimeSaved  int     `json:"timeSaved"`
	MoneySaved float64 `json:"moneySaved"`
	Reason     string  `json:"reason"`
}

// Recommendation is a single ranked suggestion. SuggestedAction holds exactly
// one of the *Action payloads below, matching Type.
type Recommendation struct {
	ID              string      `json:"id"`
	Type            string      `json:"type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Confidence      float64     `json:"confidence"`
	Savings         Savings     `json:"savings"`
	SuggestedAction interface{} `json:"suggestedAction"`
}

// TimeSlotAction is the payload for time_suggestion recommendations.
type TimeSlotAction struct {
	TimeSlot string `json:"timeSlot"`
	Hour     int    `json:"hour"`
}

// LocationAction is the payload for location_suggestion recommendations.
// AddressType is "pickup" or "delivery".
type LocationAction struct {
	Address     string `json:"address"`
	AddressType string `json:"type"`
}

// DriverMatchAction is the payload for driver_match recommendations.
type DriverMatchAction struct {
	DriverID   string `json:"driverId"`
	DriverName string `json:"driverName"`
}

// PriceAction is the payload for price_optimization recommendations.
type PriceAction struct {
	Urgency string  `json:"urgency,omitempty"`
	Savings float64 `json:"savings"`
}

// CommonRoute is the user's most traveled pickup/delivery pair.
type CommonRoute struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Frequency int    `json:"frequency"`
}

// RouteAction is the payload for route_optimization recommendations.
type RouteAction struct {
	Route CommonRoute `json:"route"`
}

// RecommendationContext carries the fields of an in-progress delivery request.
// Empty fields simply mean "not provided"; unknown values never fail a rule,
// they just don't match it.
type RecommendationContext struct {
	PickupAddress   string `json:"pickupAddress"`
	DeliveryAddress string `json:"deliveryAddress"`
	PackageType     string `json:"packageType"`
	Urgency         string `json:"urgency"`
}
