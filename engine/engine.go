// Package engine derives delivery patterns from a user's order history and
// turns them into ranked, explained recommendations. It is deliberately
// stateless: every call is a pure function of the order history, the driver
// pool, the optional current request, and the supplied clock value, so
// concurrent calls need no coordination and nothing is cached between them.
package engine

import (
	"context"
	"log"
	"sort"
	"time"

	"deliveryhub/models"
)

// maxRecommendations caps a single generation response.
const maxRecommendations = 5

// OrderSource yields a user's historical orders.
type OrderSource interface {
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]models.Order, error)
}

// DriverSource yields the current driver pool.
type DriverSource interface {
	GetDrivers(ctx context.Context) ([]models.Driver, error)
}

// Engine generates delivery recommendations from injected collaborators.
type Engine struct {
	orders  OrderSource
	drivers DriverSource
}

// New returns an Engine reading from the given sources.
func New(orders OrderSource, drivers DriverSource) *Engine {
	return &Engine{orders: orders, drivers: drivers}
}

// GenerateRecommendations runs the five rule modules against the user's
// pattern and the optional current request, then returns at most five
// recommendations sorted by confidence descending. The caller supplies now so
// the time rules stay testable; reqCtx may be nil when there is no
// in-progress request.
//
// Only the order-history fetch can fail here. The driver-pool fetch is
// degraded to zero driver-match recommendations inside its rule.
func (e *Engine) GenerateRecommendations(ctx context.Context, userID string, reqCtx *models.RecommendationContext, now time.Time) ([]models.Recommendation, error) {
	pattern, err := e.AnalyzeUserPatterns(ctx, userID)
	if err != nil {
		return nil, err
	}

	var recs []models.Recommendation
	recs = append(recs, timeRecommendations(pattern, now.Hour())...)
	recs = append(recs, locationRecommendations(pattern, reqCtx)...)
	recs = append(recs, e.driverMatchRecommendations(ctx, pattern, reqCtx)...)
	recs = append(recs, priceRecommendations(pattern, reqCtx)...)
	recs = append(recs, routeRecommendations(pattern)...)

	// Stable sort keeps equal-confidence results in rule order run to run.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	return recs, nil
}

// TrackRecommendationAcceptance acknowledges a user's accept/dismiss decision.
// The engine keeps no state, so for now the decision is only logged; the API
// layer records the event row for future tuning work.
func (e *Engine) TrackRecommendationAcceptance(userID, recommendationID string, accepted bool) {
	log.Printf("recommendation feedback: user=%s recommendation=%s accepted=%t", userID, recommendationID, accepted)
}
