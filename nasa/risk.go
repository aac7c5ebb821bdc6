// Package nasa implements the NeoWs proxy core: risk scoring, response
// normalization, TTL caching and the feed/browse/lookup orchestration.
package nasa

import (
	"math"
	"strconv"
	"strings"

	"github.com/cosmicwatch/neo-backend/model"
)

// LunarDistanceKm is one lunar distance, the proximity unit used in risk
// bucketing.
const LunarDistanceKm = 384400.0

// RiskScore computes the 0-100 composite risk score for an asteroid. The
// four contributions (hazard flag, diameter, velocity, proximity) are
// additive and independently monotonic; the sum is capped at 100.
func RiskScore(a model.Asteroid) int {
	score := 0

	var diameter float64
	if km := a.EstimatedDiameter.Kilometers; km != nil {
		diameter = (km.EstimatedDiameterMin + km.EstimatedDiameterMax) / 2
	}

	approach := earthApproach(a.CloseApproachData)
	velocity := 0.0
	missDistance := math.Inf(1)
	if approach != nil {
		velocity = parseFloatDefault(approach.RelativeVelocity.KilometersPerHour, 0)
		missDistance = parseFloatDefault(approach.MissDistance.Kilometers, math.Inf(1))
	}

	if a.IsPotentiallyHazardous {
		score += 30
	}

	switch {
	case diameter > 1:
		score += 30
	case diameter > 0.5:
		score += 20
	case diameter > 0.2:
		score += 10
	default:
		score += 5
	}

	switch {
	case velocity > 100000:
		score += 25
	case velocity > 50000:
		score += 15
	case velocity > 25000:
		score += 8
	default:
		score += 3
	}

	switch {
	case missDistance < LunarDistanceKm:
		score += 15
	case missDistance < LunarDistanceKm*5:
		score += 10
	case missDistance < LunarDistanceKm*20:
		score += 5
	default:
		score += 2
	}

	if score > 100 {
		score = 100
	}
	return score
}

// RiskLevel maps a score to its discrete risk level. Boundaries are
// closed-below: exactly 70 is critical, exactly 50 is high, exactly 30 is
// medium.
func RiskLevel(score int) string {
	switch {
	case score >= 70:
		return model.RiskLevelCritical
	case score >= 50:
		return model.RiskLevelHigh
	case score >= 30:
		return model.RiskLevelMedium
	default:
		return model.RiskLevelLow
	}
}

// Enrich attaches a RiskAnalysis to the asteroid. Malformed records (missing
// diameter, no close approaches, unparseable numbers) still get a valid
// analysis; a record that cannot be scored at all gets the safe default
// {0, low} rather than failing the batch.
func Enrich(a model.Asteroid) model.Asteroid {
	score := RiskScore(a)
	a.RiskAnalysis = &model.RiskAnalysis{
		Score: score,
		Level: RiskLevel(score),
	}
	return a
}

// EnrichAll enriches every asteroid in place-order.
func EnrichAll(asteroids []model.Asteroid) []model.Asteroid {
	enriched := make([]model.Asteroid, len(asteroids))
	for i, a := range asteroids {
		enriched[i] = Enrich(a)
	}
	return enriched
}

// MatchesRiskLevel reports whether an enriched asteroid satisfies the
// requested filter. "high" matches both high and critical; the UI treats
// them as one bucket.
func MatchesRiskLevel(a model.Asteroid, level string) bool {
	if a.RiskAnalysis == nil {
		return false
	}
	l := a.RiskAnalysis.Level
	if level == model.RiskLevelHigh {
		return l == model.RiskLevelHigh || l == model.RiskLevelCritical
	}
	return l == level
}

// earthApproach picks the close-approach record used for scoring: the one
// orbiting Earth when present, otherwise the first record, otherwise nil.
func earthApproach(approaches []model.CloseApproach) *model.CloseApproach {
	for i := range approaches {
		if strings.EqualFold(approaches[i].OrbitingBody, "Earth") {
			return &approaches[i]
		}
	}
	if len(approaches) > 0 {
		return &approaches[0]
	}
	return nil
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return def
	}
	return v
}
