package nasa

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cosmicwatch/neo-backend/model"
)

func asteroidWith(hazard bool, diameterKm, velocityKmh, missKm float64) model.Asteroid {
	return model.Asteroid{
		ID:                     "3542519",
		Name:                   "(2010 PK9)",
		IsPotentiallyHazardous: hazard,
		EstimatedDiameter: model.EstimatedDiameter{
			Kilometers: &model.DiameterRange{
				EstimatedDiameterMin: diameterKm,
				EstimatedDiameterMax: diameterKm,
			},
		},
		CloseApproachData: []model.CloseApproach{
			{
				RelativeVelocity: model.RelativeVelocity{
					KilometersPerHour: fmt.Sprintf("%f", velocityKmh),
				},
				MissDistance: model.MissDistance{
					Kilometers: fmt.Sprintf("%f", missKm),
				},
				OrbitingBody: "Earth",
			},
		},
	}
}

func TestRiskScoreMinimum(t *testing.T) {
	// hazard=false, diameter<=0.2, velocity<=25000, miss>=20 LD
	a := asteroidWith(false, 0.1, 20000, LunarDistanceKm*25)
	assert.Equal(t, 10, RiskScore(a)) // 0+5+3+2
	assert.Equal(t, model.RiskLevelLow, RiskLevel(RiskScore(a)))
}

func TestRiskScoreMaximumIsCapped(t *testing.T) {
	a := asteroidWith(true, 2.0, 150000, LunarDistanceKm/2)
	assert.Equal(t, 100, RiskScore(a)) // 30+30+25+15, cap exactly reached
	assert.Equal(t, model.RiskLevelCritical, RiskLevel(RiskScore(a)))
}

func TestRiskLevelBoundariesClosedBelow(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{70, model.RiskLevelCritical},
		{69, model.RiskLevelHigh},
		{50, model.RiskLevelHigh},
		{49, model.RiskLevelMedium},
		{30, model.RiskLevelMedium},
		{29, model.RiskLevelLow},
		{0, model.RiskLevelLow},
		{100, model.RiskLevelCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.level, RiskLevel(tc.score), "score %d", tc.score)
	}
}

func TestRiskScoreMonotonicInEachFactor(t *testing.T) {
	diameters := []float64{0.1, 0.3, 0.6, 1.5}
	velocities := []float64{10000, 30000, 60000, 120000}
	distances := []float64{LunarDistanceKm * 25, LunarDistanceKm * 10, LunarDistanceKm * 3, LunarDistanceKm * 0.5}

	for i := 1; i < len(diameters); i++ {
		lower := RiskScore(asteroidWith(false, diameters[i-1], 10000, LunarDistanceKm*25))
		higher := RiskScore(asteroidWith(false, diameters[i], 10000, LunarDistanceKm*25))
		assert.GreaterOrEqual(t, higher, lower, "diameter bucket %d", i)
	}
	for i := 1; i < len(velocities); i++ {
		lower := RiskScore(asteroidWith(false, 0.1, velocities[i-1], LunarDistanceKm*25))
		higher := RiskScore(asteroidWith(false, 0.1, velocities[i], LunarDistanceKm*25))
		assert.GreaterOrEqual(t, higher, lower, "velocity bucket %d", i)
	}
	for i := 1; i < len(distances); i++ {
		lower := RiskScore(asteroidWith(false, 0.1, 10000, distances[i-1]))
		higher := RiskScore(asteroidWith(false, 0.1, 10000, distances[i]))
		assert.GreaterOrEqual(t, higher, lower, "distance bucket %d", i)
	}

	hazardOff := RiskScore(asteroidWith(false, 0.1, 10000, LunarDistanceKm*25))
	hazardOn := RiskScore(asteroidWith(true, 0.1, 10000, LunarDistanceKm*25))
	assert.Equal(t, hazardOff+30, hazardOn)
}

func TestEnrichMalformedRecordGetsFloorScore(t *testing.T) {
	// No diameter, no close approaches: floor contributions only.
	a := model.Asteroid{ID: "99942", Name: "99942 Apophis (2004 MN4)"}
	enriched := Enrich(a)

	assert.NotNil(t, enriched.RiskAnalysis)
	assert.Equal(t, 10, enriched.RiskAnalysis.Score) // 0+5+3+2
	assert.Equal(t, model.RiskLevelLow, enriched.RiskAnalysis.Level)
	// Everything else passes through untouched.
	assert.Equal(t, a.ID, enriched.ID)
	assert.Equal(t, a.Name, enriched.Name)
}

func TestRiskScoreUnparseableNumbersUseDefaults(t *testing.T) {
	a := asteroidWith(false, 0.1, 0, 0)
	a.CloseApproachData[0].RelativeVelocity.KilometersPerHour = "not-a-number"
	a.CloseApproachData[0].MissDistance.Kilometers = ""

	// velocity defaults to 0 (+3), miss distance to +Inf (+2)
	assert.Equal(t, 10, RiskScore(a))
}

func TestRiskScorePrefersEarthApproach(t *testing.T) {
	a := asteroidWith(false, 0.1, 10000, LunarDistanceKm*25)
	// Prepend a fast, close Venus approach; Earth record must still win.
	venus := model.CloseApproach{
		RelativeVelocity: model.RelativeVelocity{KilometersPerHour: "200000"},
		MissDistance:     model.MissDistance{Kilometers: "1000"},
		OrbitingBody:     "Venus",
	}
	a.CloseApproachData = append([]model.CloseApproach{venus}, a.CloseApproachData...)

	assert.Equal(t, 10, RiskScore(a))
}

func TestRiskScoreFallsBackToFirstApproach(t *testing.T) {
	a := asteroidWith(false, 0.1, 200000, 1000)
	a.CloseApproachData[0].OrbitingBody = "Venus"

	// No Earth record: first record is used. 0+5+25+15
	assert.Equal(t, 45, RiskScore(a))
}

func TestMatchesRiskLevelHighIncludesCritical(t *testing.T) {
	critical := Enrich(asteroidWith(true, 2.0, 150000, LunarDistanceKm/2))
	high := model.Asteroid{RiskAnalysis: &model.RiskAnalysis{Score: 55, Level: model.RiskLevelHigh}}
	medium := model.Asteroid{RiskAnalysis: &model.RiskAnalysis{Score: 35, Level: model.RiskLevelMedium}}

	assert.True(t, MatchesRiskLevel(critical, model.RiskLevelHigh))
	assert.True(t, MatchesRiskLevel(high, model.RiskLevelHigh))
	assert.False(t, MatchesRiskLevel(medium, model.RiskLevelHigh))

	assert.True(t, MatchesRiskLevel(medium, model.RiskLevelMedium))
	assert.False(t, MatchesRiskLevel(critical, model.RiskLevelMedium))
}
