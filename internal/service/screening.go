package service

import (
	"strings"

	"github.com/pageza/nutrisaur/backend/internal/types"
)

// CalculateRiskScore turns screening answers into a 0-100 malnutrition risk score.
// A missing dietary diversity count is treated as zero food groups.
func CalculateRiskScore(a *types.ScreeningAnswers) int {
	if a == nil {
		return 0
	}
	score := 0

	switch a.WeightLoss {
	case "yes":
		score += 30
	case "not_sure":
		score += 15
	}
	if a.Swelling == "yes" {
		score += 20
	}
	switch a.FeedingBehavior {
	case "poor":
		score += 25
	case "moderate":
		score += 10
	}

	signs := strings.ToLower(strings.Join(a.PhysicalSigns, " "))
	if strings.Contains(signs, "thin") {
		score += 15
	}
	if strings.Contains(signs, "shorter") {
		score += 10
	}
	if strings.Contains(signs, "weak") {
		score += 10
	}

	diversity := 0
	if a.DietaryDiversity != nil {
		diversity = *a.DietaryDiversity
	}
	switch {
	case diversity <= 2:
		score += 20
	case diversity <= 4:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// RiskLevel buckets a risk score for display.
func RiskLevel(score int) string {
	switch {
	case score < 20:
		return "low"
	case score < 50:
		return "moderate"
	case score < 80:
		return "high"
	default:
		return "critical"
	}
}
