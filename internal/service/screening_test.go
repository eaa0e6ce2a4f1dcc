package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/nutrisaur/backend/internal/service"
	"github.com/pageza/nutrisaur/backend/internal/testhelpers"
	"github.com/pageza/nutrisaur/backend/internal/types"
)

func TestCalculateRiskScore(t *testing.T) {
	tests := []struct {
		name    string
		answers *types.ScreeningAnswers
		want    int
	}{
		{"nil answers", nil, 0},
		{"healthy", &types.ScreeningAnswers{WeightLoss: "no", Swelling: "no", FeedingBehavior: "good", DietaryDiversity: testhelpers.IntPtr(6)}, 0},
		{"missing diversity counts as none", &types.ScreeningAnswers{}, 20},
		{"moderate diversity", &types.ScreeningAnswers{DietaryDiversity: testhelpers.IntPtr(4)}, 10},
		{"weight loss unsure", &types.ScreeningAnswers{WeightLoss: "not_sure", DietaryDiversity: testhelpers.IntPtr(5)}, 15},
		{"feeding moderate", &types.ScreeningAnswers{FeedingBehavior: "moderate", DietaryDiversity: testhelpers.IntPtr(5)}, 10},
		{
			"each sign counts once",
			&types.ScreeningAnswers{PhysicalSigns: []string{"Thin", "thin arms", "weak"}, DietaryDiversity: testhelpers.IntPtr(5)},
			25,
		},
		{
			"capped at 100",
			&types.ScreeningAnswers{
				WeightLoss:       "yes",
				Swelling:         "yes",
				FeedingBehavior:  "poor",
				PhysicalSigns:    []string{"thin", "shorter", "weak"},
				DietaryDiversity: testhelpers.IntPtr(1),
			},
			100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CalculateRiskScore(tt.answers))
		})
	}
}

func TestRiskLevel(t *testing.T) {
	assert.Equal(t, "low", service.RiskLevel(0))
	assert.Equal(t, "moderate", service.RiskLevel(20))
	assert.Equal(t, "high", service.RiskLevel(50))
	assert.Equal(t, "critical", service.RiskLevel(80))
}
