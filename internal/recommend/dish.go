package recommend

import (
	"fmt"
	"math"
	"strings"
)

// Nutrient thresholds used by the derived dish predicates.
const (
	HighProteinGrams    = 15.0
	HighIronMg          = 3.0
	EnergyDenseKcal     = 350.0
	LowCalorieKcal      = 150.0
	HighVitaminAMcg     = 700.0
	HighVitaminCMg      = 30.0
	HighFiberGrams      = 5.0
	HighCalciumMg       = 200.0
	adequateKcalMinimum = 150.0
	adequateKcalMaximum = 600.0
)

// Nutrients are the per-serving nutrient facts of a dish.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Iron     float64 `json:"iron"`
	VitaminA float64 `json:"vitamin_a"`
	VitaminC float64 `json:"vitamin_c"`
	Fiber    float64 `json:"fiber"`
	Calcium  float64 `json:"calcium"`
}

// Dish is an immutable catalog entry.
type Dish struct {
	ID          string
	Name        string
	Description string
	Tags        TagSet
	Allergens   AllergenSet
	Nutrients   Nutrients
}

func (d Dish) IsHighProtein() bool {
	return d.Nutrients.Protein >= HighProteinGrams || d.Tags.Has(TagHighProtein)
}

func (d Dish) IsHighIron() bool {
	return d.Nutrients.Iron >= HighIronMg || d.Tags.Has(TagHighIron)
}

func (d Dish) IsEnergyDense() bool {
	return d.Nutrients.Calories >= EnergyDenseKcal || d.Tags.Has(TagEnergyDense)
}

// IsLowCalorie ignores dishes without calorie data unless the catalog tags them LC.
func (d Dish) IsLowCalorie() bool {
	return (d.Nutrients.Calories > 0 && d.Nutrients.Calories <= LowCalorieKcal) || d.Tags.Has(TagLowCalorie)
}

func (d Dish) IsHighVitaminA() bool { return d.Nutrients.VitaminA >= HighVitaminAMcg }

func (d Dish) IsHighVitaminC() bool { return d.Nutrients.VitaminC >= HighVitaminCMg }

func (d Dish) IsHighFiber() bool { return d.Nutrients.Fiber >= HighFiberGrams }

func (d Dish) IsHighCalcium() bool { return d.Nutrients.Calcium >= HighCalciumMg }

// NutritionalScore rates the nutrient profile on a 0-100 scale. Each nutrient earns
// points linearly up to its saturation point; calories earn a flat 10 inside the
// adequacy band.
func (d Dish) NutritionalScore() float64 {
	n := d.Nutrients
	score := saturate(n.Protein, 20, 20) +
		saturate(n.Iron, 4, 15) +
		saturate(n.VitaminA, 900, 15) +
		saturate(n.VitaminC, 45, 15) +
		saturate(n.Fiber, 6, 15) +
		saturate(n.Calcium, 300, 10)
	if n.Calories >= adequateKcalMinimum && n.Calories <= adequateKcalMaximum {
		score += 10
	}
	return score
}

func saturate(value, full, points float64) float64 {
	if value <= 0 || full <= 0 {
		return 0
	}
	return math.Min(value/full, 1) * points
}

// text is the lower-cased searchable text used by the keyword heuristics.
func (d Dish) text() string {
	return strings.ToLower(d.Name + " " + d.Description)
}

func (d Dish) String() string {
	return fmt.Sprintf("%s(%s)", d.Name, d.ID)
}
