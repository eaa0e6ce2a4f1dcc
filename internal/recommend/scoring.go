package recommend

// AllergyViolationScore is returned for a dish that hits a user or filter allergen.
const AllergyViolationScore = -1000.0

// Score is the composite ranking score of a dish. It is a pure function of its inputs.
func Score(d Dish, user UserContext, filters FilterSet) float64 {
	if IsExcluded(d, user) || AvoidsAllergen(d, filters) {
		return AllergyViolationScore
	}
	base := d.NutritionalScore()
	return base +
		filterBonus(d, filters) +
		preferenceAdjustment(d, user) +
		malnutritionBonus(d, user, base) +
		diversityBonus(d)
}

type tier struct {
	points float64
	ok     func(Dish) bool
}

// filterTiers lists the tiered bonus of each nutrient filter, best tier first.
var filterTiers = []struct {
	criterion Criterion
	tiers     []tier
}{
	{CriterionHighProtein, []tier{
		{50, Dish.IsHighProtein},
		{25, func(d Dish) bool { return d.Nutrients.Protein >= 10 }},
		{10, func(d Dish) bool { return d.Nutrients.Protein >= 5 }},
	}},
	{CriterionIronRich, []tier{
		{40, Dish.IsHighIron},
		{20, func(d Dish) bool { return d.Nutrients.Iron >= 2 }},
		{10, func(d Dish) bool { return d.Nutrients.Iron >= 1 }},
	}},
	{CriterionHighEnergy, []tier{
		{40, Dish.IsEnergyDense},
		{20, func(d Dish) bool { return d.Nutrients.Calories >= 200 }},
	}},
	{CriterionLowCalorie, []tier{
		{30, Dish.IsLowCalorie},
		{15, func(d Dish) bool { return d.Nutrients.Calories <= 300 }},
	}},
	{CriterionVitaminA, []tier{
		{35, Dish.IsHighVitaminA},
		{20, func(d Dish) bool { return d.Nutrients.VitaminA >= 500 }},
	}},
	{CriterionVitaminC, []tier{
		{35, Dish.IsHighVitaminC},
		{20, func(d Dish) bool { return d.Nutrients.VitaminC >= 15 }},
	}},
	{CriterionFiberRich, []tier{
		{30, Dish.IsHighFiber},
		{15, func(d Dish) bool { return d.Nutrients.Fiber >= 3 }},
	}},
	{CriterionCalciumRich, []tier{
		{30, Dish.IsHighCalcium},
		{15, func(d Dish) bool { return d.Nutrients.Calcium >= 100 }},
	}},
}

func filterBonus(d Dish, filters FilterSet) float64 {
	var bonus float64
	for _, ft := range filterTiers {
		if !filters.Criteria.Has(ft.criterion) {
			continue
		}
		for _, t := range ft.tiers {
			if t.ok(d) {
				bonus += t.points
				break
			}
		}
	}
	return bonus
}

func preferenceAdjustment(d Dish, user UserContext) float64 {
	var adj float64
	if user.Diets.Has(DietVegetarian) {
		switch {
		case d.Tags.HasAny(NewTagSet(TagVegetarian, TagVegan)):
			adj += 30
		case mentionsAny(d, meatKeywords):
			adj -= 100
		}
	}
	if user.Diets.Has(DietVegan) {
		switch {
		case d.Tags.Has(TagVegan):
			adj += 40
		case mentionsAny(d, animalProductKeywords):
			adj -= 200
		}
	}
	if user.Diets.Has(DietGlutenFree) {
		switch {
		case d.Tags.Has(TagGlutenFree):
			adj += 25
		case mentionsAny(d, glutenKeywords):
			adj -= 100
		}
	}
	if user.Diets.Has(DietDairyFree) {
		switch {
		case d.Tags.Has(TagDairyFree):
			adj += 25
		case mentionsAny(d, dairyKeywords):
			adj -= 100
		}
	}
	return adj
}

func malnutritionBonus(d Dish, user UserContext, base float64) float64 {
	var bonus float64
	switch {
	case user.RiskScore >= 70:
		bonus += base * 0.5
	case user.RiskScore >= 50:
		bonus += base * 0.3
	case user.RiskScore >= 30:
		bonus += base * 0.1
	}
	if !user.AgeKnown {
		return bonus
	}
	if user.AgeMonths <= 24 {
		if d.IsEnergyDense() || d.Tags.Has(TagSoft) {
			bonus += 20
		}
	} else if user.AgeMonths <= 60 && d.Tags.Has(TagBalanced) {
		bonus += 15
	}
	return bonus
}

var diversityPoints = []struct {
	tags   TagSet
	points float64
}{
	{NewTagSet(TagVegetarian, TagVegan), 5},
	{NewTagSet(TagMeat), 5},
	{NewTagSet(TagFish, TagSeafood), 5},
	{NewTagSet(TagRice), 3},
	{NewTagSet(TagSoup), 3},
	{NewTagSet(TagDessert), 2},
	{NewTagSet(TagSnack), 2},
	{NewTagSet(TagTraditional), 3},
}

func diversityBonus(d Dish) float64 {
	var bonus float64
	for _, dp := range diversityPoints {
		if d.Tags.HasAny(dp.tags) {
			bonus += dp.points
		}
	}
	return bonus
}
