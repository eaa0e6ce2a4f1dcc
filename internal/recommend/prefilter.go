package recommend

// inclusionRule admits a dish into the candidate set when its filter is active.
type inclusionRule struct {
	name   string
	active func(FilterSet) bool
	match  func(Dish) bool
}

func criterion(cs ...Criterion) func(FilterSet) bool {
	return func(fs FilterSet) bool { return fs.Criteria.HasAny(cs...) }
}

func diet(ds ...Diet) func(FilterSet) bool {
	return func(fs FilterSet) bool {
		for _, d := range ds {
			if fs.Diets.Has(d) {
				return true
			}
		}
		return false
	}
}

func tagged(tags ...Tag) func(Dish) bool {
	set := NewTagSet(tags...)
	return func(d Dish) bool { return d.Tags.HasAny(set) }
}

// inclusionRules are evaluated in order; the first active rule that matches admits
// the dish and later rules are not consulted.
var inclusionRules = []inclusionRule{
	// nutrient rules admit the middle scoring tier too, so those dishes reach scoring
	{"high-protein", criterion(CriterionHighProtein), func(d Dish) bool { return d.IsHighProtein() || d.Nutrients.Protein >= 10 }},
	{"iron-rich", criterion(CriterionIronRich), func(d Dish) bool { return d.IsHighIron() || d.Nutrients.Iron >= 2 }},
	{"high-energy", criterion(CriterionHighEnergy), func(d Dish) bool { return d.IsEnergyDense() || d.Nutrients.Calories >= 200 }},
	{"vegetarian", diet(DietVegetarian, DietVegan), tagged(TagVegetarian, TagVegan)},
	{"pescatarian", diet(DietPescatarian), tagged(TagPescatarian, TagVegetarian, TagVegan, TagFish, TagSeafood)},
	{"gluten-free", diet(DietGlutenFree), tagged(TagGlutenFree)},
	{"dairy-free", diet(DietDairyFree), tagged(TagDairyFree)},
	{"nut-free", diet(DietNutFree), tagged(TagNutFree)},
	{"infant", criterion(CriterionNewborn, CriterionInfant), tagged(TagPureed, TagSoft, TagLiquid)},
	{"child", criterion(CriterionChild, CriterionSchoolAge), tagged(TagChicken, TagSoft, TagEasyToEat)},
	{"adolescent", criterion(CriterionAdolescent), tagged(TagEnergyDense, TagHighProtein)},
	{"adult", criterion(CriterionAdult), tagged(TagBalanced, TagAdult)},
	{"boiled", criterion(CriterionBoiled), tagged(TagBoiled)},
	{"steamed", criterion(CriterionSteamed), tagged(TagSteamed)},
	{"fried", criterion(CriterionFried), tagged(TagFried)},
	{"grilled", criterion(CriterionGrilled), tagged(TagGrilled)},
	{"roasted", criterion(CriterionRoasted), tagged(TagRoasted)},
	{"stir-fried", criterion(CriterionStirFried), tagged(TagStirFried)},
	{"deep-fried", criterion(CriterionDeepFried), tagged(TagDeepFried)},
	{"stewed", criterion(CriterionStewed), tagged(TagStewed)},
	{"soup", criterion(CriterionSoup), tagged(TagSoup)},
	{"main dishes", criterion(CriterionMainDishes), tagged(TagMeat, TagFish, TagChicken)},
	{"noodles", criterion(CriterionNoodles), tagged(TagNoodles)},
	{"rice dishes", criterion(CriterionRiceDishes), tagged(TagRice)},
	{"street food", criterion(CriterionStreetFood), tagged(TagStreetFood)},
	{"appetizers", criterion(CriterionAppetizers), tagged(TagAppetizer)},
	{"desserts", criterion(CriterionDesserts), tagged(TagDessert)},
	{"beverages", criterion(CriterionBeverages), tagged(TagBeverage)},
	{"vegetables", criterion(CriterionVegetables), tagged(TagVegetable, TagVegetarian)},
	{"snacks", criterion(CriterionSnacks), tagged(TagSnack)},
	{"fruits", criterion(CriterionFruits), tagged(TagFruit)},
	{"staples", criterion(CriterionStaples), tagged(TagStaple)},
	{"regional specialties", criterion(CriterionRegional), tagged(TagRegional)},
	{"low-calorie", criterion(CriterionLowCalorie), Dish.IsLowCalorie},
	{"vitamin-a", criterion(CriterionVitaminA), Dish.IsHighVitaminA},
	{"vitamin-c", criterion(CriterionVitaminC), Dish.IsHighVitaminC},
	{"fiber-rich", criterion(CriterionFiberRich), Dish.IsHighFiber},
	{"calcium-rich", criterion(CriterionCalciumRich), Dish.IsHighCalcium},
}

// Limits bound the candidate pre-filter.
type Limits struct {
	UnfilteredPrefix int
	CandidateCap     int
	BackfillBelow    int
	BackfillTarget   int
}

// PreFilter reduces the catalog to a bounded candidate set. Every returned dish is
// free of the user's allergens, free of filter allergens and satisfies the strict
// dietary filters.
func PreFilter(catalog []Dish, user UserContext, filters FilterSet, limits Limits) []Dish {
	if filters.Empty() {
		return unfilteredPrefix(catalog, user, limits.UnfilteredPrefix)
	}

	active := make([]inclusionRule, 0, len(inclusionRules))
	for _, r := range inclusionRules {
		if r.active(filters) {
			active = append(active, r)
		}
	}

	candidates := make([]Dish, 0, limits.CandidateCap)
	included := make(map[int]struct{}, limits.CandidateCap)
	for i, d := range catalog {
		if len(candidates) >= limits.CandidateCap {
			break
		}
		if blocked(d, user, filters) {
			continue
		}
		for _, r := range active {
			if r.match(d) {
				candidates = append(candidates, d)
				included[i] = struct{}{}
				break
			}
		}
	}

	if len(candidates) < limits.BackfillBelow {
		for i, d := range catalog {
			if len(candidates) >= limits.BackfillTarget {
				break
			}
			if _, ok := included[i]; ok || blocked(d, user, filters) {
				continue
			}
			candidates = append(candidates, d)
		}
	}
	return candidates
}

// unfilteredPrefix takes the first n catalog dishes in catalog order, dropping any the
// user is allergic to.
func unfilteredPrefix(catalog []Dish, user UserContext, n int) []Dish {
	if n > len(catalog) {
		n = len(catalog)
	}
	out := make([]Dish, 0, n)
	for _, d := range catalog[:n] {
		if IsExcluded(d, user) {
			continue
		}
		out = append(out, d)
	}
	return out
}
