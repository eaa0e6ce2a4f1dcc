package recommend

import (
	"sort"
	"strings"
)

// Criterion is a non-dietary, non-allergen filter: a nutrient target, an age group,
// a cooking method or a food category.
type Criterion uint64

// CriterionSet is a bitset of Criteria.
type CriterionSet uint64

const (
	CriterionHighProtein Criterion = 1 << iota
	CriterionIronRich
	CriterionHighEnergy
	CriterionLowCalorie
	CriterionVitaminA
	CriterionVitaminC
	CriterionFiberRich
	CriterionCalciumRich

	CriterionNewborn
	CriterionInfant
	CriterionChild
	CriterionSchoolAge
	CriterionAdolescent
	CriterionAdult

	CriterionBoiled
	CriterionSteamed
	CriterionFried
	CriterionGrilled
	CriterionRoasted
	CriterionStirFried
	CriterionDeepFried
	CriterionStewed
	CriterionSoup

	CriterionMainDishes
	CriterionNoodles
	CriterionRiceDishes
	CriterionStreetFood
	CriterionAppetizers
	CriterionDesserts
	CriterionBeverages
	CriterionVegetables
	CriterionSnacks
	CriterionFruits
	CriterionStaples
	CriterionRegional
)

// Has reports whether c is in the set.
func (s CriterionSet) Has(c Criterion) bool { return s&CriterionSet(c) != 0 }

// HasAny reports whether any of cs is in the set.
func (s CriterionSet) HasAny(cs ...Criterion) bool {
	for _, c := range cs {
		if s.Has(c) {
			return true
		}
	}
	return false
}

type vocabularyEntry struct {
	words     []string
	criterion Criterion
	diet      Diet
	allergen  Allergen
}

// vocabulary is the fixed filter vocabulary. A filter string activates every entry
// one of whose words it contains, so "stir-fried" activates both stir-fried and fried.
var vocabulary = []vocabularyEntry{
	// nutrients
	{words: []string{"high-protein", "protein"}, criterion: CriterionHighProtein},
	{words: []string{"iron-rich", "iron"}, criterion: CriterionIronRich},
	{words: []string{"high-energy", "energy"}, criterion: CriterionHighEnergy},
	{words: []string{"low-calorie", "calorie"}, criterion: CriterionLowCalorie},
	{words: []string{"vitamin-a", "vitamin a"}, criterion: CriterionVitaminA},
	{words: []string{"vitamin-c", "vitamin c"}, criterion: CriterionVitaminC},
	{words: []string{"fiber-rich", "fiber"}, criterion: CriterionFiberRich},
	{words: []string{"calcium-rich", "calcium"}, criterion: CriterionCalciumRich},

	// dietary restrictions
	{words: []string{"vegetarian"}, diet: DietVegetarian},
	{words: []string{"vegan"}, diet: DietVegan},
	{words: []string{"pescatarian"}, diet: DietPescatarian},
	{words: []string{"halal"}, diet: DietHalal},
	{words: []string{"kosher"}, diet: DietKosher},
	{words: []string{"gluten-free", "gluten"}, diet: DietGlutenFree},
	{words: []string{"dairy-free", "dairy"}, diet: DietDairyFree},
	{words: []string{"nut-free"}, diet: DietNutFree},

	// allergens
	{words: []string{"peanut"}, allergen: AllergenPeanuts},
	{words: []string{"dairy", "milk"}, allergen: AllergenDairy},
	{words: []string{"egg"}, allergen: AllergenEggs},
	{words: []string{"shellfish", "shrimp", "crab"}, allergen: AllergenShellfish},
	{words: []string{"wheat", "gluten"}, allergen: AllergenGluten},
	{words: []string{"soy"}, allergen: AllergenSoy},
	{words: []string{"fish"}, allergen: AllergenFish},
	{words: []string{"tree nut", "nuts"}, allergen: AllergenTreeNuts},
	{words: []string{"seafood"}, allergen: AllergenSeafood},
	{words: []string{"meat"}, allergen: AllergenMeat},
	{words: []string{"pork"}, allergen: AllergenPork},
	{words: []string{"chicken"}, allergen: AllergenChicken},
	{words: []string{"beef"}, allergen: AllergenBeef},

	// age groups
	{words: []string{"newborn-friendly"}, criterion: CriterionNewborn},
	{words: []string{"infant-friendly"}, criterion: CriterionInfant},
	{words: []string{"child-friendly"}, criterion: CriterionChild},
	{words: []string{"school-age"}, criterion: CriterionSchoolAge},
	{words: []string{"adolescent"}, criterion: CriterionAdolescent},
	{words: []string{"adult-friendly"}, criterion: CriterionAdult},

	// cooking methods
	{words: []string{"boiled"}, criterion: CriterionBoiled},
	{words: []string{"steamed"}, criterion: CriterionSteamed},
	{words: []string{"fried"}, criterion: CriterionFried},
	{words: []string{"grilled"}, criterion: CriterionGrilled},
	{words: []string{"roasted"}, criterion: CriterionRoasted},
	{words: []string{"stir-fried"}, criterion: CriterionStirFried},
	{words: []string{"deep-fried"}, criterion: CriterionDeepFried},
	{words: []string{"stewed"}, criterion: CriterionStewed},
	{words: []string{"soup"}, criterion: CriterionSoup},

	// food categories
	{words: []string{"main dishes"}, criterion: CriterionMainDishes},
	{words: []string{"noodles"}, criterion: CriterionNoodles},
	{words: []string{"rice dishes"}, criterion: CriterionRiceDishes},
	{words: []string{"street food"}, criterion: CriterionStreetFood},
	{words: []string{"appetizers"}, criterion: CriterionAppetizers},
	{words: []string{"desserts"}, criterion: CriterionDesserts},
	{words: []string{"beverages"}, criterion: CriterionBeverages},
	{words: []string{"vegetables"}, criterion: CriterionVegetables},
	{words: []string{"snacks"}, criterion: CriterionSnacks},
	{words: []string{"fruits"}, criterion: CriterionFruits},
	{words: []string{"staples"}, criterion: CriterionStaples},
	{words: []string{"regional specialties"}, criterion: CriterionRegional},
}

// FilterSet is the parsed, order-independent form of the active UI filters.
type FilterSet struct {
	Criteria  CriterionSet
	Diets     DietSet
	Allergens AllergenSet
}

// ParseFilters matches each free-text filter against the vocabulary.
// Matching is case-insensitive substring containment; unrecognized filters are ignored.
func ParseFilters(filters []string) FilterSet {
	var fs FilterSet
	for _, raw := range filters {
		f := strings.ToLower(strings.TrimSpace(raw))
		if f == "" {
			continue
		}
		for _, entry := range vocabulary {
			if !containsAny(f, entry.words) {
				continue
			}
			fs.Criteria |= CriterionSet(entry.criterion)
			fs.Diets |= DietSet(entry.diet)
			fs.Allergens |= AllergenSet(entry.allergen)
		}
	}
	return fs
}

// Empty reports whether no recognized filter is active.
func (fs FilterSet) Empty() bool {
	return fs.Criteria == 0 && fs.Diets == 0 && fs.Allergens == 0
}

// NormalizeFilters trims, lower-cases, de-duplicates and sorts filter strings.
func NormalizeFilters(filters []string) []string {
	seen := make(map[string]struct{}, len(filters))
	out := make([]string, 0, len(filters))
	for _, f := range filters {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
