package recommend

// allergenGroup ties the allergens a user can declare to the dish evidence that
// triggers exclusion: structured allergens, catalog tags and name/description keywords.
// The keyword lists are a heuristic for entries without structured allergen data and
// can both over- and under-match.
type allergenGroup struct {
	name      string
	triggers  AllergenSet
	allergens AllergenSet
	tags      TagSet
	keywords  []string
}

var allergenGroups = []allergenGroup{
	{
		name:      "seafood",
		triggers:  NewAllergenSet(AllergenSeafood, AllergenFish, AllergenShellfish),
		allergens: NewAllergenSet(AllergenSeafood, AllergenFish, AllergenShellfish),
		tags:      NewTagSet(TagFish, TagSeafood, TagShellfish),
		keywords: []string{
			"bangus", "tilapia", "galunggong", "pusit", "hipon", "alimango", "isda",
			"fish", "shrimp", "crab", "lobster", "oyster", "mussel", "clam",
		},
	},
	{
		name:      "meat",
		triggers:  NewAllergenSet(AllergenMeat, AllergenPork, AllergenChicken, AllergenBeef),
		allergens: NewAllergenSet(AllergenMeat, AllergenPork, AllergenChicken, AllergenBeef),
		tags:      NewTagSet(TagPork, TagChicken, TagBeef),
		keywords:  []string{"pork", "baboy", "lechon", "chicken", "manok", "beef", "baka", "meat"},
	},
	{
		name:      "peanuts",
		triggers:  NewAllergenSet(AllergenPeanuts),
		allergens: NewAllergenSet(AllergenPeanuts),
		tags:      NewTagSet(TagPeanut),
		keywords:  []string{"peanut", "mani", "groundnut"},
	},
	{
		name:      "dairy",
		triggers:  NewAllergenSet(AllergenDairy),
		allergens: NewAllergenSet(AllergenDairy),
		tags:      NewTagSet(TagDairy),
		keywords:  []string{"milk", "cheese", "yogurt", "butter", "cream"},
	},
	{
		name:      "eggs",
		triggers:  NewAllergenSet(AllergenEggs),
		allergens: NewAllergenSet(AllergenEggs),
		tags:      NewTagSet(TagEgg),
		keywords:  []string{"egg", "itlog", "torta"},
	},
	{
		name:      "gluten",
		triggers:  NewAllergenSet(AllergenGluten),
		allergens: NewAllergenSet(AllergenGluten),
		tags:      NewTagSet(TagGluten),
		keywords:  []string{"wheat", "bread", "pasta", "noodle"},
	},
	{
		name:      "soy",
		triggers:  NewAllergenSet(AllergenSoy),
		allergens: NewAllergenSet(AllergenSoy),
		tags:      NewTagSet(TagSoy),
		keywords:  []string{"soy", "tofu", "miso"},
	},
	{
		name:      "tree nuts",
		triggers:  NewAllergenSet(AllergenTreeNuts),
		allergens: NewAllergenSet(AllergenTreeNuts),
		tags:      NewTagSet(TagNut),
		keywords:  []string{"almond", "cashew", "walnut", "pecan", "hazelnut"},
	},
}

func (g allergenGroup) matches(d Dish, text string) bool {
	if d.Allergens.HasAny(g.allergens) || d.Tags.HasAny(g.tags) {
		return true
	}
	return containsAny(text, g.keywords)
}

// matchedGroup returns the first allergen group triggered by the declared allergens
// that the dish matches.
func matchedGroup(d Dish, declared AllergenSet) (string, bool) {
	if declared.Empty() {
		return "", false
	}
	text := d.text()
	for _, g := range allergenGroups {
		if declared.HasAny(g.triggers) && g.matches(d, text) {
			return g.name, true
		}
	}
	return "", false
}

func containsAllergen(d Dish, declared AllergenSet) bool {
	_, ok := matchedGroup(d, declared)
	return ok
}

// IsExcluded reports whether the dish is forbidden by the user's declared allergies.
func IsExcluded(d Dish, user UserContext) bool {
	return containsAllergen(d, user.Allergies)
}

// AvoidsAllergen reports whether the dish hits an allergen named in the active filters.
// Allergen filters behave like per-request allergies.
func AvoidsAllergen(d Dish, filters FilterSet) bool {
	return containsAllergen(d, filters.Allergens)
}

// ViolatesDiet reports whether the dish lacks the structured tag a strict dietary
// filter requires. Halal and kosher have no catalog tag and never exclude.
func ViolatesDiet(d Dish, filters FilterSet) bool {
	diets := filters.Diets
	if diets == 0 {
		return false
	}
	if (diets.Has(DietVegetarian) || diets.Has(DietVegan)) &&
		!d.Tags.HasAny(NewTagSet(TagVegetarian, TagVegan)) {
		return true
	}
	if diets.Has(DietPescatarian) &&
		!d.Tags.HasAny(NewTagSet(TagPescatarian, TagVegetarian, TagVegan, TagFish, TagSeafood)) {
		return true
	}
	if diets.Has(DietGlutenFree) && !d.Tags.Has(TagGlutenFree) {
		return true
	}
	if diets.Has(DietDairyFree) && !d.Tags.Has(TagDairyFree) {
		return true
	}
	if diets.Has(DietNutFree) && !d.Tags.Has(TagNutFree) {
		return true
	}
	return false
}

// blocked combines every hard exclusion applied before scoring.
func blocked(d Dish, user UserContext, filters FilterSet) bool {
	return IsExcluded(d, user) || AvoidsAllergen(d, filters) || ViolatesDiet(d, filters)
}

var (
	meatKeywords          = []string{"pork", "beef", "chicken", "meat", "baboy", "baka", "manok"}
	animalProductKeywords = append([]string{"milk", "cheese", "egg", "butter", "yogurt", "honey"}, meatKeywords...)
	glutenKeywords        = []string{"wheat", "flour", "bread", "noodles", "pasta", "pancit"}
	dairyKeywords         = []string{"milk", "cheese", "butter", "yogurt", "cream", "gatas"}
)

func mentionsAny(d Dish, words []string) bool {
	return containsAny(d.text(), words)
}
