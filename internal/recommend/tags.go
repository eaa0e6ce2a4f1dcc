package recommend

import (
	"sort"
	"strings"
)

// Tag is a structured label carried by a catalog dish.
type Tag uint64

// TagSet is a bitset of Tags.
type TagSet uint64

const (
	TagVegetarian Tag = 1 << iota
	TagVegan
	TagPescatarian
	TagGlutenFree
	TagDairyFree
	TagNutFree
	TagHighProtein
	TagEnergyDense
	TagHighIron
	TagLowCalorie
	TagFish
	TagSeafood
	TagShellfish
	TagPork
	TagBeef
	// TagChicken shares the CHI code with the child-friendly label in the catalog.
	TagChicken
	TagMeat
	TagPeanut
	TagDairy
	TagEgg
	TagGluten
	TagSoy
	TagNut
	TagPureed
	TagSoft
	TagLiquid
	TagEasyToEat
	TagBalanced
	TagAdult
	TagBoiled
	TagSteamed
	TagFried
	TagGrilled
	TagRoasted
	TagStirFried
	TagDeepFried
	TagStewed
	TagSoup
	TagNoodles
	TagRice
	TagStreetFood
	TagAppetizer
	TagDessert
	TagBeverage
	TagVegetable
	TagSnack
	TagFruit
	TagStaple
	TagRegional
	TagTraditional
)

var tagCodes = map[Tag]string{
	TagVegetarian:  "VEG",
	TagVegan:       "VGN",
	TagPescatarian: "PES",
	TagGlutenFree:  "GF",
	TagDairyFree:   "DF",
	TagNutFree:     "NF",
	TagHighProtein: "HP",
	TagEnergyDense: "ED",
	TagHighIron:    "HI",
	TagLowCalorie:  "LC",
	TagFish:        "FISH",
	TagSeafood:     "SEA",
	TagShellfish:   "SHELL",
	TagPork:        "PORK",
	TagBeef:        "BEEF",
	TagChicken:     "CHI",
	TagMeat:        "MEA",
	TagPeanut:      "PEANUT",
	TagDairy:       "DAIRY",
	TagEgg:         "EGG",
	TagGluten:      "GLUTEN",
	TagSoy:         "SOY",
	TagNut:         "NUT",
	TagPureed:      "PURE",
	TagSoft:        "SOF",
	TagLiquid:      "LIQ",
	TagEasyToEat:   "EZ",
	TagBalanced:    "BAL",
	TagAdult:       "ADU",
	TagBoiled:      "BOI",
	TagSteamed:     "STE",
	TagFried:       "FRI",
	TagGrilled:     "GRI",
	TagRoasted:     "ROA",
	TagStirFried:   "STI",
	TagDeepFried:   "DFR",
	TagStewed:      "STW",
	TagSoup:        "SOUP",
	TagNoodles:     "NOO",
	TagRice:        "RIC",
	TagStreetFood:  "STR",
	TagAppetizer:   "APP",
	TagDessert:     "DES",
	TagBeverage:    "BEV",
	TagVegetable:   "VEGG",
	TagSnack:       "SNK",
	TagFruit:       "FRT",
	TagStaple:      "STA",
	TagRegional:    "REG",
	TagTraditional: "TR",
}

var tagsByCode = func() map[string]Tag {
	m := make(map[string]Tag, len(tagCodes))
	for t, code := range tagCodes {
		m[code] = t
	}
	return m
}()

// String returns the catalog code of the tag.
func (t Tag) String() string {
	if code, ok := tagCodes[t]; ok {
		return code
	}
	return "UNKNOWN"
}

// ParseTag resolves a catalog code such as "VEG" or "soup". Unknown codes return false.
func ParseTag(code string) (Tag, bool) {
	t, ok := tagsByCode[strings.ToUpper(strings.TrimSpace(code))]
	return t, ok
}

// NewTagSet builds a set from individual tags.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= TagSet(t)
	}
	return s
}

// ParseTagSet converts catalog codes into a set, skipping unknown codes.
func ParseTagSet(codes []string) TagSet {
	var s TagSet
	for _, c := range codes {
		if t, ok := ParseTag(c); ok {
			s |= TagSet(t)
		}
	}
	return s
}

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool { return s&TagSet(t) != 0 }

// HasAny reports whether any tag of other is in the set.
func (s TagSet) HasAny(other TagSet) bool { return s&other != 0 }

// Union returns s ∪ other.
func (s TagSet) Union(other TagSet) TagSet { return s | other }

// Codes returns the catalog codes of the set in a stable order.
func (s TagSet) Codes() []string {
	codes := make([]string, 0, 8)
	for t, code := range tagCodes {
		if s.Has(t) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// Allergen is a structured allergen category.
type Allergen uint16

// AllergenSet is a bitset of Allergens.
type AllergenSet uint16

const (
	AllergenPeanuts Allergen = 1 << iota
	AllergenDairy
	AllergenEggs
	AllergenShellfish
	AllergenGluten
	AllergenSoy
	AllergenFish
	AllergenTreeNuts
	AllergenSeafood
	AllergenMeat
	AllergenPork
	AllergenChicken
	AllergenBeef
)

var allergenNames = map[Allergen]string{
	AllergenPeanuts:   "peanuts",
	AllergenDairy:     "dairy",
	AllergenEggs:      "eggs",
	AllergenShellfish: "shellfish",
	AllergenGluten:    "gluten",
	AllergenSoy:       "soy",
	AllergenFish:      "fish",
	AllergenTreeNuts:  "tree nuts",
	AllergenSeafood:   "seafood",
	AllergenMeat:      "meat",
	AllergenPork:      "pork",
	AllergenChicken:   "chicken",
	AllergenBeef:      "beef",
}

// allergenAliases maps user-entered words onto structured allergens. Order matters:
// longer, more specific words are checked before the words they contain.
var allergenAliases = []struct {
	word     string
	allergen Allergen
}{
	{"tree nut", AllergenTreeNuts},
	{"almond", AllergenTreeNuts},
	{"cashew", AllergenTreeNuts},
	{"walnut", AllergenTreeNuts},
	{"peanut", AllergenPeanuts},
	{"groundnut", AllergenPeanuts},
	{"shellfish", AllergenShellfish},
	{"shrimp", AllergenShellfish},
	{"crab", AllergenShellfish},
	{"lobster", AllergenShellfish},
	{"seafood", AllergenSeafood},
	{"fish", AllergenFish},
	{"dairy", AllergenDairy},
	{"milk", AllergenDairy},
	{"cheese", AllergenDairy},
	{"lactose", AllergenDairy},
	{"egg", AllergenEggs},
	{"gluten", AllergenGluten},
	{"wheat", AllergenGluten},
	{"soy", AllergenSoy},
	{"pork", AllergenPork},
	{"chicken", AllergenChicken},
	{"beef", AllergenBeef},
	{"meat", AllergenMeat},
}

// String returns the canonical name of the allergen.
func (a Allergen) String() string {
	if name, ok := allergenNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAllergen resolves a free-text allergen ("Peanuts", "shrimp", "tree nuts").
// A bare "nuts" resolves to tree nuts.
func ParseAllergen(text string) (Allergen, bool) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, false
	}
	for _, alias := range allergenAliases {
		if strings.Contains(s, alias.word) {
			return alias.allergen, true
		}
	}
	if strings.Contains(s, "nut") {
		return AllergenTreeNuts, true
	}
	return 0, false
}

// NewAllergenSet builds a set from individual allergens.
func NewAllergenSet(allergens ...Allergen) AllergenSet {
	var s AllergenSet
	for _, a := range allergens {
		s |= AllergenSet(a)
	}
	return s
}

// ParseAllergenSet converts free-text allergen names into a set, skipping unknown ones.
func ParseAllergenSet(names []string) AllergenSet {
	var s AllergenSet
	for _, n := range names {
		if a, ok := ParseAllergen(n); ok {
			s |= AllergenSet(a)
		}
	}
	return s
}

// Has reports whether a is in the set.
func (s AllergenSet) Has(a Allergen) bool { return s&AllergenSet(a) != 0 }

// HasAny reports whether the sets intersect.
func (s AllergenSet) HasAny(other AllergenSet) bool { return s&other != 0 }

// Empty reports whether the set has no members.
func (s AllergenSet) Empty() bool { return s == 0 }

// Names returns the canonical allergen names in the set, sorted.
func (s AllergenSet) Names() []string {
	names := make([]string, 0, 4)
	for a, name := range allergenNames {
		if s.Has(a) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Diet is a dietary restriction a user can declare or a filter can request.
type Diet uint8

// DietSet is a bitset of Diets.
type DietSet uint8

const (
	DietVegetarian Diet = 1 << iota
	DietVegan
	DietPescatarian
	DietHalal
	DietKosher
	DietGlutenFree
	DietDairyFree
	DietNutFree
)

var dietNames = map[Diet]string{
	DietVegetarian:  "vegetarian",
	DietVegan:       "vegan",
	DietPescatarian: "pescatarian",
	DietHalal:       "halal",
	DietKosher:      "kosher",
	DietGlutenFree:  "gluten-free",
	DietDairyFree:   "dairy-free",
	DietNutFree:     "nut-free",
}

// String returns the canonical name of the diet.
func (d Diet) String() string {
	if name, ok := dietNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDietSet reads declared dietary preferences. Matching is substring based:
// "gluten" and "dairy" alone select the gluten-free and dairy-free diets.
func ParseDietSet(prefs []string) DietSet {
	var s DietSet
	for _, p := range prefs {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(p, "vegetarian") {
			s |= DietSet(DietVegetarian)
		}
		if strings.Contains(p, "vegan") {
			s |= DietSet(DietVegan)
		}
		if strings.Contains(p, "pescatarian") {
			s |= DietSet(DietPescatarian)
		}
		if strings.Contains(p, "halal") {
			s |= DietSet(DietHalal)
		}
		if strings.Contains(p, "kosher") {
			s |= DietSet(DietKosher)
		}
		if strings.Contains(p, "gluten") {
			s |= DietSet(DietGlutenFree)
		}
		if strings.Contains(p, "dairy") {
			s |= DietSet(DietDairyFree)
		}
		if strings.Contains(p, "nut-free") {
			s |= DietSet(DietNutFree)
		}
	}
	return s
}

// Has reports whether d is in the set.
func (s DietSet) Has(d Diet) bool { return s&DietSet(d) != 0 }

// Names returns the canonical diet names in the set, sorted.
func (s DietSet) Names() []string {
	names := make([]string, 0, 2)
	for d, name := range dietNames {
		if s.Has(d) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
