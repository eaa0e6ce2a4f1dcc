package recommend_test

import (
	"testing"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
	"github.com/stretchr/testify/assert"
)

func TestScoreFilterTiers(t *testing.T) {
	protein := recommend.ParseFilters([]string{"high-protein"})
	none := recommend.UserContext{}

	tests := []struct {
		name    string
		protein float64
		want    float64
	}{
		{"high", 16, 16 + 50},
		{"medium", 12, 12 + 25},
		{"low", 6, 6 + 10},
		{"none", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := recommend.Dish{Nutrients: recommend.Nutrients{Protein: tt.protein}}
			assert.InDelta(t, tt.want, recommend.Score(d, none, protein), 1e-9)
		})
	}
}

func TestScoreFilterBonusesAdd(t *testing.T) {
	d := recommend.Dish{Nutrients: recommend.Nutrients{Protein: 20, Iron: 4}}
	fs := recommend.ParseFilters([]string{"high-protein", "iron-rich"})

	// base 20 + 15, protein +50, iron +40
	assert.InDelta(t, 125.0, recommend.Score(d, recommend.UserContext{}, fs), 1e-9)
}

func TestScoreAllergyViolation(t *testing.T) {
	user := recommend.NewUserContext([]string{"peanuts"}, nil, 90, 12)
	d := recommend.Dish{
		Name:      "Kare-Kare",
		Allergens: recommend.NewAllergenSet(recommend.AllergenPeanuts),
		Tags:      recommend.NewTagSet(recommend.TagTraditional, recommend.TagMeat),
		Nutrients: recommend.Nutrients{Protein: 30, Iron: 5},
	}
	fs := recommend.ParseFilters([]string{"high-protein", "iron-rich"})

	assert.Equal(t, recommend.AllergyViolationScore, recommend.Score(d, user, fs))

	shellfish := recommend.ParseFilters([]string{"shellfish"})
	prawn := recommend.Dish{Name: "Sinigang na Hipon", Nutrients: recommend.Nutrients{Protein: 20}}
	assert.Equal(t, -1000.0, recommend.Score(prawn, recommend.UserContext{}, shellfish))
}

func TestScoreIsDeterministic(t *testing.T) {
	user := recommend.NewUserContext([]string{"dairy"}, []string{"vegetarian"}, 55, 30)
	d := recommend.Dish{
		Name:      "Ginataang Gulay",
		Tags:      recommend.NewTagSet(recommend.TagVegetarian, recommend.TagBalanced, recommend.TagTraditional),
		Nutrients: recommend.Nutrients{Calories: 310, Protein: 7.3, Iron: 2.1, VitaminA: 640, VitaminC: 22, Fiber: 4.4, Calcium: 91},
	}
	fs := recommend.ParseFilters([]string{"vitamin-a", "fiber-rich", "soup"})

	first := recommend.Score(d, user, fs)
	second := recommend.Score(d, user, fs)
	assert.Equal(t, first, second)
}

func TestScorePreferences(t *testing.T) {
	vegetarian := recommend.NewUserContext(nil, []string{"vegetarian"}, 0, -1)
	pork := recommend.Dish{Name: "Pork Adobo"}
	veg := recommend.Dish{Name: "Pinakbet", Tags: recommend.NewTagSet(recommend.TagVegetarian)}
	plain := recommend.Dish{Name: "Steamed Rice"}

	assert.Equal(t, -100.0, recommend.Score(pork, vegetarian, recommend.FilterSet{}))
	// +30 preference, +5 diversity
	assert.Equal(t, 35.0, recommend.Score(veg, vegetarian, recommend.FilterSet{}))
	assert.Equal(t, 0.0, recommend.Score(plain, vegetarian, recommend.FilterSet{}))

	vegan := recommend.NewUserContext(nil, []string{"vegan"}, 0, -1)
	flan := recommend.Dish{Name: "Leche Flan", Description: "egg yolks and condensed milk"}
	assert.Equal(t, -200.0, recommend.Score(flan, vegan, recommend.FilterSet{}))

	glutenFree := recommend.NewUserContext(nil, []string{"gluten-free"}, 0, -1)
	pancit := recommend.Dish{Name: "Pancit Canton"}
	assert.Equal(t, -100.0, recommend.Score(pancit, glutenFree, recommend.FilterSet{}))

	dairyFree := recommend.NewUserContext(nil, []string{"dairy-free"}, 0, -1)
	df := recommend.Dish{Name: "Buko Juice", Tags: recommend.NewTagSet(recommend.TagDairyFree)}
	assert.Equal(t, 25.0, recommend.Score(df, dairyFree, recommend.FilterSet{}))
}

func TestScoreMalnutrition(t *testing.T) {
	d := recommend.Dish{Nutrients: recommend.Nutrients{Protein: 20, Iron: 4}} // base 35

	tests := []struct {
		risk int
		want float64
	}{
		{90, 35 * 1.5},
		{70, 35 * 1.5},
		{50, 35 + 35*0.3},
		{30, 35 + 35*0.1},
		{29, 35},
	}
	for _, tt := range tests {
		user := recommend.NewUserContext(nil, nil, tt.risk, -1)
		assert.InDelta(t, tt.want, recommend.Score(d, user, recommend.FilterSet{}), 1e-9, "risk %d", tt.risk)
	}
}

func TestScoreAgeBonus(t *testing.T) {
	soft := recommend.Dish{Tags: recommend.NewTagSet(recommend.TagSoft)}
	balanced := recommend.Dish{Tags: recommend.NewTagSet(recommend.TagBalanced)}

	toddler := recommend.NewUserContext(nil, nil, 0, 18)
	preschool := recommend.NewUserContext(nil, nil, 0, 48)
	older := recommend.NewUserContext(nil, nil, 0, 120)
	unknown := recommend.NewUserContext(nil, nil, 0, -1)

	assert.Equal(t, 20.0, recommend.Score(soft, toddler, recommend.FilterSet{}))
	assert.Equal(t, 0.0, recommend.Score(balanced, toddler, recommend.FilterSet{}))
	assert.Equal(t, 15.0, recommend.Score(balanced, preschool, recommend.FilterSet{}))
	assert.Equal(t, 0.0, recommend.Score(balanced, older, recommend.FilterSet{}))
	assert.Equal(t, 0.0, recommend.Score(soft, unknown, recommend.FilterSet{}))
}

func TestScoreDiversity(t *testing.T) {
	d := recommend.Dish{Tags: recommend.NewTagSet(
		recommend.TagVegetarian, recommend.TagVegan, recommend.TagMeat, recommend.TagFish,
		recommend.TagRice, recommend.TagSoup, recommend.TagDessert, recommend.TagSnack, recommend.TagTraditional,
	)}
	assert.Equal(t, 28.0, recommend.Score(d, recommend.UserContext{}, recommend.FilterSet{}))
}
