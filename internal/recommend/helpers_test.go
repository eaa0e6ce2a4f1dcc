package recommend_test

import (
	"context"
	"fmt"

	"github.com/pageza/nutrisaur/backend/internal/recommend"
)

func plainDish(i int) recommend.Dish {
	return recommend.Dish{
		ID:        fmt.Sprintf("d%03d", i),
		Name:      fmt.Sprintf("Dish %d", i),
		Nutrients: recommend.Nutrients{Protein: 4, Calories: 250},
	}
}

func plainCatalog(n int) []recommend.Dish {
	dishes := make([]recommend.Dish, n)
	for i := range dishes {
		dishes[i] = plainDish(i)
	}
	return dishes
}

func ids(list []recommend.RankedDish) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Dish.ID
	}
	return out
}

func dishIDs(list []recommend.Dish) []string {
	out := make([]string, len(list))
	for i, d := range list {
		out[i] = d.ID
	}
	return out
}

var defaultLimits = recommend.Limits{
	UnfilteredPrefix: 100,
	CandidateCap:     150,
	BackfillBelow:    30,
	BackfillTarget:   50,
}

type stubProvider struct {
	user  recommend.UserContext
	err   error
	calls int
}

func (p *stubProvider) UserContext(_ context.Context, _ string) (recommend.UserContext, error) {
	p.calls++
	return p.user, p.err
}
