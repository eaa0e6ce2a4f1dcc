package recommend

import (
	"fmt"
	"sort"
)

// RankedDish is a dish with its score and 1-based position in the final ordering.
type RankedDish struct {
	Dish  Dish
	Score float64
	Rank  int
}

// RankLabel renders the rank for display: "1st", "2nd", "3rd", then "#n".
func (r RankedDish) RankLabel() string {
	switch r.Rank {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("#%d", r.Rank)
	}
}

// ScoreLabel renders the score with one decimal place.
func (r RankedDish) ScoreLabel() string {
	return fmt.Sprintf("%.1f pts", r.Score)
}

// Rank orders scored dishes by descending score, keeping candidate order on ties,
// drops non-positive scores, caps the list at limit (0 means no cap) and assigns ranks.
func Rank(scored []RankedDish, limit int) []RankedDish {
	out := make([]RankedDish, 0, len(scored))
	for _, r := range scored {
		if r.Score > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
