package ranking

import "math"

// CollisionEpsilon is the smallest score gap two adjacent visits may have
// before an insertion between them forces a rebalance of their category.
const CollisionEpsilon = 0.0001

// ScoredItem is the minimal view of an existing visit the placement
// arithmetic needs. Items are always ordered descending by score.
type ScoredItem struct {
	Score    float64
	Category Category
}

// Placement is the outcome of dropping a new item at an insertion index.
type Placement struct {
	Score    float64
	Category Category
	// Collision means the neighboring scores left no room to insert between
	// them. The caller must rebalance Category and re-run Place with the
	// redistributed scores.
	Collision bool
}

// Place converts a finished binary search into a score and category.
//
// preselected, when non-nil, is used as the final category verbatim even if
// the boundary-adjusted score lands outside its band. Without a preselection
// the boundary adjustment is clamped against the existing neighbor's own
// category bounds, so a candidate that beats everything is still capped at
// that neighbor's max and never promoted into a higher band by wins alone.
func Place(items []ScoredItem, insertionIndex int, preselected *Category) Placement {
	n := len(items)

	var score float64
	switch {
	case n == 0:
		c := CategoryGood
		if preselected != nil {
			c = *preselected
		}
		score = Midpoint(c)

	case insertionIndex == 0:
		best := items[0]
		band := best.Category
		if preselected != nil {
			band = *preselected
		}
		_, max := Bounds(band)
		score = math.Min(best.Score+1.0, max)

	case insertionIndex == n:
		worst := items[n-1]
		floor := worst.Category
		if preselected != nil {
			floor = *preselected
		}
		min, _ := Bounds(floor)
		score = math.Max(worst.Score-1.0, min)

	default:
		upper := items[insertionIndex-1]
		lower := items[insertionIndex]
		if math.Abs(upper.Score-lower.Score) < CollisionEpsilon {
			return Placement{Category: upper.Category, Collision: true}
		}
		score = (upper.Score + lower.Score) / 2
	}

	category := CategoryForScore(score)
	if preselected != nil {
		category = *preselected
	}
	return Placement{Score: score, Category: category}
}

// SpreadScores returns the evenly distributed target scores for count items
// in a category, rank 0 (highest) first. The top item lands exactly on the
// band's max, the bottom on its min. Callers only redistribute for count >= 2.
func SpreadScores(c Category, count int) []float64 {
	min, max := Bounds(c)
	scores := make([]float64, count)
	for i := 0; i < count; i++ {
		scores[i] = min + (max-min)*float64(count-1-i)/float64(count-1)
	}
	return scores
}
