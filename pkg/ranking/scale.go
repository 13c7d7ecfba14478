package ranking

import "fmt"

// Category is the coarse rating band a visit belongs to. Every category owns
// a fixed, non-overlapping slice of the 0-10 score scale.
type Category string

const (
	CategoryBad  Category = "bad"
	CategoryMid  Category = "mid"
	CategoryGood Category = "good"
)

// Categories lists all bands from worst to best.
var Categories = []Category{CategoryBad, CategoryMid, CategoryGood}

var bounds = map[Category][2]float64{
	CategoryBad:  {0.0, 3.9},
	CategoryMid:  {4.0, 6.9},
	CategoryGood: {7.0, 10.0},
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := bounds[c]; !ok {
		return "", fmt.Errorf("invalid category %q", s)
	}
	return c, nil
}

// Bounds returns the closed [min, max] score interval for a category.
func Bounds(c Category) (min, max float64) {
	b := bounds[c]
	return b[0], b[1]
}

// Midpoint returns the center of a category's score interval.
func Midpoint(c Category) float64 {
	min, max := Bounds(c)
	return (min + max) / 2
}

// CategoryForScore derives the category a score falls into.
func CategoryForScore(score float64) Category {
	switch {
	case score >= 7.0:
		return CategoryGood
	case score >= 4.0:
		return CategoryMid
	default:
		return CategoryBad
	}
}
