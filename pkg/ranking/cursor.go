package ranking

import "math/bits"

// Cursor is one in-flight binary search over a list of existing visits sorted
// descending by score. Low/High/Mid are indexes into that list; High is an
// exclusive bound. When Low catches up with High the search is finished and
// Low is the 0-based rank (from the top) at which the new item inserts.
type Cursor struct {
	Low       int `json:"current_low"`
	High      int `json:"current_high"`
	Mid       int `json:"current_mid"`
	Completed int `json:"comparisons_completed"`
	Total     int `json:"total_comparisons"`
}

// NewCursor starts a search over a list of n items. For n == 0 the cursor is
// already done.
func NewCursor(n int) Cursor {
	return Cursor{
		Low:   0,
		High:  n,
		Mid:   n / 2,
		Total: TotalComparisons(n),
	}
}

// TotalComparisons is the worst-case number of comparisons for n items,
// ceil(log2(n+1)). bits.Len gives this exactly, no float rounding.
func TotalComparisons(n int) int {
	return bits.Len(uint(n))
}

// Done reports whether the search has converged.
func (c *Cursor) Done() bool {
	return c.Low >= c.High
}

// Advance records one answer and moves the cursor. newBetter means the new
// location won the head-to-head against the item at Mid. Returns true when
// the search has converged.
func (c *Cursor) Advance(newBetter bool) bool {
	c.Completed++
	if newBetter {
		c.High = c.Mid
	} else {
		c.Low = c.Mid + 1
	}
	if c.Low >= c.High {
		return true
	}
	c.Mid = (c.Low + c.High) / 2
	return false
}

// InsertionIndex is only meaningful once Done.
func (c *Cursor) InsertionIndex() int {
	return c.Low
}
