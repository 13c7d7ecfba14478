package entity

import (
	"time"

	"place-journal-be/pkg/ranking"

	"github.com/google/uuid"
)

// SessionTTL is how long a comparison session may stay open before the
// store expires it.
const SessionTTL = 24 * time.Hour

// NewLocation carries the candidate item's identity fields for the lifetime
// of a session. Name fields are raw user input; ids are resolved only when
// the session materializes into a visit.
type NewLocation struct {
	VisitType        VisitType         `json:"visit_type"`
	NeighborhoodName string            `json:"neighborhood_name,omitempty"`
	BoroughName      string            `json:"borough_name,omitempty"`
	CountryName      string            `json:"country_name,omitempty"`
	Visited          bool              `json:"visited"`
	Notes            string            `json:"notes,omitempty"`
	VisitDate        *time.Time        `json:"visit_date,omitempty"`
	Category         *ranking.Category `json:"category,omitempty"`
}

type ComparisonEntry struct {
	VisitId           uuid.UUID `json:"visit_id"`
	NewLocationBetter bool      `json:"new_location_better"`
	ComparedAt        time.Time `json:"compared_at"`
}

// ComparisonSession is the persisted binary-search cursor for inserting one
// new location into a user's ordered preference list. SortedVisitIds holds
// opaque visit ids ordered descending by score at session start; the
// referenced visits are re-read whenever a current score is needed.
type ComparisonSession struct {
	Id             uuid.UUID         `json:"id"`
	UserId         uuid.UUID         `json:"user_id"`
	NewLocation    NewLocation       `json:"new_location"`
	SortedVisitIds []uuid.UUID       `json:"sorted_visit_ids"`
	Cursor         ranking.Cursor    `json:"cursor"`
	Comparisons    []ComparisonEntry `json:"comparisons"`
	IsComplete     bool              `json:"is_complete"`
	FinalScore     *float64          `json:"final_score,omitempty"`
	FinalCategory  ranking.Category  `json:"final_category,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ExpiresAt      time.Time         `json:"expires_at"`
}
