package dto

import (
	"time"

	"github.com/google/uuid"
)

// VisitScoredMessage is the event payload published whenever a visit gains
// or changes a score; the stats consumer recomputes that location's
// aggregates from it.
type VisitScoredMessage struct {
	VisitType  string    `json:"visit_type"`
	LocationId uuid.UUID `json:"location_id"`
}

type LocationStatResponse struct {
	VisitType      string         `json:"visit_type"`
	LocationId     uuid.UUID      `json:"location_id"`
	VisitCount     int            `json:"visit_count"`
	RatedCount     int            `json:"rated_count"`
	AverageScore   float64        `json:"average_score"`
	CategoryCounts map[string]int `json:"category_counts"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
