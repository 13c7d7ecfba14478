package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartComparisonRequest struct {
	VisitType        string     `json:"visit_type" validate:"required,oneof=neighborhood country"`
	NeighborhoodName string     `json:"neighborhood_name"`
	BoroughName      string     `json:"borough_name"`
	CountryName      string     `json:"country_name"`
	Visited          bool       `json:"visited"`
	Notes            string     `json:"notes"`
	VisitDate        *time.Time `json:"visit_date"`
	// Category pre-selects the band; empty means "derive from the score".
	Category string `json:"category" validate:"omitempty,oneof=bad mid good"`
	// RerankVisitId excludes the visit being re-ranked from its own
	// candidate pool.
	RerankVisitId *uuid.UUID `json:"rerank_visit_id"`
}

type SubmitComparisonRequest struct {
	NewLocationBetter *bool `json:"new_location_better" validate:"required"`
}

type ComparisonProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// ComparisonPrompt asks the client one head-to-head question.
type ComparisonPrompt struct {
	VisitId         uuid.UUID          `json:"visit_id"`
	LocationName    string             `json:"location_name"`
	NewLocationName string             `json:"new_location_name"`
	Progress        ComparisonProgress `json:"progress"`
}

type ComparisonResult struct {
	Score           float64 `json:"score"`
	Category        string  `json:"category"`
	InsertionIndex  int     `json:"insertion_index"`
	ComparisonsUsed int     `json:"comparisons_used"`
}

// ComparisonStateResponse is returned by both session start and comparison
// submission: exactly one of Comparison / Result is set.
type ComparisonStateResponse struct {
	SessionId  uuid.UUID         `json:"session_id"`
	IsComplete bool              `json:"is_complete"`
	Comparison *ComparisonPrompt `json:"comparison,omitempty"`
	Result     *ComparisonResult `json:"result,omitempty"`
}

type SessionComparisonEntry struct {
	VisitId           uuid.UUID `json:"visit_id"`
	NewLocationBetter bool      `json:"new_location_better"`
	ComparedAt        time.Time `json:"compared_at"`
}

type ShowSessionResponse struct {
	Id                   uuid.UUID                `json:"id"`
	VisitType            string                   `json:"visit_type"`
	NewLocationName      string                   `json:"new_location_name"`
	IsComplete           bool                     `json:"is_complete"`
	ComparisonsCompleted int                      `json:"comparisons_completed"`
	TotalComparisons     int                      `json:"total_comparisons"`
	Comparisons          []SessionComparisonEntry `json:"comparisons"`
	FinalScore           *float64                 `json:"final_score,omitempty"`
	FinalCategory        string                   `json:"final_category,omitempty"`
	ExpiresAt            time.Time                `json:"expires_at"`
}

type RankedVisit struct {
	Id           uuid.UUID  `json:"id"`
	VisitType    string     `json:"visit_type"`
	LocationId   uuid.UUID  `json:"location_id"`
	LocationName string     `json:"location_name"`
	Score        float64    `json:"score"`
	Category     string     `json:"category"`
	Visited      bool       `json:"visited"`
	VisitDate    *time.Time `json:"visit_date,omitempty"`
}

// RankingsResponse groups a user's ranked visits into the three fixed
// category buckets, each sorted descending by score.
type RankingsResponse struct {
	Good []RankedVisit `json:"good"`
	Mid  []RankedVisit `json:"mid"`
	Bad  []RankedVisit `json:"bad"`
}

type GlobalPositionResponse struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

type RebalanceRequest struct {
	VisitType string `json:"visit_type" validate:"required,oneof=neighborhood country"`
	Category  string `json:"category" validate:"required,oneof=bad mid good"`
}

type RebalanceResponse struct {
	AffectedCount int `json:"affected_count"`
}
