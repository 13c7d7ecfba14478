package dto

import (
	"time"

	"github.com/google/uuid"
)

type MaterializeVisitRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type VisitResponse struct {
	Id           uuid.UUID  `json:"id"`
	VisitType    string     `json:"visit_type"`
	LocationId   uuid.UUID  `json:"location_id"`
	LocationName string     `json:"location_name"`
	Visited      bool       `json:"visited"`
	Notes        string     `json:"notes,omitempty"`
	VisitDate    *time.Time `json:"visit_date,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	Category     string     `json:"category,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
