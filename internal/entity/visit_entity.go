package entity

import (
	"time"

	"place-journal-be/pkg/ranking"

	"github.com/google/uuid"
)

type VisitType string

const (
	VisitTypeNeighborhood VisitType = "neighborhood"
	VisitTypeCountry      VisitType = "country"
)

// Visit is one user's judgment of one location. Exactly one of
// NeighborhoodId / CountryId is set, discriminated by VisitType.
type Visit struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	VisitType      VisitType
	NeighborhoodId *uuid.UUID
	CountryId      *uuid.UUID
	Visited        bool
	Notes          string
	VisitDate      *time.Time
	Score          *float64
	Category       ranking.Category
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// LocationId returns whichever location reference is set.
func (v *Visit) LocationId() *uuid.UUID {
	if v.VisitType == VisitTypeCountry {
		return v.CountryId
	}
	return v.NeighborhoodId
}
