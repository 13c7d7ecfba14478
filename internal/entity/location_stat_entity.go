package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationStat is the aggregate popularity/rating row for one location,
// maintained by the stats consumer whenever a visit is scored.
type LocationStat struct {
	Id             uuid.UUID
	VisitType      VisitType
	LocationId     uuid.UUID
	VisitCount     int
	RatedCount     int
	AverageScore   float64
	CategoryCounts map[string]int
	UpdatedAt      time.Time
}
