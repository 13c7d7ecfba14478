package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LocationStat struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VisitType      string         `gorm:"type:varchar(32);not null;uniqueIndex:idx_location_stats_location"`
	LocationId     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_location_stats_location"`
	VisitCount     int            `gorm:"not null;default:0"`
	RatedCount     int            `gorm:"not null;default:0"`
	AverageScore   float64        `gorm:"type:numeric(6,4);not null;default:0"`
	CategoryCounts datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (LocationStat) TableName() string {
	return "location_stats"
}
