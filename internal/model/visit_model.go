package model

import (
	"time"

	"github.com/google/uuid"
)

type Visit struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID  `gorm:"type:uuid;not null;index:idx_visits_user_type"`
	VisitType      string     `gorm:"type:varchar(32);not null;index:idx_visits_user_type"`
	NeighborhoodId *uuid.UUID `gorm:"type:uuid;index"`
	CountryId      *uuid.UUID `gorm:"type:uuid;index"`
	Visited        bool       `gorm:"not null;default:false"`
	Notes          string     `gorm:"type:text"`
	VisitDate      *time.Time
	Score          *float64  `gorm:"type:numeric(6,4)"`
	Category       string    `gorm:"type:varchar(16);index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Visit) TableName() string {
	return "visits"
}
