package model

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Continent string    `gorm:"type:varchar(64);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Country) TableName() string {
	return "countries"
}

type City struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	MetroAreaKey string    `gorm:"type:varchar(128);not null;index"`
	CountryId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (City) TableName() string {
	return "cities"
}

type Borough struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	CityId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Borough) TableName() string {
	return "boroughs"
}

type Neighborhood struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);not null;index"`
	BoroughId uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Neighborhood) TableName() string {
	return "neighborhoods"
}
