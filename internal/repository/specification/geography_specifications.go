package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByMetroAreaKey struct {
	MetroAreaKey string
}

func (s ByMetroAreaKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("metro_area_key = ?", s.MetroAreaKey)
}

type ByContinent struct {
	Continent string
}

func (s ByContinent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("continent = ?", s.Continent)
}

type ByCityIDs struct {
	CityIDs []uuid.UUID
}

func (s ByCityIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("city_id IN ?", s.CityIDs)
}

type ByBoroughIDs struct {
	BoroughIDs []uuid.UUID
}

func (s ByBoroughIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("borough_id IN ?", s.BoroughIDs)
}
