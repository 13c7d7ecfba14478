package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByVisitType struct {
	VisitType string
}

func (s ByVisitType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("visit_type = ?", s.VisitType)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ScorePresent keeps only visits that have been ranked.
type ScorePresent struct{}

func (s ScorePresent) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("score IS NOT NULL")
}

type ByNeighborhoodIDs struct {
	NeighborhoodIDs []uuid.UUID
}

func (s ByNeighborhoodIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("neighborhood_id IN ?", s.NeighborhoodIDs)
}

type ByNeighborhoodID struct {
	NeighborhoodID uuid.UUID
}

func (s ByNeighborhoodID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("neighborhood_id = ?", s.NeighborhoodID)
}

type ByCountryIDs struct {
	CountryIDs []uuid.UUID
}

func (s ByCountryIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("country_id IN ?", s.CountryIDs)
}

type ByCountryID struct {
	CountryID uuid.UUID
}

func (s ByCountryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("country_id = ?", s.CountryID)
}

// OrderByScoreDesc is the canonical ranking order: best first.
type OrderByScoreDesc struct{}

func (s OrderByScoreDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("score DESC")
}
