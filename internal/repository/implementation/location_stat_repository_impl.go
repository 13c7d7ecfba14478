package implementation

import (
	"context"
	"errors"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/mapper"
	"place-journal-be/internal/model"
	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationStatRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LocationStatMapper
}

func NewLocationStatRepository(db *gorm.DB) contract.LocationStatRepository {
	return &LocationStatRepositoryImpl{
		db:     db,
		mapper: mapper.NewLocationStatMapper(),
	}
}

func (r *LocationStatRepositoryImpl) Upsert(ctx context.Context, stat *entity.LocationStat) error {
	m := r.mapper.ToModel(stat)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "visit_type"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"visit_count", "rated_count", "average_score", "category_counts", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*stat = *r.mapper.ToEntity(m)
	return nil
}

func (r *LocationStatRepositoryImpl) FindByLocation(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) (*entity.LocationStat, error) {
	var m model.LocationStat
	err := r.db.WithContext(ctx).
		Where("visit_type = ? AND location_id = ?", string(visitType), locationId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LocationStatRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LocationStat, error) {
	var models []*model.LocationStat
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
