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
)

type VisitRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VisitMapper
}

func NewVisitRepository(db *gorm.DB) contract.VisitRepository {
	return &VisitRepositoryImpl{
		db:     db,
		mapper: mapper.NewVisitMapper(),
	}
}

func (r *VisitRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VisitRepositoryImpl) Create(ctx context.Context, visit *entity.Visit) error {
	m := r.mapper.ToModel(visit)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*visit = *r.mapper.ToEntity(m)
	return nil
}

func (r *VisitRepositoryImpl) Update(ctx context.Context, visit *entity.Visit) error {
	m := r.mapper.ToModel(visit)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*visit = *r.mapper.ToEntity(m)
	return nil
}

func (r *VisitRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Visit{}, id).Error
}

func (r *VisitRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visit, error) {
	var m model.Visit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VisitRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visit, error) {
	var models []*model.Visit
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VisitRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Visit{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BulkUpdateScores runs the whole rebalance batch inside one transaction so
// a mid-batch failure never leaves a partially redistributed category.
func (r *VisitRepositoryImpl) BulkUpdateScores(ctx context.Context, updates []contract.ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&model.Visit{}).
				Where("id = ?", u.VisitId).
				Update("score", u.Score).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
