package implementation

import (
	"context"
	"errors"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/mapper"
	"place-journal-be/internal/model"
	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecs(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type CountryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeographyMapper
}

func NewCountryRepository(db *gorm.DB) contract.CountryRepository {
	return &CountryRepositoryImpl{db: db, mapper: mapper.NewGeographyMapper()}
}

func (r *CountryRepositoryImpl) Create(ctx context.Context, country *entity.Country) error {
	m := &model.Country{Id: country.Id, Name: country.Name, Continent: country.Continent}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*country = *r.mapper.CountryToEntity(m)
	return nil
}

func (r *CountryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Country, error) {
	var m model.Country
	if err := applySpecs(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CountryToEntity(&m), nil
}

func (r *CountryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Country, error) {
	var models []*model.Country
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CountriesToEntities(models), nil
}

type CityRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeographyMapper
}

func NewCityRepository(db *gorm.DB) contract.CityRepository {
	return &CityRepositoryImpl{db: db, mapper: mapper.NewGeographyMapper()}
}

func (r *CityRepositoryImpl) Create(ctx context.Context, city *entity.City) error {
	m := &model.City{Id: city.Id, Name: city.Name, MetroAreaKey: city.MetroAreaKey, CountryId: city.CountryId}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*city = *r.mapper.CityToEntity(m)
	return nil
}

func (r *CityRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.City, error) {
	var m model.City
	if err := applySpecs(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CityToEntity(&m), nil
}

func (r *CityRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.City, error) {
	var models []*model.City
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.CitiesToEntities(models), nil
}

type BoroughRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeographyMapper
}

func NewBoroughRepository(db *gorm.DB) contract.BoroughRepository {
	return &BoroughRepositoryImpl{db: db, mapper: mapper.NewGeographyMapper()}
}

func (r *BoroughRepositoryImpl) Create(ctx context.Context, borough *entity.Borough) error {
	m := &model.Borough{Id: borough.Id, Name: borough.Name, CityId: borough.CityId}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*borough = *r.mapper.BoroughToEntity(m)
	return nil
}

func (r *BoroughRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Borough, error) {
	var m model.Borough
	if err := applySpecs(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.BoroughToEntity(&m), nil
}

func (r *BoroughRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Borough, error) {
	var models []*model.Borough
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.BoroughsToEntities(models), nil
}

type NeighborhoodRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeographyMapper
}

func NewNeighborhoodRepository(db *gorm.DB) contract.NeighborhoodRepository {
	return &NeighborhoodRepositoryImpl{db: db, mapper: mapper.NewGeographyMapper()}
}

func (r *NeighborhoodRepositoryImpl) Create(ctx context.Context, neighborhood *entity.Neighborhood) error {
	m := &model.Neighborhood{Id: neighborhood.Id, Name: neighborhood.Name, BoroughId: neighborhood.BoroughId}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*neighborhood = *r.mapper.NeighborhoodToEntity(m)
	return nil
}

func (r *NeighborhoodRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Neighborhood, error) {
	var m model.Neighborhood
	if err := applySpecs(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.NeighborhoodToEntity(&m), nil
}

func (r *NeighborhoodRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Neighborhood, error) {
	var models []*model.Neighborhood
	if err := applySpecs(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NeighborhoodsToEntities(models), nil
}
