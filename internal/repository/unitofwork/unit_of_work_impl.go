package unitofwork

import (
	"context"
	"fmt"

	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VisitRepository() contract.VisitRepository {
	return implementation.NewVisitRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CountryRepository() contract.CountryRepository {
	return implementation.NewCountryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CityRepository() contract.CityRepository {
	return implementation.NewCityRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BoroughRepository() contract.BoroughRepository {
	return implementation.NewBoroughRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NeighborhoodRepository() contract.NeighborhoodRepository {
	return implementation.NewNeighborhoodRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LocationStatRepository() contract.LocationStatRepository {
	return implementation.NewLocationStatRepository(u.getDB())
}
