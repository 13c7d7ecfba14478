package unitofwork

import (
	"context"

	"place-journal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	VisitRepository() contract.VisitRepository
	CountryRepository() contract.CountryRepository
	CityRepository() contract.CityRepository
	BoroughRepository() contract.BoroughRepository
	NeighborhoodRepository() contract.NeighborhoodRepository
	LocationStatRepository() contract.LocationStatRepository
}
