package service

import (
	"context"
	"fmt"
	"time"

	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/repository/specification"
	"place-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// IGeographyService resolves comparison scopes: which locations count as
// siblings of a candidate, so a Paris neighborhood is never ranked against
// a Tokyo one. Neighborhood scope is the candidate's full metropolitan area
// (borough -> city -> every city sharing the metro key -> all their
// neighborhoods); country scope is the candidate's continent.
type IGeographyService interface {
	SiblingNeighborhoodIds(ctx context.Context, boroughName string) ([]uuid.UUID, error)
	SiblingCountryIds(ctx context.Context, countryName string) ([]uuid.UUID, error)
	NeighborhoodScope(ctx context.Context, neighborhoodId uuid.UUID) ([]uuid.UUID, error)
	CountryScope(ctx context.Context, countryId uuid.UUID) ([]uuid.UUID, error)
	ResolveNeighborhood(ctx context.Context, name, boroughName string) (*entity.Neighborhood, error)
	ResolveCountry(ctx context.Context, name string) (*entity.Country, error)
}

type geographyService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewGeographyService(uowFactory unitofwork.RepositoryFactory) IGeographyService {
	// Reference geography changes only via seed tooling, so resolved scopes
	// stay valid for a while.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &geographyService{
		uowFactory: uowFactory,
		cache:      c,
	}
}

// SiblingNeighborhoodIds resolves the named parent area (borough first, city
// as fallback) and expands to every neighborhood in its metropolitan area.
func (s *geographyService) SiblingNeighborhoodIds(ctx context.Context, boroughName string) ([]uuid.UUID, error) {
	cacheKey := fmt.Sprintf("scope:borough:%s", boroughName)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.([]uuid.UUID), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var cityId uuid.UUID
	borough, err := uow.BoroughRepository().FindOne(ctx, specification.ByName{Name: boroughName})
	if err != nil {
		return nil, err
	}
	if borough != nil {
		cityId = borough.CityId
	} else {
		// Some clients send the city itself as the parent area.
		city, err := uow.CityRepository().FindOne(ctx, specification.ByName{Name: boroughName})
		if err != nil {
			return nil, err
		}
		if city == nil {
			return nil, apperr.NewNotFound("borough or city %q not found", boroughName)
		}
		cityId = city.Id
	}

	ids, err := s.metroNeighborhoodIds(ctx, cityId)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, ids, cache.DefaultExpiration)
	return ids, nil
}

// NeighborhoodScope derives the same metropolitan-area expansion from an
// existing visit's neighborhood reference.
func (s *geographyService) NeighborhoodScope(ctx context.Context, neighborhoodId uuid.UUID) ([]uuid.UUID, error) {
	cacheKey := fmt.Sprintf("scope:neighborhood:%s", neighborhoodId)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.([]uuid.UUID), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	neighborhood, err := uow.NeighborhoodRepository().FindOne(ctx, specification.ByID{ID: neighborhoodId})
	if err != nil {
		return nil, err
	}
	if neighborhood == nil {
		return nil, apperr.NewNotFound("neighborhood not found")
	}

	borough, err := uow.BoroughRepository().FindOne(ctx, specification.ByID{ID: neighborhood.BoroughId})
	if err != nil {
		return nil, err
	}
	if borough == nil {
		return nil, apperr.NewNotFound("borough not found")
	}

	ids, err := s.metroNeighborhoodIds(ctx, borough.CityId)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, ids, cache.DefaultExpiration)
	return ids, nil
}

// metroNeighborhoodIds walks city -> metro sibling cities -> boroughs ->
// neighborhoods. The session keeps only the resulting opaque ids.
func (s *geographyService) metroNeighborhoodIds(ctx context.Context, cityId uuid.UUID) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	city, err := uow.CityRepository().FindOne(ctx, specification.ByID{ID: cityId})
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, apperr.NewNotFound("city not found")
	}

	metroCities, err := uow.CityRepository().FindAll(ctx, specification.ByMetroAreaKey{MetroAreaKey: city.MetroAreaKey})
	if err != nil {
		return nil, err
	}
	cityIds := make([]uuid.UUID, len(metroCities))
	for i, c := range metroCities {
		cityIds[i] = c.Id
	}

	boroughs, err := uow.BoroughRepository().FindAll(ctx, specification.ByCityIDs{CityIDs: cityIds})
	if err != nil {
		return nil, err
	}
	if len(boroughs) == 0 {
		return []uuid.UUID{}, nil
	}
	boroughIds := make([]uuid.UUID, len(boroughs))
	for i, b := range boroughs {
		boroughIds[i] = b.Id
	}

	neighborhoods, err := uow.NeighborhoodRepository().FindAll(ctx, specification.ByBoroughIDs{BoroughIDs: boroughIds})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(neighborhoods))
	for i, n := range neighborhoods {
		ids[i] = n.Id
	}
	return ids, nil
}

// SiblingCountryIds expands a country name to every country on its continent.
func (s *geographyService) SiblingCountryIds(ctx context.Context, countryName string) ([]uuid.UUID, error) {
	cacheKey := fmt.Sprintf("scope:country:%s", countryName)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.([]uuid.UUID), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	country, err := uow.CountryRepository().FindOne(ctx, specification.ByName{Name: countryName})
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, apperr.NewNotFound("country %q not found", countryName)
	}

	ids, err := s.continentCountryIds(ctx, country.Continent)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, ids, cache.DefaultExpiration)
	return ids, nil
}

func (s *geographyService) CountryScope(ctx context.Context, countryId uuid.UUID) ([]uuid.UUID, error) {
	cacheKey := fmt.Sprintf("scope:countryid:%s", countryId)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.([]uuid.UUID), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	country, err := uow.CountryRepository().FindOne(ctx, specification.ByID{ID: countryId})
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, apperr.NewNotFound("country not found")
	}

	ids, err := s.continentCountryIds(ctx, country.Continent)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, ids, cache.DefaultExpiration)
	return ids, nil
}

func (s *geographyService) continentCountryIds(ctx context.Context, continent string) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	countries, err := uow.CountryRepository().FindAll(ctx, specification.ByContinent{Continent: continent})
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(countries))
	for i, c := range countries {
		ids[i] = c.Id
	}
	return ids, nil
}

// ResolveNeighborhood finds the neighborhood a session's raw name fields
// point at, scoped to the named borough.
func (s *geographyService) ResolveNeighborhood(ctx context.Context, name, boroughName string) (*entity.Neighborhood, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	borough, err := uow.BoroughRepository().FindOne(ctx, specification.ByName{Name: boroughName})
	if err != nil {
		return nil, err
	}
	if borough == nil {
		return nil, apperr.NewNotFound("borough %q not found", boroughName)
	}

	neighborhood, err := uow.NeighborhoodRepository().FindOne(ctx,
		specification.ByName{Name: name},
		specification.ByBoroughIDs{BoroughIDs: []uuid.UUID{borough.Id}},
	)
	if err != nil {
		return nil, err
	}
	if neighborhood == nil {
		return nil, apperr.NewNotFound("neighborhood %q not found in %q", name, boroughName)
	}
	return neighborhood, nil
}

func (s *geographyService) ResolveCountry(ctx context.Context, name string) (*entity.Country, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	country, err := uow.CountryRepository().FindOne(ctx, specification.ByName{Name: name})
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, apperr.NewNotFound("country %q not found", name)
	}
	return country, nil
}
