package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"place-journal-be/internal/dto"
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/specification"
	"place-journal-be/internal/repository/unitofwork"
	"place-journal-be/pkg/ranking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory doubles ---------------------------------------------------
//
// The fakes interpret the same specification values the GORM implementations
// translate to SQL, so service tests exercise real query semantics without a
// database.

func visitMatches(v *entity.Visit, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if v.Id != spec.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range spec.IDs {
				if v.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.UserOwnedBy:
			if v.UserId != spec.UserID {
				return false
			}
		case specification.ExcludeID:
			if v.Id == spec.ID {
				return false
			}
		case specification.ByVisitType:
			if string(v.VisitType) != spec.VisitType {
				return false
			}
		case specification.ByCategory:
			if string(v.Category) != spec.Category {
				return false
			}
		case specification.ScorePresent:
			if v.Score == nil {
				return false
			}
		case specification.ByNeighborhoodID:
			if v.NeighborhoodId == nil || *v.NeighborhoodId != spec.NeighborhoodID {
				return false
			}
		case specification.ByNeighborhoodIDs:
			if v.NeighborhoodId == nil || !containsId(spec.NeighborhoodIDs, *v.NeighborhoodId) {
				return false
			}
		case specification.ByCountryID:
			if v.CountryId == nil || *v.CountryId != spec.CountryID {
				return false
			}
		case specification.ByCountryIDs:
			if v.CountryId == nil || !containsId(spec.CountryIDs, *v.CountryId) {
				return false
			}
		}
	}
	return true
}

func containsId(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type fakeVisitRepo struct {
	visits map[uuid.UUID]*entity.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: map[uuid.UUID]*entity.Visit{}}
}

func (r *fakeVisitRepo) Create(ctx context.Context, visit *entity.Visit) error {
	copied := *visit
	r.visits[visit.Id] = &copied
	return nil
}

func (r *fakeVisitRepo) Update(ctx context.Context, visit *entity.Visit) error {
	copied := *visit
	r.visits[visit.Id] = &copied
	return nil
}

func (r *fakeVisitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.visits, id)
	return nil
}

func (r *fakeVisitRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Visit, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeVisitRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Visit, error) {
	result := make([]*entity.Visit, 0)
	for _, v := range r.visits {
		if visitMatches(v, specs) {
			copied := *v
			result = append(result, &copied)
		}
	}
	for _, s := range specs {
		if _, ok := s.(specification.OrderByScoreDesc); ok {
			sort.Slice(result, func(i, j int) bool {
				return *result[i].Score > *result[j].Score
			})
		}
	}
	return result, nil
}

func (r *fakeVisitRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeVisitRepo) BulkUpdateScores(ctx context.Context, updates []contract.ScoreUpdate) error {
	for _, u := range updates {
		v, ok := r.visits[u.VisitId]
		if !ok {
			continue
		}
		score := u.Score
		v.Score = &score
	}
	return nil
}

type fakeCountryRepo struct{ countries []*entity.Country }

func (r *fakeCountryRepo) Create(ctx context.Context, c *entity.Country) error {
	r.countries = append(r.countries, c)
	return nil
}

func (r *fakeCountryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Country, error) {
	for _, c := range r.countries {
		if countryMatches(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCountryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Country, error) {
	result := make([]*entity.Country, 0)
	for _, c := range r.countries {
		if countryMatches(c, specs) {
			result = append(result, c)
		}
	}
	return result, nil
}

func countryMatches(c *entity.Country, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if c.Id != spec.ID {
				return false
			}
		case specification.ByIDs:
			if !containsId(spec.IDs, c.Id) {
				return false
			}
		case specification.ByName:
			if c.Name != spec.Name {
				return false
			}
		case specification.ByContinent:
			if c.Continent != spec.Continent {
				return false
			}
		}
	}
	return true
}

type fakeCityRepo struct{ cities []*entity.City }

func (r *fakeCityRepo) Create(ctx context.Context, c *entity.City) error {
	r.cities = append(r.cities, c)
	return nil
}

func (r *fakeCityRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.City, error) {
	for _, c := range r.cities {
		if cityMatches(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.City, error) {
	result := make([]*entity.City, 0)
	for _, c := range r.cities {
		if cityMatches(c, specs) {
			result = append(result, c)
		}
	}
	return result, nil
}

func cityMatches(c *entity.City, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if c.Id != spec.ID {
				return false
			}
		case specification.ByName:
			if c.Name != spec.Name {
				return false
			}
		case specification.ByMetroAreaKey:
			if c.MetroAreaKey != spec.MetroAreaKey {
				return false
			}
		}
	}
	return true
}

type fakeBoroughRepo struct{ boroughs []*entity.Borough }

func (r *fakeBoroughRepo) Create(ctx context.Context, b *entity.Borough) error {
	r.boroughs = append(r.boroughs, b)
	return nil
}

func (r *fakeBoroughRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Borough, error) {
	for _, b := range r.boroughs {
		if boroughMatches(b, specs) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *fakeBoroughRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Borough, error) {
	result := make([]*entity.Borough, 0)
	for _, b := range r.boroughs {
		if boroughMatches(b, specs) {
			result = append(result, b)
		}
	}
	return result, nil
}

func boroughMatches(b *entity.Borough, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if b.Id != spec.ID {
				return false
			}
		case specification.ByName:
			if b.Name != spec.Name {
				return false
			}
		case specification.ByCityIDs:
			if !containsId(spec.CityIDs, b.CityId) {
				return false
			}
		}
	}
	return true
}

type fakeNeighborhoodRepo struct{ neighborhoods []*entity.Neighborhood }

func (r *fakeNeighborhoodRepo) Create(ctx context.Context, n *entity.Neighborhood) error {
	r.neighborhoods = append(r.neighborhoods, n)
	return nil
}

func (r *fakeNeighborhoodRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Neighborhood, error) {
	for _, n := range r.neighborhoods {
		if neighborhoodMatches(n, specs) {
			return n, nil
		}
	}
	return nil, nil
}

func (r *fakeNeighborhoodRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Neighborhood, error) {
	result := make([]*entity.Neighborhood, 0)
	for _, n := range r.neighborhoods {
		if neighborhoodMatches(n, specs) {
			result = append(result, n)
		}
	}
	return result, nil
}

func neighborhoodMatches(n *entity.Neighborhood, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			if n.Id != spec.ID {
				return false
			}
		case specification.ByIDs:
			if !containsId(spec.IDs, n.Id) {
				return false
			}
		case specification.ByName:
			if n.Name != spec.Name {
				return false
			}
		case specification.ByBoroughIDs:
			if !containsId(spec.BoroughIDs, n.BoroughId) {
				return false
			}
		}
	}
	return true
}

type fakeUserRepo struct{ users []*entity.User }

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		match := true
		for _, s := range specs {
			switch spec := s.(type) {
			case specification.ByID:
				if u.Id != spec.ID {
					match = false
				}
			case specification.ByEmail:
				if u.Email != spec.Email {
					match = false
				}
			}
		}
		if match {
			return u, nil
		}
	}
	return nil, nil
}

type fakeLocationStatRepo struct {
	stats map[string]*entity.LocationStat
}

func newFakeLocationStatRepo() *fakeLocationStatRepo {
	return &fakeLocationStatRepo{stats: map[string]*entity.LocationStat{}}
}

func statKey(visitType entity.VisitType, locationId uuid.UUID) string {
	return string(visitType) + ":" + locationId.String()
}

func (r *fakeLocationStatRepo) Upsert(ctx context.Context, stat *entity.LocationStat) error {
	copied := *stat
	copied.UpdatedAt = time.Now()
	r.stats[statKey(stat.VisitType, stat.LocationId)] = &copied
	return nil
}

func (r *fakeLocationStatRepo) FindByLocation(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) (*entity.LocationStat, error) {
	return r.stats[statKey(visitType, locationId)], nil
}

func (r *fakeLocationStatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LocationStat, error) {
	result := make([]*entity.LocationStat, 0, len(r.stats))
	for _, stat := range r.stats {
		result = append(result, stat)
	}
	return result, nil
}

type fakeUow struct {
	users         *fakeUserRepo
	visits        *fakeVisitRepo
	countries     *fakeCountryRepo
	cities        *fakeCityRepo
	boroughs      *fakeBoroughRepo
	neighborhoods *fakeNeighborhoodRepo
	stats         *fakeLocationStatRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return u.users }
func (u *fakeUow) VisitRepository() contract.VisitRepository               { return u.visits }
func (u *fakeUow) CountryRepository() contract.CountryRepository           { return u.countries }
func (u *fakeUow) CityRepository() contract.CityRepository                 { return u.cities }
func (u *fakeUow) BoroughRepository() contract.BoroughRepository           { return u.boroughs }
func (u *fakeUow) NeighborhoodRepository() contract.NeighborhoodRepository { return u.neighborhoods }
func (u *fakeUow) LocationStatRepository() contract.LocationStatRepository { return u.stats }

type fakeFactory struct{ uow *fakeUow }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeSessionRepo round-trips sessions through JSON, mirroring the Redis
// implementation's copy semantics.
type fakeSessionRepo struct {
	docs map[uuid.UUID][]byte
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{docs: map[uuid.UUID][]byte{}}
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *entity.ComparisonSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	r.docs[session.Id] = payload
	return nil
}

func (r *fakeSessionRepo) Get(ctx context.Context, id uuid.UUID) (*entity.ComparisonSession, error) {
	payload, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	var session entity.ComparisonSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &session, nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(ctx context.Context) (int, error) {
	deleted := 0
	for id, payload := range r.docs {
		var session entity.ComparisonSession
		if err := json.Unmarshal(payload, &session); err != nil || session.ExpiresAt.Before(time.Now()) {
			delete(r.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type capturePublisher struct{ payloads [][]byte }

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// --- Fixture -------------------------------------------------------------

type fixture struct {
	uow       *fakeUow
	sessions  *fakeSessionRepo
	publisher *capturePublisher
	ranking   IRankingService
	visit     IVisitService

	userId uuid.UUID

	// seeded geography
	westVillage uuid.UUID
	soho        uuid.UUID
	harlem      uuid.UUID
	paulusHook  uuid.UUID // same metro, different city
	abbesses    uuid.UUID // different metro
	france      uuid.UUID
	spain       uuid.UUID
	japan       uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		uow: &fakeUow{
			users:         &fakeUserRepo{},
			visits:        newFakeVisitRepo(),
			countries:     &fakeCountryRepo{},
			cities:        &fakeCityRepo{},
			boroughs:      &fakeBoroughRepo{},
			neighborhoods: &fakeNeighborhoodRepo{},
			stats:         newFakeLocationStatRepo(),
		},
		sessions:  newFakeSessionRepo(),
		publisher: &capturePublisher{},
		userId:    uuid.New(),
	}

	factory := &fakeFactory{uow: f.uow}
	geography := NewGeographyService(factory)
	f.ranking = NewRankingService(factory, f.sessions, geography, nopLogger{}, entity.SessionTTL)
	f.visit = NewVisitService(factory, f.sessions, geography, f.publisher, nopLogger{})

	// Countries: two on the same continent, one elsewhere.
	france := &entity.Country{Id: uuid.New(), Name: "France", Continent: "Europe"}
	spain := &entity.Country{Id: uuid.New(), Name: "Spain", Continent: "Europe"}
	japan := &entity.Country{Id: uuid.New(), Name: "Japan", Continent: "Asia"}
	for _, c := range []*entity.Country{france, spain, japan} {
		require.NoError(t, f.uow.countries.Create(ctx, c))
	}
	f.france, f.spain, f.japan = france.Id, spain.Id, japan.Id

	// NYC metro: two cities sharing a metro key.
	usa := &entity.Country{Id: uuid.New(), Name: "United States", Continent: "North America"}
	require.NoError(t, f.uow.countries.Create(ctx, usa))
	newYork := &entity.City{Id: uuid.New(), Name: "New York", MetroAreaKey: "nyc-metro", CountryId: usa.Id}
	jerseyCity := &entity.City{Id: uuid.New(), Name: "Jersey City", MetroAreaKey: "nyc-metro", CountryId: usa.Id}
	paris := &entity.City{Id: uuid.New(), Name: "Paris", MetroAreaKey: "paris-metro", CountryId: france.Id}
	for _, c := range []*entity.City{newYork, jerseyCity, paris} {
		require.NoError(t, f.uow.cities.Create(ctx, c))
	}

	manhattan := &entity.Borough{Id: uuid.New(), Name: "Manhattan", CityId: newYork.Id}
	downtownJC := &entity.Borough{Id: uuid.New(), Name: "Downtown Jersey City", CityId: jerseyCity.Id}
	montmartre := &entity.Borough{Id: uuid.New(), Name: "Montmartre", CityId: paris.Id}
	for _, b := range []*entity.Borough{manhattan, downtownJC, montmartre} {
		require.NoError(t, f.uow.boroughs.Create(ctx, b))
	}

	seed := func(name string, boroughId uuid.UUID) uuid.UUID {
		n := &entity.Neighborhood{Id: uuid.New(), Name: name, BoroughId: boroughId}
		require.NoError(t, f.uow.neighborhoods.Create(ctx, n))
		return n.Id
	}
	f.westVillage = seed("West Village", manhattan.Id)
	f.soho = seed("SoHo", manhattan.Id)
	f.harlem = seed("Harlem", manhattan.Id)
	f.paulusHook = seed("Paulus Hook", downtownJC.Id)
	f.abbesses = seed("Abbesses", montmartre.Id)

	return f
}

func (f *fixture) addRankedNeighborhoodVisit(t *testing.T, neighborhoodId uuid.UUID, score float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	nid := neighborhoodId
	s := score
	err := f.uow.visits.Create(context.Background(), &entity.Visit{
		Id:             id,
		UserId:         f.userId,
		VisitType:      entity.VisitTypeNeighborhood,
		NeighborhoodId: &nid,
		Visited:        true,
		Score:          &s,
		Category:       ranking.CategoryForScore(score),
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) addRankedCountryVisit(t *testing.T, countryId uuid.UUID, score float64) uuid.UUID {
	t.Helper()
	id := uuid.New()
	cid := countryId
	s := score
	err := f.uow.visits.Create(context.Background(), &entity.Visit{
		Id:        id,
		UserId:    f.userId,
		VisitType: entity.VisitTypeCountry,
		CountryId: &cid,
		Visited:   true,
		Score:     &s,
		Category:  ranking.CategoryForScore(score),
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return id
}

func startNeighborhoodSession(t *testing.T, f *fixture, name string, category string) *dto.ComparisonStateResponse {
	t.Helper()
	res, err := f.ranking.InitializeSession(context.Background(), f.userId, &dto.StartComparisonRequest{
		VisitType:        "neighborhood",
		NeighborhoodName: name,
		BoroughName:      "Manhattan",
		Visited:          true,
		Category:         category,
	})
	require.NoError(t, err)
	return res
}

// --- Tests ---------------------------------------------------------------

func TestInitializeSessionEmptyPool(t *testing.T) {
	f := newFixture(t)

	res := startNeighborhoodSession(t, f, "West Village", "")

	assert.True(t, res.IsComplete)
	require.NotNil(t, res.Result)
	assert.Nil(t, res.Comparison)
	assert.InDelta(t, 8.5, res.Result.Score, 1e-9)
	assert.Equal(t, "good", res.Result.Category)
	assert.Equal(t, 0, res.Result.ComparisonsUsed)
}

func TestInitializeSessionEmptyPoolPreselected(t *testing.T) {
	f := newFixture(t)

	res := startNeighborhoodSession(t, f, "West Village", "bad")

	require.NotNil(t, res.Result)
	assert.InDelta(t, 1.95, res.Result.Score, 1e-9)
	assert.Equal(t, "bad", res.Result.Category)
}

func TestFullComparisonFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedNeighborhoodVisit(t, f.soho, 9.0)
	f.addRankedNeighborhoodVisit(t, f.harlem, 8.0)
	f.addRankedNeighborhoodVisit(t, f.paulusHook, 7.2)

	res := startNeighborhoodSession(t, f, "West Village", "")
	require.False(t, res.IsComplete)
	require.NotNil(t, res.Comparison)
	assert.Equal(t, "West Village", res.Comparison.NewLocationName)
	// 3 candidates: worst case ceil(log2(4)) = 2 questions.
	assert.Equal(t, 2, res.Comparison.Progress.Total)
	assert.Equal(t, 1, res.Comparison.Progress.Current)
	// Mid of [0,3) is index 1, the 8.0 visit.
	assert.Equal(t, "Harlem", res.Comparison.LocationName)

	// Better than 8.0 ...
	res, err := f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, true)
	require.NoError(t, err)
	require.False(t, res.IsComplete)
	assert.Equal(t, "SoHo", res.Comparison.LocationName)

	// ... but worse than 9.0: lands between them.
	res, err = f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, false)
	require.NoError(t, err)
	require.True(t, res.IsComplete)
	require.NotNil(t, res.Result)
	assert.InDelta(t, 8.5, res.Result.Score, 1e-9)
	assert.Equal(t, "good", res.Result.Category)
	assert.Equal(t, 1, res.Result.InsertionIndex)
	assert.Equal(t, 2, res.Result.ComparisonsUsed)
}

func TestComparisonPoolScopedToMetroArea(t *testing.T) {
	f := newFixture(t)

	// Same metro, two cities: both should be candidates.
	f.addRankedNeighborhoodVisit(t, f.soho, 8.0)
	f.addRankedNeighborhoodVisit(t, f.paulusHook, 7.5)
	// Different metro: excluded.
	f.addRankedNeighborhoodVisit(t, f.abbesses, 9.0)

	res := startNeighborhoodSession(t, f, "West Village", "")
	require.NotNil(t, res.Comparison)
	// 2 in-scope candidates: ceil(log2(3)) = 2.
	assert.Equal(t, 2, res.Comparison.Progress.Total)
}

func TestCountrySessionScopedToContinent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedCountryVisit(t, f.spain, 8.2)
	f.addRankedCountryVisit(t, f.japan, 9.5) // other continent, excluded

	res, err := f.ranking.InitializeSession(ctx, f.userId, &dto.StartComparisonRequest{
		VisitType:   "country",
		CountryName: "France",
		Visited:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Comparison)
	assert.Equal(t, "Spain", res.Comparison.LocationName)
	assert.Equal(t, 1, res.Comparison.Progress.Total)

	res, err = f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, true)
	require.NoError(t, err)
	require.True(t, res.IsComplete)
	// Beat the only candidate: 8.2 + 1.0, capped at its band max.
	assert.InDelta(t, 9.2, res.Result.Score, 1e-9)
	assert.Equal(t, "good", res.Result.Category)
}

func TestBoundaryAdjustmentClampedToNeighborBand(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedNeighborhoodVisit(t, f.soho, 9.5)

	res := startNeighborhoodSession(t, f, "West Village", "")
	res, err := f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, true)
	require.NoError(t, err)
	require.True(t, res.IsComplete)
	// 9.5 + 1.0 would leave the scale; capped at the band max.
	assert.InDelta(t, 10.0, res.Result.Score, 1e-9)
}

func TestCollisionTriggersRebalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	upper := f.addRankedNeighborhoodVisit(t, f.soho, 2.0)
	lower := f.addRankedNeighborhoodVisit(t, f.harlem, 2.0-0.00005)

	res := startNeighborhoodSession(t, f, "West Village", "")
	require.NotNil(t, res.Comparison)

	// Worse than the upper, better than the lower: inserts between two
	// scores that are epsilon apart.
	for !res.IsComplete {
		betterThanOpponent := res.Comparison.VisitId == lower
		var err error
		res, err = f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, betterThanOpponent)
		require.NoError(t, err)
	}

	// The bad band was spread across [0, 3.9] and the new item landed on
	// the midpoint of the redistributed neighbors.
	require.NotNil(t, res.Result)
	assert.InDelta(t, 1.95, res.Result.Score, 1e-9)
	assert.Equal(t, "bad", res.Result.Category)

	upperVisit := f.uow.visits.visits[upper]
	lowerVisit := f.uow.visits.visits[lower]
	assert.InDelta(t, 3.9, *upperVisit.Score, 1e-9)
	assert.InDelta(t, 0.0, *lowerVisit.Score, 1e-9)
}

func TestSubmitOnCompleteSessionConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := startNeighborhoodSession(t, f, "West Village", "")
	require.True(t, res.IsComplete)

	_, err := f.ranking.SubmitComparison(ctx, f.userId, res.SessionId, true)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSessionHiddenFromOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := startNeighborhoodSession(t, f, "West Village", "")

	_, err := f.ranking.GetSession(ctx, uuid.New(), res.SessionId)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRerankExcludesOwnVisit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := f.addRankedNeighborhoodVisit(t, f.westVillage, 8.0)
	f.addRankedNeighborhoodVisit(t, f.soho, 9.0)

	res, err := f.ranking.InitializeSession(ctx, f.userId, &dto.StartComparisonRequest{
		VisitType:        "neighborhood",
		NeighborhoodName: "West Village",
		BoroughName:      "Manhattan",
		RerankVisitId:    &existing,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Comparison)
	// Only SoHo remains as a candidate.
	assert.Equal(t, 1, res.Comparison.Progress.Total)
	assert.Equal(t, "SoHo", res.Comparison.LocationName)
}

func TestMaterializeCreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res := startNeighborhoodSession(t, f, "West Village", "good")
	require.True(t, res.IsComplete)

	visit, err := f.visit.MaterializeFromSession(ctx, f.userId, res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "West Village", visit.LocationName)
	assert.Equal(t, f.westVillage, visit.LocationId)
	require.NotNil(t, visit.Score)
	assert.InDelta(t, 8.5, *visit.Score, 1e-9)
	assert.Len(t, f.publisher.payloads, 1)

	// Re-rank the same place: a second session must update the same row.
	res2 := startNeighborhoodSession(t, f, "West Village", "mid")
	visit2, err := f.visit.MaterializeFromSession(ctx, f.userId, res2.SessionId)
	require.NoError(t, err)
	assert.Equal(t, visit.Id, visit2.Id)
	assert.Equal(t, "mid", visit2.Category)

	all, err := f.visit.GetAll(ctx, f.userId, "neighborhood")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMaterializeIncompleteSessionConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedNeighborhoodVisit(t, f.soho, 8.0)
	res := startNeighborhoodSession(t, f, "West Village", "")
	require.False(t, res.IsComplete)

	_, err := f.visit.MaterializeFromSession(ctx, f.userId, res.SessionId)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestGetUserRankingsGroupsByCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedNeighborhoodVisit(t, f.soho, 9.0)
	f.addRankedNeighborhoodVisit(t, f.harlem, 5.0)
	f.addRankedNeighborhoodVisit(t, f.paulusHook, 2.0)

	res, err := f.ranking.GetUserRankings(ctx, f.userId, RankingsFilter{VisitType: "neighborhood"})
	require.NoError(t, err)
	require.Len(t, res.Good, 1)
	require.Len(t, res.Mid, 1)
	require.Len(t, res.Bad, 1)
	assert.Equal(t, "SoHo", res.Good[0].LocationName)
	assert.Equal(t, "Harlem", res.Mid[0].LocationName)
	assert.Equal(t, "Paulus Hook", res.Bad[0].LocationName)
}

func TestRebalancePreservesOrderAndBounds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.addRankedNeighborhoodVisit(t, f.soho, 9.8)
	second := f.addRankedNeighborhoodVisit(t, f.harlem, 9.7)
	third := f.addRankedNeighborhoodVisit(t, f.westVillage, 7.1)

	affected, err := f.ranking.RebalanceCategory(ctx, f.userId, entity.VisitTypeNeighborhood, ranking.CategoryGood)
	require.NoError(t, err)
	assert.Equal(t, 3, affected)

	assert.InDelta(t, 10.0, *f.uow.visits.visits[first].Score, 1e-9)
	assert.InDelta(t, 8.5, *f.uow.visits.visits[second].Score, 1e-9)
	assert.InDelta(t, 7.0, *f.uow.visits.visits[third].Score, 1e-9)
}

func TestRebalanceSingleItemIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	only := f.addRankedNeighborhoodVisit(t, f.soho, 8.2)

	affected, err := f.ranking.RebalanceCategory(ctx, f.userId, entity.VisitTypeNeighborhood, ranking.CategoryGood)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)
	assert.InDelta(t, 8.2, *f.uow.visits.visits[only].Score, 1e-9)
}

func TestGlobalRankingPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addRankedNeighborhoodVisit(t, f.soho, 9.0)
	target := f.addRankedNeighborhoodVisit(t, f.harlem, 8.0)
	f.addRankedNeighborhoodVisit(t, f.paulusHook, 7.5)
	// Other metro and other category rows never count.
	f.addRankedNeighborhoodVisit(t, f.abbesses, 8.7)
	f.addRankedNeighborhoodVisit(t, f.westVillage, 5.0)

	res, err := f.ranking.GetGlobalRankingPosition(ctx, f.userId, target, entity.VisitTypeNeighborhood)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Position)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "good", res.Category)
}

func TestGlobalRankingPositionUnknownVisit(t *testing.T) {
	f := newFixture(t)

	_, err := f.ranking.GetGlobalRankingPosition(context.Background(), f.userId, uuid.New(), entity.VisitTypeNeighborhood)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
