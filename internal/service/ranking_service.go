package service

import (
	"context"
	"time"

	"place-journal-be/internal/dto"
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/logger"
	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/specification"
	"place-journal-be/internal/repository/unitofwork"
	"place-journal-be/pkg/ranking"

	"github.com/google/uuid"
)

// RankingsFilter narrows the grouped-rankings query. Zero values mean "all".
type RankingsFilter struct {
	VisitType   string
	Category    string
	BoroughName string
	CountryName string
}

type IRankingService interface {
	InitializeSession(ctx context.Context, userId uuid.UUID, req *dto.StartComparisonRequest) (*dto.ComparisonStateResponse, error)
	SubmitComparison(ctx context.Context, userId, sessionId uuid.UUID, newLocationBetter bool) (*dto.ComparisonStateResponse, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ShowSessionResponse, error)
	GetUserRankings(ctx context.Context, userId uuid.UUID, filter RankingsFilter) (*dto.RankingsResponse, error)
	RebalanceCategory(ctx context.Context, userId uuid.UUID, visitType entity.VisitType, category ranking.Category) (int, error)
	GetGlobalRankingPosition(ctx context.Context, userId, visitId uuid.UUID, visitType entity.VisitType) (*dto.GlobalPositionResponse, error)
	CleanupExpiredSessions(ctx context.Context) (int, error)
}

type rankingService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   contract.ComparisonSessionRepository
	geography  IGeographyService
	log        logger.ILogger
	sessionTTL time.Duration
}

func NewRankingService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.ComparisonSessionRepository,
	geography IGeographyService,
	log logger.ILogger,
	sessionTTL time.Duration,
) IRankingService {
	return &rankingService{
		uowFactory: uowFactory,
		sessions:   sessions,
		geography:  geography,
		log:        log,
		sessionTTL: sessionTTL,
	}
}

// InitializeSession builds the candidate pool (same user, same visit type,
// same geographic scope, ranked visits only), opens a binary-search cursor
// over it, and returns either the first prompt or, when the pool is empty,
// an immediately finalized result.
func (s *rankingService) InitializeSession(ctx context.Context, userId uuid.UUID, req *dto.StartComparisonRequest) (*dto.ComparisonStateResponse, error) {
	visitType := entity.VisitType(req.VisitType)

	var preselected *ranking.Category
	if req.Category != "" {
		c, err := ranking.ParseCategory(req.Category)
		if err != nil {
			return nil, apperr.NewValidation("invalid category %q", req.Category)
		}
		preselected = &c
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByVisitType{VisitType: req.VisitType},
		specification.ScorePresent{},
		specification.OrderByScoreDesc{},
	}

	switch visitType {
	case entity.VisitTypeNeighborhood:
		if req.NeighborhoodName == "" || req.BoroughName == "" {
			return nil, apperr.NewValidation("neighborhood_name and borough_name are required")
		}
		scope, err := s.geography.SiblingNeighborhoodIds(ctx, req.BoroughName)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByNeighborhoodIDs{NeighborhoodIDs: scope})
	case entity.VisitTypeCountry:
		if req.CountryName == "" {
			return nil, apperr.NewValidation("country_name is required")
		}
		scope, err := s.geography.SiblingCountryIds(ctx, req.CountryName)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByCountryIDs{CountryIDs: scope})
	default:
		return nil, apperr.NewValidation("invalid visit type %q", req.VisitType)
	}

	if preselected != nil {
		specs = append(specs, specification.ByCategory{Category: string(*preselected)})
	}
	if req.RerankVisitId != nil {
		specs = append(specs, specification.ExcludeID{ID: *req.RerankVisitId})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.VisitRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	sortedIds := make([]uuid.UUID, len(candidates))
	for i, v := range candidates {
		sortedIds[i] = v.Id
	}

	now := time.Now().UTC()
	session := &entity.ComparisonSession{
		Id:     uuid.New(),
		UserId: userId,
		NewLocation: entity.NewLocation{
			VisitType:        visitType,
			NeighborhoodName: req.NeighborhoodName,
			BoroughName:      req.BoroughName,
			CountryName:      req.CountryName,
			Visited:          req.Visited,
			Notes:            req.Notes,
			VisitDate:        req.VisitDate,
			Category:         preselected,
		},
		SortedVisitIds: sortedIds,
		Cursor:         ranking.NewCursor(len(sortedIds)),
		Comparisons:    []entity.ComparisonEntry{},
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.sessionTTL),
	}

	// An empty pool needs no comparisons: the item lands on its band's
	// midpoint straight away. The session is still persisted so the
	// materialize endpoint works uniformly.
	if len(sortedIds) == 0 {
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("ranking", "comparison session started", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"visit_type": visitType,
		"candidates": len(sortedIds),
	})

	return s.stateResponse(ctx, session)
}

// SubmitComparison records one head-to-head answer, advances the cursor and
// either returns the next prompt or finalizes the session with a score.
func (s *rankingService) SubmitComparison(ctx context.Context, userId, sessionId uuid.UUID, newLocationBetter bool) (*dto.ComparisonStateResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if session.IsComplete {
		return nil, apperr.NewConflict("comparison session is already complete")
	}

	session.Comparisons = append(session.Comparisons, entity.ComparisonEntry{
		VisitId:           session.SortedVisitIds[session.Cursor.Mid],
		NewLocationBetter: newLocationBetter,
		ComparedAt:        time.Now().UTC(),
	})

	if done := session.Cursor.Advance(newLocationBetter); done {
		if err := s.finalize(ctx, session); err != nil {
			return nil, err
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return s.stateResponse(ctx, session)
}

// finalize turns a converged cursor into a score. Neighbor scores are
// re-read from storage rather than trusted from session start, so a
// rebalance that ran mid-session is reflected. On a collision the whole
// band is redistributed and placement re-runs against the fresh scores.
func (s *rankingService) finalize(ctx context.Context, session *entity.ComparisonSession) error {
	idx := session.Cursor.InsertionIndex()

	items, err := s.scoredItems(ctx, session)
	if err != nil {
		return err
	}

	placement := ranking.Place(items, idx, session.NewLocation.Category)
	if placement.Collision {
		affected, err := s.RebalanceCategory(ctx, session.UserId, session.NewLocation.VisitType, placement.Category)
		if err != nil {
			return err
		}
		s.log.Info("ranking", "collision triggered rebalance", map[string]interface{}{
			"session_id": session.Id,
			"category":   placement.Category,
			"affected":   affected,
		})

		items, err = s.scoredItems(ctx, session)
		if err != nil {
			return err
		}
		placement = ranking.Place(items, idx, session.NewLocation.Category)
	}

	score := placement.Score
	session.FinalScore = &score
	session.FinalCategory = placement.Category
	session.IsComplete = true
	return nil
}

// scoredItems re-reads the session's candidate visits and rebuilds them in
// session order. Ids are opaque to the search, but placement needs current
// scores.
func (s *rankingService) scoredItems(ctx context.Context, session *entity.ComparisonSession) ([]ranking.ScoredItem, error) {
	if len(session.SortedVisitIds) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	visits, err := uow.VisitRepository().FindAll(ctx,
		specification.ByIDs{IDs: session.SortedVisitIds},
		specification.UserOwnedBy{UserID: session.UserId},
	)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Visit, len(visits))
	for _, v := range visits {
		byId[v.Id] = v
	}

	items := make([]ranking.ScoredItem, 0, len(session.SortedVisitIds))
	for _, id := range session.SortedVisitIds {
		v, ok := byId[id]
		if !ok || v.Score == nil {
			return nil, apperr.NewConflict("a compared visit no longer exists")
		}
		items = append(items, ranking.ScoredItem{Score: *v.Score, Category: v.Category})
	}
	return items, nil
}

func (s *rankingService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.ShowSessionResponse, error) {
	session, err := s.ownedSession(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	comparisons := make([]dto.SessionComparisonEntry, len(session.Comparisons))
	for i, c := range session.Comparisons {
		comparisons[i] = dto.SessionComparisonEntry{
			VisitId:           c.VisitId,
			NewLocationBetter: c.NewLocationBetter,
			ComparedAt:        c.ComparedAt,
		}
	}

	return &dto.ShowSessionResponse{
		Id:                   session.Id,
		VisitType:            string(session.NewLocation.VisitType),
		NewLocationName:      newLocationName(session.NewLocation),
		IsComplete:           session.IsComplete,
		ComparisonsCompleted: session.Cursor.Completed,
		TotalComparisons:     session.Cursor.Total,
		Comparisons:          comparisons,
		FinalScore:           session.FinalScore,
		FinalCategory:        string(session.FinalCategory),
		ExpiresAt:            session.ExpiresAt,
	}, nil
}

// GetUserRankings returns the user's ranked visits grouped into the three
// category bands, best first within each band.
func (s *rankingService) GetUserRankings(ctx context.Context, userId uuid.UUID, filter RankingsFilter) (*dto.RankingsResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ScorePresent{},
		specification.OrderByScoreDesc{},
	}
	if filter.VisitType != "" {
		specs = append(specs, specification.ByVisitType{VisitType: filter.VisitType})
	}
	if filter.Category != "" {
		if _, err := ranking.ParseCategory(filter.Category); err != nil {
			return nil, apperr.NewValidation("invalid category %q", filter.Category)
		}
		specs = append(specs, specification.ByCategory{Category: filter.Category})
	}
	if filter.BoroughName != "" {
		scope, err := s.geography.SiblingNeighborhoodIds(ctx, filter.BoroughName)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByNeighborhoodIDs{NeighborhoodIDs: scope})
	}
	if filter.CountryName != "" {
		scope, err := s.geography.SiblingCountryIds(ctx, filter.CountryName)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByCountryIDs{CountryIDs: scope})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	visits, err := uow.VisitRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	names, err := resolveLocationNames(ctx, uow, visits)
	if err != nil {
		return nil, err
	}

	result := &dto.RankingsResponse{
		Good: make([]dto.RankedVisit, 0),
		Mid:  make([]dto.RankedVisit, 0),
		Bad:  make([]dto.RankedVisit, 0),
	}
	for _, v := range visits {
		locationId := v.LocationId()
		if locationId == nil || v.Score == nil {
			continue
		}
		ranked := dto.RankedVisit{
			Id:           v.Id,
			VisitType:    string(v.VisitType),
			LocationId:   *locationId,
			LocationName: names[*locationId],
			Score:        *v.Score,
			Category:     string(v.Category),
			Visited:      v.Visited,
			VisitDate:    v.VisitDate,
		}
		switch v.Category {
		case ranking.CategoryGood:
			result.Good = append(result.Good, ranked)
		case ranking.CategoryMid:
			result.Mid = append(result.Mid, ranked)
		default:
			result.Bad = append(result.Bad, ranked)
		}
	}
	return result, nil
}

// RebalanceCategory spreads one band's scores evenly across its bounds,
// preserving relative order. Single-item and empty bands are left alone.
func (s *rankingService) RebalanceCategory(ctx context.Context, userId uuid.UUID, visitType entity.VisitType, category ranking.Category) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visits, err := uow.VisitRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByVisitType{VisitType: string(visitType)},
		specification.ByCategory{Category: string(category)},
		specification.ScorePresent{},
		specification.OrderByScoreDesc{},
	)
	if err != nil {
		return 0, err
	}
	if len(visits) <= 1 {
		return len(visits), nil
	}

	targets := ranking.SpreadScores(category, len(visits))
	updates := make([]contract.ScoreUpdate, len(visits))
	for i, v := range visits {
		updates[i] = contract.ScoreUpdate{VisitId: v.Id, Score: targets[i]}
	}

	if err := uow.VisitRepository().BulkUpdateScores(ctx, updates); err != nil {
		return 0, err
	}

	s.log.Info("ranking", "category rebalanced", map[string]interface{}{
		"user_id":    userId,
		"visit_type": visitType,
		"category":   category,
		"count":      len(visits),
	})
	return len(visits), nil
}

// GetGlobalRankingPosition reports where a visit sits inside its own
// comparable set: same user, type, category and geographic scope.
func (s *rankingService) GetGlobalRankingPosition(ctx context.Context, userId, visitId uuid.UUID, visitType entity.VisitType) (*dto.GlobalPositionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visit, err := uow.VisitRepository().FindOne(ctx,
		specification.ByID{ID: visitId},
		specification.UserOwnedBy{UserID: userId},
		specification.ByVisitType{VisitType: string(visitType)},
	)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperr.NewNotFound("item not found")
	}
	if visit.Score == nil {
		return nil, apperr.NewConflict("visit has not been ranked yet")
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByVisitType{VisitType: string(visitType)},
		specification.ByCategory{Category: string(visit.Category)},
		specification.ScorePresent{},
		specification.OrderByScoreDesc{},
	}

	switch visit.VisitType {
	case entity.VisitTypeNeighborhood:
		scope, err := s.geography.NeighborhoodScope(ctx, *visit.NeighborhoodId)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByNeighborhoodIDs{NeighborhoodIDs: scope})
	case entity.VisitTypeCountry:
		scope, err := s.geography.CountryScope(ctx, *visit.CountryId)
		if err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByCountryIDs{CountryIDs: scope})
	}

	peers, err := uow.VisitRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	position := 0
	for i, p := range peers {
		if p.Id == visit.Id {
			position = i + 1
			break
		}
	}

	return &dto.GlobalPositionResponse{
		Position: position,
		Total:    len(peers),
		Category: string(visit.Category),
		Score:    *visit.Score,
	}, nil
}

// CleanupExpiredSessions is the periodic safety-net sweep behind the store's
// own TTL expiry.
func (s *rankingService) CleanupExpiredSessions(ctx context.Context) (int, error) {
	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("ranking", "expired sessions removed", map[string]interface{}{
			"count": removed,
		})
	}
	return removed, nil
}

// ownedSession loads a session and hides other users' sessions behind the
// same not-found error as missing ones.
func (s *rankingService) ownedSession(ctx context.Context, userId, sessionId uuid.UUID) (*entity.ComparisonSession, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperr.NewNotFound("comparison session not found")
	}
	return session, nil
}

// stateResponse renders a session as either its next prompt or its result.
func (s *rankingService) stateResponse(ctx context.Context, session *entity.ComparisonSession) (*dto.ComparisonStateResponse, error) {
	resp := &dto.ComparisonStateResponse{
		SessionId:  session.Id,
		IsComplete: session.IsComplete,
	}

	if session.IsComplete {
		resp.Result = &dto.ComparisonResult{
			Score:           *session.FinalScore,
			Category:        string(session.FinalCategory),
			InsertionIndex:  session.Cursor.InsertionIndex(),
			ComparisonsUsed: session.Cursor.Completed,
		}
		return resp, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	opponent, err := uow.VisitRepository().FindOne(ctx,
		specification.ByID{ID: session.SortedVisitIds[session.Cursor.Mid]},
	)
	if err != nil {
		return nil, err
	}
	if opponent == nil {
		return nil, apperr.NewConflict("a compared visit no longer exists")
	}

	names, err := resolveLocationNames(ctx, uow, []*entity.Visit{opponent})
	if err != nil {
		return nil, err
	}

	locationName := ""
	if id := opponent.LocationId(); id != nil {
		locationName = names[*id]
	}

	resp.Comparison = &dto.ComparisonPrompt{
		VisitId:         opponent.Id,
		LocationName:    locationName,
		NewLocationName: newLocationName(session.NewLocation),
		Progress: dto.ComparisonProgress{
			Current: session.Cursor.Completed + 1,
			Total:   session.Cursor.Total,
		},
	}
	return resp, nil
}

func newLocationName(nl entity.NewLocation) string {
	if nl.VisitType == entity.VisitTypeCountry {
		return nl.CountryName
	}
	return nl.NeighborhoodName
}

// resolveLocationNames batches name lookups for a mixed list of visits.
func resolveLocationNames(ctx context.Context, uow unitofwork.UnitOfWork, visits []*entity.Visit) (map[uuid.UUID]string, error) {
	neighborhoodIds := make([]uuid.UUID, 0)
	countryIds := make([]uuid.UUID, 0)
	for _, v := range visits {
		switch {
		case v.VisitType == entity.VisitTypeNeighborhood && v.NeighborhoodId != nil:
			neighborhoodIds = append(neighborhoodIds, *v.NeighborhoodId)
		case v.VisitType == entity.VisitTypeCountry && v.CountryId != nil:
			countryIds = append(countryIds, *v.CountryId)
		}
	}

	names := make(map[uuid.UUID]string)
	if len(neighborhoodIds) > 0 {
		neighborhoods, err := uow.NeighborhoodRepository().FindAll(ctx, specification.ByIDs{IDs: neighborhoodIds})
		if err != nil {
			return nil, err
		}
		for _, n := range neighborhoods {
			names[n.Id] = n.Name
		}
	}
	if len(countryIds) > 0 {
		countries, err := uow.CountryRepository().FindAll(ctx, specification.ByIDs{IDs: countryIds})
		if err != nil {
			return nil, err
		}
		for _, c := range countries {
			names[c.Id] = c.Name
		}
	}
	return names, nil
}
