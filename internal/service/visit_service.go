package service

import (
	"context"
	"encoding/json"
	"time"

	"place-journal-be/internal/dto"
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/logger"
	"place-journal-be/internal/repository/contract"
	"place-journal-be/internal/repository/specification"
	"place-journal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IVisitService interface {
	// MaterializeFromSession turns a completed comparison session into a
	// persisted visit, resolving the session's raw names into geography ids.
	MaterializeFromSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.VisitResponse, error)
	Show(ctx context.Context, userId, visitId uuid.UUID) (*dto.VisitResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID, visitType string) ([]*dto.VisitResponse, error)
	Delete(ctx context.Context, userId, visitId uuid.UUID) error
}

type visitService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessions         contract.ComparisonSessionRepository
	geography        IGeographyService
	publisherService IPublisherService
	log              logger.ILogger
}

func NewVisitService(
	uowFactory unitofwork.RepositoryFactory,
	sessions contract.ComparisonSessionRepository,
	geography IGeographyService,
	publisherService IPublisherService,
	log logger.ILogger,
) IVisitService {
	return &visitService{
		uowFactory:       uowFactory,
		sessions:         sessions,
		geography:        geography,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *visitService) MaterializeFromSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.VisitResponse, error) {
	session, err := s.sessions.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperr.NewNotFound("comparison session not found")
	}
	if !session.IsComplete || session.FinalScore == nil {
		return nil, apperr.NewConflict("comparison session is not complete")
	}

	nl := session.NewLocation
	var neighborhoodId, countryId *uuid.UUID
	var locationName string
	switch nl.VisitType {
	case entity.VisitTypeCountry:
		country, err := s.geography.ResolveCountry(ctx, nl.CountryName)
		if err != nil {
			return nil, err
		}
		countryId = &country.Id
		locationName = country.Name
	default:
		neighborhood, err := s.geography.ResolveNeighborhood(ctx, nl.NeighborhoodName, nl.BoroughName)
		if err != nil {
			return nil, err
		}
		neighborhoodId = &neighborhood.Id
		locationName = neighborhood.Name
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// One visit per (user, location): re-ranking the same place updates the
	// existing row instead of duplicating it.
	locationSpecs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if countryId != nil {
		locationSpecs = append(locationSpecs, specification.ByCountryID{CountryID: *countryId})
	} else {
		locationSpecs = append(locationSpecs, specification.ByNeighborhoodID{NeighborhoodID: *neighborhoodId})
	}
	visit, err := uow.VisitRepository().FindOne(ctx, locationSpecs...)
	if err != nil {
		return nil, err
	}

	score := *session.FinalScore
	if visit != nil {
		visit.Visited = nl.Visited
		visit.Notes = nl.Notes
		visit.VisitDate = nl.VisitDate
		visit.Score = &score
		visit.Category = session.FinalCategory
		if err := uow.VisitRepository().Update(ctx, visit); err != nil {
			return nil, err
		}
	} else {
		visit = &entity.Visit{
			Id:             uuid.New(),
			UserId:         userId,
			VisitType:      nl.VisitType,
			NeighborhoodId: neighborhoodId,
			CountryId:      countryId,
			Visited:        nl.Visited,
			Notes:          nl.Notes,
			VisitDate:      nl.VisitDate,
			Score:          &score,
			Category:       session.FinalCategory,
			CreatedAt:      time.Now().UTC(),
		}
		if err := uow.VisitRepository().Create(ctx, visit); err != nil {
			return nil, err
		}
	}

	s.publishVisitScored(ctx, visit)

	s.log.Info("visit", "session materialized", map[string]interface{}{
		"session_id": session.Id,
		"visit_id":   visit.Id,
		"score":      score,
		"category":   visit.Category,
	})

	return visitResponse(visit, locationName), nil
}

func (s *visitService) Show(ctx context.Context, userId, visitId uuid.UUID) (*dto.VisitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visit, err := uow.VisitRepository().FindOne(ctx,
		specification.ByID{ID: visitId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, apperr.NewNotFound("visit not found")
	}

	names, err := resolveLocationNames(ctx, uow, []*entity.Visit{visit})
	if err != nil {
		return nil, err
	}
	return visitResponse(visit, nameFor(visit, names)), nil
}

func (s *visitService) GetAll(ctx context.Context, userId uuid.UUID, visitType string) ([]*dto.VisitResponse, error) {
	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if visitType != "" {
		specs = append(specs, specification.ByVisitType{VisitType: visitType})
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

	result := make([]*dto.VisitResponse, len(visits))
	for i, v := range visits {
		result[i] = visitResponse(v, nameFor(v, names))
	}
	return result, nil
}

func (s *visitService) Delete(ctx context.Context, userId, visitId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	visit, err := uow.VisitRepository().FindOne(ctx,
		specification.ByID{ID: visitId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if visit == nil {
		return apperr.NewNotFound("visit not found")
	}

	if err := uow.VisitRepository().Delete(ctx, visitId); err != nil {
		return err
	}

	// Aggregates count this visit; trigger a recompute.
	s.publishVisitScored(ctx, visit)
	return nil
}

func (s *visitService) publishVisitScored(ctx context.Context, visit *entity.Visit) {
	locationId := visit.LocationId()
	if locationId == nil {
		return
	}

	payload, err := json.Marshal(dto.VisitScoredMessage{
		VisitType:  string(visit.VisitType),
		LocationId: *locationId,
	})
	if err != nil {
		s.log.Error("visit", "failed to marshal visit scored message", map[string]interface{}{
			"visit_id": visit.Id,
			"error":    err.Error(),
		})
		return
	}

	// Stats are best-effort; a lost event only delays the aggregate.
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Error("visit", "failed to publish visit scored message", map[string]interface{}{
			"visit_id": visit.Id,
			"error":    err.Error(),
		})
	}
}

func nameFor(visit *entity.Visit, names map[uuid.UUID]string) string {
	if id := visit.LocationId(); id != nil {
		return names[*id]
	}
	return ""
}

func visitResponse(visit *entity.Visit, locationName string) *dto.VisitResponse {
	resp := &dto.VisitResponse{
		Id:           visit.Id,
		VisitType:    string(visit.VisitType),
		LocationName: locationName,
		Visited:      visit.Visited,
		Notes:        visit.Notes,
		VisitDate:    visit.VisitDate,
		Score:        visit.Score,
		Category:     string(visit.Category),
		CreatedAt:    visit.CreatedAt,
	}
	if id := visit.LocationId(); id != nil {
		resp.LocationId = *id
	}
	return resp
}
