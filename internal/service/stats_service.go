package service

import (
	"context"
	"encoding/json"

	"place-journal-be/internal/dto"
	"place-journal-be/internal/entity"
	"place-journal-be/internal/pkg/apperr"
	"place-journal-be/internal/pkg/logger"
	"place-journal-be/internal/repository/specification"
	"place-journal-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IStatsService serves location popularity aggregates and, via Consume,
// keeps them current by recomputing a location's row each time a visit
// there is scored.
type IStatsService interface {
	Consume(ctx context.Context) error
	GetLocationStat(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) (*dto.LocationStatResponse, error)
	GetTopLocations(ctx context.Context, visitType entity.VisitType, limit int) ([]*dto.LocationStatResponse, error)
}

type statsService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewStatsService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IStatsService {
	return &statsService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (s *statsService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *statsService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.VisitScoredMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("stats", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	if err := s.recompute(ctx, entity.VisitType(payload.VisitType), payload.LocationId); err != nil {
		s.log.Error("stats", "failed to recompute location stat", map[string]interface{}{
			"visit_type":  payload.VisitType,
			"location_id": payload.LocationId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

// recompute rebuilds one location's aggregate row from all visits that
// reference it, across every user.
func (s *statsService) recompute(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByVisitType{VisitType: string(visitType)},
	}
	if visitType == entity.VisitTypeCountry {
		specs = append(specs, specification.ByCountryID{CountryID: locationId})
	} else {
		specs = append(specs, specification.ByNeighborhoodID{NeighborhoodID: locationId})
	}

	visits, err := uow.VisitRepository().FindAll(ctx, specs...)
	if err != nil {
		return err
	}

	stat := &entity.LocationStat{
		VisitType:      visitType,
		LocationId:     locationId,
		VisitCount:     len(visits),
		CategoryCounts: map[string]int{},
	}
	sum := 0.0
	for _, v := range visits {
		if v.Score == nil {
			continue
		}
		stat.RatedCount++
		sum += *v.Score
		stat.CategoryCounts[string(v.Category)]++
	}
	if stat.RatedCount > 0 {
		stat.AverageScore = sum / float64(stat.RatedCount)
	}

	return uow.LocationStatRepository().Upsert(ctx, stat)
}

func (s *statsService) GetLocationStat(ctx context.Context, visitType entity.VisitType, locationId uuid.UUID) (*dto.LocationStatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stat, err := uow.LocationStatRepository().FindByLocation(ctx, visitType, locationId)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return nil, apperr.NewNotFound("no stats recorded for this location")
	}

	return statResponse(stat), nil
}

// GetTopLocations lists the highest-averaging locations of one type.
func (s *statsService) GetTopLocations(ctx context.Context, visitType entity.VisitType, limit int) ([]*dto.LocationStatResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	stats, err := uow.LocationStatRepository().FindAll(ctx,
		specification.ByVisitType{VisitType: string(visitType)},
		specification.OrderBy{Field: "average_score", Desc: true},
		specification.Limit{Count: limit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.LocationStatResponse, len(stats))
	for i, stat := range stats {
		result[i] = statResponse(stat)
	}
	return result, nil
}

func statResponse(stat *entity.LocationStat) *dto.LocationStatResponse {
	return &dto.LocationStatResponse{
		VisitType:      string(stat.VisitType),
		LocationId:     stat.LocationId,
		VisitCount:     stat.VisitCount,
		RatedCount:     stat.RatedCount,
		AverageScore:   stat.AverageScore,
		CategoryCounts: stat.CategoryCounts,
		UpdatedAt:      stat.UpdatedAt,
	}
}
