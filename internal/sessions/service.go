package sessions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"easypark/internal/billing"
	"easypark/internal/gateevents"
	"easypark/internal/recognition"
	"easypark/internal/shared/constants"
	"easypark/internal/slots"
	"easypark/pkg/cache"
	"easypark/pkg/logger"

	"github.com/google/uuid"
)

// RateProvider resolves a facility's hourly rate for a vehicle class. The
// facilities service satisfies this.
type RateProvider interface {
	RateFor(ctx context.Context, facilityID uuid.UUID, class slots.VehicleClass) (float64, error)
}

// PlateReader turns a raw plate image into a best-effort plate string
type PlateReader interface {
	Recognize(ctx context.Context, imageBytes []byte) recognition.Result
}

// Service orchestrates gate entry and exit: plate recognition, slot
// reservation, billing and the audit event per operation
type Service interface {
	OpenEntry(ctx context.Context, holderID, facilityID uuid.UUID, class slots.VehicleClass, imageBytes []byte) (*ParkingSession, error)
	CloseExit(ctx context.Context, holderID, facilityID uuid.UUID) (*ParkingSession, string, error)
	SummaryFor(ctx context.Context, holderID, facilityID uuid.UUID) (*SummaryResponse, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	pool         slots.Pool
	rates        RateProvider
	reader       PlateReader
	publisher    gateevents.Publisher
	refBuilder   *billing.ReferenceBuilder
	cacheService cache.Service
	logger       *logger.Logger

	// injectable clock
	now func() time.Time
}

func NewService(repo Repository, pool slots.Pool, rates RateProvider, reader PlateReader, publisher gateevents.Publisher, refBuilder *billing.ReferenceBuilder) Service {
	return &service{
		repo:       repo,
		pool:       pool,
		rates:      rates,
		reader:     reader,
		publisher:  publisher,
		refBuilder: refBuilder,
		logger:     logger.GetDefault(),
		now:        time.Now,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// OpenEntry runs recognition, reserves a slot and opens the session. A
// degraded recognition still allocates a slot; an exhausted pool rejects the
// entry with no session created.
func (s *service) OpenEntry(ctx context.Context, holderID, facilityID uuid.UUID, class slots.VehicleClass, imageBytes []byte) (*ParkingSession, error) {
	result := s.reader.Recognize(ctx, imageBytes)

	session := &ParkingSession{
		FacilityID:    facilityID,
		HolderID:      holderID,
		VehicleClass:  class,
		VehicleNumber: result.Plate,
		EntryTime:     s.now().UTC(),
	}

	if err := s.repo.OpenEntry(ctx, session); err != nil {
		return nil, err
	}

	event := gateevents.NewGateEvent(gateevents.EventEntryRecorded)
	event.FacilityID = facilityID
	event.HolderID = holderID
	event.SessionID = session.ID
	event.VehicleClass = string(class)
	event.VehicleNumber = session.VehicleNumber
	s.publish(ctx, event)

	s.invalidateSummaries(ctx, holderID, facilityID)

	return session, nil
}

// CloseExit finds the holder's open session at the facility, bills it,
// releases the slot and emits the payment reference. A release that finds no
// occupied slot still completes the exit but reports the inventory drift.
func (s *service) CloseExit(ctx context.Context, holderID, facilityID uuid.UUID) (*ParkingSession, string, error) {
	session, err := s.repo.FindOpenSession(ctx, holderID, facilityID)
	if err != nil {
		return nil, "", err
	}

	exitTime := s.now().UTC()

	rate, err := s.rates.RateFor(ctx, facilityID, session.VehicleClass)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve facility rate: %w", err)
	}

	duration, amount, err := billing.Compute(session.EntryTime, exitTime, rate)
	if err != nil {
		return nil, "", err
	}

	session.ExitTime = &exitTime
	session.DurationHours = &duration
	session.Amount = &amount

	slotReleased, err := s.repo.CloseExit(ctx, session)
	if err != nil {
		return nil, "", err
	}

	if !slotReleased {
		drift := gateevents.NewGateEvent(gateevents.EventSlotInventoryInconsistent)
		drift.FacilityID = facilityID
		drift.HolderID = holderID
		drift.SessionID = session.ID
		drift.VehicleClass = string(session.VehicleClass)
		drift.Detail = "exit found no occupied slot to release"
		s.publish(ctx, drift)
	}

	event := gateevents.NewGateEvent(gateevents.EventExitRecorded)
	event.FacilityID = facilityID
	event.HolderID = holderID
	event.SessionID = session.ID
	event.VehicleClass = string(session.VehicleClass)
	event.VehicleNumber = session.VehicleNumber
	event.Amount = session.Amount
	s.publish(ctx, event)

	s.invalidateSummaries(ctx, holderID, facilityID)

	reference, err := s.refBuilder.Build(session.ID, session.Amount)
	if err != nil {
		return nil, "", err
	}

	return session, reference, nil
}

// SummaryFor aggregates the facility's live slot counts, its configured rates
// and the holder's session history. Read-only.
func (s *service) SummaryFor(ctx context.Context, holderID, facilityID uuid.UUID) (*SummaryResponse, error) {
	summary, err := s.slotSummary(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	rates := make(map[slots.VehicleClass]float64)
	for _, class := range []slots.VehicleClass{slots.ClassCar, slots.ClassBike} {
		rate, err := s.rates.RateFor(ctx, facilityID, class)
		if err != nil {
			return nil, err
		}
		rates[class] = rate
	}

	history, err := s.sessionHistory(ctx, holderID, facilityID)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		FacilityID: facilityID,
		Slots:      summary,
		Rates:      rates,
		Sessions:   history,
	}, nil
}

func (s *service) slotSummary(ctx context.Context, facilityID uuid.UUID) (slots.Summary, error) {
	if s.cacheService != nil {
		var cached slots.Summary
		key := constants.BuildSlotSummaryKey(facilityID.String())
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	summary, err := s.pool.Summarize(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		key := constants.BuildSlotSummaryKey(facilityID.String())
		if err := s.cacheService.Set(ctx, key, summary, constants.TTL_SLOT_SUMMARY); err != nil {
			s.logger.Debug("failed to cache slot summary", slog.Any("error", err))
		}
	}

	return summary, nil
}

func (s *service) sessionHistory(ctx context.Context, holderID, facilityID uuid.UUID) ([]SessionResponse, error) {
	if s.cacheService != nil {
		var cached []SessionResponse
		key := constants.BuildSessionHistoryKey(holderID.String(), facilityID.String())
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	records, err := s.repo.ListByHolderAndFacility(ctx, holderID, facilityID)
	if err != nil {
		return nil, err
	}

	history := make([]SessionResponse, 0, len(records))
	for i := range records {
		history = append(history, ToSessionResponse(&records[i]))
	}

	if s.cacheService != nil {
		key := constants.BuildSessionHistoryKey(holderID.String(), facilityID.String())
		if err := s.cacheService.Set(ctx, key, history, constants.TTL_SESSION_HISTORY); err != nil {
			s.logger.Debug("failed to cache session history", slog.Any("error", err))
		}
	}

	return history, nil
}

// publish sends the audit event; gate operations never fail because the
// event could not be delivered
func (s *service) publish(ctx context.Context, event *gateevents.GateEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish gate event",
			slog.String("type", string(event.Type)),
			slog.String("session_id", event.SessionID.String()),
			slog.Any("error", err))
	}
}

func (s *service) invalidateSummaries(ctx context.Context, holderID, facilityID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	keys := []string{
		constants.BuildSlotSummaryKey(facilityID.String()),
		constants.BuildSessionHistoryKey(holderID.String(), facilityID.String()),
	}
	for _, key := range keys {
		if err := s.cacheService.Delete(ctx, key); err != nil {
			s.logger.Debug("failed to invalidate summary cache", slog.String("key", key), slog.Any("error", err))
		}
	}
}
