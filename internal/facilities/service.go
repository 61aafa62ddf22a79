package facilities

import (
	"context"
	"fmt"
	"log/slog"

	"easypark/internal/shared/constants"
	"easypark/internal/slots"
	"easypark/pkg/cache"
	"easypark/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateFacilityRequest) (*Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context) ([]Facility, error)
	UpdateRates(ctx context.Context, id string, req UpdateRatesRequest) (*Facility, error)
	RateFor(ctx context.Context, facilityID uuid.UUID, class slots.VehicleClass) (float64, error)
	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	pool         slots.Pool
	cacheService cache.Service
}

func NewService(repo Repository, pool slots.Pool) Service {
	return &service{
		repo: repo,
		pool: pool,
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// Create provisions a facility together with its slot inventory: the facility
// row plus one AVAILABLE slot row per unit of configured capacity
func (s *service) Create(ctx context.Context, req CreateFacilityRequest) (*Facility, error) {
	if _, err := s.repo.GetByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("facility %q already exists", req.Name)
	}

	facility := &Facility{
		Name:      req.Name,
		Address:   req.Address,
		CarSlots:  req.CarSlots,
		BikeSlots: req.BikeSlots,
		CarRate:   req.CarRate,
		BikeRate:  req.BikeRate,
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}

	if err := s.pool.Provision(ctx, facility.ID, slots.ClassCar, req.CarSlots); err != nil {
		return nil, fmt.Errorf("failed to provision car slots: %w", err)
	}
	if err := s.pool.Provision(ctx, facility.ID, slots.ClassBike, req.BikeSlots); err != nil {
		return nil, fmt.Errorf("failed to provision bike slots: %w", err)
	}

	return facility, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Facility, error) {
	facilityID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID: %w", err)
	}

	if s.cacheService != nil {
		var cached Facility
		cacheKey := constants.BuildFacilityDetailKey(id)
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	facility, err := s.repo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		cacheKey := constants.BuildFacilityDetailKey(id)
		if err := s.cacheService.Set(ctx, cacheKey, facility, constants.TTL_FACILITY_DETAIL); err != nil {
			logger.GetDefault().Debug("failed to cache facility", slog.Any("error", err))
		}
	}

	return facility, nil
}

func (s *service) List(ctx context.Context) ([]Facility, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateRates(ctx context.Context, id string, req UpdateRatesRequest) (*Facility, error) {
	facilityID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid facility ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.CarRate != nil {
		updates["car_rate"] = *req.CarRate
	}
	if req.BikeRate != nil {
		updates["bike_rate"] = *req.BikeRate
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, facilityID, updates); err != nil {
			return nil, err
		}
		if s.cacheService != nil {
			if err := s.cacheService.Delete(ctx, constants.BuildFacilityDetailKey(id)); err != nil {
				logger.GetDefault().Debug("failed to invalidate facility cache", slog.Any("error", err))
			}
		}
	}

	return s.repo.GetByID(ctx, facilityID)
}

// RateFor looks up the facility's hourly rate for a vehicle class. This is
// the rate provider the parking ledger bills against.
func (s *service) RateFor(ctx context.Context, facilityID uuid.UUID, class slots.VehicleClass) (float64, error) {
	facility, err := s.GetByID(ctx, facilityID.String())
	if err != nil {
		return 0, err
	}
	return facility.RateFor(class), nil
}
