package facilities

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFacilityNotFound = errors.New("facility not found")

type Repository interface {
	Create(ctx context.Context, facility *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	GetByName(ctx context.Context, name string) (*Facility, error)
	List(ctx context.Context) ([]Facility, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, facility *Facility) error {
	return r.db.WithContext(ctx).Create(facility).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).First(&facility, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*Facility, error) {
	var facility Facility
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&facility).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}
	return &facility, nil
}

func (r *repository) List(ctx context.Context) ([]Facility, error) {
	var result []Facility
	err := r.db.WithContext(ctx).Order("name").Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&Facility{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFacilityNotFound
	}
	return nil
}
