package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/formacentre/training-service/internal/models"
	"github.com/formacentre/training-service/internal/repositories"
)

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehiclePostgreSQL creates the vehicle repository
func NewVehiclePostgreSQL(db *gorm.DB) repositories.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, handleDBError(err, "get vehicle by id")
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return handleDBError(err, "create vehicle")
	}
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	if err := r.db.WithContext(ctx).Save(vehicle).Error; err != nil {
		return handleDBError(err, "update vehicle")
	}
	return nil
}

func (r *vehicleRepository) ListActive(ctx context.Context) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("registration ASC").
		Find(&vehicles).Error
	if err != nil {
		return nil, handleDBError(err, "list active vehicles")
	}
	return vehicles, nil
}
