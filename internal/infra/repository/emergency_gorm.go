package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type EmergencyGormRepository struct {
	db *gorm.DB
}

func NewEmergencyGormRepository(db *gorm.DB) *EmergencyGormRepository {
	return &EmergencyGormRepository{db: db}
}

// --------------------------------------------------
// Create / read
// --------------------------------------------------

func (r *EmergencyGormRepository) CreateEmergency(
	ctx context.Context,
	e *models.Emergency,
) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmergencyGormRepository) GetEmergency(
	ctx context.Context,
	emergencyID string,
) (*models.Emergency, error) {

	var e models.Emergency
	if err := r.db.WithContext(ctx).
		Where("emergency_id = ?", emergencyID).
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *EmergencyGormRepository) ListByAuthor(
	ctx context.Context,
	userID string,
	limit int,
) ([]models.Emergency, error) {

	var list []models.Emergency
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *EmergencyGormRepository) ListByFarmerLocations(
	ctx context.Context,
	locations []string,
	limit int,
) ([]models.Emergency, error) {

	if len(locations) == 0 {
		return []models.Emergency{}, nil
	}

	var list []models.Emergency
	if err := r.db.WithContext(ctx).
		Where("farmer_location IN ?", locations).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *EmergencyGormRepository) DistinctFarmerLocations(
	ctx context.Context,
) ([]string, error) {

	var locations []string
	if err := r.db.WithContext(ctx).
		Model(&models.Emergency{}).
		Where("farmer_location <> ''").
		Distinct("farmer_location").
		Pluck("farmer_location", &locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *EmergencyGormRepository) ListDetailed(
	ctx context.Context,
	f domain.Filter,
) ([]models.Emergency, error) {

	q := r.db.WithContext(ctx).Model(&models.Emergency{})

	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Location != "" {
		q = q.Where("LOWER(farmer_location) = LOWER(?)", f.Location)
	}

	var list []models.Emergency
	if err := q.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *EmergencyGormRepository) UpdateStatus(
	ctx context.Context,
	emergencyID string,
	from domain.Status,
	to domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Emergency{}).
		Where("emergency_id = ? AND status = ?", emergencyID, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	if _, err := r.GetEmergency(ctx, emergencyID); err != nil {
		return err
	}
	return domain.ErrStaleStatus
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

func (r *EmergencyGormRepository) CountByLocation(
	ctx context.Context,
	location string,
) ([]domain.LocationStats, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Emergency{}).
		Select("location, status, COUNT(*) AS count")
	if location != "" {
		q = q.Where("LOWER(location) = LOWER(?)", location)
	}

	var rows []domain.StatusCountRow
	if err := q.
		Group("location, status").
		Order("location, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return domain.GroupByLocation(rows), nil
}

func (r *EmergencyGormRepository) CountByMonth(
	ctx context.Context,
	location string,
	loc *time.Location,
) ([]domain.MonthlyStats, error) {

	if loc == nil {
		loc = time.UTC
	}
	tz := loc.String()

	q := r.db.WithContext(ctx).
		Model(&models.Emergency{}).
		Select(
			"CAST(EXTRACT(YEAR FROM created_at AT TIME ZONE ?) AS INTEGER) AS year, "+
				"CAST(EXTRACT(MONTH FROM created_at AT TIME ZONE ?) AS INTEGER) AS month, "+
				"status, COUNT(*) AS count",
			tz, tz,
		)
	if location != "" {
		q = q.Where("LOWER(location) = LOWER(?)", location)
	}

	var rows []domain.StatusCountRow
	if err := q.
		Group("year, month, status").
		Order("year, month, status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return domain.GroupByMonth(rows), nil
}

var _ domain.Repository = (*EmergencyGormRepository)(nil)
