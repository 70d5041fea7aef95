package emergency

import (
	"context"
	"time"

	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type Filter struct {
	From     *time.Time
	To       *time.Time
	Status   Status
	Location string // exact, case-insensitive on farmer location
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type LocationStats struct {
	Location       string        `json:"location"`
	CountsByStatus []StatusCount `json:"countsByStatus"`
}

type MonthlyStats struct {
	Year           int           `json:"year"`
	Month          int           `json:"month"`
	CountsByStatus []StatusCount `json:"countsByStatus"`
	Total          int64         `json:"total"`
}

type Repository interface {
	// -------- Create / read --------
	CreateEmergency(
		ctx context.Context,
		e *models.Emergency,
	) error

	GetEmergency(
		ctx context.Context,
		emergencyID string,
	) (*models.Emergency, error)

	// -------- Listings (newest first) --------
	ListByAuthor(
		ctx context.Context,
		userID string,
		limit int,
	) ([]models.Emergency, error)

	ListByFarmerLocations(
		ctx context.Context,
		locations []string,
		limit int,
	) ([]models.Emergency, error)

	DistinctFarmerLocations(
		ctx context.Context,
	) ([]string, error)

	ListDetailed(
		ctx context.Context,
		f Filter,
	) ([]models.Emergency, error)

	// -------- State change --------
	// UpdateStatus writes to only when the stored status still equals from.
	UpdateStatus(
		ctx context.Context,
		emergencyID string,
		from Status,
		to Status,
	) error

	// -------- Aggregates --------
	// location == "" means every location.
	CountByLocation(
		ctx context.Context,
		location string,
	) ([]LocationStats, error)

	CountByMonth(
		ctx context.Context,
		location string,
		loc *time.Location,
	) ([]MonthlyStats, error)
}
