package emergency

import (
	"context"
	"strings"
	"time"

	domain "github.com/R0UTS/Animal-Hospitalty/internal/domain/emergency"
	"github.com/R0UTS/Animal-Hospitalty/internal/httperr"
	"github.com/R0UTS/Animal-Hospitalty/internal/models"
)

type DetailedInput struct {
	FromDate string
	ToDate   string
	Status   string
	Location string
}

// Reports backs the admin dashboards.
type Reports struct {
	repo domain.Repository
	loc  *time.Location
}

func NewReports(repo domain.Repository, loc *time.Location) *Reports {
	if loc == nil {
		loc = time.UTC
	}
	return &Reports{repo: repo, loc: loc}
}

// locationFilter treats "" and "all" as no filter.
func locationFilter(raw string) string {
	loc := strings.TrimSpace(raw)
	if strings.EqualFold(loc, "all") {
		return ""
	}
	return loc
}

func (uc *Reports) Statistics(ctx context.Context, location string) ([]domain.LocationStats, error) {
	return uc.repo.CountByLocation(ctx, locationFilter(location))
}

func (uc *Reports) Monthly(ctx context.Context, location string) ([]domain.MonthlyStats, error) {
	return uc.repo.CountByMonth(ctx, locationFilter(location), uc.loc)
}

func (uc *Reports) Detailed(ctx context.Context, in DetailedInput) ([]models.Emergency, error) {
	var f domain.Filter

	if in.FromDate != "" {
		from, err := parseDate(in.FromDate, uc.loc, false)
		if err != nil {
			return nil, err
		}
		f.From = &from
	}
	if in.ToDate != "" {
		to, err := parseDate(in.ToDate, uc.loc, true)
		if err != nil {
			return nil, err
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrValidation("invalid_date_range", "toDate is before fromDate")
	}

	if in.Status != "" {
		s, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = s
	}
	f.Location = locationFilter(in.Location)

	return uc.repo.ListDetailed(ctx, f)
}

// parseDate accepts YYYY-MM-DD (whole day, in loc) or RFC3339. With endOfDay
// a plain date covers the full day.
func parseDate(raw string, loc *time.Location, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		if endOfDay {
			return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, httperr.ErrValidation("invalid_date", "Dates must be YYYY-MM-DD or RFC3339")
}
