package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-booking/models"
)

// Analytics intervals.
const (
	IntervalWeek  = "week"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// PeriodCount is one zero-filled bucket of the order-volume series.
type PeriodCount struct {
	Period time.Time `json:"period"`
	Count  int       `json:"count"`
}

// AnalyticsService aggregates order volume over check-in dates.
type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// OrderVolume buckets orders with check_in inside [start, end] by the
// truncated period and fills gaps with zero counts, so charts always show
// the full range. Unknown intervals fall back to weekly.
func (s *AnalyticsService) OrderVolume(start, end time.Time, interval string) ([]PeriodCount, error) {
	if interval != IntervalWeek && interval != IntervalMonth && interval != IntervalYear {
		interval = IntervalWeek
	}

	var checkIns []time.Time
	if err := s.DB.Model(&models.Order{}).
		Where("check_in BETWEEN ? AND ?", start, end).
		Pluck("check_in", &checkIns).Error; err != nil {
		return nil, fmt.Errorf("failed to load order check-ins: %w", err)
	}

	counts := make(map[time.Time]int, len(checkIns))
	for _, ci := range checkIns {
		counts[truncatePeriod(ci, interval)]++
	}

	var series []PeriodCount
	for cur := truncatePeriod(start, interval); !cur.After(end); cur = nextPeriod(cur, interval) {
		series = append(series, PeriodCount{Period: cur, Count: counts[cur]})
	}
	return series, nil
}

// truncatePeriod maps a date onto the start of its period: the Monday of
// the week, the first of the month, or January 1st of the year.
func truncatePeriod(t time.Time, interval string) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch interval {
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case IntervalYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		weekday := (int(t.Weekday()) + 6) % 7 // Monday = 0
		return t.AddDate(0, 0, -weekday)
	}
}

func nextPeriod(t time.Time, interval string) time.Time {
	switch interval {
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	case IntervalYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}
