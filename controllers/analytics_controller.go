package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-booking/services"
	"hotel-booking/utils"
)

type AnalyticsController struct {
	Service *services.AnalyticsService
}

func NewAnalyticsController(service *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Service: service}
}

type analyticsResponse struct {
	Labels     []string `json:"labels"`
	Values     []int    `json:"values"`
	ChartLabel string   `json:"chartLabel"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Interval   string   `json:"interval"`
	ChartType  string   `json:"chartType"`
	PeakValue  *int     `json:"peakValue,omitempty"`
	PeakPeriod *string  `json:"peakPeriod,omitempty"`
}

// OrderVolume handles GET /api/analytics/orders. Defaults: from the first
// of the current month until today, weekly buckets, raw counts.
func (ac *AnalyticsController) OrderVolume(c *gin.Context) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
			return
		}
		start = t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
			return
		}
		end = t
	}
	if end.Before(start) {
		utils.JSONError(c, http.StatusBadRequest, "end_date must not be before start_date")
		return
	}

	interval := c.DefaultQuery("interval", services.IntervalWeek)
	chartType := c.DefaultQuery("chart_type", "count")

	series, err := ac.Service.OrderVolume(start, end, interval)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "analytics query failed")
		return
	}

	resp := analyticsResponse{
		Labels:    make([]string, 0, len(series)),
		Values:    make([]int, 0, len(series)),
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Interval:  interval,
		ChartType: chartType,
	}
	for _, pc := range series {
		switch interval {
		case services.IntervalMonth:
			resp.Labels = append(resp.Labels, pc.Period.Format("January 2006"))
		case services.IntervalYear:
			resp.Labels = append(resp.Labels, pc.Period.Format("2006"))
		default:
			resp.Labels = append(resp.Labels, pc.Period.Format("02.01.2006"))
		}
		resp.Values = append(resp.Values, pc.Count)
	}

	switch chartType {
	case "empty":
		// mark periods without orders
		for i, v := range resp.Values {
			if v == 0 {
				resp.Values[i] = 1
			} else {
				resp.Values[i] = 0
			}
		}
		resp.ChartLabel = "Periods without orders"
	case "peak":
		resp.ChartLabel = "Peak order volume"
		if len(resp.Values) > 0 {
			peakIdx := 0
			for i, v := range resp.Values {
				if v > resp.Values[peakIdx] {
					peakIdx = i
				}
			}
			peak := resp.Values[peakIdx]
			label := resp.Labels[peakIdx]
			resp.PeakValue = &peak
			resp.PeakPeriod = &label
		}
	default:
		resp.ChartLabel = "Orders per period"
	}

	utils.JSONSuccess(c, http.StatusOK, resp)
}
