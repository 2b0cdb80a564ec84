package services

import (
	"context"
	"time"

	"metabolic-care/models"
	"metabolic-care/triage"
)

const (
	WarningVeryHigh = "Very high readings detected. If you feel unwell or readings stay high, seek medical care."
	WarningLow      = "Low readings detected. Treat low glucose promptly and discuss with your clinician."
)

type AdherenceSummary struct {
	Followed int     `json:"followed"`
	Total    int     `json:"total"`
	Percent  float64 `json:"percent"`
}

type GlucoseSummary struct {
	Count         int     `json:"count"`
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	VeryHighCount int     `json:"very_high_count"`
	LowCount      int     `json:"low_count"`
}

type GlucosePoint struct {
	MeasuredAt time.Time `json:"measured_at"`
	Value      float64   `json:"value"`
}

type DashboardSummary struct {
	Adherence AdherenceSummary `json:"adherence"`
	Glucose   GlucoseSummary   `json:"glucose"`
	Warnings  []string         `json:"warnings"`
	CheckIns  []models.CheckIn `json:"checkins"`
	Series    []GlucosePoint   `json:"series"`
}

// DashboardService is read only and stays available under RED triage.
type DashboardService struct {
	checkins *CheckInService
	glucose  *GlucoseService
	th       triage.Thresholds
}

func NewDashboardService(checkins *CheckInService, glucose *GlucoseService, th triage.Thresholds) *DashboardService {
	return &DashboardService{checkins: checkins, glucose: glucose, th: th}
}

func (s *DashboardService) Summary(ctx context.Context, userKey string) (*DashboardSummary, error) {
	cis, err := s.checkins.List(ctx, userKey)
	if err != nil {
		return nil, err
	}
	logs, err := s.glucose.List(ctx, userKey)
	if err != nil {
		return nil, err
	}

	out := &DashboardSummary{
		Warnings: []string{},
		CheckIns: cis,
		Series:   make([]GlucosePoint, 0, len(logs)),
	}
	if out.CheckIns == nil {
		out.CheckIns = []models.CheckIn{}
	}

	for _, c := range cis {
		if c.FollowedPlan {
			out.Adherence.Followed++
		}
	}
	out.Adherence.Total = len(cis)
	out.Adherence.Percent = pct(out.Adherence.Followed, out.Adherence.Total)

	values := make([]float64, 0, len(logs))
	for _, g := range logs {
		values = append(values, g.Value)
		out.Series = append(out.Series, GlucosePoint{MeasuredAt: g.MeasuredAt, Value: g.Value})
		if g.Value >= s.th.VeryHigh {
			out.Glucose.VeryHighCount++
		}
		if g.Value < s.th.Hypo {
			out.Glucose.LowCount++
		}
	}
	out.Glucose.Count = len(values)
	out.Glucose.Mean = round2(triage.Mean(values))
	out.Glucose.StdDev = round2(triage.SampleStdDev(values))

	if out.Glucose.VeryHighCount > 0 {
		out.Warnings = append(out.Warnings, WarningVeryHigh)
	}
	if out.Glucose.LowCount > 0 {
		out.Warnings = append(out.Warnings, WarningLow)
	}
	return out, nil
}
