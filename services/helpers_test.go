package services

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"metabolic-care/models"
	"metabolic-care/planner"
	"metabolic-care/triage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fakeCoach struct {
	mu     sync.Mutex
	swaps  []string
	tips   []string
	replay []string
}

func (f *fakeCoach) Swaps(_ context.Context, mealText string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swaps = append(f.swaps, mealText)
	return f.reply()
}

func (f *fakeCoach) Tips(_ context.Context, actualMeals string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tips = append(f.tips, actualMeals)
	return f.reply()
}

func (f *fakeCoach) reply() []string {
	if f.replay != nil {
		return f.replay
	}
	return FallbackSuggestions()
}

type fakePusher struct {
	mu    sync.Mutex
	calls []pushCall
}

type pushCall struct {
	userKey, title, body string
	data                 map[string]string
}

func (f *fakePusher) PushToUser(_ context.Context, userKey, title, body string, data map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pushCall{userKey, title, body, data})
}

type fixture struct {
	db        *gorm.DB
	coach     *fakeCoach
	pusher    *fakePusher
	profiles  *ProfileService
	plans     *PlanService
	checkins  *CheckInService
	glucose   *GlucoseService
	alerts    *AlertService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	th := triage.DefaultThresholds()
	p, err := planner.New(planner.DefaultCatalog(), planner.WithRand(rand.New(rand.NewPCG(7, 8))))
	require.NoError(t, err)

	f := &fixture{db: db, coach: &fakeCoach{}, pusher: &fakePusher{}}
	f.profiles = NewProfileService(db, triage.NewEngine(th))
	f.plans = NewPlanService(db, p, f.profiles, f.coach)
	f.checkins = NewCheckInService(db, f.profiles, f.coach)
	f.alerts = NewAlertService(db, NewRealtimeHub(), f.pusher)
	f.glucose = NewGlucoseService(db, f.profiles, f.alerts, th)
	f.dashboard = NewDashboardService(f.checkins, f.glucose, th)
	return f
}

// greenProfile saves a profile that triages GREEN.
func (f *fixture) greenProfile(t *testing.T, userKey string, mutate ...func(*ProfileInput)) *ProfileResult {
	t.Helper()
	in := ProfileInput{Name: "Ayesha", Age: 45, DiabetesType: "Type 2", HbA1c: 6.5}
	for _, m := range mutate {
		m(&in)
	}
	res, err := f.profiles.Save(context.Background(), userKey, in)
	require.NoError(t, err)
	return res
}

func (f *fixture) redProfile(t *testing.T, userKey string) {
	t.Helper()
	res, err := f.profiles.Save(context.Background(), userKey, ProfileInput{OtherMajorCondition: true})
	require.NoError(t, err)
	require.Equal(t, triage.Red, res.Triage.Tier)
}
