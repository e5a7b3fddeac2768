package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/markbates/goth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"foca/internal/database"
	"foca/internal/model"
)

type MockUsers struct {
	mock.Mock
}

var _ database.UserStore = (*MockUsers)(nil)

func (m *MockUsers) FindUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) FindAccessToken(ctx context.Context, token string) (*model.AccessToken, error) {
	args := m.Called(ctx, token)
	if t := args.Get(0); t != nil {
		return t.(*model.AccessToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) SaveGoogleCredentials(ctx context.Context, c *model.GoogleCredentials) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockUsers) FindGoogleCredentials(ctx context.Context, userID int64) (*model.GoogleCredentials, error) {
	args := m.Called(ctx, userID)
	if c := args.Get(0); c != nil {
		return c.(*model.GoogleCredentials), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) ListCalendarUsers(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

type MockFinances struct {
	mock.Mock
}

var _ database.FinanceStore = (*MockFinances)(nil)

func (m *MockFinances) ListFinances(ctx context.Context, userID int64, r model.DateRange) ([]model.FinanceRecord, error) {
	args := m.Called(ctx, userID, r)
	rows, _ := args.Get(0).([]model.FinanceRecord)
	return rows, args.Error(1)
}

func (m *MockFinances) RecentFinances(ctx context.Context, userID int64, limit int) ([]model.FinanceRecord, error) {
	args := m.Called(ctx, userID, limit)
	rows, _ := args.Get(0).([]model.FinanceRecord)
	return rows, args.Error(1)
}

func (m *MockFinances) InsertFinance(ctx context.Context, rec *model.FinanceRecord) error {
	args := m.Called(ctx, rec)
	if args.Error(0) == nil {
		rec.ID = 99
	}
	return args.Error(0)
}

func (m *MockFinances) DeleteFinance(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type MockHealth struct {
	mock.Mock
}

var _ database.HealthStore = (*MockHealth)(nil)

func (m *MockHealth) ListHealth(ctx context.Context, userID int64, from, to time.Time) ([]model.HealthRecord, error) {
	args := m.Called(ctx, userID, from, to)
	rows, _ := args.Get(0).([]model.HealthRecord)
	return rows, args.Error(1)
}

func (m *MockHealth) SumHealth(ctx context.Context, userID int64, c model.HealthCategory, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, c, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockHealth) LatestHealth(ctx context.Context, userID int64, c model.HealthCategory) (*model.HealthRecord, error) {
	args := m.Called(ctx, userID, c)
	if rec := args.Get(0); rec != nil {
		return rec.(*model.HealthRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockHealth) InsertHealth(ctx context.Context, rec *model.HealthRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockHealth) DeleteHealth(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type MockAcademic struct {
	mock.Mock
}

var _ database.AcademicStore = (*MockAcademic)(nil)

func (m *MockAcademic) ListAcademic(ctx context.Context, userID int64, from, to time.Time) ([]model.AcademicItem, error) {
	args := m.Called(ctx, userID, from, to)
	rows, _ := args.Get(0).([]model.AcademicItem)
	return rows, args.Error(1)
}

func (m *MockAcademic) InsertAcademic(ctx context.Context, item *model.AcademicItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockAcademic) DeleteAcademic(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

type MockSchedule struct {
	mock.Mock
}

var _ database.ScheduleStore = (*MockSchedule)(nil)

func (m *MockSchedule) ListSchedule(ctx context.Context, userID int64, from, to time.Time) ([]model.ScheduleEvent, error) {
	args := m.Called(ctx, userID, from, to)
	rows, _ := args.Get(0).([]model.ScheduleEvent)
	return rows, args.Error(1)
}

func (m *MockSchedule) UpcomingSchedule(ctx context.Context, userID int64, after time.Time, limit int) ([]model.ScheduleEvent, error) {
	args := m.Called(ctx, userID, after, limit)
	rows, _ := args.Get(0).([]model.ScheduleEvent)
	return rows, args.Error(1)
}

func (m *MockSchedule) InsertSchedule(ctx context.Context, ev *model.ScheduleEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockSchedule) DeleteSchedule(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchedule) ListUnsynced(ctx context.Context, userID int64) ([]model.ScheduleEvent, error) {
	args := m.Called(ctx, userID)
	rows, _ := args.Get(0).([]model.ScheduleEvent)
	return rows, args.Error(1)
}

func (m *MockSchedule) MarkSynced(ctx context.Context, id, userID int64, googleEventID string) error {
	return m.Called(ctx, id, userID, googleEventID).Error(0)
}

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) BeginUserAuth(w http.ResponseWriter, r *http.Request) {
	m.Called(w, r)
	http.Redirect(w, r, "https://accounts.example.com/auth", http.StatusTemporaryRedirect)
}

func (m *MockAuth) CompleteUserAuth(w http.ResponseWriter, r *http.Request) (goth.User, error) {
	args := m.Called(w, r)
	if args.Get(0) == nil {
		return goth.User{}, args.Error(1)
	}
	return args.Get(0).(goth.User), args.Error(1)
}

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) SyncUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type stubSessions struct {
	session *model.Session
}

func (s stubSessions) Load(http.ResponseWriter, *http.Request) *model.Session {
	return s.session
}

func (s stubSessions) Session(http.ResponseWriter, *http.Request) *model.Session {
	return s.session
}
