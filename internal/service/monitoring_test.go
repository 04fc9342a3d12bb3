package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/service/mocks"
	"github.com/shenikar/safetrail_monitoring/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestMonitoringService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestMonitoringService(t *testing.T) (*monitoringService, *mocks.MockProfileRepository, *mocks.MockCaseRepository, *mocks.MockTelemetryRepository, *mocks.MockRouteResolver) {
	ctrl := gomock.NewController(t)
	profileMock := mocks.NewMockProfileRepository(ctrl)
	caseMock := mocks.NewMockCaseRepository(ctrl)
	telemetryMock := mocks.NewMockTelemetryRepository(ctrl)
	resolverMock := mocks.NewMockRouteResolver(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		CheckInInterval:        5 * time.Minute,
		AckWindow:              2 * time.Minute,
		AuthoritiesDelay:       5 * time.Minute,
		ReconnectBase:          time.Second,
		ReconnectCap:           30 * time.Second,
		ReconnectMaxAttempts:   10,
		StatsTimeWindowMinutes: 60,
	}

	sessions := session.NewManager(cfg, logger, nil, caseMock, telemetryMock)
	svc := NewMonitoringService(profileMock, caseMock, telemetryMock, resolverMock, sessions, logger, cfg)
	return svc.(*monitoringService), profileMock, caseMock, telemetryMock, resolverMock
}

func TestSaveProfile_Success(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	profile := &models.UserProfile{
		UserID:          "user-1",
		CheckInInterval: 300,
	}

	// Ожидания
	profileMock.EXPECT().Save(ctx, profile).Return(nil).Times(1)
	profileMock.EXPECT().InvalidateProfileCache(ctx, "user-1").Return(nil).Times(1)

	// Действие
	err := svc.SaveProfile(ctx, profile)

	// Проверки
	require.NoError(t, err)
}

func TestSaveProfile_InvalidInterval(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	profile := &models.UserProfile{
		UserID:          "user-1",
		CheckInInterval: 42, // Не входит в разрешенный набор
	}

	// Ожидания: репозиторий не должен вызываться
	profileMock.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := svc.SaveProfile(ctx, profile)

	// Проверки
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check_in_interval")
}

func TestGetProfile_Success_FromCache(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	expectedProfile := &models.UserProfile{
		UserID: "user-1",
		Name:   "Профиль из кеша",
	}

	// Ожидания
	profileMock.EXPECT().
		GetProfileFromCache(ctx, "user-1").
		Return(expectedProfile, nil).
		Times(1)

	// Действие
	profile, err := svc.GetProfile(ctx, "user-1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedProfile, profile)
}

func TestGetProfile_Success_FromDB(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	expectedProfile := &models.UserProfile{
		UserID: "user-1",
		Name:   "Профиль из БД",
	}

	// Ожидания
	// 1. Промах кеша
	profileMock.EXPECT().
		GetProfileFromCache(ctx, "user-1").
		Return(nil, nil).
		Times(1)

	// 2. Попадание в БД
	profileMock.EXPECT().
		GetByUserID(ctx, "user-1").
		Return(expectedProfile, nil).
		Times(1)

	// 3. Запись в кеш
	profileMock.EXPECT().
		SetProfileCache(ctx, expectedProfile).
		Return(nil).
		Times(1)

	// Действие
	profile, err := svc.GetProfile(ctx, "user-1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedProfile, profile)
}

func TestGetProfile_NotFound(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	dbError := fmt.Errorf("не найдено")

	// Ожидания
	profileMock.EXPECT().GetProfileFromCache(ctx, "missing").Return(nil, nil).Times(1)
	profileMock.EXPECT().GetByUserID(ctx, "missing").Return(nil, dbError).Times(1)

	// Действие
	profile, err := svc.GetProfile(ctx, "missing")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, profile)
}

func TestStartJourney_DuplicateRejected(t *testing.T) {
	// Подготовка
	svc, profileMock, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()
	profile := &models.UserProfile{
		UserID:          "user-1",
		CheckInInterval: 300,
	}
	req := &models.JourneyRequest{UserID: "user-1"}

	// Ожидания: профиль запрашивается для каждого запуска
	profileMock.EXPECT().GetProfileFromCache(gomock.Any(), "user-1").Return(profile, nil).Times(2)

	// Действие
	err := svc.StartJourney(ctx, req)
	require.NoError(t, err)
	defer func() { _ = svc.StopJourney(ctx, "user-1") }()

	err = svc.StartJourney(ctx, req)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrSessionExists)
}

func TestStopJourney_NoActiveSession(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()

	// Действие
	err := svc.StopJourney(ctx, "nobody")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
}

func TestTriggerEmergency_NoActiveSession(t *testing.T) {
	// Подготовка
	svc, _, _, _, _ := newTestMonitoringService(t)
	ctx := context.Background()

	// Действие
	esc, err := svc.TriggerEmergency(ctx, "nobody", nil, "help", "manual")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNoActiveSession)
	assert.Nil(t, esc)
}

func TestResolveRoute_Success(t *testing.T) {
	// Подготовка
	svc, _, _, _, resolverMock := newTestMonitoringService(t)
	ctx := context.Background()
	expectedRoute := &models.ResolvedRoute{
		Points: []models.Location{
			{Latitude: 55.75, Longitude: 37.61},
			{Latitude: 55.76, Longitude: 37.62},
		},
	}

	// Ожидания
	resolverMock.EXPECT().
		Resolve(ctx, "55.75,37.61", "55.76,37.62").
		Return(expectedRoute, nil).
		Times(1)

	// Действие
	resolved, err := svc.ResolveRoute(ctx, "55.75,37.61", "55.76,37.62")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedRoute, resolved)
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	svc, _, _, telemetryMock, _ := newTestMonitoringService(t)
	ctx := context.Background()

	// Ожидания
	telemetryMock.EXPECT().CountActiveUsers(ctx, 60).Return(7, nil).Times(1)

	// Действие
	stats, err := svc.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ActiveJourneys)
	assert.Equal(t, 7, stats.UserCount)
}
