package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/escalation"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/route"
	"github.com/shenikar/safetrail_monitoring/internal/service/mocks"
	"github.com/shenikar/safetrail_monitoring/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockMonitoringService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockMonitoringService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	// Ключи не настроены: аутентификация отключена, тесты маршрутов
	// проверяют сами хэндлеры
	cfg := &config.Config{
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSaveProfile_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := SaveProfileRequest{
		UserID:          "user-1",
		Name:            "Test User",
		Phone:           "+15550001",
		RiskThreshold:   0.7,
		CheckInInterval: 300,
		EmergencyContacts: []EmergencyContactDTO{
			{Name: "Contact", Phone: "+15550002"},
		},
	}

	mockService.EXPECT().
		SaveProfile(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, profile *models.UserProfile) error {
			profile.CreatedAt = time.Now()
			profile.UpdatedAt = time.Now()
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/user/profile", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ProfileResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, reqBody.UserID, resp.UserID)
	assert.Equal(t, 300, resp.CheckInInterval)
}

func TestSaveProfile_InvalidInterval(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := SaveProfileRequest{
		UserID:          "user-1",
		CheckInInterval: 42, // Не входит в разрешенный набор
	}

	mockService.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/user/profile", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CheckInInterval")
}

func TestSaveProfile_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/user/profile", bytes.NewBufferString(`{"user_id": "u"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestGetProfile_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedProfile := &models.UserProfile{
		UserID:          "user-1",
		Name:            "Test User",
		CheckInInterval: 600,
	}

	mockService.EXPECT().GetProfile(gomock.Any(), "user-1").Return(expectedProfile, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/user/profile/user-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ProfileResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, expectedProfile.UserID, resp.UserID)
	assert.Equal(t, expectedProfile.CheckInInterval, resp.CheckInInterval)
}

func TestGetProfile_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	serviceError := errors.New("profile not found")

	mockService.EXPECT().GetProfile(gomock.Any(), "missing").Return(nil, serviceError).Times(1)

	w := makeRequest(router, "GET", "/api/v1/user/profile/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "profile not found")
}

func TestStartJourney_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := StartJourneyRequest{
		UserID:        "user-1",
		TransportMode: "walking",
	}

	mockService.EXPECT().StartJourney(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/journey/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "monitoring started")
}

func TestStartJourney_AlreadyActive(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := StartJourneyRequest{UserID: "user-1"}

	mockService.EXPECT().
		StartJourney(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: %w", session.ErrSessionExists)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/journey/start", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "journey already active")
}

func TestStopJourney_NoActiveJourney(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		StopJourney(gomock.Any(), "user-1").
		Return(fmt.Errorf("service: %w", session.ErrNoActiveSession)).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/journey/stop/user-1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no active journey")
}

func TestAcknowledgeCheckIn_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := CheckInAckRequest{UserID: "user-1"}

	mockService.EXPECT().AcknowledgeCheckIn(gomock.Any(), "user-1").Return(nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/checkin/ack", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acknowledged")
}

func TestTriggerEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	caseID := uuid.New()
	reqBody := EmergencyTriggerRequest{
		UserID:  "user-1",
		Message: "Help needed",
	}
	expectedCase := &models.EscalationCase{
		ID:       caseID,
		UserID:   "user-1",
		Cause:    models.CauseManual,
		State:    models.EscalationContactsNotified,
		OpenedAt: time.Now(),
	}

	mockService.EXPECT().
		TriggerEmergency(gomock.Any(), "user-1", gomock.Any(), "Help needed", "").
		Return(expectedCase, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergency/trigger", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp CaseResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, caseID, resp.ID)
	assert.Equal(t, string(models.EscalationContactsNotified), resp.State)
}

func TestTriggerEmergency_AlreadyOpen(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := EmergencyTriggerRequest{UserID: "user-1"}

	mockService.EXPECT().
		TriggerEmergency(gomock.Any(), "user-1", gomock.Any(), "", "").
		Return(nil, escalation.ErrAlreadyOpen).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergency/trigger", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already open")
}

func TestTriggerEmergency_NoActiveJourney(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := EmergencyTriggerRequest{UserID: "user-1"}

	mockService.EXPECT().
		TriggerEmergency(gomock.Any(), "user-1", gomock.Any(), "", "").
		Return(nil, fmt.Errorf("service: %w", session.ErrNoActiveSession)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergency/trigger", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no active journey")
}

func TestGetCase_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetCase(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/emergency/invalid-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid case ID")
}

func TestCancelEscalation_NotCancellable(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	caseID := uuid.New()
	reqBody := EscalationActionRequest{UserID: "user-1"}

	mockService.EXPECT().
		CancelEscalation(gomock.Any(), "user-1", caseID).
		Return(escalation.ErrNotCancellable).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergency/%s/cancel", caseID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no longer cancellable")
}

func TestCancelEscalation_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	caseID := uuid.New()
	reqBody := EscalationActionRequest{UserID: "user-1"}

	mockService.EXPECT().CancelEscalation(gomock.Any(), "user-1", caseID).Return(nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergency/%s/cancel", caseID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cancelled")
}

func TestResolveEscalation_StillCancellable(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	caseID := uuid.New()
	reqBody := EscalationActionRequest{UserID: "user-1"}

	mockService.EXPECT().
		ResolveEscalation(gomock.Any(), "user-1", caseID).
		Return(escalation.ErrNotResolvable).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", fmt.Sprintf("/api/v1/emergency/%s/resolve", caseID), bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "still cancellable")
}

func TestResolveRoute_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := ResolveRouteRequest{Start: "55.75,37.61", End: "55.76,37.62"}
	distance := 1500.0
	duration := 1080.0
	expectedRoute := &models.ResolvedRoute{
		Points: []models.Location{
			{Latitude: 55.75, Longitude: 37.61},
			{Latitude: 55.76, Longitude: 37.62},
		},
		Distance: &distance,
		Duration: &duration,
	}

	mockService.EXPECT().
		ResolveRoute(gomock.Any(), "55.75,37.61", "55.76,37.62").
		Return(expectedRoute, nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/route/resolve", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp RouteResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp.Points, 2)
	assert.False(t, resp.Degraded)
	require.NotNil(t, resp.Distance)
	assert.Equal(t, distance, *resp.Distance)
}

func TestResolveRoute_LocationNotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := ResolveRouteRequest{Start: "Somewhere", End: "Nowhere"}

	mockService.EXPECT().
		ResolveRoute(gomock.Any(), "Somewhere", "Nowhere").
		Return(nil, &route.LocationNotFoundError{Which: "end", Query: "Nowhere"}).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/route/resolve", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "location not found")
}

func TestResolveRoute_InvalidCoordinates(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := ResolveRouteRequest{Start: "95.0,37.61", End: "55.76,37.62"}

	mockService.EXPECT().
		ResolveRoute(gomock.Any(), "95.0,37.61", "55.76,37.62").
		Return(nil, route.ErrInvalidCoordinates).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/route/resolve", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid coordinates")
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	expectedStats := &models.MonitoringStats{ActiveJourneys: 3, UserCount: 42}

	mockService.EXPECT().GetStats(gomock.Any()).Return(expectedStats, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/stats", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp StatsResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ActiveJourneys)
	assert.Equal(t, 42, resp.UserCount)
}

func TestGetStats_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	serviceError := errors.New("db down")

	mockService.EXPECT().GetStats(gomock.Any()).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "GET", "/api/v1/stats", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestHealthCheck(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestSessionWS_NoActiveJourney(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().Session("user-1").Return(nil, false).Times(1)

	w := makeRequest(router, "GET", "/api/v1/ws/user-1", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no active journey")
}

func TestRegisterRoutes_ProtectedRequireAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockMonitoringService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	handler := NewHandler(mockService, logger, cfg)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"))

	// Без ключа защищенные маршруты отклоняются
	w := makeRequest(router, "GET", "/api/v1/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Health остается открытым
	w = makeRequest(router, "GET", "/api/v1/system/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// С валидным ключом запрос проходит до хэндлера
	mockService.EXPECT().GetStats(gomock.Any()).Return(&models.MonitoringStats{}, nil).Times(1)
	w = makeRequest(router, "GET", "/api/v1/stats", nil, map[string]string{"X-API-Key": "test-api-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/protected", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/protected", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	cfg := &config.Config{APIKeys: []string{"valid-key"}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/protected", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := makeRequest(router, "GET", "/protected", nil, map[string]string{"X-API-Key": "wrong-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
