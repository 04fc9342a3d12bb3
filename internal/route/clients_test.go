package route

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger.WithField("test", true)
}

func TestNominatimGeocoder_Success(t *testing.T) {
	// Подготовка: сервер отдает координаты строками, как настоящий Nominatim
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Moscow", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "55.7504", "lon": "37.6175"}]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "ops@example.com", testLogEntry())

	// Действие
	loc, err := g.Geocode(context.Background(), "Moscow")

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, 55.7504, loc.Latitude)
	assert.Equal(t, 37.6175, loc.Longitude)
}

func TestNominatimGeocoder_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "", testLogEntry())

	// Пустой ответ - (nil, nil), решение о LocationNotFound принимает резолвер
	loc, err := g.Geocode(context.Background(), "Nowhere")

	require.NoError(t, err)
	assert.Nil(t, loc)
}

func TestNominatimGeocoder_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "", testLogEntry())

	loc, err := g.Geocode(context.Background(), "Moscow")

	require.Error(t, err)
	assert.Nil(t, loc)
	assert.Contains(t, err.Error(), "status 500")
}

func TestOSRMRouteService_Success(t *testing.T) {
	// Подготовка: GeoJSON-геометрия с парами [lng, lat]
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/route/v1/walking/")
		assert.Equal(t, "geojson", r.URL.Query().Get("geometries"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 1500.5,
				"duration": 1080.2,
				"geometry": {"coordinates": [[37.61, 55.75], [37.62, 55.76]]}
			}]
		}`))
	}))
	defer server.Close()

	s := NewOSRMRouteService(server.URL, "walking", testLogEntry())

	// Действие
	resolved, err := s.Route(context.Background(),
		models.Location{Latitude: 55.75, Longitude: 37.61},
		models.Location{Latitude: 55.76, Longitude: 37.62},
	)

	// Проверки: координаты перевернуты обратно в lat/lng
	require.NoError(t, err)
	require.Len(t, resolved.Points, 2)
	assert.Equal(t, 55.75, resolved.Points[0].Latitude)
	assert.Equal(t, 37.61, resolved.Points[0].Longitude)
	require.NotNil(t, resolved.Distance)
	assert.Equal(t, 1500.5, *resolved.Distance)
	require.NotNil(t, resolved.Duration)
	assert.Equal(t, 1080.2, *resolved.Duration)
	assert.False(t, resolved.Degraded)
}

func TestOSRMRouteService_NoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	s := NewOSRMRouteService(server.URL, "", testLogEntry())

	resolved, err := s.Route(context.Background(),
		models.Location{Latitude: 55.75, Longitude: 37.61},
		models.Location{Latitude: 55.76, Longitude: 37.62},
	)

	require.Error(t, err)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, ErrNoRoute)
}
