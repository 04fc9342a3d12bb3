package route

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/route/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestResolver(t *testing.T) (*Resolver, *mocks.MockGeocoder, *mocks.MockRouteService) {
	ctrl := gomock.NewController(t)
	geocoderMock := mocks.NewMockGeocoder(ctrl)
	routingMock := mocks.NewMockRouteService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	resolver := NewResolver(geocoderMock, routingMock, logger.WithField("test", true))
	return resolver, geocoderMock, routingMock
}

func TestResolve_LiteralCoordinates(t *testing.T) {
	// Подготовка
	resolver, geocoderMock, routingMock := newTestResolver(t)
	ctx := context.Background()
	start := models.Location{Latitude: 55.75, Longitude: 37.61}
	end := models.Location{Latitude: 55.76, Longitude: 37.62}
	distance := 1500.0
	duration := 1080.0
	expected := &models.ResolvedRoute{
		Points:   []models.Location{start, end},
		Distance: &distance,
		Duration: &duration,
	}

	// Ожидания: литеральные координаты не ходят в геокодер
	geocoderMock.EXPECT().Geocode(gomock.Any(), gomock.Any()).Times(0)
	routingMock.EXPECT().Route(ctx, start, end).Return(expected, nil).Times(1)

	// Действие
	resolved, err := resolver.Resolve(ctx, "55.75,37.61", "55.76, 37.62")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, resolved)
	assert.False(t, resolved.Degraded)
}

func TestResolve_OutOfRangeCoordinates(t *testing.T) {
	resolver, geocoderMock, routingMock := newTestResolver(t)
	ctx := context.Background()

	// Значения вне диапазона отклоняются, а не обрезаются
	geocoderMock.EXPECT().Geocode(gomock.Any(), gomock.Any()).Times(0)
	routingMock.EXPECT().Route(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	resolved, err := resolver.Resolve(ctx, "95.0,37.61", "55.76,37.62")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
	assert.Nil(t, resolved)
}

func TestResolve_GeocodesPlaceNames(t *testing.T) {
	// Подготовка
	resolver, geocoderMock, routingMock := newTestResolver(t)
	ctx := context.Background()
	start := models.Location{Latitude: 55.75, Longitude: 37.61}
	end := models.Location{Latitude: 59.93, Longitude: 30.31}

	geocoderMock.EXPECT().Geocode(ctx, "Moscow").Return(&start, nil).Times(1)
	geocoderMock.EXPECT().Geocode(ctx, "Saint Petersburg").Return(&end, nil).Times(1)
	routingMock.EXPECT().Route(ctx, start, end).
		Return(&models.ResolvedRoute{Points: []models.Location{start, end}}, nil).Times(1)

	// Действие
	resolved, err := resolver.Resolve(ctx, "Moscow", "Saint Petersburg")

	// Проверки
	require.NoError(t, err)
	assert.Len(t, resolved.Points, 2)
}

func TestResolve_EndNotFound(t *testing.T) {
	// Подготовка
	resolver, geocoderMock, routingMock := newTestResolver(t)
	ctx := context.Background()
	start := models.Location{Latitude: 55.75, Longitude: 37.61}

	// Пустой ответ геокодера - жесткий сбой с указанием конечной точки
	geocoderMock.EXPECT().Geocode(ctx, "Moscow").Return(&start, nil).Times(1)
	geocoderMock.EXPECT().Geocode(ctx, "Nowhere").Return(nil, nil).Times(1)
	routingMock.EXPECT().Route(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	resolved, err := resolver.Resolve(ctx, "Moscow", "Nowhere")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, resolved)

	var notFound *LocationNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "end", notFound.Which)
	assert.Equal(t, "Nowhere", notFound.Query)
}

func TestResolve_RoutingFailureFallsBack(t *testing.T) {
	// Подготовка
	resolver, _, routingMock := newTestResolver(t)
	ctx := context.Background()
	start := models.Location{Latitude: 55.75, Longitude: 37.61}
	end := models.Location{Latitude: 55.76, Longitude: 37.62}

	routingMock.EXPECT().Route(ctx, start, end).Return(nil, ErrNoRoute).Times(1)

	// Действие
	resolved, err := resolver.Resolve(ctx, "55.75,37.61", "55.76,37.62")

	// Проверки: сбой маршрутизации дает путь по прямой, а не ошибку
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.True(t, resolved.Degraded)
	assert.Equal(t, []models.Location{start, end}, resolved.Points)
	assert.Nil(t, resolved.Distance)
	assert.Nil(t, resolved.Duration)
}

func TestResolve_Idempotent(t *testing.T) {
	// Подготовка
	resolver, _, routingMock := newTestResolver(t)
	ctx := context.Background()
	start := models.Location{Latitude: 55.75, Longitude: 37.61}
	end := models.Location{Latitude: 55.76, Longitude: 37.62}
	distance := 1500.0
	expected := &models.ResolvedRoute{
		Points:   []models.Location{start, end},
		Distance: &distance,
	}

	routingMock.EXPECT().Route(ctx, start, end).Return(expected, nil).Times(2)

	// Действие: повторный вызов с теми же входами и ответами коллабораторов
	first, err := resolver.Resolve(ctx, "55.75,37.61", "55.76,37.62")
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, "55.75,37.61", "55.76,37.62")
	require.NoError(t, err)

	// Проверки
	assert.Equal(t, first, second)
}

func TestParseCoordinateLiteral(t *testing.T) {
	loc, ok, err := parseCoordinateLiteral("  55.75 , 37.61  ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 55.75, loc.Latitude)
	assert.Equal(t, 37.61, loc.Longitude)

	// Отрицательные координаты допустимы
	loc, ok, err = parseCoordinateLiteral("-33.87,151.21")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, -33.87, loc.Latitude)

	// Не похоже на координаты - идет в геокодер
	_, ok, err = parseCoordinateLiteral("Red Square, Moscow")
	require.NoError(t, err)
	assert.False(t, ok)

	// Похоже на координаты, но вне диапазона - ошибка, не геокодинг
	_, ok, err = parseCoordinateLiteral("91,0")
	require.Error(t, err)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}
