package route

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidCoordinates возвращается для литеральных координат вне допустимых
	// диапазонов. Значения отклоняются, а не обрезаются.
	ErrInvalidCoordinates = fmt.Errorf("route: invalid coordinates")
	// ErrNoRoute сигнализирует, что коллаборатор маршрутизации не нашел путь
	ErrNoRoute = fmt.Errorf("route: no route found")
)

// LocationNotFoundError возвращается, когда геокодинг не дал результата для
// одной из конечных точек. Which указывает, какой точки это касается.
type LocationNotFoundError struct {
	Which string // "start" или "end"
	Query string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("route: location not found for %s endpoint: %q", e.Which, e.Query)
}

// Geocoder - внешний коллаборатор геокодинга: текстовый запрос в координаты.
// Пустой результат - (nil, nil).
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*models.Location, error)
}

// RouteService - внешний коллаборатор маршрутизации между двумя точками
type RouteService interface {
	Route(ctx context.Context, start, end models.Location) (*models.ResolvedRoute, error)
}

// Шаблон литеральной пары координат "lat, lng"
var coordPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)

// Resolver превращает свободно заданные конечные точки в навигационный путь.
// Единственный жесткий сбой - неразрешенный геокодинг: после разрешения обеих
// точек всегда есть как минимум fallback-путь по прямой.
type Resolver struct {
	geocoder Geocoder
	routing  RouteService
	log      *logrus.Entry
}

// NewResolver создает резолвер маршрутов
func NewResolver(geocoder Geocoder, routing RouteService, log *logrus.Entry) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		routing:  routing,
		log:      log.WithField("component", "route"),
	}
}

// Resolve разрешает маршрут между двумя конечными точками. Повторный вызов с
// теми же входами и теми же ответами коллабораторов возвращает равный результат.
func (r *Resolver) Resolve(ctx context.Context, startRaw, endRaw string) (*models.ResolvedRoute, error) {
	start, err := r.resolveEndpoint(ctx, startRaw, "start")
	if err != nil {
		return nil, err
	}
	end, err := r.resolveEndpoint(ctx, endRaw, "end")
	if err != nil {
		return nil, err
	}

	resolved, err := r.routing.Route(ctx, *start, *end)
	if err != nil {
		// Сбой маршрутизации поглощается: возвращаем путь по прямой с явным
		// флагом деградации и недоступными distance/duration
		r.log.WithError(err).Warn("Routing collaborator failed, falling back to straight-line path")
		return &models.ResolvedRoute{
			Points:   []models.Location{*start, *end},
			Degraded: true,
		}, nil
	}
	return resolved, nil
}

func (r *Resolver) resolveEndpoint(ctx context.Context, raw, which string) (*models.Location, error) {
	if loc, ok, err := parseCoordinateLiteral(raw); ok || err != nil {
		return loc, err
	}

	loc, err := r.geocoder.Geocode(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("route: geocoding %s endpoint: %w", which, err)
	}
	if loc == nil {
		return nil, &LocationNotFoundError{Which: which, Query: raw}
	}
	return loc, nil
}

// parseCoordinateLiteral распознает литеральную пару "lat, lng".
// ok=false означает, что вход не похож на координаты и должен идти в геокодер.
func parseCoordinateLiteral(raw string) (*models.Location, bool, error) {
	matches := coordPattern.FindStringSubmatch(raw)
	if matches == nil {
		return nil, false, nil
	}
	lat, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %q", ErrInvalidCoordinates, raw)
	}
	lng, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return nil, true, fmt.Errorf("%w: %q", ErrInvalidCoordinates, raw)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, true, fmt.Errorf("%w: %q out of range", ErrInvalidCoordinates, raw)
	}
	return &models.Location{Latitude: lat, Longitude: lng}, true, nil
}
