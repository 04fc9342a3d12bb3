package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

// OSRMRouteService - клиент OSRM-совместимого сервиса маршрутизации
type OSRMRouteService struct {
	baseURL    string
	profile    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewOSRMRouteService создает клиент маршрутизации
func NewOSRMRouteService(baseURL, profile string, log *logrus.Entry) *OSRMRouteService {
	if profile == "" {
		profile = "walking"
	}
	return &OSRMRouteService{
		baseURL: baseURL,
		profile: profile,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.WithField("component", "routing"),
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			// GeoJSON: пары [lng, lat]
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route запрашивает путь между двумя точками
func (s *OSRMRouteService) Route(ctx context.Context, start, end models.Location) (*models.ResolvedRoute, error) {
	reqURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		s.baseURL, s.profile,
		start.Longitude, start.Latitude,
		end.Longitude, end.Latitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create routing request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, fmt.Errorf("%w: service code %q", ErrNoRoute, parsed.Code)
	}

	best := parsed.Routes[0]
	points := make([]models.Location, 0, len(best.Geometry.Coordinates))
	for _, pair := range best.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		points = append(points, models.Location{Latitude: pair[1], Longitude: pair[0]})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty geometry", ErrNoRoute)
	}

	distance := best.Distance
	duration := best.Duration
	return &models.ResolvedRoute{
		Points:   points,
		Distance: &distance,
		Duration: &duration,
	}, nil
}
