package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

// NominatimGeocoder - клиент геокодинга Nominatim-совместимого сервиса.
// Берется первый результат поиска; пустой ответ трактуется как "не найдено".
type NominatimGeocoder struct {
	baseURL    string
	email      string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewNominatimGeocoder создает клиент геокодинга
func NewNominatimGeocoder(baseURL, email string, log *logrus.Entry) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: baseURL,
		email:   email,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.WithField("component", "geocoder"),
	}
}

// Ответ Nominatim отдает координаты строками
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode разрешает текстовый запрос в координаты. (nil, nil) - нет результата.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (*models.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.email != "" {
		params.Set("email", g.email)
	}

	reqURL := g.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "safetrail-monitoring")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode service returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if len(results) == 0 {
		g.log.WithField("query", query).Debug("Geocoder returned no results")
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geocode latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geocode longitude: %w", err)
	}
	return &models.Location{Latitude: lat, Longitude: lon}, nil
}
