package models

import (
	"time"
)

// Location представляет неизменяемый снимок местоположения пользователя.
// Создается источником геоданных и никогда не мутируется, только заменяется.
type Location struct {
	Latitude   float64    `json:"lat"`
	Longitude  float64    `json:"lng"`
	Accuracy   *float64   `json:"accuracy,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// JourneyPing представляет запись телеметрии о местоположении во время поездки
type JourneyPing struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RiskLevel  string    `json:"risk_level"`
	RecordedAt time.Time `json:"recorded_at"`
}
