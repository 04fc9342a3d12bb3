package models

import "time"

// EmergencyContact - доверенный контакт для экстренных уведомлений
type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UserProfile - профиль пользователя с настройками безопасности.
// CheckInInterval в секундах, OffRouteTolerance в метрах.
type UserProfile struct {
	UserID            string             `json:"user_id"`
	Name              string             `json:"name"`
	Phone             string             `json:"phone"`
	RiskThreshold     float64            `json:"risk_threshold"`
	CheckInInterval   int                `json:"check_in_interval"`
	OffRouteTolerance int                `json:"off_route_tolerance"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// JourneyRequest - запрос на запуск мониторинга поездки
type JourneyRequest struct {
	UserID        string     `json:"user_id"`
	StartLocation Location   `json:"start_location"`
	EndLocation   Location   `json:"end_location"`
	Route         []Location `json:"route,omitempty"`
	TransportMode string     `json:"transport_mode"`
}

// MonitoringStats - сводная статистика по активности системы
type MonitoringStats struct {
	ActiveJourneys int `json:"active_journeys"`
	UserCount      int `json:"user_count"`
}
