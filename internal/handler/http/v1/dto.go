package v1

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContactDTO DTO доверенного контакта
// @Description DTO доверенного контакта
type EmergencyContactDTO struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Phone string `json:"phone" validate:"required,min=3,max=32"`
}

// SaveProfileRequest DTO для сохранения профиля пользователя
// @Description DTO для сохранения профиля пользователя
type SaveProfileRequest struct {
	UserID            string                `json:"user_id" validate:"required"`
	Name              string                `json:"name,omitempty"`
	Phone             string                `json:"phone,omitempty"`
	RiskThreshold     float64               `json:"risk_threshold" validate:"gte=0,lte=1"`
	CheckInInterval   int                   `json:"check_in_interval" validate:"required,oneof=180 300 600 900"`
	OffRouteTolerance int                   `json:"off_route_tolerance" validate:"gte=0"`
	EmergencyContacts []EmergencyContactDTO `json:"emergency_contacts" validate:"dive"`
}

// ProfileResponse DTO ответа с профилем пользователя
// @Description DTO ответа с профилем пользователя
type ProfileResponse struct {
	UserID            string                `json:"user_id"`
	Name              string                `json:"name,omitempty"`
	Phone             string                `json:"phone,omitempty"`
	RiskThreshold     float64               `json:"risk_threshold"`
	CheckInInterval   int                   `json:"check_in_interval"`
	OffRouteTolerance int                   `json:"off_route_tolerance"`
	EmergencyContacts []EmergencyContactDTO `json:"emergency_contacts"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// LocationDTO DTO географической точки
// @Description DTO географической точки
type LocationDTO struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lng" validate:"longitude"`
}

// StartJourneyRequest DTO запуска мониторинга поездки
// @Description DTO запуска мониторинга поездки
type StartJourneyRequest struct {
	UserID        string       `json:"user_id" validate:"required"`
	StartLocation *LocationDTO `json:"start_location,omitempty"`
	EndLocation   *LocationDTO `json:"end_location,omitempty"`
	TransportMode string       `json:"transport_mode,omitempty" validate:"omitempty,oneof=walking driving cycling"`
}

// CheckInAckRequest DTO подтверждения check-in
// @Description DTO подтверждения check-in
type CheckInAckRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// EmergencyTriggerRequest DTO ручного экстренного триггера
// @Description DTO ручного экстренного триггера
type EmergencyTriggerRequest struct {
	UserID    string       `json:"user_id" validate:"required"`
	AlertType string       `json:"alert_type,omitempty" validate:"omitempty,oneof=manual automatic"`
	Message   string       `json:"message,omitempty"`
	Location  *LocationDTO `json:"location,omitempty"`
}

// EscalationActionRequest DTO отмены или закрытия кейса
// @Description DTO отмены или закрытия кейса
type EscalationActionRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CaseResponse DTO ответа с кейсом эскалации
// @Description DTO ответа с кейсом эскалации
type CaseResponse struct {
	ID                     uuid.UUID    `json:"id"`
	UserID                 string       `json:"user_id"`
	Cause                  string       `json:"cause"`
	State                  string       `json:"state"`
	Message                string       `json:"message,omitempty"`
	Location               *LocationDTO `json:"location,omitempty"`
	OpenedAt               time.Time    `json:"opened_at"`
	ContactsNotifiedAt     *time.Time   `json:"contacts_notified_at,omitempty"`
	AuthoritiesContactedAt *time.Time   `json:"authorities_contacted_at,omitempty"`
	ResolvedAt             *time.Time   `json:"resolved_at,omitempty"`
	Resolution             string       `json:"resolution,omitempty"`
}

// ResolveRouteRequest DTO запроса разрешения маршрута
// @Description DTO запроса разрешения маршрута
type ResolveRouteRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// RouteResponse DTO ответа с разрешенным маршрутом
// @Description DTO ответа с разрешенным маршрутом
type RouteResponse struct {
	Points   []LocationDTO `json:"points"`
	Distance *float64      `json:"distance,omitempty"`
	Duration *float64      `json:"duration,omitempty"`
	Degraded bool          `json:"degraded"`
}

// StatsResponse DTO ответа со статистикой
// @Description DTO ответа со статистикой
type StatsResponse struct {
	ActiveJourneys int `json:"active_journeys"`
	UserCount      int `json:"user_count"`
}
