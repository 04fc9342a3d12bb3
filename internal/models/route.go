package models

// ResolvedRoute - результат разрешения маршрута между двумя точками.
// Degraded=true помечает fallback-путь по прямой линии: в этом случае
// Distance и Duration недоступны (nil), а не равны нулю.
type ResolvedRoute struct {
	Points   []Location `json:"points"`
	Distance *float64   `json:"distance,omitempty"` // метры
	Duration *float64   `json:"duration,omitempty"` // секунды
	Degraded bool       `json:"degraded"`
}
