package models

import "fmt"

// RiskLevel - классификация текущего уровня риска пользователя.
// Уровни полностью упорядочены для пороговых сравнений.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ErrInvalidRiskLevel возвращается при попытке установить неизвестный уровень риска
var ErrInvalidRiskLevel = fmt.Errorf("invalid risk level")

// ParseRiskLevel проверяет строковое значение уровня риска.
// Некорректные значения отклоняются, а не приводятся к ближайшему уровню.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRiskLevel, s)
}

// Severity возвращает числовой ранг уровня для сравнения порогов
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	}
	return -1
}

// AtLeast сообщает, не ниже ли уровень заданного порога
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Severity() >= other.Severity()
}
