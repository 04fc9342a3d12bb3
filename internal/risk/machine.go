package risk

import (
	"sync"

	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

// Machine - машина состояний уровня риска сессии. Единственный владелец
// значения RiskLevel: остальные компоненты только читают его. Подписчики
// уведомляются синхронно и только при фактической смене значения.
type Machine struct {
	mu      sync.RWMutex
	current models.RiskLevel
	subs    []func(old, new models.RiskLevel)
	log     *logrus.Entry
}

// NewMachine создает машину с начальным уровнем low
func NewMachine(log *logrus.Entry) *Machine {
	return &Machine{
		current: models.RiskLow,
		log:     log.WithField("component", "risk"),
	}
}

// Current возвращает текущий уровень риска
func (m *Machine) Current() models.RiskLevel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe регистрирует колбэк на смену уровня. Колбэки выполняются
// синхронно внутри Set на цикле сессии.
func (m *Machine) Subscribe(cb func(old, new models.RiskLevel)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, cb)
}

// Set устанавливает уровень риска. Повторная установка того же значения -
// no-op без уведомлений. Неизвестные значения отклоняются, а не приводятся.
// Вызывается только с цикла сессии.
func (m *Machine) Set(level models.RiskLevel) error {
	if _, err := models.ParseRiskLevel(string(level)); err != nil {
		m.log.WithField("level", string(level)).Warn("Rejected invalid risk level")
		return err
	}

	m.mu.Lock()
	old := m.current
	if old == level {
		m.mu.Unlock()
		return nil
	}
	m.current = level
	subs := m.subs
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{"from": old, "to": level}).Info("Risk level changed")
	for _, cb := range subs {
		cb(old, level)
	}
	return nil
}
