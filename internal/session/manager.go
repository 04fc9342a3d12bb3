package session

import (
	"sync"

	"github.com/shenikar/safetrail_monitoring/internal/alert"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/escalation"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

// Manager - реестр активных сессий мониторинга, по одной на пользователя
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	cfg       *config.Config
	log       *logrus.Logger
	publisher alert.Publisher
	archiver  escalation.CaseArchiver
	telemetry TelemetrySink
}

// NewManager создает реестр сессий
func NewManager(cfg *config.Config, log *logrus.Logger, publisher alert.Publisher,
	archiver escalation.CaseArchiver, telemetry TelemetrySink,
) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		cfg:       cfg,
		log:       log,
		publisher: publisher,
		archiver:  archiver,
		telemetry: telemetry,
	}
}

// Start создает и запускает сессию для профиля. Вторая активная поездка
// одного пользователя отклоняется.
func (m *Manager) Start(profile *models.UserProfile) (*Session, error) {
	m.mu.Lock()
	if _, exists := m.sessions[profile.UserID]; exists {
		m.mu.Unlock()
		return nil, ErrSessionExists
	}
	s := NewSession(profile, m.cfg, m.log, m.publisher, m.archiver, m.telemetry)
	m.sessions[profile.UserID] = s
	m.mu.Unlock()

	if err := s.Start(); err != nil {
		m.mu.Lock()
		delete(m.sessions, profile.UserID)
		m.mu.Unlock()
		return nil, err
	}
	return s, nil
}

// Get возвращает активную сессию пользователя
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Stop закрывает сессию пользователя и удаляет ее из реестра
func (m *Manager) Stop(userID string) error {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	if !ok {
		m.mu.Unlock()
		return ErrNoActiveSession
	}
	delete(m.sessions, userID)
	m.mu.Unlock()

	s.Close()
	return nil
}

// StopAll закрывает все сессии при остановке сервиса
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// Count возвращает количество активных сессий
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
