package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/session"
	"github.com/sirupsen/logrus"
)

// ProfileRepository определяет контракт для работы с бд профилей пользователей
type ProfileRepository interface {
	Save(ctx context.Context, profile *models.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	GetProfileFromCache(ctx context.Context, userID string) (*models.UserProfile, error)
	SetProfileCache(ctx context.Context, profile *models.UserProfile) error
	InvalidateProfileCache(ctx context.Context, userID string) error
}

// CaseRepository определяет контракт для архива кейсов эскалации
type CaseRepository interface {
	Create(ctx context.Context, c *models.EscalationCase) error
	Update(ctx context.Context, c *models.EscalationCase) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.EscalationCase, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*models.EscalationCase, error)
}

// TelemetryRepository определяет контракт для телеметрии поездок
type TelemetryRepository interface {
	SavePing(ctx context.Context, ping *models.JourneyPing) error
	CountActiveUsers(ctx context.Context, minutes int) (int, error)
}

// RouteResolver определяет контракт разрешения маршрутов
type RouteResolver interface {
	Resolve(ctx context.Context, startRaw, endRaw string) (*models.ResolvedRoute, error)
}

// MonitoringService определяет контракт бизнес-логики мониторинга безопасности
type MonitoringService interface {
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	StartJourney(ctx context.Context, req *models.JourneyRequest) error
	StopJourney(ctx context.Context, userID string) error
	AcknowledgeCheckIn(ctx context.Context, userID string) error
	TriggerEmergency(ctx context.Context, userID string, loc *models.Location, message string, alertType string) (*models.EscalationCase, error)
	CancelEscalation(ctx context.Context, userID string, caseID uuid.UUID) error
	ResolveEscalation(ctx context.Context, userID string, caseID uuid.UUID) error
	GetCase(ctx context.Context, caseID uuid.UUID) (*models.EscalationCase, error)
	ResolveRoute(ctx context.Context, startRaw, endRaw string) (*models.ResolvedRoute, error)
	GetStats(ctx context.Context) (*models.MonitoringStats, error)
	Session(userID string) (*session.Session, bool)
}

type monitoringService struct {
	profiles  ProfileRepository
	cases     CaseRepository
	telemetry TelemetryRepository
	resolver  RouteResolver
	sessions  *session.Manager
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewMonitoringService(profiles ProfileRepository, cases CaseRepository, telemetry TelemetryRepository,
	resolver RouteResolver, sessions *session.Manager, logger *logrus.Logger, cfg *config.Config,
) MonitoringService {
	return &monitoringService{
		profiles:  profiles,
		cases:     cases,
		telemetry: telemetry,
		resolver:  resolver,
		sessions:  sessions,
		logger:    logger,
		cfg:       cfg,
	}
}

// SaveProfile сохраняет профиль пользователя с настройками безопасности
func (s *monitoringService) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "SaveProfile",
		"user_id": profile.UserID,
	})
	log.Info("Saving user profile")

	if !config.ValidCheckInInterval(profile.CheckInInterval) {
		log.WithField("interval", profile.CheckInInterval).Warn("Rejected profile with invalid check-in interval")
		return fmt.Errorf("service: check_in_interval must be one of %v", config.AllowedCheckInIntervals)
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		log.WithError(err).Error("Failed to save profile in repository")
		return fmt.Errorf("service: could not save profile: %w", err)
	}

	if err := s.profiles.InvalidateProfileCache(ctx, profile.UserID); err != nil {
		log.WithError(err).Warn("Failed to invalidate profile cache")
	}

	log.Info("User profile saved successfully")
	return nil
}

// GetProfile возвращает профиль пользователя, сначала пробуя кэш
func (s *monitoringService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "GetProfile",
		"user_id": userID,
	})

	cached, err := s.profiles.GetProfileFromCache(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Profile cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to get profile from repository")
		return nil, fmt.Errorf("service: could not get profile: %w", err)
	}

	if err := s.profiles.SetProfileCache(ctx, profile); err != nil {
		log.WithError(err).Warn("Failed to cache profile")
	}
	return profile, nil
}

// StartJourney запускает сессию мониторинга поездки для пользователя
func (s *monitoringService) StartJourney(ctx context.Context, req *models.JourneyRequest) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "StartJourney",
		"user_id": req.UserID,
	})
	log.Info("Starting journey monitoring")

	profile, err := s.GetProfile(ctx, req.UserID)
	if err != nil {
		// Поездка без сохраненного профиля допустима: используются настройки
		// по умолчанию и пустой список контактов
		log.WithError(err).Warn("No stored profile, monitoring with defaults")
		profile = &models.UserProfile{
			UserID:          req.UserID,
			CheckInInterval: int(s.cfg.CheckInInterval.Seconds()),
		}
	}

	if _, err := s.sessions.Start(profile); err != nil {
		log.WithError(err).Warn("Failed to start journey session")
		return fmt.Errorf("service: could not start journey: %w", err)
	}

	log.Info("Journey monitoring started")
	return nil
}

// StopJourney останавливает мониторинг поездки
func (s *monitoringService) StopJourney(ctx context.Context, userID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "StopJourney",
		"user_id": userID,
	})
	log.Info("Stopping journey monitoring")

	if err := s.sessions.Stop(userID); err != nil {
		log.WithError(err).Warn("Failed to stop journey session")
		return fmt.Errorf("service: could not stop journey: %w", err)
	}

	log.Info("Journey monitoring stopped")
	return nil
}

// AcknowledgeCheckIn подтверждает текущий запрос check-in пользователя
func (s *monitoringService) AcknowledgeCheckIn(ctx context.Context, userID string) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return fmt.Errorf("service: %w", session.ErrNoActiveSession)
	}
	return sess.Acknowledge()
}

// TriggerEmergency вручную открывает кейс эскалации в рамках активной сессии
func (s *monitoringService) TriggerEmergency(ctx context.Context, userID string, loc *models.Location, message string, alertType string) (*models.EscalationCase, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "TriggerEmergency",
		"user_id": userID,
	})
	log.Warn("Emergency trigger received")

	sess, ok := s.sessions.Get(userID)
	if !ok {
		log.Warn("Emergency trigger without active journey")
		return nil, fmt.Errorf("service: %w", session.ErrNoActiveSession)
	}

	cause := models.CauseManual
	if alertType == "automatic" {
		cause = models.CauseSustainedHighRisk
	}

	esc, err := sess.TriggerEmergency(cause, loc, message)
	if err != nil {
		log.WithError(err).Warn("Emergency trigger rejected")
		return nil, err
	}
	return esc, nil
}

// CancelEscalation отменяет открытый кейс эскалации пользователя
func (s *monitoringService) CancelEscalation(ctx context.Context, userID string, caseID uuid.UUID) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return fmt.Errorf("service: %w", session.ErrNoActiveSession)
	}
	return sess.CancelEscalation(caseID)
}

// ResolveEscalation закрывает кейс после контакта властей
func (s *monitoringService) ResolveEscalation(ctx context.Context, userID string, caseID uuid.UUID) error {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return fmt.Errorf("service: %w", session.ErrNoActiveSession)
	}
	return sess.ResolveEscalation(caseID)
}

// GetCase возвращает кейс эскалации из архива
func (s *monitoringService) GetCase(ctx context.Context, caseID uuid.UUID) (*models.EscalationCase, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get case: %w", err)
	}
	return c, nil
}

// ResolveRoute разрешает маршрут между двумя конечными точками
func (s *monitoringService) ResolveRoute(ctx context.Context, startRaw, endRaw string) (*models.ResolvedRoute, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "ResolveRoute",
	})

	resolved, err := s.resolver.Resolve(ctx, startRaw, endRaw)
	if err != nil {
		log.WithError(err).Warn("Failed to resolve route")
		return nil, err
	}
	if resolved.Degraded {
		log.Warn("Route resolved in degraded mode (straight-line fallback)")
	}
	return resolved, nil
}

// GetStats возвращает сводную статистику по активности системы
func (s *monitoringService) GetStats(ctx context.Context) (*models.MonitoringStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "monitoring",
		"method":  "GetStats",
	})

	userCount, err := s.telemetry.CountActiveUsers(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to count active users")
		return nil, fmt.Errorf("service: could not get stats: %w", err)
	}

	return &models.MonitoringStats{
		ActiveJourneys: s.sessions.Count(),
		UserCount:      userCount,
	}, nil
}

// Session возвращает активную сессию пользователя для привязки WebSocket
func (s *monitoringService) Session(userID string) (*session.Session, bool) {
	return s.sessions.Get(userID)
}
