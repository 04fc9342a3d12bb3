package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/safetrail_monitoring/internal/alert"
	"github.com/shenikar/safetrail_monitoring/internal/checkin"
	"github.com/shenikar/safetrail_monitoring/internal/config"
	"github.com/shenikar/safetrail_monitoring/internal/connection"
	"github.com/shenikar/safetrail_monitoring/internal/escalation"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/shenikar/safetrail_monitoring/internal/risk"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSessionClosed возвращается для операций над разобранной сессией
	ErrSessionClosed = fmt.Errorf("session: closed")
	// ErrSessionExists возвращается при запуске второй поездки того же пользователя
	ErrSessionExists = fmt.Errorf("session: journey already active")
	// ErrNoActiveSession возвращается, когда у пользователя нет активной поездки
	ErrNoActiveSession = fmt.Errorf("session: no active journey")
)

// TelemetrySink сохраняет телеметрию местоположения поездки
type TelemetrySink interface {
	SavePing(ctx context.Context, ping *models.JourneyPing) error
}

// ClientConn - подключение host UI, принимающее серверные конверты.
// Реализуется *websocket.Conn.
type ClientConn interface {
	WriteJSON(v any) error
	Close() error
}

// Конверт клиентского сообщения. Неизвестные типы игнорируются.
type clientEnvelope struct {
	Type      string                     `json:"type"`
	Message   string                     `json:"message,omitempty"`
	Context   *connection.MessageContext `json:"context,omitempty"`
	Location  *models.Location           `json:"location,omitempty"`
	RiskLevel string                     `json:"riskLevel,omitempty"`
}

// Session - одна сессия мониторинга поездки. Владеет управляющим циклом и
// всеми компонентами, чьи переходы состояния на нем сериализуются: менеджером
// соединения, машиной риска, планировщиком check-in и контроллером эскалации.
type Session struct {
	UserID string

	cfg     *config.Config
	profile *models.UserProfile
	log     *logrus.Entry

	loop       *Loop
	conn       *connection.Manager
	riskM      *risk.Machine
	scheduler  *checkin.Scheduler
	controller *escalation.Controller
	telemetry  TelemetrySink

	client       ClientConn
	lastLocation *models.Location
	sustainTimer *time.Timer
	startedAt    time.Time
}

// NewSession собирает сессию мониторинга для пользователя
func NewSession(profile *models.UserProfile, cfg *config.Config, log *logrus.Logger,
	publisher alert.Publisher, archiver escalation.CaseArchiver, telemetry TelemetrySink,
) *Session {
	slog := log.WithField("user_id", profile.UserID)
	loop := NewLoop(128)

	s := &Session{
		UserID:    profile.UserID,
		cfg:       cfg,
		profile:   profile,
		log:       slog,
		loop:      loop,
		telemetry: telemetry,
		startedAt: time.Now(),
	}

	s.conn = connection.NewManager(connection.Options{
		Endpoint:    cfg.AssistantWSURL,
		SessionID:   profile.UserID,
		Base:        cfg.ReconnectBase,
		Cap:         cfg.ReconnectCap,
		MaxAttempts: cfg.ReconnectMaxAttempts,
	}, slog, loop)

	s.riskM = risk.NewMachine(slog)
	s.controller = escalation.NewController(profile.UserID, profile.EmergencyContacts,
		cfg.AuthoritiesDelay, publisher, archiver, slog, loop)
	s.scheduler = checkin.NewScheduler(cfg.AckWindow, slog, loop)

	// Связка компонентов: все колбэки выполняются на цикле сессии
	s.scheduler.CaseOpenFn(s.controller.HasOpen)
	s.scheduler.OnPrompt(s.pushCheckInPrompt)
	s.scheduler.OnMissed(s.missedCheckIn)
	s.controller.OnEvent(s.pushEscalationUpdate)
	s.controller.OnClosed(func(*models.EscalationCase) { s.scheduler.Resume() })
	s.riskM.Subscribe(s.onRiskChange)
	s.conn.OnMessage(s.pushChatMessage)

	return s
}

// Start запускает цикл сессии, открывает канал к ассистенту и включает
// планировщик check-in с интервалом из профиля пользователя.
func (s *Session) Start() error {
	s.loop.Run()
	if err := s.conn.Open(); err != nil {
		s.loop.Stop()
		return err
	}

	interval := s.cfg.CheckInInterval
	if config.ValidCheckInInterval(s.profile.CheckInInterval) {
		interval = time.Duration(s.profile.CheckInInterval) * time.Second
	}
	s.loop.Post(func() { s.scheduler.Start(interval) })
	s.log.Info("Journey monitoring session started")
	return nil
}

// Close разбирает сессию: останавливает таймеры, закрывает канал ассистента
// и клиентское подключение. Поздние колбэки отбрасываются циклом.
func (s *Session) Close() {
	_ = s.loop.Call(func() error {
		s.scheduler.Stop()
		s.controller.Shutdown()
		if s.sustainTimer != nil {
			s.sustainTimer.Stop()
			s.sustainTimer = nil
		}
		if s.client != nil {
			_ = s.client.Close()
			s.client = nil
		}
		return nil
	})
	s.conn.Close()
	s.loop.Stop()
	s.log.Info("Journey monitoring session closed")
}

// AttachClient привязывает подключение host UI к сессии. Прежнее подключение,
// если было, закрывается.
func (s *Session) AttachClient(c ClientConn) {
	s.loop.Post(func() {
		if s.client != nil {
			_ = s.client.Close()
		}
		s.client = c
	})
}

// DetachClient отвязывает подключение после разрыва
func (s *Session) DetachClient(c ClientConn) {
	s.loop.Post(func() {
		if s.client == c {
			s.client = nil
		}
	})
}

// HandleClientMessage обрабатывает сырой конверт от host UI.
// Разбор и применение происходят на цикле сессии.
func (s *Session) HandleClientMessage(raw []byte) {
	var env clientEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.WithError(err).Debug("Ignoring malformed client envelope")
		return
	}
	s.loop.Post(func() { s.dispatchClientMessage(env) })
}

// TriggerEmergency открывает кейс эскалации по ручному или внешнему триггеру
func (s *Session) TriggerEmergency(cause models.EscalationCause, loc *models.Location, message string) (*models.EscalationCase, error) {
	var esc *models.EscalationCase
	err := s.loop.Call(func() error {
		if loc == nil {
			loc = s.lastLocation
		}
		var err error
		esc, err = s.controller.Trigger(cause, loc, message)
		return err
	})
	return esc, err
}

// CancelEscalation отменяет открытый кейс, пока это допустимо
func (s *Session) CancelEscalation(caseID uuid.UUID) error {
	return s.loop.Call(func() error { return s.controller.Cancel(caseID) })
}

// ResolveEscalation закрывает кейс после контакта властей
func (s *Session) ResolveEscalation(caseID uuid.UUID) error {
	return s.loop.Call(func() error { return s.controller.Resolve(caseID) })
}

// OpenCase возвращает копию открытого кейса эскалации или nil
func (s *Session) OpenCase() *models.EscalationCase {
	var esc *models.EscalationCase
	_ = s.loop.Call(func() error {
		esc = s.controller.OpenCase()
		return nil
	})
	return esc
}

// Acknowledge подтверждает текущий запрос check-in
func (s *Session) Acknowledge() error {
	return s.loop.Call(func() error {
		s.scheduler.Acknowledge()
		return nil
	})
}

// SetRisk применяет обновление уровня риска от внешнего фида
func (s *Session) SetRisk(level models.RiskLevel) error {
	return s.loop.Call(func() error { return s.riskM.Set(level) })
}

// CurrentRisk возвращает текущий уровень риска
func (s *Session) CurrentRisk() models.RiskLevel { return s.riskM.Current() }

// ConnectionState возвращает состояние канала к ассистенту
func (s *Session) ConnectionState() connection.State { return s.conn.State() }

// Transcript возвращает копию переписки сессии
func (s *Session) Transcript() []models.ChatMessage { return s.conn.Transcript() }

// RetryConnection инициирует явное переподключение к ассистенту
func (s *Session) RetryConnection() { s.conn.Retry() }

func (s *Session) dispatchClientMessage(env clientEnvelope) {
	switch env.Type {
	case "chat_message":
		mctx := connection.MessageContext{UserID: s.UserID}
		if env.Context != nil {
			mctx = *env.Context
			mctx.UserID = s.UserID
			if env.Context.Location != nil {
				s.updateLocation(env.Context.Location)
			}
			if env.Context.RiskLevel != "" {
				s.applyRisk(env.Context.RiskLevel)
			}
		}
		if mctx.Location == nil {
			mctx.Location = s.lastLocation
		}
		mctx.RiskLevel = string(s.riskM.Current())
		if err := s.conn.Send(env.Message, mctx); err != nil {
			s.log.WithError(err).Warn("Chat message dropped, channel unavailable")
		}
	case "location_update":
		if env.Location != nil {
			s.updateLocation(env.Location)
		}
	case "risk_update":
		s.applyRisk(env.RiskLevel)
	case "check_in_response":
		s.scheduler.Acknowledge()
	default:
		// Неизвестные типы игнорируются, это не ошибка протокола
		s.log.WithField("type", env.Type).Debug("Ignoring client message with unknown type")
	}
}

func (s *Session) applyRisk(level string) {
	parsed, err := models.ParseRiskLevel(level)
	if err != nil {
		s.log.WithField("level", level).Warn("Rejected risk update with invalid level")
		return
	}
	_ = s.riskM.Set(parsed)
}

func (s *Session) updateLocation(loc *models.Location) {
	captured := time.Now()
	snapshot := *loc
	if snapshot.CapturedAt == nil {
		snapshot.CapturedAt = &captured
	}
	s.lastLocation = &snapshot

	if s.telemetry == nil {
		return
	}
	ping := &models.JourneyPing{
		UserID:    s.UserID,
		Latitude:  snapshot.Latitude,
		Longitude: snapshot.Longitude,
		RiskLevel: string(s.riskM.Current()),
	}
	log := s.log
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.telemetry.SavePing(ctx, ping); err != nil {
			log.WithError(err).Warn("Failed to save journey ping")
		}
	}()
}

// onRiskChange транслирует смену риска в UI и ведет окно устойчивого высокого
// риска: вход в high взводит таймер (ноль - немедленный триггер), выход из
// high до срабатывания снимает его.
func (s *Session) onRiskChange(old, new models.RiskLevel) {
	s.pushToClient(map[string]any{"type": "risk_update", "riskLevel": string(new)})

	if new == models.RiskHigh {
		if s.cfg.RiskSustain <= 0 {
			s.sustainedHighRisk()
			return
		}
		s.sustainTimer = time.AfterFunc(s.cfg.RiskSustain, func() {
			s.loop.Post(func() {
				if s.riskM.Current() == models.RiskHigh {
					s.sustainedHighRisk()
				}
			})
		})
		return
	}
	if old == models.RiskHigh && s.sustainTimer != nil {
		s.sustainTimer.Stop()
		s.sustainTimer = nil
	}
}

func (s *Session) sustainedHighRisk() {
	_, err := s.controller.Trigger(models.CauseSustainedHighRisk, s.lastLocation,
		"Sustained high risk level detected during journey.")
	if err != nil {
		// Уже открытый кейс - штатная ситуация, не дублируем
		s.log.WithError(err).Debug("Sustained high risk trigger skipped")
	}
}

func (s *Session) missedCheckIn() {
	_, err := s.controller.Trigger(models.CauseMissedCheckIn, s.lastLocation,
		"User failed to acknowledge a safety check-in.")
	if err != nil {
		s.log.WithError(err).Debug("Missed check-in trigger skipped")
	}
}

func (s *Session) pushCheckInPrompt() {
	s.pushToClient(map[string]any{
		"type":    "check_in_prompt",
		"message": "Safety check-in: Are you okay?",
		"timeout": int(s.cfg.AckWindow.Seconds()),
	})
}

func (s *Session) pushEscalationUpdate(esc *models.EscalationCase) {
	s.pushToClient(map[string]any{"type": "escalation_update", "case": esc})
}

func (s *Session) pushChatMessage(msg models.ChatMessage) {
	s.pushToClient(map[string]any{
		"type": "chat_response",
		"data": map[string]any{
			"reply":     msg.Text,
			"synthetic": msg.Synthetic,
			"timestamp": msg.Timestamp,
		},
	})
}

// pushToClient пишет конверт в подключение host UI. Вызывается только с цикла
// сессии, поэтому записи в сокет не конкурируют.
func (s *Session) pushToClient(v any) {
	if s.client == nil {
		return
	}
	if err := s.client.WriteJSON(v); err != nil {
		s.log.WithError(err).Debug("Failed to push message to client, detaching")
		_ = s.client.Close()
		s.client = nil
	}
}
