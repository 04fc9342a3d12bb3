package connection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shenikar/safetrail_monitoring/internal/models"
	"github.com/sirupsen/logrus"
)

// State - состояние канала к удаленному ассистенту
type State string

const (
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateDisconnected State = "disconnected"
	// StateDegraded означает, что ассистент недоступен и ответы синтезируются
	// локально. Канал чата при этом продолжает работать.
	StateDegraded State = "degraded"
	// StateClosed - терминальное состояние, ресурсы освобождены
	StateClosed State = "closed"
)

var (
	// ErrNotConnected возвращается из Send вне состояний connected/degraded
	ErrNotConnected = fmt.Errorf("connection manager: not connected")
	// ErrAlreadyClosed возвращается при попытке открыть закрытый менеджер
	ErrAlreadyClosed = fmt.Errorf("connection manager: already closed")
)

// Loop - управляющий цикл, на который сериализуются все переходы состояния
type Loop interface {
	Post(fn func()) bool
}

// Options - параметры переподключения канала
type Options struct {
	Endpoint    string
	SessionID   string
	Base        time.Duration
	Cap         time.Duration
	MaxAttempts int
}

// MessageContext - контекст, прикладываемый к исходящему сообщению чата
type MessageContext struct {
	Location  *models.Location `json:"location,omitempty"`
	RiskLevel string           `json:"riskLevel,omitempty"`
	UserID    string           `json:"userId"`
}

type outboundEnvelope struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Context *MessageContext `json:"context,omitempty"`
}

type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Manager владеет транспортом к удаленному ассистенту: устанавливает
// соединение, переподключается с экспоненциальной задержкой и деградирует
// до локального синтезатора, когда ассистент недоступен. Сообщения
// доставляются подписчикам строго в порядке прибытия.
type Manager struct {
	mu    sync.RWMutex
	state State

	opts   Options
	log    *logrus.Entry
	loop   Loop
	dialer *websocket.Dialer
	synth  *Synthesizer

	ws         *websocket.Conn
	attempts   int
	retryTimer *time.Timer
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc

	subs       []func(models.ChatMessage)
	transcript []models.ChatMessage
}

// NewManager создает менеджер соединения для одной сессии
func NewManager(opts Options, log *logrus.Entry, loop Loop) *Manager {
	if opts.Base <= 0 {
		opts.Base = time.Second
	}
	if opts.Cap <= 0 {
		opts.Cap = 30 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		state:  StateDisconnected,
		opts:   opts,
		log:    log.WithField("component", "connection"),
		loop:   loop,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		synth:  NewSynthesizer(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// State возвращает текущее состояние канала
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Transcript возвращает копию накопленной переписки сессии
func (m *Manager) Transcript() []models.ChatMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.ChatMessage, len(m.transcript))
	copy(out, m.transcript)
	return out
}

// OnMessage регистрирует подписчика на сообщения ассистента.
// Колбэки вызываются на цикле сессии в порядке прибытия сообщений.
func (m *Manager) OnMessage(cb func(models.ChatMessage)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, cb)
}

// Open начинает установку соединения. Без настроенного эндпоинта менеджер
// сразу уходит в degraded-режим.
func (m *Manager) Open() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrAlreadyClosed
	}
	if m.opts.Endpoint == "" {
		m.state = StateDegraded
		m.mu.Unlock()
		m.log.Warn("Assistant endpoint is not configured, starting in degraded mode")
		return nil
	}
	m.state = StateConnecting
	m.mu.Unlock()

	go m.dial()
	return nil
}

// Retry сбрасывает счетчик попыток и инициирует переподключение.
// Используется после того, как менеджер исчерпал лимит и запарковался
// в disconnected.
func (m *Manager) Retry() {
	m.loop.Post(func() {
		m.mu.Lock()
		if m.closed || m.state == StateConnected || m.state == StateConnecting {
			m.mu.Unlock()
			return
		}
		m.attempts = 0
		m.state = StateConnecting
		m.mu.Unlock()
		m.log.Info("Caller-initiated reconnect")
		go m.dial()
	})
}

// Send отправляет сообщение пользователя ассистенту. В состоянии degraded
// отправка не завершается ошибкой: локальный синтезатор формирует помеченный
// ответ, так что чат никогда не блокируется доступностью сети.
// Вызывается только с цикла сессии.
func (m *Manager) Send(text string, mctx MessageContext) error {
	m.mu.Lock()
	state := m.state
	ws := m.ws
	m.mu.Unlock()

	switch state {
	case StateConnected:
		m.appendAndLog(models.ChatMessage{Role: models.ChatRoleUser, Text: text, Timestamp: time.Now()})
		env := outboundEnvelope{Type: "chat_message", Message: text, Context: &mctx}
		if err := ws.WriteJSON(env); err != nil {
			// Транспорт умер на записи: ответ синтезируем локально,
			// а переподключением займется обычный путь обрыва.
			m.log.WithError(err).Warn("Write to assistant failed, synthesizing reply")
			m.transportClosed(ws)
			m.scheduleSyntheticReply(text)
		}
		return nil
	case StateDegraded:
		m.appendAndLog(models.ChatMessage{Role: models.ChatRoleUser, Text: text, Timestamp: time.Now()})
		m.scheduleSyntheticReply(text)
		return nil
	default:
		return fmt.Errorf("%w (state: %s)", ErrNotConnected, state)
	}
}

// Close переводит менеджер в терминальное состояние closed: отменяет таймеры,
// прерывает текущий dial и закрывает сокет. Идемпотентна и доступна из
// любого состояния.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.state = StateClosed
	ws := m.ws
	m.ws = nil
	if m.retryTimer != nil {
		m.retryTimer.Stop()
		m.retryTimer = nil
	}
	m.mu.Unlock()

	m.cancel()
	if ws != nil {
		_ = ws.Close()
	}
	m.log.Info("Connection manager closed")
}

func (m *Manager) dial() {
	url := m.opts.Endpoint + "?session_id=" + m.opts.SessionID
	ws, _, err := m.dialer.DialContext(m.ctx, url, nil)
	m.loop.Post(func() { m.onDialResult(ws, err) })
}

func (m *Manager) onDialResult(ws *websocket.Conn, err error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		if ws != nil {
			_ = ws.Close()
		}
		return
	}
	if err != nil {
		// Попытка не удалась: деградируем и планируем следующую
		m.state = StateDegraded
		m.mu.Unlock()
		m.log.WithError(err).Warn("Assistant connection attempt failed, entering degraded mode")
		m.scheduleRetry()
		return
	}
	m.state = StateConnected
	m.ws = ws
	m.attempts = 0
	m.mu.Unlock()

	m.log.Info("Assistant connection established")
	go m.readPump(ws)
}

// readPump читает кадры с сокета и публикует обработку на цикл сессии,
// сохраняя порядок прибытия.
func (m *Manager) readPump(ws *websocket.Conn) {
	for {
		var env inboundEnvelope
		if err := ws.ReadJSON(&env); err != nil {
			m.loop.Post(func() { m.transportClosed(ws) })
			return
		}
		m.loop.Post(func() { m.handleInbound(env) })
	}
}

func (m *Manager) handleInbound(env inboundEnvelope) {
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return
	}

	// Неизвестные типы игнорируются, это не ошибка протокола
	if env.Type != "chat_response" {
		m.log.WithField("type", env.Type).Debug("Ignoring message with unknown type")
		return
	}

	text := decodeReply(env.Data)
	if text == "" {
		m.log.Warn("Empty chat_response payload from assistant")
		return
	}
	m.deliver(models.ChatMessage{Role: models.ChatRoleAssistant, Text: text, Timestamp: time.Now()})
}

// decodeReply принимает оба документированных формата данных ответа:
// голую строку либо структурированный объект с полем reply.
func decodeReply(data json.RawMessage) string {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var reply models.AssistantReply
	if err := json.Unmarshal(data, &reply); err == nil {
		return reply.Reply
	}
	return ""
}

func (m *Manager) transportClosed(ws *websocket.Conn) {
	m.mu.Lock()
	if m.closed || m.ws != ws || ws == nil {
		m.mu.Unlock()
		return
	}
	m.ws = nil
	m.state = StateDisconnected
	m.mu.Unlock()

	_ = ws.Close()
	m.log.Warn("Assistant transport closed, scheduling reconnect")
	m.scheduleRetry()
}

// scheduleRetry планирует следующую попытку подключения с экспоненциальной
// задержкой. После исчерпания лимита менеджер паркуется в disconnected и
// ждет явного Retry.
func (m *Manager) scheduleRetry() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.attempts >= m.opts.MaxAttempts {
		m.state = StateDisconnected
		m.mu.Unlock()
		m.log.Warnf("Reconnect attempts exhausted after %d tries, parking until explicit retry", m.opts.MaxAttempts)
		return
	}
	delay := m.backoffDelay(m.attempts)
	m.attempts++
	m.retryTimer = time.AfterFunc(delay, func() {
		m.loop.Post(m.reconnect)
	})
	m.mu.Unlock()
	m.log.WithField("delay", delay.String()).Debug("Reconnect scheduled")
}

func (m *Manager) reconnect() {
	m.mu.Lock()
	if m.closed || m.state == StateConnected || m.state == StateConnecting {
		m.mu.Unlock()
		return
	}
	m.state = StateConnecting
	m.mu.Unlock()
	go m.dial()
}

func (m *Manager) backoffDelay(attempt int) time.Duration {
	delay := m.opts.Base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= m.opts.Cap {
			return m.opts.Cap
		}
	}
	if delay > m.opts.Cap {
		delay = m.opts.Cap
	}
	return delay
}

// scheduleSyntheticReply формирует локальный ответ с небольшой задержкой,
// имитирующей сетевой round-trip, и помечает его как синтетический.
func (m *Manager) scheduleSyntheticReply(userText string) {
	reply := m.synth.Reply(userText)
	time.AfterFunc(150*time.Millisecond, func() {
		m.loop.Post(func() {
			m.mu.RLock()
			closed := m.closed
			m.mu.RUnlock()
			if closed {
				return
			}
			m.deliver(models.ChatMessage{
				Role:      models.ChatRoleAssistant,
				Text:      reply,
				Synthetic: true,
				Timestamp: time.Now(),
			})
		})
	})
}

func (m *Manager) appendAndLog(msg models.ChatMessage) {
	m.mu.Lock()
	m.transcript = append(m.transcript, msg)
	m.mu.Unlock()
}

// deliver добавляет сообщение в переписку и уведомляет подписчиков.
// Выполняется только на цикле сессии, поэтому порядок доставки совпадает
// с порядком прибытия.
func (m *Manager) deliver(msg models.ChatMessage) {
	m.mu.Lock()
	m.transcript = append(m.transcript, msg)
	subs := m.subs
	m.mu.Unlock()
	for _, cb := range subs {
		cb(msg)
	}
}
