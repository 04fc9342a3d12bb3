package checkin

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Loop - управляющий цикл, на который сериализуются переходы планировщика
type Loop interface {
	Post(fn func()) bool
}

// Scheduler - периодический планировщик check-in. Каждый интервал, если нет
// открытого кейса эскалации, отправляется запрос подтверждения с ограниченным
// окном ответа. Пропущенное подтверждение передает управление эскалации,
// после чего планирование приостанавливается до разрешения кейса.
// Запросы строго последовательны: двух одновременно ожидающих не бывает.
type Scheduler struct {
	loop Loop
	log  *logrus.Entry

	interval  time.Duration
	ackWindow time.Duration

	// caseOpen сообщает, открыт ли сейчас кейс эскалации
	caseOpen func() bool
	// onPrompt вызывается при отправке запроса check-in
	onPrompt func()
	// onMissed вызывается, когда окно подтверждения истекло без ответа
	onMissed func()

	running     bool
	suspended   bool
	awaitingAck bool

	intervalTimer *time.Timer
	ackTimer      *time.Timer
}

// NewScheduler создает планировщик check-in для одной сессии
func NewScheduler(ackWindow time.Duration, log *logrus.Entry, loop Loop) *Scheduler {
	return &Scheduler{
		loop:      loop,
		log:       log.WithField("component", "checkin"),
		ackWindow: ackWindow,
		caseOpen:  func() bool { return false },
		onPrompt:  func() {},
		onMissed:  func() {},
	}
}

// OnPrompt задает обработчик отправки запроса check-in
func (s *Scheduler) OnPrompt(cb func()) { s.onPrompt = cb }

// OnMissed задает обработчик пропущенного подтверждения
func (s *Scheduler) OnMissed(cb func()) { s.onMissed = cb }

// CaseOpenFn задает проверку наличия открытого кейса эскалации
func (s *Scheduler) CaseOpenFn(fn func() bool) { s.caseOpen = fn }

// Start запускает повторяющийся таймер check-in.
// Вызывается только с цикла сессии.
func (s *Scheduler) Start(interval time.Duration) {
	if s.running {
		return
	}
	s.running = true
	s.interval = interval
	s.log.WithField("interval", interval.String()).Info("Check-in scheduler started")
	s.schedule(interval)
}

// Stop немедленно отменяет все таймеры. Единственный способ гарантировать
// отсутствие дальнейших запросов; уже открытый кейс эскалации не затрагивает.
// Вызывается только с цикла сессии.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.awaitingAck = false
	s.suspended = false
	if s.intervalTimer != nil {
		s.intervalTimer.Stop()
		s.intervalTimer = nil
	}
	if s.ackTimer != nil {
		s.ackTimer.Stop()
		s.ackTimer = nil
	}
	s.log.Info("Check-in scheduler stopped")
}

// Acknowledge подтверждает текущий запрос check-in. Отменяет окно ожидания
// и переносит следующий интервал от момента подтверждения.
// Вызывается только с цикла сессии.
func (s *Scheduler) Acknowledge() {
	if !s.running || !s.awaitingAck {
		return
	}
	s.awaitingAck = false
	if s.ackTimer != nil {
		s.ackTimer.Stop()
		s.ackTimer = nil
	}
	s.log.Info("Check-in acknowledged")
	s.schedule(s.interval)
}

// Resume возобновляет планирование после разрешения кейса эскалации.
// Следующий интервал отсчитывается от момента возобновления.
// Вызывается только с цикла сессии.
func (s *Scheduler) Resume() {
	if !s.running || !s.suspended {
		return
	}
	s.suspended = false
	s.log.Info("Check-in scheduling resumed after escalation")
	s.schedule(s.interval)
}

// AwaitingAck сообщает, ждет ли планировщик подтверждения
func (s *Scheduler) AwaitingAck() bool { return s.awaitingAck }

func (s *Scheduler) schedule(d time.Duration) {
	s.intervalTimer = time.AfterFunc(d, func() {
		s.loop.Post(s.fire)
	})
}

func (s *Scheduler) fire() {
	if !s.running || s.suspended {
		return
	}
	if s.caseOpen() {
		// Пока кейс открыт, запросы не отправляются; Resume перезапустит цикл
		s.suspended = true
		s.log.Info("Escalation case open, suspending check-in prompts")
		return
	}

	s.awaitingAck = true
	s.log.Info("Check-in prompt issued")
	s.onPrompt()

	s.ackTimer = time.AfterFunc(s.ackWindow, func() {
		s.loop.Post(s.missed)
	})
}

func (s *Scheduler) missed() {
	if !s.running || !s.awaitingAck {
		return
	}
	s.awaitingAck = false
	s.suspended = true
	s.log.Warn("Check-in window elapsed without acknowledgment")
	s.onMissed()
}
