package session

import (
	"sync"
)

// Loop - управляющий цикл сессии. Все переходы состояния компонентов
// (соединение, риск, check-in, эскалация) выполняются замыканиями на одной
// горутине, поэтому два обработчика переходов никогда не работают одновременно
// и явные блокировки в компонентах не нужны. Таймеры и сетевые колбэки
// публикуют свои продолжения сюда через Post.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewLoop создает цикл с буфером задач заданного размера
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run запускает горутину, исполняющую задачи до остановки цикла
func (l *Loop) Run() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.done:
				return
			case fn := <-l.tasks:
				fn()
			}
		}
	}()
}

// Post ставит задачу в очередь цикла. Возвращает false, если цикл
// уже остановлен: поздние колбэки от таймеров и сети просто отбрасываются,
// чтобы не трогать состояние разобранной сессии.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call выполняет функцию на цикле синхронно и возвращает ее ошибку.
// Используется для вызовов с HTTP-хэндлеров, которым нужен результат перехода.
func (l *Loop) Call(fn func() error) error {
	errc := make(chan error, 1)
	if !l.Post(func() { errc <- fn() }) {
		return ErrSessionClosed
	}
	select {
	case err := <-errc:
		return err
	case <-l.done:
		return ErrSessionClosed
	}
}

// Stop останавливает цикл. Идемпотентна; уже поставленные задачи могут
// быть не выполнены.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
	l.wg.Wait()
}
