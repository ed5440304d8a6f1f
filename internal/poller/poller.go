// Package poller периодически опрашивает /api/status.
//
// Одновременно в полете не больше одного запроса: тик, пришедший во время
// незавершенного запроса, отбрасывается. Следующий тик планируется через
// фиксированный интервал после завершения предыдущего, поэтому при медленных
// ответах период только растет. Ошибки не прерывают опрос и не замедляют его.
package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
	"go.uber.org/zap"
)

// DefaultInterval интервал опроса по умолчанию
const DefaultInterval = 2 * time.Second

// StatusFetcher источник снимков состояния
type StatusFetcher interface {
	FetchStatus(ctx context.Context) client.Result[models.StatusPayload]
}

// Poller цикл опроса с флагом "запрос в полете"
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration

	inFlight atomic.Bool

	mu      sync.Mutex
	ctx     context.Context
	started bool
	stopped bool
	timer   *time.Timer
	out     chan models.StatusPayload
	done    chan struct{}
}

// New создает новый цикл опроса
func New(fetcher StatusFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetcher:  fetcher,
		interval: interval,
		ctx:      context.Background(),
		out:      make(chan models.StatusPayload, 1),
		done:     make(chan struct{}),
	}
}

// Updates канал успешных снимков. Закрывается после Stop.
// Если потребитель не успел забрать снимок, он заменяется более свежим.
func (p *Poller) Updates() <-chan models.StatusPayload {
	return p.out
}

// InFlight сообщает, выполняется ли сейчас запрос
func (p *Poller) InFlight() bool {
	return p.inFlight.Load()
}

// Start запускает опрос: первый цикл выполняется сразу, без ожидания таймера.
// Возвращает функцию остановки. Повторный вызов Start ничего не делает.
func (p *Poller) Start(ctx context.Context) func() {
	p.mu.Lock()
	if p.started || p.stopped {
		p.mu.Unlock()
		return p.Stop
	}
	p.started = true
	p.ctx = ctx
	p.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-p.done:
		}
	}()

	logger.Info("Опрос запущен", zap.Duration("interval", p.interval))
	go p.cycle()
	return p.Stop
}

// Tick запускает внеочередной цикл. Если запрос уже в полете, тик отбрасывается.
func (p *Poller) Tick() {
	go p.cycle()
}

// Stop снимает отложенный таймер и закрывает канал обновлений.
// Запрос, который уже в полете, не прерывается, но его результат будет отброшен.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	close(p.done)
	close(p.out)
	logger.Info("Опрос остановлен")
}

func (p *Poller) isStopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *Poller) cycle() {
	if p.isStopped() {
		return
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		logger.Debug("Цикл опроса пропущен: предыдущий запрос еще выполняется")
		return
	}

	cycleID := uuid.NewString()
	start := time.Now()

	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()

	res := p.fetcher.FetchStatus(ctx)
	if res.Success {
		p.deliver(res.Data)
	} else {
		// Ошибки опроса не показываются пользователю, только в лог
		logger.Debug("Цикл опроса завершился ошибкой",
			zap.String("cycle", cycleID),
			zap.String("error", res.Error))
	}

	logger.Debug("Цикл опроса завершен",
		zap.String("cycle", cycleID),
		zap.Bool("success", res.Success),
		zap.Duration("took", time.Since(start)))

	p.inFlight.Store(false)
	p.schedule()
}

// schedule планирует следующий цикл через интервал от текущего момента
func (p *Poller) schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.interval, p.cycle)
}

func (p *Poller) deliver(snap models.StatusPayload) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		logger.Debug("Опоздавший снимок отброшен после остановки опроса")
		return
	}

	select {
	case p.out <- snap:
		return
	default:
	}
	// Потребитель отстал: выбрасываем старый снимок, оставляем свежий
	select {
	case <-p.out:
	default:
	}
	p.out <- snap
}
