package dashboard

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/internal/poller"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
	"go.uber.org/zap"
)

// API операции бэкенда, нужные контроллеру
type API interface {
	FetchStatus(ctx context.Context) client.Result[models.StatusPayload]
	FetchPredictions(ctx context.Context) client.Result[models.PredictionSet]
}

// State каноническое состояние дашборда
type State struct {
	Connected bool
	Loading   bool
	Err       string
	Polling   bool

	Snapshot models.StatusSnapshot

	PredictionRound string
	Predictions     map[string]json.RawMessage

	UpdatedAt time.Time
}

// Controller владеет единственным снимком состояния и связывает с ним опрос
type Controller struct {
	api      API
	interval time.Duration

	mu     sync.RWMutex
	state  State
	poller *poller.Poller
	// hidden и gen защищают от запуска опроса после Hide, пока Show еще грузит данные
	hidden bool
	gen    uint64
}

// New создает контроллер. До первой загрузки состояние "загружается".
func New(api API, interval time.Duration) *Controller {
	return &Controller{
		api:      api,
		interval: interval,
		state: State{
			Loading:     true,
			Snapshot:    Normalize(models.StatusPayload{}),
			Predictions: map[string]json.RawMessage{},
		},
	}
}

// State возвращает копию текущего состояния.
// Срезы снимка не копируются: снимок заменяется целиком и не изменяется.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Normalize подставляет значения по умолчанию для отсутствующих полей
func Normalize(p models.StatusPayload) models.StatusSnapshot {
	snap := models.StatusSnapshot{
		RoundID:     p.RoundID.String(),
		NextRoundID: p.NextRoundID.String(),
		LastResult:  p.LastResult,
		TimePassed:  p.TimePassed,
		Countdown:   models.CycleSeconds,
		Leaderboard: p.Leaderboard,
		Logs:        p.Logs,
	}

	if p.Countdown != nil {
		snap.Countdown = min(max(*p.Countdown, 0), models.CycleSeconds)
	}
	if snap.NextRoundID == "" && snap.RoundID != "" {
		if n, err := strconv.ParseInt(snap.RoundID, 10, 64); err == nil {
			snap.NextRoundID = strconv.FormatInt(n+1, 10)
		}
	}
	if snap.Leaderboard == nil {
		snap.Leaderboard = []models.Strategy{}
	}
	if snap.Logs == nil {
		snap.Logs = []models.HistoryEntry{}
	}
	return snap
}

// ApplyStatus заменяет снимок целиком и отмечает подключение
func (c *Controller) ApplyStatus(p models.StatusPayload) {
	snap := Normalize(p)

	c.mu.Lock()
	c.state.Snapshot = snap
	c.state.Connected = true
	c.state.Loading = false
	c.state.Err = ""
	c.state.UpdatedAt = time.Now()
	c.mu.Unlock()

	logger.Debug("Снимок состояния обновлен",
		zap.String("round", snap.RoundID),
		zap.Int("countdown", snap.Countdown),
		zap.Int("strategies", len(snap.Leaderboard)),
		zap.Int("logs", len(snap.Logs)))
}

// Initialize выполняет полную загрузку: состояние, затем прогноз независимо от результата
func (c *Controller) Initialize(ctx context.Context) {
	c.mu.Lock()
	c.state.Loading = true
	c.mu.Unlock()

	res := c.api.FetchStatus(ctx)
	if res.Success {
		c.ApplyStatus(res.Data)
	} else {
		c.mu.Lock()
		c.state.Err = res.Error
		c.state.Loading = false
		c.state.Connected = false
		c.mu.Unlock()
		logger.Error("Не удалось загрузить состояние", zap.String("error", res.Error))
	}

	c.LoadPredictions(ctx)
}

// LoadPredictions обновляет прогноз. При ошибке остается предыдущий.
func (c *Controller) LoadPredictions(ctx context.Context) {
	res := c.api.FetchPredictions(ctx)
	if !res.Success {
		return
	}

	preds := res.Data.Predictions
	if preds == nil {
		preds = map[string]json.RawMessage{}
	}

	c.mu.Lock()
	c.state.Predictions = preds
	c.state.PredictionRound = res.Data.Round.String()
	c.mu.Unlock()
}

// HandleUpdate обработка снимка от опроса: применить и перечитать прогноз
func (c *Controller) HandleUpdate(ctx context.Context, p models.StatusPayload) {
	c.ApplyStatus(p)
	c.LoadPredictions(ctx)
}

// StartPolling запускает опрос и возвращает канал снимков.
// Если опрос уже идет, возвращается канал текущего опроса.
// Пока дашборд скрыт, опрос не запускается и возвращается nil.
func (c *Controller) StartPolling(ctx context.Context) <-chan models.StatusPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startPollingLocked(ctx)
}

func (c *Controller) startPollingLocked(ctx context.Context) <-chan models.StatusPayload {
	if c.poller != nil {
		return c.poller.Updates()
	}
	if c.hidden {
		return nil
	}
	p := poller.New(c.api, c.interval)
	c.poller = p
	c.state.Polling = true
	p.Start(ctx)
	return p.Updates()
}

// StopPolling останавливает опрос; опоздавшие ответы отбрасываются
func (c *Controller) StopPolling() {
	c.mu.Lock()
	p := c.poller
	c.poller = nil
	c.state.Polling = false
	c.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

// Refresh внеочередной цикл опроса
func (c *Controller) Refresh() {
	c.mu.RLock()
	p := c.poller
	c.mu.RUnlock()

	if p != nil {
		p.Tick()
	}
}

// Polling сообщает, идет ли опрос
func (c *Controller) Polling() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.poller != nil
}

// Hide останавливает опрос, когда дашборд не виден.
// Show, начатый до Hide, опрос уже не запустит.
func (c *Controller) Hide() {
	c.mu.Lock()
	c.hidden = true
	c.gen++
	polling := c.poller != nil
	c.mu.Unlock()

	if !polling {
		return
	}
	logger.Info("Дашборд скрыт, опрос приостановлен")
	c.StopPolling()
}

// Show при возврате видимости выполняет полную загрузку и запускает новый опрос.
// Возвращает nil, если опрос уже идет или дашборд снова скрыли во время загрузки.
func (c *Controller) Show(ctx context.Context) <-chan models.StatusPayload {
	c.mu.Lock()
	if c.poller != nil {
		c.mu.Unlock()
		return nil
	}
	c.hidden = false
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	logger.Info("Дашборд снова виден, перезагрузка данных")
	c.Initialize(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		logger.Debug("Дашборд скрыт во время загрузки, опрос не запускается")
		return nil
	}
	return c.startPollingLocked(ctx)
}
