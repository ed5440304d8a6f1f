package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CycleSeconds длительность полного цикла раунда, по ней нормализуется прогресс
const CycleSeconds = 34

// Состояния стратегии
const (
	StateWatching = 0 // 观望, виртуальные ставки
	StateLive     = 1 // 实盘, реальные ставки
)

// RoundID идентификатор раунда; бэкенд присылает его то строкой, то числом
type RoundID string

// UnmarshalJSON принимает и строку, и число
func (r *RoundID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RoundID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("некорректный номер раунда %s: %w", string(data), err)
	}
	*r = RoundID(n.String())
	return nil
}

func (r RoundID) String() string {
	return string(r)
}

// Strategy представляет стратегию из таблицы лидеров
type Strategy struct {
	Name        string   `json:"name"`
	State       int      `json:"state"`
	Profit      float64  `json:"profit"`
	TotalProfit float64  `json:"total_profit"`
	WinRate     float64  `json:"rate"`
	NextPicks   []string `json:"next"`
}

// IsLive возвращает true, если стратегия сейчас ставит реальные деньги
func (s Strategy) IsLive() bool {
	return s.State == StateLive
}

// PerStrategyResult результат одной стратегии в одном раунде
type PerStrategyResult struct {
	State          int      `json:"state"`
	Profit         float64  `json:"profit"`
	RealChange     float64  `json:"real_change"`
	PredictedPicks []string `json:"pred,omitempty"`
}

// IsReal результат реальный, если стратегия была в реале или зафиксирована смена состояния
func (r PerStrategyResult) IsReal() bool {
	return r.State == StateLive || r.RealChange != 0
}

// HistoryEntry запись истории по одному прошедшему раунду
type HistoryEntry struct {
	ID     RoundID                      `json:"id"`
	Time   string                       `json:"time,omitempty"`
	Result string                       `json:"res"`
	Matrix map[string]PerStrategyResult `json:"matrix"`
}

// ResultLabel возвращает результат без хвоста в квадратных скобках
func (h HistoryEntry) ResultLabel() string {
	label, _, _ := strings.Cut(h.Result, "[")
	return label
}

// Lookup ищет результат стратегии по очищенному имени, затем по исходному
func (h HistoryEntry) Lookup(names ...string) (PerStrategyResult, bool) {
	for _, name := range names {
		if res, ok := h.Matrix[name]; ok {
			return res, true
		}
	}
	return PerStrategyResult{}, false
}

// StatusPayload ответ /api/status как он приходит по сети.
// Countdown указатель, чтобы отличать отсутствующее поле от нуля.
type StatusPayload struct {
	RoundID     RoundID        `json:"lid"`
	NextRoundID RoundID        `json:"next_lid"`
	LastResult  string         `json:"last_res"`
	TimePassed  int            `json:"time_passed"`
	Countdown   *int           `json:"countdown"`
	Leaderboard []Strategy     `json:"leaderboard"`
	Logs        []HistoryEntry `json:"logs"`
}

// StatusSnapshot нормализованный снимок состояния, заменяется целиком при каждом опросе
type StatusSnapshot struct {
	RoundID     string
	NextRoundID string
	LastResult  string
	TimePassed  int
	Countdown   int
	Leaderboard []Strategy
	Logs        []HistoryEntry
}

// HistoryPage ответ /api/logs
type HistoryPage struct {
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
	Logs       []HistoryEntry `json:"logs"`
}

// PredictionSet ответ /api/predictions
type PredictionSet struct {
	Round       RoundID                    `json:"round"`
	Predictions map[string]json.RawMessage `json:"predictions"`
}
