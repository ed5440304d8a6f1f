package view

import (
	"encoding/json"
	"strings"

	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

// UnitStake фиксированная ставка на одну позицию прогноза
const UnitStake = 100

// PredictionPanelProps входные данные панели рекомендаций
type PredictionPanelProps struct {
	Strategies  []models.Strategy
	Predictions map[string]json.RawMessage
	Copied      bool
}

// PredictionPanel панель рекомендаций на следующий раунд
type PredictionPanel struct {
	ActiveCount    int
	Picks          []string
	Tags           []Tag
	HasPredictions bool
	TotalAmount    int
	TotalText      string
	Empty          bool
	CanCopy        bool
	Copied         bool
	CopyLabel      string
}

// RecommendedPicks объединение следующих ставок всех реальных стратегий без повторов,
// в порядке первого появления
func RecommendedPicks(strategies []models.Strategy) []string {
	seen := make(map[string]struct{})
	var picks []string
	for _, s := range strategies {
		if !s.IsLive() {
			continue
		}
		for _, car := range s.NextPicks {
			if _, ok := seen[car]; ok {
				continue
			}
			seen[car] = struct{}{}
			picks = append(picks, car)
		}
	}
	return picks
}

// TotalStake наивная оценка общей ставки: позиции прогноза * UnitStake
func TotalStake(predictions map[string]json.RawMessage) int {
	return len(predictions) * UnitStake
}

// NewPredictionPanel строит модель панели
func NewPredictionPanel(p PredictionPanelProps) PredictionPanel {
	active := 0
	for _, s := range p.Strategies {
		if s.IsLive() {
			active++
		}
	}
	picks := RecommendedPicks(p.Strategies)
	total := TotalStake(p.Predictions)

	panel := PredictionPanel{
		ActiveCount:    active,
		Picks:          picks,
		Tags:           CarTags(picks),
		HasPredictions: len(p.Predictions) > 0,
		TotalAmount:    total,
		TotalText:      format.Amount(total) + " 元",
		Empty:          active == 0,
		CanCopy:        len(picks) > 0,
		Copied:         p.Copied,
		CopyLabel:      "复制推荐",
	}
	if p.Copied {
		panel.CopyLabel = "✓ 已复制"
	}
	return panel
}

// CopyText текст рекомендаций для буфера обмена
func (p PredictionPanel) CopyText() string {
	return strings.Join(p.Picks, ", ")
}
