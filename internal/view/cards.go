package view

import (
	"strconv"

	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

// StrategyCard карточка стратегии
type StrategyCard struct {
	Name        string
	Live        bool
	StateText   string
	BadgeClass  string
	ProfitText  string
	ProfitClass string
	// теоретическая прибыль, включая виртуальные ставки
	TotalProfitText  string
	TotalProfitClass string
	WinRateText      string
	Picks            []Tag
}

// StrategyCards карточки в порядке таблицы лидеров
func StrategyCards(strategies []models.Strategy) []StrategyCard {
	cards := make([]StrategyCard, 0, len(strategies))
	for _, s := range strategies {
		card := StrategyCard{
			Name:             format.CleanStrategyName(s.Name),
			Live:             s.IsLive(),
			StateText:        "观望",
			BadgeClass:       format.BadgeSecondary,
			ProfitText:       format.Number(s.Profit),
			ProfitClass:      format.ValueColorClass(s.Profit),
			TotalProfitText:  format.Number(s.TotalProfit),
			TotalProfitClass: format.BadgeClass(s.TotalProfit),
			WinRateText:      strconv.FormatFloat(s.WinRate, 'f', -1, 64) + "%",
			Picks:            CarTags(s.NextPicks),
		}
		if card.Live {
			card.StateText = "实盘中"
			card.BadgeClass = format.BadgeSuccess
		}
		cards = append(cards, card)
	}
	return cards
}
