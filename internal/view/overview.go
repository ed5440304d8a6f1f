package view

import (
	"sort"

	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

// TopCount сколько стратегий показывать в рейтинге
const TopCount = 5

// RankRow строка рейтинга по прибыли
type RankRow struct {
	Rank        int
	Name        string
	ProfitText  string
	ProfitClass string
}

// Overview сводка: число раундов, реальные и наблюдающие стратегии, топ по прибыли
type Overview struct {
	TotalRounds   int
	LiveCount     int
	WatchingCount int
	LiveShareText string
	Top           []RankRow
}

// NewOverview строит сводку по снимку
func NewOverview(snap models.StatusSnapshot) Overview {
	o := Overview{TotalRounds: len(snap.Logs)}
	for _, s := range snap.Leaderboard {
		switch s.State {
		case models.StateLive:
			o.LiveCount++
		case models.StateWatching:
			o.WatchingCount++
		}
	}

	o.LiveShareText = format.Percent(float64(o.LiveCount), float64(len(snap.Leaderboard)), 0)

	ranked := make([]models.Strategy, len(snap.Leaderboard))
	copy(ranked, snap.Leaderboard)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit > ranked[j].Profit
	})
	if len(ranked) > TopCount {
		ranked = ranked[:TopCount]
	}
	for i, s := range ranked {
		o.Top = append(o.Top, RankRow{
			Rank:        i + 1,
			Name:        format.CleanStrategyName(s.Name),
			ProfitText:  format.Number(s.Profit),
			ProfitClass: format.ValueColorClass(s.Profit),
		})
	}
	return o
}
