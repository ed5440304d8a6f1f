package view

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

func TestNewHero(t *testing.T) {
	h := NewHero(HeroProps{NextRoundID: "1002", Countdown: 17, TimePassed: 75, LastResult: "红奔驰", Connected: true})
	assert.Equal(t, "1002", h.NextRoundText)
	assert.Equal(t, "17s", h.CountdownText)
	assert.Equal(t, "01:15", h.TimePassedText)
	assert.InDelta(t, 50.0, h.Progress, 1e-9)
	assert.InDelta(t, h.Ring.Circumference/2, h.Dashoffset, 1e-9)
	assert.Equal(t, "红奔驰", h.LastResultText)
	assert.Equal(t, format.TextDanger, h.LastResultClass)
	assert.Equal(t, "实时连接", h.ConnectedText)
	assert.Equal(t, format.TextSuccess, h.ConnectedClass)
}

func TestNewHeroDefaults(t *testing.T) {
	h := NewHero(HeroProps{Countdown: 0})
	assert.Equal(t, "--", h.NextRoundText)
	assert.Equal(t, "--", h.LastResultText)
	assert.Equal(t, "0s", h.CountdownText)
	assert.Equal(t, "00:00", h.TimePassedText)
	assert.Equal(t, "连接断开", h.ConnectedText)
	assert.InDelta(t, h.Ring.Circumference, h.Dashoffset, 1e-9)

	full := NewHero(HeroProps{Countdown: models.CycleSeconds})
	assert.InDelta(t, 0.0, full.Dashoffset, 1e-9)
}

func TestNewOverviewEmpty(t *testing.T) {
	o := NewOverview(models.StatusSnapshot{})
	assert.Equal(t, "0%", o.LiveShareText)
	assert.Empty(t, o.Top)
}

func TestStrategyCards(t *testing.T) {
	cards := StrategyCards([]models.Strategy{
		{Name: "策略A(v2)", State: models.StateLive, Profit: 12, TotalProfit: 30, WinRate: 55.5, NextPicks: []string{"红奔驰", "绿宝马"}},
		{Name: "策略B", State: models.StateWatching, Profit: -3, TotalProfit: -8, WinRate: 40},
	})
	require.Len(t, cards, 2)

	assert.Equal(t, "策略A", cards[0].Name)
	assert.True(t, cards[0].Live)
	assert.Equal(t, "实盘中", cards[0].StateText)
	assert.Equal(t, "+12", cards[0].ProfitText)
	assert.Equal(t, format.TextSuccess, cards[0].ProfitClass)
	assert.Equal(t, "55.5%", cards[0].WinRateText)
	assert.Equal(t, "+30", cards[0].TotalProfitText)
	assert.Equal(t, format.BadgeSuccess, cards[0].TotalProfitClass)
	assert.Equal(t, []Tag{{Text: "红", Class: format.TagRed}, {Text: "绿", Class: format.TagGreen}}, cards[0].Picks)

	assert.Equal(t, "观望", cards[1].StateText)
	assert.Equal(t, format.TextDanger, cards[1].ProfitClass)
	assert.Equal(t, "-8", cards[1].TotalProfitText)
	assert.Equal(t, format.BadgeDanger, cards[1].TotalProfitClass)
	assert.Empty(t, cards[1].Picks)
}

func TestRecommendedPicks(t *testing.T) {
	picks := RecommendedPicks([]models.Strategy{
		{State: models.StateLive, NextPicks: []string{"红奔驰", "绿宝马"}},
		{State: models.StateWatching, NextPicks: []string{"黄奥迪"}},
		{State: models.StateLive, NextPicks: []string{"绿宝马", "黄大众"}},
	})
	assert.Equal(t, []string{"红奔驰", "绿宝马", "黄大众"}, picks)
}

func TestNewPredictionPanel(t *testing.T) {
	panel := NewPredictionPanel(PredictionPanelProps{
		Strategies: []models.Strategy{
			{State: models.StateLive, NextPicks: []string{"红奔驰"}},
			{State: models.StateLive, NextPicks: []string{"红奔驰", "绿宝马"}},
		},
		Predictions: map[string]json.RawMessage{
			"红奔驰": json.RawMessage("100"),
			"绿宝马": json.RawMessage("100"),
			"黄奥迪": json.RawMessage("100"),
		},
	})
	assert.Equal(t, 2, panel.ActiveCount)
	assert.False(t, panel.Empty)
	assert.True(t, panel.HasPredictions)
	assert.Equal(t, 300, panel.TotalAmount)
	assert.Equal(t, "300 元", panel.TotalText)
	assert.Equal(t, "红奔驰, 绿宝马", panel.CopyText())
	assert.Equal(t, "复制推荐", panel.CopyLabel)
}

func TestNewPredictionPanelEmpty(t *testing.T) {
	panel := NewPredictionPanel(PredictionPanelProps{
		Strategies: []models.Strategy{{State: models.StateWatching, NextPicks: []string{"红奔驰"}}},
		Copied:     true,
	})
	assert.True(t, panel.Empty)
	assert.False(t, panel.CanCopy)
	assert.False(t, panel.HasPredictions)
	assert.Equal(t, 0, panel.TotalAmount)
	assert.Equal(t, "✓ 已复制", panel.CopyLabel)
}

func TestNewOverview(t *testing.T) {
	var board []models.Strategy
	for i := 0; i < 7; i++ {
		state := models.StateWatching
		if i%2 == 0 {
			state = models.StateLive
		}
		board = append(board, models.Strategy{Name: fmt.Sprintf("S%d(x)", i), State: state, Profit: float64(i)})
	}
	o := NewOverview(models.StatusSnapshot{Leaderboard: board, Logs: make([]models.HistoryEntry, 12)})

	assert.Equal(t, 12, o.TotalRounds)
	assert.Equal(t, 4, o.LiveCount)
	assert.Equal(t, 3, o.WatchingCount)
	assert.Equal(t, "57%", o.LiveShareText)
	require.Len(t, o.Top, TopCount)
	assert.Equal(t, RankRow{Rank: 1, Name: "S6", ProfitText: "+6", ProfitClass: format.TextSuccess}, o.Top[0])
	assert.Equal(t, "S2", o.Top[4].Name)
	// исходный порядок не меняется
	assert.Equal(t, "S0(x)", board[0].Name)
}
