package view

import (
	"strconv"

	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

// Геометрия кольца обратного отсчета
const (
	RingRadius      = 60
	RingStrokeWidth = 8
)

// HeroProps входные данные шапки с обратным отсчетом
type HeroProps struct {
	Title       string
	NextRoundID string
	Countdown   int
	TimePassed  int
	LastResult  string
	Connected   bool
}

// Hero шапка: номер следующего раунда, отсчет, прогресс, последний результат
type Hero struct {
	Title           string
	NextRoundText   string
	CountdownText   string
	Countdown       int
	TimePassedText  string
	Progress        float64
	Ring            format.CircularProgress
	Dashoffset      float64
	LastResultText  string
	LastResultClass string
	ConnectedText   string
	ConnectedClass  string
}

// NewHero строит модель шапки
func NewHero(p HeroProps) Hero {
	ring := format.NewCircularProgress(RingRadius, RingStrokeWidth)
	progress := format.Progress(float64(p.Countdown), models.CycleSeconds)

	h := Hero{
		Title:           p.Title,
		NextRoundText:   p.NextRoundID,
		CountdownText:   strconv.Itoa(p.Countdown) + "s",
		Countdown:       p.Countdown,
		TimePassedText:  format.Time(p.TimePassed),
		Progress:        progress,
		Ring:            ring,
		Dashoffset:      ring.Dashoffset(progress),
		LastResultText:  p.LastResult,
		LastResultClass: format.ResultColorClass(p.LastResult),
		ConnectedText:   "连接断开",
		ConnectedClass:  format.TextDanger,
	}
	if h.NextRoundText == "" {
		h.NextRoundText = "--"
	}
	if h.LastResultText == "" {
		h.LastResultText = "--"
	}
	if p.Connected {
		h.ConnectedText = "实时连接"
		h.ConnectedClass = format.TextSuccess
	}
	return h
}
