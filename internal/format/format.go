// Package format содержит чистые функции отображения: числа, проценты,
// время и классы цвета для названий машин и результатов.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Классы цвета. Интерфейс сопоставляет их со стилями.
const (
	TagRed    = "tag-red"
	TagGreen  = "tag-green"
	TagYellow = "tag-yellow"

	TextSuccess   = "text-success"
	TextDanger    = "text-danger"
	TextWarning   = "text-warning"
	TextInfo      = "text-info"
	TextSecondary = "text-secondary"

	BadgeSuccess   = "badge-success"
	BadgeDanger    = "badge-danger"
	BadgeSecondary = "badge-secondary"
)

var (
	bracketsRe = regexp.MustCompile(`\([^)]*\)`)
	brandsRe   = regexp.MustCompile(`(奔驰|宝马|奥迪|大众)`)

	printer = message.NewPrinter(language.Chinese)
)

// Number форматирует число со знаком: 0 -> "0", 5 -> "+5", -5 -> "-5"
func Number(num float64) string {
	if num == 0 || math.IsNaN(num) {
		return "0"
	}
	s := decimal.NewFromFloat(num).String()
	if num > 0 {
		return "+" + s
	}
	return s
}

// Percent форматирует value/total в проценты с заданным числом знаков
func Percent(value, total float64, decimals int) string {
	if total == 0 {
		return "0%"
	}
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, value/total*100)
}

// Amount форматирует сумму с разделителями разрядов
func Amount(n int) string {
	return printer.Sprintf("%d", n)
}

// CarColorClass возвращает класс цвета по названию машины
func CarColorClass(carName string) string {
	switch {
	case carName == "":
		return ""
	case strings.Contains(carName, "红"):
		return TagRed
	case strings.Contains(carName, "绿"):
		return TagGreen
	case strings.Contains(carName, "黄"):
		return TagYellow
	}
	return ""
}

// ValueColorClass класс текста по знаку значения
func ValueColorClass(value float64) string {
	if value > 0 {
		return TextSuccess
	}
	if value < 0 {
		return TextDanger
	}
	return TextSecondary
}

// BadgeClass класс бейджа по знаку значения
func BadgeClass(value float64) string {
	if value > 0 {
		return BadgeSuccess
	}
	if value < 0 {
		return BadgeDanger
	}
	return BadgeSecondary
}

// ResultColorClass класс цвета результата розыгрыша
func ResultColorClass(result string) string {
	switch {
	case result == "":
		return ""
	case strings.Contains(result, "红"):
		return TextDanger
	case strings.Contains(result, "绿"):
		return TextSuccess
	case strings.Contains(result, "黄"):
		return TextWarning
	case strings.Contains(result, "大三元"), strings.Contains(result, "大四喜"):
		return TextInfo
	}
	return ""
}

// Time форматирует секунды как MM:SS, либо HH:MM:SS при наличии часов
func Time(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Progress возвращает current/total в процентах, ограниченное диапазоном 0..100
func Progress(current, total float64) float64 {
	if total == 0 {
		return 0
	}
	return math.Max(0, math.Min(100, current/total*100))
}

// CleanStrategyName убирает содержимое круглых скобок: "策略A(v2)" -> "策略A"
func CleanStrategyName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(bracketsRe.ReplaceAllString(name, ""))
}

// SimplifyCarName убирает марку: "奔驰A8" -> "A8"
func SimplifyCarName(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(brandsRe.ReplaceAllString(name, ""))
}

// CircularProgress геометрия кольцевого индикатора
type CircularProgress struct {
	Radius           float64
	StrokeWidth      float64
	NormalizedRadius float64
	Circumference    float64
}

// NewCircularProgress считает геометрию кольца по радиусу и толщине линии
func NewCircularProgress(radius, strokeWidth float64) CircularProgress {
	normalized := radius - strokeWidth/2
	return CircularProgress{
		Radius:           radius,
		StrokeWidth:      strokeWidth,
		NormalizedRadius: normalized,
		Circumference:    normalized * 2 * math.Pi,
	}
}

// Dashoffset смещение штриха для заданного прогресса в процентах
func (c CircularProgress) Dashoffset(progress float64) float64 {
	return c.Circumference - progress/100*c.Circumference
}
