package view

import (
	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/pkg/models"
)

// PageSize размер страницы таблицы истории
const PageSize = 50

// Paginator постраничная навигация по count записям
type Paginator struct {
	page  int
	count int
}

// NewPaginator начинает с первой страницы
func NewPaginator(count int) Paginator {
	p := Paginator{page: 1}
	p.SetCount(count)
	return p
}

// SetCount обновляет число записей, текущая страница не выходит за последнюю
func (p *Paginator) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	p.count = count
	if p.page < 1 {
		p.page = 1
	}
	if last := p.TotalPages(); p.page > last {
		p.page = last
	}
}

// Current номер текущей страницы, с единицы
func (p Paginator) Current() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Count число записей
func (p Paginator) Count() int { return p.count }

// TotalPages число страниц, минимум одна
func (p Paginator) TotalPages() int {
	pages := (p.count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Page переходит на страницу n; вне диапазона ничего не делает
func (p *Paginator) Page(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.page = n
	return true
}

func (p *Paginator) First() bool { return p.Page(1) }
func (p *Paginator) Prev() bool  { return p.Page(p.Current() - 1) }
func (p *Paginator) Next() bool  { return p.Page(p.Current() + 1) }
func (p *Paginator) Last() bool  { return p.Page(p.TotalPages()) }

// HasPrev есть ли предыдущая страница
func (p Paginator) HasPrev() bool { return p.Current() > 1 }

// HasNext есть ли следующая страница
func (p Paginator) HasNext() bool { return p.Current() < p.TotalPages() }

// Bounds полуинтервал [start, end) записей текущей страницы
func (p Paginator) Bounds() (int, int) {
	start := (p.Current() - 1) * PageSize
	if start > p.count {
		start = p.count
	}
	end := start + PageSize
	if end > p.count {
		end = p.count
	}
	return start, end
}

// Column колонка стратегии в таблице истории
type Column struct {
	Header string
	Raw    string
}

// Columns колонки в порядке таблицы лидеров, заголовок без скобок
func Columns(strategies []models.Strategy) []Column {
	cols := make([]Column, 0, len(strategies))
	for _, s := range strategies {
		cols = append(cols, Column{Header: format.CleanStrategyName(s.Name), Raw: s.Name})
	}
	return cols
}

// Lookup результат стратегии колонки в записи
func (c Column) Lookup(entry models.HistoryEntry) (models.PerStrategyResult, bool) {
	return entry.Lookup(c.Header, c.Raw)
}

// Cell ячейка таблицы истории
type Cell struct {
	Text    string
	Class   string
	Present bool
	Real    bool
}

// NewCell ячейка для записи и колонки.
// Нет записи: "-"; реальный результат: прибыль со знаком; иначе пусто.
func NewCell(entry models.HistoryEntry, col Column) Cell {
	res, ok := col.Lookup(entry)
	if !ok {
		return Cell{Text: "-", Class: format.TextSecondary}
	}
	if !res.IsReal() {
		return Cell{Class: format.TextSecondary, Present: true}
	}
	return Cell{
		Text:    format.Number(res.Profit),
		Class:   format.ValueColorClass(res.Profit),
		Present: true,
		Real:    true,
	}
}

// ProfitText текст прибыли для экспорта: пусто, если результат не реальный
func ProfitText(entry models.HistoryEntry, col Column) string {
	res, ok := col.Lookup(entry)
	if !ok || !res.IsReal() {
		return ""
	}
	return format.Number(res.Profit)
}

// Row строка таблицы истории
type Row struct {
	RoundID     string
	Result      string
	ResultClass string
	Cells       []Cell
}

// NewRow строит строку по записи
func NewRow(entry models.HistoryEntry, cols []Column) Row {
	// цвет по полной строке: у особых наград машины в скобках
	row := Row{
		RoundID:     entry.ID.String(),
		Result:      entry.ResultLabel(),
		ResultClass: format.ResultColorClass(entry.Result),
		Cells:       make([]Cell, 0, len(cols)),
	}
	for _, col := range cols {
		row.Cells = append(row.Cells, NewCell(entry, col))
	}
	return row
}

// Detail модальное окно с деталями одной ячейки
type Detail struct {
	Strategy    string
	RoundID     string
	Result      string
	ResultClass string
	Live        bool
	BadgeText   string
	BadgeClass  string
	Picks       []Tag
	ProfitText  string
	ProfitClass string
	Real        bool
}

// NewDetail детали результата стратегии в раунде
func NewDetail(entry models.HistoryEntry, col Column, res models.PerStrategyResult) Detail {
	d := Detail{
		Strategy:    col.Header,
		RoundID:     entry.ID.String(),
		Result:      entry.Result,
		ResultClass: format.ResultColorClass(entry.Result),
		Live:        res.State == models.StateLive,
		BadgeText:   "虚盘单",
		BadgeClass:  format.BadgeSecondary,
		Picks:       make([]Tag, 0, len(res.PredictedPicks)),
		ProfitText:  format.Number(res.Profit),
		ProfitClass: format.ValueColorClass(res.Profit),
		Real:        res.IsReal(),
	}
	if d.Live {
		d.BadgeText = "实盘单"
		d.BadgeClass = format.BadgeSuccess
	}
	for _, car := range res.PredictedPicks {
		d.Picks = append(d.Picks, Tag{Text: car, Class: format.CarColorClass(car)})
	}
	return d
}

// HistoryMatrix состояние таблицы истории: страница, выбранная ячейка, открытые детали
type HistoryMatrix struct {
	pager  Paginator
	row    int
	col    int
	detail *Detail
}

// NewHistoryMatrix пустая таблица на первой странице
func NewHistoryMatrix() *HistoryMatrix {
	return &HistoryMatrix{pager: NewPaginator(0)}
}

// Sync подстраивает страницу и выделение под новые данные.
// Открытые детали остаются: они хранят копию.
func (h *HistoryMatrix) Sync(logs []models.HistoryEntry, strategies []models.Strategy) {
	h.pager.SetCount(len(logs))
	h.clampSelection(len(strategies))
}

// Pager текущая навигация
func (h *HistoryMatrix) Pager() Paginator { return h.pager }

// Page переходит на страницу n, выделение сбрасывается на первую строку
func (h *HistoryMatrix) Page(n int) bool {
	if !h.pager.Page(n) {
		return false
	}
	h.row = 0
	return true
}

func (h *HistoryMatrix) First() bool { return h.Page(1) }
func (h *HistoryMatrix) Prev() bool  { return h.Page(h.pager.Current() - 1) }
func (h *HistoryMatrix) Next() bool  { return h.Page(h.pager.Current() + 1) }
func (h *HistoryMatrix) Last() bool  { return h.Page(h.pager.TotalPages()) }

// Visible записи текущей страницы
func (h *HistoryMatrix) Visible(logs []models.HistoryEntry) []models.HistoryEntry {
	h.pager.SetCount(len(logs))
	start, end := h.pager.Bounds()
	return logs[start:end]
}

// Selection выбранная строка на странице и колонка
func (h *HistoryMatrix) Selection() (int, int) { return h.row, h.col }

// MoveRow сдвигает выделение по строкам в пределах страницы
func (h *HistoryMatrix) MoveRow(delta int) {
	start, end := h.pager.Bounds()
	h.row = clamp(h.row+delta, 0, end-start-1)
}

// MoveCol сдвигает выделение по колонкам
func (h *HistoryMatrix) MoveCol(delta int, strategies []models.Strategy) {
	h.col = clamp(h.col+delta, 0, len(strategies)-1)
}

// Open открывает детали выбранной ячейки, если у записи есть результат этой стратегии
func (h *HistoryMatrix) Open(logs []models.HistoryEntry, strategies []models.Strategy) bool {
	visible := h.Visible(logs)
	if h.row < 0 || h.row >= len(visible) || h.col < 0 || h.col >= len(strategies) {
		return false
	}
	entry := visible[h.row]
	col := Columns(strategies[h.col : h.col+1])[0]
	res, ok := col.Lookup(entry)
	if !ok {
		return false
	}
	d := NewDetail(entry, col, res)
	h.detail = &d
	return true
}

// Close закрывает детали
func (h *HistoryMatrix) Close() { h.detail = nil }

// Detail открытые детали или nil
func (h *HistoryMatrix) Detail() *Detail { return h.detail }

func (h *HistoryMatrix) clampSelection(cols int) {
	start, end := h.pager.Bounds()
	h.row = clamp(h.row, 0, end-start-1)
	h.col = clamp(h.col, 0, cols-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
