package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/skalibog/benzboard/internal/dashboard"
	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/internal/view"
	"github.com/skalibog/benzboard/pkg/models"
)

const (
	cardWidth    = 26
	ringBarWidth = models.CycleSeconds
	idColWidth   = 10
	resColWidth  = 12
	minColWidth  = 8
	minTableRows = 5
	logsHeight   = 8
)

func (m Model) View() string {
	state := m.ctrl.State()

	if state.Loading {
		return appStyle.Render(m.renderLoading())
	}
	if state.Err != "" {
		return appStyle.Render(m.renderError(state.Err))
	}

	snap := state.Snapshot
	hero := view.NewHero(view.HeroProps{
		Title:       m.cfg.Title,
		NextRoundID: snap.NextRoundID,
		Countdown:   snap.Countdown,
		TimePassed:  snap.TimePassed,
		LastResult:  snap.LastResult,
		Connected:   state.Connected,
	})
	panel := view.NewPredictionPanel(view.PredictionPanelProps{
		Strategies:  snap.Leaderboard,
		Predictions: state.Predictions,
		Copied:      m.copied,
	})

	sections := []string{
		renderHero(hero),
		renderCards(view.StrategyCards(snap.Leaderboard), m.width),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderOverview(view.NewOverview(snap)),
			" ",
			renderPredictions(panel, state.PredictionRound),
		),
	}
	if d := m.history.Detail(); d != nil {
		sections = append(sections, renderDetail(*d))
	} else {
		sections = append(sections, m.renderHistory(snap))
	}
	if m.showLogs {
		sections = append(sections, renderLogsSection(m.logs, logsHeight))
	}
	if m.status != "" {
		sections = append(sections, styled(m.statusClass, m.status))
	}
	sections = append(sections, footerStyle.Render(m.help.View(m.keys)))

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderLoading() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		"",
		m.spinner.View()+" "+mutedStyle.Render("加载中..."),
		"",
	)
}

func (m Model) renderError(errText string) string {
	box := errorBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		styled(format.TextDanger, "连接失败"),
		"",
		mutedStyle.Render(errText),
		"",
		"按 r 重试 · q 退出",
	))
	return lipgloss.Place(m.width-2, max(m.height-2, lipgloss.Height(box)), lipgloss.Center, lipgloss.Center, box)
}

// ringCells сколько делений полосы закрашено по смещению штриха кольца
func ringCells(h view.Hero, width int) int {
	if h.Ring.Circumference == 0 {
		return 0
	}
	filled := (1 - h.Dashoffset/h.Ring.Circumference) * float64(width)
	return min(max(int(math.Round(filled)), 0), width)
}

func renderHero(h view.Hero) string {
	title := titleStyle.Render(h.Title)
	if h.Title == "" {
		title = ""
	}
	status := styled(h.ConnectedClass, "● "+h.ConnectedText)

	filled := ringCells(h, ringBarWidth)
	bar := countdownStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", ringBarWidth-filled))

	body := lipgloss.JoinVertical(lipgloss.Left,
		title+"  "+status,
		"",
		mutedStyle.Render("下期期号 ")+lipgloss.NewStyle().Bold(true).Render(h.NextRoundText),
		countdownStyle.Render(fmt.Sprintf("%4s", h.CountdownText))+" "+bar,
		mutedStyle.Render("本期已过 ")+h.TimePassedText,
		mutedStyle.Render("上期结果 ")+styled(h.LastResultClass, h.LastResultText),
	)
	return sectionStyle.Render(body)
}

func renderCard(c view.StrategyCard) string {
	picks := mutedStyle.Render("-")
	if len(c.Picks) > 0 {
		picks = renderTags(c.Picks)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(runewidth.Truncate(c.Name, cardWidth-10, "…"))+" "+styled(c.BadgeClass, c.StateText),
		mutedStyle.Render("实盘净利 ")+styled(c.ProfitClass, c.ProfitText),
		mutedStyle.Render("理论净利 ")+styled(c.TotalProfitClass, c.TotalProfitText),
		mutedStyle.Render("理论胜率 ")+c.WinRateText,
		mutedStyle.Render("下期推荐 ")+picks,
	)
	if c.Live {
		return liveCardStyle.Render(body)
	}
	return cardStyle.Render(body)
}

func renderCards(cards []view.StrategyCard, width int) string {
	header := sectionHeaderStyle.Render("策略状态")
	if len(cards) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render("暂无策略"))
	}

	perRow := max(1, (width-2)/(cardWidth+4))
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, renderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, rows...)...)
}

func renderOverview(o view.Overview) string {
	stats := fmt.Sprintf("%s %d   %s %s   %s %s",
		mutedStyle.Render("总期数"), o.TotalRounds,
		mutedStyle.Render("实盘策略"), styled(format.TextSuccess, fmt.Sprint(o.LiveCount)),
		mutedStyle.Render("观望策略"), mutedStyle.Render(fmt.Sprint(o.WatchingCount)))

	lines := []string{
		sectionHeaderStyle.Render("数据概览"),
		stats,
		mutedStyle.Render("实盘占比 ") + o.LiveShareText,
		"",
		mutedStyle.Render("盈利排行"),
	}
	for _, r := range o.Top {
		lines = append(lines, fmt.Sprintf("%d. %s %s", r.Rank, runewidth.FillRight(r.Name, 16), styled(r.ProfitClass, r.ProfitText)))
	}
	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderPredictions(p view.PredictionPanel, round string) string {
	header := sectionHeaderStyle.Render("下期推荐")
	if round != "" {
		header += " " + mutedStyle.Render("第 "+round+" 期")
	}
	if p.Empty {
		return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", mutedStyle.Render("暂无实盘策略")))
	}

	copyLabel := mutedStyle.Render("[c] " + p.CopyLabel)
	if p.Copied {
		copyLabel = styled(format.TextSuccess, p.CopyLabel)
	}
	lines := []string{
		header,
		mutedStyle.Render("实盘策略 ") + fmt.Sprintf("%d 个", p.ActiveCount),
		renderTags(p.Tags),
	}
	if p.HasPredictions {
		lines = append(lines, mutedStyle.Render("预计投注 ")+styled(format.TextWarning, p.TotalText))
	}
	if p.CanCopy {
		lines = append(lines, copyLabel)
	}
	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderTags(tags []view.Tag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, styled(t.Class, t.Text))
	}
	return strings.Join(parts, " ")
}

// pad выравнивает текст по ширине с учетом широких символов
func pad(text string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
}

func cellStyle(class string) lipgloss.Style {
	if style, ok := classStyles[class]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

func (m Model) renderHistory(snap models.StatusSnapshot) string {
	header := sectionHeaderStyle.Render("历史记录") + " " + mutedStyle.Render("[e] 导出CSV")
	cols := view.Columns(snap.Leaderboard)

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = max(minColWidth, runewidth.StringWidth(c.Header)+2)
	}

	var head strings.Builder
	head.WriteString(pad("期号", idColWidth) + pad("开奖结果", resColWidth))
	for i, c := range cols {
		head.WriteString(pad(c.Header, widths[i]))
	}
	lines := []string{header, lipgloss.NewStyle().Bold(true).Render(head.String())}

	visible := m.history.Visible(snap.Logs)
	if len(visible) == 0 {
		lines = append(lines, mutedStyle.Render("暂无历史记录"))
	}

	selRow, selCol := m.history.Selection()
	maxRows := max(minTableRows, m.height-30)
	start := 0
	if selRow >= maxRows {
		start = selRow - maxRows + 1
	}
	end := min(start+maxRows, len(visible))

	for i := start; i < end; i++ {
		row := view.NewRow(visible[i], cols)
		var b strings.Builder
		marker := pad(row.RoundID, idColWidth)
		if i == selRow {
			marker = selectedStyle.Render(marker)
		}
		b.WriteString(marker)
		b.WriteString(cellStyle(row.ResultClass).Render(pad(row.Result, resColWidth)))
		for j, cell := range row.Cells {
			style := cellStyle(cell.Class)
			if i == selRow && j == selCol {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(pad(cell.Text, widths[j])))
		}
		lines = append(lines, b.String())
	}

	pager := m.history.Pager()
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("第 %d / %d 页 · 共 %d 条   ←/→ 翻页 · home/end 首页/尾页 · enter 详情",
		pager.Current(), pager.TotalPages(), pager.Count())))

	return sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderDetail(d view.Detail) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(d.Strategy) + " " + styled(d.BadgeClass, d.BadgeText),
		"",
		mutedStyle.Render("期号"),
		lipgloss.NewStyle().Bold(true).Render(d.RoundID),
		mutedStyle.Render("开奖结果"),
		styled(d.ResultClass, d.Result),
	}
	if len(d.Picks) > 0 {
		lines = append(lines, mutedStyle.Render("推荐车型"), renderTags(d.Picks))
	}
	lines = append(lines,
		mutedStyle.Render("盈亏"),
		styled(d.ProfitClass, d.ProfitText),
		"",
		mutedStyle.Render("esc 关闭"),
	)
	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// stateSummary короткая строка состояния для журнала
func stateSummary(s dashboard.State) string {
	return fmt.Sprintf("round=%s strategies=%d logs=%d connected=%t",
		s.Snapshot.RoundID, len(s.Snapshot.Leaderboard), len(s.Snapshot.Logs), s.Connected)
}
