package ui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/skalibog/benzboard/internal/config"
	"github.com/skalibog/benzboard/internal/dashboard"
	"github.com/skalibog/benzboard/internal/export"
	"github.com/skalibog/benzboard/internal/format"
	"github.com/skalibog/benzboard/internal/view"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
)

// Options зависимости модели интерфейса
type Options struct {
	Config   config.UIConfig
	Exporter *export.Exporter
	// LogFile JSON-журнал для панели логов
	LogFile string
	// Clipboard куда писать OSC52; по умолчанию stderr
	Clipboard io.Writer
}

// Model модель bubbletea для дашборда
type Model struct {
	ctx      context.Context
	ctrl     *dashboard.Controller
	exporter *export.Exporter
	cfg      config.UIConfig
	logFile  string

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	history *view.HistoryMatrix
	updates <-chan models.StatusPayload

	clipboard io.Writer
	copied    bool
	copySeq   int

	status      string
	statusClass string

	showLogs bool
	logs     []string

	width  int
	height int
}

// NewModel создает модель. Опрос запускается в Init.
func NewModel(ctx context.Context, ctrl *dashboard.Controller, opts Options) Model {
	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = countdownStyle

	clip := opts.Clipboard
	if clip == nil {
		clip = os.Stderr
	}
	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.NewExporter(".")
	}

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		exporter:  exporter,
		cfg:       opts.Config,
		logFile:   opts.LogFile,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spinner:   spin,
		history:   view.NewHistoryMatrix(),
		clipboard: clip,
		width:     120,
		height:    40,
	}
}

// Методы для bubbletea
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, startCmd(m.ctx, m.ctrl)}
	if m.cfg.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.cfg.Title))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.FocusMsg:
		if !m.cfg.PauseOnBlur {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, showCmd(m.ctx, m.ctrl))

	case tea.BlurMsg:
		if m.cfg.PauseOnBlur {
			m.ctrl.Hide()
			m.updates = nil
		}
		return m, nil

	case pollingMsg:
		m.updates = msg.updates
		m.syncHistory()
		return m, waitForUpdate(msg.updates)

	case updateMsg:
		// Старый канал после перезапуска опроса игнорируется
		if !msg.ok || msg.updates != m.updates {
			return m, nil
		}
		return m, tea.Batch(handleUpdateCmd(m.ctx, m.ctrl, msg.payload), waitForUpdate(msg.updates))

	case refreshMsg:
		m.syncHistory()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("导出失败: "+msg.err.Error(), format.TextDanger)
		} else {
			m.setStatus("已导出: "+msg.path, format.TextSuccess)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			logger.Warn("Не удалось скопировать рекомендации", zap.Error(msg.err))
			m.setStatus("复制失败: "+msg.err.Error(), format.TextDanger)
			return m, nil
		}
		m.copied = true
		m.copySeq++
		return m, copyResetCmd(m.copySeq)

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copied = false
		}
		return m, nil

	case logsMsg:
		if msg.err != nil {
			logger.Warn("Ошибка загрузки логов", zap.Error(msg.err))
		}
		if len(msg.lines) > 0 {
			m.logs = msg.lines
		}
		return m, nil

	case logTickMsg:
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(loadLogsCmd(m.logFile), logTickCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Открытые детали перехватывают навигацию
	if m.history.Detail() != nil {
		if key.Matches(msg, m.keys.Close, m.keys.Open) {
			m.history.Close()
		}
		return m, nil
	}

	state := m.ctrl.State()
	snap := state.Snapshot

	switch {
	case key.Matches(msg, m.keys.Refresh):
		if state.Err != "" {
			logger.Info("Повторная загрузка по запросу пользователя")
			return m, tea.Batch(m.spinner.Tick, retryCmd(m.ctx, m.ctrl))
		}
		m.ctrl.Refresh()
	case key.Matches(msg, m.keys.PrevPage):
		m.history.Prev()
	case key.Matches(msg, m.keys.NextPage):
		m.history.Next()
	case key.Matches(msg, m.keys.First):
		m.history.First()
	case key.Matches(msg, m.keys.Last):
		m.history.Last()
	case key.Matches(msg, m.keys.Up):
		m.history.MoveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.history.MoveRow(1)
	case key.Matches(msg, m.keys.NextCol):
		m.history.MoveCol(1, snap.Leaderboard)
	case key.Matches(msg, m.keys.PrevCol):
		m.history.MoveCol(-1, snap.Leaderboard)
	case key.Matches(msg, m.keys.Open):
		m.history.Open(snap.Logs, snap.Leaderboard)
	case key.Matches(msg, m.keys.Export):
		return m, exportCmd(m.exporter, snap.Logs, snap.Leaderboard)
	case key.Matches(msg, m.keys.Copy):
		panel := view.NewPredictionPanel(view.PredictionPanelProps{Strategies: snap.Leaderboard})
		if !panel.CanCopy {
			return m, nil
		}
		return m, copyCmd(m.clipboard, panel.CopyText())
	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tea.Batch(loadLogsCmd(m.logFile), logTickCmd())
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) syncHistory() {
	snap := m.ctrl.State().Snapshot
	m.history.Sync(snap.Logs, snap.Leaderboard)
}

func (m *Model) setStatus(text, class string) {
	m.status = text
	m.statusClass = class
}
