package ui

import (
	"context"
	"io"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/skalibog/benzboard/internal/dashboard"
	"github.com/skalibog/benzboard/internal/export"
	"github.com/skalibog/benzboard/pkg/models"
)

const (
	copiedFeedback  = 2 * time.Second
	logTailInterval = time.Second
)

// Сообщения для обновления UI
type (
	// pollingMsg опрос запущен (или перезапущен после возврата фокуса)
	pollingMsg struct {
		updates <-chan models.StatusPayload
	}
	// updateMsg снимок из канала опроса; ok=false, если канал закрыт
	updateMsg struct {
		updates <-chan models.StatusPayload
		payload models.StatusPayload
		ok      bool
	}
	// refreshMsg состояние контроллера изменилось, нужно перерисовать
	refreshMsg struct{}

	exportedMsg struct {
		path string
		err  error
	}
	copiedMsg struct {
		err error
	}
	copyResetMsg struct {
		seq int
	}
	logsMsg struct {
		lines []string
		err   error
	}
	logTickMsg struct{}
)

// startCmd полная загрузка и запуск опроса
func startCmd(ctx context.Context, ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Initialize(ctx)
		return pollingMsg{updates: ctrl.StartPolling(ctx)}
	}
}

// retryCmd повторная полная загрузка после ошибки
func retryCmd(ctx context.Context, ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Initialize(ctx)
		return refreshMsg{}
	}
}

// showCmd возобновляет опрос при возврате фокуса
func showCmd(ctx context.Context, ctrl *dashboard.Controller) tea.Cmd {
	return func() tea.Msg {
		ch := ctrl.Show(ctx)
		if ch == nil {
			return refreshMsg{}
		}
		return pollingMsg{updates: ch}
	}
}

// waitForUpdate ждет следующий снимок из канала опроса
func waitForUpdate(ch <-chan models.StatusPayload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		payload, ok := <-ch
		return updateMsg{updates: ch, payload: payload, ok: ok}
	}
}

// handleUpdateCmd применяет снимок и перечитывает прогноз
func handleUpdateCmd(ctx context.Context, ctrl *dashboard.Controller, p models.StatusPayload) tea.Cmd {
	return func() tea.Msg {
		ctrl.HandleUpdate(ctx, p)
		return refreshMsg{}
	}
}

func exportCmd(exporter *export.Exporter, logs []models.HistoryEntry, strategies []models.Strategy) tea.Cmd {
	return func() tea.Msg {
		path, err := exporter.Save(logs, strategies)
		return exportedMsg{path: path, err: err}
	}
}

// copyCmd отправляет текст в буфер обмена терминала через OSC52
func copyCmd(w io.Writer, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := osc52.New(text).WriteTo(w)
		return copiedMsg{err: err}
	}
}

func copyResetCmd(seq int) tea.Cmd {
	return tea.Tick(copiedFeedback, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := readLogTail(path, maxLogLines)
		return logsMsg{lines: lines, err: err}
	}
}

func logTickCmd() tea.Cmd {
	return tea.Tick(logTailInterval, func(time.Time) tea.Msg {
		return logTickMsg{}
	})
}
