package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/skalibog/benzboard/internal/dashboard"
	"github.com/skalibog/benzboard/pkg/logger"
)

// TermUI представляет терминальный интерфейс дашборда
type TermUI struct {
	ctrl *dashboard.Controller
	opts Options
}

func NewTermUI(ctrl *dashboard.Controller, opts Options) *TermUI {
	return &TermUI{ctrl: ctrl, opts: opts}
}

// Run запускает интерфейс и блокируется до выхода пользователя или отмены ctx.
// Опрос останавливается при выходе.
func (ui *TermUI) Run(ctx context.Context) error {
	defer ui.ctrl.StopPolling()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithReportFocus()}
	if ui.opts.Config.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(NewModel(ctx, ui.ctrl, ui.opts), progOpts...)
	logger.Info("Интерфейс запущен")

	_, err := program.Run()
	logger.Info("Интерфейс завершен", zap.String("state", stateSummary(ui.ctrl.State())))
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("ошибка запуска UI: %w", err)
	}
	return nil
}
