package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/internal/config"
	"github.com/skalibog/benzboard/internal/dashboard"
	"github.com/skalibog/benzboard/internal/export"
	"github.com/skalibog/benzboard/internal/ui"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
)

func main() {
	// Обработка флагов командной строки
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	apiURL := flag.String("api", "", "адрес бэкенда, перекрывает api.base_url")
	exportOnly := flag.Bool("export", false, "выгрузить всю историю в CSV и выйти")
	flag.Parse()

	// До загрузки конфигурации пишем в файлы по умолчанию
	logger.Init()
	defer logger.Sync()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Ошибка загрузки конфигурации", zap.Error(err))
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
		if err := cfg.Validate(); err != nil {
			logger.Fatal("Некорректный адрес бэкенда", zap.Error(err))
		}
	}

	logger.InitWith(logger.Options{
		ReadablePath: cfg.Log.File,
		JSONPath:     cfg.Log.JSONFile,
		Level:        cfg.Log.Level,
	})
	logger.Info("Запуск", zap.String("api", cfg.API.BaseURL), zap.Bool("export", *exportOnly))

	// Контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.NewClient(cfg.API)
	exporter := export.NewExporter(cfg.Export.Dir)

	if *exportOnly {
		path, err := exportHistory(ctx, api, exporter, cfg.Export.HistoryPageSize)
		if err != nil {
			logger.Error("Ошибка выгрузки истории", zap.Error(err))
			fmt.Fprintf(os.Stderr, "导出失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	ctrl := dashboard.New(api, cfg.Polling.Interval())
	userInterface := ui.NewTermUI(ctrl, ui.Options{
		Config:   cfg.UI,
		Exporter: exporter,
		LogFile:  cfg.Log.JSONFile,
	})

	if err := userInterface.Run(ctx); err != nil {
		logger.Error("Ошибка пользовательского интерфейса", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("Завершение работы")
}

// exportHistory параллельно загружает таблицу лидеров (для колонок) и всю историю,
// затем пишет CSV
func exportHistory(ctx context.Context, api *client.Client, exporter *export.Exporter, pageSize int) (string, error) {
	var (
		leaderboard []models.Strategy
		logs        []models.HistoryEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res := api.FetchStatus(gctx)
		if !res.Success {
			return fmt.Errorf("ошибка загрузки состояния: %s", res.Error)
		}
		leaderboard = res.Data.Leaderboard
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = export.CollectHistory(gctx, api, pageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	logger.Info("История загружена", zap.Int("rows", len(logs)), zap.Int("strategies", len(leaderboard)))
	return exporter.Save(logs, leaderboard)
}
