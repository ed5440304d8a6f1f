package export

import (
	"context"
	"fmt"

	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelPages ограничение одновременных запросов страниц
const maxParallelPages = 4

// HistorySource постраничный источник истории
type HistorySource interface {
	FetchHistory(ctx context.Context, page, size int) client.Result[models.HistoryPage]
}

// CollectHistory выкачивает всю историю: первая страница сообщает число страниц,
// остальные запрашиваются параллельно и склеиваются по порядку
func CollectHistory(ctx context.Context, src HistorySource, size int) ([]models.HistoryEntry, error) {
	first := src.FetchHistory(ctx, 1, size)
	if !first.Success {
		return nil, fmt.Errorf("ошибка загрузки истории, страница 1: %s", first.Error)
	}

	pages := make([][]models.HistoryEntry, first.Data.TotalPages+1)
	if len(pages) < 2 {
		pages = make([][]models.HistoryEntry, 2)
	}
	pages[1] = first.Data.Logs
	logger.Debug("Загрузка истории",
		zap.Int("total", first.Data.Total),
		zap.Int("pages", first.Data.TotalPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelPages)
	for page := 2; page <= first.Data.TotalPages; page++ {
		g.Go(func() error {
			res := src.FetchHistory(gctx, page, size)
			if !res.Success {
				return fmt.Errorf("ошибка загрузки истории, страница %d: %s", page, res.Error)
			}
			pages[page] = res.Data.Logs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var logs []models.HistoryEntry
	for _, p := range pages {
		logs = append(logs, p...)
	}
	return logs, nil
}
