package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/skalibog/benzboard/pkg/logger"
	"github.com/skalibog/benzboard/pkg/models"
	"go.uber.org/zap"
)

// FileName имя файла выгрузки по времени в миллисекундах
func FileName(now time.Time) string {
	return fmt.Sprintf("历史记录_%d.csv", now.UnixMilli())
}

// Exporter пишет CSV в каталог выгрузки
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter создает выгрузчик в каталог dir
func NewExporter(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir, now: time.Now}
}

// Dir каталог выгрузки
func (e *Exporter) Dir() string { return e.dir }

// Save сохраняет историю в новый файл и возвращает его путь
func (e *Exporter) Save(logs []models.HistoryEntry, strategies []models.Strategy) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("не удалось создать каталог выгрузки: %w", err)
	}

	path := filepath.Join(e.dir, FileName(e.now()))
	data := Build(logs, strategies)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error("Ошибка записи CSV", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("ошибка записи CSV: %w", err)
	}

	logger.Info("История выгружена",
		zap.String("path", path),
		zap.String("mime", MIMEType),
		zap.Int("rows", len(logs)),
		zap.Int("strategies", len(strategies)),
		zap.Int("bytes", len(data)))
	return path, nil
}
