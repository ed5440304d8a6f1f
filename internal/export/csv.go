// Package export выгружает историю раундов в CSV.
package export

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/skalibog/benzboard/internal/view"
	"github.com/skalibog/benzboard/pkg/models"
)

// MIMEType тип содержимого выгрузки
const MIMEType = "text/csv;charset=utf-8;"

// Header заголовок: номер раунда, результат, очищенные имена стратегий
func Header(strategies []models.Strategy) []string {
	header := []string{"期号", "开奖结果"}
	for _, col := range view.Columns(strategies) {
		header = append(header, col.Header)
	}
	return header
}

// Records заголовок и строки по всей истории без разбивки на страницы.
// Ячейка стратегии содержит прибыль только для реального результата.
func Records(logs []models.HistoryEntry, strategies []models.Strategy) [][]string {
	cols := view.Columns(strategies)
	records := make([][]string, 0, len(logs)+1)
	records = append(records, Header(strategies))
	for _, entry := range logs {
		rec := make([]string, 0, len(cols)+2)
		rec = append(rec, entry.ID.String(), entry.Result)
		for _, col := range cols {
			rec = append(rec, view.ProfitText(entry, col))
		}
		records = append(records, rec)
	}
	return records
}

// Write пишет записи: каждое поле в двойных кавычках, кавычки внутри удваиваются,
// каждая строка завершается \n
func Write(w io.Writer, records [][]string) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		for i, field := range rec {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if err := writeQuoted(bw, field); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeQuoted(w *bufio.Writer, field string) error {
	if err := w.WriteByte('"'); err != nil {
		return err
	}
	if _, err := w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.WriteByte('"')
}

// Build собирает CSV целиком в памяти
func Build(logs []models.HistoryEntry, strategies []models.Strategy) []byte {
	var buf bytes.Buffer
	// запись в bytes.Buffer не возвращает ошибок
	_ = Write(&buf, Records(logs, strategies))
	return buf.Bytes()
}
