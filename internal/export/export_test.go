package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/pkg/models"
)

func sampleData() ([]models.HistoryEntry, []models.Strategy) {
	logs := []models.HistoryEntry{
		{ID: "1001", Result: "红奔驰[8]", Matrix: map[string]models.PerStrategyResult{
			"A": {State: models.StateLive, Profit: 8},
		}},
		{ID: "1000", Result: "绿宝马", Matrix: map[string]models.PerStrategyResult{
			"A": {State: models.StateWatching, Profit: -3},
		}},
	}
	return logs, []models.Strategy{{Name: "A(v1)"}}
}

func TestBuildTwoRowsOneStrategy(t *testing.T) {
	logs, board := sampleData()
	out := string(Build(logs, board))

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"期号","开奖结果","A"`, lines[0])
	assert.Equal(t, `"1001","红奔驰[8]","+8"`, lines[1])
	assert.Equal(t, `"1000","绿宝马",""`, lines[2])
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestWriteEscapesQuotes(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, [][]string{{`say "hi"`, "a,b"}}))
	assert.Equal(t, `"say ""hi""","a,b"`+"\n", sb.String())
}

func TestRecordsMissingEntry(t *testing.T) {
	logs := []models.HistoryEntry{{ID: "5", Result: "黄奥迪"}}
	records := Records(logs, []models.Strategy{{Name: "X"}})
	assert.Equal(t, []string{"5", "黄奥迪", ""}, records[1])
}

func TestFileName(t *testing.T) {
	ts := time.UnixMilli(1700000000123)
	assert.Equal(t, "历史记录_1700000000123.csv", FileName(ts))
}

func TestExporterSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	e := NewExporter(dir)
	e.now = func() time.Time { return time.UnixMilli(42) }

	logs, board := sampleData()
	path, err := e.Save(logs, board)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "历史记录_42.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Build(logs, board), data)
}

type pagedSource struct {
	mu     sync.Mutex
	pages  map[int][]models.HistoryEntry
	failOn int
	calls  []int
}

func (s *pagedSource) FetchHistory(_ context.Context, page, size int) client.Result[models.HistoryPage] {
	s.mu.Lock()
	s.calls = append(s.calls, page)
	s.mu.Unlock()
	if page == s.failOn {
		return client.Result[models.HistoryPage]{Error: "boom", Err: errors.New("boom")}
	}
	return client.Result[models.HistoryPage]{Success: true, Data: models.HistoryPage{
		Total:      5,
		Page:       page,
		Size:       size,
		TotalPages: len(s.pages),
		Logs:       s.pages[page],
	}}
}

func TestCollectHistoryOrdersPages(t *testing.T) {
	src := &pagedSource{pages: map[int][]models.HistoryEntry{
		1: {{ID: "5"}, {ID: "4"}},
		2: {{ID: "3"}, {ID: "2"}},
		3: {{ID: "1"}},
	}}
	logs, err := CollectHistory(context.Background(), src, 2)
	require.NoError(t, err)

	var ids []string
	for _, l := range logs {
		ids = append(ids, l.ID.String())
	}
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, ids)
	assert.ElementsMatch(t, []int{1, 2, 3}, src.calls)
}

func TestCollectHistoryFailure(t *testing.T) {
	src := &pagedSource{
		pages:  map[int][]models.HistoryEntry{1: {{ID: "2"}}, 2: {{ID: "1"}}},
		failOn: 2,
	}
	_, err := CollectHistory(context.Background(), src, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "страница 2")

	src = &pagedSource{pages: map[int][]models.HistoryEntry{1: nil}, failOn: 1}
	_, err = CollectHistory(context.Background(), src, 1)
	assert.Error(t, err)
}
