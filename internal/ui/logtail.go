package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// maxLogLines сколько последних строк журнала держать в панели
const maxLogLines = 50

// logTimeLayout формат времени в JSON-журнале
const logTimeLayout = "02.01.2006 - 15:04:05.999999999Z07:00"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// readLogTail читает последние limit записей JSON-журнала и форматирует их для панели
func readLogTail(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Файл еще не создан, это не ошибка
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var logs []string
	for scanner.Scan() {
		logs = append(logs, formatLogLine(scanner.Text()))
		if len(logs) > limit {
			logs = logs[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return logs, err
	}
	return logs, nil
}

// formatLogLine превращает запись zap в строку "[15:04:05] [LEVEL] msg (k: v)"
func formatLogLine(line string) string {
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		// Не JSON, показываем как есть
		return line
	}

	level, _ := entry["level"].(string)
	ts, _ := entry["ts"].(string)
	msg, _ := entry["msg"].(string)
	level = ansiRegex.ReplaceAllString(level, "")

	timestamp := ""
	if t, err := time.Parse(logTimeLayout, ts); err == nil {
		timestamp = t.Format("15:04:05")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s", timestamp, level, msg)

	// Поля в стабильном порядке
	keys := make([]string, 0, len(entry))
	for k := range entry {
		if k != "level" && k != "ts" && k != "msg" && k != "caller" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " (%s: %v)", k, entry[k])
	}
	return b.String()
}

func renderLogsSection(logs []string, maxLines int) string {
	header := sectionHeaderStyle.Render("日志")
	content := strings.Builder{}

	if len(logs) == 0 {
		content.WriteString(mutedStyle.Render("暂无日志"))
	}

	start := 0
	if len(logs) > maxLines {
		start = len(logs) - maxLines
	}
	for i := start; i < len(logs); i++ {
		log := logs[i]

		// Выделение по уровню логирования
		switch {
		case strings.Contains(log, "[ERROR]"):
			log = lipgloss.NewStyle().Foreground(errorColor).Render(log)
		case strings.Contains(log, "[WARN]"):
			log = lipgloss.NewStyle().Foreground(warningColor).Render(log)
		case strings.Contains(log, "[INFO]"):
			log = lipgloss.NewStyle().Foreground(successColor).Render(log)
		case strings.Contains(log, "[DEBUG]"):
			log = lipgloss.NewStyle().Foreground(lipgloss.Color("#9999ff")).Render(log)
		}
		content.WriteString(log + "\n")
	}

	return sectionStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			strings.TrimRight(content.String(), "\n"),
		),
	)
}
