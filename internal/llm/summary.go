package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// maxSummaryRows bounds the prompt size; customer reports are sorted by
// turnover so the head of the table is the interesting part.
const maxSummaryRows = 50

const summarySystemPrompt = `Ты аналитик программы лояльности Rahmet Business.
Тебе дают таблицу выгрузки (заголовки и строки, разделитель " | ").
Напиши краткую сводку на русском языке: 3-6 пунктов с ключевыми цифрами,
лидерами и аномалиями. Не выдумывай данные, которых нет в таблице.`

// Summarize asks the model for a short narrative of a report table.
func (c *Client) Summarize(ctx context.Context, title string, headers []string, rows [][]any) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	prompt := SummaryPrompt(title, headers, rows)
	text, err := c.Chat(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", title, err)
	}
	c.logger.Debug("summary generated",
		zap.String("title", title),
		zap.Int("rows", min(len(rows), maxSummaryRows)),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

// SummaryPrompt renders the table as pipe-separated text.
func SummaryPrompt(title string, headers []string, rows [][]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Отчёт: %s\n", title)
	b.WriteString(strings.Join(headers, " | "))
	b.WriteByte('\n')

	for i, row := range rows {
		if i == maxSummaryRows {
			fmt.Fprintf(&b, "... ещё %d строк\n", len(rows)-maxSummaryRows)
			break
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = fmt.Sprint(cell)
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteByte('\n')
	}
	return b.String()
}
