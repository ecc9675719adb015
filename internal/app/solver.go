package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"quiz-solver-service/internal/domain"
)

// The marker uses curly double quotes; that is how the quiz pages phrase it.
const sumValueMarker = "sum of the “value” column"

const (
	valueColumn = "value"
	tablePage   = 2
)

// solve classifies the question and computes the answer. The only recognized
// pattern today is summing the "value" column of a table on page 2 of a
// downloadable PDF.
func (p *Pipeline) solve(ctx context.Context, quiz domain.QuizPage) (float64, error) {
	if !strings.Contains(quiz.QuestionText, sumValueMarker) || quiz.DownloadLink == "" {
		return 0, domain.ErrUnrecognizedQuiz
	}

	data, err := p.download(ctx, quiz.DownloadLink)
	if err != nil {
		return 0, err
	}

	table, err := p.tables.TableOnPage(data, tablePage)
	if err != nil {
		return 0, err
	}

	return sumColumn(table, valueColumn)
}

func (p *Pipeline) download(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download pdf: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf body: %w", err)
	}
	return data, nil
}

// sumColumn adds up the named column across all data rows. A missing column
// is a structural failure; a cell that does not parse as a number is not, and
// contributes nothing to the sum.
func sumColumn(table domain.Table, name string) (float64, error) {
	col := -1
	for i, header := range table.Header {
		if header == name {
			col = i
			break
		}
	}
	if col == -1 {
		return 0, domain.ErrColumnNotFound
	}

	var total float64
	for _, row := range table.Rows {
		if col >= len(row) {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total, nil
}
