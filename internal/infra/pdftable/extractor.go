package pdftable

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"quiz-solver-service/internal/domain"
)

const (
	// Text runs whose baselines differ by no more than this belong to one line.
	rowTolerance = 2.0
	// A horizontal gap wider than this separates two cells.
	cellGap = 12.0
)

// Extractor reconstructs tables from the positioned text runs of a PDF page:
// runs are clustered into lines by baseline, lines are split into cells at
// horizontal gaps, and the longest block of multi-cell lines is the table.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// TableOnPage parses data as a PDF and returns the table on the given
// 1-based page. The first reconstructed line is the header.
func (e *Extractor) TableOnPage(data []byte, pageNumber int) (table domain.Table, err error) {
	// The pdf package panics on some malformed documents; treat that the
	// same as a parse error so a bad download only aborts its own run.
	defer func() {
		if r := recover(); r != nil {
			table = domain.Table{}
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.Table{}, fmt.Errorf("parse pdf: %w", err)
	}
	if reader.NumPage() < pageNumber {
		return domain.Table{}, domain.ErrTooFewPages
	}
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return domain.Table{}, domain.ErrTooFewPages
	}

	rows := tableRows(cellLines(page.Content().Text))
	if len(rows) == 0 {
		return domain.Table{}, domain.ErrNoTable
	}
	return domain.Table{Header: rows[0], Rows: rows[1:]}, nil
}

// cellLines groups text runs into lines and splits each line into cells.
func cellLines(texts []pdf.Text) [][]string {
	var lines [][]string
	for _, line := range groupLines(texts) {
		cells := splitCells(line)
		if len(cells) > 0 {
			lines = append(lines, cells)
		}
	}
	return lines
}

// groupLines clusters runs by baseline. PDF origin is bottom-left, so lines
// are ordered top of page first (descending Y), left to right within a line.
func groupLines(texts []pdf.Text) [][]pdf.Text {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > rowTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]pdf.Text
	for _, t := range sorted {
		if len(lines) > 0 && math.Abs(lines[len(lines)-1][0].Y-t.Y) <= rowTolerance {
			last := len(lines) - 1
			lines[last] = append(lines[last], t)
			continue
		}
		lines = append(lines, []pdf.Text{t})
	}
	return lines
}

// splitCells merges adjacent runs of one line into cells, breaking wherever
// the horizontal gap exceeds cellGap. Empty cells are dropped.
func splitCells(line []pdf.Text) []string {
	var cells []string
	var b strings.Builder
	var prevEnd float64

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			cells = append(cells, s)
		}
		b.Reset()
	}

	for i, t := range line {
		if i > 0 && t.X-prevEnd > cellGap {
			flush()
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	flush()
	return cells
}

// tableRows picks the longest run of consecutive lines with at least two
// cells. Prose lines collapse into a single cell and never qualify, so a page
// without a table yields nothing.
func tableRows(lines [][]string) [][]string {
	var best, current [][]string
	for _, line := range lines {
		if len(line) >= 2 {
			current = append(current, line)
			continue
		}
		if len(current) > len(best) {
			best = current
		}
		current = nil
	}
	if len(current) > len(best) {
		best = current
	}
	return best
}
