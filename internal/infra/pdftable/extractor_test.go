package pdftable

import (
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"
)

// run builds a positioned text run; tables in these tests live on a 700pt-tall page.
func run(s string, x, y, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, Y: y, W: w}
}

func TestCellLinesReconstructsTable(t *testing.T) {
	// Two-column table: "id" at x=50, "value" at x=200, rows below.
	texts := []pdf.Text{
		run("id", 50, 700, 10),
		run("value", 200, 700, 30),
		run("1", 50, 680, 6),
		run("10", 200, 680, 12),
		run("2", 50, 660, 6),
		run("abc", 200, 660, 18),
	}

	lines := cellLines(texts)
	want := [][]string{{"id", "value"}, {"1", "10"}, {"2", "abc"}}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestCellLinesMergesAdjacentRuns(t *testing.T) {
	// "total value" is emitted as two runs 4pt apart; they are one cell.
	texts := []pdf.Text{
		run("total ", 50, 700, 30),
		run("value", 84, 700, 30),
		run("9.5", 200, 700, 18),
	}

	lines := cellLines(texts)
	want := [][]string{{"total value", "9.5"}}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestCellLinesHandlesUnorderedRuns(t *testing.T) {
	// Content streams do not promise reading order.
	texts := []pdf.Text{
		run("10", 200, 680, 12),
		run("value", 200, 700, 30),
		run("id", 50, 700, 10),
		run("1", 50, 680, 6),
	}

	lines := cellLines(texts)
	want := [][]string{{"id", "value"}, {"1", "10"}}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestTableRowsPicksLongestMultiCellBlock(t *testing.T) {
	lines := [][]string{
		{"Some introductory paragraph"},
		{"id", "value"},
		{"1", "10"},
		{"2", "20"},
		{"Closing prose"},
	}

	rows := tableRows(lines)
	want := [][]string{{"id", "value"}, {"1", "10"}, {"2", "20"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestTableRowsEmptyWhenNoTable(t *testing.T) {
	lines := [][]string{
		{"Just one paragraph"},
		{"And another"},
	}
	if rows := tableRows(lines); len(rows) != 0 {
		t.Fatalf("expected no table, got %v", rows)
	}
}

func TestTableOnPageRejectsGarbage(t *testing.T) {
	extractor := New()
	if _, err := extractor.TableOnPage([]byte("this is not a pdf"), 2); err == nil {
		t.Fatalf("expected parse error for garbage bytes")
	}
}

func TestTableOnPageRejectsEmptyInput(t *testing.T) {
	extractor := New()
	if _, err := extractor.TableOnPage(nil, 2); err == nil {
		t.Fatalf("expected error for empty input")
	}
}
