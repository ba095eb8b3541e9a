package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestPlainTextReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte("Vacation accrues at 1.5 days per month."), 0o644))

	text, err := (&PlainText{}).ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Vacation accrues at 1.5 days per month.", text)
}

func TestPlainTextMissingFile(t *testing.T) {
	_, err := (&PlainText{}).ExtractText(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestSpreadsheetFlattensSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headcount.xlsx")
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Headcount")
	require.NoError(t, err)
	header := sheet.AddRow()
	header.AddCell().SetString("department")
	header.AddCell().SetString("count")
	row := sheet.AddRow()
	row.AddCell().SetString("Engineering")
	row.AddCell().SetString("42")
	require.NoError(t, f.Save(path))

	text, err := (&Spreadsheet{}).ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Contains(t, text, "# Headcount")
	assert.Contains(t, text, "department\tcount")
	assert.Contains(t, text, "Engineering\t42")
}

func TestRouterDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	router := NewRouter("")

	txt := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(txt, []byte("plain content"), 0o644))

	text, err := router.ExtractText(context.Background(), txt)
	require.NoError(t, err)
	assert.Equal(t, "plain content", text)

	wb := filepath.Join(dir, "data.XLSX")
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("S1")
	require.NoError(t, err)
	sheet.AddRow().AddCell().SetString("cell")
	require.NoError(t, f.Save(wb))

	text, err = router.ExtractText(context.Background(), wb)
	require.NoError(t, err)
	assert.Contains(t, text, "cell")
}

func TestRouterCapsDocumentSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", maxDocumentBytes+512)), 0o644))

	text, err := NewRouter("").ExtractText(context.Background(), path)

	require.NoError(t, err)
	assert.Len(t, text, maxDocumentBytes)
}
