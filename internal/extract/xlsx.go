package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// Spreadsheet extracts text from .xlsx workbooks. Each sheet becomes a
// heading followed by tab-separated rows, which reads naturally in a prompt.
type Spreadsheet struct{}

// ExtractText flattens every sheet of the workbook to text.
func (s *Spreadsheet) ExtractText(_ context.Context, path string) (string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "extract: open xlsx %s", path)
	}

	var b strings.Builder
	for _, sheet := range f.Sheets {
		b.WriteString("# " + sheet.Name + "\n")
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			b.WriteString(strings.Join(cells, "\t"))
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}
