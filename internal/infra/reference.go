package infra

// reference.go — loads the static reference compliance workbook (xlsx) whose
// first rows are embedded in ranking prompts as few-shot context. The file is
// re-read on every snapshot so the workbook can be swapped without a restart.

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v2"
)

const referenceSnapshotRows = 15 // data rows included, header excluded

// ReferenceDataset renders a plain-text snapshot of the reference workbook.
type ReferenceDataset struct {
	path string
}

func NewReferenceDataset(path string) *ReferenceDataset {
	return &ReferenceDataset{path: path}
}

// Snapshot returns the header plus the first rows of the first sheet,
// tab-separated. Fails when the workbook is missing or empty.
func (d *ReferenceDataset) Snapshot() (string, error) {
	f, err := xlsx.OpenFile(d.path)
	if err != nil {
		return "", fmt.Errorf("reference dataset: open %s: %w", d.path, err)
	}
	if len(f.Sheets) == 0 || len(f.Sheets[0].Rows) == 0 {
		return "", fmt.Errorf("reference dataset: %s has no rows", d.path)
	}

	sheet := f.Sheets[0]
	limit := referenceSnapshotRows + 1 // header row
	if limit > len(sheet.Rows) {
		limit = len(sheet.Rows)
	}

	var sb strings.Builder
	for i := 0; i < limit; i++ {
		cells := make([]string, len(sheet.Rows[i].Cells))
		for j, cell := range sheet.Rows[i].Cells {
			cells[j] = cell.String()
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
