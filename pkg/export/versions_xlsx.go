package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

// VersionHistory renders a document's version history as a one-sheet
// workbook, newest last, in the order the ledger returns it.
func VersionHistory(documentName string, rows []versioning.VersionSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Versions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headers := []any{"Version", "Title", "Status", "Created at", "Created by", "Current"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		current := ""
		if row.IsCurrent {
			current = "yes"
		}
		cells := []any{
			row.VersionNumber,
			row.Title,
			row.Status,
			row.CreatedAt.UTC().Format(time.RFC3339),
			row.CreatedByEmail,
			current,
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return nil, err
		}
	}
	_ = f.SetDocProps(&excelize.DocProperties{Title: documentName + " version history"})
	return f, nil
}
