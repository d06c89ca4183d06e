// Package concert implements the reservation lookups behind the bot's
// chat commands: resolving the concert index, searching queue rows and
// flipping the stop flag.  All row data lives in operator-owned Google
// Sheets; this package never caches it.
package concert

import (
	"context"
	"fmt"
	"strings"
)

// Sheets is the spreadsheet collaborator used by this package.  It is
// implemented by sheets.Client and by test fakes.
type Sheets interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
	TabTitles(ctx context.Context, spreadsheetID string) ([]string, error)
	AppendRow(ctx context.Context, spreadsheetID, appendRange string, values []string) error
	UpdateCell(ctx context.Context, spreadsheetID, cell, value string) error
}

// Entry maps a concert display name to its backing spreadsheet.
type Entry struct {
	Name          string
	SpreadsheetID string
}

// Resolver reads the concert index tab of the master sheet.  The index is
// two columns: concert name (A) and spreadsheet ID (B), starting at row 2.
type Resolver struct {
	Sheets        Sheets
	MasterSheetID string
	MasterTab     string
}

// Resolve loads the index fresh.  Rows missing either column are skipped;
// both cells are trimmed.  Order follows the sheet so scans stay
// deterministic.
func (r *Resolver) Resolve(ctx context.Context) ([]Entry, error) {
	rows, err := r.Sheets.ReadRange(ctx, r.MasterSheetID, r.MasterTab+"!A2:B")
	if err != nil {
		return nil, fmt.Errorf("resolve concert index: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		id := strings.TrimSpace(row[1])
		if name == "" || id == "" {
			continue
		}
		entries = append(entries, Entry{Name: name, SpreadsheetID: id})
	}
	return entries, nil
}
