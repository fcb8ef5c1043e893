package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the classified leaderboard to a spreadsheet, one row per
// entry with its status tier and prize multiplier.
func (s *LeaderboardService) ExportXLSX(ctx context.Context, query Query) ([]byte, error) {
	classification, err := s.GetLeaderboard(ctx, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leaderboard"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Rank", "User", "Fuel Points", "Status", "Multiplier"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}

	for i, entry := range classification.Entries {
		row := i + 2
		values := []any{
			entry.Rank,
			string(entry.UserID),
			int(entry.FuelPoints),
			entry.Status,
			entry.Multiplier,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}

	s.metrics.RecordExportGenerated("xlsx")
	return buffer.Bytes(), nil
}
