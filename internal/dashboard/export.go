package dashboard

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	breakdownSheet = "Breakdown"
	historySheet   = "History"

	numFmtThousands = 4 // #,##0.00
)

// WriteWorkbook writes the breakdown and the value history of a run as an xlsx workbook.
func WriteWorkbook(w io.Writer, v View) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", breakdownSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	number, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}

	rows := [][]any{{"coin", "amount", "price_usd", "value_usd", "value_ghs"}}
	for _, r := range v.Valuation.Rows {
		rows = append(rows, []any{r.Coin.String(), r.Amount, r.PriceUSD, r.ValueUSD, r.ValueGHS})
	}
	rows = append(rows, []any{"total", nil, nil, v.Valuation.TotalUSD, v.Valuation.TotalGHS})
	if err := writeRows(f, breakdownSheet, rows); err != nil {
		return err
	}
	last := len(rows)
	if err := f.SetCellStyle(breakdownSheet, "A1", "E1", header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetCellStyle(breakdownSheet, "C2", fmt.Sprintf("E%d", last), number); err != nil {
		return fmt.Errorf("styling values: %w", err)
	}

	history := [][]any{{"timestamp", "value_ghs"}}
	for _, s := range v.History {
		history = append(history, []any{s.Timestamp.UTC(), s.ValueGHS})
	}
	if err := writeRows(f, historySheet, history); err != nil {
		return err
	}
	if err := f.SetCellStyle(historySheet, "A1", "B1", header); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetColWidth(historySheet, "A", "A", 22); err != nil {
		return fmt.Errorf("sizing column: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
