// Package spreadsheet exports sales reports as xlsx workbooks.
package spreadsheet

import (
	"fmt"

	"github.com/sangkips/retailpos-api/internal/domain/reporting"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet  = "Summary"
	seriesSheet   = "Sales"
	productsSheet = "Products"
	paymentSheet  = "Payment Modes"
)

// ExportReport writes report as a workbook with one sheet per section.
func ExportReport(report *reporting.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E5E7EB"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	summary := [][]interface{}{
		{"Granularity", string(report.Series.Granularity)},
		{"From", report.Range.Start},
		{"To", report.Range.End},
		{"Bills", report.BillCount},
		{"Revenue", report.Series.Total},
		{"Average per period", report.Series.Average},
		{"Peak period", report.Series.Peak},
		{"Average bill", report.AverageBill},
	}
	if report.TopProduct != nil {
		summary = append(summary, []interface{}{"Top product", report.TopProduct.Name})
	}
	if report.Series.Skipped > 0 {
		summary = append(summary, []interface{}{"Bills skipped (bad date)", report.Series.Skipped})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		return nil, err
	}

	series := [][]interface{}{{"Period", "Bills", "Total"}}
	for _, b := range report.Series.Buckets {
		series = append(series, []interface{}{b.Label, b.Bills, b.Total})
	}
	if err := addTable(f, seriesSheet, series, header); err != nil {
		return nil, err
	}

	products := [][]interface{}{{"Product", "Quantity", "Revenue"}}
	for _, p := range report.Products {
		products = append(products, []interface{}{p.Name, p.Quantity, p.Revenue})
	}
	if err := addTable(f, productsSheet, products, header); err != nil {
		return nil, err
	}

	modes := [][]interface{}{{"Mode", "Bills", "Total"}}
	for _, m := range report.PaymentModes {
		modes = append(modes, []interface{}{m.Mode, m.Bills, m.Total})
	}
	if err := addTable(f, paymentSheet, modes, header); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// addTable creates sheet with rows[0] as a styled header row.
func addTable(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", end, headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
