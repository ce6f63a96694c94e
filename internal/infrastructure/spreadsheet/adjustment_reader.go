package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Arikan-Bt/CWI-New-sub002/internal/application/dto"
	"github.com/Arikan-Bt/CWI-New-sub002/internal/domain"
)

// Expected column order in the uploaded workbook, after one header row:
// product code, quantity, price, currency, warehouse, shelf no, pack list,
// receiving no, supplier.
const (
	colProductCode = iota
	colQuantity
	colPrice
	colCurrency
	colWarehouse
	colShelfNumber
	colPackList
	colReceivingNo
	colSupplier
)

// AdjustmentReader parses an uploaded stock-count workbook into typed rows.
type AdjustmentReader struct{}

func NewAdjustmentReader() *AdjustmentReader {
	return &AdjustmentReader{}
}

// Parse reads the first sheet, skips the header row and returns the typed
// rows in file order. A workbook that cannot be opened, has no sheet or no
// data rows fails with a DocumentReadError at row 0; an unparsable quantity
// fails at its row. Fully empty rows are ignored.
func (p *AdjustmentReader) Parse(r io.Reader) ([]dto.AdjustmentRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.DocumentReadError{Row: 0, Reason: "could not open workbook", Cause: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &domain.DocumentReadError{Row: 0, Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &domain.DocumentReadError{Row: 0, Reason: "could not read sheet", Cause: err}
	}
	if len(rows) <= 1 {
		return nil, &domain.DocumentReadError{Row: 0, Reason: "workbook has no data rows"}
	}

	out := make([]dto.AdjustmentRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		rowNo := i + 1 // 1-based, not counting the header
		if isEmptyRow(cells) {
			continue
		}

		qty, err := parseDecimalCell(cell(cells, colQuantity))
		if err != nil {
			return nil, &domain.DocumentReadError{
				Row:    rowNo,
				Reason: fmt.Sprintf("invalid quantity %q", cell(cells, colQuantity)),
				Cause:  err,
			}
		}
		price := decimal.Zero
		if raw := cell(cells, colPrice); strings.TrimSpace(raw) != "" {
			price, err = parseDecimalCell(raw)
			if err != nil {
				return nil, &domain.DocumentReadError{
					Row:    rowNo,
					Reason: fmt.Sprintf("invalid price %q", raw),
					Cause:  err,
				}
			}
		}

		out = append(out, dto.AdjustmentRow{
			Row:            rowNo,
			ProductCode:    strings.TrimSpace(cell(cells, colProductCode)),
			Quantity:       qty,
			Price:          price,
			Currency:       strings.TrimSpace(cell(cells, colCurrency)),
			WarehouseLabel: strings.TrimSpace(cell(cells, colWarehouse)),
			ShelfNumber:    strings.TrimSpace(cell(cells, colShelfNumber)),
			PackList:       strings.TrimSpace(cell(cells, colPackList)),
			ReceivingNo:    strings.TrimSpace(cell(cells, colReceivingNo)),
			Supplier:       strings.TrimSpace(cell(cells, colSupplier)),
		})
	}
	if len(out) == 0 {
		return nil, &domain.DocumentReadError{Row: 0, Reason: "workbook has no data rows"}
	}
	return out, nil
}

// cell returns the trimmed-length-safe cell at idx; excelize drops trailing
// empty cells, so short rows are common.
func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseDecimalCell(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."))
}
