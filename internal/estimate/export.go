package estimate

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	itemsSheet = "Смета"
	bidsSheet  = "Предложения"
)

// ExportExcel writes the quote to an .xlsx workbook: the rows with subtotals
// on the first sheet and the contractor bids on the second.
func ExportExcel(q Quote, title, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", itemsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(bidsSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create money style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	if title == "" {
		title = "Смета"
	}
	if err := f.SetCellValue(itemsSheet, "A1", title); err != nil {
		return err
	}

	headers := []string{"Категория", "Наименование", "Ед.", "Кол-во", "Цена, ₽", "Сумма, ₽"}
	if err := writeHeader(f, itemsSheet, 3, headers, headerStyle); err != nil {
		return err
	}

	row := 4
	for _, item := range q.Items {
		values := []interface{}{item.Category, item.Name, item.Unit, item.Quantity, item.UnitPrice, item.Total()}
		if err := f.SetSheetRow(itemsSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(itemsSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), moneyStyle); err != nil {
			return err
		}
		row++
	}

	row++
	totals := []totalRow{
		{"Материалы", q.Materials},
		{"Работы", q.Works},
	}
	if q.Other != 0 {
		totals = append(totals, totalRow{"Прочее", q.Other})
	}
	totals = append(totals,
		totalRow{"Итого", q.GrandTotal},
		totalRow{q.Urgency.Label(), q.Total},
	)
	for _, t := range totals {
		if err := f.SetCellValue(itemsSheet, fmt.Sprintf("E%d", row), t.label); err != nil {
			return err
		}
		cell := fmt.Sprintf("F%d", row)
		if err := f.SetCellValue(itemsSheet, cell, t.value); err != nil {
			return err
		}
		if err := f.SetCellStyle(itemsSheet, cell, cell, totalStyle); err != nil {
			return err
		}
		row++
	}

	if err := writeHeader(f, bidsSheet, 1, []string{"Подрядчик", "Рейтинг", "Отзывы", "Опыт", "Цена, ₽"}, headerStyle); err != nil {
		return err
	}
	for i, bid := range q.Bids {
		r := i + 2
		values := []interface{}{bid.Contractor, bid.Rating, bid.Reviews, bid.Experience, bid.Price}
		if err := f.SetSheetRow(bidsSheet, fmt.Sprintf("A%d", r), &values); err != nil {
			return fmt.Errorf("failed to write bid %d: %w", i, err)
		}
		if err := f.SetCellStyle(bidsSheet, fmt.Sprintf("E%d", r), fmt.Sprintf("E%d", r), moneyStyle); err != nil {
			return err
		}
	}

	for _, sheet := range []string{itemsSheet, bidsSheet} {
		if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", "F", 16); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(itemsSheet, "B", "B", 32); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

type totalRow struct {
	label string
	value float64
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
