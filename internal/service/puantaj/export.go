package puantaj

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/retail-erp/workforce-backend-go/internal/domain/puantaj"
)

// Grid codes used on the printed puantaj sheet.
const (
	CodeWorked = "Ç"
	CodeLeave  = "İ"
	CodeOffDay = "H"
	CodeAbsent = "D"
)

var totalHeaders = []string{"Çalışılan Gün", "Çalışılan Saat", "İzin", "Hafta Tatili", "Devamsızlık"}

func (s *PuantajServiceImpl) Export(ctx context.Context, req puantaj.MonthlyRequest) ([]byte, error) {
	summaries, err := s.GetMonthly(ctx, req)
	if err != nil {
		return nil, err
	}
	return RenderWorkbook(req.Period, summaries)
}

// RenderWorkbook lays out one row per staff member and one column per day, followed by
// the monthly totals.
func RenderWorkbook(periodLabel string, summaries []puantaj.MonthlySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Puantaj " + periodLabel
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	days := 0
	if len(summaries) > 0 {
		days = len(summaries[0].Days)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 14)
	if days > 0 {
		f.SetColWidth(sheet, colName(2), colName(1+days), 6)
	}

	// header
	f.SetCellValue(sheet, cell(colName(0), 1), "Personel")
	f.SetCellValue(sheet, cell(colName(1), 1), "Şube")
	for d := 1; d <= days; d++ {
		f.SetCellValue(sheet, cell(colName(1+d), 1), d)
	}
	for i, h := range totalHeaders {
		f.SetCellValue(sheet, cell(colName(2+days+i), 1), h)
	}
	lastCol := colName(1 + days + len(totalHeaders))
	f.SetCellStyle(sheet, "A1", cell(lastCol, 1), headerStyle)

	for i, summary := range summaries {
		row := i + 2
		f.SetCellValue(sheet, cell(colName(0), row), summary.StaffName)
		f.SetCellValue(sheet, cell(colName(1), row), summary.Branch)
		for d, day := range summary.Days {
			f.SetCellValue(sheet, cell(colName(2+d), row), gridCode(day))
		}
		totals := []any{summary.WorkedDays, summary.WorkedHours, summary.LeaveDays, summary.OffDays, summary.AbsentDays}
		for j, v := range totals {
			f.SetCellValue(sheet, cell(colName(2+days+j), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// gridCode renders a worked day as its code followed by the hours, e.g. "Ç 9.08".
func gridCode(day puantaj.DayStatus) string {
	switch day.Status {
	case puantaj.StatusWorked:
		return CodeWorked + " " + strconv.FormatFloat(day.Hours, 'f', -1, 64)
	case puantaj.StatusLeave:
		return CodeLeave
	case puantaj.StatusOffDay:
		return CodeOffDay
	default:
		return CodeAbsent
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
