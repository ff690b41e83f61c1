package services

import (
	"fmt"
	"time"

	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/xuri/excelize/v2"
)

// ExcelService handles Excel export functionality
type ExcelService struct {
	store         *repository.Store
	shiftService  *ShiftService
	reportService *ReportService
}

// NewExcelService creates a new Excel service
func NewExcelService(store *repository.Store, shiftService *ShiftService, reportService *ReportService) *ExcelService {
	return &ExcelService{
		store:         store,
		shiftService:  shiftService,
		reportService: reportService,
	}
}

// ExportShiftToExcel generates an Excel file for one shift
func (s *ExcelService) ExportShiftToExcel(shiftID string) (*excelize.File, string, error) {
	shift, err := s.shiftService.GetShift(shiftID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get shift: %v", err)
	}

	f := excelize.NewFile()

	if err := s.createShiftSummarySheet(f, shift.ID); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createTransactionSheet(f, shift.ID); err != nil {
		return nil, "", fmt.Errorf("failed to create transaction sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("Shift_%s_%s.xlsx",
		shift.Server,
		shift.StartedAt.Format("2006-01-02"))

	return f, filename, nil
}

// ExportDailyReportToExcel generates an Excel file for one day's sales
func (s *ExcelService) ExportDailyReportToExcel(day time.Time) (*excelize.File, string, error) {
	report := s.reportService.DailyReport(day)

	f := excelize.NewFile()

	if err := s.createDailySalesSheet(f, report); err != nil {
		return nil, "", fmt.Errorf("failed to create sales sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("Daily_Sales_%s.xlsx", report.Date)
	return f, filename, nil
}

// createShiftSummarySheet creates Sheet 1: Summary
func (s *ExcelService) createShiftSummarySheet(f *excelize.File, shiftID string) error {
	shift, err := s.shiftService.GetShift(shiftID)
	if err != nil {
		return err
	}

	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	f.SetCellValue(sheetName, "A1", "Field")
	f.SetCellValue(sheetName, "B1", "Value")
	f.SetCellStyle(sheetName, "A1", "B1", headerStyle)

	ended := ""
	if shift.EndedAt != nil {
		ended = shift.EndedAt.Format("2006-01-02 15:04")
	}

	rows := [][2]interface{}{
		{"Server", shift.Server},
		{"Status", shift.Status},
		{"Started", shift.StartedAt.Format("2006-01-02 15:04")},
		{"Ended", ended},
		{"Starting Cash", shift.StartingCash},
		{"Total Sales", shift.TotalSales},
		{"Total Tips", shift.TotalTips},
		{"Orders", shift.OrdersCount},
		{"Expected Cash", shift.ExpectedCash},
		{"Actual Cash", shift.ActualCash},
		{"Variance", shift.Variance},
	}
	for i, row := range rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+2), row[1])
	}

	// Cash drops section
	dropsStartRow := len(rows) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", dropsStartRow), "Cash Drops:")

	sectionStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", dropsStartRow), fmt.Sprintf("A%d", dropsStartRow), sectionStyle)

	dropsStartRow++
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", dropsStartRow), "Time")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", dropsStartRow), "Amount")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", dropsStartRow), fmt.Sprintf("B%d", dropsStartRow), headerStyle)

	for i, drop := range shift.CashDrops {
		row := dropsStartRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), drop.Time.Format("15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), drop.Amount)
	}

	f.SetColWidth(sheetName, "A", "B", 18)

	return nil
}

// createTransactionSheet creates Sheet 2: Transactions
func (s *ExcelService) createTransactionSheet(f *excelize.File, shiftID string) error {
	sheetName := "Transactions"
	f.NewSheet(sheetName)

	headers := []string{"Time", "Order", "Method", "Amount", "Tip"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", "E1", headerStyle)

	transactions := s.store.Transactions.Filter(map[string]interface{}{
		"shift_id": shiftID,
		"type":     utils.TransactionTypePayment,
	})
	for i, tx := range transactions {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.CreatedAt.Format("15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.OrderID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tx.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), tx.Tip)
	}

	f.SetColWidth(sheetName, "A", "E", 15)

	return nil
}

// createDailySalesSheet creates the daily sales breakdown sheet
func (s *ExcelService) createDailySalesSheet(f *excelize.File, report *DailySalesReport) error {
	sheetName := "Daily Sales"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	f.SetCellValue(sheetName, "A1", "Line")
	f.SetCellValue(sheetName, "B1", "Amount")
	f.SetCellStyle(sheetName, "A1", "B1", headerStyle)

	rows := [][2]interface{}{
		{"Date", report.Date},
		{"Food Sales", report.FoodSales},
		{"Lunch Special", report.LunchSpecialSales},
		{"Beverage Sales", report.BeverageSales},
		{"Alcohol Sales", report.AlcoholSales},
		{"Comps", report.TotalComps},
		{"Discounts", report.TotalDiscounts},
		{"Net Sales", report.NetSales},
		{"Tax", report.Tax},
		{"Credit", report.Payments.Credit},
		{"Debit", report.Payments.Debit},
		{"Cash", report.Payments.Cash},
		{"Gift", report.Payments.Gift},
		{"Tips", report.TotalTips},
		{"Guests", report.Guests},
		{"Orders", report.OrderCount},
		{"Average Check", report.AverageCheck},
	}
	for i, row := range rows {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", i+2), row[1])
	}

	f.SetColWidth(sheetName, "A", "B", 18)

	return nil
}
