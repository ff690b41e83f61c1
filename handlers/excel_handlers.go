package handlers

import (
	"fmt"
	"net/http"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/xuri/excelize/v2"

	"github.com/gin-gonic/gin"
)

// ExportShiftToExcel exports a shift's ledger to Excel format
func ExportShiftToExcel(c *gin.Context) {
	var request models.ExportShiftRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	excelFile, filename, err := handlerServices.ExcelService.ExportShiftToExcel(request.ShiftID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export shift: " + err.Error()})
		return
	}

	writeExcel(c, excelFile, filename)
}

// ExportDailyReportToExcel exports a day's sales rollup to Excel format
func ExportDailyReportToExcel(c *gin.Context) {
	day, err := reportDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	excelFile, filename, err := handlerServices.ExcelService.ExportDailyReportToExcel(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report: " + err.Error()})
		return
	}

	writeExcel(c, excelFile, filename)
}

func writeExcel(c *gin.Context, excelFile *excelize.File, filename string) {
	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file: " + err.Error()})
		return
	}
}
