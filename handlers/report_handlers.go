package handlers

import (
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/gin-gonic/gin"
)

// DailyReport returns the sales rollup for one day. The date query
// parameter is YYYY-MM-DD; missing means today.
func DailyReport(c *gin.Context) {
	day, err := reportDay(c.Query("date"))
	if err != nil {
		utils.HandleError(c, utils.NewBadRequestError("Invalid date"))
		return
	}

	utils.HandleSuccess(c, handlerServices.ReportService.DailyReport(day))
}

// ApportionDiscount splits an order's discount between food and beverage
func ApportionDiscount(c *gin.Context) {
	var request models.OrderIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	split, err := handlerServices.ReportService.ApportionOrderDiscount(request.OrderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, split)
}

func reportDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}
