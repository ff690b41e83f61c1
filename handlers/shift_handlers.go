package handlers

import (
	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/gin-gonic/gin"
)

// StartShift opens a drawer session for a server
func StartShift(c *gin.Context) {
	var request models.StartShiftRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	shift, err := handlerServices.ShiftService.StartShift(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, shift)
}

// ActiveShift returns the server's active shift
func ActiveShift(c *gin.Context) {
	var request models.ActiveShiftRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	shift := handlerServices.ShiftService.ActiveShift(request.Server)
	if shift == nil {
		utils.HandleError(c, utils.NewNotFoundError("Shift"))
		return
	}

	utils.HandleSuccess(c, shift)
}

// RecordCashDrop removes cash from the drawer mid-shift
func RecordCashDrop(c *gin.Context) {
	var request models.CashDropRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	shift, err := handlerServices.ShiftService.RecordCashDrop(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, shift)
}

// CloseShift counts the drawer and closes the session
func CloseShift(c *gin.Context) {
	var request models.CloseShiftRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	shift, err := handlerServices.ShiftService.CloseShift(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, shift)
}
