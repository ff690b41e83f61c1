package handlers

import (
	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/gin-gonic/gin"
)

// ComputePayment prices a payer's share without recording anything
func ComputePayment(c *gin.Context) {
	var request models.ComputePaymentRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.GetOrder(request.OrderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	computation, err := handlerServices.CalculationService.ComputePayment(
		order, request.Split, request.TipBasis, request.TipPercent, request.CustomTip)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, computation)
}

// ExplodeItems lists the unpaid units of an order for item assignment
func ExplodeItems(c *gin.Context) {
	var request models.OrderIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.GetOrder(request.OrderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, handlerServices.CalculationService.ExplodeItems(order))
}

// Settle records one tender against an order
func Settle(c *gin.Context) {
	var request models.TenderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	result, err := handlerServices.SettlementService.Settle(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// AdjustTip changes the tip on an order's latest payment
func AdjustTip(c *gin.Context) {
	var request models.AdjustTipRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	transaction, err := handlerServices.SettlementService.AdjustTip(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, transaction)
}
