package handlers

import (
	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/gin-gonic/gin"
)

// PurchaseGiftCard sells a new stored-value card
func PurchaseGiftCard(c *gin.Context) {
	var request models.PurchaseGiftCardRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	card, err := handlerServices.GiftCardService.Purchase(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, card)
}

// CheckGiftCardBalance reports a card's usable balance
func CheckGiftCardBalance(c *gin.Context) {
	card, err := handlerServices.GiftCardService.CheckBalance(c.Param("code"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"code": card.Code, "balance": card.CurrentBalance})
}

// RedeemGiftCard applies a card's balance to an order as a discount
func RedeemGiftCard(c *gin.Context) {
	var request models.RedeemGiftCardRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.GiftCardService.Redeem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}
