package routes

import (
	"github.com/fadhlanhapp/dinetab-backend/handlers"
	"github.com/fadhlanhapp/dinetab-backend/repository"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, store *repository.Store) {
	// Initialize handlers
	handlers.InitHandlers(store)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Order endpoints
		v1.POST("/orders/open", handlers.OpenOrder)
		v1.GET("/orders", handlers.ListOrders)
		v1.GET("/orders/kitchen", handlers.ListKitchenOrders)
		v1.GET("/orders/:id", handlers.GetOrder)
		v1.POST("/orders/addItem", handlers.AddItem)
		v1.POST("/orders/updateQuantity", handlers.UpdateItemQuantity)
		v1.POST("/orders/removeItem", handlers.RemoveItem)
		v1.POST("/orders/addModifier", handlers.AddModifier)
		v1.POST("/orders/send", handlers.SendOrder)
		v1.POST("/orders/itemStatus", handlers.UpdateItemStatus)
		v1.POST("/orders/accept", handlers.AcceptOrder)
		v1.POST("/orders/ready", handlers.MarkAllReady)
		v1.POST("/orders/bump", handlers.BumpOrder)
		v1.POST("/orders/serveItem", handlers.ServeItem)
		v1.POST("/orders/hold", handlers.HoldOrder)
		v1.POST("/orders/resume", handlers.ResumeOrder)
		v1.POST("/orders/cancel", handlers.CancelOrder)
		v1.POST("/orders/complete", handlers.CompleteOrder)
		v1.POST("/orders/rush", handlers.RushOrder)
		v1.POST("/orders/discount", handlers.ApplyDiscount)
		v1.POST("/orders/comp", handlers.CompItems)
		v1.POST("/orders/transfer", handlers.TransferTable)
		v1.POST("/orders/clearTable", handlers.ClearTable)

		// Table endpoints
		v1.GET("/tables", handlers.ListTables)

		// Payment endpoints
		v1.POST("/payments/compute", handlers.ComputePayment)
		v1.POST("/payments/explode", handlers.ExplodeItems)
		v1.POST("/payments/settle", handlers.Settle)
		v1.POST("/payments/adjustTip", handlers.AdjustTip)

		// Shift endpoints
		v1.POST("/shifts/start", handlers.StartShift)
		v1.POST("/shifts/active", handlers.ActiveShift)
		v1.POST("/shifts/drop", handlers.RecordCashDrop)
		v1.POST("/shifts/close", handlers.CloseShift)

		// Report endpoints
		v1.GET("/reports/daily", handlers.DailyReport)
		v1.POST("/reports/apportionDiscount", handlers.ApportionDiscount)

		// Gift card endpoints
		v1.POST("/giftcards/purchase", handlers.PurchaseGiftCard)
		v1.GET("/giftcards/balance/:code", handlers.CheckGiftCardBalance)
		v1.POST("/giftcards/redeem", handlers.RedeemGiftCard)

		// Export endpoints
		v1.POST("/export/shift", handlers.ExportShiftToExcel)
		v1.GET("/export/daily", handlers.ExportDailyReportToExcel)
	}
}
