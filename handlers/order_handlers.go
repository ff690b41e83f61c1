package handlers

import (
	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/services"
	"github.com/fadhlanhapp/dinetab-backend/utils"

	"github.com/gin-gonic/gin"
)

// HandlerServices contains all service dependencies
type HandlerServices struct {
	OrderService       *services.OrderService
	CalculationService *services.CalculationService
	SettlementService  *services.SettlementService
	ShiftService       *services.ShiftService
	ReportService      *services.ReportService
	GiftCardService    *services.GiftCardService
	ExcelService       *services.ExcelService
}

// NewHandlerServices creates a new handler services instance
func NewHandlerServices(store *repository.Store) *HandlerServices {
	calc := services.NewCalculationService()
	shiftService := services.NewShiftService(store)
	reportService := services.NewReportService(store)
	return &HandlerServices{
		OrderService:       services.NewOrderService(store, calc),
		CalculationService: calc,
		SettlementService:  services.NewSettlementService(store, calc),
		ShiftService:       shiftService,
		ReportService:      reportService,
		GiftCardService:    services.NewGiftCardService(store, calc),
		ExcelService:       services.NewExcelService(store, shiftService, reportService),
	}
}

var handlerServices *HandlerServices

// InitHandlers initializes the handler services
func InitHandlers(store *repository.Store) {
	handlerServices = NewHandlerServices(store)
}

// OpenOrder opens an order for a table or takeout ticket
func OpenOrder(c *gin.Context) {
	var request models.OpenOrderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.OpenOrder(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// ListOrders lists all orders
func ListOrders(c *gin.Context) {
	utils.HandleSuccess(c, handlerServices.OrderService.ListOrders())
}

// ListKitchenOrders lists orders on the kitchen display
func ListKitchenOrders(c *gin.Context) {
	utils.HandleSuccess(c, handlerServices.OrderService.ListKitchenOrders())
}

// GetOrder retrieves one order by id
func GetOrder(c *gin.Context) {
	order, err := handlerServices.OrderService.GetOrder(c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// AddItem adds a menu item to an order
func AddItem(c *gin.Context) {
	var request models.AddItemRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.AddItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// UpdateItemQuantity changes a pending item's quantity
func UpdateItemQuantity(c *gin.Context) {
	var request models.UpdateQuantityRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.UpdateItemQuantity(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// RemoveItem removes a pending item line
func RemoveItem(c *gin.Context) {
	var request models.ItemIndexRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.RemoveItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// AddModifier adds a modifier to a pending item
func AddModifier(c *gin.Context) {
	var request models.AddModifierRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.AddModifier(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// SendOrder fires pending items to the kitchen
func SendOrder(c *gin.Context) {
	var request models.OrderIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.SendOrder(request.OrderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// UpdateItemStatus advances one item through the kitchen cycle
func UpdateItemStatus(c *gin.Context) {
	var request models.ItemIndexRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.UpdateItemStatus(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// AcceptOrder moves a sent order into preparing
func AcceptOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.AcceptOrder)
}

// MarkAllReady marks every unserved item ready
func MarkAllReady(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.MarkAllReady)
}

// BumpOrder clears a ticket from the kitchen display
func BumpOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.BumpOrder)
}

// ServeItem marks one item served
func ServeItem(c *gin.Context) {
	var request models.ItemIndexRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.ServeItem(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// HoldOrder puts an order on hold with a reason
func HoldOrder(c *gin.Context) {
	var request models.HoldOrderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.HoldOrder(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// ResumeOrder takes an order off hold
func ResumeOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.ResumeOrder)
}

// CancelOrder cancels an order and releases its table
func CancelOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.CancelOrder)
}

// CompleteOrder closes out a paid order
func CompleteOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.CompleteOrder)
}

// RushOrder flags an order for the kitchen
func RushOrder(c *gin.Context) {
	orderIDAction(c, handlerServices.OrderService.RushOrder)
}

// ApplyDiscount applies an order-level discount
func ApplyDiscount(c *gin.Context) {
	var request models.ApplyDiscountRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.ApplyDiscount(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// CompItems comps selected items with a reason
func CompItems(c *gin.Context) {
	var request models.CompItemsRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.CompItems(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// TransferTable moves an active order to another table
func TransferTable(c *gin.Context) {
	var request models.TransferTableRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := handlerServices.OrderService.TransferTable(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}

// ClearTable resets a table to available
func ClearTable(c *gin.Context) {
	var request models.ClearTableRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	if err := handlerServices.OrderService.ClearTable(request.TableID); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, true)
}

// ListTables lists the floor plan
func ListTables(c *gin.Context) {
	utils.HandleSuccess(c, handlerServices.OrderService.ListTables())
}

// orderIDAction runs a whole-order operation addressed by id
func orderIDAction(c *gin.Context, action func(string) (*models.Order, error)) {
	var request models.OrderIDRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	order, err := action(request.OrderID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, order)
}
