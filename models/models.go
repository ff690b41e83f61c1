// models/models.go
package models

import (
	"time"

	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// Order is the aggregate for one table visit or takeout ticket. It owns
// its items; Transactions reference it by id.
type Order struct {
	ID            string      `json:"id"`
	TableID       string      `json:"table_id,omitempty"` // empty for takeout
	TableName     string      `json:"table_name"`
	Server        string      `json:"server"`
	Guests        int         `json:"guests"`
	Type          string      `json:"type"` // dine_in | takeout
	Items         []OrderItem `json:"items"`
	Status        string      `json:"status"`
	Subtotal      float64     `json:"subtotal"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	Discount      float64     `json:"discount"`
	DiscountType  string      `json:"discount_type,omitempty"`
	DiscountReason string     `json:"discount_reason,omitempty"`
	Tip           float64     `json:"tip"`
	IsRush        bool        `json:"is_rush"`
	IsOnline      bool        `json:"is_online"`
	HoldReason    string      `json:"hold_reason,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	PaymentStatus string      `json:"payment_status,omitempty"`
	OpenedAt      time.Time   `json:"opened_at"`
	ClosedAt      *time.Time  `json:"closed_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	// Revision guards concurrent writers (kitchen display vs. POS
	// terminal); stale writes are rejected by the store.
	Revision int64 `json:"revision"`
}

// OrderItem is one menu line on an order. Price is fixed once the item
// leaves pending; quantity is mutable only while pending.
type OrderItem struct {
	ItemID       string   `json:"item_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Quantity     int      `json:"quantity"`
	PaidQuantity int      `json:"paid_quantity"`
	Status       string   `json:"status"`
	Modifiers    []string `json:"modifiers,omitempty"`
	IsComped     bool     `json:"is_comped"`
	CompReason   string   `json:"comp_reason,omitempty"`
	Station      string   `json:"station,omitempty"`
}

// LineTotal returns the charge this item contributes to the subtotal.
// Comped items contribute nothing regardless of price and quantity.
func (i OrderItem) LineTotal() float64 {
	if i.IsComped {
		return 0
	}
	return i.Price * float64(i.Quantity)
}

// Transaction is one approved tender against an order. Immutable after
// creation except for the tip, which may be adjusted post-close.
type Transaction struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Type      string    `json:"type"`
	Method    string    `json:"method"`
	Amount    float64   `json:"amount"` // payment amount + tax, pre-tip
	Tip       float64   `json:"tip"`
	Server    string    `json:"server"`
	ShiftID   string    `json:"shift_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CashDrop records cash removed from the drawer mid-shift.
type CashDrop struct {
	Amount float64   `json:"amount"`
	Time   time.Time `json:"time"`
}

// Shift is one server's drawer session. Totals are denormalized from the
// transaction ledger; the settlement engine keeps them consistent.
type Shift struct {
	ID           string     `json:"id"`
	Server       string     `json:"server"`
	ServerName   string     `json:"server_name,omitempty"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	StartingCash float64    `json:"starting_cash"`
	ExpectedCash float64    `json:"expected_cash"`
	ActualCash   float64    `json:"actual_cash"`
	Variance     float64    `json:"variance"`
	TotalSales   float64    `json:"total_sales"`
	TotalTips    float64    `json:"total_tips"`
	OrdersCount  int        `json:"orders_count"`
	CashDrops    []CashDrop `json:"cash_drops"`
}

// Table is the physical table record the settlement engine and
// clear/transfer operations touch.
type Table struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Section           string     `json:"section"`
	Status            string     `json:"status"`
	Capacity          int        `json:"capacity"`
	Guests            int        `json:"guests"`
	SeatedAt          *time.Time `json:"seated_at,omitempty"`
	CurrentServer     string     `json:"current_server,omitempty"`
	LastPaymentMethod string     `json:"last_payment_method,omitempty"`
}

// GiftCard holds a stored-value card balance.
type GiftCard struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	InitialBalance float64   `json:"initial_balance"`
	CurrentBalance float64   `json:"current_balance"`
	Status         string    `json:"status"`
	PurchasedBy    string    `json:"purchased_by,omitempty"`
	RecipientName  string    `json:"recipient_name,omitempty"`
	RecipientEmail string    `json:"recipient_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// OpenOrderRequest request model
type OpenOrderRequest struct {
	TableID   string `json:"tableId"`
	TableName string `json:"tableName" binding:"required"`
	Server    string `json:"server" binding:"required"`
	Guests    int    `json:"guests" binding:"min=1"`
	Type      string `json:"type"`
}

// AddItemRequest request model
type AddItemRequest struct {
	OrderID  string  `json:"orderId" binding:"required"`
	ItemID   string  `json:"itemId" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price" binding:"min=0"`
	Station  string  `json:"station"`
}

// UpdateQuantityRequest request model
type UpdateQuantityRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	ItemIndex int    `json:"itemIndex"`
	Quantity  int    `json:"quantity"`
}

// ItemIndexRequest request model for operations addressing one item
type ItemIndexRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	ItemIndex int    `json:"itemIndex"`
}

// AddModifierRequest request model
type AddModifierRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	ItemIndex int    `json:"itemIndex"`
	Modifier  string `json:"modifier" binding:"required"`
}

// OrderIDRequest request model for whole-order operations
type OrderIDRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// HoldOrderRequest request model
type HoldOrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// ApplyDiscountRequest request model
type ApplyDiscountRequest struct {
	OrderID string  `json:"orderId" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
	Type    string  `json:"type"`
	Reason  string  `json:"reason"`
}

// CompItemsRequest request model
type CompItemsRequest struct {
	OrderID     string `json:"orderId" binding:"required"`
	ItemIndexes []int  `json:"itemIndexes" binding:"required,min=1"`
	Reason      string `json:"reason" binding:"required"`
}

// TransferTableRequest request model
type TransferTableRequest struct {
	OrderID    string `json:"orderId" binding:"required"`
	NewTableID string `json:"newTableId" binding:"required"`
}

// StartShiftRequest request model
type StartShiftRequest struct {
	Server       string  `json:"server" binding:"required"`
	ServerName   string  `json:"serverName"`
	StartingCash float64 `json:"startingCash" binding:"min=0"`
}

// CashDropRequest request model
type CashDropRequest struct {
	ShiftID string  `json:"shiftId" binding:"required"`
	Amount  float64 `json:"amount" binding:"required,gt=0"`
}

// CloseShiftRequest request model
type CloseShiftRequest struct {
	ShiftID    string  `json:"shiftId" binding:"required"`
	ActualCash float64 `json:"actualCash" binding:"min=0"`
}

// ClearTableRequest request model
type ClearTableRequest struct {
	TableID string `json:"tableId" binding:"required"`
}

// ActiveShiftRequest request model
type ActiveShiftRequest struct {
	Server string `json:"server" binding:"required"`
}

// ExportShiftRequest request model
type ExportShiftRequest struct {
	ShiftID string `json:"shiftId" binding:"required"`
}

// PurchaseGiftCardRequest request model
type PurchaseGiftCardRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	PurchasedBy    string  `json:"purchasedBy"`
	RecipientName  string  `json:"recipientName"`
	RecipientEmail string  `json:"recipientEmail"`
}

// RedeemGiftCardRequest request model
type RedeemGiftCardRequest struct {
	Code    string `json:"code" binding:"required"`
	OrderID string `json:"orderId" binding:"required"`
}

// NewOrder creates an open order for a seated table or takeout ticket
func NewOrder(tableID, tableName, server string, guests int, orderType string) *Order {
	if orderType == "" {
		orderType = utils.OrderTypeDineIn
	}
	return &Order{
		TableID:   tableID,
		TableName: tableName,
		Server:    server,
		Guests:    guests,
		Type:      orderType,
		Items:     []OrderItem{},
		Status:    utils.OrderStatusOpen,
		OpenedAt:  time.Now(),
	}
}

// NewShift creates an active shift with a zeroed ledger
func NewShift(server, serverName string, startingCash float64) *Shift {
	return &Shift{
		Server:       server,
		ServerName:   serverName,
		Status:       utils.ShiftStatusActive,
		StartedAt:    time.Now(),
		StartingCash: startingCash,
		ExpectedCash: startingCash,
		CashDrops:    []CashDrop{},
	}
}
