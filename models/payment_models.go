package models

// SplitContext describes how a tender divides the order among payers.
type SplitContext struct {
	// Mode is none, equal or item
	Mode string `json:"mode"`
	// Count is the number of payers for an equal split (>= 2)
	Count int `json:"count,omitempty"`
	// Payer is the payer id whose share is being tendered for an item
	// split (1-based; 0 means unassigned)
	Payer int `json:"payer,omitempty"`
	// Assignments maps exploded-unit id -> payer id for an item split
	Assignments map[string]int `json:"assignments,omitempty"`
}

// ExplodedItem is one unit of an order item's remaining quantity,
// individually assignable for item-based splitting.
type ExplodedItem struct {
	UniqueID  string  `json:"uniqueId"`
	ItemIndex int     `json:"itemIndex"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unitPrice"`
}

// PaymentComputation is the priced share for one tender attempt.
type PaymentComputation struct {
	Amount float64 `json:"amount"` // payer's pre-tax share
	Tax    float64 `json:"tax"`
	Tip    float64 `json:"tip"`
	Total  float64 `json:"total"`
}

// TenderRequest is one payment attempt against an order or a payer's
// share of it.
type TenderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Method  string `json:"method" binding:"required"`
	// Amount, when set, is an explicit tax-inclusive amount keyed at
	// the terminal instead of a computed split share.
	Amount       *float64      `json:"amount,omitempty"`
	TipBasis     string        `json:"tipBasis"`
	TipPercent   float64       `json:"tipPercent"`
	CustomTip    *float64      `json:"customTip,omitempty"`
	CashReceived float64       `json:"cashReceived"`
	Split        *SplitContext `json:"split,omitempty"`
	Server       string        `json:"server"`
}

// SettlementResult reports what a tender attempt did.
type SettlementResult struct {
	Transaction *Transaction `json:"transaction"`
	Order       *Order       `json:"order"`
	FullyPaid   bool         `json:"fullyPaid"`
	ChangeDue   float64      `json:"changeDue"`
}

// AdjustTipRequest request model
type AdjustTipRequest struct {
	OrderID string  `json:"orderId" binding:"required"`
	NewTip  float64 `json:"newTip" binding:"min=0"`
}

// ComputePaymentRequest request model for previewing a payer's share
type ComputePaymentRequest struct {
	OrderID    string        `json:"orderId" binding:"required"`
	TipBasis   string        `json:"tipBasis"`
	TipPercent float64       `json:"tipPercent"`
	CustomTip  *float64      `json:"customTip,omitempty"`
	Split      *SplitContext `json:"split,omitempty"`
}
