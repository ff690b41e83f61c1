package utils

const (
	// TaxRate is applied at every computation site. Keep this the only
	// definition so receipts, reports and shift summaries cannot drift.
	TaxRate = 0.13

	// PaymentEpsilon is the tolerance for deciding an order is fully
	// paid by cumulative tender amount.
	PaymentEpsilon = 0.01

	// Order statuses
	OrderStatusOpen      = "open"
	OrderStatusSent      = "sent"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
	OrderStatusHold      = "hold"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	// Order item statuses
	ItemStatusPending   = "pending"
	ItemStatusSent      = "sent"
	ItemStatusPreparing = "preparing"
	ItemStatusReady     = "ready"
	ItemStatusServed    = "served"

	// Order types
	OrderTypeDineIn  = "dine_in"
	OrderTypeTakeout = "takeout"

	// Table statuses
	TableStatusAvailable     = "available"
	TableStatusSeated        = "seated"
	TableStatusOrdered       = "ordered"
	TableStatusBillRequested = "bill_requested"
	TableStatusPaid          = "paid"

	// Split modes
	SplitModeNone  = "none"
	SplitModeEqual = "equal"
	SplitModeItem  = "item"

	// Tip basis
	TipBasisBeforeTax = "before_tax"
	TipBasisAfterTax  = "after_tax"

	// Payment methods
	MethodCredit = "credit"
	MethodDebit  = "debit"
	MethodCash   = "cash"
	MethodGift   = "gift"

	// Transaction constants
	TransactionTypePayment    = "payment"
	TransactionStatusApproved = "approved"

	// Shift statuses
	ShiftStatusActive = "active"
	ShiftStatusClosed = "closed"

	// Gift card statuses
	GiftCardStatusActive  = "active"
	GiftCardStatusUsed    = "used"
	GiftCardStatusExpired = "expired"

	// Gift card code generation (no ambiguous characters)
	GiftCardCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	GiftCardLength  = 12

	// HTTP status messages
	ErrInvalidRequest    = "Invalid request"
	ErrOrderNotFound     = "Order not found"
	ErrShiftNotFound     = "Shift not found"
	ErrTableNotFound     = "Table not found"
	ErrGiftCardNotFound  = "Gift card not found"
	ErrFailedToStore     = "Failed to store data"
	ErrFailedToRetrieve  = "Failed to retrieve data"

	// Precision for monetary calculations
	MoneyPrecision = 100.0
)

// BeverageCategories are menu categories counted as non-alcoholic
// beverages for reporting.
var BeverageCategories = map[string]bool{
	"beverages":   true,
	"drinks":      true,
	"coffee":      true,
	"tea":         true,
	"soft drinks": true,
	"juice":       true,
}

// AlcoholCategories are menu categories counted as alcohol for reporting.
var AlcoholCategories = map[string]bool{
	"alcohol":   true,
	"beer":      true,
	"beers":     true,
	"wine":      true,
	"wines":     true,
	"cocktails": true,
	"liquor":    true,
	"spirits":   true,
}

// IsBeverageCategory reports whether a menu category counts as beverage
// or alcohol. Any other category defaults to food.
func IsBeverageCategory(category string) bool {
	return BeverageCategories[category] || AlcoholCategories[category]
}
