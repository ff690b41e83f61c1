package services

import (
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// SettlementService turns tender attempts into transactions and decides
// when an order is fully paid. It also keeps the denormalized shift
// totals consistent with the transaction ledger.
type SettlementService struct {
	store *repository.Store
	calc  *CalculationService
}

// NewSettlementService creates a new settlement service
func NewSettlementService(store *repository.Store, calc *CalculationService) *SettlementService {
	return &SettlementService{
		store: store,
		calc:  calc,
	}
}

// approvedTransactions returns the approved payment ledger for an order.
func (s *SettlementService) approvedTransactions(orderID string) []*models.Transaction {
	return s.store.Transactions.Filter(map[string]interface{}{
		"order_id": orderID,
		"type":     utils.TransactionTypePayment,
		"status":   utils.TransactionStatusApproved,
	})
}

// activeShift returns the server's active shift, or nil.
func (s *SettlementService) activeShift(server string) *models.Shift {
	shifts := s.store.Shifts.Filter(map[string]interface{}{
		"server": server,
		"status": utils.ShiftStatusActive,
	})
	if len(shifts) == 0 {
		return nil
	}
	return shifts[0]
}

// hasItemPartial reports whether any unit has already been paid through
// an item split.
func hasItemPartial(order *models.Order) bool {
	for _, item := range order.Items {
		if item.PaidQuantity > 0 {
			return true
		}
	}
	return false
}

// Settle processes one tender attempt. Every validation runs before the
// first side effect, so a failed attempt leaves the order, ledger and
// shift exactly as they were.
func (s *SettlementService) Settle(req *models.TenderRequest) (*models.SettlementResult, error) {
	if err := utils.ValidateMethod(req.Method); err != nil {
		return nil, err
	}

	order := s.store.Orders.Get(req.OrderID)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	if order.Status == utils.OrderStatusPaid || isTerminal(order.Status) {
		return nil, utils.NewValidationError("order is not open for payment")
	}

	isItemSplit := req.Split != nil && req.Split.Mode == utils.SplitModeItem
	prior := s.approvedTransactions(order.ID)

	// An order settles by item bookkeeping or by cumulative amount,
	// never both: the two completion tests are not reconcilable.
	if isItemSplit && len(prior) > 0 && !hasItemPartial(order) {
		return nil, utils.NewValidationError("order already has amount-based partial payments; finish with an amount tender")
	}
	if !isItemSplit && hasItemPartial(order) {
		return nil, utils.NewValidationError("order already has item-split partial payments; finish with an item tender")
	}

	var assigned []models.ExplodedItem
	if isItemSplit {
		assigned = s.calc.AssignedUnits(order, req.Split)
		if len(assigned) == 0 {
			return nil, utils.NewValidationError("no items assigned to this payer")
		}
	}

	var computation *models.PaymentComputation
	if req.Amount != nil {
		// Explicit tax-inclusive amount keyed at the terminal.
		if err := utils.ValidatePositive(*req.Amount, "amount"); err != nil {
			return nil, err
		}
		if isItemSplit {
			return nil, utils.NewValidationError("explicit amounts cannot be combined with an item split")
		}
		gross := utils.Round(*req.Amount)
		tip := 0.0
		if req.CustomTip != nil {
			tip = utils.Round(*req.CustomTip)
		}
		computation = &models.PaymentComputation{
			Amount: gross,
			Tax:    0,
			Tip:    tip,
			Total:  utils.Round(gross + tip),
		}
	} else {
		var err error
		computation, err = s.calc.ComputePayment(order, req.Split, req.TipBasis, req.TipPercent, req.CustomTip)
		if err != nil {
			return nil, err
		}
	}

	changeDue := 0.0
	if req.Method == utils.MethodCash {
		if req.CashReceived < computation.Total-utils.PaymentEpsilon {
			return nil, utils.NewValidationError("insufficient cash tendered")
		}
		changeDue = utils.Round(req.CashReceived - computation.Total)
	}

	// Validation is complete; the side effects below are strictly
	// ordered: ledger first, then order, then table, then shift.
	tx := s.store.CreateTransaction(&models.Transaction{
		OrderID: order.ID,
		Type:    utils.TransactionTypePayment,
		Method:  req.Method,
		Amount:  utils.Round(computation.Amount + computation.Tax),
		Tip:     computation.Tip,
		Server:  req.Server,
		ShiftID: s.shiftID(req.Server),
		Status:  utils.TransactionStatusApproved,
	})

	fullyPaid := false
	updated, err := s.store.UpdateOrder(order.ID, func(o *models.Order) error {
		if isItemSplit {
			for _, unit := range assigned {
				if unit.ItemIndex < len(o.Items) {
					o.Items[unit.ItemIndex].PaidQuantity++
				}
			}
			fullyPaid = true
			for _, item := range o.Items {
				if item.PaidQuantity < item.Quantity {
					fullyPaid = false
					break
				}
			}
		} else {
			var previousPaid float64
			for _, p := range prior {
				previousPaid += p.Amount
			}
			cumulative := previousPaid + tx.Amount
			// Equal-split shares are rounded per tender, so on an
			// awkward total they can sum to just under the epsilon
			// and leave the order partial. The remainder is settled
			// with an explicit amount tender, never absorbed into
			// the last share.
			fullyPaid = o.Total > 0 && cumulative >= o.Total-utils.PaymentEpsilon
		}

		if fullyPaid {
			o.Status = utils.OrderStatusPaid
			o.PaymentStatus = utils.OrderStatusPaid
			o.PaymentMethod = req.Method
			o.Tip = computation.Tip
			if o.ClosedAt == nil {
				now := time.Now()
				o.ClosedAt = &now
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if fullyPaid && updated.TableID != "" {
		_, _ = s.store.Tables.Update(updated.TableID, func(t *models.Table) error {
			t.Status = utils.TableStatusPaid
			t.LastPaymentMethod = req.Method
			return nil
		})
	}

	if shift := s.activeShift(req.Server); shift != nil {
		_, _ = s.store.Shifts.Update(shift.ID, func(sh *models.Shift) error {
			sh.TotalSales = utils.Round(sh.TotalSales + tx.Amount)
			sh.TotalTips = utils.Round(sh.TotalTips + tx.Tip)
			if fullyPaid {
				sh.OrdersCount++
			}
			if req.Method == utils.MethodCash {
				sh.ExpectedCash = utils.Round(sh.ExpectedCash + tx.Amount)
			}
			return nil
		})
	}

	return &models.SettlementResult{
		Transaction: tx,
		Order:       updated,
		FullyPaid:   fullyPaid,
		ChangeDue:   changeDue,
	}, nil
}

func (s *SettlementService) shiftID(server string) string {
	if shift := s.activeShift(server); shift != nil {
		return shift.ID
	}
	return ""
}

// AdjustTip re-opens a settled order's tip: the approved payment
// transaction, the order's stored tip and the shift's tip total all
// move by the same difference, so no reader ever sees a partial
// application.
func (s *SettlementService) AdjustTip(req *models.AdjustTipRequest) (*models.Transaction, error) {
	order := s.store.Orders.Get(req.OrderID)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}

	txs := s.approvedTransactions(req.OrderID)
	if len(txs) == 0 {
		return nil, utils.NewValidationError("no payment record found for this order")
	}
	paymentTx := txs[len(txs)-1]

	newTip := utils.Round(req.NewTip)
	diff := utils.Round(newTip - paymentTx.Tip)

	updatedTx, err := s.store.Transactions.Update(paymentTx.ID, func(t *models.Transaction) error {
		t.Tip = newTip
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.store.UpdateOrder(req.OrderID, func(o *models.Order) error {
		o.Tip = newTip
		return nil
	}); err != nil {
		return nil, err
	}

	if paymentTx.ShiftID != "" {
		_, _ = s.store.Shifts.Update(paymentTx.ShiftID, func(sh *models.Shift) error {
			sh.TotalTips = utils.Round(sh.TotalTips + diff)
			return nil
		})
	}

	return updatedTx, nil
}
