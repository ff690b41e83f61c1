package services

import (
	"fmt"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// CalculationService handles money, tax and split-bill arithmetic
type CalculationService struct{}

// NewCalculationService creates a new calculation service
func NewCalculationService() *CalculationService {
	return &CalculationService{}
}

// Subtotal sums item line totals. Comped items contribute zero.
func (s *CalculationService) Subtotal(items []models.OrderItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return utils.Round(subtotal)
}

// OrderTotals computes tax and total from a subtotal and discount.
// Every view that re-derives money goes through here so the invariant
// total == subtotal - discount + tax holds at every observation point.
func (s *CalculationService) OrderTotals(subtotal, discount float64) (tax, total float64) {
	taxable := subtotal - discount
	if taxable < 0 {
		taxable = 0
	}
	tax = utils.Round(taxable * utils.TaxRate)
	total = utils.Round(taxable + tax)
	return tax, total
}

// ExplodeItems expands an order's items into one record per remaining
// unit of quantity. Unit ids are offset by paid_quantity so already-paid
// units keep stable ids across successive partial payments. Comped units
// are included but priced at zero.
func (s *CalculationService) ExplodeItems(order *models.Order) []models.ExplodedItem {
	var exploded []models.ExplodedItem
	for index, item := range order.Items {
		remaining := item.Quantity - item.PaidQuantity
		unitPrice := item.Price
		if item.IsComped {
			unitPrice = 0
		}
		for i := 0; i < remaining; i++ {
			exploded = append(exploded, models.ExplodedItem{
				UniqueID:  fmt.Sprintf("%d-%d", index, i+item.PaidQuantity),
				ItemIndex: index,
				Name:      item.Name,
				Category:  item.Category,
				UnitPrice: unitPrice,
			})
		}
	}
	return exploded
}

// RemainingSubtotal sums the unit prices of all not-yet-paid units.
func (s *CalculationService) RemainingSubtotal(order *models.Order) float64 {
	var sum float64
	for _, unit := range s.ExplodeItems(order) {
		sum += unit.UnitPrice
	}
	return utils.Round(sum)
}

// AssignedUnits returns the exploded units assigned to one payer.
func (s *CalculationService) AssignedUnits(order *models.Order, split *models.SplitContext) []models.ExplodedItem {
	var assigned []models.ExplodedItem
	for _, unit := range s.ExplodeItems(order) {
		if split.Assignments[unit.UniqueID] == split.Payer {
			assigned = append(assigned, unit)
		}
	}
	return assigned
}

// ComputePayment prices one payer's share of an order for a tender
// attempt. Tax is always recomputed on the share itself, never
// apportioned from the order-level tax, so successive partial tenders
// cannot accumulate rounding drift.
func (s *CalculationService) ComputePayment(
	order *models.Order,
	split *models.SplitContext,
	tipBasis string,
	tipPercent float64,
	customTip *float64,
) (*models.PaymentComputation, error) {
	var amount float64

	mode := utils.SplitModeNone
	if split != nil && split.Mode != "" {
		mode = split.Mode
	}

	switch mode {
	case utils.SplitModeNone:
		amount = s.RemainingSubtotal(order)
	case utils.SplitModeEqual:
		if split.Count < 2 {
			return nil, utils.NewValidationError("equal split requires at least 2 payers")
		}
		amount = utils.Round(s.RemainingSubtotal(order) / float64(split.Count))
	case utils.SplitModeItem:
		if split.Payer < 1 {
			return nil, utils.NewValidationError("item split requires a payer")
		}
		var sum float64
		for _, unit := range s.AssignedUnits(order, split) {
			sum += unit.UnitPrice
		}
		amount = utils.Round(sum)
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("unknown split mode %q", mode))
	}

	tax := utils.Tax(amount)
	tip := s.computeTip(amount, tax, tipBasis, tipPercent, customTip)

	return &models.PaymentComputation{
		Amount: amount,
		Tax:    tax,
		Tip:    tip,
		Total:  utils.Round(amount + tax + tip),
	}, nil
}

// computeTip applies the tip basis and preset percentage. An explicit
// entered value overrides the percentage.
func (s *CalculationService) computeTip(amount, tax float64, basis string, percent float64, custom *float64) float64 {
	if custom != nil {
		return utils.Round(*custom)
	}
	base := amount
	if basis == utils.TipBasisAfterTax {
		base = amount + tax
	}
	return utils.Round(base * percent / 100)
}
