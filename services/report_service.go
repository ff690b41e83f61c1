package services

import (
	"strings"
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// DiscountApportionment splits an order-level discount between food and
// beverage by item count. It feeds reporting only and never changes the
// order's stored discount.
type DiscountApportionment struct {
	FoodDiscount     float64 `json:"foodDiscount"`
	BeverageDiscount float64 `json:"beverageDiscount"`
}

// PaymentBreakdown totals approved payments by method for one day.
type PaymentBreakdown struct {
	Credit float64 `json:"credit"`
	Debit  float64 `json:"debit"`
	Cash   float64 `json:"cash"`
	Gift   float64 `json:"gift"`
	Total  float64 `json:"total"`
}

// DailySalesReport is the end-of-day rollup over paid and completed orders.
type DailySalesReport struct {
	Date              string           `json:"date"`
	FoodSales         float64          `json:"foodSales"`
	LunchSpecialSales float64          `json:"lunchSpecialSales"`
	FoodComps         float64          `json:"foodComps"`
	FoodDiscounts     float64          `json:"foodDiscounts"`
	BeverageSales     float64          `json:"beverageSales"`
	AlcoholSales      float64          `json:"alcoholSales"`
	BeverageComps     float64          `json:"beverageComps"`
	BeverageDiscounts float64          `json:"beverageDiscounts"`
	NetFoodSales      float64          `json:"netFoodSales"`
	NetBeverageSales  float64          `json:"netBeverageSales"`
	GrossSales        float64          `json:"grossSales"`
	NetSales          float64          `json:"netSales"`
	TotalDiscounts    float64          `json:"totalDiscounts"`
	TotalComps        float64          `json:"totalComps"`
	Tax               float64          `json:"tax"`
	Payments          PaymentBreakdown `json:"payments"`
	TotalTips         float64          `json:"totalTips"`
	Guests            int              `json:"guests"`
	OrderCount        int              `json:"orderCount"`
	AverageCheck      float64          `json:"averageCheck"`
}

// ReportService produces discount apportionments and daily sales rollups.
type ReportService struct {
	store *repository.Store
}

// NewReportService creates a new report service
func NewReportService(store *repository.Store) *ReportService {
	return &ReportService{
		store: store,
	}
}

// ApportionDiscount splits the order's discount by item count. Comped
// items stay in the denominator; any category outside the beverage and
// alcohol sets counts as food. The beverage share takes the rounding
// remainder so the parts always sum back to the discount.
func (s *ReportService) ApportionDiscount(order *models.Order) DiscountApportionment {
	if order.Discount <= 0 || len(order.Items) == 0 {
		return DiscountApportionment{}
	}

	foodCount := 0
	for _, item := range order.Items {
		if !utils.IsBeverageCategory(strings.ToLower(item.Category)) {
			foodCount++
		}
	}
	totalCount := len(order.Items)

	food := utils.Round(order.Discount * float64(foodCount) / float64(totalCount))
	return DiscountApportionment{
		FoodDiscount:     food,
		BeverageDiscount: utils.Round(order.Discount - food),
	}
}

// ApportionOrderDiscount looks up an order and apportions its discount.
func (s *ReportService) ApportionOrderDiscount(orderID string) (*DiscountApportionment, error) {
	order := s.store.Orders.Get(orderID)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	split := s.ApportionDiscount(order)
	return &split, nil
}

// DailyReport rolls up paid and completed orders closed on the given day
// plus that day's approved payment transactions.
func (s *ReportService) DailyReport(day time.Time) *DailySalesReport {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	orders := s.store.Orders.Filter(map[string]interface{}{
		"status": []string{utils.OrderStatusPaid, utils.OrderStatusCompleted},
	})

	report := &DailySalesReport{Date: start.Format("2006-01-02")}

	for _, order := range orders {
		closedAt := order.CreatedAt
		if order.ClosedAt != nil {
			closedAt = *order.ClosedAt
		}
		if closedAt.Before(start) || !closedAt.Before(end) {
			continue
		}

		report.OrderCount++
		report.Guests += order.Guests

		for _, item := range order.Items {
			category := strings.ToLower(item.Category)
			itemTotal := item.Price * float64(item.Quantity)

			if utils.IsBeverageCategory(category) {
				if item.IsComped {
					report.BeverageComps += itemTotal
				} else if utils.AlcoholCategories[category] {
					report.AlcoholSales += itemTotal
				} else {
					report.BeverageSales += itemTotal
				}
				continue
			}

			if item.IsComped {
				report.FoodComps += itemTotal
				continue
			}
			report.FoodSales += itemTotal
			if strings.Contains(category, "lunch special") || strings.Contains(category, "lunch_special") {
				report.LunchSpecialSales += itemTotal
			}
		}

		split := s.ApportionDiscount(order)
		report.FoodDiscounts += split.FoodDiscount
		report.BeverageDiscounts += split.BeverageDiscount
	}

	report.FoodSales = utils.Round(report.FoodSales)
	report.LunchSpecialSales = utils.Round(report.LunchSpecialSales)
	report.FoodComps = utils.Round(report.FoodComps)
	report.FoodDiscounts = utils.Round(report.FoodDiscounts)
	report.BeverageSales = utils.Round(report.BeverageSales)
	report.AlcoholSales = utils.Round(report.AlcoholSales)
	report.BeverageComps = utils.Round(report.BeverageComps)
	report.BeverageDiscounts = utils.Round(report.BeverageDiscounts)
	report.NetFoodSales = utils.Round(report.FoodSales - report.FoodDiscounts)
	report.NetBeverageSales = utils.Round(report.BeverageSales + report.AlcoholSales - report.BeverageDiscounts)
	report.GrossSales = utils.Round(report.FoodSales + report.FoodComps + report.BeverageSales + report.AlcoholSales + report.BeverageComps)
	report.NetSales = utils.Round(report.NetFoodSales + report.NetBeverageSales)
	report.TotalDiscounts = utils.Round(report.FoodDiscounts + report.BeverageDiscounts)
	report.TotalComps = utils.Round(report.FoodComps + report.BeverageComps)
	report.Tax = utils.Tax(report.NetSales)

	for _, tx := range s.store.Transactions.List() {
		if tx.Type != utils.TransactionTypePayment || tx.Status != utils.TransactionStatusApproved {
			continue
		}
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}
		switch tx.Method {
		case utils.MethodCredit:
			report.Payments.Credit += tx.Amount
		case utils.MethodDebit:
			report.Payments.Debit += tx.Amount
		case utils.MethodCash:
			report.Payments.Cash += tx.Amount
		case utils.MethodGift:
			report.Payments.Gift += tx.Amount
		}
		report.TotalTips += tx.Tip
	}
	report.Payments.Credit = utils.Round(report.Payments.Credit)
	report.Payments.Debit = utils.Round(report.Payments.Debit)
	report.Payments.Cash = utils.Round(report.Payments.Cash)
	report.Payments.Gift = utils.Round(report.Payments.Gift)
	report.Payments.Total = utils.Round(report.Payments.Credit + report.Payments.Debit + report.Payments.Cash + report.Payments.Gift)
	report.TotalTips = utils.Round(report.TotalTips)

	if report.OrderCount > 0 {
		report.AverageCheck = utils.Round(report.NetSales / float64(report.OrderCount))
	}
	return report
}
