package services

import (
	"testing"
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestReportService_ApportionDiscountByItemCount(t *testing.T) {
	service := NewReportService(repository.NewStore())

	// 3 food items, 1 beverage item, $10.00 discount
	order := &models.Order{
		Discount: 10.00,
		Items: []models.OrderItem{
			{Name: "Kung Pao Chicken", Category: "entrees", Price: 18.00, Quantity: 1},
			{Name: "Fried Rice", Category: "rice", Price: 11.00, Quantity: 1},
			{Name: "Dumplings", Category: "dim_sum", Price: 12.00, Quantity: 1},
			{Name: "Jasmine Tea", Category: "tea", Price: 4.00, Quantity: 1},
		},
	}

	split := service.ApportionDiscount(order)
	assert.Equal(t, 7.50, split.FoodDiscount)
	assert.Equal(t, 2.50, split.BeverageDiscount)
}

func TestReportService_ApportionEdgeCases(t *testing.T) {
	service := NewReportService(repository.NewStore())

	// No discount and no items both yield zero shares
	assert.Equal(t, DiscountApportionment{}, service.ApportionDiscount(&models.Order{}))
	assert.Equal(t, DiscountApportionment{}, service.ApportionDiscount(&models.Order{Discount: 5.00}))

	// Quantity does not matter, only the number of item records
	order := &models.Order{
		Discount: 9.00,
		Items: []models.OrderItem{
			{Name: "Noodles", Category: "noodles", Price: 12.00, Quantity: 5},
			{Name: "Mapo Tofu", Category: "entrees", Price: 14.00, Quantity: 1},
			{Name: "Tsingtao", Category: "beer", Price: 6.00, Quantity: 1},
		},
	}
	split := service.ApportionDiscount(order)
	assert.Equal(t, 6.00, split.FoodDiscount)
	assert.Equal(t, 3.00, split.BeverageDiscount)

	// Comped items stay in the denominator
	order.Items[0].IsComped = true
	split = service.ApportionDiscount(order)
	assert.Equal(t, 6.00, split.FoodDiscount)
}

func TestReportService_DailyReport(t *testing.T) {
	store := repository.NewStore()
	service := NewReportService(store)

	store.CreateOrder(&models.Order{
		Status: utils.OrderStatusPaid,
		Guests: 4,
		Items: []models.OrderItem{
			{Name: "Kung Pao Lunch", Category: "lunch_specials", Price: 15.00, Quantity: 2},
			{Name: "Mapo Tofu", Category: "entrees", Price: 14.00, Quantity: 1},
			{Name: "Tsingtao", Category: "beer", Price: 6.00, Quantity: 2},
			{Name: "Jasmine Tea", Category: "tea", Price: 4.00, Quantity: 1},
			{Name: "Fried Rice", Category: "rice", Price: 11.00, Quantity: 1, IsComped: true},
		},
	})

	// Cancelled orders never reach the report
	store.CreateOrder(&models.Order{
		Status: utils.OrderStatusCancelled,
		Items: []models.OrderItem{
			{Name: "Peking Duck", Category: "entrees", Price: 42.00, Quantity: 1},
		},
	})

	store.CreateTransaction(&models.Transaction{
		Type:   utils.TransactionTypePayment,
		Method: utils.MethodCredit,
		Amount: 54.24,
		Tip:    8.00,
		Status: utils.TransactionStatusApproved,
	})

	report := service.DailyReport(time.Now())

	assert.Equal(t, 1, report.OrderCount)
	assert.Equal(t, 4, report.Guests)
	assert.Equal(t, 44.00, report.FoodSales) // 30 lunch + 14 entree
	assert.Equal(t, 30.00, report.LunchSpecialSales)
	assert.Equal(t, 12.00, report.AlcoholSales)
	assert.Equal(t, 4.00, report.BeverageSales)
	assert.Equal(t, 11.00, report.FoodComps)
	assert.Equal(t, 60.00, report.NetSales)
	assert.Equal(t, utils.Tax(60.00), report.Tax)
	assert.Equal(t, 54.24, report.Payments.Credit)
	assert.Equal(t, 8.00, report.TotalTips)
	assert.Equal(t, 60.00, report.AverageCheck)
}
