package services

import (
	"testing"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/stretchr/testify/assert"
)

// Full dinner service: seat a party of four, fire the order, work it
// through the kitchen and settle by credit with an 18% pre-tax tip.
func TestDinnerServiceScenario(t *testing.T) {
	store := repository.NewStore()
	calc := NewCalculationService()
	orders := NewOrderService(store, calc)
	shifts := NewShiftService(store)
	settlement := NewSettlementService(store, calc)

	shift, err := shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 200.00})
	assert.NoError(t, err)

	table := store.Tables.Create(&models.Table{Name: "T7", Section: "Main", Status: utils.TableStatusAvailable, Capacity: 4})

	order, err := orders.OpenOrder(&models.OpenOrderRequest{
		TableID:   table.ID,
		TableName: table.Name,
		Server:    "alice",
		Guests:    4,
	})
	assert.NoError(t, err)
	assert.Equal(t, utils.TableStatusSeated, store.Tables.Get(table.ID).Status)

	_, err = orders.AddItem(&models.AddItemRequest{
		OrderID: order.ID, ItemID: "m1", Name: "Peking Duck", Category: "entrees", Price: 42.00,
	})
	assert.NoError(t, err)
	_, err = orders.AddItem(&models.AddItemRequest{
		OrderID: order.ID, ItemID: "m2", Name: "Dan Dan Noodles", Category: "noodles", Price: 16.00,
	})
	assert.NoError(t, err)

	sent, err := orders.SendOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusSent, sent.Status)
	assert.Equal(t, utils.ItemStatusSent, sent.Items[0].Status)
	assert.Equal(t, utils.ItemStatusSent, sent.Items[1].Status)
	assert.Equal(t, 58.00, sent.Subtotal)
	assert.Equal(t, 7.54, sent.Tax)
	assert.Equal(t, 65.54, sent.Total)

	// Kitchen takes the ticket and finishes both plates
	accepted, err := orders.AcceptOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusPreparing, accepted.Status)

	ready, err := orders.MarkAllReady(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusReady, ready.Status)
	for _, item := range ready.Items {
		assert.Equal(t, utils.ItemStatusReady, item.Status)
	}

	result, err := settlement.Settle(&models.TenderRequest{
		OrderID:    order.ID,
		Method:     utils.MethodCredit,
		TipBasis:   utils.TipBasisBeforeTax,
		TipPercent: 18,
		Server:     "alice",
	})
	assert.NoError(t, err)
	assert.True(t, result.FullyPaid)
	assert.Equal(t, utils.OrderStatusPaid, result.Order.Status)
	assert.Equal(t, 65.54, result.Transaction.Amount)
	assert.Equal(t, 10.44, result.Transaction.Tip) // 18% of 58.00
	assert.Equal(t, 10.44, result.Order.Tip)

	paidTable := store.Tables.Get(table.ID)
	assert.Equal(t, utils.TableStatusPaid, paidTable.Status)
	assert.Equal(t, utils.MethodCredit, paidTable.LastPaymentMethod)

	updatedShift := store.Shifts.Get(shift.ID)
	assert.Equal(t, 65.54, updatedShift.TotalSales)
	assert.Equal(t, 10.44, updatedShift.TotalTips)
	assert.Equal(t, 1, updatedShift.OrdersCount)
	// Credit sale leaves the drawer alone
	assert.Equal(t, 200.00, updatedShift.ExpectedCash)

	completed, err := orders.CompleteOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusCompleted, completed.Status)
	assert.Equal(t, utils.TableStatusAvailable, store.Tables.Get(table.ID).Status)
}
