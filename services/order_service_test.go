package services

import (
	"testing"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/stretchr/testify/assert"
)

func newTestOrderService() (*OrderService, *repository.Store) {
	store := repository.NewStore()
	return NewOrderService(store, NewCalculationService()), store
}

func openTestOrder(t *testing.T, service *OrderService) *models.Order {
	t.Helper()
	order, err := service.OpenOrder(&models.OpenOrderRequest{
		TableName: "T1",
		Server:    "alice",
		Guests:    2,
	})
	assert.NoError(t, err)
	return order
}

func addTestItem(t *testing.T, service *OrderService, orderID, itemID, name, category string, price float64) *models.Order {
	t.Helper()
	order, err := service.AddItem(&models.AddItemRequest{
		OrderID:  orderID,
		ItemID:   itemID,
		Name:     name,
		Category: category,
		Price:    price,
	})
	assert.NoError(t, err)
	return order
}

func TestOrderService_SendWithNoPendingItemsRejected(t *testing.T) {
	service, store := newTestOrderService()
	order := openTestOrder(t, service)

	_, err := service.SendOrder(order.ID)
	assert.Error(t, err)
	assert.True(t, utils.IsValidation(err))

	// A failed send leaves the order untouched
	stored := store.Orders.Get(order.ID)
	assert.Equal(t, utils.OrderStatusOpen, stored.Status)
	assert.Equal(t, order.Revision, stored.Revision)

	// Sending twice in a row fails the second time
	addTestItem(t, service, order.ID, "m1", "Kung Pao Chicken", "entrees", 18.00)
	_, err = service.SendOrder(order.ID)
	assert.NoError(t, err)
	_, err = service.SendOrder(order.ID)
	assert.Error(t, err)
}

func TestOrderService_SendComputesTotals(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Kung Pao Chicken", "entrees", 18.00)
	addTestItem(t, service, order.ID, "m2", "Jasmine Tea", "tea", 4.00)

	sent, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	assert.Equal(t, utils.OrderStatusSent, sent.Status)
	for _, item := range sent.Items {
		assert.Equal(t, utils.ItemStatusSent, item.Status)
	}
	assert.Equal(t, 22.00, sent.Subtotal)
	assert.Equal(t, 2.86, sent.Tax)
	assert.Equal(t, 24.86, sent.Total)
}

func TestOrderService_MergesPendingLines(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Dumplings", "dim_sum", 12.00)
	updated := addTestItem(t, service, order.ID, "m1", "Dumplings", "dim_sum", 12.00)

	assert.Len(t, updated.Items, 1)
	assert.Equal(t, 2, updated.Items[0].Quantity)
	assert.Equal(t, 24.00, updated.Subtotal)
}

func TestOrderService_QuantityLockedAfterSend(t *testing.T) {
	service, store := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Dumplings", "dim_sum", 12.00)
	_, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	_, err = service.UpdateItemQuantity(&models.UpdateQuantityRequest{
		OrderID:   order.ID,
		ItemIndex: 0,
		Quantity:  3,
	})
	assert.Error(t, err)
	assert.True(t, utils.IsValidation(err))

	stored := store.Orders.Get(order.ID)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestOrderService_KitchenStatusCycle(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Mapo Tofu", "entrees", 14.00)
	_, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	// sent -> preparing
	updated, err := service.UpdateItemStatus(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 0})
	assert.NoError(t, err)
	assert.Equal(t, utils.ItemStatusPreparing, updated.Items[0].Status)
	assert.Equal(t, utils.OrderStatusPreparing, updated.Status)

	// preparing -> ready
	updated, err = service.UpdateItemStatus(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 0})
	assert.NoError(t, err)
	assert.Equal(t, utils.ItemStatusReady, updated.Items[0].Status)
	assert.Equal(t, utils.OrderStatusReady, updated.Status)

	// ready cycles back to sent for corrections
	updated, err = service.UpdateItemStatus(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 0})
	assert.NoError(t, err)
	assert.Equal(t, utils.ItemStatusSent, updated.Items[0].Status)
	assert.Equal(t, utils.OrderStatusPreparing, updated.Status)
}

func TestOrderService_ServedItemsAreImmutable(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Mapo Tofu", "entrees", 14.00)
	_, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	_, err = service.ServeItem(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 0})
	assert.NoError(t, err)

	_, err = service.UpdateItemStatus(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 0})
	assert.Error(t, err)
}

func TestOrderService_HoldBlocksSend(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Peking Duck", "entrees", 42.00)

	_, err := service.HoldOrder(&models.HoldOrderRequest{OrderID: order.ID, Reason: "waiting for guest"})
	assert.NoError(t, err)

	_, err = service.SendOrder(order.ID)
	assert.Error(t, err)

	resumed, err := service.ResumeOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusOpen, resumed.Status)
	assert.Empty(t, resumed.HoldReason)

	_, err = service.SendOrder(order.ID)
	assert.NoError(t, err)
}

func TestOrderService_BumpLeavesBarItems(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Kung Pao Chicken", "entrees", 18.00)
	addTestItem(t, service, order.ID, "b1", "Tsingtao", "beer", 6.00)
	_, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	bumped, err := service.BumpOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.ItemStatusServed, bumped.Items[0].Status)
	assert.Equal(t, utils.ItemStatusSent, bumped.Items[1].Status)
	assert.Equal(t, utils.OrderStatusReady, bumped.Status)

	served, err := service.ServeItem(&models.ItemIndexRequest{OrderID: order.ID, ItemIndex: 1})
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusServed, served.Status)
}

func TestOrderService_DiscountAndCompKeepInvariant(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	addTestItem(t, service, order.ID, "m1", "Peking Duck", "entrees", 42.00)
	addTestItem(t, service, order.ID, "m2", "Fried Rice", "rice", 11.00)
	_, err := service.SendOrder(order.ID)
	assert.NoError(t, err)

	discounted, err := service.ApplyDiscount(&models.ApplyDiscountRequest{
		OrderID: order.ID,
		Amount:  10.00,
		Reason:  "manager",
	})
	assert.NoError(t, err)
	assert.Equal(t, 53.00, discounted.Subtotal)
	assert.Equal(t, utils.Round((discounted.Subtotal-discounted.Discount)*utils.TaxRate), discounted.Tax)
	assert.Equal(t, utils.Round(discounted.Subtotal-discounted.Discount+discounted.Tax), discounted.Total)

	comped, err := service.CompItems(&models.CompItemsRequest{
		OrderID:     order.ID,
		ItemIndexes: []int{1},
		Reason:      "dropped plate",
	})
	assert.NoError(t, err)
	assert.True(t, comped.Items[1].IsComped)
	assert.Equal(t, 42.00, comped.Subtotal)
	assert.Equal(t, utils.Round(comped.Subtotal-comped.Discount+comped.Tax), comped.Total)
}

func TestOrderService_CompleteRequiresPaid(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)

	_, err := service.CompleteOrder(order.ID)
	assert.Error(t, err)

	cancelled, err := service.CancelOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.OrderStatusCancelled, cancelled.Status)

	// Terminal orders stay terminal
	_, err = service.CancelOrder(order.ID)
	assert.Error(t, err)
}

func TestOrderService_TableLifecycle(t *testing.T) {
	service, store := newTestOrderService()
	table := store.Tables.Create(&models.Table{Name: "T5", Section: "Main", Status: utils.TableStatusAvailable, Capacity: 4})

	order, err := service.OpenOrder(&models.OpenOrderRequest{
		TableID:   table.ID,
		TableName: table.Name,
		Server:    "alice",
		Guests:    3,
	})
	assert.NoError(t, err)

	seated := store.Tables.Get(table.ID)
	assert.Equal(t, utils.TableStatusSeated, seated.Status)
	assert.Equal(t, 3, seated.Guests)

	addTestItem(t, service, order.ID, "m1", "Mapo Tofu", "entrees", 14.00)
	_, err = service.SendOrder(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.TableStatusOrdered, store.Tables.Get(table.ID).Status)

	err = service.ClearTable(table.ID)
	assert.NoError(t, err)
	cleared := store.Tables.Get(table.ID)
	assert.Equal(t, utils.TableStatusAvailable, cleared.Status)
	assert.Equal(t, 0, cleared.Guests)
	assert.Equal(t, utils.OrderStatusCancelled, store.Orders.Get(order.ID).Status)
}

func TestOrderService_TransferTable(t *testing.T) {
	service, store := newTestOrderService()
	first := store.Tables.Create(&models.Table{Name: "T1", Status: utils.TableStatusAvailable})
	second := store.Tables.Create(&models.Table{Name: "T2", Status: utils.TableStatusAvailable})

	order, err := service.OpenOrder(&models.OpenOrderRequest{
		TableID:   first.ID,
		TableName: first.Name,
		Server:    "alice",
		Guests:    2,
	})
	assert.NoError(t, err)

	moved, err := service.TransferTable(&models.TransferTableRequest{
		OrderID:    order.ID,
		NewTableID: second.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, second.ID, moved.TableID)
	assert.Equal(t, "T2", moved.TableName)
	assert.Equal(t, utils.TableStatusAvailable, store.Tables.Get(first.ID).Status)
	assert.Equal(t, utils.TableStatusSeated, store.Tables.Get(second.ID).Status)
}

func TestDeriveKitchenStatus(t *testing.T) {
	items := func(statuses ...string) []models.OrderItem {
		out := make([]models.OrderItem, len(statuses))
		for i, status := range statuses {
			out[i] = models.OrderItem{Status: status}
		}
		return out
	}

	assert.Equal(t, utils.OrderStatusPreparing,
		DeriveKitchenStatus(items(utils.ItemStatusReady, utils.ItemStatusPreparing), utils.OrderStatusSent))
	assert.Equal(t, utils.OrderStatusReady,
		DeriveKitchenStatus(items(utils.ItemStatusReady, utils.ItemStatusServed), utils.OrderStatusPreparing))
	assert.Equal(t, utils.OrderStatusServed,
		DeriveKitchenStatus(items(utils.ItemStatusServed, utils.ItemStatusServed), utils.OrderStatusReady))

	// Pending items and an empty list leave the aggregate alone
	assert.Equal(t, utils.OrderStatusSent,
		DeriveKitchenStatus(items(utils.ItemStatusPending, utils.ItemStatusReady), utils.OrderStatusSent))
	assert.Equal(t, utils.OrderStatusOpen,
		DeriveKitchenStatus(nil, utils.OrderStatusOpen))
}

func TestOrderService_CompWithNoItemIndexesRejected(t *testing.T) {
	service, _ := newTestOrderService()
	order := openTestOrder(t, service)
	addTestItem(t, service, order.ID, "m1", "Spring Rolls", "appetizers", 8.00)

	_, err := service.CompItems(&models.CompItemsRequest{OrderID: order.ID, Reason: "guest recovery"})
	assert.Error(t, err)
	assert.True(t, utils.IsValidation(err))

	fetched, err := service.GetOrder(order.ID)
	assert.NoError(t, err)
	assert.False(t, fetched.Items[0].IsComped)
}
