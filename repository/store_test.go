package repository

import (
	"net/http"
	"testing"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestCollection_CreateAssignsIDs(t *testing.T) {
	store := NewStore()

	order := store.CreateOrder(&models.Order{TableName: "T1", Status: "open"})
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, int64(1), order.Revision)
	assert.False(t, order.CreatedAt.IsZero())

	other := store.CreateOrder(&models.Order{TableName: "T2", Status: "open"})
	assert.NotEqual(t, order.ID, other.ID)
	assert.Len(t, store.Orders.List(), 2)
}

func TestCollection_FilterMatchesJSONFields(t *testing.T) {
	store := NewStore()
	store.CreateOrder(&models.Order{TableName: "T1", Status: "open", Server: "alice"})
	store.CreateOrder(&models.Order{TableName: "T2", Status: "sent", Server: "alice"})
	store.CreateOrder(&models.Order{TableName: "T3", Status: "preparing", Server: "bob"})

	open := store.Orders.Filter(map[string]interface{}{"status": "open"})
	assert.Len(t, open, 1)
	assert.Equal(t, "T1", open[0].TableName)

	// A slice value means "field in set"
	kitchen := store.Orders.Filter(map[string]interface{}{
		"status": []string{"sent", "preparing", "ready"},
	})
	assert.Len(t, kitchen, 2)

	both := store.Orders.Filter(map[string]interface{}{
		"status": "sent",
		"server": "alice",
	})
	assert.Len(t, both, 1)

	none := store.Orders.Filter(map[string]interface{}{"status": "paid"})
	assert.Empty(t, none)
}

func TestCollection_ReadsAreIsolated(t *testing.T) {
	store := NewStore()
	created := store.CreateOrder(&models.Order{
		TableName: "T1",
		Status:    "open",
		Items:     []models.OrderItem{{Name: "Dumplings", Price: 12.00, Quantity: 1}},
	})

	// Mutating a fetched copy must not leak into the store
	fetched := store.Orders.Get(created.ID)
	fetched.Status = "cancelled"
	fetched.Items[0].Quantity = 99

	stored := store.Orders.Get(created.ID)
	assert.Equal(t, "open", stored.Status)
	assert.Equal(t, 1, stored.Items[0].Quantity)
}

func TestStore_UpdateOrderBumpsRevision(t *testing.T) {
	store := NewStore()
	order := store.CreateOrder(&models.Order{TableName: "T1", Status: "open"})

	updated, err := store.UpdateOrder(order.ID, func(o *models.Order) error {
		o.Status = "sent"
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), updated.Revision)
	assert.Equal(t, "sent", updated.Status)

	_, err = store.UpdateOrder("missing", func(o *models.Order) error { return nil })
	assert.Error(t, err)
}

func TestStore_UpdateAbortsOnError(t *testing.T) {
	store := NewStore()
	order := store.CreateOrder(&models.Order{TableName: "T1", Status: "open"})

	var events []StoreEvent
	unsubscribe := store.Orders.Subscribe(func(e StoreEvent) {
		events = append(events, e)
	})
	defer unsubscribe()

	_, err := store.UpdateOrder(order.ID, func(o *models.Order) error {
		o.Status = "cancelled"
		return utils.NewValidationError("not allowed")
	})
	assert.Error(t, err)

	// The failed mutation is not applied, versioned or published
	stored := store.Orders.Get(order.ID)
	assert.Equal(t, "open", stored.Status)
	assert.Equal(t, int64(1), stored.Revision)
	assert.Empty(t, events)
}

func TestStore_UpdateOrderCheckedRejectsStaleRevision(t *testing.T) {
	store := NewStore()
	order := store.CreateOrder(&models.Order{TableName: "T1", Status: "open"})

	// Another surface writes first
	_, err := store.UpdateOrder(order.ID, func(o *models.Order) error {
		o.Status = "sent"
		return nil
	})
	assert.NoError(t, err)

	_, err = store.UpdateOrderChecked(order.ID, order.Revision, func(o *models.Order) error {
		o.Status = "cancelled"
		return nil
	})
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.Code)

	// Re-fetching yields a revision that goes through
	current := store.Orders.Get(order.ID)
	updated, err := store.UpdateOrderChecked(order.ID, current.Revision, func(o *models.Order) error {
		o.Status = "cancelled"
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
}

func TestCollection_SubscribeDeliversCreateAndUpdate(t *testing.T) {
	store := NewStore()

	var events []StoreEvent
	unsubscribe := store.Orders.Subscribe(func(e StoreEvent) {
		events = append(events, e)
	})

	order := store.CreateOrder(&models.Order{TableName: "T1", Status: "open"})
	_, err := store.UpdateOrder(order.ID, func(o *models.Order) error {
		o.Status = "sent"
		return nil
	})
	assert.NoError(t, err)

	assert.Len(t, events, 2)
	assert.Equal(t, "create", events[0].Type)
	assert.Equal(t, "update", events[1].Type)

	// The event payload is a snapshot; subscribers re-fetch for truth
	payload, ok := events[1].Data.(*models.Order)
	assert.True(t, ok)
	assert.Equal(t, "sent", payload.Status)

	unsubscribe()
	store.CreateOrder(&models.Order{TableName: "T2", Status: "open"})
	assert.Len(t, events, 2)
}

func TestStore_RestoreRehydratesWithoutSideEffects(t *testing.T) {
	store := NewStore()

	var events int
	store.Orders.Subscribe(func(StoreEvent) { events++ })
	var writes int
	store.Orders.onWrite = func(*models.Order) { writes++ }

	saved := &models.Order{ID: "ord-1", TableName: "T4", Status: "sent", Revision: 3}
	shift := &models.Shift{ID: "shift-1", Server: "alice", Status: "active", StartingCash: 200.00}
	tx := &models.Transaction{ID: "tx-1", OrderID: "ord-1", ShiftID: "shift-1", Amount: 45.00}
	store.Restore([]*models.Order{saved}, []*models.Transaction{tx}, []*models.Shift{shift})

	got := store.Orders.Get("ord-1")
	assert.NotNil(t, got)
	assert.Equal(t, int64(3), got.Revision)
	assert.Equal(t, "sent", got.Status)
	assert.Equal(t, "shift-1", store.Transactions.Get("tx-1").ShiftID)
	assert.Equal(t, "alice", store.Shifts.Get("shift-1").Server)

	// Rehydration is silent: no events, nothing echoed to persistence
	assert.Equal(t, 0, events)
	assert.Equal(t, 0, writes)

	// Restored records rejoin normal mutation with their saved revision
	updated, err := store.UpdateOrder("ord-1", func(o *models.Order) error {
		o.Status = "ready"
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(4), updated.Revision)
	assert.Equal(t, 1, events)
	assert.Equal(t, 1, writes)
}
