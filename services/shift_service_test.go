package services

import (
	"testing"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
	"github.com/stretchr/testify/assert"
)

func TestShiftService_DrawerLedger(t *testing.T) {
	store := repository.NewStore()
	calc := NewCalculationService()
	shifts := NewShiftService(store)
	orders := NewOrderService(store, calc)
	settlement := NewSettlementService(store, calc)

	shift, err := shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 200.00})
	assert.NoError(t, err)
	assert.Equal(t, 200.00, shift.ExpectedCash)

	// One $45.00 cash sale
	order := sentOrder(t, orders, 39.82)
	_, err = settlement.Settle(&models.TenderRequest{
		OrderID:      order.ID,
		Method:       utils.MethodCash,
		CashReceived: 45.00,
		Server:       "alice",
	})
	assert.NoError(t, err)

	// One $20.00 drop
	dropped, err := shifts.RecordCashDrop(&models.CashDropRequest{ShiftID: shift.ID, Amount: 20.00})
	assert.NoError(t, err)
	assert.Equal(t, 225.00, dropped.ExpectedCash)
	assert.Len(t, dropped.CashDrops, 1)

	closed, err := shifts.CloseShift(&models.CloseShiftRequest{ShiftID: shift.ID, ActualCash: 220.00})
	assert.NoError(t, err)
	assert.Equal(t, utils.ShiftStatusClosed, closed.Status)
	assert.Equal(t, 220.00, closed.ActualCash)
	assert.Equal(t, -5.00, closed.Variance)
	assert.NotNil(t, closed.EndedAt)
}

func TestShiftService_OneActivePerServer(t *testing.T) {
	store := repository.NewStore()
	shifts := NewShiftService(store)

	first, err := shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 150.00})
	assert.NoError(t, err)

	_, err = shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 150.00})
	assert.Error(t, err)
	assert.True(t, utils.IsValidation(err))

	// A different server is unaffected
	_, err = shifts.StartShift(&models.StartShiftRequest{Server: "bob", StartingCash: 150.00})
	assert.NoError(t, err)

	// Closing frees the server for a new shift
	_, err = shifts.CloseShift(&models.CloseShiftRequest{ShiftID: first.ID, ActualCash: 150.00})
	assert.NoError(t, err)
	_, err = shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 150.00})
	assert.NoError(t, err)
}

func TestShiftService_ClosedShiftIsFinal(t *testing.T) {
	store := repository.NewStore()
	shifts := NewShiftService(store)

	shift, err := shifts.StartShift(&models.StartShiftRequest{Server: "alice", StartingCash: 100.00})
	assert.NoError(t, err)

	_, err = shifts.CloseShift(&models.CloseShiftRequest{ShiftID: shift.ID, ActualCash: 100.00})
	assert.NoError(t, err)

	_, err = shifts.CloseShift(&models.CloseShiftRequest{ShiftID: shift.ID, ActualCash: 100.00})
	assert.Error(t, err)

	_, err = shifts.RecordCashDrop(&models.CashDropRequest{ShiftID: shift.ID, Amount: 10.00})
	assert.Error(t, err)
}

func TestShiftService_UnknownShift(t *testing.T) {
	store := repository.NewStore()
	shifts := NewShiftService(store)

	_, err := shifts.RecordCashDrop(&models.CashDropRequest{ShiftID: "missing", Amount: 10.00})
	assert.Error(t, err)

	_, err = shifts.GetShift("missing")
	assert.Error(t, err)
}
