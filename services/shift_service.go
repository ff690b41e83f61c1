package services

import (
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// ShiftService tracks each server's cash drawer from start to close.
type ShiftService struct {
	store *repository.Store
}

// NewShiftService creates a new shift service
func NewShiftService(store *repository.Store) *ShiftService {
	return &ShiftService{
		store: store,
	}
}

// ActiveShift returns the server's active shift, or nil.
func (s *ShiftService) ActiveShift(server string) *models.Shift {
	shifts := s.store.Shifts.Filter(map[string]interface{}{
		"server": server,
		"status": utils.ShiftStatusActive,
	})
	if len(shifts) == 0 {
		return nil
	}
	return shifts[0]
}

// StartShift opens a drawer session. One active shift per server.
func (s *ShiftService) StartShift(req *models.StartShiftRequest) (*models.Shift, error) {
	if err := utils.ValidateRequired(req.Server, "server"); err != nil {
		return nil, err
	}
	if err := utils.ValidateNonNegative(req.StartingCash, "starting cash"); err != nil {
		return nil, err
	}
	if s.ActiveShift(req.Server) != nil {
		return nil, utils.NewValidationError("an active shift already exists for this server")
	}

	shift := models.NewShift(req.Server, req.ServerName, req.StartingCash)
	return s.store.Shifts.Create(shift), nil
}

// RecordCashDrop removes cash from the drawer for safekeeping. A drop
// may legally exceed the current expected cash; the discrepancy
// surfaces as variance at close.
func (s *ShiftService) RecordCashDrop(req *models.CashDropRequest) (*models.Shift, error) {
	if err := utils.ValidatePositive(req.Amount, "drop amount"); err != nil {
		return nil, err
	}

	shift, err := s.store.Shifts.Update(req.ShiftID, func(sh *models.Shift) error {
		if sh.Status != utils.ShiftStatusActive {
			return utils.NewValidationError("shift is not active")
		}
		sh.CashDrops = append(sh.CashDrops, models.CashDrop{
			Amount: utils.Round(req.Amount),
			Time:   time.Now(),
		})
		sh.ExpectedCash = utils.Round(sh.ExpectedCash - req.Amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, utils.NewNotFoundError("Shift")
	}
	return shift, nil
}

// CloseShift counts the drawer and records the variance. Variance is
// informational; it never blocks closing.
func (s *ShiftService) CloseShift(req *models.CloseShiftRequest) (*models.Shift, error) {
	if err := utils.ValidateNonNegative(req.ActualCash, "actual cash"); err != nil {
		return nil, err
	}

	shift, err := s.store.Shifts.Update(req.ShiftID, func(sh *models.Shift) error {
		if sh.Status != utils.ShiftStatusActive {
			return utils.NewValidationError("shift is already closed")
		}
		now := time.Now()
		sh.Status = utils.ShiftStatusClosed
		sh.EndedAt = &now
		sh.ActualCash = utils.Round(req.ActualCash)
		sh.Variance = utils.Round(req.ActualCash - sh.ExpectedCash)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, utils.NewNotFoundError("Shift")
	}
	return shift, nil
}

// GetShift returns one shift by id.
func (s *ShiftService) GetShift(id string) (*models.Shift, error) {
	shift := s.store.Shifts.Get(id)
	if shift == nil {
		return nil, utils.NewNotFoundError("Shift")
	}
	return shift, nil
}
