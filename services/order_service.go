package services

import (
	"time"

	"github.com/fadhlanhapp/dinetab-backend/models"
	"github.com/fadhlanhapp/dinetab-backend/repository"
	"github.com/fadhlanhapp/dinetab-backend/utils"
)

// OrderService governs the order lifecycle: items, kitchen status
// transitions, holds, comps and discounts.
type OrderService struct {
	store *repository.Store
	calc  *CalculationService
}

// NewOrderService creates a new order service
func NewOrderService(store *repository.Store, calc *CalculationService) *OrderService {
	return &OrderService{
		store: store,
		calc:  calc,
	}
}

// activeStatuses are the statuses of an order still bound to a table.
var activeStatuses = []string{
	utils.OrderStatusOpen,
	utils.OrderStatusSent,
	utils.OrderStatusPreparing,
	utils.OrderStatusReady,
	utils.OrderStatusHold,
	utils.OrderStatusServed,
	utils.OrderStatusPaid,
}

func isTerminal(status string) bool {
	return status == utils.OrderStatusCompleted || status == utils.OrderStatusCancelled
}

func isMutable(status string) bool {
	return !isTerminal(status) && status != utils.OrderStatusPaid
}

// DeriveKitchenStatus is the single place the aggregate order status is
// derived from item statuses: preparing while any item is still sent or
// preparing, served once every item is served, ready if every remaining
// item is ready, otherwise the current status stands.
func DeriveKitchenStatus(items []models.OrderItem, current string) string {
	served := 0
	ready := 0
	working := 0
	for _, item := range items {
		switch item.Status {
		case utils.ItemStatusServed:
			served++
		case utils.ItemStatusReady:
			ready++
		case utils.ItemStatusSent, utils.ItemStatusPreparing:
			working++
		}
	}
	switch {
	case working > 0:
		return utils.OrderStatusPreparing
	case len(items) > 0 && served == len(items):
		return utils.OrderStatusServed
	case ready > 0 && ready+served == len(items):
		return utils.OrderStatusReady
	}
	return current
}

// recomputeTotals re-derives the money fields from the full item list.
func (s *OrderService) recomputeTotals(order *models.Order) {
	order.Subtotal = s.calc.Subtotal(order.Items)
	order.Tax, order.Total = s.calc.OrderTotals(order.Subtotal, order.Discount)
}

// OpenOrder seats a table or opens a takeout ticket.
func (s *OrderService) OpenOrder(req *models.OpenOrderRequest) (*models.Order, error) {
	order := models.NewOrder(req.TableID, req.TableName, req.Server, req.Guests, req.Type)

	if req.TableID != "" {
		table, err := s.store.Tables.Update(req.TableID, func(t *models.Table) error {
			now := time.Now()
			t.Status = utils.TableStatusSeated
			t.Guests = req.Guests
			t.SeatedAt = &now
			t.CurrentServer = req.Server
			return nil
		})
		if err != nil {
			return nil, err
		}
		if table == nil {
			return nil, utils.NewNotFoundError("Table")
		}
	}

	return s.store.CreateOrder(order), nil
}

// GetOrder returns one order by id.
func (s *OrderService) GetOrder(id string) (*models.Order, error) {
	order := s.store.Orders.Get(id)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders returns all orders.
func (s *OrderService) ListOrders() []*models.Order {
	return s.store.Orders.List()
}

// ListKitchenOrders returns orders the kitchen display shows.
func (s *OrderService) ListKitchenOrders() []*models.Order {
	return s.store.Orders.Filter(map[string]interface{}{
		"status": []string{utils.OrderStatusSent, utils.OrderStatusPreparing, utils.OrderStatusReady},
	})
}

// mutateOrder applies a validated mutation to an order. The validation
// callback runs under the store's write lock against the latest state,
// so a disallowed transition never clobbers a concurrent write.
func (s *OrderService) mutateOrder(id string, validate func(*models.Order) error, apply func(*models.Order)) (*models.Order, error) {
	return s.store.UpdateOrder(id, func(o *models.Order) error {
		if err := validate(o); err != nil {
			return err
		}
		apply(o)
		return nil
	})
}

// AddItem appends a pending item, merging with an existing pending line
// of the same menu item when it carries no modifiers.
func (s *OrderService) AddItem(req *models.AddItemRequest) (*models.Order, error) {
	if err := utils.ValidateItemData(req.Price, 1, req.Name); err != nil {
		return nil, err
	}
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if !isMutable(o.Status) || o.Status == utils.OrderStatusHold {
				return utils.NewValidationError("cannot add items to this order")
			}
			return nil
		},
		func(o *models.Order) {
			for i := range o.Items {
				item := &o.Items[i]
				if item.ItemID == req.ItemID && len(item.Modifiers) == 0 && item.Status == utils.ItemStatusPending {
					item.Quantity++
					s.recomputeTotals(o)
					return
				}
			}
			o.Items = append(o.Items, models.OrderItem{
				ItemID:   req.ItemID,
				Name:     req.Name,
				Category: req.Category,
				Price:    req.Price,
				Quantity: 1,
				Status:   utils.ItemStatusPending,
				Station:  req.Station,
			})
			s.recomputeTotals(o)
		},
	)
}

// UpdateItemQuantity changes a pending item's quantity. Zero or less
// removes the line.
func (s *OrderService) UpdateItemQuantity(req *models.UpdateQuantityRequest) (*models.Order, error) {
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if req.ItemIndex < 0 || req.ItemIndex >= len(o.Items) {
				return utils.NewValidationError("item index out of range")
			}
			if o.Items[req.ItemIndex].Status != utils.ItemStatusPending {
				return utils.NewValidationError("quantity can only change while the item is pending")
			}
			return nil
		},
		func(o *models.Order) {
			if req.Quantity <= 0 {
				o.Items = append(o.Items[:req.ItemIndex], o.Items[req.ItemIndex+1:]...)
			} else {
				o.Items[req.ItemIndex].Quantity = req.Quantity
			}
			s.recomputeTotals(o)
		},
	)
}

// RemoveItem deletes a pending item line.
func (s *OrderService) RemoveItem(req *models.ItemIndexRequest) (*models.Order, error) {
	return s.UpdateItemQuantity(&models.UpdateQuantityRequest{
		OrderID:   req.OrderID,
		ItemIndex: req.ItemIndex,
		Quantity:  0,
	})
}

// AddModifier appends a free-text modifier to a pending item.
func (s *OrderService) AddModifier(req *models.AddModifierRequest) (*models.Order, error) {
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if req.ItemIndex < 0 || req.ItemIndex >= len(o.Items) {
				return utils.NewValidationError("item index out of range")
			}
			if o.Items[req.ItemIndex].Status != utils.ItemStatusPending {
				return utils.NewValidationError("modifiers can only change while the item is pending")
			}
			return nil
		},
		func(o *models.Order) {
			item := &o.Items[req.ItemIndex]
			item.Modifiers = append(item.Modifiers, req.Modifier)
		},
	)
}

// SendOrder moves every pending item to sent and recomputes totals from
// the full item list, not just the newly sent items.
func (s *OrderService) SendOrder(orderID string) (*models.Order, error) {
	order, err := s.mutateOrder(orderID,
		func(o *models.Order) error {
			if o.Status == utils.OrderStatusHold {
				return utils.NewValidationError("order is on hold")
			}
			if !isMutable(o.Status) {
				return utils.NewValidationError("order is not open")
			}
			pending := 0
			for _, item := range o.Items {
				if item.Status == utils.ItemStatusPending {
					pending++
				}
			}
			if pending == 0 {
				return utils.NewValidationError("no new items to send to kitchen")
			}
			return nil
		},
		func(o *models.Order) {
			for i := range o.Items {
				if o.Items[i].Status == utils.ItemStatusPending {
					o.Items[i].Status = utils.ItemStatusSent
				}
			}
			o.Status = utils.OrderStatusSent
			s.recomputeTotals(o)
		},
	)
	if err != nil {
		return nil, err
	}

	if order.TableID != "" {
		_, _ = s.store.Tables.Update(order.TableID, func(t *models.Table) error {
			t.Status = utils.TableStatusOrdered
			return nil
		})
	}
	return order, nil
}

// UpdateItemStatus advances one item through the kitchen correction
// cycle sent -> preparing -> ready -> sent. Served items are immutable.
func (s *OrderService) UpdateItemStatus(req *models.ItemIndexRequest) (*models.Order, error) {
	cycle := map[string]string{
		utils.ItemStatusSent:      utils.ItemStatusPreparing,
		utils.ItemStatusPreparing: utils.ItemStatusReady,
		utils.ItemStatusReady:     utils.ItemStatusSent,
	}
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if req.ItemIndex < 0 || req.ItemIndex >= len(o.Items) {
				return utils.NewValidationError("item index out of range")
			}
			if o.Items[req.ItemIndex].Status == utils.ItemStatusServed {
				return utils.NewValidationError("served items cannot change status")
			}
			if _, ok := cycle[o.Items[req.ItemIndex].Status]; !ok {
				return utils.NewValidationError("item has not been sent to the kitchen")
			}
			return nil
		},
		func(o *models.Order) {
			item := &o.Items[req.ItemIndex]
			item.Status = cycle[item.Status]
			o.Status = DeriveKitchenStatus(o.Items, o.Status)
		},
	)
}

// AcceptOrder starts cooking: every sent item becomes preparing.
func (s *OrderService) AcceptOrder(orderID string) (*models.Order, error) {
	return s.mutateOrder(orderID,
		func(o *models.Order) error {
			if o.Status != utils.OrderStatusSent && o.Status != utils.OrderStatusPreparing {
				return utils.NewValidationError("order is not in the kitchen queue")
			}
			return nil
		},
		func(o *models.Order) {
			for i := range o.Items {
				if o.Items[i].Status == utils.ItemStatusSent {
					o.Items[i].Status = utils.ItemStatusPreparing
				}
			}
			o.Status = utils.OrderStatusPreparing
		},
	)
}

// MarkAllReady marks every non-served item ready.
func (s *OrderService) MarkAllReady(orderID string) (*models.Order, error) {
	return s.mutateOrder(orderID,
		func(o *models.Order) error {
			if isTerminal(o.Status) || o.Status == utils.OrderStatusPaid {
				return utils.NewValidationError("order is closed")
			}
			return nil
		},
		func(o *models.Order) {
			for i := range o.Items {
				if o.Items[i].Status != utils.ItemStatusServed {
					o.Items[i].Status = utils.ItemStatusReady
				}
			}
			o.Status = utils.OrderStatusReady
		},
	)
}

// BumpOrder marks every kitchen item served. Bar items (beverages and
// alcohol) stay as they are; the order reads served only once every
// item is out.
func (s *OrderService) BumpOrder(orderID string) (*models.Order, error) {
	return s.mutateOrder(orderID,
		func(o *models.Order) error {
			if isTerminal(o.Status) || o.Status == utils.OrderStatusPaid {
				return utils.NewValidationError("order is closed")
			}
			return nil
		},
		func(o *models.Order) {
			for i := range o.Items {
				if !utils.IsBeverageCategory(o.Items[i].Category) {
					o.Items[i].Status = utils.ItemStatusServed
				}
			}
			allServed := true
			for _, item := range o.Items {
				if item.Status != utils.ItemStatusServed {
					allServed = false
					break
				}
			}
			if allServed {
				o.Status = utils.OrderStatusServed
			} else {
				o.Status = utils.OrderStatusReady
			}
		},
	)
}

// ServeItem marks one item served.
func (s *OrderService) ServeItem(req *models.ItemIndexRequest) (*models.Order, error) {
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if req.ItemIndex < 0 || req.ItemIndex >= len(o.Items) {
				return utils.NewValidationError("item index out of range")
			}
			if o.Items[req.ItemIndex].Status == utils.ItemStatusServed {
				return utils.NewValidationError("item is already served")
			}
			return nil
		},
		func(o *models.Order) {
			o.Items[req.ItemIndex].Status = utils.ItemStatusServed
			allServed := true
			for _, item := range o.Items {
				if item.Status != utils.ItemStatusServed {
					allServed = false
					break
				}
			}
			if allServed {
				o.Status = utils.OrderStatusServed
			}
		},
	)
}

// HoldOrder pauses an order with a reason. Held orders cannot be sent.
func (s *OrderService) HoldOrder(req *models.HoldOrderRequest) (*models.Order, error) {
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if !isMutable(o.Status) {
				return utils.NewValidationError("order cannot be held")
			}
			return nil
		},
		func(o *models.Order) {
			o.Status = utils.OrderStatusHold
			o.HoldReason = req.Reason
		},
	)
}

// ResumeOrder returns a held order to open.
func (s *OrderService) ResumeOrder(orderID string) (*models.Order, error) {
	return s.mutateOrder(orderID,
		func(o *models.Order) error {
			if o.Status != utils.OrderStatusHold {
				return utils.NewValidationError("order is not on hold")
			}
			return nil
		},
		func(o *models.Order) {
			o.Status = utils.OrderStatusOpen
			o.HoldReason = ""
		},
	)
}

// CancelOrder voids an unpaid order and releases its table.
func (s *OrderService) CancelOrder(orderID string) (*models.Order, error) {
	order, err := s.mutateOrder(orderID,
		func(o *models.Order) error {
			if !isMutable(o.Status) {
				return utils.NewValidationError("order cannot be cancelled")
			}
			return nil
		},
		func(o *models.Order) {
			o.Status = utils.OrderStatusCancelled
		},
	)
	if err != nil {
		return nil, err
	}
	s.releaseTable(order.TableID)
	return order, nil
}

// CompleteOrder archives a paid order and releases its table.
func (s *OrderService) CompleteOrder(orderID string) (*models.Order, error) {
	order, err := s.mutateOrder(orderID,
		func(o *models.Order) error {
			if o.Status != utils.OrderStatusPaid {
				return utils.NewValidationError("only paid orders can be completed")
			}
			return nil
		},
		func(o *models.Order) {
			o.Status = utils.OrderStatusCompleted
		},
	)
	if err != nil {
		return nil, err
	}
	s.releaseTable(order.TableID)
	return order, nil
}

// RushOrder flags an order for the kitchen. Independent of status.
func (s *OrderService) RushOrder(orderID string) (*models.Order, error) {
	return s.mutateOrder(orderID,
		func(o *models.Order) error {
			if isTerminal(o.Status) {
				return utils.NewValidationError("order is closed")
			}
			return nil
		},
		func(o *models.Order) {
			o.IsRush = true
		},
	)
}

// ApplyDiscount sets an order-level discount and re-derives totals.
func (s *OrderService) ApplyDiscount(req *models.ApplyDiscountRequest) (*models.Order, error) {
	if err := utils.ValidatePositive(req.Amount, "discount"); err != nil {
		return nil, err
	}
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if !isMutable(o.Status) {
				return utils.NewValidationError("order is closed")
			}
			if len(o.Items) == 0 {
				return utils.NewValidationError("no order to discount")
			}
			return nil
		},
		func(o *models.Order) {
			o.Discount = utils.Round(req.Amount)
			o.DiscountType = req.Type
			o.DiscountReason = req.Reason
			s.recomputeTotals(o)
		},
	)
}

// CompItems removes the charge for selected items, keeping them on the
// record with a reason.
func (s *OrderService) CompItems(req *models.CompItemsRequest) (*models.Order, error) {
	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error {
			if !isMutable(o.Status) {
				return utils.NewValidationError("order is closed")
			}
			if err := utils.ValidateNotEmpty(req.ItemIndexes, "item indexes"); err != nil {
				return err
			}
			for _, idx := range req.ItemIndexes {
				if idx < 0 || idx >= len(o.Items) {
					return utils.NewValidationError("item index out of range")
				}
			}
			return nil
		},
		func(o *models.Order) {
			for _, idx := range req.ItemIndexes {
				o.Items[idx].IsComped = true
				o.Items[idx].CompReason = req.Reason
			}
			s.recomputeTotals(o)
		},
	)
}

// TransferTable moves an order to another table, releasing the old one.
func (s *OrderService) TransferTable(req *models.TransferTableRequest) (*models.Order, error) {
	order := s.store.Orders.Get(req.OrderID)
	if order == nil {
		return nil, utils.NewNotFoundError("Order")
	}
	newTable := s.store.Tables.Get(req.NewTableID)
	if newTable == nil {
		return nil, utils.NewNotFoundError("Table")
	}

	oldTable := s.store.Tables.Get(order.TableID)
	if oldTable != nil {
		_, _ = s.store.Tables.Update(order.TableID, func(t *models.Table) error {
			t.Status = utils.TableStatusAvailable
			t.Guests = 0
			t.SeatedAt = nil
			t.CurrentServer = ""
			return nil
		})
		_, _ = s.store.Tables.Update(req.NewTableID, func(t *models.Table) error {
			t.Status = oldTable.Status
			t.Guests = oldTable.Guests
			t.SeatedAt = oldTable.SeatedAt
			t.CurrentServer = oldTable.CurrentServer
			return nil
		})
	}

	return s.mutateOrder(req.OrderID,
		func(o *models.Order) error { return nil },
		func(o *models.Order) {
			o.TableID = req.NewTableID
			o.TableName = newTable.Name
		},
	)
}

// ClearTable archives or cancels the table's active order and frees the
// table for the next party.
func (s *OrderService) ClearTable(tableID string) error {
	orders := s.store.Orders.Filter(map[string]interface{}{
		"table_id": tableID,
		"status":   activeStatuses,
	})
	for _, order := range orders {
		if order.Status == utils.OrderStatusPaid {
			_, _ = s.CompleteOrder(order.ID)
		} else {
			_, _ = s.CancelOrder(order.ID)
		}
	}
	s.releaseTable(tableID)
	return nil
}

// ListTables returns the floor plan.
func (s *OrderService) ListTables() []*models.Table {
	return s.store.Tables.List()
}

func (s *OrderService) releaseTable(tableID string) {
	if tableID == "" {
		return
	}
	_, _ = s.store.Tables.Update(tableID, func(t *models.Table) error {
		t.Status = utils.TableStatusAvailable
		t.Guests = 0
		t.SeatedAt = nil
		t.CurrentServer = ""
		return nil
	})
}
